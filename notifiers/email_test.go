package notifiers

import (
	"errors"
	"fmt"
	"net/smtp"
	"testing"

	"github.com/kova98/rivalwatch/data"
	"github.com/kova98/rivalwatch/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notificationEmail(id int64, competitor, title string) data.NotificationEmail {
	return data.NotificationEmail{
		ID:             id,
		Email:          "analyst@example.com",
		Message:        Message(competitor, title),
		UpdateID:       id,
		Title:          title,
		URL:            "https://techcorp.example",
		ImpactScore:    70,
		Category:       "pricing",
		CompetitorName: competitor,
	}
}

func TestUpdateAlertEmail_RendersUpdate(t *testing.T) {
	m := NewMailer("smtp.example.com", "587", "alerts@example.com", "secret", "https://app.example.com/")

	mail, err := m.UpdateAlertEmail("analyst@example.com", notificationEmail(1, "TechCorp Inc", "New pricing plans"))

	require.NoError(t, err)
	assert.Equal(t, "analyst@example.com", mail.To)
	assert.Equal(t, "rivalwatch: high-impact update from TechCorp Inc", mail.Subject)
	assert.Contains(t, mail.Body, "High-impact update from TechCorp Inc: New pricing plans")
	assert.Contains(t, mail.Body, `href="https://techcorp.example"`)
	assert.Contains(t, mail.Body, "impact 70/100")
	assert.Contains(t, mail.Body, "https://app.example.com/updates")
}

func TestUpdateAlertEmail_EscapesScrapedText(t *testing.T) {
	m := NewMailer("smtp.example.com", "587", "alerts@example.com", "secret", "")

	mail, err := m.UpdateAlertEmail("analyst@example.com", notificationEmail(1, "Acme", "<script>alert(1)</script>"))

	require.NoError(t, err)
	assert.NotContains(t, mail.Body, "<script>")
	assert.Contains(t, mail.Body, "&lt;script&gt;")
	assert.NotContains(t, mail.Body, "dashboard")
}

func TestUpdateDigestEmail_CapsItems(t *testing.T) {
	m := NewMailer("smtp.example.com", "587", "alerts@example.com", "secret", "")
	var notifications []data.NotificationEmail
	for i := 1; i <= 12; i++ {
		competitor := "Acme"
		if i%2 == 0 {
			competitor = "Globex"
		}
		notifications = append(notifications, notificationEmail(int64(i), competitor, fmt.Sprintf("Update number %d", i)))
	}

	mail, err := m.UpdateDigestEmail("analyst@example.com", notifications)

	require.NoError(t, err)
	assert.Equal(t, "rivalwatch: 12 high-impact updates", mail.Subject)
	assert.Contains(t, mail.Body, "Update number 10")
	assert.NotContains(t, mail.Body, "Update number 11")
	assert.Contains(t, mail.Body, "And 2 more.")
	assert.Contains(t, mail.Body, "From: Acme, Globex")
}

func TestUpdateDigestEmail_EmptyIsError(t *testing.T) {
	m := NewMailer("smtp.example.com", "587", "alerts@example.com", "secret", "")

	_, err := m.UpdateDigestEmail("analyst@example.com", nil)

	assert.Error(t, err)
}

func TestSend_BuildsMessage(t *testing.T) {
	m := NewMailer("smtp.example.com", "587", "alerts@example.com", "secret", "")
	var gotAddr string
	var gotTo []string
	var gotMsg string
	m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	err := m.Send(models.Email{To: "analyst@example.com", Subject: "hello", Body: "<p>hi</p>"})

	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"analyst@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "From: rivalwatch <alerts@example.com>")
	assert.Contains(t, gotMsg, "Subject: hello")
	assert.Contains(t, gotMsg, "<p>hi</p>")
}

func TestSend_ReturnsTransportError(t *testing.T) {
	m := NewMailer("smtp.example.com", "587", "alerts@example.com", "secret", "")
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.Send(models.Email{To: "analyst@example.com"})

	assert.Error(t, err)
}
