package notifiers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/kova98/rivalwatch/data"
	"github.com/kova98/rivalwatch/models"
)

//go:embed templates/update_alert.html templates/update_digest.html
var emailTemplates embed.FS

var updateTemplates = template.Must(template.New("emails").ParseFS(emailTemplates, "templates/*.html"))

const maxDigestItems = 10

type Mailer struct {
	smtpHost string
	smtpPort string
	from     string
	password string
	appBase  string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(smtpHost, smtpPort, from, password, appBase string) *Mailer {
	return &Mailer{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		from:     from,
		password: password,
		appBase:  strings.TrimRight(appBase, "/"),
		sendMail: smtp.SendMail,
	}
}

func (h *Mailer) UpdateAlertEmail(email string, n data.NotificationEmail) (models.Email, error) {
	var buf bytes.Buffer
	tmplData := struct {
		Message      string
		Item         models.DigestItem
		DashboardURL string
	}{
		Message:      n.Message,
		Item:         digestItem(n),
		DashboardURL: h.dashboardURL(),
	}
	if err := updateTemplates.ExecuteTemplate(&buf, "update_alert.html", tmplData); err != nil {
		return models.Email{}, fmt.Errorf("render update alert template: %w", err)
	}

	return models.Email{
		To:      email,
		Subject: "rivalwatch: high-impact update from " + n.CompetitorName,
		Body:    buf.String(),
	}, nil
}

func (h *Mailer) UpdateDigestEmail(email string, notifications []data.NotificationEmail) (models.Email, error) {
	if len(notifications) == 0 {
		return models.Email{}, fmt.Errorf("no notifications")
	}

	items := make([]models.DigestItem, 0, maxDigestItems)
	competitorSet := make(map[string]struct{})
	competitors := make([]string, 0)
	for _, n := range notifications {
		if _, seen := competitorSet[n.CompetitorName]; !seen {
			competitorSet[n.CompetitorName] = struct{}{}
			competitors = append(competitors, n.CompetitorName)
		}
		if len(items) < maxDigestItems {
			items = append(items, digestItem(n))
		}
	}

	var buf bytes.Buffer
	tmplData := struct {
		Items        []models.DigestItem
		Competitors  []string
		Total        int
		Remaining    int
		DashboardURL string
	}{
		Items:        items,
		Competitors:  competitors,
		Total:        len(notifications),
		Remaining:    len(notifications) - len(items),
		DashboardURL: h.dashboardURL(),
	}
	if err := updateTemplates.ExecuteTemplate(&buf, "update_digest.html", tmplData); err != nil {
		return models.Email{}, fmt.Errorf("render update digest template: %w", err)
	}

	return models.Email{
		To:      email,
		Subject: fmt.Sprintf("rivalwatch: %d high-impact updates", len(notifications)),
		Body:    buf.String(),
	}, nil
}

func (h *Mailer) Send(mail models.Email) error {
	message := fmt.Sprintf(`From: rivalwatch <%s>
To: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, h.from, mail.To, mail.Subject, mail.Body)

	auth := smtp.PlainAuth("", h.from, h.password, h.smtpHost)
	addr := fmt.Sprintf("%s:%s", h.smtpHost, h.smtpPort)
	err := h.sendMail(addr, auth, h.from, []string{mail.To}, []byte(message))
	if err != nil {
		slog.Error("Failed to send email", "error", err)
		return err
	}

	slog.Info("email sent", "recipient", mail.To, "subject", mail.Subject)
	return nil
}

func (h *Mailer) dashboardURL() string {
	if h.appBase == "" {
		return ""
	}
	return h.appBase + "/updates"
}

func digestItem(n data.NotificationEmail) models.DigestItem {
	return models.DigestItem{
		Competitor:  n.CompetitorName,
		Title:       n.Title,
		Category:    n.Category,
		ImpactScore: n.ImpactScore,
		URL:         n.URL,
	}
}
