package notifiers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kova98/rivalwatch/data"
	"github.com/kova98/rivalwatch/enums"
)

const DefaultSubject = "rivalwatch.updates.high_impact"

// publisher is satisfied by *nats.Conn.
type publisher interface {
	Publish(subject string, payload []byte) error
}

type UpdateEvent struct {
	UpdateID       int64          `json:"updateId"`
	CompetitorID   int64          `json:"competitorId"`
	CompetitorName string         `json:"competitorName"`
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	Category       enums.Category `json:"category"`
	ImpactScore    int            `json:"impactScore"`
	DetectedAt     time.Time      `json:"detectedAt"`
}

// EventPublisher publishes high-impact updates on a NATS subject.
type EventPublisher struct {
	conn    publisher
	subject string
}

func NewEventPublisher(conn publisher, subject string) *EventPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &EventPublisher{conn: conn, subject: subject}
}

func (p *EventPublisher) Name() string { return "nats" }

func (p *EventPublisher) Alert(_ context.Context, update data.CompetitorUpdate) error {
	payload, err := json.Marshal(UpdateEvent{
		UpdateID:       update.ID,
		CompetitorID:   update.CompetitorID,
		CompetitorName: update.CompetitorName,
		Title:          update.Title,
		URL:            update.URL,
		Category:       update.Category,
		ImpactScore:    update.ImpactScore,
		DetectedAt:     update.DetectedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal update event: %w", err)
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", p.subject, err)
	}
	return nil
}
