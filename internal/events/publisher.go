package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

type EventPublisher interface {
	PublishSessionScheduled(event SessionScheduledEvent) error
	PublishBulkScheduleCompleted(event BulkScheduleCompletedEvent) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

// SessionScheduledEvent is emitted once per created session so the
// notification worker can fan out reminders.
type SessionScheduledEvent struct {
	EventType     string    `json:"event_type"`
	SessionID     uuid.UUID `json:"session_id"`
	SessionCode   string    `json:"session_code"`
	Category      string    `json:"category"`
	TeacherUserID uuid.UUID `json:"teacher_user_id"`
	EntityID      uuid.UUID `json:"entity_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

// BulkScheduleCompletedEvent summarises one bulk-scheduling run.
type BulkScheduleCompletedEvent struct {
	EventType     string    `json:"event_type"`
	EntityType    string    `json:"entity_type"`
	EntityID      uuid.UUID `json:"entity_id"`
	TeacherUserID uuid.UUID `json:"teacher_user_id"`
	Requested     int       `json:"requested"`
	Created       int       `json:"created"`
	Skipped       int       `json:"skipped"`
	CompletedAt   time.Time `json:"completed_at"`
}

func (p *NatsPublisher) PublishSessionScheduled(event SessionScheduledEvent) error {
	event.EventType = "session.scheduled"
	return p.publish("session.scheduled", event)
}

func (p *NatsPublisher) PublishBulkScheduleCompleted(event BulkScheduleCompletedEvent) error {
	event.EventType = "schedule.bulk_completed"
	return p.publish("schedule.bulk_completed", event)
}

func (p *NatsPublisher) publish(subject string, event any) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	log.Printf("Published event to NATS on subject '%s'", subject)

	return nil
}
