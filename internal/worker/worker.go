package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/token"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/events"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/repository"
)

// Worker consumes scheduling events and pushes reminders to the teacher's
// registered devices. Without APNs credentials it runs in mock mode and only
// logs what it would have sent.
type Worker struct {
	natsConn   *nats.Conn
	apnsClient *apns2.Client
	tokens     repository.DeviceTokenRepository
}

func (w *Worker) handleSessionScheduled(msg *nats.Msg) {
	var event events.SessionScheduledEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("Error unmarshalling event: %v", err)
		return
	}

	log.Printf(
		"📬 Event Received: Session %s scheduled for teacher %s at %s.",
		event.SessionCode,
		event.TeacherUserID,
		event.ScheduledAt.Format("2006-01-02 15:04"),
	)

	tokens, err := w.tokens.GetUserDeviceTokens(context.Background(), event.TeacherUserID)
	if err != nil {
		log.Printf("Failed to retrieve device tokens for teacher %s: %v", event.TeacherUserID, err)
		return
	}

	if len(tokens) == 0 {
		log.Printf("No device tokens found for teacher %s. No notifications sent.", event.TeacherUserID)
		return
	}

	log.Printf("Found %d device token(s) for teacher %s. Sending notifications...", len(tokens), event.TeacherUserID)
	alert := fmt.Sprintf("تمت جدولة جلسة جديدة (%s) يوم %s", event.SessionCode, event.ScheduledAt.Format("2006-01-02 15:04"))
	payload := fmt.Sprintf(`{"aps":{"alert":%q,"sound":"default"}}`, alert)

	for _, deviceToken := range tokens {
		notification := &apns2.Notification{
			DeviceToken: deviceToken,
			Topic:       os.Getenv("APNS_TOPIC"),
			Payload:     []byte(payload),
		}

		if w.apnsClient == nil {
			log.Printf("✅ SUCCESS (mock): Push notification sent to device %s", deviceToken)
		} else {
			res, err := w.apnsClient.Push(notification)
			if err != nil {
				log.Printf("❌ FAILED to send notification: %v", err)
			} else if res.Sent() {
				log.Printf("✅ SUCCESS: Notification sent with APNS ID: %s", res.ApnsID)
			} else {
				log.Printf("❌ FAILED: Notification not sent. Reason: %s", res.Reason)
			}
		}
	}
}

func (w *Worker) handleBulkCompleted(msg *nats.Msg) {
	var event events.BulkScheduleCompletedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("Error unmarshalling event: %v", err)
		return
	}

	log.Printf(
		"📬 Event Received: Bulk schedule for %s %s completed: %d requested, %d created, %d skipped.",
		event.EntityType,
		event.EntityID,
		event.Requested,
		event.Created,
		event.Skipped,
	)
}

func Start(natsURL string, tokens repository.DeviceTokenRepository) error {
	authKeyPath := os.Getenv("APNS_AUTH_KEY_PATH")
	keyID := os.Getenv("APNS_KEY_ID")
	teamID := os.Getenv("APNS_TEAM_ID")

	var apnsClient *apns2.Client
	if authKeyPath != "" && authKeyPath[0] != '#' && keyID != "" && teamID != "" {
		log.Println("APNs credentials found, initializing APNs client...")
		authKey, err := token.AuthKeyFromFile(authKeyPath)
		if err != nil {
			return fmt.Errorf("Failed to read auth key APNs: %w", err)
		}

		authToken := &token.Token{
			AuthKey: authKey,
			KeyID:   keyID,
			TeamID:  teamID,
		}

		if os.Getenv("APNS_MODE") == "production" {
			apnsClient = apns2.NewTokenClient(authToken).Production()
		} else {
			apnsClient = apns2.NewTokenClient(authToken).Development()
		}
	} else {
		log.Println("APNs credentials not found or invalid. Worker will run in MOCK mode.")
	}

	nc, err := nats.Connect(natsURL)
	if err != nil {
		return err
	}

	worker := &Worker{
		natsConn:   nc,
		apnsClient: apnsClient,
		tokens:     tokens,
	}

	if _, err := nc.Subscribe("session.scheduled", worker.handleSessionScheduled); err != nil {
		return err
	}
	if _, err := nc.Subscribe("schedule.bulk_completed", worker.handleBulkCompleted); err != nil {
		return err
	}

	return nil
}
