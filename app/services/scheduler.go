package services

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/amilmether/fundEd-Web/app/database"
)

// StartScheduler starts the background reminder loop. Once a day it emails
// students who still owe payment for events with deadlines in the next 48
// hours. Failures are logged and never retried.
func StartScheduler(db *sql.DB, notifier *Notifier) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 8:00 AM
			if now.Hour() == 8 && now.Minute() == 0 {
				log.Println("Triggering scheduled tasks [08:00]...")
				SendDeadlineReminders(db, notifier)
			}
		}
	}()
}

// SendDeadlineReminders finds events closing within 48 hours and sends a
// payment reminder to every student in the event's scope without an
// effective payment.
func SendDeadlineReminders(db *sql.DB, notifier *Notifier) {
	events, err := database.GetEventsWithUpcomingDeadlines(db, 48)
	if err != nil {
		log.Printf("Error fetching events for reminders: %v", err)
		return
	}

	for _, event := range events {
		students, err := database.GetStudentsWithoutEffectivePayment(db, event.Scope, event.ID)
		if err != nil {
			log.Printf("Error fetching unpaid students for event %s: %v", event.ID, err)
			continue
		}

		sent := 0
		for _, student := range students {
			result := notifier.Send(context.Background(), TemplatePaymentReminder, TemplateParams{
				StudentName:  student.Name,
				StudentEmail: student.Email,
				EventName:    event.Name,
				Amount:       event.Cost,
			})
			if result.Success {
				sent++
			} else {
				log.Printf("Reminder for %s (%s) failed: %s", student.Name, event.Name, result.Message)
			}
		}
		log.Printf("Sent %d/%d reminders for event %q", sent, len(students), event.Name)
	}
}
