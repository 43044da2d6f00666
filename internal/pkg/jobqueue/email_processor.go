package jobqueue

import (
	"fmt"

	"github.com/khoadanwneee/AuctionFox/internal/pkg/mail"
)

// processEmailNotificationJob delivers one notification email via SMTP.
func (q *Queue) processEmailNotificationJob(job *Job) error {
	payload, err := EmailNotificationJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid email notification payload: %w", err)
	}

	if payload.To == "" {
		return fmt.Errorf("email notification job %s has no recipient", job.ID)
	}

	return mail.SendMail(payload.To, payload.Subject, payload.Body)
}
