package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"contactform/internal/config"
	"contactform/internal/domain"
)

// SESAPI is the slice of the SESv2 client the mailer needs.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Mailer dispatches the confirmation and notification emails over SES.
type Mailer struct {
	client SESAPI
	cfg    config.EmailConfig
	log    *zap.Logger
}

// New creates a Mailer sending from the configured sender identity.
func New(client SESAPI, cfg config.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{client: client, cfg: cfg, log: log}
}

// Configured reports whether sender and business recipient are set. When not,
// sends are skipped; missing email configuration is a deployment condition,
// not a request error.
func (m *Mailer) Configured() bool {
	return m.cfg.Configured()
}

// SendCustomerConfirmation emails the submitter an acknowledgment with their
// reference number.
func (m *Mailer) SendCustomerConfirmation(ctx context.Context, sub *domain.Submission) error {
	return m.send(ctx, sub.Email,
		customerSubject(m.cfg.BusinessName),
		renderCustomerHTML(sub, m.cfg.BusinessName),
		renderCustomerText(sub, m.cfg.BusinessName))
}

// SendBusinessNotification emails the configured recipient the full record.
func (m *Mailer) SendBusinessNotification(ctx context.Context, sub *domain.Submission) error {
	return m.send(ctx, m.cfg.Recipient,
		businessSubject(sub),
		renderBusinessHTML(sub),
		renderBusinessText(sub))
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.cfg.Sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	m.log.Info("email dispatched",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
