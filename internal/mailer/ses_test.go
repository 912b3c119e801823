package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"go.uber.org/zap"

	"contactform/internal/config"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	fail   bool
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	if f.fail {
		return nil, errors.New("MessageRejected")
	}
	f.inputs = append(f.inputs, params)
	return &sesv2.SendEmailOutput{}, nil
}

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		Sender:       "noreply@horizontravel.example",
		Recipient:    "inquiries@horizontravel.example",
		BusinessName: "Horizon Travel",
	}
}

func TestSendCustomerConfirmation_AddressesAndContent(t *testing.T) {
	ses := &fakeSES{}
	m := New(ses, testEmailConfig(), zap.NewNop())
	sub := sampleSubmission()

	if err := m.SendCustomerConfirmation(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ses.inputs) != 1 {
		t.Fatalf("expected one send, got %d", len(ses.inputs))
	}

	input := ses.inputs[0]
	if *input.FromEmailAddress != "noreply@horizontravel.example" {
		t.Errorf("expected configured sender, got %q", *input.FromEmailAddress)
	}
	if got := input.Destination.ToAddresses; len(got) != 1 || got[0] != sub.Email {
		t.Errorf("expected confirmation addressed to submitter, got %v", got)
	}
	if !strings.Contains(*input.Content.Simple.Subject.Data, "Horizon Travel") {
		t.Errorf("expected business name in subject, got %q", *input.Content.Simple.Subject.Data)
	}
	if !strings.Contains(*input.Content.Simple.Body.Html.Data, sub.ID) {
		t.Error("expected reference number in HTML body")
	}
	if !strings.Contains(*input.Content.Simple.Body.Text.Data, sub.ID) {
		t.Error("expected reference number in text body")
	}
}

func TestSendBusinessNotification_AddressedToRecipient(t *testing.T) {
	ses := &fakeSES{}
	m := New(ses, testEmailConfig(), zap.NewNop())
	sub := sampleSubmission()

	if err := m.SendBusinessNotification(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input := ses.inputs[0]
	if got := input.Destination.ToAddresses; len(got) != 1 || got[0] != "inquiries@horizontravel.example" {
		t.Errorf("expected notification addressed to configured recipient, got %v", got)
	}
	if !strings.Contains(*input.Content.Simple.Subject.Data, sub.Name) {
		t.Errorf("expected submitter name in subject, got %q", *input.Content.Simple.Subject.Data)
	}
}

func TestSend_WrapsClientError(t *testing.T) {
	m := New(&fakeSES{fail: true}, testEmailConfig(), zap.NewNop())

	err := m.SendCustomerConfirmation(context.Background(), sampleSubmission())
	if err == nil {
		t.Fatal("expected error from failed send")
	}
	if !strings.Contains(err.Error(), "send email to") {
		t.Errorf("expected wrapped context in error, got %q", err)
	}
}

func TestConfigured(t *testing.T) {
	m := New(&fakeSES{}, testEmailConfig(), zap.NewNop())
	if !m.Configured() {
		t.Error("expected mailer configured with both addresses")
	}

	cfg := testEmailConfig()
	cfg.Recipient = ""
	m = New(&fakeSES{}, cfg, zap.NewNop())
	if m.Configured() {
		t.Error("expected mailer unconfigured without recipient")
	}
}
