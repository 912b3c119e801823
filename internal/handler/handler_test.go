package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"contactform/internal/domain"
)

type fakeStore struct {
	puts    []*domain.Submission
	failPut bool
}

func (f *fakeStore) Put(ctx context.Context, sub *domain.Submission) error {
	if f.failPut {
		return errors.New("provisioned throughput exceeded")
	}
	f.puts = append(f.puts, sub)
	return nil
}

type fakeMailer struct {
	configured    bool
	customerCalls int
	businessCalls int
	failCustomer  bool
	failBusiness  bool
}

func (f *fakeMailer) Configured() bool { return f.configured }

func (f *fakeMailer) SendCustomerConfirmation(ctx context.Context, sub *domain.Submission) error {
	f.customerCalls++
	if f.failCustomer {
		return errors.New("ses unavailable")
	}
	return nil
}

func (f *fakeMailer) SendBusinessNotification(ctx context.Context, sub *domain.Submission) error {
	f.businessCalls++
	if f.failBusiness {
		return errors.New("ses unavailable")
	}
	return nil
}

func newTestHandler(st *fakeStore, m *fakeMailer, dev bool) *Handler {
	h := New(st, m, zap.NewNop(), dev)
	h.now = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) }
	return h
}

func submit(t *testing.T, h *Handler, body string) (events.APIGatewayProxyResponse, SubmitResponse) {
	t.Helper()
	resp, err := h.HandleSubmit(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       body,
	})
	if err != nil {
		t.Fatalf("handler must never return an error, got %v", err)
	}
	var parsed SubmitResponse
	if err := json.Unmarshal([]byte(resp.Body), &parsed); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	return resp, parsed
}

func TestHandleSubmit_Success(t *testing.T) {
	st := &fakeStore{}
	m := &fakeMailer{configured: true}
	h := newTestHandler(st, m, false)

	resp, body := submit(t, h, `{"name":"John Doe","email":"JOHN@Example.com","message":"Hi"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	if !body.Success {
		t.Error("expected success flag")
	}
	if matched := regexp.MustCompile(`^sub_\d+_[a-z0-9]+$`).MatchString(body.SubmissionID); !matched {
		t.Errorf("expected submissionId matching sub_<digits>_<alnum>, got %q", body.SubmissionID)
	}
	if body.Timestamp != "2026-03-14T09:26:53Z" {
		t.Errorf("expected stamped timestamp in response, got %q", body.Timestamp)
	}

	if len(st.puts) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(st.puts))
	}
	if st.puts[0].Email != "john@example.com" {
		t.Errorf("expected stored email lower-cased, got %q", st.puts[0].Email)
	}
	if st.puts[0].ID != body.SubmissionID {
		t.Errorf("response id %q does not match persisted id %q", body.SubmissionID, st.puts[0].ID)
	}
	if m.customerCalls != 1 || m.businessCalls != 1 {
		t.Errorf("expected both sends attempted, got customer=%d business=%d", m.customerCalls, m.businessCalls)
	}
}

func TestHandleSubmit_MissingRequiredFields(t *testing.T) {
	st := &fakeStore{}
	m := &fakeMailer{configured: true}
	h := newTestHandler(st, m, false)

	resp, body := submit(t, h, `{"name":"","email":"a@b.com","message":"x"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if body.Success {
		t.Error("expected failure flag")
	}
	if !strings.Contains(body.Message, "name is required") {
		t.Errorf("expected message to mention missing field, got %q", body.Message)
	}
	if len(body.Errors) == 0 {
		t.Error("expected errors list in response")
	}
	if len(st.puts) != 0 {
		t.Errorf("expected no persistence on validation failure, got %d", len(st.puts))
	}
	if m.customerCalls != 0 || m.businessCalls != 0 {
		t.Error("expected no notification on validation failure")
	}
}

func TestHandleSubmit_InvalidEmail(t *testing.T) {
	st := &fakeStore{}
	m := &fakeMailer{configured: true}
	h := newTestHandler(st, m, false)

	resp, body := submit(t, h, `{"name":"A","email":"not-an-email","message":"x"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body.Message, "invalid email format") {
		t.Errorf("expected message to mention email format, got %q", body.Message)
	}
	if len(st.puts) != 0 {
		t.Error("expected no persistence on validation failure")
	}
}

func TestHandleSubmit_MalformedBodyIsServerError(t *testing.T) {
	st := &fakeStore{}
	m := &fakeMailer{configured: true}
	h := newTestHandler(st, m, false)

	resp, body := submit(t, h, `{"name": `)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 for non-parseable body, got %d", resp.StatusCode)
	}
	if body.Success {
		t.Error("expected failure flag")
	}
	if len(st.puts) != 0 {
		t.Error("expected no persistence for malformed body")
	}
}

func TestHandleSubmit_PersistenceFailure(t *testing.T) {
	st := &fakeStore{failPut: true}
	m := &fakeMailer{configured: true}
	h := newTestHandler(st, m, false)

	resp, body := submit(t, h, `{"name":"A","email":"a@b.com","message":"x"}`)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if strings.Contains(body.Message, "throughput") {
		t.Errorf("internal detail leaked into production response: %q", body.Message)
	}
	if m.customerCalls != 0 || m.businessCalls != 0 {
		t.Error("expected no notification after persistence failure")
	}
}

func TestHandleSubmit_PersistenceFailureDevModeIncludesDetail(t *testing.T) {
	st := &fakeStore{failPut: true}
	m := &fakeMailer{configured: true}
	h := newTestHandler(st, m, true)

	_, body := submit(t, h, `{"name":"A","email":"a@b.com","message":"x"}`)

	if !strings.Contains(body.Message, "throughput") {
		t.Errorf("expected detail in development response, got %q", body.Message)
	}
}

func TestHandleSubmit_CustomerSendFailureDoesNotBlockBusinessSend(t *testing.T) {
	st := &fakeStore{}
	m := &fakeMailer{configured: true, failCustomer: true}
	h := newTestHandler(st, m, false)

	resp, body := submit(t, h, `{"name":"A","email":"a@b.com","message":"x"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 despite send failure, got %d", resp.StatusCode)
	}
	if !body.Success {
		t.Error("expected success flag despite send failure")
	}
	if m.businessCalls != 1 {
		t.Errorf("expected business send still attempted, got %d calls", m.businessCalls)
	}
}

func TestHandleSubmit_BusinessSendFailureKeepsSuccess(t *testing.T) {
	st := &fakeStore{}
	m := &fakeMailer{configured: true, failBusiness: true}
	h := newTestHandler(st, m, false)

	resp, _ := submit(t, h, `{"name":"A","email":"a@b.com","message":"x"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 despite send failure, got %d", resp.StatusCode)
	}
	if m.customerCalls != 1 {
		t.Errorf("expected customer send attempted, got %d calls", m.customerCalls)
	}
}

func TestHandleSubmit_MissingEmailConfigSkipsSends(t *testing.T) {
	st := &fakeStore{}
	m := &fakeMailer{configured: false}
	h := newTestHandler(st, m, false)

	resp, _ := submit(t, h, `{"name":"A","email":"a@b.com","message":"x"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 when email is unconfigured, got %d", resp.StatusCode)
	}
	if m.customerCalls != 0 || m.businessCalls != 0 {
		t.Error("expected both sends skipped when configuration is absent")
	}
}

func TestHandleSubmit_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeMailer{configured: true}, false)

	resp, err := h.HandleSubmit(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodDelete,
		Body:       "{}",
	})
	if err != nil {
		t.Fatalf("handler must never return an error, got %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}
