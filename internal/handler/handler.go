package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"contactform/internal/domain"
	"contactform/pkg/apperr"
)

// Store is the persistence collaborator of the submit pipeline.
type Store interface {
	Put(ctx context.Context, sub *domain.Submission) error
}

// Mailer is the notification collaborator. Both sends are best-effort.
type Mailer interface {
	Configured() bool
	SendCustomerConfirmation(ctx context.Context, sub *domain.Submission) error
	SendBusinessNotification(ctx context.Context, sub *domain.Submission) error
}

// SubmitResponse is the JSON body returned for every submission request.
type SubmitResponse struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	SubmissionID string   `json:"submissionId,omitempty"`
	Timestamp    string   `json:"timestamp,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

// Handler runs the submission pipeline:
// parse, validate, build record, persist, notify, respond.
// It never returns an error past its boundary; all failures become responses.
type Handler struct {
	store  Store
	mailer Mailer
	log    *zap.Logger
	dev    bool
	now    func() time.Time
}

// New wires the handler with its collaborators. dev controls whether error
// detail is included in server-error responses.
func New(store Store, mailer Mailer, log *zap.Logger, dev bool) *Handler {
	return &Handler{
		store:  store,
		mailer: mailer,
		log:    log,
		dev:    dev,
		now:    time.Now,
	}
}

// HandleSubmit processes one contact-form submission.
func (h *Handler) HandleSubmit(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod != "" && request.HTTPMethod != http.MethodPost {
		return respond(http.StatusMethodNotAllowed, SubmitResponse{
			Success: false,
			Message: "Method not allowed",
		}), nil
	}

	// Parsing precedes validation: a non-parseable body is a fatal error,
	// not a validation failure.
	var payload domain.SubmitPayload
	if err := json.Unmarshal([]byte(request.Body), &payload); err != nil {
		h.log.Error("failed to parse request body", zap.Error(err))
		return h.serverError(apperr.Internal(err)), nil
	}

	if verr := payload.Validate(); verr != nil {
		h.log.Info("submission rejected", zap.Strings("violations", verr.Fields))
		return respond(verr.HTTPStatus, SubmitResponse{
			Success: false,
			Message: fmt.Sprintf("Validation failed: %s", verr.Message),
			Errors:  verr.Fields,
		}), nil
	}

	sub := domain.NewSubmission(&payload, h.now())
	h.log.Info("submission received",
		zap.String("submissionId", sub.ID),
		zap.String("email", sub.Email))

	// A persistence failure is fatal: no confirmation may reference a record
	// that cannot be retrieved later.
	if err := h.store.Put(ctx, sub); err != nil {
		perr := apperr.Persistence(err)
		h.log.Error("failed to persist submission",
			zap.String("submissionId", sub.ID),
			zap.Error(err))
		return h.serverError(perr), nil
	}

	h.notify(ctx, sub)

	return respond(http.StatusOK, SubmitResponse{
		Success:      true,
		Message:      "Thank you for your inquiry! We'll get back to you within 24 hours.",
		SubmissionID: sub.ID,
		Timestamp:    sub.SubmittedAt,
	}), nil
}

// notify attempts both sends. Each is individually caught; neither failure
// alters the response already determined by the persistence step.
func (h *Handler) notify(ctx context.Context, sub *domain.Submission) {
	if !h.mailer.Configured() {
		h.log.Warn("email configuration missing, skipping notifications",
			zap.String("submissionId", sub.ID))
		return
	}

	if err := h.mailer.SendCustomerConfirmation(ctx, sub); err != nil {
		h.log.Error("failed to send customer confirmation",
			zap.String("submissionId", sub.ID),
			zap.Error(err))
	}
	if err := h.mailer.SendBusinessNotification(ctx, sub); err != nil {
		h.log.Error("failed to send business notification",
			zap.String("submissionId", sub.ID),
			zap.Error(err))
	}
}

func (h *Handler) serverError(err *apperr.Error) events.APIGatewayProxyResponse {
	message := "Something went wrong processing your request. Please try again later."
	if h.dev {
		message = fmt.Sprintf("%s (%v)", message, err)
	}
	return respond(err.HTTPStatus, SubmitResponse{
		Success: false,
		Message: message,
	})
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"success":false,"message":"Error generating response"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}
