package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"contactform/internal/domain"
	"contactform/internal/store"
)

// ReadStore is the persistence collaborator of the query handler.
type ReadStore interface {
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	QueryByEmail(ctx context.Context, email string) ([]domain.Submission, error)
}

// QueryHandler serves submission lookups: by reference number via the path
// parameter, or by submitter email via the email-index GSI. Read-only.
type QueryHandler struct {
	store ReadStore
	log   *zap.Logger
}

// NewQuery creates a QueryHandler.
func NewQuery(store ReadStore, log *zap.Logger) *QueryHandler {
	return &QueryHandler{store: store, log: log}
}

// HandleQuery processes one lookup request.
func (h *QueryHandler) HandleQuery(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod != "" && request.HTTPMethod != http.MethodGet {
		return respond(http.StatusMethodNotAllowed, SubmitResponse{
			Success: false,
			Message: "Method not allowed",
		}), nil
	}

	if id := request.PathParameters["id"]; id != "" {
		sub, err := h.store.GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return respond(http.StatusNotFound, SubmitResponse{
				Success: false,
				Message: "Submission not found",
			}), nil
		}
		if err != nil {
			h.log.Error("failed to get submission", zap.String("submissionId", id), zap.Error(err))
			return respond(http.StatusInternalServerError, SubmitResponse{
				Success: false,
				Message: "Something went wrong processing your request. Please try again later.",
			}), nil
		}
		return respond(http.StatusOK, sub), nil
	}

	email := strings.ToLower(strings.TrimSpace(request.QueryStringParameters["email"]))
	if email == "" {
		return respond(http.StatusBadRequest, SubmitResponse{
			Success: false,
			Message: "Provide a submission id or an email query parameter",
		}), nil
	}

	subs, err := h.store.QueryByEmail(ctx, email)
	if err != nil {
		h.log.Error("failed to query submissions", zap.String("email", email), zap.Error(err))
		return respond(http.StatusInternalServerError, SubmitResponse{
			Success: false,
			Message: "Something went wrong processing your request. Please try again later.",
		}), nil
	}
	return respond(http.StatusOK, subs), nil
}
