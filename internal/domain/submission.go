package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"contactform/pkg/apperr"
)

// NoValue marks optional fields the submitter left blank. Stored as-is so
// downstream consumers never see an empty string.
const NoValue = "Not provided"

// StatusNew is the lifecycle tag every submission starts with. Status changes
// happen downstream; this service never updates a record.
const StatusNew = "new"

// Liberal syntactic check, matching the client-side validation. Full address
// verification is deliberately out of scope.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmitPayload is the untrusted request body of a contact-form submission.
type SubmitPayload struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Destination     string `json:"destination"`
	TravelDateStart string `json:"travelDateStart"`
	TravelDateEnd   string `json:"travelDateEnd"`
	Travelers       string `json:"travelers"`
	Message         string `json:"message"`
}

// Validate checks the required fields and the email shape. Optional fields
// pass through unchecked; downstream consumers tolerate free-form data.
func (p *SubmitPayload) Validate() *apperr.Error {
	var violations []string
	if strings.TrimSpace(p.Name) == "" {
		violations = append(violations, "name is required")
	}
	email := strings.TrimSpace(p.Email)
	if email == "" {
		violations = append(violations, "email is required")
	} else if !emailPattern.MatchString(email) {
		violations = append(violations, "invalid email format")
	}
	if strings.TrimSpace(p.Message) == "" {
		violations = append(violations, "message is required")
	}
	if len(violations) > 0 {
		return apperr.Validation(strings.Join(violations, "; "), violations)
	}
	return nil
}

// Submission is the canonical record for one inquiry. The id is the partition
// key; email is additionally the hash key of the email-index GSI.
type Submission struct {
	ID              string `json:"id" dynamodbav:"id"`
	Name            string `json:"name" dynamodbav:"name"`
	Email           string `json:"email" dynamodbav:"email"`
	Phone           string `json:"phone" dynamodbav:"phone"`
	Destination     string `json:"destination" dynamodbav:"destination"`
	TravelDateStart string `json:"travelDateStart" dynamodbav:"travelDateStart"`
	TravelDateEnd   string `json:"travelDateEnd" dynamodbav:"travelDateEnd"`
	Travelers       string `json:"travelers" dynamodbav:"travelers"`
	Message         string `json:"message" dynamodbav:"message"`
	SubmittedAt     string `json:"submittedAt" dynamodbav:"submittedAt"`
	Status          string `json:"status" dynamodbav:"status"`
}

// NewSubmission builds the canonical record from a validated payload.
// The email is lower-cased and trimmed, blank optional fields become NoValue,
// and submittedAt is stamped from now (UTC, RFC 3339) exactly once.
func NewSubmission(p *SubmitPayload, now time.Time) *Submission {
	return &Submission{
		ID:              NewSubmissionID(now),
		Name:            strings.TrimSpace(p.Name),
		Email:           strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:           optional(p.Phone),
		Destination:     optional(p.Destination),
		TravelDateStart: optional(p.TravelDateStart),
		TravelDateEnd:   optional(p.TravelDateEnd),
		Travelers:       optional(p.Travelers),
		Message:         strings.TrimSpace(p.Message),
		SubmittedAt:     now.UTC().Format(time.RFC3339),
		Status:          StatusNew,
	}
}

// NewSubmissionID generates the reference number shown to the customer,
// sub_<unix-millis>_<12 hex chars>. The suffix comes from a UUID, so no
// external ID service is involved and collisions are negligible.
func NewSubmissionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("sub_%d_%s", now.UnixMilli(), suffix)
}

func optional(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return NoValue
	}
	return v
}
