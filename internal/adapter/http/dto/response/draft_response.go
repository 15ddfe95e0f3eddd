package response

import (
	"encoding/json"
	"time"

	"proposal_gateway/internal/domain/entities"
)

type DraftResponse struct {
	ID        string                    `json:"id"`
	Step      int                       `json:"step" example:"0"`
	StepName  string                    `json:"stepName" example:"client_info"`
	StepLabel string                    `json:"stepLabel" example:"Client Information"`
	Form      entities.ProposalFormData `json:"form"`
	Errors    entities.FieldErrors      `json:"errors"`
	Reviewed  bool                      `json:"reviewed"`
	LastError string                    `json:"lastError,omitempty"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
	ExpiresAt time.Time                 `json:"expiresAt"`
}

func FromDraft(d entities.Draft) DraftResponse {
	errs := d.Errors
	if errs == nil {
		errs = entities.FieldErrors{}
	}
	form := d.Form
	if form.RequestedServices == nil {
		form.RequestedServices = []string{}
	}
	return DraftResponse{
		ID:        d.ID,
		Step:      int(d.Step),
		StepName:  d.Step.String(),
		StepLabel: d.Step.Label(),
		Form:      form,
		Errors:    errs,
		Reviewed:  d.Reviewed,
		LastError: d.LastError,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		ExpiresAt: d.ExpiresAt,
	}
}

// SubmissionResponse is returned when a draft became a proposal. Proposal is
// the backend's created record, relayed as-is.
type SubmissionResponse struct {
	ID       string          `json:"id" example:"665f1c2e9b1d"`
	Proposal json.RawMessage `json:"proposal" swaggertype:"object"`
}

// DraftValidationErrorResponse is a blocked step or submission.
type DraftValidationErrorResponse struct {
	Error string        `json:"error" example:"Please fix the highlighted fields"`
	Draft DraftResponse `json:"draft"`
}
