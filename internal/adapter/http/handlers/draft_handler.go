package handlers

import (
	"errors"
	"log"
	"net/http"

	request "proposal_gateway/internal/adapter/http/dto/request"
	response "proposal_gateway/internal/adapter/http/dto/response"
	"proposal_gateway/internal/domain/entities"
	"proposal_gateway/internal/domain/wizard"
	"proposal_gateway/internal/usecase"
	"proposal_gateway/pkg"

	"github.com/gin-gonic/gin"
)

const msgFixHighlightedFields = "Please fix the highlighted fields"

// DraftHandler serves the intake wizard. A draft keeps the form between
// steps so the browser only sends what the user touched.
type DraftHandler struct {
	usecase usecase.IDraftUseCase
}

func NewDraftHandler(uc usecase.IDraftUseCase) *DraftHandler {
	return &DraftHandler{usecase: uc}
}

// StartDraft godoc
// @Summary  Start a proposal draft
// @Tags     drafts
// @Produce  json
// @Success  201  {object}  response.DraftResponse
// @Failure  500  {object}  pkg.HTTPError
// @Router   /api/drafts [post]
func (h *DraftHandler) StartDraft(c *gin.Context) {
	d, err := h.usecase.Start(c.Request.Context())
	if err != nil {
		h.writeError(c, "start", err, d)
		return
	}
	c.JSON(http.StatusCreated, response.FromDraft(d))
}

// GetDraft godoc
// @Summary  Get a proposal draft
// @Tags     drafts
// @Produce  json
// @Param    id   path      string  true  "Draft ID"
// @Success  200  {object}  response.DraftResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /api/drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	d, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	h.writeDraft(c, "get", d, err)
}

// UpdateDraftFields godoc
// @Summary  Update draft fields
// @Description Applies only the fields present in the body and clears their errors.
// @Tags     drafts
// @Accept   json
// @Produce  json
// @Param    id    path      string                      true  "Draft ID"
// @Param    body  body      request.DraftFieldsRequest  true  "Touched fields"
// @Success  200   {object}  response.DraftResponse
// @Failure  400   {object}  pkg.HTTPError
// @Failure  404   {object}  pkg.HTTPError
// @Router   /api/drafts/{id} [patch]
func (h *DraftHandler) UpdateDraftFields(c *gin.Context) {
	var payload request.DraftFieldsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequestBody.HTTPStatus, errInvalidRequestBody.ToHTTPError())
		return
	}
	d, err := h.usecase.UpdateFields(c.Request.Context(), c.Param("id"), payload.ToPatch())
	h.writeDraft(c, "update", d, err)
}

// ToggleDraftService godoc
// @Summary  Toggle a requested service
// @Tags     drafts
// @Accept   json
// @Produce  json
// @Param    id    path      string                        true  "Draft ID"
// @Param    body  body      request.ToggleServiceRequest  true  "Service"
// @Success  200   {object}  response.DraftResponse
// @Failure  400   {object}  pkg.HTTPError
// @Failure  404   {object}  pkg.HTTPError
// @Router   /api/drafts/{id}/services [post]
func (h *DraftHandler) ToggleDraftService(c *gin.Context) {
	var payload request.ToggleServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequestBody.HTTPStatus, errInvalidRequestBody.ToHTTPError())
		return
	}
	d, err := h.usecase.ToggleService(c.Request.Context(), c.Param("id"), payload.Service)
	h.writeDraft(c, "toggle_service", d, err)
}

// NextStep godoc
// @Summary  Validate the current step and advance
// @Tags     drafts
// @Produce  json
// @Param    id   path      string  true  "Draft ID"
// @Success  200  {object}  response.DraftResponse
// @Failure  409  {object}  pkg.HTTPError
// @Failure  422  {object}  response.DraftValidationErrorResponse
// @Router   /api/drafts/{id}/next [post]
func (h *DraftHandler) NextStep(c *gin.Context) {
	d, err := h.usecase.Next(c.Request.Context(), c.Param("id"))
	h.writeDraft(c, "next", d, err)
}

// PreviousStep godoc
// @Summary  Go back one step
// @Tags     drafts
// @Produce  json
// @Param    id   path      string  true  "Draft ID"
// @Success  200  {object}  response.DraftResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /api/drafts/{id}/back [post]
func (h *DraftHandler) PreviousStep(c *gin.Context) {
	d, err := h.usecase.Back(c.Request.Context(), c.Param("id"))
	h.writeDraft(c, "back", d, err)
}

// SetReviewed godoc
// @Summary  Set the review acknowledgement
// @Tags     drafts
// @Accept   json
// @Produce  json
// @Param    id    path      string                 true  "Draft ID"
// @Param    body  body      request.ReviewRequest  true  "Acknowledgement"
// @Success  200   {object}  response.DraftResponse
// @Failure  400   {object}  pkg.HTTPError
// @Router   /api/drafts/{id}/review [put]
func (h *DraftHandler) SetReviewed(c *gin.Context) {
	var payload request.ReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequestBody.HTTPStatus, errInvalidRequestBody.ToHTTPError())
		return
	}
	d, err := h.usecase.SetReviewed(c.Request.Context(), c.Param("id"), *payload.Reviewed)
	h.writeDraft(c, "review", d, err)
}

// SubmitDraft godoc
// @Summary  Submit the reviewed draft as a proposal
// @Tags     drafts
// @Produce  json
// @Param    id   path      string  true  "Draft ID"
// @Success  201  {object}  response.SubmissionResponse
// @Failure  409  {object}  pkg.HTTPError
// @Failure  422  {object}  response.DraftValidationErrorResponse
// @Failure  500  {object}  pkg.HTTPError
// @Router   /api/drafts/{id}/submit [post]
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	res, err := h.usecase.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "submit", err, res.Draft)
		return
	}
	c.JSON(http.StatusCreated, response.SubmissionResponse{ID: res.ProposalID, Proposal: res.Proposal})
}

// DismissDraftError godoc
// @Summary  Dismiss the last submission error
// @Tags     drafts
// @Produce  json
// @Param    id   path      string  true  "Draft ID"
// @Success  200  {object}  response.DraftResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /api/drafts/{id}/error [delete]
func (h *DraftHandler) DismissDraftError(c *gin.Context) {
	d, err := h.usecase.DismissError(c.Request.Context(), c.Param("id"))
	h.writeDraft(c, "dismiss_error", d, err)
}

// DiscardDraft godoc
// @Summary  Discard a draft
// @Tags     drafts
// @Param    id   path  string  true  "Draft ID"
// @Success  204
// @Failure  404  {object}  pkg.HTTPError
// @Router   /api/drafts/{id} [delete]
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	if err := h.usecase.Discard(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "discard", err, entities.Draft{})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DraftHandler) writeDraft(c *gin.Context, operation string, d entities.Draft, err error) {
	if err != nil {
		h.writeError(c, operation, err, d)
		return
	}
	c.JSON(http.StatusOK, response.FromDraft(d))
}

// writeError renders field errors with the draft so the form can show them;
// every other failure is a plain {"error"} body.
func (h *DraftHandler) writeError(c *gin.Context, operation string, err error, d entities.Draft) {
	if errors.Is(err, wizard.ErrStepInvalid) && d.ID != "" {
		log.Printf("[draft][handler] %s blocked draft_id=%s errors=%d", operation, d.ID, len(d.Errors))
		c.JSON(http.StatusUnprocessableEntity, response.DraftValidationErrorResponse{
			Error: msgFixHighlightedFields,
			Draft: response.FromDraft(d),
		})
		return
	}
	appErr := mapDraftError(err)
	log.Printf("[draft][handler] %s failed status=%d code=%s err=%v", operation, appErr.HTTPStatus, appErr.Code, err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapDraftError(err error) *pkg.AppError {
	var rejection *usecase.BackendRejectionError
	switch {
	case errors.Is(err, usecase.ErrInvalidDraftID):
		return pkg.NewDomainErrorSimple("INVALID_DRAFT_ID", "Invalid draft id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDraftNotFound):
		return pkg.NewDomainErrorSimple("DRAFT_NOT_FOUND", "Draft not found", http.StatusNotFound)
	case errors.Is(err, wizard.ErrStepInvalid):
		return pkg.NewDomainErrorSimple("STEP_INVALID", msgFixHighlightedFields, http.StatusUnprocessableEntity)
	case errors.Is(err, wizard.ErrUnknownService):
		return pkg.NewDomainErrorSimple("UNKNOWN_SERVICE", "Unknown service", http.StatusBadRequest)
	case errors.Is(err, wizard.ErrNoNextStep):
		return pkg.NewDomainErrorSimple("NO_NEXT_STEP", "Already at the last step", http.StatusConflict)
	case errors.Is(err, wizard.ErrNotOnReviewStep):
		return pkg.NewDomainErrorSimple("NOT_ON_REVIEW_STEP", "Draft must be on the review step to submit", http.StatusConflict)
	case errors.Is(err, wizard.ErrNotReviewed):
		return pkg.NewDomainErrorSimple("NOT_REVIEWED", "Please confirm you have reviewed the information", http.StatusConflict)
	case errors.Is(err, usecase.ErrSubmissionInFlight):
		return pkg.NewDomainErrorSimple("SUBMISSION_IN_FLIGHT", "Submission already in progress", http.StatusConflict)
	case errors.As(err, &rejection):
		return pkg.NewDomainError("BACKEND_REJECTED", rejection.Message, err, rejection.StatusCode)
	case errors.Is(err, usecase.ErrMissingRequiredFields):
		return pkg.NewDomainErrorSimple("MISSING_REQUIRED_FIELDS", "Missing required fields", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
