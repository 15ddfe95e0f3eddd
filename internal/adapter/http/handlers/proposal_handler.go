package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"proposal_gateway/internal/domain/entities"
	"proposal_gateway/internal/usecase"
	"proposal_gateway/pkg"

	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json; charset=utf-8"

var (
	errInvalidRequestBody = pkg.NewDomainErrorSimple("INVALID_REQUEST_BODY", "Invalid request body", http.StatusBadRequest)
)

// ProposalHandler exposes the proposals backend to browsers under
// /api/proposals. Bodies are relayed as the backend sent them.
type ProposalHandler struct {
	usecase usecase.IProposalUseCase
}

func NewProposalHandler(uc usecase.IProposalUseCase) *ProposalHandler {
	return &ProposalHandler{usecase: uc}
}

// ListProposals godoc
// @Summary      List proposals
// @Tags         proposals
// @Produce      json
// @Success      200  {array}   entities.Proposal
// @Failure      500  {object}  pkg.HTTPError
// @Router       /api/proposals [get]
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	h.relay(c, "list", func(ctx context.Context) (entities.ProxyResult, error) {
		return h.usecase.List(ctx)
	})
}

// GetProposal godoc
// @Summary      Get a proposal
// @Tags         proposals
// @Produce      json
// @Param        id   path      string  true  "Proposal ID"
// @Success      200  {object}  entities.Proposal
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /api/proposals/{id} [get]
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id := c.Param("id")
	h.relay(c, "get", func(ctx context.Context) (entities.ProxyResult, error) {
		return h.usecase.Get(ctx, id)
	})
}

// CreateProposal godoc
// @Summary      Create a proposal
// @Description  Forwards the payload verbatim. clientName, clientPhone and clientEmail are required.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        body  body      entities.ProposalFormData  true  "Proposal payload"
// @Success      201   {object}  entities.Proposal
// @Failure      400   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /api/proposals [post]
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	payload, ok := readJSONBody(c)
	if !ok {
		return
	}
	h.relay(c, "create", func(ctx context.Context) (entities.ProxyResult, error) {
		return h.usecase.Create(ctx, payload)
	})
}

// UpdateProposal godoc
// @Summary      Update a proposal
// @Description  Forwards the payload verbatim. clientName, clientPhone and clientEmail are required.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Proposal ID"
// @Param        body  body      entities.ProposalFormData  true  "Proposal payload"
// @Success      200   {object}  entities.Proposal
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /api/proposals/{id} [put]
func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	id := c.Param("id")
	payload, ok := readJSONBody(c)
	if !ok {
		return
	}
	h.relay(c, "update", func(ctx context.Context) (entities.ProxyResult, error) {
		return h.usecase.Update(ctx, id, payload)
	})
}

// DeleteProposal godoc
// @Summary      Delete a proposal
// @Tags         proposals
// @Produce      json
// @Param        id   path      string  true  "Proposal ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /api/proposals/{id} [delete]
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	id := c.Param("id")
	h.relay(c, "delete", func(ctx context.Context) (entities.ProxyResult, error) {
		return h.usecase.Delete(ctx, id)
	})
}

func (h *ProposalHandler) relay(c *gin.Context, operation string, call func(ctx context.Context) (entities.ProxyResult, error)) {
	res, err := call(c.Request.Context())
	if err != nil {
		appErr := mapProposalError(err)
		log.Printf("[proposal][handler] %s failed status=%d code=%s err=%v", operation, appErr.HTTPStatus, appErr.Code, err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Data(res.StatusCode, jsonContentType, res.Body)
}

// readJSONBody returns the raw body when it is a JSON value. It writes the
// 400 itself otherwise.
func readJSONBody(c *gin.Context) (json.RawMessage, bool) {
	raw, err := c.GetRawData()
	if err != nil || !json.Valid(raw) {
		c.JSON(errInvalidRequestBody.HTTPStatus, errInvalidRequestBody.ToHTTPError())
		return nil, false
	}
	return raw, true
}

func mapProposalError(err error) *pkg.AppError {
	var rejection *usecase.BackendRejectionError
	switch {
	case errors.As(err, &rejection):
		return pkg.NewDomainError("BACKEND_REJECTED", rejection.Message, err, rejection.StatusCode)
	case errors.Is(err, usecase.ErrMissingRequiredFields):
		return pkg.NewDomainErrorSimple("MISSING_REQUIRED_FIELDS", "Missing required fields", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidProposalPayload):
		return errInvalidRequestBody
	case errors.Is(err, usecase.ErrInvalidProposalID):
		return pkg.NewDomainErrorSimple("INVALID_PROPOSAL_ID", "Invalid proposal id", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
