package handlers

import (
	"net/http"

	request "proposal_gateway/internal/adapter/http/dto/request"
	response "proposal_gateway/internal/adapter/http/dto/response"
	"proposal_gateway/internal/domain/entities"
	"proposal_gateway/internal/domain/wizard"
	"proposal_gateway/pkg"

	"github.com/gin-gonic/gin"
)

// ScopeEdit validates a whole form the way the edit view does.
const ScopeEdit = "edit"

// ValidationHandler runs the wizard rules without a draft.
type ValidationHandler struct{}

func NewValidationHandler() *ValidationHandler {
	return &ValidationHandler{}
}

// ValidateForm godoc
// @Summary      Validate a proposal form
// @Description  scope is a step name (client_info, property_details, site_analysis, services_selection, review) or "edit".
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        scope  path      string                     true  "Step name or edit"
// @Param        body   body      entities.ProposalFormData  true  "Form"
// @Success      200    {object}  response.ValidationResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      422    {object}  response.ValidationResponse
// @Router       /api/validation/{scope} [post]
func (h *ValidationHandler) ValidateForm(c *gin.Context) {
	scope := c.Param("scope")
	var validate func(entities.ProposalFormData) entities.FieldErrors
	if scope == ScopeEdit {
		validate = wizard.ValidateForEdit
	} else if step, ok := entities.ParseWizardStep(scope); ok {
		validate = func(form entities.ProposalFormData) entities.FieldErrors {
			return wizard.Validate(step, form)
		}
	} else {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("UNKNOWN_SCOPE", "Unknown validation scope", http.StatusBadRequest).ToHTTPError())
		return
	}

	var payload request.ProposalFormRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequestBody.HTTPStatus, errInvalidRequestBody.ToHTTPError())
		return
	}

	res := response.FromFieldErrors(validate(payload.ToForm()))
	if !res.Valid {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
