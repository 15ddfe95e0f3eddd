package routes

import (
	"net/http"

	"proposal_gateway/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProposals  = "/proposals"
	PathDrafts     = "/drafts"
	PathValidation = "/validation"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

// addProposalRoutes mirrors the backend's /api/proposals surface.
func addProposalRoutes(rg *gin.RouterGroup, h *handlers.ProposalHandler) {
	proposals := rg.Group(PathProposals)
	{
		proposals.GET("", h.ListProposals)
		proposals.POST("", h.CreateProposal)
		proposals.GET("/:id", h.GetProposal)
		proposals.PUT("/:id", h.UpdateProposal)
		proposals.DELETE("/:id", h.DeleteProposal)
	}
}

func addDraftRoutes(rg *gin.RouterGroup, h *handlers.DraftHandler) {
	drafts := rg.Group(PathDrafts)
	{
		drafts.POST("", h.StartDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.PATCH("/:id", h.UpdateDraftFields)
		drafts.DELETE("/:id", h.DiscardDraft)
		drafts.POST("/:id/services", h.ToggleDraftService)
		drafts.POST("/:id/next", h.NextStep)
		drafts.POST("/:id/back", h.PreviousStep)
		drafts.PUT("/:id/review", h.SetReviewed)
		drafts.POST("/:id/submit", h.SubmitDraft)
		drafts.DELETE("/:id/error", h.DismissDraftError)
	}
}

func addValidationRoutes(rg *gin.RouterGroup, h *handlers.ValidationHandler) {
	rg.POST(PathValidation+"/:scope", h.ValidateForm)
}
