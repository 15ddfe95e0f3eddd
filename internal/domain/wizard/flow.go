package wizard

import (
	"errors"

	"proposal_gateway/internal/domain/entities"
)

var (
	ErrStepInvalid     = errors.New("current step has invalid fields")
	ErrNoNextStep      = errors.New("already at the last step")
	ErrUnknownService  = errors.New("service is not in the catalog")
	ErrNotOnReviewStep = errors.New("draft is not on the review step")
	ErrNotReviewed     = errors.New("review acknowledgement is required")
)

// FieldPatch carries the fields a user touched. Nil means untouched.
type FieldPatch struct {
	ClientName        *string
	ClientPhone       *string
	ClientEmail       *string
	PropertyType      *entities.PropertyType
	PropertySize      *float64
	Region            *entities.Region
	Budget            *float64
	RequestedServices []string
	SiteAnalysis      *string
}

// Apply writes the touched fields into the draft and clears each touched
// field's existing error. Errors of untouched fields are left alone.
func Apply(d *entities.Draft, p FieldPatch) {
	if p.ClientName != nil {
		d.Form.ClientName = *p.ClientName
		clearError(d, entities.FieldClientName)
	}
	if p.ClientPhone != nil {
		d.Form.ClientPhone = *p.ClientPhone
		clearError(d, entities.FieldClientPhone)
	}
	if p.ClientEmail != nil {
		d.Form.ClientEmail = *p.ClientEmail
		clearError(d, entities.FieldClientEmail)
	}
	if p.PropertyType != nil {
		d.Form.PropertyType = *p.PropertyType
		clearError(d, entities.FieldPropertyType)
	}
	if p.PropertySize != nil {
		d.Form.PropertySize = *p.PropertySize
		clearError(d, entities.FieldPropertySize)
	}
	if p.Region != nil {
		d.Form.Region = *p.Region
		clearError(d, entities.FieldRegion)
	}
	if p.Budget != nil {
		d.Form.Budget = *p.Budget
		clearError(d, entities.FieldBudget)
	}
	if p.RequestedServices != nil {
		d.Form.RequestedServices = append([]string{}, p.RequestedServices...)
		clearError(d, entities.FieldRequestedServices)
	}
	if p.SiteAnalysis != nil {
		d.Form.SiteAnalysis = *p.SiteAnalysis
		clearError(d, entities.FieldSiteAnalysis)
	}
}

// ToggleService selects the service if absent, deselects it otherwise.
func ToggleService(d *entities.Draft, service string) error {
	if !entities.IsCatalogService(service) {
		return ErrUnknownService
	}
	if d.Form.HasService(service) {
		kept := make([]string, 0, len(d.Form.RequestedServices))
		for _, s := range d.Form.RequestedServices {
			if s != service {
				kept = append(kept, s)
			}
		}
		d.Form.RequestedServices = kept
	} else {
		d.Form.RequestedServices = append(d.Form.RequestedServices, service)
	}
	clearError(d, entities.FieldRequestedServices)
	return nil
}

// Next validates the current step and advances when it has no errors.
// The error set is stored on the draft either way.
func Next(d *entities.Draft) error {
	if d.Step >= entities.StepReview {
		return ErrNoNextStep
	}
	d.Errors = Validate(d.Step, d.Form)
	if !d.Errors.Empty() {
		return ErrStepInvalid
	}
	d.Step++
	return nil
}

// Back moves one step back without validating. It is a no-op on the first step.
func Back(d *entities.Draft) {
	if d.Step > entities.StepClientInfo {
		d.Step--
	}
}

func SetReviewed(d *entities.Draft, reviewed bool) {
	d.Reviewed = reviewed
}

// ReadyToSubmit checks the draft can be sent: on the review step,
// acknowledged, and every field valid. A user who went back and broke an
// earlier field is stopped here.
func ReadyToSubmit(d *entities.Draft) error {
	if d.Step != entities.StepReview {
		return ErrNotOnReviewStep
	}
	if !d.Reviewed {
		return ErrNotReviewed
	}
	d.Errors = Validate(entities.StepReview, d.Form)
	if !d.Errors.Empty() {
		return ErrStepInvalid
	}
	return nil
}

func clearError(d *entities.Draft, field string) {
	if d.Errors != nil {
		delete(d.Errors, field)
	}
}
