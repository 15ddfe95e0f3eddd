// Package wizard holds the proposal intake rules: per-step field validation
// and the transitions of a draft through the five ordered steps.
//
// Everything here is synchronous and side-effect free apart from mutating
// the draft it is handed.
package wizard

import (
	"fmt"
	"regexp"
	"strings"

	"proposal_gateway/internal/domain/entities"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	MsgClientNameRequired   = "Client name is required"
	MsgPhoneRequired        = "Phone number is required"
	MsgPhoneInvalid         = "Please enter a valid phone number"
	MsgEmailRequired        = "Email is required"
	MsgEmailInvalid         = "Please enter a valid email address"
	MsgPropertyTypeRequired = "Property type is required"
	MsgPropertyTypeInvalid  = "Please select a valid property type"
	MsgPropertySizePositive = "Property size must be greater than 0"
	MsgRegionRequired       = "Region is required"
	MsgRegionInvalid        = "Please select a valid region"
	MsgBudgetPositive       = "Budget must be greater than 0"
	MsgSiteAnalysisRequired = "Site analysis is required"
	MsgServicesRequired     = "At least one service is required"
	msgUnknownServiceFormat = "Unknown service: %s"
)

// ValidPhone reports whether s looks like a phone number: an optional
// leading +, then at least 10 digits, spaces, hyphens or parentheses.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidEmail reports whether s has the local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate returns the field errors of one step. The review step checks
// every field of every other step.
func Validate(step entities.WizardStep, form entities.ProposalFormData) entities.FieldErrors {
	errs := entities.FieldErrors{}
	switch step {
	case entities.StepClientInfo:
		validateClientInfo(form, errs)
	case entities.StepPropertyDetails:
		validatePropertyDetails(form, errs)
	case entities.StepSiteAnalysis:
		validateSiteAnalysis(form, errs)
	case entities.StepServicesSelection:
		validateServices(form, errs)
	case entities.StepReview:
		validateClientInfo(form, errs)
		validatePropertyDetails(form, errs)
		validateSiteAnalysis(form, errs)
		validateServices(form, errs)
	}
	return errs
}

// ValidateForEdit is the edit view's rule set: everything except the site
// analysis, which is only collected at creation.
func ValidateForEdit(form entities.ProposalFormData) entities.FieldErrors {
	errs := entities.FieldErrors{}
	validateClientInfo(form, errs)
	validatePropertyDetails(form, errs)
	validateServices(form, errs)
	return errs
}

func validateClientInfo(form entities.ProposalFormData, errs entities.FieldErrors) {
	if strings.TrimSpace(form.ClientName) == "" {
		errs[entities.FieldClientName] = MsgClientNameRequired
	}

	if strings.TrimSpace(form.ClientPhone) == "" {
		errs[entities.FieldClientPhone] = MsgPhoneRequired
	} else if !ValidPhone(form.ClientPhone) {
		errs[entities.FieldClientPhone] = MsgPhoneInvalid
	}

	if strings.TrimSpace(form.ClientEmail) == "" {
		errs[entities.FieldClientEmail] = MsgEmailRequired
	} else if !ValidEmail(form.ClientEmail) {
		errs[entities.FieldClientEmail] = MsgEmailInvalid
	}
}

func validatePropertyDetails(form entities.ProposalFormData, errs entities.FieldErrors) {
	switch {
	case form.PropertyType == "":
		errs[entities.FieldPropertyType] = MsgPropertyTypeRequired
	case !form.PropertyType.Valid():
		errs[entities.FieldPropertyType] = MsgPropertyTypeInvalid
	}

	// Written as !(x > 0) so NaN is rejected too.
	if !(form.PropertySize > 0) {
		errs[entities.FieldPropertySize] = MsgPropertySizePositive
	}

	switch {
	case form.Region == "":
		errs[entities.FieldRegion] = MsgRegionRequired
	case !form.Region.Valid():
		errs[entities.FieldRegion] = MsgRegionInvalid
	}

	if !(form.Budget > 0) {
		errs[entities.FieldBudget] = MsgBudgetPositive
	}
}

func validateSiteAnalysis(form entities.ProposalFormData, errs entities.FieldErrors) {
	if strings.TrimSpace(form.SiteAnalysis) == "" {
		errs[entities.FieldSiteAnalysis] = MsgSiteAnalysisRequired
	}
}

func validateServices(form entities.ProposalFormData, errs entities.FieldErrors) {
	if len(form.RequestedServices) == 0 {
		errs[entities.FieldRequestedServices] = MsgServicesRequired
		return
	}
	for _, s := range form.RequestedServices {
		if !entities.IsCatalogService(s) {
			errs[entities.FieldRequestedServices] = fmt.Sprintf(msgUnknownServiceFormat, s)
			return
		}
	}
}
