package entities

import "time"

// WizardStep is a position in the five-step intake flow.
type WizardStep int

const (
	StepClientInfo WizardStep = iota
	StepPropertyDetails
	StepSiteAnalysis
	StepServicesSelection
	StepReview
)

// WizardSteps lists every step in order.
var WizardSteps = []WizardStep{
	StepClientInfo,
	StepPropertyDetails,
	StepSiteAnalysis,
	StepServicesSelection,
	StepReview,
}

var stepNames = map[WizardStep]string{
	StepClientInfo:        "client_info",
	StepPropertyDetails:   "property_details",
	StepSiteAnalysis:      "site_analysis",
	StepServicesSelection: "services_selection",
	StepReview:            "review",
}

var stepLabels = map[WizardStep]string{
	StepClientInfo:        "Client Information",
	StepPropertyDetails:   "Property Details",
	StepSiteAnalysis:      "Site Analysis",
	StepServicesSelection: "Services Selection",
	StepReview:            "Review & Submit",
}

func (s WizardStep) Valid() bool {
	return s >= StepClientInfo && s <= StepReview
}

func (s WizardStep) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s WizardStep) Label() string {
	return stepLabels[s]
}

func ParseWizardStep(name string) (WizardStep, bool) {
	for step, n := range stepNames {
		if n == name {
			return step, true
		}
	}
	return 0, false
}

// Field names used as FieldErrors keys. They match the JSON field names.
const (
	FieldClientName        = "clientName"
	FieldClientPhone       = "clientPhone"
	FieldClientEmail       = "clientEmail"
	FieldPropertyType      = "propertyType"
	FieldPropertySize      = "propertySize"
	FieldRegion            = "region"
	FieldBudget            = "budget"
	FieldRequestedServices = "requestedServices"
	FieldSiteAnalysis      = "siteAnalysis"
)

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// Draft is a wizard session: the form as accumulated so far plus the
// position in the flow.
//
// Storage model:
//   - memory: map keyed by id
//   - redis: key proposal:draft:{id}, JSON value, TTL
//   - DynamoDB: PK id, expires_at epoch seconds for table TTL
type Draft struct {
	ID        string           `json:"id"`
	Step      WizardStep       `json:"step"`
	Form      ProposalFormData `json:"form"`
	Errors    FieldErrors      `json:"errors"`
	Reviewed  bool             `json:"reviewed"`
	LastError string           `json:"last_error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

func (d Draft) Expired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && !now.Before(d.ExpiresAt)
}
