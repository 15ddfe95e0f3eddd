package request

import (
	"proposal_gateway/internal/domain/entities"
	"proposal_gateway/internal/domain/wizard"
)

// DraftFieldsRequest is a partial form update. Only fields present in the
// JSON body are applied; each applied field loses its current error.
type DraftFieldsRequest struct {
	ClientName        *string   `json:"clientName"`
	ClientPhone       *string   `json:"clientPhone"`
	ClientEmail       *string   `json:"clientEmail"`
	PropertyType      *string   `json:"propertyType"`
	PropertySize      *float64  `json:"propertySize"`
	Region            *string   `json:"region"`
	Budget            *float64  `json:"budget"`
	RequestedServices *[]string `json:"requestedServices"`
	SiteAnalysis      *string   `json:"siteAnalysis"`
}

func (r DraftFieldsRequest) ToPatch() wizard.FieldPatch {
	p := wizard.FieldPatch{
		ClientName:   r.ClientName,
		ClientPhone:  r.ClientPhone,
		ClientEmail:  r.ClientEmail,
		PropertySize: r.PropertySize,
		Budget:       r.Budget,
		SiteAnalysis: r.SiteAnalysis,
	}
	if r.PropertyType != nil {
		pt := entities.PropertyType(*r.PropertyType)
		p.PropertyType = &pt
	}
	if r.Region != nil {
		region := entities.Region(*r.Region)
		p.Region = &region
	}
	if r.RequestedServices != nil {
		p.RequestedServices = append([]string{}, *r.RequestedServices...)
	}
	return p
}

type ToggleServiceRequest struct {
	Service string `json:"service" binding:"required" example:"Kitchen Remodel"`
}

type ReviewRequest struct {
	Reviewed *bool `json:"reviewed" binding:"required" example:"true"`
}
