package entities

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PropertyType is the kind of property the client wants worked on.
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "residential"
	PropertyTypeCommercial  PropertyType = "commercial"
	PropertyTypeIndustrial  PropertyType = "industrial"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeIndustrial:
		return true
	}
	return false
}

// Region is the service region the property sits in.
type Region string

const (
	RegionNorth Region = "north"
	RegionSouth Region = "south"
	RegionEast  Region = "east"
	RegionWest  Region = "west"
)

func (r Region) Valid() bool {
	switch r {
	case RegionNorth, RegionSouth, RegionEast, RegionWest:
		return true
	}
	return false
}

// ProposalStatus is owned by the proposals backend. The gateway only reads it.
type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// ServiceCatalog is the fixed list of services a client can request.
var ServiceCatalog = []string{
	"Kitchen Remodel",
	"Bathroom Renovation",
	"Flooring Installation",
	"Interior Painting",
	"Carpentry Work",
}

func IsCatalogService(service string) bool {
	for _, s := range ServiceCatalog {
		if s == service {
			return true
		}
	}
	return false
}

// ProposalFormData is the client intake payload.
//
// JSON field names are the proposals backend contract; do not rename.
// SiteAnalysis is only collected by the creation flow.
type ProposalFormData struct {
	ClientName        string       `json:"clientName" example:"Jane Doe"`
	ClientPhone       string       `json:"clientPhone" example:"(555) 555-5555"`
	ClientEmail       string       `json:"clientEmail" example:"jane@example.com"`
	PropertyType      PropertyType `json:"propertyType" example:"residential"`
	PropertySize      float64      `json:"propertySize" example:"1800"`
	Region            Region       `json:"region" example:"north"`
	Budget            float64      `json:"budget" example:"25000"`
	RequestedServices []string     `json:"requestedServices"`
	SiteAnalysis      string       `json:"siteAnalysis,omitempty" example:"Two-storey house, original 1970s kitchen"`
}

// NewProposalFormData returns an empty form; RequestedServices encodes as [] rather than null.
func NewProposalFormData() ProposalFormData {
	return ProposalFormData{RequestedServices: []string{}}
}

func (f ProposalFormData) HasService(service string) bool {
	for _, s := range f.RequestedServices {
		if s == service {
			return true
		}
	}
	return false
}

// Proposal is a backend-held record.
//
// TotalPrice, Status and ProposalRawBody are computed by the backend and are
// relayed as-is; the gateway never derives them.
type Proposal struct {
	ProposalFormData
	ID              string         `json:"id" example:"665f1c2e9b1d"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
	Status          ProposalStatus `json:"status" example:"pending"`
	TotalPrice      float64        `json:"totalPrice" example:"23750"`
	Notes           string         `json:"notes,omitempty"`
	ProposalRawBody string         `json:"proposalRawBody"`
}

// ParseProposalID extracts the backend-assigned id from a proposal body.
//
// The id is opaque: the backend may send it as a string or a number.
func ParseProposalID(body json.RawMessage) (string, bool) {
	var envelope struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", false
	}
	raw := bytes.TrimSpace(envelope.ID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n.String(), true
}
