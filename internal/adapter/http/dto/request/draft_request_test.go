package request

import (
	"encoding/json"
	"testing"

	"proposal_gateway/internal/domain/entities"
)

func TestDraftFieldsRequest_ToPatch(t *testing.T) {
	var r DraftFieldsRequest
	if err := json.Unmarshal([]byte(`{"clientName":"Jane","propertyType":"commercial","region":"east","requestedServices":[]}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := r.ToPatch()
	if p.ClientName == nil || *p.ClientName != "Jane" {
		t.Fatalf("unexpected clientName: %+v", p.ClientName)
	}
	if p.PropertyType == nil || *p.PropertyType != entities.PropertyTypeCommercial {
		t.Fatalf("unexpected propertyType: %+v", p.PropertyType)
	}
	if p.Region == nil || *p.Region != entities.RegionEast {
		t.Fatalf("unexpected region: %+v", p.Region)
	}
	if p.RequestedServices == nil || len(p.RequestedServices) != 0 {
		t.Fatalf("expected explicit empty services, got %#v", p.RequestedServices)
	}
	if p.ClientPhone != nil || p.Budget != nil || p.SiteAnalysis != nil {
		t.Fatalf("untouched fields must stay nil: %+v", p)
	}
}

func TestDraftFieldsRequest_ToPatch_ServicesAbsent(t *testing.T) {
	var r DraftFieldsRequest
	if err := json.Unmarshal([]byte(`{"budget":0}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := r.ToPatch()
	if p.RequestedServices != nil {
		t.Fatalf("expected nil services, got %#v", p.RequestedServices)
	}
	if p.Budget == nil || *p.Budget != 0 {
		t.Fatalf("expected explicit zero budget, got %v", p.Budget)
	}
}

func TestProposalFormRequest_ToForm(t *testing.T) {
	var r ProposalFormRequest
	if err := json.Unmarshal([]byte(`{"clientName":"Jane","id":"ignored"}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	form := r.ToForm()
	if form.ClientName != "Jane" || form.RequestedServices == nil {
		t.Fatalf("unexpected form: %+v", form)
	}
}
