package response

import (
	"encoding/json"
	"testing"
	"time"

	"proposal_gateway/internal/domain/entities"
)

func TestFromDraft(t *testing.T) {
	now := time.Now().UTC()
	d := entities.Draft{
		ID:        "d-1",
		Step:      entities.StepServicesSelection,
		Form:      entities.ProposalFormData{ClientName: "Jane"},
		Reviewed:  true,
		LastError: "Failed to create proposal",
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	res := FromDraft(d)
	if res.ID != "d-1" || res.Step != 3 || res.StepName != "services_selection" || res.StepLabel != "Services Selection" {
		t.Fatalf("unexpected step fields: %+v", res)
	}
	if res.Errors == nil || res.Form.RequestedServices == nil {
		t.Fatalf("expected empty collections, got %+v", res)
	}
	if !res.Reviewed || res.LastError != "Failed to create proposal" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(b, &raw)
	if _, ok := raw["errors"].(map[string]any); !ok {
		t.Fatalf("errors should encode as an object: %s", b)
	}
	if services, ok := raw["form"].(map[string]any)["requestedServices"].([]any); !ok || len(services) != 0 {
		t.Fatalf("requestedServices should encode as []: %s", b)
	}
}

func TestFromFieldErrors(t *testing.T) {
	if res := FromFieldErrors(nil); !res.Valid || res.Errors == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	res := FromFieldErrors(entities.FieldErrors{entities.FieldBudget: "Budget must be greater than 0"})
	if res.Valid || len(res.Errors) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
