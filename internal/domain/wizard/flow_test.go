package wizard

import (
	"testing"

	"proposal_gateway/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft() *entities.Draft {
	return &entities.Draft{ID: "d-1", Form: entities.NewProposalFormData(), Errors: entities.FieldErrors{}}
}

func strPtr(s string) *string { return &s }

func floatPtr(v float64) *float64 { return &v }

func TestNext_BlocksOnErrorsAndAdvancesWhenValid(t *testing.T) {
	d := newDraft()

	err := Next(d)
	require.ErrorIs(t, err, ErrStepInvalid)
	assert.Equal(t, entities.StepClientInfo, d.Step)
	assert.Len(t, d.Errors, 3)

	Apply(d, FieldPatch{
		ClientName:  strPtr("Jane"),
		ClientPhone: strPtr("555-555-5555"),
		ClientEmail: strPtr("jane@example.com"),
	})
	require.NoError(t, Next(d))
	assert.Equal(t, entities.StepPropertyDetails, d.Step)
	assert.Empty(t, d.Errors)
}

func TestApply_ClearsOnlyTouchedFieldError(t *testing.T) {
	d := newDraft()
	require.ErrorIs(t, Next(d), ErrStepInvalid)

	Apply(d, FieldPatch{ClientName: strPtr("J")})
	assert.NotContains(t, d.Errors, entities.FieldClientName)
	assert.Contains(t, d.Errors, entities.FieldClientPhone)
	assert.Contains(t, d.Errors, entities.FieldClientEmail)

	// Touching with a still-invalid value clears too; the step re-checks on Next.
	Apply(d, FieldPatch{ClientPhone: strPtr("1")})
	assert.NotContains(t, d.Errors, entities.FieldClientPhone)
}

func TestApply_AllFields(t *testing.T) {
	d := newDraft()
	pt := entities.PropertyTypeCommercial
	region := entities.RegionEast
	Apply(d, FieldPatch{
		PropertyType:      &pt,
		PropertySize:      floatPtr(120),
		Region:            &region,
		Budget:            floatPtr(9000),
		RequestedServices: []string{"Interior Painting"},
		SiteAnalysis:      strPtr("Open plan office"),
	})
	assert.Equal(t, pt, d.Form.PropertyType)
	assert.Equal(t, 120.0, d.Form.PropertySize)
	assert.Equal(t, region, d.Form.Region)
	assert.Equal(t, 9000.0, d.Form.Budget)
	assert.Equal(t, []string{"Interior Painting"}, d.Form.RequestedServices)
	assert.Equal(t, "Open plan office", d.Form.SiteAnalysis)
}

func TestApply_NilErrorsMap(t *testing.T) {
	d := &entities.Draft{Form: entities.NewProposalFormData()}
	assert.NotPanics(t, func() { Apply(d, FieldPatch{ClientName: strPtr("x")}) })
}

func TestToggleService(t *testing.T) {
	d := newDraft()
	d.Errors[entities.FieldRequestedServices] = MsgServicesRequired

	require.NoError(t, ToggleService(d, "Carpentry Work"))
	assert.Equal(t, []string{"Carpentry Work"}, d.Form.RequestedServices)
	assert.NotContains(t, d.Errors, entities.FieldRequestedServices)

	require.NoError(t, ToggleService(d, "Kitchen Remodel"))
	require.NoError(t, ToggleService(d, "Carpentry Work"))
	assert.Equal(t, []string{"Kitchen Remodel"}, d.Form.RequestedServices)

	assert.ErrorIs(t, ToggleService(d, "Roofing"), ErrUnknownService)
	assert.Equal(t, []string{"Kitchen Remodel"}, d.Form.RequestedServices)
}

func TestBack(t *testing.T) {
	d := newDraft()
	Back(d)
	assert.Equal(t, entities.StepClientInfo, d.Step)

	d.Step = entities.StepSiteAnalysis
	Back(d)
	assert.Equal(t, entities.StepPropertyDetails, d.Step)
}

func TestNext_AtReview(t *testing.T) {
	d := newDraft()
	d.Step = entities.StepReview
	assert.ErrorIs(t, Next(d), ErrNoNextStep)
}

func walkToReview(t *testing.T, d *entities.Draft) {
	t.Helper()
	d.Form = validForm()
	for d.Step < entities.StepReview {
		require.NoError(t, Next(d))
	}
}

func TestReadyToSubmit(t *testing.T) {
	t.Run("not on review", func(t *testing.T) {
		d := newDraft()
		d.Reviewed = true
		assert.ErrorIs(t, ReadyToSubmit(d), ErrNotOnReviewStep)
	})

	t.Run("not acknowledged", func(t *testing.T) {
		d := newDraft()
		walkToReview(t, d)
		assert.ErrorIs(t, ReadyToSubmit(d), ErrNotReviewed)
	})

	t.Run("earlier field broken after back navigation", func(t *testing.T) {
		d := newDraft()
		walkToReview(t, d)
		for d.Step > entities.StepClientInfo {
			Back(d)
		}
		Apply(d, FieldPatch{ClientEmail: strPtr("broken")})
		// jump forward again without re-validating the first step
		d.Step = entities.StepReview
		SetReviewed(d, true)

		assert.ErrorIs(t, ReadyToSubmit(d), ErrStepInvalid)
		assert.Equal(t, entities.FieldErrors{entities.FieldClientEmail: MsgEmailInvalid}, d.Errors)
		assert.Equal(t, "Jane Doe", d.Form.ClientName)
	})

	t.Run("ready", func(t *testing.T) {
		d := newDraft()
		walkToReview(t, d)
		SetReviewed(d, true)
		assert.NoError(t, ReadyToSubmit(d))
	})
}
