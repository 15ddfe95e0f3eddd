package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"proposal_gateway/internal/domain/entities"
	"proposal_gateway/internal/domain/wizard"
	"proposal_gateway/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrDraftNotFound      = errors.New("draft not found")
	ErrInvalidDraftID     = errors.New("invalid draft id")
	ErrSubmissionInFlight = errors.New("draft submission already in flight")
)

const (
	DefaultDraftTTL = 24 * time.Hour

	submissionCreated  = "created"
	submissionRejected = "rejected"
	submissionFailed   = "failed"
	submissionBlocked  = "blocked"

	msgInternalServerError = "Internal server error"
	msgMissingFields       = "Missing required fields"
)

// IDraftUseCase drives a proposal through the intake wizard on behalf of a
// browser: it keeps the form between steps, validates before every forward
// move and submits the final payload through the proposal proxy.
type IDraftUseCase interface {
	Start(ctx context.Context) (entities.Draft, error)
	Get(ctx context.Context, id string) (entities.Draft, error)
	UpdateFields(ctx context.Context, id string, patch wizard.FieldPatch) (entities.Draft, error)
	ToggleService(ctx context.Context, id string, service string) (entities.Draft, error)
	Next(ctx context.Context, id string) (entities.Draft, error)
	Back(ctx context.Context, id string) (entities.Draft, error)
	SetReviewed(ctx context.Context, id string, reviewed bool) (entities.Draft, error)
	Submit(ctx context.Context, id string) (SubmissionResult, error)
	DismissError(ctx context.Context, id string) (entities.Draft, error)
	Discard(ctx context.Context, id string) error
}

// SubmissionResult is the outcome of Submit. Draft is the state after the
// attempt and is set on failure too, so callers can show the errors.
type SubmissionResult struct {
	ProposalID string
	StatusCode int
	Proposal   json.RawMessage
	Draft      entities.Draft
}

type DraftUseCase struct {
	repo      interfaces.IDraftRepository
	proposals IProposalUseCase
	metrics   interfaces.IProxyMetrics
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

var _ IDraftUseCase = (*DraftUseCase)(nil)

// NewDraftUseCase wires draft sessions. A non-positive ttl falls back to
// DefaultDraftTTL; metrics may be nil.
func NewDraftUseCase(repo interfaces.IDraftRepository, proposals IProposalUseCase, metrics interfaces.IProxyMetrics, ttl time.Duration) *DraftUseCase {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftUseCase{
		repo:      repo,
		proposals: proposals,
		metrics:   metrics,
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
		inFlight:  map[string]struct{}{},
	}
}

func (u *DraftUseCase) Start(ctx context.Context) (entities.Draft, error) {
	now := u.now()
	d := entities.Draft{
		ID:        uuid.NewString(),
		Step:      entities.StepClientInfo,
		Form:      entities.NewProposalFormData(),
		Errors:    entities.FieldErrors{},
		CreatedAt: now,
	}
	if err := u.save(ctx, &d); err != nil {
		log.Printf("[draft][usecase] start save failed err=%v", err)
		return entities.Draft{}, err
	}
	log.Printf("[draft][usecase] start success draft_id=%s", d.ID)
	return d, nil
}

func (u *DraftUseCase) Get(ctx context.Context, id string) (entities.Draft, error) {
	return u.load(ctx, id)
}

func (u *DraftUseCase) UpdateFields(ctx context.Context, id string, patch wizard.FieldPatch) (entities.Draft, error) {
	return u.mutate(ctx, id, func(d *entities.Draft) error {
		wizard.Apply(d, patch)
		return nil
	})
}

func (u *DraftUseCase) ToggleService(ctx context.Context, id string, service string) (entities.Draft, error) {
	return u.mutate(ctx, id, func(d *entities.Draft) error {
		return wizard.ToggleService(d, service)
	})
}

func (u *DraftUseCase) Next(ctx context.Context, id string) (entities.Draft, error) {
	return u.mutate(ctx, id, wizard.Next)
}

func (u *DraftUseCase) Back(ctx context.Context, id string) (entities.Draft, error) {
	return u.mutate(ctx, id, func(d *entities.Draft) error {
		wizard.Back(d)
		return nil
	})
}

func (u *DraftUseCase) SetReviewed(ctx context.Context, id string, reviewed bool) (entities.Draft, error) {
	return u.mutate(ctx, id, func(d *entities.Draft) error {
		wizard.SetReviewed(d, reviewed)
		return nil
	})
}

func (u *DraftUseCase) DismissError(ctx context.Context, id string) (entities.Draft, error) {
	return u.mutate(ctx, id, func(d *entities.Draft) error {
		d.LastError = ""
		return nil
	})
}

func (u *DraftUseCase) Discard(ctx context.Context, id string) error {
	d, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, d.ID); err != nil {
		log.Printf("[draft][usecase] discard failed draft_id=%s err=%v", d.ID, err)
		return err
	}
	log.Printf("[draft][usecase] discard success draft_id=%s", d.ID)
	return nil
}

// Submit sends the reviewed form to the create endpoint. Only one submission
// per draft may be in flight; a failed attempt keeps the form and records a
// dismissible error so the user can retry.
func (u *DraftUseCase) Submit(ctx context.Context, id string) (SubmissionResult, error) {
	id = strings.TrimSpace(id)
	if !u.claim(id) {
		log.Printf("[draft][usecase] submit duplicate draft_id=%s", id)
		return SubmissionResult{}, ErrSubmissionInFlight
	}
	defer u.release(id)

	d, err := u.load(ctx, id)
	if err != nil {
		return SubmissionResult{}, err
	}

	if err := wizard.ReadyToSubmit(&d); err != nil {
		log.Printf("[draft][usecase] submit blocked draft_id=%s err=%v errors=%d", d.ID, err, len(d.Errors))
		u.observeSubmission(submissionBlocked)
		if errors.Is(err, wizard.ErrStepInvalid) {
			if saveErr := u.save(ctx, &d); saveErr != nil {
				return SubmissionResult{Draft: d}, saveErr
			}
		}
		return SubmissionResult{Draft: d}, err
	}

	payload, err := json.Marshal(d.Form)
	if err != nil {
		return SubmissionResult{Draft: d}, err
	}

	res, err := u.proposals.Create(ctx, payload)
	if err == nil {
		proposalID, ok := entities.ParseProposalID(res.Body)
		if !ok {
			err = fmt.Errorf("%w: created proposal has no id", ErrMalformedBackendResponse)
		} else {
			if delErr := u.repo.Delete(ctx, d.ID); delErr != nil {
				log.Printf("[draft][usecase] submit cleanup failed draft_id=%s err=%v", d.ID, delErr)
			}
			u.observeSubmission(submissionCreated)
			log.Printf("[draft][usecase] submit success draft_id=%s proposal_id=%s", d.ID, proposalID)
			return SubmissionResult{ProposalID: proposalID, StatusCode: res.StatusCode, Proposal: res.Body, Draft: d}, nil
		}
	}

	d.LastError = submissionErrorMessage(err)
	var rejection *BackendRejectionError
	if errors.As(err, &rejection) {
		u.observeSubmission(submissionRejected)
	} else {
		u.observeSubmission(submissionFailed)
	}
	log.Printf("[draft][usecase] submit failed draft_id=%s err=%v", d.ID, err)
	if saveErr := u.save(ctx, &d); saveErr != nil {
		log.Printf("[draft][usecase] submit failure not recorded draft_id=%s err=%v", d.ID, saveErr)
	}
	return SubmissionResult{Draft: d}, err
}

func submissionErrorMessage(err error) string {
	var rejection *BackendRejectionError
	switch {
	case errors.As(err, &rejection):
		return rejection.Message
	case errors.Is(err, ErrMissingRequiredFields):
		return msgMissingFields
	default:
		return msgInternalServerError
	}
}

func (u *DraftUseCase) mutate(ctx context.Context, id string, apply func(d *entities.Draft) error) (entities.Draft, error) {
	d, err := u.load(ctx, id)
	if err != nil {
		return entities.Draft{}, err
	}
	applyErr := apply(&d)
	if err := u.save(ctx, &d); err != nil {
		log.Printf("[draft][usecase] save failed draft_id=%s err=%v", d.ID, err)
		return entities.Draft{}, err
	}
	return d, applyErr
}

func (u *DraftUseCase) load(ctx context.Context, id string) (entities.Draft, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Draft{}, ErrInvalidDraftID
	}
	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		log.Printf("[draft][usecase] load failed draft_id=%s err=%v", id, err)
		return entities.Draft{}, err
	}
	if d.ID == "" {
		return entities.Draft{}, ErrDraftNotFound
	}
	if d.Errors == nil {
		d.Errors = entities.FieldErrors{}
	}
	if d.Form.RequestedServices == nil {
		d.Form.RequestedServices = []string{}
	}
	return d, nil
}

// save refreshes the sliding expiry and persists the draft.
func (u *DraftUseCase) save(ctx context.Context, d *entities.Draft) error {
	now := u.now()
	d.UpdatedAt = now
	d.ExpiresAt = now.Add(u.ttl)
	return u.repo.Save(ctx, *d)
}

func (u *DraftUseCase) claim(id string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, busy := u.inFlight[id]; busy {
		return false
	}
	u.inFlight[id] = struct{}{}
	return true
}

func (u *DraftUseCase) release(id string) {
	u.mu.Lock()
	delete(u.inFlight, id)
	u.mu.Unlock()
}

func (u *DraftUseCase) observeSubmission(outcome string) {
	if u.metrics == nil {
		return
	}
	u.metrics.ObserveSubmission(outcome)
}
