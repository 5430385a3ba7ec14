package controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/observability"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/validation"
	"github.com/serogonpi/desarrollo-mobile-EAII/pkg/contactapi"
)

// ContactAPI is the remote contact-intake service.
type ContactAPI interface {
	ProjectTypes(ctx context.Context) ([]contactapi.Option, error)
	Budgets(ctx context.Context) ([]contactapi.Option, error)
	Submit(ctx context.Context, payload contactapi.ContactRequest) (contactapi.Contact, error)
}

// MessageStore receives the local copy of a sent message.
type MessageStore interface {
	Create(ctx context.Context, message *models.ContactMessage) error
}

// SubmissionGuard refuses identical payloads sent within a window.
type SubmissionGuard interface {
	Acquire(ctx context.Context, payload contactapi.ContactRequest) (bool, error)
	Release(ctx context.Context, payload contactapi.ContactRequest) error
}

// ContactFormController owns the contact form draft and its submission lifecycle.
type ContactFormController struct {
	api    ContactAPI
	store  MessageStore
	guard  SubmissionGuard
	rules  validation.Rules
	logger zerolog.Logger
	tracer trace.Tracer

	mu    sync.Mutex
	state FormState
	subs  *broadcaster[FormState]
}

// ContactFormOption customises a ContactFormController.
type ContactFormOption func(*ContactFormController)

// WithSubmissionGuard enables duplicate detection.
func WithSubmissionGuard(guard SubmissionGuard) ContactFormOption {
	return func(c *ContactFormController) {
		c.guard = guard
	}
}

// NewContactFormController constructs a controller with an empty draft.
func NewContactFormController(api ContactAPI, store MessageStore, rules validation.Rules, logger zerolog.Logger, opts ...ContactFormOption) *ContactFormController {
	c := &ContactFormController{
		api:    api,
		store:  store,
		rules:  rules,
		logger: logger.With().Str("component", "contact_form").Logger(),
		tracer: otel.Tracer("github.com/serogonpi/desarrollo-mobile-EAII/internal/controller/contact_form"),
		state:  initialFormState(),
		subs:   newBroadcaster[FormState](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *ContactFormController) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe streams a snapshot after every state change.
func (c *ContactFormController) Subscribe() (<-chan FormState, func()) {
	return c.subs.subscribe()
}

func (c *ContactFormController) dispatch(act action) FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(act)
}

func (c *ContactFormController) dispatchLocked(act action) FormState {
	c.state = reduce(c.state, act, c.rules)
	c.subs.publish(c.state)
	return c.state
}

// UpdateField stores the raw value and re-validates that field only.
func (c *ContactFormController) UpdateField(field Field, value string) FormState {
	return c.dispatch(fieldUpdated{field: field, value: value})
}

// SelectProjectType stores the chosen project-type code. Empty clears it.
func (c *ContactFormController) SelectProjectType(code string) FormState {
	return c.dispatch(projectTypeSelected{code: strings.TrimSpace(code)})
}

// SelectBudget stores the chosen budget code. Empty clears it.
func (c *ContactFormController) SelectBudget(code string) FormState {
	return c.dispatch(budgetSelected{code: strings.TrimSpace(code)})
}

// UpdateLocation attaches coordinates to the draft when they are in range.
func (c *ContactFormController) UpdateLocation(lat, lng float64) FormState {
	if !validation.AreValidCoordinates(lat, lng) {
		return c.dispatch(statusSet{status: StatusInvalidLocation})
	}
	return c.dispatch(locationUpdated{coords: models.Coordinates{Latitude: lat, Longitude: lng}})
}

// SetStatus overwrites the status message.
func (c *ContactFormController) SetStatus(msg string) FormState {
	return c.dispatch(statusSet{status: msg})
}

// ClearForm resets the draft, keeping the status message and reference lists.
func (c *ContactFormController) ClearForm() FormState {
	return c.dispatch(formCleared{})
}

// ClearStatus drops the status message.
func (c *ContactFormController) ClearStatus() FormState {
	return c.dispatch(statusCleared{})
}

// Init loads both reference lists concurrently.
func (c *ContactFormController) Init(ctx context.Context) FormState {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.LoadProjectTypes(ctx)
	}()
	go func() {
		defer wg.Done()
		c.LoadBudgets(ctx)
	}()
	wg.Wait()
	return c.State()
}

// LoadProjectTypes replaces the project-type options from the remote service.
func (c *ContactFormController) LoadProjectTypes(ctx context.Context) FormState {
	c.dispatch(loadStarted{})

	options, err := c.api.ProjectTypes(ctx)
	if err != nil {
		observability.ReferenceDataLoads().WithLabelValues("project_types", "error").Inc()
		c.logger.Warn().Err(err).Msg("failed to load project types")
		return c.dispatch(projectTypesLoaded{err: err})
	}

	observability.ReferenceDataLoads().WithLabelValues("project_types", "success").Inc()
	items := lo.Map(options, func(o contactapi.Option, _ int) models.ProjectType {
		return models.ProjectType{ID: o.ID, Code: o.Code, Name: o.Name}
	})
	return c.dispatch(projectTypesLoaded{items: items})
}

// LoadBudgets replaces the budget options from the remote service.
func (c *ContactFormController) LoadBudgets(ctx context.Context) FormState {
	c.dispatch(loadStarted{})

	options, err := c.api.Budgets(ctx)
	if err != nil {
		observability.ReferenceDataLoads().WithLabelValues("budgets", "error").Inc()
		c.logger.Warn().Err(err).Msg("failed to load budgets")
		return c.dispatch(budgetsLoaded{err: err})
	}

	observability.ReferenceDataLoads().WithLabelValues("budgets", "success").Inc()
	items := lo.Map(options, func(o contactapi.Option, _ int) models.BudgetRange {
		return models.BudgetRange{ID: o.ID, Code: o.Code, Name: o.Name}
	})
	return c.dispatch(budgetsLoaded{items: items})
}

// Submit validates the whole draft and, when it passes, sends it once.
// On success the draft is reset and a local copy is stored on a best-effort
// basis; on failure the draft is kept.
func (c *ContactFormController) Submit(parent context.Context) (FormState, error) {
	ctx, span := c.tracer.Start(parent, "contact_form.submit")
	defer span.End()

	c.mu.Lock()
	if c.state.submitting {
		state := c.dispatchLocked(statusSet{status: StatusSubmitInFlight})
		c.mu.Unlock()
		observability.ContactSubmissions().WithLabelValues("in_flight").Inc()
		span.SetStatus(codes.Error, "submission in flight")
		return state, ErrSubmissionInFlight
	}

	state := c.dispatchLocked(formValidated{})
	if state.SelectedProjectType == nil {
		state = c.dispatchLocked(statusSet{status: StatusSelectProjectType})
		c.mu.Unlock()
		observability.ContactSubmissions().WithLabelValues("invalid").Inc()
		span.SetStatus(codes.Error, "missing project type")
		return state, ErrProjectTypeRequired
	}
	if state.Errors.Any() {
		state = c.dispatchLocked(statusSet{status: StatusCorrectErrors})
		c.mu.Unlock()
		observability.ContactSubmissions().WithLabelValues("invalid").Inc()
		span.SetStatus(codes.Error, "validation failed")
		return state, ErrInvalidForm
	}

	payload := buildContactRequest(state)
	location := state.Location
	c.dispatchLocked(submitStarted{})
	c.mu.Unlock()

	span.SetAttributes(attribute.String("project_type", payload.ProjectType))

	if c.guard != nil {
		ok, err := c.guard.Acquire(ctx, payload)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Msg("submission guard unavailable")
		case !ok:
			observability.ContactSubmissions().WithLabelValues("duplicate").Inc()
			span.SetStatus(codes.Error, "duplicate submission")
			return c.dispatch(submitFailed{status: StatusDuplicate}), ErrDuplicateSubmission
		}
	}

	contact, err := c.api.Submit(ctx, payload)
	if err != nil {
		if c.guard != nil {
			if releaseErr := c.guard.Release(ctx, payload); releaseErr != nil {
				c.logger.Warn().Err(releaseErr).Msg("failed to release submission guard")
			}
		}
		observability.ContactSubmissions().WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "remote submission failed")
		c.logger.Warn().Err(err).Str("email", maskEmail(payload.Email)).Msg("contact submission failed")
		return c.dispatch(submitFailed{status: "Failed to send message: " + err.Error()}), fmt.Errorf("%w: %w", ErrRemoteSubmission, err)
	}

	c.storeLocalCopy(ctx, payload, location)

	observability.ContactSubmissions().WithLabelValues("sent").Inc()
	span.SetAttributes(attribute.Int64("contact_id", contact.ID))
	span.SetStatus(codes.Ok, "sent")
	c.logger.Info().Int64("contact_id", contact.ID).Str("email", maskEmail(payload.Email)).Msg("contact submission sent")

	return c.dispatch(submitSucceeded{id: contact.ID}), nil
}

func (c *ContactFormController) storeLocalCopy(ctx context.Context, payload contactapi.ContactRequest, location *models.Coordinates) {
	if c.store == nil {
		return
	}

	message := models.ContactMessage{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Subject: payload.Subject,
		Message: payload.Message,
	}
	if location != nil {
		lat, lng := location.Latitude, location.Longitude
		message.Latitude, message.Longitude = &lat, &lng
	}

	if err := c.store.Create(ctx, &message); err != nil {
		observability.LocalCopyFailures().Inc()
		c.logger.Warn().Err(err).Msg("failed to store local copy of contact message")
	}
}

func buildContactRequest(state FormState) contactapi.ContactRequest {
	return contactapi.ContactRequest{
		Name:        strings.TrimSpace(state.Name),
		Email:       strings.TrimSpace(state.Email),
		Phone:       models.OptionalString(state.Phone),
		Company:     models.OptionalString(state.Company),
		ProjectType: *state.SelectedProjectType,
		Budget:      state.SelectedBudget,
		Subject:     strings.TrimSpace(state.Subject),
		Message:     strings.TrimSpace(state.Message),
	}
}

func successStatus(id int64) string {
	return "Message sent successfully! ID: " + strconv.FormatInt(id, 10)
}
