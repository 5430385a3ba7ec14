package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/validation"
	"github.com/serogonpi/desarrollo-mobile-EAII/pkg/contactapi"
)

type contactAPIStub struct {
	mu          sync.Mutex
	submits     []contactapi.ContactRequest
	submitID    int64
	submitErr   error
	typesErr    error
	budgetsErr  error
	submitGate  chan struct{}
	submitEnter chan struct{}
}

func (s *contactAPIStub) ProjectTypes(context.Context) ([]contactapi.Option, error) {
	if s.typesErr != nil {
		return nil, s.typesErr
	}
	return []contactapi.Option{{ID: 1, Code: "WEB", Name: "Web"}, {ID: 2, Code: "APP", Name: "Mobile"}}, nil
}

func (s *contactAPIStub) Budgets(context.Context) ([]contactapi.Option, error) {
	if s.budgetsErr != nil {
		return nil, s.budgetsErr
	}
	return []contactapi.Option{{ID: 1, Code: "LOW", Name: "< 1M"}}, nil
}

func (s *contactAPIStub) Submit(_ context.Context, payload contactapi.ContactRequest) (contactapi.Contact, error) {
	if s.submitEnter != nil {
		s.submitEnter <- struct{}{}
	}
	if s.submitGate != nil {
		<-s.submitGate
	}
	s.mu.Lock()
	s.submits = append(s.submits, payload)
	s.mu.Unlock()
	if s.submitErr != nil {
		return contactapi.Contact{}, s.submitErr
	}
	return contactapi.Contact{ID: s.submitID, Name: payload.Name}, nil
}

func (s *contactAPIStub) submitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submits)
}

type messageStoreStub struct {
	created []models.ContactMessage
	err     error
}

func (s *messageStoreStub) Create(_ context.Context, message *models.ContactMessage) error {
	if s.err != nil {
		return s.err
	}
	message.ID = uint(len(s.created) + 1)
	s.created = append(s.created, *message)
	return nil
}

func newFormController(api ContactAPI, store MessageStore, opts ...ContactFormOption) *ContactFormController {
	return NewContactFormController(api, store, validation.FormRules(), zerolog.Nop(), opts...)
}

func fillValidDraft(c *ContactFormController) {
	c.UpdateField(FieldName, "  Ana Pérez ")
	c.UpdateField(FieldEmail, "ana@example.com")
	c.UpdateField(FieldPhone, "")
	c.UpdateField(FieldCompany, "   ")
	c.UpdateField(FieldSubject, "Quote request")
	c.UpdateField(FieldMessage, "I would like a portfolio site.")
}

func TestSubmitShortNameAbortsWithoutNetwork(t *testing.T) {
	api := &contactAPIStub{submitID: 1}
	c := newFormController(api, &messageStoreStub{})
	fillValidDraft(c)
	c.SelectProjectType("WEB")
	c.UpdateField(FieldName, "Jo")

	state, err := c.Submit(context.Background())

	require.ErrorIs(t, err, ErrInvalidForm)
	require.Equal(t, "Name must be at least 3 characters", state.Errors.Name)
	require.Equal(t, StatusCorrectErrors, *state.StatusMessage)
	require.Zero(t, api.submitCount())
	require.False(t, state.IsLoading)
}

func TestSubmitWithoutProjectTypeAborts(t *testing.T) {
	api := &contactAPIStub{submitID: 1}
	c := newFormController(api, &messageStoreStub{})
	fillValidDraft(c)

	state, err := c.Submit(context.Background())

	require.ErrorIs(t, err, ErrProjectTypeRequired)
	require.Equal(t, StatusSelectProjectType, *state.StatusMessage)
	require.Zero(t, api.submitCount())
}

func TestSubmitSuccessResetsDraftAndStoresCopy(t *testing.T) {
	api := &contactAPIStub{submitID: 42}
	store := &messageStoreStub{}
	c := newFormController(api, store)
	c.Init(context.Background())
	fillValidDraft(c)
	c.SelectProjectType("WEB")
	c.SelectBudget("LOW")
	c.UpdateLocation(-33.4489, -70.6693)

	state, err := c.Submit(context.Background())

	require.NoError(t, err)
	require.NotNil(t, state.StatusMessage)
	require.Contains(t, *state.StatusMessage, "42")
	require.Empty(t, state.Name)
	require.Empty(t, state.Email)
	require.Empty(t, state.Subject)
	require.Empty(t, state.Message)
	require.Nil(t, state.SelectedProjectType)
	require.Nil(t, state.SelectedBudget)
	require.Nil(t, state.Location)
	require.False(t, state.IsLoading)
	require.Len(t, state.ProjectTypes, 2, "reference lists survive a reset")

	require.Equal(t, 1, api.submitCount())
	sent := api.submits[0]
	require.Equal(t, "Ana Pérez", sent.Name)
	require.Nil(t, sent.Phone)
	require.Nil(t, sent.Company)
	require.Equal(t, "LOW", *sent.Budget)

	require.Len(t, store.created, 1)
	require.True(t, store.created[0].HasLocation())
	require.InDelta(t, -33.4489, *store.created[0].Latitude, 1e-9)
}

func TestSubmitServerErrorKeepsDraft(t *testing.T) {
	api := &contactAPIStub{submitErr: &contactapi.APIError{StatusCode: 500, Message: "Error: 500 - Internal Server Error"}}
	store := &messageStoreStub{}
	c := newFormController(api, store)
	fillValidDraft(c)
	c.SelectProjectType("WEB")

	state, err := c.Submit(context.Background())

	require.ErrorIs(t, err, ErrRemoteSubmission)
	var apiErr *contactapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 500, apiErr.StatusCode)
	require.Equal(t, "Failed to send message: Error: 500 - Internal Server Error", *state.StatusMessage)
	require.Equal(t, "  Ana Pérez ", state.Name)
	require.Equal(t, "WEB", *state.SelectedProjectType)
	require.False(t, state.IsLoading)
	require.Empty(t, store.created)
}

func TestSubmitLocalCopyFailureKeepsSuccess(t *testing.T) {
	api := &contactAPIStub{submitID: 7}
	c := newFormController(api, &messageStoreStub{err: errors.New("disk full")})
	fillValidDraft(c)
	c.SelectProjectType("APP")

	state, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Message sent successfully! ID: 7", *state.StatusMessage)
}

func TestSubmitWhileInFlightIsRefused(t *testing.T) {
	api := &contactAPIStub{submitID: 9, submitGate: make(chan struct{}), submitEnter: make(chan struct{}, 1)}
	c := newFormController(api, &messageStoreStub{})
	fillValidDraft(c)
	c.SelectProjectType("WEB")

	done := make(chan FormState)
	go func() {
		state, _ := c.Submit(context.Background())
		done <- state
	}()
	<-api.submitEnter

	require.True(t, c.State().IsLoading)
	second, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmissionInFlight)
	require.Equal(t, StatusSubmitInFlight, *second.StatusMessage)

	close(api.submitGate)
	first := <-done
	require.Equal(t, "Message sent successfully! ID: 9", *first.StatusMessage)
	require.Equal(t, 1, api.submitCount())
}

func TestRedisGuardRefusesDuplicate(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	api := &contactAPIStub{submitID: 1}
	c := newFormController(api, &messageStoreStub{}, WithSubmissionGuard(NewRedisSubmissionGuard(client, time.Minute)))

	fillValidDraft(c)
	c.SelectProjectType("WEB")
	first, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Contains(t, *first.StatusMessage, "sent successfully")

	fillValidDraft(c)
	c.SelectProjectType("WEB")
	second, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrDuplicateSubmission)
	require.Equal(t, StatusDuplicate, *second.StatusMessage)
	require.Equal(t, "  Ana Pérez ", second.Name, "draft survives a refused duplicate")
	require.Equal(t, 1, api.submitCount())

	mr.FastForward(2 * time.Minute)
	third, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Contains(t, *third.StatusMessage, "sent successfully")
}

func TestRedisGuardReleasedAfterFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	api := &contactAPIStub{submitErr: errors.New("timeout")}
	c := newFormController(api, &messageStoreStub{}, WithSubmissionGuard(NewRedisSubmissionGuard(client, 0)))
	fillValidDraft(c)
	c.SelectProjectType("WEB")

	state, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrRemoteSubmission)
	require.Equal(t, "Failed to send message: timeout", *state.StatusMessage)
	require.Empty(t, mr.Keys())

	api.submitErr = nil
	api.submitID = 3
	state, err = c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Message sent successfully! ID: 3", *state.StatusMessage)
}

func TestLoadFailuresSetStatus(t *testing.T) {
	api := &contactAPIStub{typesErr: errors.New("offline"), budgetsErr: errors.New("offline")}
	c := newFormController(api, nil)

	state := c.LoadProjectTypes(context.Background())
	require.Empty(t, state.ProjectTypes)
	require.Equal(t, "Failed to load project types: offline", *state.StatusMessage)
	require.False(t, state.IsLoading)

	state = c.LoadBudgets(context.Background())
	require.Equal(t, "Failed to load budgets: offline", *state.StatusMessage)

	state = c.ClearStatus()
	require.Nil(t, state.StatusMessage)
}

func TestInitLoadsBothLists(t *testing.T) {
	c := newFormController(&contactAPIStub{}, nil)
	state := c.Init(context.Background())
	require.Len(t, state.ProjectTypes, 2)
	require.Len(t, state.Budgets, 1)
	require.Equal(t, "WEB", state.ProjectTypes[0].Code)
	require.False(t, state.IsLoading)
}

func TestUpdateFieldValidatesOnlyThatField(t *testing.T) {
	c := newFormController(&contactAPIStub{}, nil)

	state := c.UpdateField(FieldEmail, "nope")
	require.Equal(t, "Invalid email", state.Errors.Email)
	require.Empty(t, state.Errors.Name)

	state = c.UpdateField(FieldSubject, "Hi")
	require.NotEmpty(t, state.Errors.Subject)
	require.Empty(t, state.Errors.Message, "other fields are not re-checked")

	state = c.UpdateField(FieldEmail, "a@b.co")
	require.Empty(t, state.Errors.Email)
}

func TestClearFormKeepsStatusAndLists(t *testing.T) {
	c := newFormController(&contactAPIStub{}, nil)
	c.Init(context.Background())
	fillValidDraft(c)
	c.SelectProjectType("WEB")
	c.SetStatus("hello")

	state := c.ClearForm()
	require.Empty(t, state.Name)
	require.Nil(t, state.SelectedProjectType)
	require.Equal(t, "hello", *state.StatusMessage)
	require.Len(t, state.Budgets, 1)
}

func TestUpdateLocationRejectsOutOfRange(t *testing.T) {
	c := newFormController(&contactAPIStub{}, nil)

	state := c.UpdateLocation(91, 0)
	require.Nil(t, state.Location)
	require.Equal(t, StatusInvalidLocation, *state.StatusMessage)

	state = c.UpdateLocation(0, 0)
	require.NotNil(t, state.Location)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	c := newFormController(&contactAPIStub{}, nil)
	updates, cancel := c.Subscribe()
	defer cancel()

	c.UpdateField(FieldName, "Ana")

	select {
	case snapshot := <-updates:
		require.Equal(t, "Ana", snapshot.Name)
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot")
	}
}

func TestReducePendingCounter(t *testing.T) {
	rules := validation.FormRules()
	state := initialFormState()

	state = reduce(state, loadStarted{}, rules)
	state = reduce(state, loadStarted{}, rules)
	require.True(t, state.IsLoading)

	state = reduce(state, projectTypesLoaded{items: []models.ProjectType{{Code: "WEB"}}}, rules)
	require.True(t, state.IsLoading, "one load still pending")

	state = reduce(state, budgetsLoaded{err: errors.New("boom")}, rules)
	require.False(t, state.IsLoading)
	require.Len(t, state.ProjectTypes, 1)
}

func TestMaskEmail(t *testing.T) {
	require.Equal(t, "a***a@example.com", maskEmail("anna@example.com"))
	require.Equal(t, "j***@example.com", maskEmail("jo@example.com"))
	require.Equal(t, "***", maskEmail("invalid"))
	require.Equal(t, "ñ***u@example.com", maskEmail("ñandu@example.com"))
	require.Equal(t, "é***@example.com", maskEmail("éa@example.com"))
	require.True(t, utf8.ValidString(maskEmail("ñandú@example.com")))
	require.Empty(t, maskEmail(""))
}
