package controller

import (
	"errors"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/validation"
)

// Field names a draft field of the contact form.
type Field string

// Contact form fields.
const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldCompany Field = "company"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// ParseField maps a wire name onto a Field.
func ParseField(raw string) (Field, bool) {
	switch field := Field(raw); field {
	case FieldName, FieldEmail, FieldPhone, FieldCompany, FieldSubject, FieldMessage:
		return field, true
	default:
		return "", false
	}
}

// User-facing status messages.
const (
	StatusSelectProjectType = "Please select a project type"
	StatusCorrectErrors     = "Please correct the errors in the form"
	StatusSubmitInFlight    = "A submission is already in progress"
	StatusDuplicate         = "This message was already sent recently"
	StatusInvalidLocation   = "Invalid coordinates"
)

// Submit failures. The state's status message carries the user-facing text.
var (
	ErrProjectTypeRequired = errors.New("project type not selected")
	ErrInvalidForm         = errors.New("form has invalid fields")
	ErrSubmissionInFlight  = errors.New("submission already in progress")
	ErrDuplicateSubmission = errors.New("message already sent recently")
	ErrRemoteSubmission    = errors.New("remote submission failed")
)

// FieldErrors holds one message per validated field; empty means valid.
type FieldErrors struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}

// Any reports whether at least one field is in error.
func (e FieldErrors) Any() bool {
	return e.Name != "" || e.Email != "" || e.Phone != "" || e.Subject != "" || e.Message != ""
}

// FormState is an immutable snapshot of the contact form.
type FormState struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`

	Errors FieldErrors `json:"errors"`

	SelectedProjectType *string `json:"selected_project_type,omitempty"`
	SelectedBudget      *string `json:"selected_budget,omitempty"`

	ProjectTypes []models.ProjectType `json:"project_types"`
	Budgets      []models.BudgetRange `json:"budgets"`

	Location *models.Coordinates `json:"location,omitempty"`

	IsLoading     bool    `json:"is_loading"`
	StatusMessage *string `json:"status_message,omitempty"`

	pending    int
	submitting bool
}

func initialFormState() FormState {
	return FormState{
		ProjectTypes: []models.ProjectType{},
		Budgets:      []models.BudgetRange{},
	}
}

type action interface{}

type (
	fieldUpdated struct {
		field Field
		value string
	}
	projectTypeSelected struct{ code string }
	budgetSelected      struct{ code string }
	locationUpdated     struct{ coords models.Coordinates }
	loadStarted         struct{}
	projectTypesLoaded  struct {
		items []models.ProjectType
		err   error
	}
	budgetsLoaded struct {
		items []models.BudgetRange
		err   error
	}
	formValidated   struct{}
	submitStarted   struct{}
	submitSucceeded struct{ id int64 }
	submitFailed    struct{ status string }
	statusSet       struct{ status string }
	formCleared     struct{}
	statusCleared   struct{}
)

// reduce applies one action to a state and returns the next state.
func reduce(state FormState, act action, rules validation.Rules) FormState {
	switch a := act.(type) {
	case fieldUpdated:
		state = setField(state, a.field, a.value)
		state.Errors = validateField(state.Errors, a.field, a.value, rules)
	case projectTypeSelected:
		state.SelectedProjectType = optional(a.code)
	case budgetSelected:
		state.SelectedBudget = optional(a.code)
	case locationUpdated:
		coords := a.coords
		state.Location = &coords
	case loadStarted:
		state.pending++
	case projectTypesLoaded:
		state.pending--
		if a.err != nil {
			state.ProjectTypes = []models.ProjectType{}
			state.StatusMessage = status("Failed to load project types: " + a.err.Error())
		} else {
			state.ProjectTypes = a.items
		}
	case budgetsLoaded:
		state.pending--
		if a.err != nil {
			state.Budgets = []models.BudgetRange{}
			state.StatusMessage = status("Failed to load budgets: " + a.err.Error())
		} else {
			state.Budgets = a.items
		}
	case formValidated:
		for _, field := range []Field{FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage} {
			state.Errors = validateField(state.Errors, field, fieldValue(state, field), rules)
		}
	case submitStarted:
		state.pending++
		state.submitting = true
	case submitSucceeded:
		state = clearDraft(state)
		state.pending--
		state.submitting = false
		state.StatusMessage = status(successStatus(a.id))
	case submitFailed:
		state.pending--
		state.submitting = false
		state.StatusMessage = status(a.status)
	case statusSet:
		state.StatusMessage = status(a.status)
	case formCleared:
		state = clearDraft(state)
	case statusCleared:
		state.StatusMessage = nil
	}

	if state.pending < 0 {
		state.pending = 0
	}
	state.IsLoading = state.pending > 0
	return state
}

func setField(state FormState, field Field, value string) FormState {
	switch field {
	case FieldName:
		state.Name = value
	case FieldEmail:
		state.Email = value
	case FieldPhone:
		state.Phone = value
	case FieldCompany:
		state.Company = value
	case FieldSubject:
		state.Subject = value
	case FieldMessage:
		state.Message = value
	}
	return state
}

func fieldValue(state FormState, field Field) string {
	switch field {
	case FieldName:
		return state.Name
	case FieldEmail:
		return state.Email
	case FieldPhone:
		return state.Phone
	case FieldCompany:
		return state.Company
	case FieldSubject:
		return state.Subject
	case FieldMessage:
		return state.Message
	}
	return ""
}

func validateField(errs FieldErrors, field Field, value string, rules validation.Rules) FieldErrors {
	switch field {
	case FieldName:
		errs.Name = rules.NameError(value)
	case FieldEmail:
		errs.Email = rules.EmailError(value)
	case FieldPhone:
		errs.Phone = rules.PhoneError(value)
	case FieldSubject:
		errs.Subject = rules.SubjectError(value)
	case FieldMessage:
		errs.Message = rules.MessageError(value)
	}
	return errs
}

// clearDraft resets fields, selections, location and errors. Status and
// reference lists survive.
func clearDraft(state FormState) FormState {
	state.Name, state.Email, state.Phone = "", "", ""
	state.Company, state.Subject, state.Message = "", "", ""
	state.Errors = FieldErrors{}
	state.SelectedProjectType = nil
	state.SelectedBudget = nil
	state.Location = nil
	return state
}

func optional(code string) *string {
	if code == "" {
		return nil
	}
	return &code
}

func status(msg string) *string {
	return &msg
}
