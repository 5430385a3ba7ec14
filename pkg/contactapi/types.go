package contactapi

import (
	"fmt"
	"net/http"
)

// Option is a reference-data entry (project type or budget range).
type Option struct {
	ID   int64  `json:"id"`
	Code string `json:"codigo"`
	Name string `json:"nombre"`
}

// ContactRequest is the body of POST contact. Optional fields are omitted when nil.
type ContactRequest struct {
	Name        string  `json:"nombre" validate:"required"`
	Email       string  `json:"email" validate:"required,contact_email"`
	Phone       *string `json:"telefono,omitempty" validate:"omitempty,min=8,max=16"`
	Company     *string `json:"empresa,omitempty"`
	ProjectType string  `json:"tipoProyecto" validate:"required"`
	Budget      *string `json:"presupuesto,omitempty"`
	Subject     string  `json:"asunto" validate:"required"`
	Message     string  `json:"mensaje" validate:"required"`
}

// Contact is a contact record stored by the remote service.
type Contact struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Email       string  `json:"email"`
	Phone       *string `json:"telefono"`
	Company     *string `json:"empresa"`
	ProjectType string  `json:"tipoProyecto"`
	Budget      *string `json:"presupuesto"`
	Subject     string  `json:"asunto"`
	Message     string  `json:"mensaje"`
	CreatedAt   string  `json:"fechaCreacion"`
}

// Envelope wraps responses of the submission endpoint.
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      *T     `json:"data"`
	Timestamp string `json:"timestamp,omitempty"`
}

// APIError is returned for non-2xx responses and for envelopes reporting failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func statusError(code int, serverMessage string) *APIError {
	if serverMessage != "" {
		return &APIError{StatusCode: code, Message: serverMessage}
	}
	return &APIError{StatusCode: code, Message: fmt.Sprintf("Error: %d - %s", code, http.StatusText(code))}
}
