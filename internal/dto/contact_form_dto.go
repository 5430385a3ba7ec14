package dto

// FieldUpdateRequest carries the raw text typed into one form field.
type FieldUpdateRequest struct {
	Value string `json:"value"`
}

// SelectionRequest picks an option by its code.
type SelectionRequest struct {
	Code string `json:"code" validate:"required"`
}

// LocationRequest sets explicit coordinates on the form.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}
