package dto

import (
	"net/mail"
	"strings"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError detalle de validación por campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SuccessResponse respuesta simple de operaciones sin cuerpo propio.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ValidationErrors acumula errores de validación.
type ValidationErrors []FieldError

func (v *ValidationErrors) add(field, msg string) {
	*v = append(*v, FieldError{Field: field, Message: msg})
}

// Err devuelve nil si no hubo errores (para usar como error estándar).
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validación: " + strings.Join(parts, "; ")
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// checkOptionalText valida longitud máxima de un campo opcional.
func (v *ValidationErrors) checkOptionalText(field string, s *string, max int) {
	if s != nil && len(*s) > max {
		v.add(field, "excede la longitud máxima")
	}
}
