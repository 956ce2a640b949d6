package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Taxonomía de errores del núcleo. Los servicios retornan siempre uno de
// estos tipos ante violaciones de reglas de negocio; los errores de
// infraestructura se propagan envueltos con %w.

// ValidationError indica datos de entrada malformados o incompletos.
// Se rechaza antes de leer estado persistido.
type ValidationError struct {
	Msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError indica que otra reserva viva ocupa la habitación en el
// rango de fechas solicitado. Incluye la primera reserva en conflicto
// para que el llamador pueda mostrarla.
type ConflictError struct {
	Msg       string
	Conflicto *Reserva
}

func NewConflictError(conflicto *Reserva) *ConflictError {
	msg := "la habitación ya está reservada en el rango de fechas seleccionado"
	if conflicto != nil {
		msg = fmt.Sprintf(
			"%s: ya existe una reserva del %s al %s con estado %s",
			msg,
			conflicto.FechaInicio.Format("2006-01-02"),
			conflicto.FechaFin.Format("2006-01-02"),
			conflicto.Estado,
		)
	}
	return &ConflictError{Msg: msg, Conflicto: conflicto}
}

func (e *ConflictError) Error() string { return e.Msg }

// StateError indica una transición ilegal del ciclo de vida.
type StateError struct {
	Msg string
}

func NewStateError(format string, args ...any) *StateError {
	return &StateError{Msg: fmt.Sprintf(format, args...)}
}

func (e *StateError) Error() string { return e.Msg }

// NotFoundError indica que la entidad referida no existe.
type NotFoundError struct {
	Entidad string
	Clave   string
}

func NewNotFoundError(entidad string, clave any) *NotFoundError {
	return &NotFoundError{Entidad: entidad, Clave: fmt.Sprint(clave)}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrada: %s", e.Entidad, e.Clave)
}

func IsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func IsConflictError(err error) *ConflictError {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}

func IsStateError(err error) *StateError {
	var se *StateError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

func IsNotFoundError(err error) *NotFoundError {
	var ne *NotFoundError
	if errors.As(err, &ne) {
		return ne
	}
	return nil
}

func normalizar(texto string) string {
	return strings.ToUpper(strings.TrimSpace(texto))
}
