package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio que la capa de transporte traduce a códigos HTTP.
type Kind string

const (
	KindCategoryAssigned           Kind = "CategoryAssigned"
	KindParentCategoryDoesNotExist Kind = "ParentCategoryDoesNotExist"
	KindCategoryIDIsNull           Kind = "CategoryIdIsNull"
	KindIDUpdateForbidden          Kind = "IdUpdateForbidden"
	KindIDAssignmentForbidden      Kind = "IdAssignmentForbidden"
	KindNotFound                   Kind = "NotFound"
	KindConversionFailed           Kind = "ConversionFailed"
	KindUnknown                    Kind = "UnknownException"
)

// Error es un error de dominio tipado con un mensaje legible para el cliente.
// Se construye donde se detecta la falla y viaja sin envolver hasta el transporte.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Detail
}

// Is permite comparar por tipo con errors.Is(err, &domain.Error{Kind: ...}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Detail == "" || t.Detail == e.Detail)
}

// NewError construye un error de dominio con detalle formateado.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf devuelve el tipo del error; cualquier error ajeno al dominio es KindUnknown.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsKind indica si err es un error de dominio del tipo dado.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Constructores de los errores más frecuentes.

func NotFound(format string, args ...any) *Error {
	return NewError(KindNotFound, format, args...)
}

func ConversionFailed() *Error {
	return NewError(KindConversionFailed, "no se pudo convertir el precio")
}
