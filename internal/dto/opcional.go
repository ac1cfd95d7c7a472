package dto

import (
	"bytes"
	"encoding/json"
)

// Opcional is a tri-state PATCH-style input: absent (keep the stored value),
// explicit JSON null (clear it) or a new value.
type Opcional[T any] struct {
	presente bool
	nulo     bool
	valor    T
}

// Con returns an Opcional carrying v.
func Con[T any](v T) Opcional[T] { return Opcional[T]{presente: true, valor: v} }

// Nulo returns an Opcional that clears the field.
func Nulo[T any]() Opcional[T] { return Opcional[T]{presente: true, nulo: true} }

func (o *Opcional[T]) UnmarshalJSON(b []byte) error {
	o.presente = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.nulo = true
		var zero T
		o.valor = zero
		return nil
	}
	o.nulo = false
	return json.Unmarshal(b, &o.valor)
}

// Presente reports whether the field was sent at all (value or null).
func (o Opcional[T]) Presente() bool { return o.presente }

// EsNulo reports whether the field was sent as null.
func (o Opcional[T]) EsNulo() bool { return o.presente && o.nulo }

// Valor returns the new value and true when one was sent.
func (o Opcional[T]) Valor() (T, bool) {
	return o.valor, o.presente && !o.nulo
}

// Aplicar overwrites *dst when a value was sent. It reports false when the
// field was sent as null, which non-nullable fields must reject.
func (o Opcional[T]) Aplicar(dst *T) bool {
	if !o.presente {
		return true
	}
	if o.nulo {
		return false
	}
	*dst = o.valor
	return true
}

// AplicarPtr overwrites a nullable field: null clears it, a value replaces it,
// absence keeps it.
func AplicarPtr[T any](o Opcional[T], dst **T) {
	if !o.presente {
		return
	}
	if o.nulo {
		*dst = nil
		return
	}
	v := o.valor
	*dst = &v
}
