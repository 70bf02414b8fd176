package schema

import (
	"time"

	"rentalmanager/internal/models"
)

// Body is an outbound wire payload. Keys that are never set are left out of
// the encoded request; keys set to nil are sent as null.
type Body map[string]any

func wireValue(v any) any {
	switch v := v.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case models.Amount:
		return float64(v)
	}
	return v
}

func (b Body) Set(key string, v any) Body {
	b[key] = wireValue(v)
	return b
}

// SetPtr sets key only when v is non-nil.
func SetPtr[V any](b Body, key string, v *V) {
	if v != nil {
		b.Set(key, *v)
	}
}

// SetOr sets key to *v, or to def when v is nil.
func SetOr[V any](b Body, key string, v *V, def V) {
	if v != nil {
		b.Set(key, *v)
		return
	}
	b.Set(key, def)
}

// SetNullable sets key to *v, or to null when v is nil.
func SetNullable[V any](b Body, key string, v *V) {
	if v != nil {
		b.Set(key, *v)
		return
	}
	b[key] = nil
}

// SetOptional sets key when o takes part in the update, sending null for a
// cleared field.
func SetOptional[V any](b Body, key string, o models.Optional[V]) {
	if !o.IsSet() {
		return
	}
	if v, ok := o.Get(); ok {
		b.Set(key, v)
		return
	}
	b[key] = nil
}
