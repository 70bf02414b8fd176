package schema

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Field decodes one attribute of a wire object into a record of type T.
type Field[T any] struct {
	name   string
	decode func(value gjson.Result, dst *T) error
}

// Name returns the wire name of the field.
func (f Field[T]) Name() string { return f.name }

type options[V any] struct {
	hasDefault bool
	def        V
	check      func(V) error
}

// Option configures a field combinator.
type Option[V any] func(*options[V])

// Default substitutes v when the field is absent or null. A present value of
// the wrong type is still an error.
func Default[V any](v V) Option[V] {
	return func(o *options[V]) {
		o.hasDefault = true
		o.def = v
	}
}

// Check runs an extra constraint on the coerced value.
func Check[V any](fn func(V) error) Option[V] {
	return func(o *options[V]) {
		o.check = fn
	}
}

func collect[V any](opts []Option[V]) options[V] {
	var o options[V]
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// required builds a non-nullable field: absent or null takes the default or
// fails, anything else must coerce.
func required[T, V any](name, kind string, coerce func(gjson.Result) (V, bool), set func(*T, V), opts []Option[V]) Field[T] {
	o := collect(opts)
	return Field[T]{
		name: name,
		decode: func(value gjson.Result, dst *T) error {
			if absent(value) {
				if !o.hasDefault {
					return fmt.Errorf("required")
				}
				set(dst, o.def)
				return nil
			}
			v, ok := coerce(value)
			if !ok {
				return fmt.Errorf("expected %s, got %s", kind, describe(value))
			}
			if o.check != nil {
				if err := o.check(v); err != nil {
					return err
				}
			}
			set(dst, v)
			return nil
		},
	}
}

// optional builds a nullable field: absent, null and the empty string decode
// to nil, anything else must coerce.
func optional[T, V any](name, kind string, coerce func(gjson.Result) (V, bool), set func(*T, *V), opts []Option[V]) Field[T] {
	o := collect(opts)
	return Field[T]{
		name: name,
		decode: func(value gjson.Result, dst *T) error {
			if blank(value) {
				set(dst, nil)
				return nil
			}
			v, ok := coerce(value)
			if !ok {
				return fmt.Errorf("expected %s, got %s", kind, describe(value))
			}
			if o.check != nil {
				if err := o.check(v); err != nil {
					return err
				}
			}
			set(dst, &v)
			return nil
		},
	}
}

func Int[T any](name string, set func(*T, int64), opts ...Option[int64]) Field[T] {
	return required(name, "integer", CoerceInt, set, opts)
}

func OptInt[T any](name string, set func(*T, *int64), opts ...Option[int64]) Field[T] {
	return optional(name, "integer", CoerceInt, set, opts)
}

func Float[T any](name string, set func(*T, float64), opts ...Option[float64]) Field[T] {
	return required(name, "number", CoerceNumber, set, opts)
}

func OptFloat[T any](name string, set func(*T, *float64), opts ...Option[float64]) Field[T] {
	return optional(name, "number", CoerceNumber, set, opts)
}

func String[T any](name string, set func(*T, string), opts ...Option[string]) Field[T] {
	return required(name, "string", CoerceString, set, opts)
}

func OptString[T any](name string, set func(*T, *string), opts ...Option[string]) Field[T] {
	return optional(name, "string", CoerceString, set, opts)
}

func Time[T any](name string, set func(*T, time.Time), opts ...Option[time.Time]) Field[T] {
	return required(name, "date", CoerceTime, set, opts)
}

func OptTime[T any](name string, set func(*T, *time.Time), opts ...Option[time.Time]) Field[T] {
	return optional(name, "date", CoerceTime, set, opts)
}

func Bool[T any](name string, set func(*T, bool), opts ...Option[bool]) Field[T] {
	return required(name, "boolean", CoerceBool, set, opts)
}

func enumCoercer[V ~string](allowed []string) func(gjson.Result) (V, bool) {
	return func(r gjson.Result) (V, bool) {
		s, ok := CoerceString(r)
		if !ok || !slices.Contains(allowed, s) {
			return "", false
		}
		return V(s), true
	}
}

func Enum[T any, V ~string](name string, allowed []string, set func(*T, V), opts ...Option[V]) Field[T] {
	return required(name, "one of "+strings.Join(allowed, "|"), enumCoercer[V](allowed), set, opts)
}

func OptEnum[T any, V ~string](name string, allowed []string, set func(*T, *V), opts ...Option[V]) Field[T] {
	return optional(name, "one of "+strings.Join(allowed, "|"), enumCoercer[V](allowed), set, opts)
}

// Raw keeps a nested value untransformed. Absent and null leave it nil.
func Raw[T any](name string, set func(*T, json.RawMessage)) Field[T] {
	return Field[T]{
		name: name,
		decode: func(value gjson.Result, dst *T) error {
			if absent(value) {
				return nil
			}
			set(dst, json.RawMessage(value.Raw))
			return nil
		},
	}
}

// Custom decodes a field with fn, which receives the value even when it is absent.
func Custom[T any](name string, fn func(value gjson.Result, dst *T) error) Field[T] {
	return Field[T]{name: name, decode: fn}
}

func describe(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return fmt.Sprintf("%q", r.Str)
	case gjson.JSON:
		if r.IsArray() {
			return "array"
		}
		return "object"
	default:
		return r.Raw
	}
}

// Decoder turns wire payloads of one entity into records.
type Decoder[T any] struct {
	entity string
	fields []Field[T]
}

func New[T any](entity string, fields ...Field[T]) *Decoder[T] {
	return &Decoder[T]{entity: entity, fields: fields}
}

func (d *Decoder[T]) Entity() string { return d.entity }

// Decode parses a single wire object.
func (d *Decoder[T]) Decode(raw []byte) (T, error) {
	if !gjson.ValidBytes(raw) {
		var zero T
		return zero, newError(d.entity, "", "malformed JSON")
	}
	return d.DecodeResult(gjson.ParseBytes(raw))
}

// DecodeResult parses an already located wire object.
func (d *Decoder[T]) DecodeResult(obj gjson.Result) (T, error) {
	var record T
	if !obj.IsObject() {
		return record, newError(d.entity, "", fmt.Sprintf("expected object, got %s", describe(obj)))
	}
	for _, field := range d.fields {
		if err := field.decode(obj.Get(gjson.Escape(field.name)), &record); err != nil {
			var zero T
			return zero, newError(d.entity, field.name, err.Error())
		}
	}
	return record, nil
}

// DecodeList parses a wire array. Any invalid element fails the whole list and
// the error carries its index.
func (d *Decoder[T]) DecodeList(raw []byte) ([]T, error) {
	if !gjson.ValidBytes(raw) {
		return nil, newError(d.entity, "", "malformed JSON")
	}
	return d.DecodeListResult(gjson.ParseBytes(raw))
}

func (d *Decoder[T]) DecodeListResult(arr gjson.Result) ([]T, error) {
	if !arr.IsArray() {
		return nil, newError(d.entity, "", fmt.Sprintf("expected array, got %s", describe(arr)))
	}

	items := arr.Array()
	records := make([]T, 0, len(items))
	for i, item := range items {
		record, err := d.DecodeResult(item)
		if err != nil {
			ve := err.(*ValidationError)
			ve.Index = i
			return nil, ve
		}
		records = append(records, record)
	}
	return records, nil
}
