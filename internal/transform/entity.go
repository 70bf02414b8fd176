// Package transform declares the wire schemas of the rental entities and the
// mappings from create and update inputs to request bodies.
package transform

import (
	"time"

	"github.com/tidwall/gjson"

	"rentalmanager/internal/schema"
)

// Entity is the boundary transformer of one entity type: E is the record,
// C the create input and U the update input.
type Entity[E, C, U any] struct {
	name    string
	plural  string
	decoder *schema.Decoder[E]
	create  func(C) schema.Body
	update  func(U) schema.Body
}

func newEntity[E, C, U any](name, plural string, decoder *schema.Decoder[E], create func(C) schema.Body, update func(U) schema.Body) *Entity[E, C, U] {
	return &Entity[E, C, U]{name: name, plural: plural, decoder: decoder, create: create, update: update}
}

// Name is the singular human readable entity name, e.g. "utility meter".
func (e *Entity[E, C, U]) Name() string { return e.name }

// Plural is the plural human readable entity name.
func (e *Entity[E, C, U]) Plural() string { return e.plural }

func (e *Entity[E, C, U]) Decode(raw []byte) (E, error) {
	return e.decoder.Decode(raw)
}

func (e *Entity[E, C, U]) DecodeList(raw []byte) ([]E, error) {
	return e.decoder.DecodeList(raw)
}

func (e *Entity[E, C, U]) DecodeResult(obj gjson.Result) (E, error) {
	return e.decoder.DecodeResult(obj)
}

func (e *Entity[E, C, U]) DecodeListResult(arr gjson.Result) ([]E, error) {
	return e.decoder.DecodeListResult(arr)
}

// CreatePayload validates a create input and maps it to a request body with
// defaults filled in for omitted optional fields.
func (e *Entity[E, C, U]) CreatePayload(input C) (schema.Body, error) {
	if err := schema.ValidateInput(e.name, input); err != nil {
		return nil, err
	}
	return e.create(input), nil
}

// UpdatePayload validates an update input and maps it to a request body that
// carries only the fields the input sets.
func (e *Entity[E, C, U]) UpdatePayload(input U) (schema.Body, error) {
	if err := schema.ValidateInput(e.name, input); err != nil {
		return nil, err
	}
	return e.update(input), nil
}

// Timestamps are assigned by the server; a payload without them decodes to the
// zero time.
func createdAt[T any](set func(*T, time.Time)) schema.Field[T] {
	return schema.Time("createdAt", set, schema.Default(time.Time{}))
}

func updatedAt[T any](set func(*T, time.Time)) schema.Field[T] {
	return schema.Time("updatedAt", set, schema.Default(time.Time{}))
}
