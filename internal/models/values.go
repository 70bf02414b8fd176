package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary or measured quantity. It decodes from a JSON number or a
// numeric string so that form-style input ("1000") and API input (1000) agree.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", s)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// AmountPtr is a convenience for optional amount fields.
func AmountPtr(f float64) *Amount {
	a := Amount(f)
	return &a
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

type optionalState uint8

const (
	optionalUnset optionalState = iota
	optionalNull
	optionalSet
)

// Optional is an update field of a nullable attribute. The zero value is unset
// and is left out of the request body; Clear sends an explicit null.
type Optional[T any] struct {
	value T
	state optionalState
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, state: optionalSet}
}

func Clear[T any]() Optional[T] {
	return Optional[T]{state: optionalNull}
}

// Get returns the value and whether one is set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.state == optionalSet
}

// IsSet reports whether the field takes part in the update, as a value or as null.
func (o Optional[T]) IsSet() bool {
	return o.state != optionalUnset
}

func (o Optional[T]) IsNull() bool {
	return o.state == optionalNull
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Clear[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// ErrOptionalUnset is returned when marshalling an Optional that is unset.
var ErrOptionalUnset = errors.New("optional value is unset")

// MarshalJSON encodes a value or null. Unset values fail so that "leave
// unchanged" is never re-encoded as "clear".
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	switch o.state {
	case optionalNull:
		return []byte("null"), nil
	case optionalSet:
		return json.Marshal(o.value)
	}
	return nil, ErrOptionalUnset
}
