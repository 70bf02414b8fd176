package client

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Page is the pagination metadata of a list response. A list that was not
// paginated reports a single page holding every result.
type Page struct {
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}

func pageOf(obj gjson.Result, count int) Page {
	p := Page{Page: 1, Limit: count, TotalPages: 1, TotalResults: count}
	if v := obj.Get("page"); v.Exists() {
		p.Page = int(v.Int())
	}
	if v := obj.Get("limit"); v.Exists() {
		p.Limit = int(v.Int())
	}
	if v := obj.Get("totalPages"); v.Exists() {
		p.TotalPages = int(v.Int())
	}
	if v := obj.Get("totalResults"); v.Exists() {
		p.TotalResults = int(v.Int())
	}
	return p
}

// List locates the record array of a list response. It accepts the paginated
// envelope {results, page, limit, totalPages, totalResults}, a bare array and
// either of them wrapped in {data: ...}.
func List(data []byte) (gjson.Result, Page, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, Page{}, fmt.Errorf("%w: malformed JSON", ErrUnexpectedEnvelope)
	}
	return list(gjson.ParseBytes(data), true)
}

func list(body gjson.Result, unwrap bool) (gjson.Result, Page, error) {
	switch {
	case body.IsArray():
		n := len(body.Array())
		return body, Page{Page: 1, Limit: n, TotalPages: 1, TotalResults: n}, nil
	case body.IsObject():
		if results := body.Get("results"); results.IsArray() {
			return results, pageOf(body, len(results.Array())), nil
		}
		if inner := body.Get("data"); unwrap && inner.Exists() {
			return list(inner, false)
		}
	}
	return gjson.Result{}, Page{}, fmt.Errorf("%w: expected list", ErrUnexpectedEnvelope)
}

// Item locates the record of a detail, create or update response: a flat
// object or one wrapped in {data: {...}}.
func Item(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%w: malformed JSON", ErrUnexpectedEnvelope)
	}
	body := gjson.ParseBytes(data)
	if !body.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: expected object", ErrUnexpectedEnvelope)
	}
	if inner := body.Get("data"); inner.IsObject() && !body.Get("id").Exists() {
		return inner, nil
	}
	return body, nil
}
