package faas

import (
	"net/url"
	"strconv"
	"strings"
)

// Default pagination used when a list call leaves limit or offset unset.
const (
	DefaultLimit  = 20
	DefaultOffset = 0
)

// ListParams controls pagination for list operations.
type ListParams struct {
	Limit  int
	Offset int
}

// NewListParams creates list params with the default page.
func NewListParams() *ListParams {
	return &ListParams{Limit: DefaultLimit, Offset: DefaultOffset}
}

// WithLimit sets the page size.
func (p *ListParams) WithLimit(limit int) *ListParams {
	p.Limit = limit

	return p
}

// WithOffset sets the number of items to skip.
func (p *ListParams) WithOffset(offset int) *ListParams {
	p.Offset = offset

	return p
}

// ToValues converts params to url.Values. A nil receiver, a non-positive
// limit or a negative offset fall back to the defaults.
func (p *ListParams) ToValues() url.Values {
	limit, offset := DefaultLimit, DefaultOffset

	if p != nil {
		if p.Limit > 0 {
			limit = p.Limit
		}

		if p.Offset > 0 {
			offset = p.Offset
		}
	}

	values := url.Values{}
	values.Set("limit", strconv.Itoa(limit))
	values.Set("offset", strconv.Itoa(offset))

	return values
}

// Query is anything that renders a URL query string without the leading "?".
// url.Values satisfies it, as does RawQuery.
type Query interface {
	Encode() string
}

// RawQuery is a pre-formed query string. A leading "?" is optional.
type RawQuery string

// Encode implements Query.
func (q RawQuery) Encode() string {
	return strings.TrimLeft(string(q), "?")
}

// QueryFromMap builds a Query from a flat key/value map.
func QueryFromMap(params map[string]string) url.Values {
	values := make(url.Values, len(params))
	for key, value := range params {
		values.Set(key, value)
	}

	return values
}

// QuerySuffix renders q as a URL suffix: "" when empty, otherwise "?" followed
// by the encoded query exactly once.
func QuerySuffix(q Query) string {
	if q == nil {
		return ""
	}

	encoded := q.Encode()
	if encoded == "" {
		return ""
	}

	return "?" + encoded
}
