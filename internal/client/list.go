package client

import (
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// listEnvelope is the pagination part shared by every list response.
type listEnvelope struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// decodeList reads a list envelope whose items live under key. Backends that
// use the generic "items" key are accepted as well.
func decodeList[T any](body []byte, key string) (*faas.ListResponse[T], error) {
	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", key, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", key, err)
	}

	raw, ok := fields[key]
	if !ok {
		raw = fields["items"]
	}

	result := &faas.ListResponse[T]{
		Items:  []T{},
		Total:  envelope.Total,
		Limit:  envelope.Limit,
		Offset: envelope.Offset,
	}

	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &result.Items); err != nil {
			return nil, fmt.Errorf("parsing %s list items: %w", key, err)
		}
	}

	return result, nil
}
