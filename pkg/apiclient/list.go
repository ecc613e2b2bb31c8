package apiclient

import (
	"context"
	"encoding/json"
	"net/url"

	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
)

// List fetches path and unwraps the named envelope key into a bare slice.
// A missing or null key yields an empty slice.
func List[T any](ctx context.Context, c *Client, path, envelopeKey string, filters url.Values) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := c.Get(ctx, path, filters, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope[envelopeKey]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+envelopeKey+" list")
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Raw fetches path and returns the named envelope entries undecoded, for
// records whose shape varies and must be normalized by the caller.
func Raw(ctx context.Context, c *Client, path, envelopeKey string, filters url.Values) ([]json.RawMessage, error) {
	return List[json.RawMessage](ctx, c, path, envelopeKey, filters)
}
