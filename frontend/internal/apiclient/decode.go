package apiclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/logger"
	"github.com/mira-dev/mira/shared/utils"
)

// decodeOne rejects a single entity that does not decode or validate.
func decodeOne[T any](endpoint string, body []byte) (T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &UnknownError{Endpoint: endpoint, Err: fmt.Errorf("invalid json: %w", err)}
	}
	if err := utils.Validate.Struct(out); err != nil {
		return out, &UnknownError{Endpoint: endpoint, Err: fmt.Errorf("invalid payload: %w", err)}
	}
	return out, nil
}

// decodeList keeps every item that decodes and validates and drops the rest, so one
// malformed row never blanks a whole list. Only a broken envelope is an error.
func decodeList[T any](ctx context.Context, endpoint string, body []byte) ([]T, error) {
	var envelope api.ListResponse[json.RawMessage]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &UnknownError{Endpoint: endpoint, Err: fmt.Errorf("invalid json: %w", err)}
	}

	items := make([]T, 0, len(envelope.Items))
	for i, raw := range envelope.Items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			logger.FromContext(ctx).Warn("dropping undecodable list item", "endpoint", endpoint, "index", i, "error", err)
			continue
		}
		if err := utils.Validate.Struct(item); err != nil {
			logger.FromContext(ctx).Warn("dropping invalid list item", "endpoint", endpoint, "index", i, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
