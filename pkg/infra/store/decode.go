package store

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// decodeRecords parses a repo -> tag JSON object. Empty or corrupt data yields
// an empty map; the next Put rewrites it.
func decodeRecords(ctx context.Context, raw []byte, location string) map[string]string {
	records := map[string]string{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return records
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		logging.From(ctx).Warn("Version records are not a JSON object, treating as empty",
			"location", location,
			"error", err,
		)
		return map[string]string{}
	}
	return records
}
