// Package store persists the saved-prompt list under a single fixed key.
//
// Failures never reach the caller: an unreadable or corrupt record loads as an
// empty list and a failed write is logged and dropped.
package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"prompt_generator_server/internal/types"
)

// SavedPromptsKey is the key the saved list is stored under.
const SavedPromptsKey = "saved-prompts"

// Store loads and saves the saved-prompt list.
type Store interface {
	Load(ctx context.Context) types.SavedResultList
	Save(ctx context.Context, list types.SavedResultList)
}

// encodeList serialises the list as a JSON array of records.
func encodeList(list types.SavedResultList) ([]byte, error) {
	if list == nil {
		list = types.SavedResultList{}
	}
	return json.Marshal(list)
}

// decodeList parses a stored value. Entries with an empty or duplicate id or an
// unknown category are skipped; a value that is not a JSON array yields an
// empty list.
func decodeList(logger *slog.Logger, data []byte) types.SavedResultList {
	if len(data) == 0 {
		return types.SavedResultList{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("stored saved list is corrupt, starting empty", "error", err)
		return types.SavedResultList{}
	}

	list := make(types.SavedResultList, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		var r types.SavedResult
		if err := json.Unmarshal(item, &r); err != nil {
			logger.Warn("skipping unreadable saved entry", "index", i, "error", err)
			continue
		}
		if r.ID == "" || seen[r.ID] || !r.Category.Valid() {
			logger.Warn("skipping invalid saved entry", "index", i, "id", r.ID, "type", r.Category)
			continue
		}
		if r.FormData == nil {
			r.FormData = types.FormValues{}
		}
		seen[r.ID] = true
		list = append(list, r)
	}
	return list
}
