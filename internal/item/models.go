// Package item implements catalog items, the subjects of verification.
// An item belongs to a category, optionally sits in a rotation city, and
// carries any number of tags.
package item

import (
	"time"

	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
)

type Item struct {
	ID          id.ItemID     `json:"item_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CategoryID  id.CategoryID `json:"category_id"`
	CityID      *id.CityID    `json:"city_id,omitempty"`
	TagIDs      []id.TagID    `json:"tag_ids"`
	CreatedAt   time.Time     `json:"created_at"`
}

func validate(name, description string) error {
	if name == "" || len(name) > 120 {
		return dErrors.New(dErrors.CodeInvalidInput, "name must be 1-120 characters")
	}
	if len(description) > 2000 {
		return dErrors.New(dErrors.CodeInvalidInput, "description must be at most 2000 characters")
	}
	return nil
}

// dedupeTags drops repeated tag IDs while preserving first-seen order.
func dedupeTags(tagIDs []id.TagID) []id.TagID {
	seen := make(map[id.TagID]struct{}, len(tagIDs))
	result := make([]id.TagID, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}
		result = append(result, tagID)
	}
	return result
}
