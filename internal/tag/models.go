// Package tag implements the flat tag vocabulary items can be labeled with.
package tag

import (
	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
)

// Tag is a label attachable to items. Names are unique across the vocabulary.
type Tag struct {
	ID   id.TagID `json:"tag_id"`
	Name string   `json:"name"`
}

func validateName(name string) error {
	if name == "" || len(name) > 50 {
		return dErrors.New(dErrors.CodeInvalidInput, "name must be 1-50 characters")
	}
	return nil
}
