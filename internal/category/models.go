package category

import (
	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
)

// Category groups items. Names are unique across the catalog.
type Category struct {
	ID          id.CategoryID `json:"category_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

func validateName(name string) error {
	if name == "" || len(name) > 80 {
		return dErrors.New(dErrors.CodeInvalidInput, "name must be 1-80 characters")
	}
	return nil
}
