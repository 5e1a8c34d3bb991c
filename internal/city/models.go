// Package city implements rotation cities. At most one city is active at
// a time; activating a city deactivates the previous one.
package city

import (
	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
)

type City struct {
	ID     id.CityID `json:"city_id"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

func validateName(name string) error {
	if name == "" || len(name) > 80 {
		return dErrors.New(dErrors.CodeInvalidInput, "name must be 1-80 characters")
	}
	return nil
}
