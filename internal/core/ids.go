package core

import (
	"errors"

	"hotelres/pkg/domain"

	"github.com/google/uuid"
)

func newUUID() string { return uuid.NewString() }

func isStorage(err error) bool { return errors.Is(err, domain.ErrStorage) }

// assignID fills an empty id from the configured generator.
func (o options) assignID(id string) string {
	if id != "" {
		return id
	}
	return o.newID()
}
