// Package uuid wraps google/uuid so that IDs can be bound from URI and
// query parameters by gin.
package uuid

import (
	"errors"

	google_uuid "github.com/google/uuid"
)

var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// UnmarshalParam parses URI and query parameters.
// The empty string parses to Nil.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return ErrInvalid
	}

	*u = UUID{parsed}
	return nil
}
