package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateKey is returned when a write loses the race against the
// store-level unique index. The pre-write conflict checks are only the
// fast path; the index is the actual invariant enforcer.
var ErrDuplicateKey = errors.New("duplicate key")

func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}
