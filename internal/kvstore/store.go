// Package kvstore holds the string key-value stores that back every entity collection.
// Each key holds one whole collection encoded as JSON.
package kvstore

import (
	"context"
	"errors"
)

// Well-known keys. Every key holds the entire collection.
const (
	KeyExercises         = "exercises"
	KeyTrainingPrograms  = "trainingPrograms"
	KeyDietItems         = "dietItems"
	KeyClients           = "clients"
	KeyClientAssignments = "clientTrainingAssignments"
	KeyIsAuthenticated   = "isAuthenticated"
)

// ErrEmptyKey is returned for operations on the empty key.
var ErrEmptyKey = errors.New("kvstore: empty key")

// Store is a synchronous string store with get/set/remove by key.
// A missing key is reported by ok == false, never by an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
