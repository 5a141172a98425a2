// Package store persists generated plan records.
//
// A record wraps a plan document with identity and bookkeeping: a UUID,
// the plan's content hash, and creation/update timestamps. Three
// backends are provided:
//   - FileStore: one JSON document per record, used by the CLI
//   - MemoryStore: ephemeral, used in tests
//   - MongoStore: shared persistence for server deployments
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/facade/pkg/plan"
)

// Record is a persisted plan with identity and timestamps.
type Record struct {
	ID        string     `json:"id" bson:"_id"`
	Name      string     `json:"name" bson:"name"`
	Hash      string     `json:"hash" bson:"hash"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	Plan      *plan.Plan `json:"plan" bson:"plan"`
}

// NewRecord wraps a plan in a fresh record with a generated ID.
func NewRecord(p *plan.Plan) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		Name:      p.Name,
		Hash:      p.Hash(),
		CreatedAt: now,
		UpdatedAt: now,
		Plan:      p,
	}
}

// Store is the interface for record persistence.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put inserts or replaces a record by ID.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Missing records return an error
	// with code PLAN_NOT_FOUND.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records, newest first, without plan bodies.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record. Deleting a missing record returns an
	// error with code PLAN_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}
