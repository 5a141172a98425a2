package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/facade/pkg/errors"
	"github.com/matzehuels/facade/pkg/plan"
)

func testPlan(name string) *plan.Plan {
	return &plan.Plan{
		Name: name,
		Seed: 42,
		Floors: []plan.Floor{{
			Index:  0,
			Height: 3,
			Vertices: []plan.Point{
				{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
			},
		}},
	}
}

// runStoreTests exercises the Store contract against any backend.
func runStoreTests(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("put and get", func(t *testing.T) {
		rec := NewRecord(testPlan("alpha"))
		if err := s.Put(ctx, rec); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		got, err := s.Get(ctx, rec.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Name != "alpha" {
			t.Errorf("Name = %q, want alpha", got.Name)
		}
		if got.Hash != rec.Hash {
			t.Errorf("Hash = %q, want %q", got.Hash, rec.Hash)
		}
		if got.Plan == nil || got.Plan.Hash() != rec.Plan.Hash() {
			t.Error("plan did not round-trip")
		}
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := s.Get(ctx, uuid.NewString())
		if !errors.Is(err, errors.ErrCodePlanNotFound) {
			t.Errorf("error code = %v, want PLAN_NOT_FOUND", errors.GetCode(err))
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		older := NewRecord(testPlan("older"))
		older.CreatedAt = older.CreatedAt.Add(-time.Hour)
		newer := NewRecord(testPlan("newer"))
		if err := s.Put(ctx, older); err != nil {
			t.Fatal(err)
		}
		if err := s.Put(ctx, newer); err != nil {
			t.Fatal(err)
		}

		recs, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(recs) < 2 {
			t.Fatalf("got %d records, want at least 2", len(recs))
		}
		for i := 1; i < len(recs); i++ {
			if recs[i].CreatedAt.After(recs[i-1].CreatedAt) {
				t.Error("records not sorted newest first")
			}
		}
		for _, rec := range recs {
			if rec.Plan != nil {
				t.Error("List() included plan body")
			}
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := NewRecord(testPlan("gone"))
		if err := s.Put(ctx, rec); err != nil {
			t.Fatal(err)
		}
		if err := s.Delete(ctx, rec.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := s.Get(ctx, rec.ID); !errors.Is(err, errors.ErrCodePlanNotFound) {
			t.Error("record still present after delete")
		}
		if err := s.Delete(ctx, rec.ID); !errors.Is(err, errors.ErrCodePlanNotFound) {
			t.Errorf("second delete error code = %v, want PLAN_NOT_FOUND", errors.GetCode(err))
		}
	})

	t.Run("put replaces", func(t *testing.T) {
		rec := NewRecord(testPlan("v1"))
		if err := s.Put(ctx, rec); err != nil {
			t.Fatal(err)
		}
		rec.Name = "v2"
		rec.UpdatedAt = time.Now().UTC()
		if err := s.Put(ctx, rec); err != nil {
			t.Fatal(err)
		}
		got, err := s.Get(ctx, rec.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "v2" {
			t.Errorf("Name = %q, want v2", got.Name)
		}
	})

	t.Run("rejects bad id", func(t *testing.T) {
		if _, err := s.Get(ctx, "../escape"); err == nil {
			t.Error("expected error for traversal id")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	runStoreTests(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer s.Close(context.Background())
	runStoreTests(t, s)
}

func TestNewRecord(t *testing.T) {
	p := testPlan("fresh")
	rec := NewRecord(p)
	if rec.ID == "" {
		t.Error("NewRecord() left ID empty")
	}
	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", rec.ID, err)
	}
	if rec.Hash != p.Hash() {
		t.Error("Hash does not match plan hash")
	}
	if rec.CreatedAt.IsZero() || !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Error("timestamps not initialized")
	}
}
