package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/facade/pkg/errors"
)

// FileStore keeps one JSON document per record in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "create store directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Put inserts or replaces a record by ID. The write goes through a
// temp file and rename so readers never see a partial document.
func (s *FileStore) Put(ctx context.Context, rec *Record) error {
	if err := errors.ValidateRecordID(rec.ID); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal record %s", rec.ID)
	}

	path := s.path(rec.ID)
	tmp, err := os.CreateTemp(s.dir, ".record-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "create temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "write record %s", rec.ID)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "close record %s", rec.ID)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "store record %s", rec.ID)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errors.ValidateRecordID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodePlanNotFound, "plan %s not found", id)
		}
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "read record %s", id)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreCorrupt, err, "decode record %s", id)
	}
	return &rec, nil
}

// List returns all records, newest first, without plan bodies.
func (s *FileStore) List(ctx context.Context) ([]*Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "read store directory")
	}

	var recs []*Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			// Skip corrupt entries rather than failing the listing.
			continue
		}
		rec.Plan = nil
		recs = append(recs, &rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

// Delete removes a record.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateRecordID(id); err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodePlanNotFound, "plan %s not found", id)
		}
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "delete record %s", id)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

var _ Store = (*FileStore)(nil)
