package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// FileInventoryRepository keeps the snapshot in one JSON document shaped
// {inventory, transactions, users}.
type FileInventoryRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileInventoryRepository(path string) *FileInventoryRepository {
	return &FileInventoryRepository{path: path}
}

// LoadAll reads the document. A missing file is an empty store.
func (r *FileInventoryRepository) LoadAll(ctx context.Context) (domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return normalize(domain.Snapshot{}), nil
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read %s: %w", r.path, err)
	}

	var snap domain.Snapshot
	if len(data) > 0 {
		if err := json.Unmarshal(data, &snap); err != nil {
			return domain.Snapshot{}, fmt.Errorf("decode %s: %w", r.path, err)
		}
	}
	return normalize(snap), nil
}

// SaveAll writes to a temporary file in the same directory and renames it
// over the document, so readers see either the old or the new state.
func (r *FileInventoryRepository) SaveAll(ctx context.Context, snap domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(normalize(snap), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".stockledger-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

// normalize turns nil collections into empty ones.
func normalize(s domain.Snapshot) domain.Snapshot {
	if s.Inventory == nil {
		s.Inventory = []domain.Item{}
	}
	if s.Transactions == nil {
		s.Transactions = []domain.Transaction{}
	}
	if s.Users == nil {
		s.Users = []domain.User{}
	}
	return s
}
