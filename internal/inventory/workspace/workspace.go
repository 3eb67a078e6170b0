// Package workspace holds the single in-memory copy of inventory state that
// every handler reads from and writes through.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/pkg/logger"
	"github.com/tair/stockledger/pkg/metrics"
)

// Notifier is told about every committed change. Failures are logged only.
type Notifier interface {
	NotifyDataUpdated(ctx context.Context, change string, items, transactions int) error
}

// ErrNotLoaded is returned when the workspace is used before Reload succeeded.
var ErrNotLoaded = errors.New("workspace not loaded")

// Workspace serializes writers and hands readers immutable snapshots.
type Workspace struct {
	repo     domain.InventoryRepository
	notifier Notifier

	mu     sync.RWMutex
	state  domain.Snapshot
	loaded bool
}

// New creates a workspace on top of repo. notifier may be nil.
func New(repo domain.InventoryRepository, notifier Notifier) *Workspace {
	return &Workspace{repo: repo, notifier: notifier}
}

// Reload replaces the in-memory state with what the store holds.
func (w *Workspace) Reload(ctx context.Context) error {
	snap, err := w.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	w.mu.Lock()
	w.state = snap
	w.loaded = true
	w.mu.Unlock()

	metrics.SetSizes(len(snap.Inventory), len(snap.Transactions))
	logger.Info(ctx).
		Int("items", len(snap.Inventory)).
		Int("transactions", len(snap.Transactions)).
		Msg("Workspace loaded")
	return nil
}

// Snapshot returns a copy of the current state. Callers may keep or modify it.
func (w *Workspace) Snapshot() domain.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Clone()
}

// View runs fn against the current state under the read lock.
// fn must not retain or modify the snapshot.
func (w *Workspace) View(fn func(s *domain.Snapshot)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(&w.state)
}

// Mutate runs fn on a private copy of the state. If fn succeeds the copy is
// saved and then swapped in; if fn or the save fails nothing changes.
// change names the mutation for logs and notifications.
func (w *Workspace) Mutate(ctx context.Context, change string, fn func(s *domain.Snapshot) error) error {
	w.mu.Lock()
	if !w.loaded {
		w.mu.Unlock()
		return ErrNotLoaded
	}
	next := w.state.Clone()
	if err := fn(&next); err != nil {
		w.mu.Unlock()
		return err
	}
	if err := w.repo.SaveAll(ctx, next); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("save snapshot: %w", err)
	}
	w.state = next
	items, txs := len(next.Inventory), len(next.Transactions)
	w.mu.Unlock()

	metrics.SetSizes(items, txs)
	metrics.LedgerOperations.WithLabelValues(change).Inc()

	if w.notifier != nil {
		if err := w.notifier.NotifyDataUpdated(ctx, change, items, txs); err != nil {
			logger.Warn(ctx).Err(err).Str("change", change).Msg("Failed to publish data update")
		}
	}
	return nil
}
