package command

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
)

type memoryRepo struct {
	snap  domain.Snapshot
	saves int
}

func (m *memoryRepo) LoadAll(context.Context) (domain.Snapshot, error) {
	return m.snap.Clone(), nil
}

func (m *memoryRepo) SaveAll(_ context.Context, s domain.Snapshot) error {
	m.saves++
	m.snap = s.Clone()
	return nil
}

var fixedNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newWorkspace(t *testing.T, snap domain.Snapshot) (*workspace.Workspace, *memoryRepo) {
	t.Helper()
	repo := &memoryRepo{snap: snap}
	ws := workspace.New(repo, nil)
	require.NoError(t, ws.Reload(context.Background()))
	return ws, repo
}

// gatedRepo parks the first save until release is closed.
type gatedRepo struct {
	memoryRepo
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedRepo(snap domain.Snapshot) *gatedRepo {
	return &gatedRepo{
		memoryRepo: memoryRepo{snap: snap},
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
}

func (g *gatedRepo) SaveAll(ctx context.Context, s domain.Snapshot) error {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return g.memoryRepo.SaveAll(ctx, s)
}

var errDiskFull = errors.New("disk full")

// flakyRepo fails its first save.
type flakyRepo struct {
	memoryRepo
	failed bool
}

func (f *flakyRepo) SaveAll(ctx context.Context, s domain.Snapshot) error {
	if !f.failed {
		f.failed = true
		return errDiskFull
	}
	return f.memoryRepo.SaveAll(ctx, s)
}

func loadWorkspace(t *testing.T, repo domain.InventoryRepository) *workspace.Workspace {
	t.Helper()
	ws := workspace.New(repo, nil)
	require.NoError(t, ws.Reload(context.Background()))
	return ws
}

func breaker(stock int) domain.Item {
	return domain.Item{
		ID:           "item-1",
		Category:     "전기",
		Name:         "차단기",
		Standard:     "20A",
		Unit:         "EA",
		CurrentStock: stock,
		SafeStock:    5,
	}
}
