package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/stockledger/internal/inventory/domain"
)

type memoryRepo struct {
	snap    domain.Snapshot
	saves   int
	saveErr error
	loadErr error
}

func (m *memoryRepo) LoadAll(context.Context) (domain.Snapshot, error) {
	if m.loadErr != nil {
		return domain.Snapshot{}, m.loadErr
	}
	return m.snap.Clone(), nil
}

func (m *memoryRepo) SaveAll(_ context.Context, s domain.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.snap = s.Clone()
	return nil
}

type recordingNotifier struct {
	changes []string
	err     error
}

func (n *recordingNotifier) NotifyDataUpdated(_ context.Context, change string, _, _ int) error {
	n.changes = append(n.changes, change)
	return n.err
}

func loaded(t *testing.T, repo *memoryRepo, n Notifier) *Workspace {
	t.Helper()
	ws := New(repo, n)
	require.NoError(t, ws.Reload(context.Background()))
	return ws
}

func TestMutate_CommitsAndNotifies(t *testing.T) {
	repo := &memoryRepo{snap: domain.Snapshot{Inventory: []domain.Item{{ID: "a"}}}}
	n := &recordingNotifier{}
	ws := loaded(t, repo, n)

	err := ws.Mutate(context.Background(), "item.created", func(s *domain.Snapshot) error {
		s.Inventory = append(s.Inventory, domain.Item{ID: "b"})
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, ws.Snapshot().Inventory, 2)
	assert.Len(t, repo.snap.Inventory, 2)
	assert.Equal(t, []string{"item.created"}, n.changes)
}

func TestMutate_FailureLeavesStateUntouched(t *testing.T) {
	repo := &memoryRepo{snap: domain.Snapshot{Inventory: []domain.Item{{ID: "a", CurrentStock: 1}}}}
	n := &recordingNotifier{}
	ws := loaded(t, repo, n)
	boom := errors.New("boom")

	err := ws.Mutate(context.Background(), "x", func(s *domain.Snapshot) error {
		s.Inventory[0].CurrentStock = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)

	repo.saveErr = errors.New("disk full")
	err = ws.Mutate(context.Background(), "x", func(s *domain.Snapshot) error {
		s.Inventory[0].CurrentStock = 42
		return nil
	})
	assert.Error(t, err)

	assert.Equal(t, 1, ws.Snapshot().Inventory[0].CurrentStock)
	assert.Empty(t, n.changes)
	assert.Equal(t, 0, repo.saves)
}

func TestMutate_NotifierErrorDoesNotFail(t *testing.T) {
	repo := &memoryRepo{}
	ws := loaded(t, repo, &recordingNotifier{err: errors.New("kafka down")})

	err := ws.Mutate(context.Background(), "x", func(*domain.Snapshot) error { return nil })

	assert.NoError(t, err)
}

func TestMutate_RequiresLoad(t *testing.T) {
	ws := New(&memoryRepo{}, nil)

	err := ws.Mutate(context.Background(), "x", func(*domain.Snapshot) error { return nil })

	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestSnapshot_IsACopy(t *testing.T) {
	ws := loaded(t, &memoryRepo{snap: domain.Snapshot{Inventory: []domain.Item{{ID: "a", Name: "x"}}}}, nil)

	s := ws.Snapshot()
	s.Inventory[0].Name = "changed"

	assert.Equal(t, "x", ws.Snapshot().Inventory[0].Name)
}

func TestReload_Error(t *testing.T) {
	ws := New(&memoryRepo{loadErr: errors.New("offline")}, nil)

	assert.Error(t, ws.Reload(context.Background()))
}
