package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/stockledger/internal/excel"
	"github.com/tair/stockledger/internal/inventory/domain"
)

const standardCSV = "분류,품목명,규격,수량,단위\n" +
	"전기,차단기,20A,\"1,200\",EA\n" +
	"기계,베어링,6204,5,개\n"

const legacyCSV = "자재 현황표,,,\n" +
	"품목(규격),비고(품번),제조사,재고\n" +
	"차단기(20A),AB-1,LS,3\n" +
	"합계,,,3\n"

type importFixture struct {
	upload  *UploadItemsHandler
	mapping *SetMappingHandler
	preview *PreviewItemsHandler
	commit  *CommitItemsHandler
	repo    *memoryRepo
}

func newImportFixture(t *testing.T) importFixture {
	t.Helper()
	ws, repo := newWorkspace(t, domain.Snapshot{Inventory: []domain.Item{breaker(10)}})
	sessions := NewItemImportSessions(fixedClock)
	fields := excel.DefaultFieldLabels()
	return importFixture{
		upload:  NewUploadItemsHandler(ws, sessions, fields, fixedClock),
		mapping: NewSetMappingHandler(sessions, fields),
		preview: NewPreviewItemsHandler(ws, sessions, fields),
		commit:  NewCommitItemsHandler(ws, sessions, fields),
		repo:    repo,
	}
}

func TestItemImport_StandardFlow(t *testing.T) {
	// Setup
	f := newImportFixture(t)
	ctx := context.Background()

	// Execute
	state, err := f.upload.Handle(ctx, UploadItemsCommand{Filename: "items.csv", File: strings.NewReader(standardCSV)})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, excel.FormatStandard, state.Format)
	assert.Equal(t, 2, state.RowCount)
	assert.Equal(t, []string{"1. 대분류 (Category)", "6. 현재고 (수량)"}, state.Missing)
	assert.Equal(t, "품목명", state.Mapping[excel.FieldName])
	assert.Nil(t, state.Preview)

	_, err = f.preview.Handle(ctx, PreviewItemsCommand{SessionID: state.SessionID})
	var missing *excel.MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.ErrorIs(t, err, excel.ErrMappingIncomplete)
	assert.Equal(t, state.Missing, missing.Labels)

	state, err = f.mapping.Handle(ctx, SetMappingCommand{
		SessionID: state.SessionID,
		Mapping:   map[string]string{"category": "분류", "currentStock": "수량"},
	})
	require.NoError(t, err)
	assert.Empty(t, state.Missing)

	preview, err := f.preview.Handle(ctx, PreviewItemsCommand{SessionID: state.SessionID})
	require.NoError(t, err)
	require.Len(t, preview.Items, 2)
	assert.Equal(t, 1200, preview.Items[0].CurrentStock)
	assert.Equal(t, "개", preview.Items[1].Unit)
	assert.Equal(t, 1, preview.DuplicateCount)

	count, err := f.commit.Handle(ctx, CommitItemsCommand{SessionID: state.SessionID})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, f.repo.snap.Inventory, 3)

	_, err = f.commit.Handle(ctx, CommitItemsCommand{SessionID: state.SessionID})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestItemImport_MappingRejectsUnknownHeader(t *testing.T) {
	// Setup
	f := newImportFixture(t)
	ctx := context.Background()
	state, err := f.upload.Handle(ctx, UploadItemsCommand{Filename: "items.csv", File: strings.NewReader(standardCSV)})
	require.NoError(t, err)

	// Execute
	_, err = f.mapping.Handle(ctx, SetMappingCommand{
		SessionID: state.SessionID,
		Mapping:   map[string]string{"category": "없는 열"},
	})

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemImport_LegacyFlow(t *testing.T) {
	// Setup
	f := newImportFixture(t)
	ctx := context.Background()

	// Execute
	state, err := f.upload.Handle(ctx, UploadItemsCommand{Filename: "old.csv", File: strings.NewReader(legacyCSV)})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, excel.FormatLegacy, state.Format)
	require.NotNil(t, state.Preview)
	require.Len(t, state.Preview.Items, 1)
	item := state.Preview.Items[0]
	assert.Equal(t, "차단기", item.Name)
	assert.Equal(t, "20A", item.Standard)
	assert.Equal(t, "AB-1", item.Model)
	assert.Equal(t, 3, item.CurrentStock)
	assert.Equal(t, 1, state.Preview.DuplicateCount)

	_, err = f.mapping.Handle(ctx, SetMappingCommand{SessionID: state.SessionID, Mapping: map[string]string{}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	count, err := f.commit.Handle(ctx, CommitItemsCommand{SessionID: state.SessionID})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, f.repo.snap.Inventory, 2)
}

func TestItemImport_RejectsUnsupportedFile(t *testing.T) {
	// Setup
	f := newImportFixture(t)

	// Execute
	_, err := f.upload.Handle(context.Background(), UploadItemsCommand{Filename: "notes.txt", File: strings.NewReader("hello")})

	// Assert
	assert.ErrorIs(t, err, excel.ErrUnsupportedFormat)
	assert.Zero(t, f.repo.saves)
}

func TestItemImport_CommitOnceUnderConcurrency(t *testing.T) {
	// Setup
	repo := newGatedRepo(domain.Snapshot{Inventory: []domain.Item{breaker(10)}})
	ws := loadWorkspace(t, repo)
	sessions := NewItemImportSessions(fixedClock)
	fields := excel.DefaultFieldLabels()
	upload := NewUploadItemsHandler(ws, sessions, fields, fixedClock)
	commit := NewCommitItemsHandler(ws, sessions, fields)
	ctx := context.Background()

	state, err := upload.Handle(ctx, UploadItemsCommand{Filename: "legacy.csv", File: strings.NewReader(legacyCSV)})
	require.NoError(t, err)

	// Execute
	firstErr := make(chan error, 1)
	go func() {
		_, err := commit.Handle(ctx, CommitItemsCommand{SessionID: state.SessionID})
		firstErr <- err
	}()
	<-repo.entered
	_, secondErr := commit.Handle(ctx, CommitItemsCommand{SessionID: state.SessionID})
	close(repo.release)

	// Assert
	assert.ErrorIs(t, secondErr, domain.ErrSessionNotFound)
	require.NoError(t, <-firstErr)
	assert.Len(t, repo.snap.Inventory, 2)
}

func TestItemImport_IncompleteCommitKeepsSession(t *testing.T) {
	// Setup
	f := newImportFixture(t)
	ctx := context.Background()
	state, err := f.upload.Handle(ctx, UploadItemsCommand{Filename: "items.csv", File: strings.NewReader(standardCSV)})
	require.NoError(t, err)

	// Execute
	_, errFirst := f.commit.Handle(ctx, CommitItemsCommand{SessionID: state.SessionID})
	_, errMapping := f.mapping.Handle(ctx, SetMappingCommand{
		SessionID: state.SessionID,
		Mapping:   map[string]string{"category": "분류", "currentStock": "수량"},
	})
	count, errRetry := f.commit.Handle(ctx, CommitItemsCommand{SessionID: state.SessionID})

	// Assert
	assert.ErrorIs(t, errFirst, excel.ErrMappingIncomplete)
	require.NoError(t, errMapping)
	require.NoError(t, errRetry)
	assert.Equal(t, 2, count)
	assert.Len(t, f.repo.snap.Inventory, 3)
}
