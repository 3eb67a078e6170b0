package command

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/tair/stockledger/internal/excel"
	"github.com/tair/stockledger/internal/history"
	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
	"github.com/tair/stockledger/internal/ledger"
	"github.com/tair/stockledger/pkg/logger"
	"github.com/tair/stockledger/pkg/metrics"
)

// HistoryImportSessions is the session store used by the history import flow
type HistoryImportSessions = SessionStore[*history.Result]

// NewHistoryImportSessions creates the history import session store
func NewHistoryImportSessions(clock domain.Clock) *HistoryImportSessions {
	return NewSessionStore[*history.Result](DefaultSessionTTL, clock)
}

// HistoryImportState is the reviewable outcome of a history upload
type HistoryImportState struct {
	SessionID string `json:"sessionId"`
	*history.Result
	FailedCount int `json:"failedCount"`
}

// UploadHistoryCommand represents an uploaded monthly in/out summary
type UploadHistoryCommand struct {
	Month    string `validate:"required"`
	Filename string
	File     io.Reader
}

// UploadHistoryHandler handles the upload step of the history import
type UploadHistoryHandler struct {
	ws       *workspace.Workspace
	sessions *HistoryImportSessions
}

// NewUploadHistoryHandler creates a new history upload handler
func NewUploadHistoryHandler(ws *workspace.Workspace, sessions *HistoryImportSessions) *UploadHistoryHandler {
	return &UploadHistoryHandler{ws: ws, sessions: sessions}
}

// Handle matches the sheet against the current inventory and keeps the
// synthesized entries for review. Nothing is written until commit.
func (h *UploadHistoryHandler) Handle(ctx context.Context, cmd UploadHistoryCommand) (*HistoryImportState, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}
	if cmd.File == nil {
		return nil, fmt.Errorf("%w: file is required", domain.ErrInvalidInput)
	}
	if err := history.ValidateMonth(cmd.Month); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	wb, err := excel.ReadWorkbook(cmd.File, cmd.Filename)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("filename", cmd.Filename).Msg("History workbook rejected")
		return nil, err
	}

	var res *history.Result
	batchID := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	h.ws.View(func(s *domain.Snapshot) {
		res, err = history.Import(wb.Resolved(), cmd.Month, s.Inventory, batchID)
	})
	if err != nil {
		logger.Warn(ctx).Err(err).Str("filename", cmd.Filename).Msg("History sheet not recognised")
		return nil, err
	}

	id := h.sessions.Put(res)
	metrics.ImportRows.WithLabelValues("history", "matched").Add(float64(res.MatchedCount))
	metrics.ImportRows.WithLabelValues("history", "failed").Add(float64(res.FailedCount()))

	logger.Info(ctx).
		Str("session_id", id).
		Str("month", cmd.Month).
		Int("matched", res.MatchedCount).
		Int("failed", res.FailedCount()).
		Int("transactions", len(res.Transactions)).
		Msg("History import uploaded")

	return &HistoryImportState{SessionID: id, Result: res, FailedCount: res.FailedCount()}, nil
}

// CommitHistoryCommand appends a reviewed history import to the ledger
type CommitHistoryCommand struct {
	SessionID string `validate:"required"`
}

// CommitHistoryHandler handles the commit step of the history import
type CommitHistoryHandler struct {
	ws       *workspace.Workspace
	sessions *HistoryImportSessions
}

// NewCommitHistoryHandler creates a new history commit handler
func NewCommitHistoryHandler(ws *workspace.Workspace, sessions *HistoryImportSessions) *CommitHistoryHandler {
	return &CommitHistoryHandler{ws: ws, sessions: sessions}
}

// Handle prepends the synthesized entries without touching stock and closes
// the session. Snapshots of the affected items are re-derived.
func (h *CommitHistoryHandler) Handle(ctx context.Context, cmd CommitHistoryCommand) (int, error) {
	if err := validateStruct(cmd); err != nil {
		return 0, err
	}
	res, err := h.sessions.Take(cmd.SessionID)
	if err != nil {
		return 0, err
	}

	err = h.ws.Mutate(ctx, "history.imported", func(s *domain.Snapshot) error {
		batch := make([]domain.Transaction, len(res.Transactions))
		copy(batch, res.Transactions)
		ledger.New(s).Append(batch)
		return nil
	})
	if err != nil {
		h.sessions.Restore(cmd.SessionID, res)
		return 0, err
	}

	metrics.ImportRows.WithLabelValues("history", "committed").Add(float64(len(res.Transactions)))
	logger.Info(ctx).
		Str("session_id", cmd.SessionID).
		Str("month", res.Month).
		Int("count", len(res.Transactions)).
		Msg("History import committed")
	return len(res.Transactions), nil
}
