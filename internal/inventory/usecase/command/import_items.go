package command

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tair/stockledger/internal/excel"
	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
	"github.com/tair/stockledger/pkg/logger"
	"github.com/tair/stockledger/pkg/metrics"
)

// ItemImportSession is an upload waiting for mapping review and commit
type ItemImportSession struct {
	mu      sync.Mutex
	batch   *excel.Batch
	preview *excel.Preview
}

// ItemImportSessions is the session store used by the item import flow
type ItemImportSessions = SessionStore[*ItemImportSession]

// NewItemImportSessions creates the item import session store
func NewItemImportSessions(clock domain.Clock) *ItemImportSessions {
	return NewSessionStore[*ItemImportSession](DefaultSessionTTL, clock)
}

// ImportState describes a session to the caller
type ImportState struct {
	SessionID string           `json:"sessionId"`
	Format    excel.FormatKind `json:"format"`
	Headers   []string         `json:"headers,omitempty"`
	Mapping   excel.Mapping    `json:"mapping,omitempty"`
	Missing   []string         `json:"missing,omitempty"`
	RowCount  int              `json:"rowCount"`
	Fields    []excel.FieldDef `json:"fields"`
	Preview   *excel.Preview   `json:"preview,omitempty"`
}

func missingLabels(cfg excel.FieldLabelConfig, m excel.Mapping) []string {
	var out []string
	for _, d := range cfg.Missing(m) {
		out = append(out, d.Label)
	}
	return out
}

// UploadItemsCommand represents an uploaded inventory workbook
type UploadItemsCommand struct {
	Filename string
	File     io.Reader
}

// UploadItemsHandler handles the upload step of the item import
type UploadItemsHandler struct {
	ws       *workspace.Workspace
	sessions *ItemImportSessions
	fields   excel.FieldLabelConfig
	clock    domain.Clock
}

// NewUploadItemsHandler creates a new upload handler
func NewUploadItemsHandler(ws *workspace.Workspace, sessions *ItemImportSessions, fields excel.FieldLabelConfig, clock domain.Clock) *UploadItemsHandler {
	return &UploadItemsHandler{ws: ws, sessions: sessions, fields: fields, clock: clock}
}

// Handle reads the workbook, detects its layout and opens a session.
// Legacy sheets come back with their preview; standard sheets with a
// guessed mapping to review.
func (h *UploadItemsHandler) Handle(ctx context.Context, cmd UploadItemsCommand) (*ImportState, error) {
	if cmd.File == nil {
		return nil, fmt.Errorf("%w: file is required", domain.ErrInvalidInput)
	}
	wb, err := excel.ReadWorkbook(cmd.File, cmd.Filename)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("filename", cmd.Filename).Msg("Workbook rejected")
		return nil, err
	}

	stamp := excel.Stamp{BatchID: strings.ReplaceAll(uuid.NewString(), "-", "")[:12], Today: h.clock.Today()}
	batch, err := excel.Parse(wb.Resolved(), stamp)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("filename", cmd.Filename).Msg("Workbook structure not recognised")
		return nil, err
	}

	sess := &ItemImportSession{batch: batch}
	if !batch.NeedsMapping() {
		p, err := batch.Preview(h.fields, h.ws.Snapshot().Inventory)
		if err != nil {
			return nil, err
		}
		sess.preview = p
	}
	id := h.sessions.Put(sess)

	rows := len(batch.Rows)
	if !batch.NeedsMapping() {
		rows = len(batch.Items)
	}
	metrics.ImportRows.WithLabelValues(string(batch.Kind), "parsed").Add(float64(rows))

	logger.Info(ctx).
		Str("session_id", id).
		Str("format", string(batch.Kind)).
		Int("rows", rows).
		Msg("Item import uploaded")

	return h.state(id, sess), nil
}

func (h *UploadItemsHandler) state(id string, sess *ItemImportSession) *ImportState {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sessionState(id, sess, h.fields)
}

func sessionState(id string, sess *ItemImportSession, fields excel.FieldLabelConfig) *ImportState {
	b := sess.batch
	st := &ImportState{
		SessionID: id,
		Format:    b.Kind,
		Fields:    fields.Fields,
		Preview:   sess.preview,
	}
	if b.NeedsMapping() {
		st.Headers = b.Headers
		st.Mapping = b.Mapping.Clone()
		st.Missing = missingLabels(fields, b.Mapping)
		st.RowCount = len(b.Rows)
	} else {
		st.RowCount = len(b.Items)
	}
	return st
}

// SetMappingCommand overrides field to header assignments. An empty header unmaps a field.
type SetMappingCommand struct {
	SessionID string            `validate:"required"`
	Mapping   map[string]string `validate:"required"`
}

// SetMappingHandler handles the mapping step of the item import
type SetMappingHandler struct {
	sessions *ItemImportSessions
	fields   excel.FieldLabelConfig
}

// NewSetMappingHandler creates a new mapping handler
func NewSetMappingHandler(sessions *ItemImportSessions, fields excel.FieldLabelConfig) *SetMappingHandler {
	return &SetMappingHandler{sessions: sessions, fields: fields}
}

// Handle applies the overrides. The returned state lists any required field
// still unmapped; the preview step refuses to run until that list is empty.
func (h *SetMappingHandler) Handle(ctx context.Context, cmd SetMappingCommand) (*ImportState, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}
	sess, err := h.sessions.Get(cmd.SessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.batch.NeedsMapping() {
		return nil, fmt.Errorf("%w: %s uploads have no column mapping", domain.ErrInvalidInput, sess.batch.Kind)
	}
	m, err := sess.batch.Mapping.Apply(sess.batch.Headers, cmd.Mapping)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	sess.batch.Mapping = m
	sess.preview = nil

	logger.Debug(ctx).Str("session_id", cmd.SessionID).Int("mapped", len(m)).Msg("Import mapping updated")
	return sessionState(cmd.SessionID, sess, h.fields), nil
}

// PreviewItemsCommand asks for the items an import would add
type PreviewItemsCommand struct {
	SessionID string `validate:"required"`
}

// PreviewItemsHandler handles the preview step of the item import
type PreviewItemsHandler struct {
	ws       *workspace.Workspace
	sessions *ItemImportSessions
	fields   excel.FieldLabelConfig
}

// NewPreviewItemsHandler creates a new preview handler
func NewPreviewItemsHandler(ws *workspace.Workspace, sessions *ItemImportSessions, fields excel.FieldLabelConfig) *PreviewItemsHandler {
	return &PreviewItemsHandler{ws: ws, sessions: sessions, fields: fields}
}

// Handle builds the preview. It fails with *excel.MissingFieldsError while
// a required field is unmapped.
func (h *PreviewItemsHandler) Handle(ctx context.Context, cmd PreviewItemsCommand) (*excel.Preview, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}
	sess, err := h.sessions.Get(cmd.SessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	p, err := sess.batch.Preview(h.fields, h.ws.Snapshot().Inventory)
	if err != nil {
		return nil, err
	}
	sess.preview = p

	logger.Info(ctx).
		Str("session_id", cmd.SessionID).
		Int("items", len(p.Items)).
		Int("duplicates", p.DuplicateCount).
		Msg("Import preview generated")
	return p, nil
}

// CommitItemsCommand appends a previewed import to the inventory
type CommitItemsCommand struct {
	SessionID string `validate:"required"`
}

// CommitItemsHandler handles the commit step of the item import
type CommitItemsHandler struct {
	ws       *workspace.Workspace
	sessions *ItemImportSessions
	fields   excel.FieldLabelConfig
}

// NewCommitItemsHandler creates a new commit handler
func NewCommitItemsHandler(ws *workspace.Workspace, sessions *ItemImportSessions, fields excel.FieldLabelConfig) *CommitItemsHandler {
	return &CommitItemsHandler{ws: ws, sessions: sessions, fields: fields}
}

// Handle appends every previewed item, duplicates included, and closes the
// session. Without a prior preview one is generated first.
func (h *CommitItemsHandler) Handle(ctx context.Context, cmd CommitItemsCommand) (int, error) {
	if err := validateStruct(cmd); err != nil {
		return 0, err
	}
	sess, err := h.sessions.Take(cmd.SessionID)
	if err != nil {
		return 0, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.preview == nil {
		p, err := sess.batch.Preview(h.fields, h.ws.Snapshot().Inventory)
		if err != nil {
			h.sessions.Restore(cmd.SessionID, sess)
			return 0, err
		}
		sess.preview = p
	}
	items := sess.preview.Items

	err = h.ws.Mutate(ctx, "items.imported", func(s *domain.Snapshot) error {
		s.Inventory = append(s.Inventory, items...)
		domain.SortItems(s.Inventory)
		return nil
	})
	if err != nil {
		h.sessions.Restore(cmd.SessionID, sess)
		return 0, err
	}

	metrics.ImportRows.WithLabelValues(string(sess.batch.Kind), "committed").Add(float64(len(items)))
	logger.Info(ctx).
		Str("session_id", cmd.SessionID).
		Str("format", string(sess.batch.Kind)).
		Int("count", len(items)).
		Int("duplicates", sess.preview.DuplicateCount).
		Msg("Excel import committed")
	return len(items), nil
}
