package query

import (
	"fmt"

	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
	"github.com/tair/stockledger/internal/report"
)

// MonthlyReportQuery represents the query for a month's reconciliation
type MonthlyReportQuery struct {
	Month string
}

// MonthlyReportHandler handles monthly report query
type MonthlyReportHandler struct {
	ws *workspace.Workspace
}

// NewMonthlyReportHandler creates a new monthly report handler
func NewMonthlyReportHandler(ws *workspace.Workspace) *MonthlyReportHandler {
	return &MonthlyReportHandler{ws: ws}
}

// Handle executes the monthly report query
func (h *MonthlyReportHandler) Handle(query MonthlyReportQuery) ([]report.MonthlyRow, error) {
	var (
		rows []report.MonthlyRow
		err  error
	)
	h.ws.View(func(s *domain.Snapshot) {
		rows, err = report.Monthly(s.Inventory, s.Transactions, query.Month)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return rows, nil
}

// StatusReportHandler handles stock status query
type StatusReportHandler struct {
	ws    *workspace.Workspace
	clock domain.Clock
}

// NewStatusReportHandler creates a new stock status handler
func NewStatusReportHandler(ws *workspace.Workspace, clock domain.Clock) *StatusReportHandler {
	return &StatusReportHandler{ws: ws, clock: clock}
}

// Handle analyzes stock health as of now
func (h *StatusReportHandler) Handle() report.Status {
	var st report.Status
	h.ws.View(func(s *domain.Snapshot) {
		st = report.Analyze(s.Inventory, s.Transactions, h.clock.Now())
	})
	return st
}
