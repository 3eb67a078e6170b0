package inventory

import (
	"time"

	"github.com/google/wire"

	"github.com/tair/stockledger/internal/inventory/delivery/http"
	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/usecase/command"
	"github.com/tair/stockledger/internal/inventory/usecase/query"
	"github.com/tair/stockledger/internal/inventory/workspace"
)

// Service is the wired inventory application
type Service struct {
	Handler   *http.InventoryHandler
	Workspace *workspace.Workspace
}

// ProvideClock provides the wall clock
func ProvideClock() domain.Clock {
	return time.Now
}

// Wire sets
var WorkspaceSet = wire.NewSet(
	ProvideClock,
	workspace.New,
	command.NewItemImportSessions,
	command.NewHistoryImportSessions,
)

var CommandSet = wire.NewSet(
	command.NewCreateItemHandler,
	command.NewUpdateItemHandler,
	command.NewDeleteItemHandler,
	command.NewRecordTransactionHandler,
	command.NewUpdateTransactionHandler,
	command.NewDeleteTransactionHandler,
	command.NewClearItemHistoryHandler,
	command.NewUploadItemsHandler,
	command.NewSetMappingHandler,
	command.NewPreviewItemsHandler,
	command.NewCommitItemsHandler,
	command.NewUploadHistoryHandler,
	command.NewCommitHistoryHandler,
	command.NewRestoreHandler,
	wire.Struct(new(http.Commands), "*"),
)

var QuerySet = wire.NewSet(
	query.NewGetItemHandler,
	query.NewListInventoryHandler,
	query.NewListTransactionsHandler,
	query.NewListDepartmentsHandler,
	query.NewMonthlyReportHandler,
	query.NewStatusReportHandler,
	query.NewExportHandler,
	query.NewFieldsHandler,
	wire.Struct(new(http.Queries), "*"),
)
