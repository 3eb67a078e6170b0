//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"

	"github.com/tair/stockledger/internal/excel"
	"github.com/tair/stockledger/internal/inventory/delivery/http"
	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
)

// InitializeService wires the workspace, use cases and HTTP handler on top of repo
func InitializeService(repo domain.InventoryRepository, notifier workspace.Notifier, fields excel.FieldLabelConfig) (*Service, error) {
	wire.Build(
		WorkspaceSet,
		CommandSet,
		QuerySet,
		http.NewInventoryHandler,
		wire.Struct(new(Service), "*"),
	)
	return nil, nil
}
