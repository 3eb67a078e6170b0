package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/stockledger/internal/inventory/domain"
)

const createBatchSize = 500

// itemRecord keeps the list position of an item alongside its fields.
type itemRecord struct {
	Seq         int `gorm:"not null;index"`
	domain.Item `gorm:"embedded"`
}

func (itemRecord) TableName() string { return "inventory_items" }

type transactionRecord struct {
	Seq                int `gorm:"not null;index"`
	domain.Transaction `gorm:"embedded"`
}

func (transactionRecord) TableName() string { return "inventory_transactions" }

type userRecord struct {
	Seq         int `gorm:"not null;index"`
	domain.User `gorm:"embedded"`
}

func (userRecord) TableName() string { return "inventory_users" }

// GormInventoryRepository stores the snapshot in three postgres tables.
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&itemRecord{}, &transactionRecord{}, &userRecord{})
}

// LoadAll reads every table in stored order.
func (r *GormInventoryRepository) LoadAll(ctx context.Context) (domain.Snapshot, error) {
	var (
		items []itemRecord
		txs   []transactionRecord
		users []userRecord
	)
	db := r.db.WithContext(ctx)
	if err := db.Order("seq").Find(&items).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("load inventory: %w", err)
	}
	if err := db.Order("seq").Find(&txs).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("load transactions: %w", err)
	}
	if err := db.Order("seq").Find(&users).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("load users: %w", err)
	}

	snap := domain.Snapshot{
		Inventory:    make([]domain.Item, len(items)),
		Transactions: make([]domain.Transaction, len(txs)),
		Users:        make([]domain.User, len(users)),
	}
	for i, rec := range items {
		snap.Inventory[i] = rec.Item
	}
	for i, rec := range txs {
		snap.Transactions[i] = rec.Transaction
	}
	for i, rec := range users {
		snap.Users[i] = rec.User
	}
	return snap, nil
}

// SaveAll replaces every row inside one database transaction.
func (r *GormInventoryRepository) SaveAll(ctx context.Context, snap domain.Snapshot) error {
	items := make([]itemRecord, len(snap.Inventory))
	for i, it := range snap.Inventory {
		items[i] = itemRecord{Seq: i, Item: it}
	}
	txs := make([]transactionRecord, len(snap.Transactions))
	for i, t := range snap.Transactions {
		txs[i] = transactionRecord{Seq: i, Transaction: t}
	}
	users := make([]userRecord, len(snap.Users))
	for i, u := range snap.Users {
		users[i] = userRecord{Seq: i, User: u}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&itemRecord{}).Error; err != nil {
			return fmt.Errorf("clear inventory: %w", err)
		}
		if err := all.Delete(&transactionRecord{}).Error; err != nil {
			return fmt.Errorf("clear transactions: %w", err)
		}
		if err := all.Delete(&userRecord{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		if len(items) > 0 {
			if err := tx.CreateInBatches(items, createBatchSize).Error; err != nil {
				return fmt.Errorf("save inventory: %w", err)
			}
		}
		if len(txs) > 0 {
			if err := tx.CreateInBatches(txs, createBatchSize).Error; err != nil {
				return fmt.Errorf("save transactions: %w", err)
			}
		}
		if len(users) > 0 {
			if err := tx.CreateInBatches(users, createBatchSize).Error; err != nil {
				return fmt.Errorf("save users: %w", err)
			}
		}
		return nil
	})
}
