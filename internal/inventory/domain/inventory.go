package domain

import (
	"context"
	"sort"
)

// DefaultCategory is assigned to imported items whose category is blank
const DefaultCategory = "전기"

// DefaultUnit is assigned to imported items without a unit
const DefaultUnit = "EA"

// DefaultItemName is used when a mapped name cell is blank
const DefaultItemName = "이름 없음"

// Item represents a stocked part
type Item struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Category     string `json:"category" gorm:"index"`
	Name         string `json:"name" gorm:"not null"`
	Standard     string `json:"standard"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"currentStock" gorm:"not null"`
	SafeStock    int    `json:"safeStock" gorm:"not null"`
	Location     string `json:"location"`
	Note         string `json:"note"`
	LastUpdated  string `json:"lastUpdated"`
}

// Snapshot is the full persisted state: every collection the store owns
type Snapshot struct {
	Inventory    []Item        `json:"inventory"`
	Transactions []Transaction `json:"transactions"`
	Users        []User        `json:"users"`
}

// Clone returns a deep copy whose slices can be mutated independently
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Inventory:    make([]Item, len(s.Inventory)),
		Transactions: make([]Transaction, len(s.Transactions)),
		Users:        make([]User, len(s.Users)),
	}
	copy(out.Inventory, s.Inventory)
	copy(out.Transactions, s.Transactions)
	copy(out.Users, s.Users)
	return out
}

// FindItem returns the index of the item with the given id, or -1
func (s Snapshot) FindItem(id string) int {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			return i
		}
	}
	return -1
}

// InventoryRepository defines the contract for inventory data access.
// LoadAll must return every collection (possibly empty, never nil) and
// SaveAll must be atomic: readers never observe a partial write.
type InventoryRepository interface {
	LoadAll(ctx context.Context) (Snapshot, error)
	SaveAll(ctx context.Context, snapshot Snapshot) error
}

// SortItems orders items by category, name, standard, model and manufacturer.
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Standard != b.Standard {
			return a.Standard < b.Standard
		}
		if a.Model != b.Model {
			return a.Model < b.Model
		}
		return a.Manufacturer < b.Manufacturer
	})
}
