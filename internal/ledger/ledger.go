// Package ledger applies stock movements to an inventory snapshot.
//
// A Ledger works on a snapshot it does not own; callers hand it a copy and
// decide whether to keep the result. Transactions are stored newest first.
// Live stock moves by the signed impact of each operation and every
// operation re-derives the per-transaction snapshots of the items it
// touched, so the chronologically last snapshot of an item always equals
// its live stock.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// DateLayout is the calendar date format of transactions.
const DateLayout = domain.DateLayout

// Ledger mutates the inventory and transactions of one snapshot.
type Ledger struct {
	snap  *domain.Snapshot
	newID func() string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator overrides transaction id generation.
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) { l.newID = fn }
}

// New returns a Ledger operating on snap in place.
func New(snap *domain.Snapshot, opts ...Option) *Ledger {
	l := &Ledger{snap: snap, newID: newTransactionID}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "TX-" + uuid.NewString()
	}
	return "TX-" + id.String()
}

// Entry is a stock movement to record.
type Entry struct {
	ItemID     string
	Type       domain.TransactionType
	Quantity   int
	Date       string
	Worker     string
	Department string
	Reason     string
}

// Changes holds the fields of a transaction to overwrite. Nil fields are kept.
type Changes struct {
	Type       *domain.TransactionType
	Quantity   *int
	Date       *string
	Worker     *string
	Department *string
	Reason     *string
}

func validate(t domain.TransactionType, qty int, date string) error {
	if !t.Valid() {
		return domain.ErrInvalidTransactionType
	}
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}
	return nil
}

// Record applies e to its item and stores the resulting transaction.
// Stock may go negative; overdraw is recorded, not rejected.
func (l *Ledger) Record(e Entry) (domain.Transaction, error) {
	if err := validate(e.Type, e.Quantity, e.Date); err != nil {
		return domain.Transaction{}, err
	}
	idx := l.snap.FindItem(e.ItemID)
	if idx < 0 {
		return domain.Transaction{}, domain.ErrItemNotFound
	}
	item := &l.snap.Inventory[idx]

	newStock := item.CurrentStock + e.Type.Sign()*e.Quantity
	tx := domain.Transaction{
		ID:                   l.newID(),
		ItemID:               item.ID,
		ItemName:             item.Name,
		Category:             item.Category,
		Date:                 e.Date,
		Type:                 e.Type,
		Quantity:             e.Quantity,
		Worker:               e.Worker,
		Department:           e.Department,
		Reason:               e.Reason,
		CurrentStockSnapshot: newStock,
	}
	item.CurrentStock = newStock
	l.snap.Transactions = append([]domain.Transaction{tx}, l.snap.Transactions...)

	l.Rederive(item.ID)
	return l.snap.Transactions[0], nil
}

func (l *Ledger) findTransaction(id string) int {
	for i := range l.snap.Transactions {
		if l.snap.Transactions[i].ID == id {
			return i
		}
	}
	return -1
}

// Update merges c into the transaction and moves the owning item's stock by
// the difference between the new and old impact.
func (l *Ledger) Update(id string, c Changes) (domain.Transaction, error) {
	ti := l.findTransaction(id)
	if ti < 0 {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}
	old := l.snap.Transactions[ti]
	merged := old
	if c.Type != nil {
		merged.Type = *c.Type
	}
	if c.Quantity != nil {
		merged.Quantity = *c.Quantity
	}
	if c.Date != nil {
		merged.Date = *c.Date
	}
	if c.Worker != nil {
		merged.Worker = *c.Worker
	}
	if c.Department != nil {
		merged.Department = *c.Department
	}
	if c.Reason != nil {
		merged.Reason = *c.Reason
	}
	if err := validate(merged.Type, merged.Quantity, merged.Date); err != nil {
		return domain.Transaction{}, err
	}

	if idx := l.snap.FindItem(old.ItemID); idx >= 0 {
		l.snap.Inventory[idx].CurrentStock += merged.Impact() - old.Impact()
	}
	l.snap.Transactions[ti] = merged

	l.Rederive(old.ItemID)
	return l.snap.Transactions[ti], nil
}

// Delete removes the transaction and reverses its impact on the item.
func (l *Ledger) Delete(id string) (domain.Transaction, error) {
	ti := l.findTransaction(id)
	if ti < 0 {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}
	tx := l.snap.Transactions[ti]

	if idx := l.snap.FindItem(tx.ItemID); idx >= 0 {
		l.snap.Inventory[idx].CurrentStock -= tx.Impact()
	}
	txs := make([]domain.Transaction, 0, len(l.snap.Transactions)-1)
	txs = append(txs, l.snap.Transactions[:ti]...)
	txs = append(txs, l.snap.Transactions[ti+1:]...)
	l.snap.Transactions = txs

	l.Rederive(tx.ItemID)
	return tx, nil
}

// ClearItem removes every transaction of the item and returns how many went.
// Stock is left untouched.
func (l *Ledger) ClearItem(itemID string) int {
	txs := make([]domain.Transaction, 0, len(l.snap.Transactions))
	for _, tx := range l.snap.Transactions {
		if tx.ItemID != itemID {
			txs = append(txs, tx)
		}
	}
	removed := len(l.snap.Transactions) - len(txs)
	l.snap.Transactions = txs
	return removed
}

// Append stores an already built batch ahead of the existing ledger without
// touching stock, then re-derives snapshots of every item in the batch.
func (l *Ledger) Append(batch []domain.Transaction) {
	if len(batch) == 0 {
		return
	}
	txs := make([]domain.Transaction, 0, len(batch)+len(l.snap.Transactions))
	txs = append(txs, batch...)
	txs = append(txs, l.snap.Transactions...)
	l.snap.Transactions = txs

	seen := make(map[string]struct{})
	for _, tx := range batch {
		if _, ok := seen[tx.ItemID]; ok {
			continue
		}
		seen[tx.ItemID] = struct{}{}
		l.Rederive(tx.ItemID)
	}
}

// Rederive recomputes the snapshots of the item's transactions by replaying
// them in date order, ties broken by insertion order. The opening balance is
// chosen so the last snapshot equals the live stock. Transactions of items
// that no longer exist are left as they are.
func (l *Ledger) Rederive(itemID string) {
	idx := l.snap.FindItem(itemID)
	if idx < 0 {
		return
	}
	txs := l.snap.Transactions

	var pos []int
	net := 0
	for i := range txs {
		if txs[i].ItemID == itemID {
			pos = append(pos, i)
			net += txs[i].Impact()
		}
	}
	// Stored newest first: a higher index was inserted earlier.
	sort.SliceStable(pos, func(a, b int) bool {
		ta, tb := txs[pos[a]], txs[pos[b]]
		if ta.Date != tb.Date {
			return ta.Date < tb.Date
		}
		return pos[a] > pos[b]
	})

	balance := l.snap.Inventory[idx].CurrentStock - net
	for _, i := range pos {
		balance += txs[i].Impact()
		txs[i].CurrentStockSnapshot = balance
	}
}
