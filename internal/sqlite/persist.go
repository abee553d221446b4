package sqlite

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Save replaces the content of every table with st inside one transaction.
// Either the whole state is written or the previous content is kept. A
// file that is not a database is replaced, as the JSON store overwrites an
// unreadable document.
func (b *Backend) Save(st *types.State) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.openLocked()
	if errors.Is(err, types.ErrCorruptData) {
		if rmErr := os.Remove(b.path); rmErr != nil {
			return fmt.Errorf("replacing unreadable %s: %w", b.path, rmErr)
		}
		db, err = b.openLocked()
	}
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range tableNames {
		if _, err := tx.Exec("DELETE FROM " + name); err != nil {
			return fmt.Errorf("clearing %s: %w", name, err)
		}
	}

	itemStmt, err := tx.Prepare("INSERT INTO items (position, name, category, quantity) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer itemStmt.Close()
	for i, it := range st.Inventory {
		if _, err := itemStmt.Exec(i, it.Name, it.Category, it.Quantity); err != nil {
			return fmt.Errorf("inserting item %q: %w", it.Name, err)
		}
	}

	recipientStmt, err := tx.Prepare("INSERT INTO recipients (position, name, household_size, notes) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing recipient insert: %w", err)
	}
	defer recipientStmt.Close()
	receiptStmt, err := tx.Prepare("INSERT INTO receipts (recipient, position, item_name, quantity, timestamp) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing receipt insert: %w", err)
	}
	defer receiptStmt.Close()
	for i, r := range st.Recipients {
		if _, err := recipientStmt.Exec(i, r.Name, r.HouseholdSize, r.Notes); err != nil {
			return fmt.Errorf("inserting recipient %q: %w", r.Name, err)
		}
		for j, rc := range r.ReceivedItems {
			if _, err := receiptStmt.Exec(r.Name, j, rc.ItemName, rc.Quantity, types.EncodeTimestamp(rc.Timestamp, rc.RawTimestamp)); err != nil {
				return fmt.Errorf("inserting receipt for %q: %w", r.Name, err)
			}
		}
	}

	historyStmt, err := tx.Prepare("INSERT INTO history (position, id, recipient, item, quantity, timestamp) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing history insert: %w", err)
	}
	defer historyStmt.Close()
	for i, d := range st.History {
		if _, err := historyStmt.Exec(i, d.ID, d.Recipient, d.Item, d.Quantity, types.EncodeTimestamp(d.Timestamp, d.RawTimestamp)); err != nil {
			return fmt.Errorf("inserting history record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}
