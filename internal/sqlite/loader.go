package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Load reads the full state. A new or zero-length database file yields an
// empty state. A file that is not a SQLite database yields an error
// wrapping types.ErrCorruptData.
func (b *Backend) Load() (*types.State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.openLocked()
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, classify(fmt.Errorf("beginning load transaction: %w", err))
	}
	defer tx.Rollback()

	st := &types.State{}
	if st.Inventory, err = loadItems(tx); err != nil {
		return nil, classify(err)
	}
	if st.Recipients, err = loadRecipients(tx); err != nil {
		return nil, classify(err)
	}
	if st.History, err = loadHistory(tx); err != nil {
		return nil, classify(err)
	}
	return st, nil
}

func loadItems(tx *sql.Tx) ([]types.Item, error) {
	rows, err := tx.Query("SELECT name, category, quantity FROM items ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	items := []types.Item{}
	for rows.Next() {
		var it types.Item
		if err := rows.Scan(&it.Name, &it.Category, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func loadRecipients(tx *sql.Tx) ([]types.Recipient, error) {
	receipts, err := loadReceipts(tx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query("SELECT name, household_size, notes FROM recipients ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying recipients: %w", err)
	}
	defer rows.Close()

	recipients := []types.Recipient{}
	for rows.Next() {
		var r types.Recipient
		if err := rows.Scan(&r.Name, &r.HouseholdSize, &r.Notes); err != nil {
			return nil, fmt.Errorf("scanning recipient: %w", err)
		}
		r.ReceivedItems = receipts[r.Name]
		if r.ReceivedItems == nil {
			r.ReceivedItems = []types.Receipt{}
		}
		recipients = append(recipients, r)
	}
	return recipients, rows.Err()
}

// loadReceipts returns every receipt grouped by recipient name.
func loadReceipts(tx *sql.Tx) (map[string][]types.Receipt, error) {
	rows, err := tx.Query("SELECT recipient, item_name, quantity, timestamp FROM receipts ORDER BY recipient, position")
	if err != nil {
		return nil, fmt.Errorf("querying receipts: %w", err)
	}
	defer rows.Close()

	byRecipient := make(map[string][]types.Receipt)
	for rows.Next() {
		var (
			recipient, ts string
			rc            types.Receipt
		)
		if err := rows.Scan(&recipient, &rc.ItemName, &rc.Quantity, &ts); err != nil {
			return nil, fmt.Errorf("scanning receipt: %w", err)
		}
		rc.Timestamp, rc.RawTimestamp = types.DecodeTimestamp(ts)
		byRecipient[recipient] = append(byRecipient[recipient], rc)
	}
	return byRecipient, rows.Err()
}

func loadHistory(tx *sql.Tx) ([]types.Distribution, error) {
	rows, err := tx.Query("SELECT id, recipient, item, quantity, timestamp FROM history ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	history := []types.Distribution{}
	for rows.Next() {
		var (
			d  types.Distribution
			ts string
		)
		if err := rows.Scan(&d.ID, &d.Recipient, &d.Item, &d.Quantity, &ts); err != nil {
			return nil, fmt.Errorf("scanning history record: %w", err)
		}
		d.Timestamp, d.RawTimestamp = types.DecodeTimestamp(ts)
		history = append(history, d)
	}
	return history, rows.Err()
}
