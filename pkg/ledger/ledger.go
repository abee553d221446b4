// Package ledger implements the pantry bookkeeping engine: the Ledger owns
// the inventory, the registered recipients, and the distribution history,
// validates every mutation, and persists its state through a Store.
//
// A Ledger follows a construct, Load, operate, Save lifecycle. It is safe
// for concurrent use; one lock covers each operation, so the checks and the
// mutation inside RecordDistribution cannot interleave with another caller.
package ledger

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Ledger is the authoritative in-memory store of items, recipients, and
// history.
type Ledger struct {
	mu sync.RWMutex

	store Store

	inventory  map[string]*types.Item
	itemOrder  []string // item names in first-insertion order
	recipients []*types.Recipient
	history    []types.Distribution

	strictLoad       bool
	strictRecipients bool
	log              *log.Logger
	now              func() time.Time
	newID            func() string
}

// New returns an empty Ledger persisting through store. A nil store keeps
// the ledger in memory only: Load resets it and Save does nothing. A store
// with a SetLogger method shares the ledger's logger. Call Load to read
// persisted state.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		inventory: make(map[string]*types.Item),
		log:       log.Default(),
		now:       time.Now,
		newID:     generateUUID,
	}
	for _, opt := range opts {
		opt(l)
	}
	if ls, ok := store.(loggingStore); ok {
		ls.SetLogger(l.log)
	}
	return l
}

// AddItem records a donation. A new name creates an item; an existing name
// has quantity added to its stock and keeps its original category.
// Returns ErrInvalidQuantity if quantity is negative.
func (l *Ledger) AddItem(name, category string, quantity int) error {
	if name == "" {
		return types.ErrInvalidName
	}
	if quantity < 0 {
		return fmt.Errorf("initial quantity %d: %w", quantity, types.ErrInvalidQuantity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if item, ok := l.inventory[name]; ok {
		return item.UpdateQuantity(quantity)
	}
	l.inventory[name] = &types.Item{Name: name, Category: category, Quantity: quantity}
	l.itemOrder = append(l.itemOrder, name)
	return nil
}

// UpdateItemQuantity adds amount (positive or negative) to an item's stock.
// Returns ErrItemNotFound for an unknown name and ErrNegativeQuantity if the
// stock would drop below zero.
func (l *Ledger) UpdateItemQuantity(name string, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.inventory[name]
	if !ok {
		return fmt.Errorf("item %q: %w", name, types.ErrItemNotFound)
	}
	return item.UpdateQuantity(amount)
}

// AddRecipient registers a recipient. Registering a name that already
// exists is a no-op, or returns ErrDuplicateRecipient when the ledger was
// built WithStrictRecipients. Returns ErrInvalidHouseholdSize if
// householdSize is not positive.
func (l *Ledger) AddRecipient(name string, householdSize int, notes string) error {
	if name == "" {
		return types.ErrInvalidName
	}
	if householdSize <= 0 {
		return fmt.Errorf("household size %d: %w", householdSize, types.ErrInvalidHouseholdSize)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.findRecipient(name) != nil {
		if l.strictRecipients {
			return fmt.Errorf("recipient %q: %w", name, types.ErrDuplicateRecipient)
		}
		return nil
	}
	l.recipients = append(l.recipients, &types.Recipient{
		Name:          name,
		HouseholdSize: householdSize,
		Notes:         notes,
		ReceivedItems: []types.Receipt{},
	})
	return nil
}

// RecordDistribution gives quantity of an item to a recipient. The checks
// run in order and the first failure is reported: positive quantity, known
// item, known recipient, sufficient stock. Nothing changes unless all of
// them pass. On success the stock is decremented, a receipt is appended to
// the recipient, a history record is appended, and the state is saved.
//
// RecordDistribution never returns a Go error; the Outcome carries both the
// display message and the underlying error.
func (l *Ledger) RecordDistribution(itemName, recipientName string, quantity int) Outcome {
	if quantity <= 0 {
		return failure(types.ErrInvalidQuantity, "Quantity must be positive.")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.inventory[itemName]
	if !ok {
		return failure(fmt.Errorf("item %q: %w", itemName, types.ErrItemNotFound),
			fmt.Sprintf("Item '%s' not found.", itemName))
	}
	recipient := l.findRecipient(recipientName)
	if recipient == nil {
		return failure(fmt.Errorf("recipient %q: %w", recipientName, types.ErrRecipientNotFound),
			fmt.Sprintf("Recipient '%s' not found.", recipientName))
	}
	if item.Quantity < quantity {
		se := &types.StockError{Item: itemName, Available: item.Quantity, Requested: quantity}
		return failure(se, se.Error())
	}

	ts := l.now().Truncate(time.Second)
	if err := item.UpdateQuantity(-quantity); err != nil {
		return failure(err, err.Error())
	}
	recipient.RecordReceipt(itemName, quantity, ts)

	d := types.Distribution{
		ID:        l.newID(),
		Recipient: recipientName,
		Item:      itemName,
		Quantity:  quantity,
		Timestamp: ts,
	}
	l.history = append(l.history, d)
	l.log.Printf("distributed %d of %q to %q", quantity, itemName, recipientName)

	out := Outcome{Distribution: &d}
	if err := l.saveLocked(); err != nil {
		out.Err = err
		out.message = fmt.Sprintf("Distribution recorded but not saved: %v", err)
	}
	return out
}

// Inventory returns copies of all items in first-insertion order.
func (l *Ledger) Inventory() []types.Item {
	l.mu.RLock()
	defer l.mu.RUnlock()

	items := make([]types.Item, 0, len(l.itemOrder))
	for _, name := range l.itemOrder {
		items = append(items, *l.inventory[name])
	}
	return items
}

// LowStockItems returns the items whose quantity is at most threshold, in
// first-insertion order.
func (l *Ledger) LowStockItems(threshold int) []types.Item {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var items []types.Item
	for _, name := range l.itemOrder {
		if item := l.inventory[name]; item.Quantity <= threshold {
			items = append(items, *item)
		}
	}
	return items
}

// Item returns a copy of the named item or ErrItemNotFound.
func (l *Ledger) Item(name string) (types.Item, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	item, ok := l.inventory[name]
	if !ok {
		return types.Item{}, fmt.Errorf("item %q: %w", name, types.ErrItemNotFound)
	}
	return *item, nil
}

// Recipients returns copies of all recipients in registration order.
func (l *Ledger) Recipients() []types.Recipient {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]types.Recipient, 0, len(l.recipients))
	for _, r := range l.recipients {
		out = append(out, r.Clone())
	}
	return out
}

// Recipient returns a copy of the named recipient or ErrRecipientNotFound.
func (l *Ledger) Recipient(name string) (types.Recipient, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r := l.findRecipient(name)
	if r == nil {
		return types.Recipient{}, fmt.Errorf("recipient %q: %w", name, types.ErrRecipientNotFound)
	}
	return r.Clone(), nil
}

// History returns a copy of the distribution history, oldest first.
func (l *Ledger) History() []types.Distribution {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]types.Distribution, len(l.history))
	copy(out, l.history)
	return out
}

// Snapshot returns a deep copy of the full state in persistence order.
func (l *Ledger) Snapshot() *types.State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// Save writes the full state to the store.
func (l *Ledger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveLocked()
}

// Load replaces the in-memory state with the store's content. A missing or
// empty store yields an empty ledger. Corrupt content also yields an empty
// ledger unless the ledger was built WithStrictLoad, in which case the
// error is returned and the current state is kept.
func (l *Ledger) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store == nil {
		l.replaceLocked(&types.State{})
		return nil
	}

	st, err := l.store.Load()
	if err != nil {
		if errors.Is(err, types.ErrCorruptData) && !l.strictLoad {
			l.log.Printf("starting with an empty pantry: %v", err)
			l.replaceLocked(&types.State{})
			return nil
		}
		return fmt.Errorf("load ledger: %w", err)
	}
	if st == nil {
		st = &types.State{}
	}
	l.replaceLocked(st)
	return nil
}

func (l *Ledger) findRecipient(name string) *types.Recipient {
	for _, r := range l.recipients {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func (l *Ledger) saveLocked() error {
	if l.store == nil {
		return nil
	}
	if err := l.store.Save(l.snapshotLocked()); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

func (l *Ledger) snapshotLocked() *types.State {
	st := &types.State{
		Inventory:  make([]types.Item, 0, len(l.itemOrder)),
		Recipients: make([]types.Recipient, 0, len(l.recipients)),
		History:    make([]types.Distribution, len(l.history)),
	}
	for _, name := range l.itemOrder {
		st.Inventory = append(st.Inventory, *l.inventory[name])
	}
	for _, r := range l.recipients {
		st.Recipients = append(st.Recipients, r.Clone())
	}
	copy(st.History, l.history)
	return st
}

// replaceLocked clears the ledger and repopulates it from st. Records that
// would break an invariant are dropped or repaired and logged.
func (l *Ledger) replaceLocked(st *types.State) {
	l.inventory = make(map[string]*types.Item, len(st.Inventory))
	l.itemOrder = nil
	l.recipients = nil
	l.history = nil

	for _, item := range st.Inventory {
		switch {
		case item.Name == "":
			l.log.Printf("skipping inventory record without a name")
			continue
		case item.Quantity < 0:
			l.log.Printf("skipping item %q with negative quantity %d", item.Name, item.Quantity)
			continue
		}
		it := item
		if _, ok := l.inventory[it.Name]; !ok {
			l.itemOrder = append(l.itemOrder, it.Name)
		}
		l.inventory[it.Name] = &it
	}

	for _, r := range st.Recipients {
		if r.Name == "" {
			l.log.Printf("skipping recipient record without a name")
			continue
		}
		if l.findRecipient(r.Name) != nil {
			l.log.Printf("skipping duplicate recipient %q", r.Name)
			continue
		}
		rc := r.Clone()
		if rc.HouseholdSize <= 0 {
			l.log.Printf("recipient %q has household size %d, using 1", rc.Name, rc.HouseholdSize)
			rc.HouseholdSize = 1
		}
		l.recipients = append(l.recipients, &rc)
	}

	l.history = append(l.history, st.History...)
}
