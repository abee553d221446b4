package sqlite

// Schema DDL. The position columns keep the ledger's ordering: items by
// first insertion, recipients by registration, receipts and history by
// append order.
const (
	createItems = `CREATE TABLE IF NOT EXISTS items (
    position INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    category TEXT NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity >= 0)
);`

	createRecipients = `CREATE TABLE IF NOT EXISTS recipients (
    position INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    household_size INTEGER NOT NULL,
    notes TEXT NOT NULL
);`

	createReceipts = `CREATE TABLE IF NOT EXISTS receipts (
    recipient TEXT NOT NULL,
    position INTEGER NOT NULL,
    item_name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    timestamp TEXT NOT NULL,
    PRIMARY KEY (recipient, position)
);`

	createHistory = `CREATE TABLE IF NOT EXISTS history (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL,
    recipient TEXT NOT NULL,
    item TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    timestamp TEXT NOT NULL
);`

	idxHistoryRecipient = `CREATE INDEX IF NOT EXISTS idx_history_recipient ON history(recipient);`
	idxHistoryItem      = `CREATE INDEX IF NOT EXISTS idx_history_item ON history(item);`
)

// schemaDDL lists every statement run when a database is opened.
var schemaDDL = []string{
	createItems,
	createRecipients,
	createReceipts,
	createHistory,
	idxHistoryRecipient,
	idxHistoryItem,
}

// tableNames lists the tables Save clears, children first.
var tableNames = []string{"receipts", "history", "recipients", "items"}
