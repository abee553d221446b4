// Package types defines the pantry entities (Item, Recipient, Distribution),
// the serialized State, the Config used to open a pantry, and the standard
// errors shared by the ledger, the stores, and the CLI.
package types
