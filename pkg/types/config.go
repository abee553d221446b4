package types

import "errors"

// Config holds backend selection and ledger policy for pantry.Open.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// StrictLoad surfaces ErrCorruptData instead of starting empty.
	StrictLoad bool `json:"strict_load" yaml:"strict_load"`

	// StrictRecipients rejects duplicate registrations with
	// ErrDuplicateRecipient instead of ignoring them.
	StrictRecipients bool `json:"strict_recipients" yaml:"strict_recipients"`

	// LowStockThreshold is the default for low-stock queries and reports.
	LowStockThreshold int `json:"low_stock_threshold" yaml:"low_stock_threshold"`
}

// Supported backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DefaultLowStockThreshold is used when a config leaves the threshold unset.
const DefaultLowStockThreshold = 5

// Config validation errors.
var (
	ErrBackendEmpty     = errors.New("backend must not be empty")
	ErrBackendUnknown   = errors.New("unknown backend")
	ErrThresholdInvalid = errors.New("low stock threshold must not be negative")
)

var knownBackends = map[string]bool{
	BackendJSON:   true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed and returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.LowStockThreshold < 0 {
		return ErrThresholdInvalid
	}
	return nil
}

// Threshold returns LowStockThreshold, or the default when it is zero.
func (c Config) Threshold() int {
	if c.LowStockThreshold == 0 {
		return DefaultLowStockThreshold
	}
	return c.LowStockThreshold
}
