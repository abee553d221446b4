package ledger

import "github.com/mesh-intelligence/pantry/pkg/types"

// SuccessMessage is the message of a successful Outcome.
const SuccessMessage = "SUCCESS"

// Outcome is the result of RecordDistribution. Err is nil on success;
// otherwise it wraps one of the types sentinels (ErrInvalidQuantity,
// ErrItemNotFound, ErrRecipientNotFound, ErrInsufficientStock) or the
// error returned while saving.
type Outcome struct {
	Err error

	// Distribution is the recorded history entry. Set whenever the
	// mutation was applied, including when the save afterwards failed.
	Distribution *types.Distribution

	message string
}

// OK reports whether the distribution was recorded and persisted.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Message returns SuccessMessage or a sentence suitable for display.
func (o Outcome) Message() string {
	if o.Err == nil {
		return SuccessMessage
	}
	if o.message != "" {
		return o.message
	}
	return o.Err.Error()
}

func failure(err error, msg string) Outcome {
	return Outcome{Err: err, message: msg}
}
