package report

import (
	"errors"
	"fmt"

	"github.com/bgricker/opreport/internal/catalog"
)

// TransactionStatus classifies whether an operation's steps may run inside a transaction.
type TransactionStatus int

const (
	// AllSafe means every step can run inside a transaction.
	AllSafe TransactionStatus = iota + 1
	// AllUnsafe means no step can run inside a transaction.
	AllUnsafe
	// Mixed means some steps can and some cannot.
	Mixed
)

var errNoSteps = errors.New("operation has no steps")

// Reduce classifies an operation by the set of distinct can_run_in_transaction
// values across its steps. Step order never affects the result.
func Reduce(steps []catalog.Step) (TransactionStatus, error) {
	if len(steps) == 0 {
		return 0, errNoSteps
	}
	seen := make(map[bool]struct{}, 2)
	for _, step := range steps {
		seen[step.CanRunInTransaction] = struct{}{}
	}
	return classify(seen), nil
}

func classify(seen map[bool]struct{}) TransactionStatus {
	_, safe := seen[true]
	_, unsafe := seen[false]
	switch {
	case safe && unsafe:
		return Mixed
	case safe:
		return AllSafe
	default:
		return AllUnsafe
	}
}

func (s TransactionStatus) String() string {
	switch s {
	case AllSafe:
		return "all_safe"
	case AllUnsafe:
		return "all_unsafe"
	case Mixed:
		return "mixed"
	default:
		return fmt.Sprintf("TransactionStatus(%d)", int(s))
	}
}

// Label is the table cell shown for the status.
func (s TransactionStatus) Label() string {
	switch s {
	case AllSafe:
		return "✅ Yes"
	case AllUnsafe:
		return "❌ No"
	case Mixed:
		return "⚠️ Mixed"
	default:
		return "?"
	}
}

// MarshalText encodes the status by name for JSON output.
func (s TransactionStatus) MarshalText() ([]byte, error) {
	switch s {
	case AllSafe, AllUnsafe, Mixed:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid transaction status %d", int(s))
	}
}

// UnmarshalText is the inverse of MarshalText.
func (s *TransactionStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "all_safe":
		*s = AllSafe
	case "all_unsafe":
		*s = AllUnsafe
	case "mixed":
		*s = Mixed
	default:
		return fmt.Errorf("unknown transaction status %q", text)
	}
	return nil
}
