package shortcuts

import (
	"fmt"
	"strings"
)

// NotFoundError reports an operation targeting an id that was never
// registered. Registry state is unchanged when it is returned.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("shortcut %q is not registered", e.ID)
}

// InvalidDefinitionError reports a structurally invalid definition or key
// sequence handed to the registry.
type InvalidDefinitionError struct {
	ID     string
	Reason string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid shortcut %q: %s", e.ID, e.Reason)
}

// ConflictError reports that an operation would leave two enabled
// shortcuts with identical effective keys. It names both sides.
type ConflictError struct {
	// ID is the shortcut being customized or imported.
	ID string
	// ConflictsWith is the shortcut already holding the keys.
	ConflictsWith string
	// Keys is the contested sequence.
	Keys []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("keys %q for shortcut %q conflict with shortcut %q",
		strings.Join(e.Keys, " "), e.ID, e.ConflictsWith)
}

// PersistenceError reports a failed save of the customization mapping. The
// in-memory change has already been applied when it is returned; only the
// write to the store failed.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist shortcut customizations under %q: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
