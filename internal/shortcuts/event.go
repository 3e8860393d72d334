package shortcuts

// KeyEvent is the keyboard event contract between the host environment and
// the registry. The host forwards one KeyEvent per keypress; the registry
// never reads anything from the environment directly.
type KeyEvent struct {
	// Key is the pressed key name, e.g. "k", "escape", "?". Comparison is
	// case-insensitive.
	Key string

	// Modifier flags held during the keypress.
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool

	// Target is the focused element at the time of the event. It is
	// consulted only to decide whether the event belongs to normal typing.
	Target any
}

// EditableTarget is implemented by event targets that accept text input.
// Events originating from an editable target are ignored by the registry
// so shortcuts never hijack typing.
type EditableTarget interface {
	Editable() bool
}

// defaultIsEditable is the editable-field predicate used when the host
// does not inject one.
func defaultIsEditable(target any) bool {
	if t, ok := target.(EditableTarget); ok {
		return t.Editable()
	}
	return false
}
