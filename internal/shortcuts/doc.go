// Package shortcuts implements the keyboard-shortcut engine behind
// jobdeck's keyboard-driven UI.
//
// Features declare shortcuts by registering a Definition with a Registry.
// The host forwards raw keyboard events to Registry.HandleKeyEvent, which
// either resolves a modifier combination immediately or accumulates plain
// keypresses into a timed sequence buffer. Users can override keys and
// enabled state per shortcut; overrides are persisted through a narrow
// key-value port and can be exported and imported as JSON.
package shortcuts
