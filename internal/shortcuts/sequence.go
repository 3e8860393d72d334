package shortcuts

import (
	"context"
	"strings"
	"time"

	"github.com/jobdeck/jobdeck/internal/logging"
)

// HandleKeyEvent routes one keyboard event through the engine. It returns
// true when a shortcut consumed the event, in which case the host should
// suppress its default handling.
//
// Events from editable targets are ignored entirely. Events holding
// ctrl/meta/alt resolve immediately against modifier shortcuts and never
// touch the sequence buffer. Plain keypresses accumulate in the buffer and
// match only when the buffer equals a registered sequence exactly: a
// strict prefix never fires, so "g" cannot trigger before "g g" has had
// its chance, and stray extra keys simply age out on the timeout.
func (r *Registry) HandleKeyEvent(ctx context.Context, ev KeyEvent) bool {
	log := logging.FromContext(ctx)

	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return false
	}
	if r.opts.IsEditable(ev.Target) {
		r.mu.Unlock()
		return false
	}

	if ev.Ctrl || ev.Meta || ev.Alt {
		action, id := r.matchModifierLocked(ev)
		r.mu.Unlock()
		if action == nil {
			return false
		}
		log.Debug().Str("shortcut_id", id).Str("key", ev.Key).Msg("modifier shortcut fired")
		action()
		return true
	}

	key := strings.ToLower(strings.TrimSpace(ev.Key))
	if key == "" || isModifierToken(key) {
		// A bare modifier keydown carries no sequence information.
		r.mu.Unlock()
		return false
	}

	r.buffer = append(r.buffer, key)
	r.armTimerLocked()

	action, id := r.matchSequenceLocked()
	if action != nil {
		r.clearBufferLocked()
	}
	r.mu.Unlock()

	if action == nil {
		return false
	}
	log.Debug().Str("shortcut_id", id).Msg("sequence shortcut fired")
	action()
	return true
}

// PendingSequence returns a copy of the current sequence buffer, for UI
// surfaces that show in-progress sequences.
func (r *Registry) PendingSequence() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneKeys(r.buffer)
}

// matchModifierLocked builds the ordered token list for a modifier event
// and looks up an exact effective-key match among enabled shortcuts.
func (r *Registry) matchModifierLocked(ev KeyEvent) (Action, string) {
	tokens := make([]string, 0, 4)
	if ev.Ctrl || ev.Meta {
		tokens = append(tokens, PrimaryModifier(r.opts.Platform))
	}
	if ev.Shift {
		tokens = append(tokens, ModShift)
	}
	if ev.Alt {
		tokens = append(tokens, ModAlt)
	}
	key := strings.ToLower(strings.TrimSpace(ev.Key))
	if key == "" || isModifierToken(key) {
		return nil, ""
	}
	tokens = append(tokens, key)

	for _, id := range r.order {
		if !r.isEnabledLocked(id) {
			continue
		}
		if keysEqual(r.resolvedKeysLocked(id), tokens) {
			return r.defs[id].Action, id
		}
	}
	return nil, ""
}

// matchSequenceLocked scans enabled shortcuts for an exact, same-length,
// same-order match against the buffer.
func (r *Registry) matchSequenceLocked() (Action, string) {
	for _, id := range r.order {
		if !r.isEnabledLocked(id) {
			continue
		}
		if keysEqual(r.resolvedKeysLocked(id), r.buffer) {
			return r.defs[id].Action, id
		}
	}
	return nil, ""
}

// resolvedKeysLocked returns the effective keys for id with platform
// resolution applied: for platform-specific shortcuts the "meta" token
// (and its "mod"/"cmd" aliases) stands for the primary modifier.
func (r *Registry) resolvedKeysLocked(id string) []string {
	def := r.defs[id]
	keys := r.effectiveKeysLocked(id, def)
	if def == nil || !def.PlatformSpecific {
		return keys
	}

	primary := PrimaryModifier(r.opts.Platform)
	resolved := make([]string, len(keys))
	for i, k := range keys {
		switch k {
		case ModMeta, "mod", "cmd", "command":
			resolved[i] = primary
		default:
			resolved[i] = k
		}
	}
	return resolved
}

// armTimerLocked schedules the buffer clear, cancelling any previous
// schedule so at most one timer is ever live. Stop cannot cancel a
// callback that has already fired and is waiting on the lock, so each
// callback captures a generation and bails out when it is stale.
func (r *Registry) armTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timerGen++
	gen := r.timerGen
	r.timer = time.AfterFunc(r.opts.SequenceTimeout, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.destroyed || gen != r.timerGen {
			return
		}
		r.buffer = r.buffer[:0]
		r.timer = nil
	})
}

// clearBufferLocked resets the matcher to idle.
func (r *Registry) clearBufferLocked() {
	r.buffer = r.buffer[:0]
	r.timerGen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
