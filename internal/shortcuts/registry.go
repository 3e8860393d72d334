package shortcuts

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jobdeck/jobdeck/internal/logging"
	"github.com/jobdeck/jobdeck/internal/storage"
)

// DefaultStorageKey is the store key the customization blob is written
// under when the host does not override it.
const DefaultStorageKey = "jobdeck.shortcuts"

// DefaultSequenceTimeout is the quiet period after which a partially typed
// sequence is discarded.
const DefaultSequenceTimeout = time.Second

// Options configures a Registry. The zero value is usable: memory-backed
// store, runtime platform, default storage key and timeout.
type Options struct {
	// StorageKey names the key the customization blob is saved under.
	StorageKey string

	// SequenceTimeout is the sequence-buffer inactivity window.
	SequenceTimeout time.Duration

	// Store persists customizations. Defaults to an in-memory store.
	Store storage.Store

	// Platform resolves the primary modifier. Defaults to runtime.GOOS.
	Platform Platform

	// IsEditable decides whether an event target accepts text input.
	// Defaults to checking for the EditableTarget interface.
	IsEditable func(target any) bool
}

// Registry owns shortcut definitions, user customizations and the sequence
// matcher state. All exported methods are safe for concurrent use; the
// sequence timeout fires on its own goroutine and takes the same lock.
type Registry struct {
	mu sync.Mutex

	opts Options

	defs    map[string]*Definition
	order   []string // registration order, drives conflict and match scans
	customs map[string]Customization

	listeners  map[int]func()
	nextListen int

	buffer    []string
	timer     *time.Timer
	timerGen  uint64 // bumped on every arm/clear to invalidate stale timer callbacks
	destroyed bool
}

// New creates a registry and hydrates customizations from the store.
// Load failures are logged and degrade to "no customizations" so a
// corrupted store can never prevent construction.
func New(ctx context.Context, opts Options) *Registry {
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if opts.SequenceTimeout <= 0 {
		opts.SequenceTimeout = DefaultSequenceTimeout
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}
	if opts.Platform == nil {
		opts.Platform = RuntimePlatform()
	}
	if opts.IsEditable == nil {
		opts.IsEditable = defaultIsEditable
	}

	r := &Registry{
		opts:      opts,
		defs:      make(map[string]*Definition),
		customs:   make(map[string]Customization),
		listeners: make(map[int]func()),
	}
	r.loadCustomizations(ctx)
	return r
}

// loadCustomizations hydrates the customization mapping from the store,
// skipping entries that fail to parse.
func (r *Registry) loadCustomizations(ctx context.Context) {
	log := logging.FromContext(ctx)

	blob, ok, err := r.opts.Store.Get(ctx, r.opts.StorageKey)
	if err != nil {
		log.Warn().Err(err).Str("key", r.opts.StorageKey).Msg("failed to load shortcut customizations")
		return
	}
	if !ok || blob == "" {
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		log.Warn().Err(err).Str("key", r.opts.StorageKey).Msg("stored shortcut customizations are malformed, ignoring")
		return
	}

	loaded, skipped := 0, 0
	for id, msg := range raw {
		var c Customization
		if err := json.Unmarshal(msg, &c); err != nil || len(c.Keys) == 0 {
			skipped++
			log.Warn().Str("shortcut_id", id).Msg("skipping malformed shortcut customization")
			continue
		}
		c.Keys = normalizeKeys(c.Keys)
		r.customs[id] = c
		loaded++
	}

	log.Debug().Int("loaded", loaded).Int("skipped", skipped).Msg("shortcut customizations hydrated")
}

// Register adds a definition. Re-registering an id replaces the previous
// definition. A conflict with another enabled shortcut's effective keys is
// tolerated with a warning: registration happens at start-up before
// customization, and independently authored features must stay composable.
func (r *Registry) Register(ctx context.Context, def Definition) error {
	log := logging.FromContext(ctx)

	if def.ID == "" {
		return &InvalidDefinitionError{ID: def.ID, Reason: "id must not be empty"}
	}
	if len(def.DefaultKeys) == 0 {
		return &InvalidDefinitionError{ID: def.ID, Reason: "default keys must not be empty"}
	}
	if def.Action == nil {
		return &InvalidDefinitionError{ID: def.ID, Reason: "action must not be nil"}
	}
	def.DefaultKeys = normalizeKeys(def.DefaultKeys)

	r.mu.Lock()
	if !def.Disabled {
		if other := r.conflictLocked(r.effectiveKeysLocked(def.ID, &def), def.ID); other != nil {
			log.Warn().
				Str("shortcut_id", def.ID).
				Str("conflicts_with", other.ID).
				Strs("keys", def.DefaultKeys).
				Msg("shortcut registered with conflicting keys")
		}
	}
	if _, exists := r.defs[def.ID]; !exists {
		r.order = append(r.order, def.ID)
	}
	r.defs[def.ID] = &def
	r.notifyLocked()

	log.Trace().Str("shortcut_id", def.ID).Strs("keys", def.DefaultKeys).Msg("shortcut registered")
	return nil
}

// Unregister removes a definition and any customization for it. Removing
// an unknown id is a no-op.
func (r *Registry) Unregister(ctx context.Context, id string) {
	log := logging.FromContext(ctx)

	r.mu.Lock()
	if _, ok := r.defs[id]; !ok {
		delete(r.customs, id)
		r.mu.Unlock()
		return
	}
	delete(r.defs, id)
	delete(r.customs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.notifyLocked()

	log.Trace().Str("shortcut_id", id).Msg("shortcut unregistered")
}

// All returns every registered definition in registration order.
func (r *Registry) All() []Definition {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		d := *r.defs[id]
		d.DefaultKeys = cloneKeys(d.DefaultKeys)
		out = append(out, d)
	}
	return out
}

// ByCategory returns the definitions in the given category, in
// registration order.
func (r *Registry) ByCategory(category string) []Definition {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Definition
	for _, id := range r.order {
		if r.defs[id].Category != category {
			continue
		}
		d := *r.defs[id]
		d.DefaultKeys = cloneKeys(d.DefaultKeys)
		out = append(out, d)
	}
	return out
}

// EffectiveKeys returns the keys in force for id: the customization's keys
// if present, else the default keys, else nil for an unknown id.
func (r *Registry) EffectiveKeys(id string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneKeys(r.effectiveKeysLocked(id, r.defs[id]))
}

func (r *Registry) effectiveKeysLocked(id string, def *Definition) []string {
	if c, ok := r.customs[id]; ok {
		return c.Keys
	}
	if def != nil {
		return def.DefaultKeys
	}
	return nil
}

// IsEnabled reports whether the shortcut is currently enabled: the
// customization's flag if present, else the definition's, else false for
// an unknown id.
func (r *Registry) IsEnabled(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isEnabledLocked(id)
}

func (r *Registry) isEnabledLocked(id string) bool {
	if c, ok := r.customs[id]; ok {
		return c.Enabled
	}
	if def, ok := r.defs[id]; ok {
		return !def.Disabled
	}
	return false
}

// Customize replaces the key sequence for id and enables it. It fails with
// NotFoundError for unknown ids and ConflictError when the keys collide
// with another enabled shortcut's effective keys, leaving state untouched
// in both cases. A PersistenceError means the change is live in memory but
// could not be saved.
func (r *Registry) Customize(ctx context.Context, id string, keys []string) error {
	log := logging.FromContext(ctx)

	keys = normalizeKeys(keys)
	if len(keys) == 0 {
		return &InvalidDefinitionError{ID: id, Reason: "customized keys must not be empty"}
	}

	r.mu.Lock()
	if _, ok := r.defs[id]; !ok {
		r.mu.Unlock()
		return &NotFoundError{ID: id}
	}
	if other := r.conflictLocked(keys, id); other != nil {
		conflictID := other.ID
		r.mu.Unlock()
		return &ConflictError{ID: id, ConflictsWith: conflictID, Keys: keys}
	}

	r.customs[id] = Customization{Keys: keys, Enabled: true}
	err := r.persistLocked(ctx)
	r.notifyLocked()

	log.Debug().Str("shortcut_id", id).Strs("keys", keys).Msg("shortcut customized")
	return err
}

// ResetToDefault removes the customization for id, restoring the default
// keys and enabled flag.
func (r *Registry) ResetToDefault(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.customs, id)
	err := r.persistLocked(ctx)
	r.notifyLocked()

	logging.FromContext(ctx).Debug().Str("shortcut_id", id).Msg("shortcut reset to default")
	return err
}

// ResetAll removes every customization.
func (r *Registry) ResetAll(ctx context.Context) error {
	r.mu.Lock()
	r.customs = make(map[string]Customization)
	err := r.persistLocked(ctx)
	r.notifyLocked()

	logging.FromContext(ctx).Info().Msg("all shortcuts reset to defaults")
	return err
}

// SetEnabled flips only the enabled flag, preserving customized keys when
// they exist and falling back to the effective keys otherwise.
func (r *Registry) SetEnabled(ctx context.Context, id string, enabled bool) error {
	r.mu.Lock()
	def, ok := r.defs[id]
	if !ok {
		r.mu.Unlock()
		return &NotFoundError{ID: id}
	}

	keys := r.effectiveKeysLocked(id, def)
	r.customs[id] = Customization{Keys: cloneKeys(keys), Enabled: enabled}
	err := r.persistLocked(ctx)
	r.notifyLocked()

	logging.FromContext(ctx).Debug().Str("shortcut_id", id).Bool("enabled", enabled).Msg("shortcut toggled")
	return err
}

// SetSequenceTimeout replaces the sequence-buffer inactivity window, for
// hosts that reload configuration at runtime. Values <= 0 restore the
// default. An already armed timer keeps its old deadline; the new window
// applies from the next keypress.
func (r *Registry) SetSequenceTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultSequenceTimeout
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.SequenceTimeout = d
}

// CheckConflict returns the first enabled shortcut whose effective keys
// equal keys, ignoring excludeID. It is a pure lookup with no side
// effects.
func (r *Registry) CheckConflict(keys []string, excludeID string) (Definition, bool) {
	keys = normalizeKeys(keys)

	r.mu.Lock()
	defer r.mu.Unlock()

	other := r.conflictLocked(keys, excludeID)
	if other == nil {
		return Definition{}, false
	}
	d := *other
	d.DefaultKeys = cloneKeys(d.DefaultKeys)
	return d, true
}

// conflictLocked scans registered shortcuts in registration order and
// returns the first enabled one whose effective keys equal keys.
func (r *Registry) conflictLocked(keys []string, excludeID string) *Definition {
	for _, id := range r.order {
		if id == excludeID {
			continue
		}
		if !r.isEnabledLocked(id) {
			continue
		}
		if keysEqual(r.effectiveKeysLocked(id, r.defs[id]), keys) {
			return r.defs[id]
		}
	}
	return nil
}

// OnChange registers a listener invoked after every mutation. The returned
// function unsubscribes it.
func (r *Registry) OnChange(listener func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextListen
	r.nextListen++
	r.listeners[id] = listener

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Destroy cancels the pending sequence timeout and drops all listeners.
// The registry must not be used afterwards.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.buffer = nil
	r.listeners = make(map[int]func())
	r.destroyed = true
}

// persistLocked serializes the full customization mapping and writes it to
// the store. Callers hold the lock; the lock is retained across the write
// so saves never interleave.
func (r *Registry) persistLocked(ctx context.Context) error {
	blob, err := json.Marshal(r.customs)
	if err != nil {
		return &PersistenceError{Key: r.opts.StorageKey, Err: err}
	}
	if err := r.opts.Store.Set(ctx, r.opts.StorageKey, string(blob)); err != nil {
		return &PersistenceError{Key: r.opts.StorageKey, Err: err}
	}
	return nil
}

// notifyLocked copies the listener set, releases the lock, then invokes
// the listeners. Must be called with r.mu held; the lock is released on
// return.
func (r *Registry) notifyLocked() {
	listeners := make([]func(), 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}
