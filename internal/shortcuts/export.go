package shortcuts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jobdeck/jobdeck/internal/logging"
)

// Export returns a JSON snapshot of all customizations: a flat mapping
// from shortcut id to its keys and enabled flag.
func (r *Registry) Export() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return json.MarshalIndent(r.customs, "", "  ")
}

// Import replaces the whole customization set with the decoded snapshot.
// Every entry is validated before anything is applied — unknown ids,
// malformed entries, and key conflicts (within the imported set or against
// the defaults of shortcuts absent from it) each reject the import
// wholesale, leaving registry state untouched.
func (r *Registry) Import(ctx context.Context, data []byte) error {
	log := logging.FromContext(ctx)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var incoming map[string]Customization
	if err := dec.Decode(&incoming); err != nil {
		return fmt.Errorf("malformed shortcut import: %w", err)
	}

	r.mu.Lock()

	for id, c := range incoming {
		if _, ok := r.defs[id]; !ok {
			r.mu.Unlock()
			return &NotFoundError{ID: id}
		}
		if len(c.Keys) == 0 {
			r.mu.Unlock()
			return &InvalidDefinitionError{ID: id, Reason: "customized keys must not be empty"}
		}
		c.Keys = normalizeKeys(c.Keys)
		incoming[id] = c
	}

	if err := r.validateImportLocked(incoming); err != nil {
		r.mu.Unlock()
		return err
	}

	r.customs = make(map[string]Customization, len(incoming))
	for id, c := range incoming {
		r.customs[id] = Customization{Keys: cloneKeys(c.Keys), Enabled: c.Enabled}
	}
	err := r.persistLocked(ctx)
	r.notifyLocked()

	log.Info().Int("entries", len(incoming)).Msg("shortcut customizations imported")
	return err
}

// validateImportLocked checks the keys each shortcut would end up with if
// the import were applied, and rejects any pair of enabled shortcuts that
// would collide, as long as at least one side comes from the import.
// Conflicts between two untouched defaults were already tolerated at
// registration time and do not block an import.
func (r *Registry) validateImportLocked(incoming map[string]Customization) error {
	proposedKeys := make(map[string][]string, len(r.order))
	proposedEnabled := make(map[string]bool, len(r.order))
	for _, id := range r.order {
		if c, ok := incoming[id]; ok {
			proposedKeys[id] = c.Keys
			proposedEnabled[id] = c.Enabled
		} else {
			proposedKeys[id] = r.defs[id].DefaultKeys
			proposedEnabled[id] = !r.defs[id].Disabled
		}
	}

	for i, a := range r.order {
		for _, b := range r.order[i+1:] {
			if !proposedEnabled[a] || !proposedEnabled[b] {
				continue
			}
			if !keysEqual(proposedKeys[a], proposedKeys[b]) {
				continue
			}
			if _, ok := incoming[b]; ok {
				return &ConflictError{ID: b, ConflictsWith: a, Keys: proposedKeys[b]}
			}
			if _, ok := incoming[a]; ok {
				return &ConflictError{ID: a, ConflictsWith: b, Keys: proposedKeys[a]}
			}
		}
	}
	return nil
}
