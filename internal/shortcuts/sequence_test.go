package shortcuts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type editableField struct {
	editable bool
}

func (f editableField) Editable() bool { return f.editable }

func newSequenceRegistry(t *testing.T, os string, timeout time.Duration) *Registry {
	t.Helper()
	r := New(context.Background(), Options{
		Platform:        fakePlatform{os: os},
		SequenceTimeout: timeout,
	})
	t.Cleanup(r.Destroy)
	return r
}

func TestSetSequenceTimeoutApplies(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", time.Minute)

	fired := 0
	mustRegister(t, r, Definition{ID: "top", DefaultKeys: []string{"g", "g"}, Action: func() { fired++ }})

	r.SetSequenceTimeout(30 * time.Millisecond)

	r.HandleKeyEvent(ctx, KeyEvent{Key: "g"})
	time.Sleep(100 * time.Millisecond)

	assert.Empty(t, r.PendingSequence(), "shrunk window must expire the buffer")
	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "g"}))
	assert.Equal(t, 0, fired)
}

func TestSetSequenceTimeoutRejectsNonPositive(t *testing.T) {
	r := newSequenceRegistry(t, "linux", time.Minute)
	r.SetSequenceTimeout(0)
	assert.Equal(t, DefaultSequenceTimeout, r.opts.SequenceTimeout)
}

// Keypresses landing right at the timeout boundary race the expiry
// callback for the lock. Whoever loses, the matcher must end up
// consistent: the buffer drains after a quiet period and a fresh
// sequence fires exactly once.
func TestTimeoutBoundaryChurn(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Millisecond
	r := newSequenceRegistry(t, "linux", timeout)

	fired := 0
	mustRegister(t, r, Definition{ID: "top", DefaultKeys: []string{"g", "j"}, Action: func() { fired++ }})

	for i := 0; i < 200; i++ {
		r.HandleKeyEvent(ctx, KeyEvent{Key: "g"})
		time.Sleep(timeout)
		r.HandleKeyEvent(ctx, KeyEvent{Key: "x"})
	}

	time.Sleep(4 * timeout)
	require.Empty(t, r.PendingSequence(), "buffer must drain once the churn stops")

	fired = 0
	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "g"}))
	assert.True(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "j"}))
	assert.Equal(t, 1, fired)
}

func TestSequenceFiresExactlyOnce(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", time.Second)

	fired := 0
	mustRegister(t, r, Definition{ID: "top", DefaultKeys: []string{"g", "g"}, Action: func() { fired++ }})

	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "g"}), "prefix must not fire")
	assert.Equal(t, 0, fired)
	assert.True(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "g"}))
	assert.Equal(t, 1, fired)

	// The buffer reset on match, so a single further press is a prefix again.
	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "g"}))
	assert.Equal(t, 1, fired)
}

func TestSequenceTimeoutExpiresBuffer(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", 50*time.Millisecond)

	fired := 0
	mustRegister(t, r, Definition{ID: "top", DefaultKeys: []string{"g", "g"}, Action: func() { fired++ }})

	r.HandleKeyEvent(ctx, KeyEvent{Key: "g"})
	time.Sleep(150 * time.Millisecond)

	assert.Empty(t, r.PendingSequence(), "buffer clears after the quiet period")
	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "g"}), "expired prefix must not complete the sequence")
	assert.Equal(t, 0, fired)

	// Within the window the sequence still works.
	assert.True(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "g"}))
	assert.Equal(t, 1, fired)
}

func TestSequenceCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", time.Second)

	fired := 0
	mustRegister(t, r, Definition{ID: "jobs", DefaultKeys: []string{"g", "j"}, Action: func() { fired++ }})

	r.HandleKeyEvent(ctx, KeyEvent{Key: "G"})
	assert.True(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "J"}))
	assert.Equal(t, 1, fired)
}

func TestExtraKeyBreaksSequence(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", time.Second)

	fired := 0
	mustRegister(t, r, Definition{ID: "jobs", DefaultKeys: []string{"g", "j"}, Action: func() { fired++ }})

	r.HandleKeyEvent(ctx, KeyEvent{Key: "g"})
	r.HandleKeyEvent(ctx, KeyEvent{Key: "x"})
	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "j"}), "buffer g x j never equals g j")
	assert.Equal(t, 0, fired)
}

func TestEditableTargetIgnored(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", time.Second)

	fired := 0
	mustRegister(t, r, Definition{ID: "jobs", DefaultKeys: []string{"g", "j"}, Action: func() { fired++ }})

	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "g", Target: editableField{editable: true}}))
	assert.Empty(t, r.PendingSequence(), "typing must not touch the buffer")

	r.HandleKeyEvent(ctx, KeyEvent{Key: "g", Target: editableField{editable: false}})
	assert.True(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "j"}))
	assert.Equal(t, 1, fired)
}

func TestInjectedEditablePredicate(t *testing.T) {
	ctx := context.Background()
	r := New(ctx, Options{
		Platform:   fakePlatform{os: "linux"},
		IsEditable: func(target any) bool { return target == "input" },
	})
	defer r.Destroy()

	fired := 0
	mustRegister(t, r, Definition{ID: "help", DefaultKeys: []string{"?"}, Action: func() { fired++ }})

	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "?", Target: "input"}))
	assert.True(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "?", Target: "main"}))
	assert.Equal(t, 1, fired)
}

func TestModifierShortcutBothPlatforms(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		os   string
		ev   KeyEvent
	}{
		{name: "darwin resolves meta", os: "darwin", ev: KeyEvent{Key: "k", Meta: true}},
		{name: "linux resolves ctrl", os: "linux", ev: KeyEvent{Key: "k", Ctrl: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newSequenceRegistry(t, tt.os, time.Second)
			fired := 0
			mustRegister(t, r, Definition{
				ID:               "search",
				DefaultKeys:      []string{"meta", "k"},
				PlatformSpecific: true,
				Action:           func() { fired++ },
			})

			assert.True(t, r.HandleKeyEvent(ctx, tt.ev))
			assert.Equal(t, 1, fired)
		})
	}
}

func TestModifierEventSkipsSequenceBuffer(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", time.Second)

	fired := 0
	mustRegister(t, r, Definition{ID: "jobs", DefaultKeys: []string{"g", "j"}, Action: func() { fired++ }})

	r.HandleKeyEvent(ctx, KeyEvent{Key: "g"})
	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "x", Ctrl: true}), "unmatched modifier combo is not handled")
	assert.Equal(t, []string{"g"}, r.PendingSequence(), "modifier events must not touch the buffer")

	assert.True(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "j"}))
	assert.Equal(t, 1, fired)
}

func TestModifierWithShiftAndAlt(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", time.Second)

	fired := 0
	mustRegister(t, r, Definition{
		ID:          "archive",
		DefaultKeys: []string{"ctrl", "shift", "a"},
		Action:      func() { fired++ },
	})

	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "a", Ctrl: true}))
	assert.True(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "a", Ctrl: true, Shift: true}))
	assert.Equal(t, 1, fired)

	altFired := 0
	mustRegister(t, r, Definition{
		ID:          "focus-left",
		DefaultKeys: []string{"alt", "h"},
		Action:      func() { altFired++ },
	})
	assert.True(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "h", Alt: true}))
	assert.Equal(t, 1, altFired)
}

func TestDisabledShortcutDoesNotFire(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", time.Second)

	fired := 0
	mustRegister(t, r, Definition{ID: "jobs", DefaultKeys: []string{"g", "j"}, Action: func() { fired++ }})
	require.NoError(t, r.SetEnabled(ctx, "jobs", false))

	r.HandleKeyEvent(ctx, KeyEvent{Key: "g"})
	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "j"}))
	assert.Equal(t, 0, fired)
}

func TestCustomizedKeysWinOverDefaults(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", time.Second)

	fired := 0
	mustRegister(t, r, Definition{ID: "jobs", DefaultKeys: []string{"g", "j"}, Action: func() { fired++ }})
	require.NoError(t, r.Customize(ctx, "jobs", []string{"g", "b"}))

	r.HandleKeyEvent(ctx, KeyEvent{Key: "g"})
	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "j"}), "old keys are out of force")

	r.HandleKeyEvent(ctx, KeyEvent{Key: "g"})
	assert.True(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "b"}))
	assert.Equal(t, 1, fired)
}

func TestBareModifierKeyIgnored(t *testing.T) {
	ctx := context.Background()
	r := newSequenceRegistry(t, "linux", time.Second)
	mustRegister(t, r, Definition{ID: "jobs", DefaultKeys: []string{"g", "j"}})

	r.HandleKeyEvent(ctx, KeyEvent{Key: "g"})
	r.HandleKeyEvent(ctx, KeyEvent{Key: "shift", Shift: true})
	assert.Equal(t, []string{"g"}, r.PendingSequence())
}

func TestDestroyStopsEventHandling(t *testing.T) {
	ctx := context.Background()
	r := New(ctx, Options{Platform: fakePlatform{os: "linux"}})

	fired := 0
	mustRegister(t, r, Definition{ID: "jobs", DefaultKeys: []string{"g", "j"}, Action: func() { fired++ }})

	r.HandleKeyEvent(ctx, KeyEvent{Key: "g"})
	r.Destroy()

	assert.False(t, r.HandleKeyEvent(ctx, KeyEvent{Key: "j"}))
	assert.Equal(t, 0, fired)
}
