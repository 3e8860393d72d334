package shortcuts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryModifier(t *testing.T) {
	assert.Equal(t, "meta", PrimaryModifier(fakePlatform{os: "darwin"}))
	assert.Equal(t, "ctrl", PrimaryModifier(fakePlatform{os: "linux"}))
	assert.Equal(t, "ctrl", PrimaryModifier(fakePlatform{os: "windows"}))
}

func TestPrimaryModifierNotCached(t *testing.T) {
	p := &switchablePlatform{os: "linux"}
	assert.Equal(t, "ctrl", PrimaryModifier(p))
	p.os = "darwin"
	assert.Equal(t, "meta", PrimaryModifier(p))
}

func TestDisplayKey(t *testing.T) {
	darwin := fakePlatform{os: "darwin"}
	linux := fakePlatform{os: "linux"}

	tests := []struct {
		token  string
		darwin string
		linux  string
	}{
		{"meta", "⌘", "Meta"},
		{"ctrl", "⌃", "Ctrl"},
		{"shift", "⇧", "Shift"},
		{"alt", "⌥", "Alt"},
		{"k", "K", "K"},
		{"enter", "Enter", "Enter"},
		{" Meta ", "⌘", "Meta"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.darwin, DisplayKey(darwin, tt.token), "darwin %q", tt.token)
		assert.Equal(t, tt.linux, DisplayKey(linux, tt.token), "linux %q", tt.token)
	}
}

type switchablePlatform struct{ os string }

func (p *switchablePlatform) OS() string { return p.os }
