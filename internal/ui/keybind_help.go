package ui

import (
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap adapts the leader hints for the current mode to help.KeyMap.
type KeyMap struct {
	handler *KeyHandler
	mode    AppMode
}

var _ help.KeyMap = KeyMap{}

// NewKeyMap creates a KeyMap for handler in mode.
func NewKeyMap(handler *KeyHandler, mode AppMode) KeyMap {
	return KeyMap{handler: handler, mode: mode}
}

// ShortHelp returns one binding per available next key, sorted, plus esc.
func (km KeyMap) ShortHelp() []key.Binding {
	if km.handler == nil || km.handler.Registry == nil {
		return nil
	}
	hints := km.handler.Registry.LeaderHints(km.handler.CurrentSeq(), km.mode)
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// FullHelp returns ShortHelp as a single column.
func (km KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}

// RenderKeybindHelp renders the transient hint bar shown after SPC.
func RenderKeybindHelp(handler *KeyHandler, mode AppMode) string {
	km := NewKeyMap(handler, mode)
	if len(km.ShortHelp()) == 0 {
		return ""
	}
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight)).Bold(true)
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	return h.View(km)
}
