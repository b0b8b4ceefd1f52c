package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps key sequences to commands.
// Sequences use spacemacs-style notation: "SPC g c" is space, then g, then c.
// Single keys: "q", "esc", "ctrl+c".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	modeFilter   map[string][]AppMode // empty = all modes
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		modeFilter:   make(map[string][]AppMode),
	}
}

// Bind registers seq for every mode with a help description.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd, desc string) {
	r.BindForMode(seq, cmd, desc, nil)
}

// BindForMode registers seq for the given modes only; nil modes means all.
func (r *KeybindRegistry) BindForMode(seq string, cmd tea.Cmd, desc string, modes []AppMode) {
	n := normalizeSeq(seq)
	r.bindings[n] = cmd
	if desc != "" {
		r.descriptions[n] = desc
	}
	if len(modes) > 0 {
		r.modeFilter[n] = modes
	}
}

// Lookup returns the command bound to seq in mode, or nil.
func (r *KeybindRegistry) Lookup(seq string, mode AppMode) tea.Cmd {
	n := normalizeSeq(seq)
	if !r.appliesToMode(n, mode) {
		return nil
	}
	return r.bindings[n]
}

// HasPrefix reports whether a longer binding continues seq in mode.
func (r *KeybindRegistry) HasPrefix(seq string, mode AppMode) bool {
	prefix := normalizeSeq(seq) + " "
	for k := range r.bindings {
		if strings.HasPrefix(k, prefix) && r.appliesToMode(k, mode) {
			return true
		}
	}
	return false
}

// submenuLabel names first-level leader keys that open a submenu.
var submenuLabel = map[string]string{
	"g": "Go to",
}

// LeaderHints returns the next keys available after currentSeq ("" = just SPC), keyed by key.
func (r *KeybindRegistry) LeaderHints(currentSeq string, mode AppMode) map[string]string {
	out := make(map[string]string)
	prefix := "SPC "
	if currentSeq != "" && currentSeq != "SPC" {
		prefix = normalizeSeq(currentSeq) + " "
	}
	for seq, cmd := range r.bindings {
		if cmd == nil || !strings.HasPrefix(seq, prefix) || !r.appliesToMode(seq, mode) {
			continue
		}
		rest := strings.Fields(strings.TrimPrefix(seq, prefix))
		if len(rest) == 0 {
			continue
		}
		key := rest[0]
		if len(rest) > 1 {
			if label, ok := submenuLabel[key]; ok {
				out[key] = label
			} else {
				out[key] = key + "…"
			}
			continue
		}
		if d := r.descriptions[seq]; d != "" {
			out[key] = d
		} else {
			out[key] = seq
		}
	}
	return out
}

func (r *KeybindRegistry) appliesToMode(seq string, mode AppMode) bool {
	modes, ok := r.modeFilter[seq]
	if !ok {
		return true
	}
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}

// normalizeSeq converts tea key strings to the registry's notation.
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return strings.Join(parts, " ")
}

func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

// KeyHandler tracks leader-key state and dispatches to the registry.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderWaiting bool
	Buffer        []string // sequence typed since SPC
}

// NewKeyHandler creates a handler with SPC as leader.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg}
}

// Handle processes a key in mode. consumed reports whether views should not see it.
func (h *KeyHandler) Handle(msg tea.KeyMsg, mode AppMode) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	if s == "esc" {
		if h.LeaderWaiting {
			h.reset()
			return true, nil
		}
		return false, nil
	}

	// Bubble Tea reports space as " "
	if !h.LeaderWaiting && s == " " {
		h.LeaderWaiting = true
		h.Buffer = []string{"SPC"}
		return true, nil
	}

	if h.LeaderWaiting {
		h.Buffer = append(h.Buffer, keyToSeqPart(s))
		seq := strings.Join(h.Buffer, " ")
		if c := h.Registry.Lookup(seq, mode); c != nil {
			h.reset()
			return true, c
		}
		if h.Registry.HasPrefix(seq, mode) {
			return true, nil
		}
		h.reset()
		return true, nil
	}

	if c := h.Registry.Lookup(s, mode); c != nil {
		return true, c
	}
	return false, nil
}

// CurrentSeq returns the typed leader sequence, e.g. "SPC g".
func (h *KeyHandler) CurrentSeq() string {
	return strings.Join(h.Buffer, " ")
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}
