package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "commit")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar:
// "j/k:move tab:pane space:toggle"
func (a App) renderHints(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals:
// "Enter add  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// currentHints returns the bottom-bar hints for the active mode and pane.
func (a App) currentHints() []Hint {
	if a.mode == ModeFilter {
		return []Hint{
			{Key: "Enter", Desc: "apply"},
			{Key: "Esc", Desc: "clear"},
		}
	}

	hints := []Hint{
		{Key: "j/k", Desc: "move"},
		{Key: "tab", Desc: "pane"},
	}
	if a.pane == PaneTags {
		hints = append(hints,
			Hint{Key: "space", Desc: "toggle"},
			Hint{Key: "/", Desc: "filter"},
		)
	} else {
		hints = append(hints, Hint{Key: "Y", Desc: "yank"})
	}
	return append(hints,
		Hint{Key: "enter", Desc: "commit"},
		Hint{Key: "a", Desc: "add tag"},
		Hint{Key: "r", Desc: "rescan"},
		Hint{Key: "?", Desc: "help"},
		Hint{Key: "q", Desc: "quit"},
	)
}
