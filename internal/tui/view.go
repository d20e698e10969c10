package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/vorg/internal/model"
)

// renderView draws the two-pane browse screen, or a modal for the add-tag
// and help modes.
func (a App) renderView() string {
	if a.mode == ModeAddTag {
		return a.renderAddTagModal()
	}
	if a.mode == ModeHelp {
		return a.renderHelp()
	}

	header := a.renderHeader()

	paneHeight := a.height - 10
	if paneHeight < 3 {
		paneHeight = 3
	}
	paneWidth := (a.width - 8) / 2
	if paneWidth < 20 {
		paneWidth = 20
	}

	videosPane := a.renderVideosPane(paneWidth, paneHeight)
	tagsPane := a.renderTagsPane(paneWidth, paneHeight)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, videosPane, tagsPane)

	statusLine := a.renderStatus()
	helpBar := a.styles.Help.Render(a.renderHints(a.currentHints()))

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, columns, statusLine, helpBar),
	)

	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader shows the app name and the configured folders.
func (a App) renderHeader() string {
	cfg := a.store.Config()

	sources := "none"
	if len(cfg.SourceFolders) > 0 {
		sources = strings.Join(cfg.SourceFolders, ", ")
	}
	dest := cfg.DestinationFolder
	if dest == "" {
		dest = "not configured"
	}

	title := a.styles.Title.Render("vorg")
	meta := a.styles.Meta.Render(fmt.Sprintf(" sources: %s  dest: %s", sources, dest))
	return title + meta
}

// renderVideosPane lists the working set, newest first.
func (a App) renderVideosPane(width, height int) string {
	var content strings.Builder
	content.WriteString(a.styles.Title.Render(fmt.Sprintf("Videos (%d)", len(a.videos))) + "\n")

	if len(a.videos) == 0 {
		content.WriteString(a.styles.Empty.Render("no videos found, press r to rescan"))
	} else {
		visible := height - 2
		offset := viewportOffset(a.cursor, len(a.videos), visible)

		for i := offset; i < len(a.videos) && i < offset+visible; i++ {
			v := &a.videos[i]
			line := truncate(v.Name(), width-14) + " " + a.thumbMarker(v)
			if len(v.SelectedTags) > 0 {
				line += a.styles.Meta.Render(fmt.Sprintf(" [%d]", len(v.SelectedTags)))
			}

			if i == a.cursor && a.pane == PaneVideos {
				content.WriteString(a.styles.ItemSelected.Render(line))
			} else {
				content.WriteString(a.styles.Item.Render(line))
			}
			content.WriteString("\n")
		}
	}

	style := a.styles.Pane
	if a.pane == PaneVideos {
		style = a.styles.PaneActive
	}
	return style.Width(width).Height(height).Render(content.String())
}

// renderTagsPane shows the ranked tag checkboxes for the current video.
func (a App) renderTagsPane(width, height int) string {
	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Tags") + "\n")

	if a.mode == ModeFilter || a.filterQuery != "" {
		content.WriteString("/" + a.filterInput.View() + "\n")
	}

	v := a.current()

	if len(a.tagOrder) == 0 {
		content.WriteString(a.styles.Empty.Render("no matching tags"))
	} else {
		visible := height - 3
		offset := viewportOffset(a.tagCursor, len(a.tagOrder), visible)

		for i := offset; i < len(a.tagOrder) && i < offset+visible; i++ {
			tag := a.tagOrder[i]

			marker := "[ ]"
			if v != nil && v.SelectedTags[tag] {
				marker = a.styles.TagChecked.Render("[x]")
			}
			count := a.styles.Meta.Render(fmt.Sprintf(" (%d)", a.store.Usage(tag)))
			line := marker + " " + truncate(tag, width-12) + count

			if i == a.tagCursor && a.pane == PaneTags {
				content.WriteString(a.styles.ItemSelected.Render(line))
			} else {
				content.WriteString(a.styles.Item.Render(line))
			}
			content.WriteString("\n")
		}
	}

	style := a.styles.Pane
	if a.pane == PaneTags {
		style = a.styles.PaneActive
	}
	return style.Width(width).Height(height).Render(content.String())
}

// thumbMarker is the one-glyph thumbnail state: pending, ready or failed.
func (a App) thumbMarker(v *model.Video) string {
	switch v.ThumbStatus {
	case model.ThumbReady:
		return a.styles.TagChecked.Render("▣")
	case model.ThumbFailed:
		return a.styles.Meta.Render("✗")
	default:
		return a.styles.Meta.Render("…")
	}
}

func (a App) renderStatus() string {
	if a.status == "" {
		return " "
	}
	if a.statusErr {
		return a.styles.StatusError.Render(a.status)
	}
	return a.styles.Status.Render(a.status)
}

// renderAddTagModal draws the add-tag input centered on screen.
func (a App) renderAddTagModal() string {
	box := lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Add tag"),
		"",
		a.tagInput.View(),
		"",
		a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "add"},
			{Key: "Esc", Desc: "cancel"},
		}),
	)
	modal := a.styles.PaneActive.Padding(1, 2).Render(box)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderHelp draws the keybinding overview.
func (a App) renderHelp() string {
	rows := []string{
		a.styles.Title.Render("vorg keybindings"),
		"",
		"  j/k        move",
		"  gg/G       jump to top/bottom",
		"  tab/h/l    switch pane",
		"  space      toggle tag on selected video",
		"  enter      commit: move video into tag folders",
		"  a          add a new tag",
		"  /          filter tags",
		"  Y          yank video path to clipboard",
		"  r          rescan source folders",
		"  q          quit",
		"",
		a.styles.Meta.Render("press any key to close"),
	}
	modal := a.styles.PaneActive.Padding(1, 2).Render(strings.Join(rows, "\n"))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// viewportOffset keeps the cursor visible in a list of total items with
// visible rows.
func viewportOffset(cursor, total, visible int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	offset := cursor - visible/2
	if offset < 0 {
		offset = 0
	}
	if offset > total-visible {
		offset = total - visible
	}
	return offset
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max < 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
