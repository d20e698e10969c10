package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/vorg/internal/model"
)

// ThumbReadyMsg reports a finished thumbnail extraction. ItemID identifies
// the video the result belongs to; results for items no longer in the
// working set are discarded when the message arrives.
type ThumbReadyMsg struct {
	ItemID string
	Path   string
	Err    error
}

// thumbCmd spawns one background extraction for a video. There is no
// cancellation; a late result for a committed item is simply dropped when
// the message arrives.
func (a App) thumbCmd(itemID, videoPath string) tea.Cmd {
	gen := a.thumbs
	return func() tea.Msg {
		path, err := gen.Generate(context.Background(), videoPath)
		return ThumbReadyMsg{ItemID: itemID, Path: path, Err: err}
	}
}

// pendingThumbCmds returns one command per video still missing a thumbnail.
func (a App) pendingThumbCmds() tea.Cmd {
	if a.thumbs == nil {
		return nil
	}
	var cmds []tea.Cmd
	for i := range a.videos {
		v := &a.videos[i]
		if v.ThumbStatus == model.ThumbPending && v.ThumbPath == "" {
			cmds = append(cmds, a.thumbCmd(v.ID, v.Path))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
