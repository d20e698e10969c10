package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/vorg/internal/discover"
	"github.com/nikbrunner/vorg/internal/model"
	"github.com/nikbrunner/vorg/internal/organize"
	"github.com/nikbrunner/vorg/internal/search"
	"github.com/nikbrunner/vorg/internal/store"
	"github.com/nikbrunner/vorg/internal/thumbs"
)

// Mode is the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTag
	ModeFilter
	ModeHelp
)

// Pane identifies which pane owns the cursor.
type Pane int

const (
	PaneVideos Pane = iota
	PaneTags
)

// App is the main bubbletea model for the video organizer.
type App struct {
	store  *store.Store
	mover  *organize.Mover
	thumbs *thumbs.Generator
	keys   KeyMap
	styles Styles

	videos []model.Video
	cursor int // selected video index
	pane   Pane

	// Tag pane state
	tagOrder  []string // ranked (and possibly filtered) tag display order
	tagCursor int

	// Filter and add-tag state
	filterInput textinput.Model
	filterQuery string
	tagInput    textinput.Model

	mode      Mode
	status    string
	statusErr bool

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store  *store.Store
	Mover  *organize.Mover
	Thumbs *thumbs.Generator
	Videos []model.Video // initial working set (discovered by the caller)
	Keys   *KeyMap       // optional, uses default if nil
	Styles *Styles       // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	tagInput := textinput.New()
	tagInput.Placeholder = "new tag"
	tagInput.CharLimit = 64
	tagInput.Width = 32

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter tags..."
	filterInput.CharLimit = 64
	filterInput.Width = 32

	app := App{
		store:       params.Store,
		mover:       params.Mover,
		thumbs:      params.Thumbs,
		keys:        keys,
		styles:      styles,
		videos:      params.Videos,
		tagInput:    tagInput,
		filterInput: filterInput,
		width:       80,
		height:      24,
	}

	app.refreshTags()
	return app
}

// refreshTags rebuilds the tag display order from the current ranking,
// applying the active filter query.
func (a *App) refreshTags() {
	ranked := a.store.SortedTags()
	if a.filterQuery != "" {
		ranked = search.FilterTagNames(ranked, a.filterQuery)
	}
	a.tagOrder = ranked
	if a.tagCursor >= len(a.tagOrder) {
		a.tagCursor = 0
	}
}

// current returns the video under the cursor, or nil when the set is empty.
func (a *App) current() *model.Video {
	if len(a.videos) == 0 || a.cursor >= len(a.videos) {
		return nil
	}
	return &a.videos[a.cursor]
}

// Cursor returns the current video cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// TagCursor returns the cursor position in the tag pane.
func (a App) TagCursor() int {
	return a.tagCursor
}

// Videos returns the current working set.
func (a App) Videos() []model.Video {
	return a.videos
}

// TagOrder returns the tag display order currently shown.
func (a App) TagOrder() []string {
	return a.tagOrder
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// ActivePane returns the pane owning the cursor.
func (a App) ActivePane() Pane {
	return a.pane
}

// Status returns the current status line text.
func (a App) Status() string {
	return a.status
}

// WithDimensions returns a copy of the app with fixed dimensions (tests).
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Init implements tea.Model. It kicks off background thumbnail extraction
// for every video without a cached thumbnail.
func (a App) Init() tea.Cmd {
	return a.pendingThumbCmds()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case ThumbReadyMsg:
		return a.updateThumbnail(msg), nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeAddTag:
			return a.updateAddTag(msg)
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeHelp:
			a.mode = ModeNormal
			return a, nil
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

// updateThumbnail applies a finished extraction to its video. Results for
// items that left the working set (committed while extraction ran) are
// dropped.
func (a App) updateThumbnail(msg ThumbReadyMsg) App {
	for i := range a.videos {
		if a.videos[i].ID != msg.ItemID {
			continue
		}
		if msg.Err != nil {
			a.videos[i].ThumbStatus = model.ThumbFailed
		} else {
			a.videos[i].ThumbStatus = model.ThumbReady
			a.videos[i].ThumbPath = msg.Path
		}
		break
	}
	return a
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			if a.pane == PaneVideos {
				a.cursor = 0
			} else {
				a.tagCursor = 0
			}
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.pane == PaneVideos {
			if len(a.videos) > 0 && a.cursor < len(a.videos)-1 {
				a.cursor++
			}
		} else if len(a.tagOrder) > 0 && a.tagCursor < len(a.tagOrder)-1 {
			a.tagCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.pane == PaneVideos {
			if a.cursor > 0 {
				a.cursor--
			}
		} else if a.tagCursor > 0 {
			a.tagCursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if a.pane == PaneVideos {
			if len(a.videos) > 0 {
				a.cursor = len(a.videos) - 1
			}
		} else if len(a.tagOrder) > 0 {
			a.tagCursor = len(a.tagOrder) - 1
		}

	case key.Matches(msg, a.keys.NextPane):
		if a.pane == PaneVideos {
			a.pane = PaneTags
		} else {
			a.pane = PaneVideos
		}

	case key.Matches(msg, a.keys.Toggle):
		a.toggleTag()

	case key.Matches(msg, a.keys.Commit):
		a.commit()

	case key.Matches(msg, a.keys.AddTag):
		a.mode = ModeAddTag
		a.tagInput.Reset()
		a.tagInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filterInput.SetValue(a.filterQuery)
		a.filterInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.YankPath):
		if v := a.current(); v != nil {
			if err := clipboard.WriteAll(v.Path); err != nil {
				a.setError("clipboard: " + err.Error())
			} else {
				a.setStatus("yanked " + v.Name())
			}
		}

	case key.Matches(msg, a.keys.Rescan):
		a.rescan()
		return a, a.pendingThumbCmds()

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

func (a App) updateAddTag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.tagInput.Blur()
		return a, nil

	case tea.KeyEnter:
		tag := strings.TrimSpace(a.tagInput.Value())
		if tag == "" {
			a.setError("tag cannot be empty")
			return a, nil
		}
		if !a.store.AddTag(tag) {
			a.setError(fmt.Sprintf("tag %q already exists", tag))
			return a, nil
		}
		a.setStatus(fmt.Sprintf("added tag %q", tag))
		a.mode = ModeNormal
		a.tagInput.Blur()
		a.refreshTags()
		return a, nil
	}

	var cmd tea.Cmd
	a.tagInput, cmd = a.tagInput.Update(msg)
	return a, cmd
}

func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.filterQuery = ""
		a.filterInput.Blur()
		a.refreshTags()
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.filterInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.filterQuery = a.filterInput.Value()
	a.refreshTags()
	return a, cmd
}

// toggleTag flips the highlighted tag on the current video.
func (a *App) toggleTag() {
	v := a.current()
	if v == nil || len(a.tagOrder) == 0 || a.tagCursor >= len(a.tagOrder) {
		return
	}
	v.ToggleTag(a.tagOrder[a.tagCursor])
	a.status = ""
}

// commit moves the current video into its tag-derived destination. Errors
// surface in the status line and abort only this action.
func (a *App) commit() {
	v := a.current()
	if v == nil {
		return
	}

	dest, err := a.mover.Move(v.Path, v.Selected())
	if err != nil {
		a.setError(err.Error())
		return
	}

	a.videos = append(a.videos[:a.cursor], a.videos[a.cursor+1:]...)
	if a.cursor >= len(a.videos) && a.cursor > 0 {
		a.cursor--
	}

	// Usage counts changed, so the ranking may have too
	a.refreshTags()
	a.setStatus("moved to " + dest)
}

// rescan re-enumerates the source folders, dropping the current working set
// and tag selections.
func (a *App) rescan() {
	a.videos = discover.Videos(a.store.Config().SourceFolders)
	a.cursor = 0
	a.setStatus(fmt.Sprintf("found %d videos", len(a.videos)))
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(msg string) {
	a.status = msg
	a.statusErr = true
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
