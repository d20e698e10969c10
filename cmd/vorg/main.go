package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nikbrunner/vorg/internal/discover"
	"github.com/nikbrunner/vorg/internal/organize"
	"github.com/nikbrunner/vorg/internal/storage"
	"github.com/nikbrunner/vorg/internal/store"
	"github.com/nikbrunner/vorg/internal/thumbs"
	"github.com/nikbrunner/vorg/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "scan":
			runScan()
			return
		case "tags":
			runTags()
			return
		case "tag":
			if len(os.Args) < 4 || os.Args[2] != "add" {
				fmt.Fprintf(os.Stderr, "Usage: vorg tag add <name>\n")
				os.Exit(1)
			}
			runTagAdd(os.Args[3])
			return
		case "source":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: vorg source add <dir> | vorg source list\n")
				os.Exit(1)
			}
			switch os.Args[2] {
			case "add":
				if len(os.Args) < 4 {
					fmt.Fprintf(os.Stderr, "Usage: vorg source add <dir>\n")
					os.Exit(1)
				}
				runSourceAdd(os.Args[3])
			case "list":
				runSourceList()
			default:
				fmt.Fprintf(os.Stderr, "Usage: vorg source add <dir> | vorg source list\n")
				os.Exit(1)
			}
			return
		case "dest":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: vorg dest <dir>\n")
				os.Exit(1)
			}
			runDest(os.Args[2])
			return
		case "thumbs":
			runThumbs()
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command %q (try 'vorg help')\n", os.Args[1])
			os.Exit(1)
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `vorg - vim-style video organizer

Usage:
  vorg                  Open interactive TUI
  vorg scan             List discovered videos (newest first)
  vorg tags             Print tags in ranked order with usage counts
  vorg tag add <name>   Add a tag to the vocabulary
  vorg source add <dir> Add a source folder
  vorg source list      List configured source folders
  vorg dest <dir>       Set the destination folder
  vorg thumbs           Pre-generate thumbnails for discovered videos
  vorg help             Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    tab/h/l     Switch between videos and tags

  Actions:
    space       Toggle tag on current video
    enter       Move current video into its tag folder
    a           Add a new tag
    /           Filter tags
    Y           Copy video path to clipboard
    r           Rescan source folders

  Other:
    ?           Show help overlay
    q           Quit

Data Storage:
  ~/.config/vorg/config.json (or config.db)
`
	fmt.Print(help)
}

// openStore loads the config from whichever backend is present.
func openStore(logger *log.Logger) *store.Store {
	backend, err := storage.OpenStorage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening config: %v\n", err)
		os.Exit(1)
	}
	return store.Open(backend, logger)
}

// fileLogger logs to the cache dir so TUI output stays clean. Falls back to
// stderr if the log file cannot be opened.
func fileLogger() *log.Logger {
	path, err := storage.DefaultLogPath()
	if err != nil {
		return log.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return log.Default()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return log.Default()
	}
	return log.NewWithOptions(f, log.Options{ReportTimestamp: true})
}

// runTUI runs the full interactive TUI.
func runTUI() {
	logger := fileLogger()
	st := openStore(logger)

	videos := discover.Videos(st.Config().SourceFolders)

	thumbsDir, err := storage.DefaultThumbsDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting cache dir: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(tui.AppParams{
		Store:  st,
		Mover:  organize.New(st),
		Thumbs: thumbs.New(thumbsDir, st, logger),
		Videos: videos,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runScan prints the discovered videos, newest first.
func runScan() {
	st := openStore(nil)
	videos := discover.Videos(st.Config().SourceFolders)
	if len(videos) == 0 {
		fmt.Println("No videos found")
		return
	}
	for _, v := range videos {
		fmt.Println(v.Path)
	}
}

// runTags prints the tag vocabulary in ranked order.
func runTags() {
	st := openStore(nil)
	for _, tag := range st.SortedTags() {
		fmt.Printf("%-24s %d\n", tag, st.Usage(tag))
	}
}

// runTagAdd adds a tag to the vocabulary.
func runTagAdd(name string) {
	st := openStore(nil)
	if !st.AddTag(name) {
		fmt.Printf("Tag %q already exists\n", name)
		return
	}
	fmt.Printf("Added tag %q\n", name)
}

// runSourceAdd adds a source folder to the config.
func runSourceAdd(dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}
	st := openStore(nil)
	if !st.AddSourceFolder(abs) {
		fmt.Printf("Source folder %s already configured\n", abs)
		return
	}
	fmt.Printf("Added source folder %s\n", abs)
}

// runSourceList prints the configured source folders.
func runSourceList() {
	st := openStore(nil)
	folders := st.Config().SourceFolders
	if len(folders) == 0 {
		fmt.Println("No source folders configured")
		return
	}
	for _, f := range folders {
		fmt.Println(f)
	}
}

// runDest sets the destination folder.
func runDest(dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}
	st := openStore(nil)
	st.SetDestinationFolder(abs)
	fmt.Printf("Destination folder set to %s\n", abs)
}

// runThumbs pre-generates thumbnails for every discovered video.
func runThumbs() {
	st := openStore(nil)
	videos := discover.Videos(st.Config().SourceFolders)

	thumbsDir, err := storage.DefaultThumbsDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting cache dir: %v\n", err)
		os.Exit(1)
	}
	gen := thumbs.New(thumbsDir, st, nil)

	generated := 0
	failed := 0
	for _, v := range videos {
		if _, err := gen.Generate(context.Background(), v.Path); err != nil {
			failed++
			continue
		}
		generated++
	}
	fmt.Printf("Thumbnails: %d ok", generated)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()
}
