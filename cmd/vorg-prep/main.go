package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/vorg/internal/prep"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	app := &cli.App{
		Name:  "vorg-prep",
		Usage: "prepare image datasets: sequential renaming and batch resizing",
		Commands: []*cli.Command{
			{
				Name:  "rename",
				Usage: "rename images from a list file to 1.ext, 2.ext, ... with empty caption sidecars",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "list",
						Usage:    "text file with one image path per line",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "target directory (defaults to the list file's directory)",
					},
					&cli.BoolFlag{
						Name:  "by-date",
						Usage: "order by capture time (EXIF, falling back to file mtime) instead of list order",
					},
				},
				Action: func(c *cli.Context) error {
					res, err := prep.RenameFromList(prep.RenameOptions{
						ListPath:  c.String("list"),
						TargetDir: c.String("dir"),
						ByDate:    c.Bool("by-date"),
						Logger:    logger,
					})
					if err != nil {
						return err
					}
					fmt.Printf("Renamed %d images", res.Renamed)
					if res.Missing > 0 {
						fmt.Printf(" (%d missing)", res.Missing)
					}
					fmt.Println()
					return nil
				},
			},
			{
				Name:  "resize",
				Usage: "resize a numbered range of JPEGs so the longest edge matches --max",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "directory holding the numbered images",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "from",
						Usage:    "first image number",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "to",
						Usage:    "last image number (inclusive)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max",
						Usage: "longest edge in pixels",
						Value: 1024,
					},
				},
				Action: func(c *cli.Context) error {
					if c.Int("max") <= 0 {
						return fmt.Errorf("--max must be positive, got %d", c.Int("max"))
					}
					reports := prep.ResizeRange(c.String("dir"), c.Int("from"), c.Int("to"), c.Int("max"), logger)
					for _, r := range reports {
						fmt.Println(r)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}
