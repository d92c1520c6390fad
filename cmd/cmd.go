// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/pbin/internal/formatter"
	"github.com/desertthunder/pbin/internal/tasks"
	"github.com/urfave/cli/v3"
)

// newApp builds the root pbin command around r.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "pbin",
		Usage:   "Create, edit, search and share text pastes",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, initialize the database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// pasteCommand handles single paste operations.
func pasteCommand(r *Runner) *cli.Command {
	// Flag values live on the flag, so every command gets its own set.
	jsonFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		}
	}

	contentFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "Paste title",
			},
			&cli.StringFlag{
				Name:  "content",
				Usage: "Paste content",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read paste content from a file",
			},
		}
	}

	return &cli.Command{
		Name:    "paste",
		Aliases: []string{"p"},
		Usage:   "Create, edit and inspect pastes",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a paste from flags, a file or stdin",
				Flags: append(append([]cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "Use this identifier instead of generating one",
					},
				}, contentFlags()...), jsonFlags()...),
				Action: r.PasteCreate,
			},
			{
				Name:      "edit",
				Usage:     "Update a paste's title or content; unset flags keep current values",
				Arguments: []cli.Argument{&cli.StringArg{Name: "paste"}},
				Flags:     append(append([]cli.Flag{}, contentFlags()...), jsonFlags()...),
				Action:    r.PasteEdit,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List pastes in creation order",
				Flags:   jsonFlags(),
				Action:  r.PasteList,
			},
			{
				Name:      "search",
				Usage:     "List pastes whose title contains a query (case-insensitive)",
				Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
				Flags:     jsonFlags(),
				Action:    r.PasteSearch,
			},
			{
				Name:      "show",
				Usage:     "Print a paste; pick one interactively when no id is given",
				Arguments: []cli.Argument{&cli.StringArg{Name: "paste"}},
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "Print only the content",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Render with an export format (json, yaml, csv, markdown, txt)",
					},
				}, jsonFlags()...),
				Action: r.PasteShow,
			},
			{
				Name:      "copy",
				Usage:     "Copy a paste's content to the clipboard",
				Arguments: []cli.Argument{&cli.StringArg{Name: "paste"}},
				Action:    r.PasteCopy,
			},
			{
				Name:      "share",
				Usage:     "Copy a paste's share link to the clipboard",
				Arguments: []cli.Argument{&cli.StringArg{Name: "paste"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the share link in the default browser",
					},
				},
				Action: r.PasteShare,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a paste",
				Arguments: []cli.Argument{&cli.StringArg{Name: "paste"}},
				Action:    r.PasteDelete,
			},
		},
	}
}

// exportCommand handles collection exports.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export every paste to a single file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format (json, yaml, csv, markdown, txt)",
				Value: string(formatter.FormatJSON),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (\"-\" for stdout, default pastes.{ext})",
			},
		},
		Action: r.Export,
		Commands: []*cli.Command{
			{
				Name:  "all",
				Usage: "Export each paste to its own file with a manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (json, yaml, csv, markdown, txt)",
						Value: string(formatter.FormatJSON),
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Output directory (default pastes_export_{timestamp})",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of concurrent workers",
						Value:   tasks.DefaultExportWorkers,
					},
				},
				Action: r.ExportAll,
			},
		},
	}
}

// importCommand handles collection imports.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import pastes from a JSON or YAML export",
		Arguments: []cli.Argument{&cli.StringArg{Name: "file"}},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Input format (json, yaml); detected from the file extension when omitted",
			},
		},
		Action: r.Import,
	}
}

// serveCommand runs the HTTP server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the paste API and share pages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides config)",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Origin used for share and edit links (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// apiCommand handles direct calls to a running pbin server
func apiCommand(r *Runner) *cli.Command {
	urlFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "url",
			Usage: "Server origin (default: server.base_url from config)",
		}
	}
	compactFlag := func() cli.Flag {
		return &cli.BoolFlag{
			Name:  "compact",
			Usage: "Print JSON without indentation",
		}
	}
	dataFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:     "data",
			Aliases:  []string{"d"},
			Usage:    "JSON body to send",
			Required: true,
		}
	}

	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to a running pbin server",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET, prints the JSON response",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags:     []cli.Flag{urlFlag(), compactFlag()},
				Action:    r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "Direct POST with JSON body",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags:     []cli.Flag{urlFlag(), compactFlag(), dataFlag()},
				Action:    r.APIPost,
			},
			{
				Name:      "put",
				Usage:     "Direct PUT with JSON body",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags:     []cli.Flag{urlFlag(), compactFlag(), dataFlag()},
				Action:    r.APIPut,
			},
			{
				Name:      "delete",
				Usage:     "Direct DELETE",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags:     []cli.Flag{urlFlag(), compactFlag()},
				Action:    r.APIDelete,
			},
			{
				Name:   "health",
				Usage:  "Check that the server is up",
				Flags:  []cli.Flag{urlFlag()},
				Action: r.APIHealth,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive paste management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive paste editor and listing",
		Action:  r.TUI,
	}
}
