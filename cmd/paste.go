package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/desertthunder/pbin/internal/formatter"
	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/server"
	"github.com/desertthunder/pbin/internal/shared"
	"github.com/desertthunder/pbin/internal/store"
	"github.com/desertthunder/pbin/internal/tasks"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// PasteCreate creates a paste from --title and one of --content, --file or stdin.
func (r *Runner) PasteCreate(ctx context.Context, cmd *cli.Command) error {
	content, _, err := r.readContent(cmd, true)
	if err != nil {
		return err
	}

	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}

	var p models.Paste
	if id := cmd.String("id"); id != "" {
		if !server.NewValidator().ValidID(id) {
			return fmt.Errorf("%w: %q must be 1-%d characters of letters, digits, '-' or '_'",
				shared.ErrInvalidID, id, server.MaxIDLength)
		}
		p, err = s.CreateWithID(ctx, id, cmd.String("title"), content)
	} else {
		editor := tasks.NewEditor(s)
		editor.Title = cmd.String("title")
		editor.Content = content
		p, err = editor.Save(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to create paste: %w", err)
	}

	r.logger.Debug("paste created", "id", p.ID)
	return r.writeSaved(cmd, "Created", p)
}

// PasteEdit updates a paste through the editor: current values are pre-filled and only the
// flags that were set replace them.
func (r *Runner) PasteEdit(ctx context.Context, cmd *cli.Command) error {
	id, err := pasteRef(cmd)
	if err != nil {
		return err
	}

	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}

	editor := tasks.NewEditor(s)
	if err := editor.Edit(id); err != nil {
		return err
	}

	if cmd.IsSet("title") {
		editor.Title = cmd.String("title")
	}
	content, ok, err := r.readContent(cmd, false)
	if err != nil {
		return err
	}
	if ok {
		editor.Content = content
	}

	p, err := editor.Save(ctx)
	if err != nil {
		return fmt.Errorf("failed to update paste: %w", err)
	}

	r.logger.Debug("paste updated", "id", p.ID)
	return r.writeSaved(cmd, "Updated", p)
}

// PasteList prints every paste in creation order.
func (r *Runner) PasteList(ctx context.Context, cmd *cli.Command) error {
	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}
	return r.writePastes(cmd, "Pastes", s.List())
}

// PasteSearch prints the pastes whose title contains the query.
func (r *Runner) PasteSearch(ctx context.Context, cmd *cli.Command) error {
	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}

	listing := r.listing(s)
	listing.SetQuery(cmd.StringArg("query"))
	return r.writePastes(cmd, fmt.Sprintf("Pastes matching %q", listing.Query()), listing.Visible())
}

// PasteShow prints a single paste. Without an argument the paste is picked with a fuzzy finder.
func (r *Runner) PasteShow(ctx context.Context, cmd *cli.Command) error {
	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}

	var p models.Paste
	if cmd.StringArg("paste") == "" {
		picked, ok, err := r.pick(s)
		if err != nil || !ok {
			return err
		}
		p = picked
	} else {
		id, err := pasteRef(cmd)
		if err != nil {
			return err
		}
		found, ok := s.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", shared.ErrPasteNotFound, id)
		}
		p = found
	}

	switch {
	case cmd.Bool("raw"):
		return r.writePlain("%s", p.Content)
	case cmd.String("format") != "":
		format, err := formatter.ParseFormat(cmd.String("format"))
		if err != nil {
			return err
		}
		data, err := formatter.ExportPaste(p, format)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	case cmd.Bool("json"):
		return r.writeJSON(p, cmd.Bool("pretty"))
	}

	r.writePlainHeader(formatter.DisplayTitle(p))
	r.writePlain("ID:      %s\n", p.ID)
	r.writePlain("Created: %s\n", formatter.FormatDate(p.CreatedAt))
	r.writePlain("Share:   %s\n", shared.ShareURL(r.origin(), p.ID))
	return r.writePlainln("%s", p.Content)
}

// PasteCopy copies a paste's content to the clipboard.
func (r *Runner) PasteCopy(ctx context.Context, cmd *cli.Command) error {
	id, err := pasteRef(cmd)
	if err != nil {
		return err
	}

	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}
	return r.notify(<-r.listing(s).CopyContent(ctx, id))
}

// PasteShare copies a paste's share link to the clipboard and optionally opens it.
//
// The link is printed either way; a clipboard failure is only logged.
func (r *Runner) PasteShare(ctx context.Context, cmd *cli.Command) error {
	id, err := pasteRef(cmd)
	if err != nil {
		return err
	}

	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}

	listing := r.listing(s)
	n := <-listing.Share(ctx, id)
	if errors.Is(n.Err, shared.ErrPasteNotFound) {
		return r.notify(n)
	}

	link := listing.ShareLink(id)
	r.writePlain("%s\n", link)
	if cmd.Bool("open") {
		if err := r.openURL(link); err != nil {
			return err
		}
	}
	if n.Level == tasks.LevelError {
		r.logger.Warn(n.Message, "error", n.Err)
		return nil
	}
	return r.notify(n)
}

// PasteDelete deletes a paste.
func (r *Runner) PasteDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := pasteRef(cmd)
	if err != nil {
		return err
	}

	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}

	removed, err := r.listing(s).Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete paste: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: %s", shared.ErrPasteNotFound, id)
	}
	return r.writePlain("✓ Deleted paste %s\n", id)
}

// pasteRef reads the paste argument, accepting an id, a share link or an edit link.
func pasteRef(cmd *cli.Command) (string, error) {
	ref := cmd.StringArg("paste")
	if ref == "" {
		return "", fmt.Errorf("%w: paste id or link", shared.ErrMissingArgument)
	}
	return shared.ParseLink(ref)
}

// readContent resolves paste content from --content, --file ("-" for stdin) or, when
// fallback is set and stdin is not a terminal, stdin. ok reports whether any source was used.
func (r *Runner) readContent(cmd *cli.Command, fallback bool) (content string, ok bool, err error) {
	if cmd.IsSet("content") && cmd.IsSet("file") {
		return "", false, fmt.Errorf("%w: cannot specify both --content and --file", shared.ErrInvalidArgument)
	}

	switch {
	case cmd.IsSet("content"):
		return cmd.String("content"), true, nil
	case cmd.IsSet("file") && cmd.String("file") != "-":
		data, err := os.ReadFile(cmd.String("file"))
		if err != nil {
			return "", false, fmt.Errorf("failed to read content file: %w", err)
		}
		return string(data), true, nil
	case cmd.IsSet("file"), fallback && !isTerminal(r.input):
		data, err := io.ReadAll(r.input)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}
	return "", false, nil
}

func isTerminal(rd io.Reader) bool {
	f, ok := rd.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// pick lets the user choose a paste with a fuzzy finder. ok is false when the collection is
// empty or the finder was aborted.
func (r *Runner) pick(s *store.Store) (models.Paste, bool, error) {
	pastes := s.List()
	if len(pastes) == 0 {
		return models.Paste{}, false, r.writePlain("%s\n", tasks.MsgNoDataFound)
	}

	idx, err := fuzzyfinder.Find(
		pastes,
		func(i int) string {
			return formatter.DisplayTitle(pastes[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			p := pastes[i]
			return fmt.Sprintf("%s\n%s\n\n%s", formatter.DisplayTitle(p), formatter.FormatDate(p.CreatedAt), p.Content)
		}),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return models.Paste{}, false, nil
	}
	if err != nil {
		return models.Paste{}, false, fmt.Errorf("failed to pick paste: %w", err)
	}
	return pastes[idx], true, nil
}

// notify prints a listing notification and turns failures into an error.
func (r *Runner) notify(n tasks.Notification) error {
	if n.Level == tasks.LevelError {
		return fmt.Errorf("%s: %w", n.Message, n.Err)
	}
	return r.writePlain("✓ %s\n", n.Message)
}

func (r *Runner) writeSaved(cmd *cli.Command, verb string, p models.Paste) error {
	if cmd.Bool("json") {
		return r.writeJSON(p, cmd.Bool("pretty"))
	}

	r.writePlain("✓ %s paste %s\n", verb, p.ID)
	r.writePlain("  Title: %s\n", formatter.DisplayTitle(p))
	return r.writePlain("  Share: %s\n", shared.ShareURL(r.origin(), p.ID))
}

func (r *Runner) writePastes(cmd *cli.Command, title string, pastes []models.Paste) error {
	if cmd.Bool("json") {
		if pastes == nil {
			pastes = []models.Paste{}
		}
		return r.writeJSON(pastes, cmd.Bool("pretty"))
	}

	if len(pastes) == 0 {
		return r.writePlain("%s\n", tasks.MsgNoDataFound)
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d)", title, len(pastes)))
	for _, p := range pastes {
		r.writePlain("%s  %-18s  %s\n", p.ID, formatter.FormatDate(p.CreatedAt), formatter.DisplayTitle(p))
	}
	return nil
}
