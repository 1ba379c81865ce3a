// Package console is the line-oriented user interface of the studio.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/core/services"
)

// ErrQuit is returned by Exec when the user asks to leave.
var ErrQuit = errors.New("console: quit")

var errNotLoggedIn = errors.New("not logged in")

type command struct {
	usage   string
	help    string
	session bool
	run     func(ctx context.Context, args []string) error
}

// Handler routes command lines to the studio.
type Handler struct {
	studio   *services.Studio
	out      io.Writer
	commands map[string]command

	bandForm  *services.Form[services.BandDraft]
	albumForm *services.Form[services.AlbumDraft]
	songForm  *services.Form[services.SongDraft]
	pending   <-chan error
}

// NewHandler initializes the console adapter and sets up routes.
func NewHandler(studio *services.Studio, out io.Writer) *Handler {
	h := &Handler{studio: studio, out: out}
	h.routes()
	return h
}

// routes defines the mapping between command words and methods.
func (h *Handler) routes() {
	h.commands = map[string]command{
		"login":   {usage: "login <username> <password>", help: "log in, registering on first use", run: h.login},
		"logout":  {usage: "logout", help: "stop playback and log out", session: true, run: h.logout},
		"whoami":  {usage: "whoami", help: "show the current account", run: h.whoami},
		"bands":   {usage: "bands", help: "list your bands", session: true, run: h.bands},
		"show":    {usage: "show <band-id> [album-id]", help: "show a band or one of its albums", session: true, run: h.show},
		"new":     {usage: "new band | new album <band-id> | new song <band-id> <album-id>", help: "open a creation form", session: true, run: h.newForm},
		"set":     {usage: "set <field> <value>", help: "edit a field of the open form", session: true, run: h.set},
		"suggest": {usage: "suggest [mood]", help: "ask for a band idea or five song titles", session: true, run: h.suggest},
		"pick":    {usage: "pick <n>", help: "use suggested song title n", session: true, run: h.pick},
		"form":    {usage: "form", help: "show the open form", session: true, run: h.form},
		"dismiss": {usage: "dismiss", help: "clear the form notice", session: true, run: h.dismiss},
		"save":    {usage: "save", help: "save the open form", session: true, run: h.save},
		"cancel":  {usage: "cancel", help: "discard the open form", session: true, run: h.cancel},
		"delete":  {usage: "delete <band-id> yes", help: "delete a band and everything in it", session: true, run: h.delete},
		"play":    {usage: "play <song-id>", help: "play a song from the start", session: true, run: h.play},
		"toggle":  {usage: "toggle", help: "pause or resume", session: true, run: h.toggle},
		"status":  {usage: "status", help: "show the transport bar", run: h.status},
		"help":    {usage: "help", help: "list commands", run: h.help},
		"quit":    {usage: "quit", help: "leave the studio", run: h.quit},
	}
}

// Exec runs one command line. Command errors are printed and never returned;
// only ErrQuit ends the session.
func (h *Handler) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, ok := h.commands[strings.ToLower(fields[0])]
	if !ok {
		h.printf("error: unknown command %q (try help)\n", fields[0])
		return nil
	}
	if cmd.session {
		if _, ok := h.studio.Current(); !ok {
			h.printf("error: %s\n", errNotLoggedIn)
			return nil
		}
	}

	err := cmd.run(ctx, fields[1:])
	if errors.Is(err, ErrQuit) {
		return ErrQuit
	}
	if err != nil {
		h.printf("error: %s\n", describe(err))
	}
	return nil
}

// Run reads commands from in until EOF, quit or ctx is done.
func (h *Handler) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	h.printf("> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if err := h.Exec(ctx, scanner.Text()); errors.Is(err, ErrQuit) {
			h.closeForms()
			return nil
		}
		h.printf("> ")
	}
	h.closeForms()
	return scanner.Err()
}

func (h *Handler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}

func (h *Handler) help(ctx context.Context, args []string) error {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := h.commands[name]
		h.printf("  %-60s %s\n", cmd.usage, cmd.help)
	}
	return nil
}

func (h *Handler) quit(ctx context.Context, args []string) error {
	return ErrQuit
}

func usage(cmd string) error {
	return fmt.Errorf("usage: %s", cmd)
}

// describe turns an error chain into the message shown to the user.
func describe(err error) string {
	var notFound domain.NotFoundError
	switch {
	case errors.Is(err, domain.ErrWrongPassword):
		return "wrong password"
	case errors.Is(err, domain.ErrGatewayUnavailable):
		return services.NoticeSuggestionsUnavailable
	case errors.Is(err, domain.ErrMissingField):
		return "required field missing"
	case errors.As(err, &notFound):
		return notFound.Error()
	case errors.Is(err, services.ErrFormBusy):
		return "a suggestion is already in progress"
	case errors.Is(err, services.ErrFormClosed):
		return "no open form"
	case errors.Is(err, services.ErrQueueFull):
		return "too many suggestions in progress, try again"
	default:
		return err.Error()
	}
}
