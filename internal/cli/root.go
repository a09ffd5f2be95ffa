// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli is the terminal client of Etagere.

Every command is a thin shell over the same services the web front-end uses.
The token lives in a file under the user config directory and is sent as a
bearer token. Notifications go to stderr, results to stdout (plain columns or
YAML with --output yaml). Destructive commands ask y/N unless --yes is given.

# Exit Codes

	0  success, or a confirmation the user declined
	1  any failure; the message is printed on stderr
*/
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/config"
	"github.com/taibuivan/etagere/internal/platform/confirm"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/session"
)

// # Output Formats

const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// # Messages

const (
	MessageNotLoggedIn = "Non connecté : lance « etagere login »"
	MessageLoginAgain  = "Reconnecte-toi avec « etagere login »"
	MessageCancelled   = "Annulé"
	MessageLoggedIn    = "Connecté"
	MessageLoggedOut   = "Déconnecté"
)

const cliName = "etagere-cli"

// Options are the process handles the commands run against. Nil fields fall
// back to the real terminal and the default token file.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Store keeps the token between invocations.
	Store *session.FileStore

	// ReadPassword reads a secret without echoing it.
	ReadPassword func(prompt string) (string, error)
}

// runner carries the state shared by every command of one invocation.
type runner struct {
	Options

	lines *bufio.Reader

	// Persistent flags.
	apiURL  string
	output  string
	verbose bool

	// Set by setup before any command runs.
	cfg    *config.Config
	client *apiclient.Client
	logger *slog.Logger
}

func newRunner(options Options) *runner {
	if options.In == nil {
		options.In = os.Stdin
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Err == nil {
		options.Err = os.Stderr
	}

	r := &runner{Options: options, lines: bufio.NewReader(options.In)}
	if r.ReadPassword == nil {
		r.ReadPassword = r.terminalPassword
	}
	return r
}

// NewRootCommand builds the etagere command tree.
func NewRootCommand(options Options) *cobra.Command {
	return newRunner(options).command()
}

// Execute runs the command line with args and returns the exit code.
//
// An unauthorized answer removes the stored token before the error is
// printed, so the next command starts from a clean "not logged in" state.
func Execute(ctx context.Context, args []string, options Options) int {
	r := newRunner(options)

	root := r.command()
	root.SetArgs(args)

	return r.exit(root.ExecuteContext(ctx))
}

func (r *runner) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "etagere",
		Short:         "Ta bibliothèque et tes manuscrits depuis le terminal",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return r.setup()
		},
	}

	root.SetIn(r.In)
	root.SetOut(r.Out)
	root.SetErr(r.Err)

	flags := root.PersistentFlags()
	flags.StringVar(&r.apiURL, "api", "", "adresse de l'API (remplace API_BASE_URL)")
	flags.StringVarP(&r.output, "output", "o", OutputText, "format de sortie : text ou yaml")
	flags.BoolVarP(&r.verbose, "verbose", "v", false, "journalise chaque appel à l'API")

	root.AddCommand(
		r.serveCommand(),
		r.loginCommand(),
		r.logoutCommand(),
		r.whoamiCommand(),
		r.searchCommand(),
		r.addCommand(),
		r.libraryCommand(),
		r.manuscriptsCommand(),
		r.chaptersCommand(),
		r.shareCommand(),
		r.usersCommand(),
	)
	return root
}

// setup loads the configuration and builds the API client and the logger.
func (r *runner) setup() error {
	if r.output != OutputText && r.output != OutputYAML {
		return fmt.Errorf("format de sortie inconnu %q (text ou yaml)", r.output)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if r.apiURL != "" {
		cfg.APIBaseURL = r.apiURL
	}

	client, err := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if r.verbose || cfg.Debug {
		level = slog.LevelDebug
	}

	r.cfg = cfg
	r.client = client
	r.logger = slog.New(slog.NewTextHandler(r.Err, &slog.HandlerOptions{Level: level})).
		With(slog.String(constants.FieldApp, cliName))
	return nil
}

// exit prints err and maps it to an exit code.
func (r *runner) exit(err error) int {
	switch {
	case err == nil:
		return 0

	case errors.Is(err, confirm.ErrCancelled):
		r.notify(MessageCancelled)
		return 0

	case apperr.IsUnauthorized(err):
		if store, storeErr := r.tokens(); storeErr == nil {
			if clearErr := store.Clear(); clearErr != nil {
				r.notify(clearErr.Error())
			}
		}
		r.notify(message(err))
		if message(err) != MessageNotLoggedIn {
			r.notify(MessageLoginAgain)
		}
		return 1

	default:
		r.notify(message(err))
		return 1
	}
}

// message returns the text the user should read for err. Errors that did not
// come from the application (bad flags, missing arguments) are shown as is.
func message(err error) string {
	if apperr.IsAppError(err) {
		return apperr.UserMessage(err, apperr.MessageInternal)
	}
	return err.Error()
}

// notify writes one status line on stderr.
func (r *runner) notify(text string) {
	fmt.Fprintln(r.Err, text)
}

// # Session

// tokens returns the token file, resolving the default location once.
func (r *runner) tokens() (*session.FileStore, error) {
	if r.Store != nil {
		return r.Store, nil
	}

	store, err := session.DefaultFileStore()
	if err != nil {
		return nil, err
	}
	r.Store = store
	return store, nil
}

// session loads the stored token. A missing or expired token is reported as
// UNAUTHORIZED without contacting the API.
func (r *runner) session() (session.Session, error) {
	store, err := r.tokens()
	if err != nil {
		return session.Session{}, err
	}

	token, err := store.Load()
	if err != nil {
		return session.Session{}, err
	}
	if token == "" {
		return session.Session{}, apperr.Unauthorized(MessageNotLoggedIn)
	}

	current, ok := session.FromToken(token, time.Now())
	if !ok {
		return session.Session{}, apperr.Unauthorized(apperr.MessageSession)
	}
	return current, nil
}

// # Prompts

// ask prints question and reads one trimmed line.
func (r *runner) ask(question string) (string, error) {
	fmt.Fprint(r.Err, question)
	return readLine(r.lines)
}

// confirm asks y/N unless yes is already set.
func (r *runner) confirm(yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	return confirm.Prompt(r.lines, r.Err, question)
}
