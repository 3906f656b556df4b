package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jrsteele09/panel-console/admins"
	"github.com/jrsteele09/panel-console/apierrors"
	"github.com/jrsteele09/panel-console/auth"
	"github.com/jrsteele09/panel-console/client"
	"github.com/jrsteele09/panel-console/inbounds"
	"github.com/jrsteele09/panel-console/internal/config"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
	"github.com/jrsteele09/panel-console/nodes"
	"github.com/jrsteele09/panel-console/templates"
	"github.com/jrsteele09/panel-console/tokens/filestore"
	"github.com/jrsteele09/panel-console/users"
	"golang.org/x/term"
)

const reloginHint = "Session expired. Run `panelctl login` to sign in again."

// sessionMode says what a command needs from the stored credentials.
type sessionMode int

const (
	sessionNone     sessionMode = iota // no identity check
	sessionOptional                    // check, but run either way
	sessionRequired                    // check and refuse when anonymous
)

type handler func(ctx context.Context, a *app, args []string) error

type command struct {
	summary string
	action  string
	session sessionMode
	run     handler
	sub     map[string]command
}

// app holds everything a command can reach. One app serves one invocation.
type app struct {
	cfg    config.Config
	stdin  *bufio.Reader
	term   *os.File
	stdout io.Writer
	stderr io.Writer

	tokens  *filestore.Store
	client  *client.Client
	authAPI *auth.API
	store   *auth.Store

	users     *users.Service
	nodes     *nodes.Service
	inbounds  *inbounds.Service
	admins    *admins.Service
	templates *templates.Service

	banner   func(w io.Writer, appname string)
	commands map[string]command
	current  string
}

func newApp(cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	baseURL, err := cfg.GetBaseURL()
	if err != nil {
		return nil, err
	}

	store := filestore.New(cfg.GetTokenFile(), filestore.WithPassphrase(cfg.GetTokenPassphrase()))
	c, err := client.New(baseURL, store, client.WithEnv(cfg.GetEnv()))
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		stdin:     bufio.NewReader(stdin),
		stdout:    stdout,
		stderr:    stderr,
		tokens:    store,
		client:    c,
		authAPI:   auth.NewAPI(c),
		users:     users.NewService(c),
		nodes:     nodes.NewService(c),
		inbounds:  inbounds.NewService(c),
		admins:    admins.NewService(c),
		templates: templates.NewService(c),
		banner:    displayAppname,
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.term = f
	}
	a.store = auth.NewStore(a.authAPI, store)
	a.commands = commandTable()

	c.OnUnauthorized(a.store.HandleUnauthorized)
	c.OnUnauthorized(func(client.UnauthorizedEvent) {
		if a.current != "login" {
			fmt.Fprintln(a.stderr, reloginHint)
		}
	})
	return a, nil
}

// execute runs one command line and reports any failure on stderr.
func (a *app) execute(ctx context.Context, args []string) error {
	cmd, name, rest, err := a.lookup(args)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		a.usage()
		return err
	}
	a.current = name

	if cmd.session != sessionNone {
		session := a.store.FetchSession(ctx)
		if cmd.session == sessionRequired && !session.IsAuthenticated {
			err := panelerrors.Wrapf(panelerrors.ErrNotAuthenticated, "%s: run `panelctl login` first", name)
			fmt.Fprintln(a.stderr, err)
			return err
		}
	}

	if err := cmd.run(ctx, a, rest); err != nil {
		fmt.Fprintln(a.stderr, apierrors.HandleAPIError(err, cmd.action+" failed"))
		return err
	}
	return nil
}

func (a *app) lookup(args []string) (command, string, []string, error) {
	if len(args) == 0 {
		return command{}, "", nil, panelerrors.Wrapf(panelerrors.ErrMissingArgument, "no command given")
	}
	cmd, ok := a.commands[args[0]]
	if !ok {
		return command{}, "", nil, panelerrors.Wrapf(panelerrors.ErrUnknownCommand, "%q", args[0])
	}
	if cmd.sub == nil {
		return cmd, args[0], args[1:], nil
	}

	if len(args) < 2 {
		return command{}, "", nil, panelerrors.Wrapf(panelerrors.ErrMissingArgument, "%s needs a sub-command (%s)", args[0], strings.Join(sortedKeys(cmd.sub), ", "))
	}
	sub, ok := cmd.sub[args[1]]
	if !ok {
		return command{}, "", nil, panelerrors.Wrapf(panelerrors.ErrUnknownCommand, "%q", args[0]+" "+args[1])
	}
	return sub, args[0] + " " + args[1], args[2:], nil
}

func (a *app) usage() {
	fmt.Fprintln(a.stderr, "usage: panelctl <command> [arguments]")
	for _, name := range sortedKeys(a.commands) {
		cmd := a.commands[name]
		if cmd.sub == nil {
			fmt.Fprintf(a.stderr, "  %-28s %s\n", name, cmd.summary)
			continue
		}
		for _, subName := range sortedKeys(cmd.sub) {
			fmt.Fprintf(a.stderr, "  %-28s %s\n", name+" "+subName, cmd.sub[subName].summary)
		}
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.stderr, label)
	line, err := a.stdin.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword reads without echo when stdin is a terminal.
func (a *app) readPassword() (string, error) {
	if a.term == nil {
		return a.prompt("Password: ")
	}
	fmt.Fprint(a.stderr, "Password: ")
	raw, err := term.ReadPassword(int(a.term.Fd()))
	fmt.Fprintln(a.stderr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func sortedKeys(m map[string]command) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
