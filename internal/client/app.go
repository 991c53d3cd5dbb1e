package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/go-contact-book/internal/adapter"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/models"
)

const (
	AccessTokenEnv  = "CONTACT_BOOK_ACCESS_TOKEN"
	RefreshTokenEnv = "CONTACT_BOOK_REFRESH_TOKEN"
)

type command struct {
	usage string
	nargs int
	run   func(ctx context.Context, args []string) error
}

type App struct {
	server   adapter.ServerAdapter
	out      io.Writer
	commands map[string]command
	logger   *logger.Logger
}

// NewApp builds the client around server. tokens seeds the adapter so
// authenticated commands work across invocations.
func NewApp(server adapter.ServerAdapter, tokens models.TokenPair, out io.Writer, logger *logger.Logger) *App {
	server.SetTokens(tokens)

	a := &App{server: server, out: out, logger: logger}
	a.commands = map[string]command{
		"version":   {usage: "version", run: a.version},
		"signup":    {usage: "signup NAME EMAIL PASSWORD", nargs: 3, run: a.signUp},
		"confirm":   {usage: "confirm TOKEN", nargs: 1, run: a.confirm},
		"login":     {usage: "login EMAIL PASSWORD", nargs: 2, run: a.login},
		"refresh":   {usage: "refresh", run: a.refresh},
		"logout":    {usage: "logout", run: a.logout},
		"me":        {usage: "me", run: a.me},
		"contacts":  {usage: "contacts", run: a.contacts},
		"contact":   {usage: "contact ID", nargs: 1, run: a.contact},
		"delete":    {usage: "delete ID", nargs: 1, run: a.deleteContact},
		"birthdays": {usage: "birthdays", run: a.birthdays},
	}
	return a
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	if len(args)-1 != cmd.nargs {
		return fmt.Errorf("%w: usage: %s", ErrUsage, cmd.usage)
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	return cmd.run(ctx, args[1:])
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.server.Version(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, v)
	return err
}

func (a *App) signUp(ctx context.Context, args []string) error {
	user, err := a.server.SignUp(ctx, models.SignUpRequest{Name: args[0], Email: args[1], Password: args[2]})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "registered %s, check your inbox to confirm the address\n", user.Email)
	return err
}

func (a *App) confirm(ctx context.Context, args []string) error {
	msg, err := a.server.ConfirmEmail(ctx, args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, msg)
	return err
}

func (a *App) login(ctx context.Context, args []string) error {
	pair, err := a.server.Login(ctx, models.Credentials{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	return a.printTokens(pair)
}

func (a *App) refresh(ctx context.Context, _ []string) error {
	pair, err := a.server.Refresh(ctx)
	if err != nil {
		return err
	}
	return a.printTokens(pair)
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.server.Logout(ctx); err != nil {
		return err
	}
	return a.printTokens(models.TokenPair{})
}

func (a *App) me(ctx context.Context, _ []string) error {
	user, err := a.server.Me(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(user)
}

func (a *App) contacts(ctx context.Context, _ []string) error {
	contacts, err := a.server.ListContacts(ctx, models.ContactFilter{})
	if err != nil {
		return err
	}
	return a.printJSON(contacts)
}

func (a *App) contact(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	contact, err := a.server.GetContact(ctx, id)
	if err != nil {
		return err
	}
	return a.printJSON(contact)
}

func (a *App) deleteContact(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	contact, err := a.server.DeleteContact(ctx, id)
	if err != nil {
		return err
	}
	return a.printJSON(contact)
}

func (a *App) birthdays(ctx context.Context, _ []string) error {
	contacts, err := a.server.UpcomingBirthdays(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(contacts)
}

// printTokens prints the pair as shell assignments; a rotated pair must
// replace the old one or the next refresh revokes the session.
func (a *App) printTokens(pair models.TokenPair) error {
	_, err := fmt.Fprintf(a.out, "%s=%s\n%s=%s\n", AccessTokenEnv, pair.AccessToken, RefreshTokenEnv, pair.RefreshToken)
	return err
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: contact id must be a positive integer", ErrUsage)
	}
	return id, nil
}
