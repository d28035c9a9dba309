package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command. It stores a bearer token that is
// sent with every request to the task service.
type LoginCmd struct {
	token string
}

// SetToken sets the token to store (for testing).
func (c *LoginCmd) SetToken(token string) {
	c.token = token
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Store a bearer token" }
func (c *LoginCmd) Usage() string      { return "taskdeck login [common flags] --token <token>" }
func (c *LoginCmd) NeedsService() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return unexpectedArg(args[0], errOut)
	}

	token := strings.TrimSpace(c.token)
	if token == "" {
		fmt.Fprintln(errOut, "error: --token is required")
		return exitcode.UserError
	}

	tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if err := cfg.SaveToken(tok); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
