// Package cli is the interactive terminal front end for FasalMitra. It
// drives the session, chat thread and season commands through a small REPL.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"fasalmitra/internal/client/api"
	"fasalmitra/internal/client/chat"
	"fasalmitra/internal/client/config"
	"fasalmitra/internal/client/credstore"
	"fasalmitra/internal/client/session"
)

type App struct {
	config  *config.Config
	api     *api.Client
	session *session.Session
	thread  *chat.Thread
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	store, err := credstore.New()
	if err != nil {
		return nil, err
	}

	apiClient := api.New(c.BaseURL, store)

	return &App{
		config:  c,
		api:     apiClient,
		session: session.New(apiClient, store),
		thread:  chat.NewThread(apiClient),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores any stored session and hands control to the REPL until the
// user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	a.session.Restore(ctx)
	if a.isLoggedIn() {
		// Pick up the transcript so "history" and "send" continue the
		// farmer's latest season.
		_ = a.thread.Hydrate(ctx)
	}
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) status() string {
	if user := a.session.User(); user != nil {
		return user.Email
	}
	return "not logged in"
}
