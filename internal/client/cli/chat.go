package cli

import (
	"context"
	"fmt"

	"fasalmitra/internal/client/chat"
)

func (a *App) Send(ctx context.Context, message string) error {
	if err := a.session.Guard(); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if message == "" {
		fmt.Fprintln(a.out, "Usage: send <message>")
		return nil
	}

	reply, err := a.thread.Send(ctx, message)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if reply != nil {
		fmt.Fprintf(a.out, "\nadvisor: %s\n", reply.Text)
	}
	return nil
}

func (a *App) History(ctx context.Context) error {
	if err := a.session.Guard(); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if err := a.thread.Hydrate(ctx); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	messages := a.thread.Messages()
	if len(messages) == 0 {
		fmt.Fprintln(a.out, "No conversations yet. Ask the advisor anything about your farm.")
		return nil
	}
	for _, m := range messages {
		label := "you"
		if m.Sender == chat.SenderBot {
			label = "advisor"
		}
		fmt.Fprintf(a.out, "[%s] %s: %s\n", m.Timestamp.Format("2006-01-02 15:04"), label, m.Text)
	}
	return nil
}
