package cli

import (
	"context"
	"fmt"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.session.Register(ctx, name, email, string(password)); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Welcome to FasalMitra, %s!\n", a.session.User().Name)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", a.session.User().Name)

	if err := a.thread.Hydrate(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not load chat history:", err.Error())
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.session.Guard(); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	user, err := a.api.Me(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	return nil
}
