package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/billed/internal/client/navigator"
	"github.com/dmitrijs2005/billed/internal/client/session"
	"github.com/dmitrijs2005/billed/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and creates an
// employee account. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.store.Register(ctx, email, password, session.TypeEmployee); err != nil {
		a.logger.Error(ctx, "registration failed", "email", email, "error", err)
		printlnFn("Registration failed:", describe(err))
		return err
	}

	printlnFn("Success! You can now log in")
	return nil
}

// Login prompts for credentials, stores the resulting session and opens the
// bills page. Only employee accounts may use this client.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.store.Login(ctx, email, password)
	if err != nil {
		a.logger.Error(ctx, "login failed", "email", email, "error", err)
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Login unsuccessful: wrong email or password")
		} else {
			printlnFn("Login unsuccessful:", describe(err))
		}
		return err
	}

	if !s.IsEmployee() {
		a.store.SetToken("")
		printlnFn("Only employee accounts can use this client")
		return fmt.Errorf("%w: account type %q", common.ErrUnauthorized, s.Type)
	}

	if err := session.Save(a.config.SessionFile, *s); err != nil {
		a.logger.Warn(ctx, "session not persisted", "path", a.config.SessionFile, "error", err)
	}

	a.startSession(*s)
	a.logger.Info(ctx, "logged in", "email", s.Email)
	a.Navigate(navigator.PageBills)
	return nil
}

// Logout forgets the session, both in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := session.Clear(a.config.SessionFile); err != nil {
		return err
	}
	a.endSession()
	a.Navigate(navigator.PageLogin)
	return nil
}
