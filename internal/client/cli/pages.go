package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/billed/internal/client/navigator"
	"github.com/dmitrijs2005/billed/internal/common"
)

// Navigate records the page transition; it is rendered by the REPL before
// the next prompt.
func (a *App) Navigate(page navigator.Page) {
	a.page = page
	a.pending = true
}

// Render draws the current page if a transition is pending.
func (a *App) Render(ctx context.Context) error {
	if !a.pending {
		return nil
	}
	a.pending = false

	switch a.page {
	case navigator.PageBills:
		return a.List(ctx)
	case navigator.PageLogin:
		printlnFn("Logged out")
	}
	return nil
}

func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		s = a.session.Email + " "
	}
	s += string(a.page)
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return fmt.Sprintf("(%s)", s)
}

// List shows the user's bills, newest first.
func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return common.ErrUnauthorized
	}
	a.page = navigator.PageBills

	views, err := a.bills.GetBills(ctx)
	if err != nil {
		a.logger.Error(ctx, "could not load bills", "error", err)
		printlnFn("Could not load bills:", describe(err))
		return err
	}
	a.views = views

	if len(views) == 0 {
		printlnFn("No bills yet: use 'new' to send one")
		return nil
	}
	return a.writeBills(a.out)
}

func (a *App) writeBills(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tNAME\tDATE\tAMOUNT\tSTATUS\tRECEIPT")
	for i, v := range a.views {
		receipt := "-"
		if v.FileURL != "" {
			receipt = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s €\t%s\t%s\n",
			i+1, v.Type, v.Name, v.DisplayDate, v.Amount.String(), v.DisplayStatus, receipt)
	}
	return tw.Flush()
}

// Preview opens the receipt of the n-th bill of the last listing.
func (a *App) Preview(ctx context.Context, arg string) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return common.ErrUnauthorized
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.views) {
		printlnFn("Usage: preview <n>, where n is a row of the last 'bills' listing")
		return fmt.Errorf("%w: no listed bill %q", common.ErrValidation, arg)
	}
	if !a.bills.PreviewAttachment(a.views[n-1]) {
		printlnFn("This bill has no receipt")
	}
	return nil
}

// describe turns store errors into short user-facing text.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrTransport):
		return "the store is unreachable, try again later"
	case errors.Is(err, common.ErrUnauthorized):
		return "your session has expired, please log in again"
	case errors.Is(err, common.ErrValidation):
		return err.Error()
	default:
		return "the store reported an error"
	}
}
