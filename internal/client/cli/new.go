package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/billed/internal/client/navigator"
	"github.com/dmitrijs2005/billed/internal/client/newbill"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/models"
)

// readFile and getMultiline are test seams.
var readFile = os.ReadFile
var getMultiline = GetMultiline

// NewBill walks the user through the new-bill form and submits it. On
// success the controller navigates back to the bills page.
func (a *App) NewBill(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return common.ErrUnauthorized
	}
	if err := a.newBill.Reset(); err != nil {
		return err
	}
	a.page = navigator.PageNewBill

	if err := a.selectReceipt(); err != nil {
		return err
	}

	form, err := a.readForm()
	if err != nil {
		return err
	}

	if err := a.newBill.Submit(ctx, form); err != nil {
		var se *newbill.SubmitError
		if errors.As(err, &se) && se.PartialRecord() {
			printlnFn("Bill", se.BillID, "was stored without its details; run 'new' again to resend it")
		}
		return err
	}
	return nil
}

func (a *App) selectReceipt() error {
	path, err := getSimpleText(a.reader, "Receipt file (png, jpg or jpeg)", a.out)
	if err != nil {
		return err
	}
	field := &fileField{path: path}

	att := models.Attachment{Name: filepath.Base(path)}
	if models.AllowedAttachment(att.Name, "") {
		data, err := readFile(path)
		if err != nil {
			printlnFn("Cannot read", path+":", err)
			return err
		}
		att.Data = data
	}
	return a.newBill.SelectFile(att, field)
}

func (a *App) readForm() (newbill.Form, error) {
	var f newbill.Form
	var err error

	if f.Type, err = a.readType(); err != nil {
		return f, err
	}

	prompts := []struct {
		text string
		dst  *string
	}{
		{"Expense name", &f.Name},
		{"Date (YYYY-MM-DD)", &f.Date},
		{"Amount incl. VAT (€)", &f.Amount},
		{"VAT amount (€, optional)", &f.VAT},
		{fmt.Sprintf("VAT %% (default %d)", models.DefaultPct), &f.Pct},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.text, a.out); err != nil {
			return f, err
		}
	}

	f.Commentary, err = getMultiline(a.reader, "Commentary (optional)", a.out)
	return f, err
}

// readType accepts either the number of the listed type or its name.
func (a *App) readType() (string, error) {
	var b strings.Builder
	b.WriteString("Expense type:")
	for i, t := range models.BillTypes {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, t)
	}

	answer, err := getSimpleText(a.reader, b.String(), a.out)
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(models.BillTypes) {
		return string(models.BillTypes[n-1]), nil
	}
	return answer, nil
}
