package cli

import (
	"fmt"
	"io"
)

// terminalModal prints the preview instead of opening a dialog.
type terminalModal struct {
	w io.Writer
}

func (m *terminalModal) Show(title string, imageURL string) {
	fmt.Fprintf(m.w, "[%s] %s\n", title, imageURL)
}

type terminalAlerter struct {
	w io.Writer
}

func (t *terminalAlerter) Alert(msg string) {
	fmt.Fprintf(t.w, "! %s\n", msg)
}

// fileField is the receipt path typed by the user.
type fileField struct {
	path string
}

func (f *fileField) Clear() {
	f.path = ""
}
