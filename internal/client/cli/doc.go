// Package cli provides the interactive Billed command-line client.
//
// It wires configuration, the store client, the page controllers and an
// interactive REPL. The REPL plays the role of the page router: commands move
// the user between the Login, Bills and NewBill pages and every transition
// requested through the navigator is rendered before the next prompt.
//
// Key features:
//   - Register / Login / Logout (the session survives restarts)
//   - Bills: newest-first list of the employee's bills
//   - Preview: show the receipt link of a listed bill
//   - New: fill in the new-bill form and submit it with a receipt
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
