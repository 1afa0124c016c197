// Package navigator names the client's pages and the contract used to move
// between them.
package navigator

// Page is a logical page identifier.
type Page string

const (
	PageLogin   Page = "Login"
	PageBills   Page = "Bills"
	PageNewBill Page = "NewBill"
)

// Navigator performs a view transition.
type Navigator interface {
	Navigate(page Page)
}

// Func adapts a plain function to Navigator.
type Func func(page Page)

// Navigate calls f(page).
func (f Func) Navigate(page Page) {
	f(page)
}
