package models

import (
	"time"

	shared "github.com/dmitrijs2005/billed/internal/models"
)

// Bill is a stored bill row. FileKey locates the receipt in object storage;
// the public FileURL is derived from it on every read.
type Bill struct {
	shared.Bill
	FileKey   string
	CreatedAt time.Time
}
