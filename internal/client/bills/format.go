package bills

import (
	"time"

	"github.com/dmitrijs2005/billed/internal/models"
)

// displayDateLayout renders 2004-04-04 as "4 Apr. 04".
const displayDateLayout = "2 Jan. 06"

// FormatDate renders a parsed bill date for display.
func FormatDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

// FormatStatus renders a bill status for display. Unknown values pass through.
func FormatStatus(s models.Status) string {
	switch s {
	case models.StatusPending:
		return "Pending"
	case models.StatusAccepted:
		return "Accepted"
	case models.StatusRefused:
		return "Refused"
	default:
		return string(s)
	}
}
