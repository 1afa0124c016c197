package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectKey returns a fresh storage key for a receipt uploaded by email.
// Keys are grouped per owner and month; the owner part is a hash so that
// addresses never appear in bucket listings.
//
//	bills/<owner>/<yyyy>/<mm>/<uuid><ext>
func ObjectKey(email, fileName string, now time.Time) string {
	sum := sha256.Sum256([]byte(strings.ToLower(email)))
	owner := hex.EncodeToString(sum[:])[:16]
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("bills/%s/%04d/%02d/%s%s", owner, now.Year(), int(now.Month()), uuid.New(), ext)
}
