package models

import (
	"path/filepath"
	"strings"
)

// Attachment is a receipt file held in memory until submission.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// AllowedAttachment reports whether a file with the given name and MIME type
// may be attached to a bill. The extension check is case-insensitive; an
// empty content type is not held against the file, a present one must match
// the extension family.
func AllowedAttachment(name, contentType string) bool {
	mime, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return false
	}
	if contentType == "" {
		return true
	}
	ct, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	return strings.TrimSpace(ct) == mime
}

// ContentTypeFor returns the MIME type implied by the file extension, or
// "application/octet-stream" for anything outside the allow-list.
func ContentTypeFor(name string) string {
	if mime, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return mime
	}
	return "application/octet-stream"
}
