package models

import "time"

// Base carries the fields the CMS manages for every record.
type Base struct {
	ID          int        `json:"id,omitempty"`
	DocumentID  string     `json:"documentId"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Key returns the stable external identifier of the record.
func (b Base) Key() string {
	return b.DocumentID
}

// NumericID returns the CMS row id, used by endpoints that address records by number.
func (b Base) NumericID() int {
	return b.ID
}

// Entity is implemented by every record fetched from the CMS.
type Entity interface {
	Key() string
	NumericID() int
}

// FileRef is an uploaded media descriptor as returned by the upload endpoint.
type FileRef struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Name       string `json:"name,omitempty"`
	URL        string `json:"url,omitempty"`
	Mime       string `json:"mime,omitempty"`
}

// Empty reports whether the reference points at nothing.
func (f FileRef) Empty() bool {
	return f.ID == 0 && f.DocumentID == ""
}

// KeyOf returns the document id of a possibly nil entity pointer.
func KeyOf[T Entity](e *T) string {
	if e == nil {
		return ""
	}
	return (*e).Key()
}

// KeysOf flattens a relation list into document ids.
func KeysOf[T Entity](items []T) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		if k := item.Key(); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
