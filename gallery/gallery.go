// Package gallery keeps the most recent emojis saved by the user.
package gallery

import (
	"time"

	"github.com/google/uuid"
)

// MaxEntries is the number of emojis kept in the gallery.
const MaxEntries = 24

// Entry is one saved emoji.
type Entry struct {
	ID        string    `json:"id"`
	DataURL   string    `json:"dataUrl"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int       `json:"size"`
}

// List holds the gallery entries, newest first.
type List []Entry

// NewEntry wraps an encoded emoji into an entry stamped with the current time.
func NewEntry(dataURL string, size int) Entry {
	return Entry{
		ID:        uuid.New().String(),
		DataURL:   dataURL,
		CreatedAt: time.Now().UTC(),
		Size:      size,
	}
}

// Add returns a new list with e in front. Entries past MaxEntries are dropped,
// oldest first. The receiver is not modified.
func (l List) Add(e Entry) List {
	n := len(l) + 1
	if n > MaxEntries {
		n = MaxEntries
	}
	res := make(List, 0, n)
	res = append(res, e)
	return append(res, l[:n-1]...)
}

// Find returns the entry with the given id.
func (l List) Find(id string) (Entry, bool) {
	for _, e := range l {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
