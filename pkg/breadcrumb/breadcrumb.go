// Package breadcrumb models the breadcrumb pipeline as plain data: components
// contribute Entry values (a title, displayed values and a clear callback)
// when asked to populate, and reset their state when every breadcrumb is
// cleared. Rendering is left to consumers.
package breadcrumb

import (
	"context"
	"strings"
)

// ClearFunc removes the filter an entry represents.
type ClearFunc func(ctx context.Context) error

// Entry is one removable filter summary.
type Entry struct {
	// ID names the contributing component.
	ID     string
	Title  string
	Values []string
	Clear  ClearFunc
}

// Text is the visible label: the title followed by the values.
func (e Entry) Text() string {
	return e.Title + strings.Join(e.Values, ", ")
}

// Clearable reports whether the entry carries a clear callback.
func (e Entry) Clearable() bool {
	return e.Clear != nil
}

// PopulateArgs is the payload of the populate event. Handlers append to it.
type PopulateArgs struct {
	Entries []Entry
}

// Add appends an entry.
func (a *PopulateArgs) Add(entry Entry) {
	a.Entries = append(a.Entries, entry)
}

// ClearArgs is the payload of the clear-all event.
type ClearArgs struct {
	// Origin names who requested the reset.
	Origin string
}
