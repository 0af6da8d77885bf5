// registry.go - process-wide interning table for Items
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package xdiff

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// ItemRegistry interns Items by their extended name. The spec assumes
// single-threaded access to a given comparison tree; the xsync map
// here only needs to be correct for the common insert-or-get path,
// matching how go-fio's FioMap is used.
type ItemRegistry struct {
	m *xsync.MapOf[string, *Item]
}

// NewItemRegistry creates an empty registry.
func NewItemRegistry() *ItemRegistry {
	return &ItemRegistry{
		m: xsync.NewMapOf[string, *Item](),
	}
}

// FindOrCreate returns the live Item for 'name', creating and
// interning one (parented at 'parent') if none exists yet. This is
// the only constructor path external callers should use; it upholds
// invariant I1.
func (r *ItemRegistry) FindOrCreate(name string, parent *Item) *Item {
	if it, ok := r.m.Load(name); ok {
		return it
	}
	it := newItem(name, parent)
	actual, _ := r.m.LoadOrStore(name, it)
	return actual
}

// Lookup returns an already-interned Item without creating one.
func (r *ItemRegistry) Lookup(name string) (*Item, bool) {
	return r.m.Load(name)
}

// Delete removes a single entry from the registry.
func (r *ItemRegistry) Delete(name string) {
	r.m.Delete(name)
}

// Reset clears the registry between independent top-level comparisons.
func (r *ItemRegistry) Reset() {
	r.m.Clear()
}

// Len reports the number of currently interned items (mostly useful
// in tests).
func (r *ItemRegistry) Len() int {
	return r.m.Size()
}
