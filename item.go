// item.go - interned handle onto a file-system or archive-member entry
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
	"fmt"
	"os"
	"sync"
)

// Item is a value object keyed by its extended path. It caches
// whatever has been resolved about the entry it names so that
// repeated accessors don't re-stat or re-read content.
//
// Invariants (spec I1-I3): at most one live Item exists per extended
// name in the registry; box is set exactly once before any member
// operation runs on this Item; content is materialized at most once
// per registry lifetime unless Reset is called.
type Item struct {
	mu sync.Mutex

	name   string // full extended path
	short  string // final path component
	parent *Item  // enclosing container; root item is its own parent

	// box governs member access on THIS item when it is itself a
	// container (e.g. the adapter for a directory or archive this
	// item names). It is nil for leaf items.
	box Adapter

	// sess is the open Session for this item when it is an aggregator
	// root currently being expanded; owned by the comparator's
	// compare frame, never read concurrently with Open/Close.
	sess Session

	stat    *Info
	statSet bool

	content    []byte
	contentSet bool

	link    string
	linkSet bool

	size    int64
	sizeSet bool

	absent bool
}

// newItem constructs an item; callers should go through
// ItemRegistry.FindOrCreate rather than calling this directly so
// interning invariant I1 holds.
func newItem(name string, parent *Item) *Item {
	it := &Item{
		name:   name,
		parent: parent,
	}
	it.short = ShortName(name)
	if parent == nil {
		it.parent = it
	}
	return it
}

// Name returns the item's full extended path.
func (it *Item) Name() string { return it.name }

// ShortName returns the item's final path component.
func (it *Item) ShortName() string { return it.short }

// Parent returns the enclosing container item.
func (it *Item) Parent() *Item { return it.parent }

// SetBox sets the adapter that governs this item's members. Per I2 it
// must only be called once; a second call with a different adapter
// panics since it signals a registry/aggregator bug, not a runtime
// fault.
func (it *Item) SetBox(a Adapter) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.box != nil && it.box != a {
		panic("xdiff: item box set twice with different adapters: " + it.name)
	}
	it.box = a
}

// Box returns the adapter governing this item's members, or nil if
// this item is not itself a container.
func (it *Item) Box() Adapter {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.box
}

// MarkAbsent records that this path does not exist; Exists() becomes
// the only well-defined accessor afterwards.
func (it *Item) MarkAbsent() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.absent = true
	it.statSet = true
	it.stat = nil
}

// Exists reports whether this item resolves to a real entry.
func (it *Item) Exists() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return !it.absent
}

// SetStat caches the stat record for this item.
func (it *Item) SetStat(fi *Info) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.stat = fi
	it.statSet = true
	it.absent = fi == nil
}

// Stat returns the cached stat record, if any has been set.
func (it *Item) Stat() (*Info, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.stat, it.statSet
}

// SetContent caches member/file content exactly once per I3; call
// Reset to clear it before re-filling.
func (it *Item) SetContent(b []byte) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.content = b
	it.contentSet = true
	it.size = int64(len(b))
	it.sizeSet = true
}

// Content returns cached content and whether it has been materialized.
func (it *Item) Content() ([]byte, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.content, it.contentSet
}

// SetLink caches a symlink target.
func (it *Item) SetLink(target string) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.link = target
	it.linkSet = true
}

// Link returns the cached symlink target, if any.
func (it *Item) Link() (string, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.link, it.linkSet
}

// SetSize caches a size without requiring full content materialization.
func (it *Item) SetSize(n int64) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.size = n
	it.sizeSet = true
}

// Size returns the cached size, if known.
func (it *Item) Size() (int64, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.size, it.sizeSet
}

// SetSession records the open session for this item while it is being
// expanded as an aggregator root.
func (it *Item) SetSession(s Session) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.sess = s
}

// SessionOf returns the session set by SetSession, if any.
func (it *Item) SessionOf() Session {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.sess
}

// Reset clears materialized content only, per spec 4.B - stat and
// identity survive. Used by the driver to bound resident memory
// between sibling comparisons in a deep tree walk.
func (it *Item) Reset() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.content = nil
	it.contentSet = false
}

func (it *Item) String() string {
	return it.name
}

// isTopLevel reports whether this item is its own parent - the
// synthetic root shape given to items named directly on the command
// line, whose "member access" is just a plain filesystem path.
func (it *Item) isTopLevel() bool {
	return it.parent == it
}

// ResolveStat returns this item's stat record, computing and caching
// it on first access by routing through the parent's adapter (or the
// filesystem directly, for a top-level item). A nonexistent path is
// recorded as absent rather than returned as an error, per spec 4.B.
func (it *Item) ResolveStat() (*Info, error) {
	if fi, ok := it.Stat(); ok {
		return fi, nil
	}

	if it.isTopLevel() {
		fi, err := Lstat(it.name)
		if err != nil {
			if os.IsNotExist(err) {
				it.MarkAbsent()
				return nil, nil
			}
			return nil, &Error{"stat", it.name, "", err}
		}
		it.SetStat(fi)
		return fi, nil
	}

	box := it.parent.Box()
	if box == nil {
		return nil, fmt.Errorf("xdiff: item %s has no governing adapter", it.name)
	}
	fi, err := box.MemberStat(it.parent.SessionOf(), it.short)
	if err != nil {
		return nil, &Error{"member-stat", it.name, "", err}
	}
	it.SetStat(fi)
	return fi, nil
}

// ResolveContent returns this item's full content, materializing and
// caching it at most once per I3.
func (it *Item) ResolveContent() ([]byte, error) {
	if b, ok := it.Content(); ok {
		return b, nil
	}

	if it.isTopLevel() {
		b, err := os.ReadFile(it.name)
		if err != nil {
			return nil, &Error{"read", it.name, "", err}
		}
		it.SetContent(b)
		return b, nil
	}

	box := it.parent.Box()
	if box == nil {
		return nil, fmt.Errorf("xdiff: item %s has no governing adapter", it.name)
	}
	b, err := box.MemberContent(it.parent.SessionOf(), it.short)
	if err != nil {
		return nil, &Error{"member-content", it.name, "", err}
	}
	it.SetContent(b)
	return b, nil
}

// ResolveLink returns this item's symlink target, caching it on first
// access.
func (it *Item) ResolveLink() (string, error) {
	if l, ok := it.Link(); ok {
		return l, nil
	}

	if it.isTopLevel() {
		target, err := os.Readlink(it.name)
		if err != nil {
			return "", &Error{"readlink", it.name, "", err}
		}
		it.SetLink(target)
		return target, nil
	}

	box := it.parent.Box()
	if box == nil {
		return "", fmt.Errorf("xdiff: item %s has no governing adapter", it.name)
	}
	target, err := box.MemberLink(it.parent.SessionOf(), it.short)
	if err != nil {
		return "", &Error{"member-link", it.name, "", err}
	}
	it.SetLink(target)
	return target, nil
}

// ResolveSize returns this item's size without necessarily
// materializing content, falling back to stat or full content if the
// adapter can't report size cheaply.
func (it *Item) ResolveSize() (int64, error) {
	if n, ok := it.Size(); ok {
		return n, nil
	}
	if fi, err := it.ResolveStat(); err == nil && fi != nil {
		it.SetSize(fi.Size())
		return fi.Size(), nil
	}
	b, err := it.ResolveContent()
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

// IsDir, IsReg and IsLnk consult the cached/resolved stat record.
func (it *Item) IsDir() bool {
	fi, err := it.ResolveStat()
	return err == nil && fi != nil && fi.IsDir()
}

func (it *Item) IsReg() bool {
	fi, err := it.ResolveStat()
	return err == nil && fi != nil && fi.IsRegular()
}

func (it *Item) IsLnk() bool {
	fi, err := it.ResolveStat()
	return err == nil && fi != nil && (fi.Mode()&os.ModeSymlink) != 0
}
