// adapter.go - container adapter & comparator strategy interfaces
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

// Session is a scoped handle on a mounted container, valid for the
// duration of one aggregator compare. Close must be idempotent-safe
// to call exactly once from a deferred statement; it releases any
// underlying archive reader, decompressor or mmap.
type Session interface {
	Close() error
}

// Adapter is the uniform view over a directory or an archive format.
// Adapters are stateless strategy values - they carry no per-container
// mutable state; everything mount-scoped lives on the Session returned
// by Open, or cached on the Item itself once resolved.
type Adapter interface {
	// Name identifies the adapter, e.g. "dir", "ar", "tar", "zip".
	Name() string

	// Sep is the extended-path separator token this adapter owns.
	Sep() string

	// Applies reports whether this adapter governs the given item,
	// i.e. whether the item is itself a container of this kind.
	Applies(it *Item) bool

	// Open mounts the container for member access and returns a
	// scoped Session. The caller must defer Close on all exit paths.
	Open(it *Item) (Session, error)

	// Keys lists the member short names of an opened container, in
	// the container's natural (not necessarily sorted) order.
	Keys(sess Session) ([]string, error)

	// MemberContent reads the full content of a member.
	MemberContent(sess Session, short string) ([]byte, error)

	// MemberSize reports a member's size without materializing content.
	MemberSize(sess Session, short string) (int64, error)

	// MemberStat returns a best-effort Info for a member; adapters
	// that can't produce one (e.g. content-only containers beyond
	// size) may return nil, nil.
	MemberStat(sess Session, short string) (*Info, error)

	MemberIsReg(sess Session, short string) (bool, error)
	MemberIsDir(sess Session, short string) (bool, error)
	MemberIsLnk(sess Session, short string) (bool, error)

	// MemberLink returns the symlink target, valid only if
	// MemberIsLnk is true.
	MemberLink(sess Session, short string) (string, error)

	// MemberInode/MemberDevice expose identity for containers that
	// track them (directory, tar, cpio); 0 if not meaningful.
	MemberInode(sess Session, short string) (uint64, error)
	MemberDevice(sess Session, short string) (uint64, error)
}

// UnixContainer is a marker implemented by adapters whose members
// preserve POSIX semantics: mode, uid/gid, and symlink targets. Tar
// and cpio implement this; zip/gzip/bz2/xz do not.
type UnixContainer interface {
	Adapter
	IsUnixContainer()
}

// ContentOnlyContainer is a marker implemented by adapters whose
// members are always plain regular files with no POSIX metadata of
// their own: zip, gzip, bz2, xz.
type ContentOnlyContainer interface {
	Adapter
	IsContentOnlyContainer()
}

// Comparator is a single strategy in the dispatch chain.
type Comparator interface {
	// Name identifies the comparator for logging.
	Name() string

	// Applies reports whether this comparator is willing to judge
	// the given pair. It must be side-effect free.
	Applies(lhs, rhs *Item) bool

	// Compare produces a verdict, or Indeterminate to defer to the
	// next comparator in the chain. Aggregator comparators additionally
	// spool child Comparisons as a side effect of a non-Indeterminate
	// (or even indeterminate, for nested discovery) result - see the
	// cmp package's aggregator helper.
	Compare(c *Comparison) (Verdict, error)
}
