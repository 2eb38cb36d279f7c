package itemid

import (
	"log/slog"

	"github.com/google/uuid"
)

// NameResolver maps a class identifier to its display name. It supplies the
// comparable text of GUID-named records and of the root.
type NameResolver interface {
	ClassName(clsid uuid.UUID) (string, error)
}

// Comparer implements the structural algorithms over lists. Records are
// compared by their text projection, case-insensitively over ASCII, so two
// lists built by different providers for the same item compare equal.
type Comparer struct {
	names  NameResolver
	logger *slog.Logger
}

// NewComparer returns a Comparer. A nil resolver makes every GUID project
// to its braced string form; a nil logger discards output.
func NewComparer(names NameResolver, logger *slog.Logger) *Comparer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Comparer{names: names, logger: logger}
}

// Text returns the comparable projection of r: its primary name when the
// type carries one, otherwise the class name of its GUID, otherwise (for the
// terminator) the class name of the desktop.
func (c *Comparer) Text(r Record) string {
	if r.IsTerminator() {
		return c.className(CLSIDShellDesktop)
	}

	if name, ok := r.Name(); ok {
		return name
	}

	if id, ok := r.GUID(); ok {
		return c.className(id)
	}

	t, _ := r.Type()
	c.logger.Debug("record has no text projection", slog.String("type", t.String()))

	return ""
}

func (c *Comparer) className(id uuid.UUID) string {
	if c.names != nil {
		name, err := c.names.ClassName(id)
		if err == nil {
			return name
		}

		c.logger.Debug("class name lookup failed",
			slog.String("clsid", FormatGUID(id)),
			slog.String("error", err.Error()),
		)
	}

	return FormatGUID(id)
}

// same reports whether two records have equal projections.
func (c *Comparer) same(a, b Record) bool {
	return equalFoldASCII(c.Text(a), c.Text(b))
}

// Equal reports whether a and b name the same item: same number of records
// with pairwise equal projections. An absent list equals nothing.
func (c *Comparer) Equal(a, b *List) bool {
	ra, okA := a.First()
	rb, okB := b.First()

	if !okA || !okB {
		return false
	}

	for !ra.IsTerminator() && !rb.IsTerminator() {
		if !c.same(ra, rb) {
			return false
		}

		ra, _ = ra.Next()
		rb, _ = rb.Next()
	}

	return ra.IsTerminator() && rb.IsTerminator()
}

// IsParent reports whether parent is a strict prefix of child. With
// immediate set, child must have exactly one record beyond the prefix.
//
//	parent a/b, child a/b/c    -> true
//	parent a/b, child a/b/c/d  -> true, or false when immediate
//	parent a/b, child a/b      -> false
func (c *Comparer) IsParent(parent, child *List, immediate bool) bool {
	p, okP := parent.First()
	ch, okC := child.First()

	if !okP || !okC {
		return false
	}

	for !p.IsTerminator() && !ch.IsTerminator() {
		if !c.same(p, ch) {
			return false
		}

		p, _ = p.Next()
		ch, _ = ch.Next()
	}

	if !p.IsTerminator() || ch.IsTerminator() {
		return false
	}

	if immediate {
		if next, _ := ch.Next(); !next.IsTerminator() {
			return false
		}
	}

	return true
}

// FindChild returns the record of child that follows the longest prefix it
// shares with parent.
//
//	parent is the root        -> the first record of child
//	parent is a prefix        -> the first record of child past the prefix
//	parent equals child       -> the terminator of child
//	parent is not a prefix    -> false
func (c *Comparer) FindChild(parent, child *List) (Record, bool) {
	p, okP := parent.First()
	ch, okC := child.First()

	if !okP || !okC {
		return Record{}, false
	}

	if p.IsTerminator() {
		return ch, true
	}

	for !p.IsTerminator() && !ch.IsTerminator() {
		if !c.same(p, ch) {
			break
		}

		p, _ = p.Next()
		ch, _ = ch.Next()
	}

	if !p.IsTerminator() {
		return Record{}, false
	}

	return ch, true
}

// equalFoldASCII compares a and b ignoring ASCII case. Bytes outside ASCII
// must match exactly.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range len(a) {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}

	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}

// Projection returns the comparable text of every record of l, in order.
// The root projects to a single desktop entry; the absent list to nil.
func (c *Comparer) Projection(l *List) []string {
	r, ok := l.First()
	if !ok {
		return nil
	}

	if r.IsTerminator() {
		return []string{c.Text(r)}
	}

	var out []string
	for r := range l.Records() {
		out = append(out, c.Text(r))
	}

	return out
}

// FoldKey returns s with ASCII letters lower-cased, the case folding Equal
// applies. Two projections compare equal exactly when their keys match.
func FoldKey(s string) string {
	b := []byte(s)
	for i, c := range b {
		b[i] = lowerASCII(c)
	}

	return string(b)
}
