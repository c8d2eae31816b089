package dispatch

import (
	"iter"
	"net/http"
	"net/textproto"
	"slices"
)

// Handler produces the lazy fragment sequence for one request. The
// sequence may be unbounded; the dispatcher pulls it one fragment at a
// time and stops pulling once cancelled.
type Handler func(Request) iter.Seq[string]

// Request is the immutable view of an accepted request: a relative path
// plus a mapping from header name to its ordered values. Header order is
// not significant; Names returns them sorted so handlers get a stable
// iteration order.
type Request struct {
	path   string
	header http.Header
}

// NewRequest builds a Request from path and header. The header is copied,
// so later mutation by the caller is not observable through the Request.
// Names are canonicalized the way net/http does, so Get and Values find
// an entry regardless of the casing it was stored under.
func NewRequest(path string, header http.Header) Request {
	h := make(http.Header, len(header))
	for name, vals := range header {
		canon := textproto.CanonicalMIMEHeaderKey(name)
		h[canon] = append(h[canon], vals...)
	}
	return Request{path: path, header: h}
}

// Path returns the request's relative path.
func (r Request) Path() string {
	return r.path
}

// Get returns the first value for name, or "" when the header is absent.
func (r Request) Get(name string) string {
	return r.header.Get(name)
}

// Values returns a copy of all values recorded for name, in order.
func (r Request) Values(name string) []string {
	return slices.Clone(r.header.Values(name))
}

// Names returns the header names, sorted.
func (r Request) Names() []string {
	names := make([]string, 0, len(r.header))
	for name := range r.header {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
