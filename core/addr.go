package core

// AddrSource supplies the client address for the [client <addr>] pseudo-tag.
// Lookup is best-effort: if no address is available, or the source panics,
// the segment is simply omitted and formatting proceeds.
type AddrSource interface {
	// ClientAddr returns the address of the client associated with the
	// current request, if any.
	ClientAddr() (addr string, ok bool)
}

// AddrFunc adapts a function to the AddrSource interface.
type AddrFunc func() (string, bool)

// ClientAddr calls f.
func (f AddrFunc) ClientAddr() (string, bool) { return f() }
