package procrun

import "os"

// pipeEnd is a scoped handle around one end of an os.Pipe. Close is
// idempotent so it can be safely deferred at the point of creation and also
// called explicitly once the descriptor has been handed to a child or
// consumed by a builtin — matching spec.md §9's "closes on drop" guidance,
// adapted to Go's lack of destructors by making double-close harmless
// instead of relying on never calling it twice.
type pipeEnd struct {
	f      *os.File
	closed bool
}

func wrap(f *os.File) *pipeEnd { return &pipeEnd{f: f} }

func (p *pipeEnd) Close() error {
	if p == nil || p.closed {
		return nil
	}
	p.closed = true
	return p.f.Close()
}

// newPipe allocates one anonymous pipe and returns its scoped ends.
func newPipe() (r, w *pipeEnd, err error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	return wrap(pr), wrap(pw), nil
}
