//go:build linux || darwin

/*
Package dgram provides a connectionless Unix domain datagram endpoint for
message passing between processes on the same host. Unlike the stream
sockets handled by the "net" package, a datagram endpoint has no
connection: each Send names its destination and each Receive reports its
sender, both as filesystem paths.

An Endpoint comes in two flavors. New() gives an anonymous endpoint that
can send but has no address peers can reach. NewBound() binds the
endpoint to a path, which makes the OS create a socket file there; the
Endpoint owns that file and removes it on Close.

Simple daemon:
	ep, err := dgram.NewBound("/tmp/mydaemon")
	if err != nil {
		// Do something
	}
	defer ep.Close()

	for {
		msg, sender, err := ep.Receive()
		if err != nil {
			// Do something
		}
		if err := ep.Send(handle(msg), sender); err != nil {
			// Do something
		}
	}

Simple client (bind a reply address or the daemon cannot answer you):
	ep, err := dgram.NewBound(filepath.Join(os.TempDir(), uuid.New().String()))
	if err != nil {
		// Do something
	}
	defer ep.Close()

	if err := ep.Send([]byte("hello"), "/tmp/mydaemon"); err != nil {
		// Do something
	}
	reply, _, err := ep.Receive()

An Endpoint exclusively owns one socket descriptor and, when bound, one
socket file. It must never be copied by value; two copies would close the
same descriptor. go vet flags such copies. To hand the resources to
another Endpoint use Adopt(), which leaves the source inert.

Receive blocks the calling goroutine's OS thread until a datagram
arrives; there is no timeout or cancellation built in. Callers that need
readiness-based integration can poll the raw descriptor from FD().
The default usage model is a single owning goroutine, matching the
transfer-only ownership design; concurrent use of one Endpoint requires
external synchronization.

Datagrams larger than MaxMsgSize are truncated to MaxMsgSize by the
kernel on receipt. That is inherited platform behavior, not a choice this
package can surface as an error.

Unix/Linux Note:
	Socket paths are limited to fewer characters than normal filesystem
	paths, commonly 108 including the terminator. The kernel's error for
	overlong names (or worse, a silently truncated name reaching the
	wrong peer) is not worth interpreting, so this package rejects them
	up front on bind and on send.
*/
package dgram

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const (
	// MaxMsgSize is the size of the receive buffer in bytes. Inbound
	// datagrams larger than this arrive truncated to exactly this size.
	// Oversized outbound messages are rejected by the OS, not truncated.
	MaxMsgSize = 8196

	// MaxAddrLen is the kernel's socket path capacity, including the
	// terminator. Paths of this length or longer are rejected by
	// NewBound and Send rather than passed down to be truncated or
	// refused with an unhelpful OS error.
	MaxAddrLen = 108
)

// invalidFD marks an Endpoint holding no socket descriptor.
const invalidFD = -1

// noCopy triggers go vet's copylocks check on any copy by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Endpoint is a connectionless Unix domain datagram socket. It
// exclusively owns its descriptor and, when bound, the socket file at
// its address. Do not copy; transfer with Adopt(). The zero value is
// not usable, use New() or NewBound().
type Endpoint struct {
	noCopy noCopy

	fd   int
	addr string
	owns bool
}

// New creates an anonymous endpoint. It has no address, so it can send
// to bound peers but nothing can practically be sent to it.
func New() (*Endpoint, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, &AcquireError{Err: err}
	}
	return &Endpoint{fd: fd, addr: "", owns: false}, nil
}

// NewBound creates an endpoint bound to the socket file at socketAddr.
// The file must not already exist; the OS creates it during the bind and
// this Endpoint removes it on Close. socketAddr must be shorter than the
// kernel's socket path limit (108 characters).
func NewBound(socketAddr string) (*Endpoint, error) {
	if socketAddr == "" {
		return nil, &BindError{Addr: socketAddr, Err: fmt.Errorf("socket path is empty")}
	}
	if err := checkAddr(socketAddr); err != nil {
		return nil, &BindError{Addr: socketAddr, Err: err}
	}

	ep, err := New()
	if err != nil {
		return nil, err
	}

	if err := unix.Bind(ep.fd, &unix.SockaddrUnix{Name: socketAddr}); err != nil {
		// Nothing may leak from a failed construction. The socket file
		// was not created, so only the descriptor needs releasing.
		unix.Close(ep.fd)
		ep.fd = invalidFD
		return nil, &BindError{Addr: socketAddr, Err: err}
	}

	ep.addr = socketAddr
	ep.owns = true
	return ep, nil
}

// checkAddr rejects paths the kernel would refuse or, worse, silently
// truncate into a different address.
func checkAddr(socketAddr string) error {
	if len(socketAddr) >= MaxAddrLen {
		return fmt.Errorf("socket path must be less than %d characters, got %d", MaxAddrLen, len(socketAddr))
	}
	return nil
}

// Addr returns the path this endpoint is bound at, "" if anonymous,
// closed or moved-from.
func (e *Endpoint) Addr() string {
	return e.addr
}

// FD exposes the raw socket descriptor for readiness polling, so the
// endpoint can be wired into a select/poll/epoll reactor. The caller
// must not close it; the Endpoint still owns it.
func (e *Endpoint) FD() int {
	return e.fd
}

// Send transmits msg as one datagram to the endpoint bound at dst.
// Datagrams are atomic: the whole message is queued or the call fails,
// there is no partial send. The message size is not checked here;
// oversized messages surface as a SendError from the OS.
func (e *Endpoint) Send(msg []byte, dst string) error {
	if err := checkAddr(dst); err != nil {
		return &SendError{Addr: dst, Err: err}
	}
	if err := unix.Sendto(e.fd, msg, 0, &unix.SockaddrUnix{Name: dst}); err != nil {
		return &SendError{Addr: dst, Err: err}
	}
	return nil
}

// Receive blocks until one datagram arrives and returns its payload and
// the sender's bound path. The sender path is "" when the sender was
// anonymous. Payloads are truncated to MaxMsgSize by the kernel.
//
// Receiving on an anonymous endpoint is legal but useless in practice,
// since no peer has an address to send to.
func (e *Endpoint) Receive() ([]byte, string, error) {
	buf := make([]byte, MaxMsgSize)

	n, from, err := unix.Recvfrom(e.fd, buf, 0)
	if err != nil {
		return nil, "", &ReceiveError{Err: err}
	}

	sender := ""
	if ua, ok := from.(*unix.SockaddrUnix); ok {
		sender = ua.Name
	}
	return buf[:n], sender, nil
}

// Adopt transfers src's descriptor, address and socket file ownership to
// e, releasing whatever e held before. src becomes inert: closing it is
// a no-op and using it for Send/Receive fails like any closed endpoint.
// The returned error is the release error for e's previous descriptor,
// if any; the transfer itself always completes.
func (e *Endpoint) Adopt(src *Endpoint) error {
	if src == e {
		return nil
	}

	err := e.Close()

	e.fd = src.fd
	e.addr = src.addr
	e.owns = src.owns

	src.fd = invalidFD
	src.addr = ""
	src.owns = false

	return err
}

// Close releases the descriptor and removes the socket file if this
// endpoint still owns one. It is idempotent and always completes:
// removal errors are swallowed (the file may already be gone), and only
// the descriptor close error is reported for callers that care. After
// Close, Send and Receive fail with the OS bad-descriptor error.
func (e *Endpoint) Close() error {
	var err error
	if e.fd != invalidFD {
		err = unix.Close(e.fd)
		e.fd = invalidFD
	}
	if e.owns {
		os.Remove(e.addr)
		e.owns = false
	}
	e.addr = ""
	return err
}
