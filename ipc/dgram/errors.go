package dgram

import "fmt"

// AcquireError indicates the OS could not create the datagram socket.
type AcquireError struct {
	// Err is the underlying OS error, usually a unix.Errno.
	Err error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("could not acquire a unix datagram socket: %s", e.Err)
}

func (e *AcquireError) Unwrap() error {
	return e.Err
}

// BindError indicates a socket could not be bound to its address. Common
// causes are a path collision with a live endpoint, a permission problem
// or an overlong path.
type BindError struct {
	// Addr is the path the bind was attempted at.
	Addr string
	// Err is the underlying OS error, usually a unix.Errno.
	Err error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("could not bind socket to %q: %s", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// SendError indicates a datagram could not be transmitted. Common causes
// are a destination that does not exist, a full destination queue or a
// message larger than the OS accepts.
type SendError struct {
	// Addr is the destination path of the failed send.
	Addr string
	// Err is the underlying OS error, usually a unix.Errno.
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("could not send datagram to %q: %s", e.Addr, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// ReceiveError indicates a blocking receive failed, such as when the
// descriptor was closed or the call was interrupted.
type ReceiveError struct {
	// Err is the underlying OS error, usually a unix.Errno.
	Err error
}

func (e *ReceiveError) Error() string {
	return fmt.Sprintf("could not receive datagram: %s", e.Err)
}

func (e *ReceiveError) Unwrap() error {
	return e.Err
}
