/*
Package msg provides a courier for exchanging JSON values as single
datagrams over a dgram.Endpoint. Each value must encode within
dgram.MaxMsgSize; there is no chunking, a datagram is one message.

A simple reply daemon:
	ep, err := dgram.NewBound("/tmp/mydaemon")
	if err != nil {
		// Do something
	}
	defer ep.Close()

	courier := msg.New(ep)
	for {
		req := Request{}
		sender, err := courier.Receive(&req)
		if err != nil {
			// Do something
		}
		if err := courier.Send(handle(req), sender); err != nil {
			// Do something
		}
	}

The courier does not own the endpoint; binding it and closing it remain
the caller's job.
*/
package msg

import (
	"encoding/json"
	"fmt"

	"github.com/aplatanado/ssoo-clases/ipc/dgram"
)

// Courier sends and receives JSON values over a datagram endpoint.
type Courier struct {
	ep *dgram.Endpoint
}

// New is the constructor for Courier. ep should be bound if replies are
// expected.
func New(ep *dgram.Endpoint) *Courier {
	return &Courier{ep: ep}
}

// Send encodes v as JSON and transmits it as one datagram to the
// endpoint bound at dst. Values whose encoding exceeds
// dgram.MaxMsgSize are rejected here, since the receiving side would
// only ever see a truncated, undecodable payload.
func (c *Courier) Send(v interface{}, dst string) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not encode message: %w", err)
	}
	if len(b) > dgram.MaxMsgSize {
		return fmt.Errorf("encoded message is %d bytes, exceeding the %d byte datagram limit", len(b), dgram.MaxMsgSize)
	}
	return c.ep.Send(b, dst)
}

// Receive blocks for one datagram, decodes it into v and returns the
// sender's address ("" if the sender was anonymous).
func (c *Courier) Receive(v interface{}) (sender string, err error) {
	b, sender, err := c.ep.Receive()
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return sender, fmt.Errorf("could not decode message from %q: %w", sender, err)
	}
	return sender, nil
}
