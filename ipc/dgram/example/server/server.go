// Binary server answers every datagram it receives with the uppercased
// payload, sent back to the datagram's sender address.
package main

import (
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/pflag"

	"github.com/aplatanado/ssoo-clases/ipc/dgram"
)

var (
	socket = pflag.String("socket", "", "The path to bind the daemon's socket at")
)

func main() {
	pflag.Parse()

	if *socket == "" {
		glog.Exit("did not pass --socket")
	}

	ep, err := dgram.NewBound(*socket)
	if err != nil {
		glog.Exit(err)
	}
	defer ep.Close()

	glog.Infof("listening on socket: %s", *socket)

	for {
		msg, sender, err := ep.Receive()
		if err != nil {
			glog.Exit(err)
		}
		if sender == "" {
			// Anonymous senders have no address to answer at.
			glog.Info("dropping datagram from an anonymous sender")
			continue
		}
		if err := ep.Send([]byte(strings.ToUpper(string(msg))), sender); err != nil {
			glog.Errorf("could not reply to %q: %s", sender, err)
		}
	}
}
