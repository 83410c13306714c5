// Binary client sends one datagram to the example server and prints the
// reply. It binds its own throwaway reply address, since an anonymous
// endpoint could send but never be answered.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/aplatanado/ssoo-clases/ipc/dgram"
)

var (
	socket  = pflag.String("socket", "", "The path the daemon's socket is bound at")
	message = pflag.String("msg", "hello", "The message to send")
)

func main() {
	pflag.Parse()

	if *socket == "" {
		fmt.Println("did not pass --socket")
		os.Exit(1)
	}

	replyAddr := filepath.Join(os.TempDir(), uuid.New().String())
	ep, err := dgram.NewBound(replyAddr)
	if err != nil {
		glog.Exit(err)
	}
	defer ep.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := dgram.WaitForAddr(ctx, *socket); err != nil {
		glog.Exitf("daemon socket never appeared at %q: %s", *socket, err)
	}

	if err := ep.Send([]byte(*message), *socket); err != nil {
		glog.Exit(err)
	}

	reply, _, err := ep.Receive()
	if err != nil {
		glog.Exit(err)
	}
	fmt.Println(string(reply))
}
