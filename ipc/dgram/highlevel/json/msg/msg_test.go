//go:build linux || darwin

package msg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/kylelemons/godebug/pretty"

	"github.com/aplatanado/ssoo-clases/ipc/dgram"
)

type note struct {
	From string
	Body string
	Seq  int
}

func tempAddr() string {
	return filepath.Join(os.TempDir(), uuid.New().String())
}

func TestCourier(t *testing.T) {
	addrA := tempAddr()
	addrB := tempAddr()

	a, err := dgram.NewBound(addrA)
	if err != nil {
		panic(err)
	}
	defer a.Close()

	b, err := dgram.NewBound(addrB)
	if err != nil {
		panic(err)
	}
	defer b.Close()

	courierA := New(a)
	courierB := New(b)

	want := note{From: "b", Body: "are you ready to rock", Seq: 3}
	if err := courierB.Send(want, addrA); err != nil {
		t.Fatalf("TestCourier: Send(): %s", err)
	}

	got := note{}
	sender, err := courierA.Receive(&got)
	if err != nil {
		t.Fatalf("TestCourier: Receive(): %s", err)
	}
	if sender != addrB {
		t.Errorf("TestCourier: sender: got %q, want %q", sender, addrB)
	}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("TestCourier: -want/+got:\n%s", diff)
	}
}

func TestCourierRejectsOversized(t *testing.T) {
	addrA := tempAddr()

	a, err := dgram.NewBound(addrA)
	if err != nil {
		panic(err)
	}
	defer a.Close()

	sender, err := dgram.New()
	if err != nil {
		panic(err)
	}
	defer sender.Close()

	courier := New(sender)

	huge := note{Body: strings.Repeat("x", dgram.MaxMsgSize)}
	if err := courier.Send(huge, addrA); err == nil {
		t.Fatal("TestCourierRejectsOversized: Send() accepted a message larger than one datagram")
	}
}
