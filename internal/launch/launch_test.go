package launch

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func TestWaitReadyListenerUp(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	err = waitReady(context.Background(), ln.Addr().String(), 5*time.Second, make(chan int))
	if err != nil {
		t.Fatalf("waitReady = %v, want nil", err)
	}
}

func TestWaitReadyTimeout(t *testing.T) {
	// Reserve a port, then close it so nothing is listening.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	err = waitReady(context.Background(), addr, 600*time.Millisecond, make(chan int))
	if !errors.Is(err, ErrStartTimeout) {
		t.Fatalf("waitReady = %v, want ErrStartTimeout", err)
	}
}

func TestWaitReadyEarlyExit(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	exited := make(chan int, 1)
	exited <- 3

	err = waitReady(context.Background(), addr, 5*time.Second, exited)
	if !errors.Is(err, ErrExitedEarly) {
		t.Fatalf("waitReady = %v, want ErrExitedEarly", err)
	}
}

func TestWaitReadyContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitReady(ctx, "127.0.0.1:1", 5*time.Second, make(chan int))
	if !errors.Is(err, ErrLaunch) {
		t.Fatalf("waitReady = %v, want ErrLaunch", err)
	}
}
