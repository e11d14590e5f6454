package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestAdmitWithinBudget(t *testing.T) {
	l := New(time.Minute, 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := l.Admit(ctx, "client-1")
		if err != nil {
			t.Fatalf("Admit failed: %v", err)
		}

		if !ok {
			t.Fatalf("request %d should have been admitted", i+1)
		}
	}

	ok, err := l.Admit(ctx, "client-1")
	if err != nil {
		t.Fatalf("Admit failed: %v", err)
	}

	if ok {
		t.Error("request over the window budget should have been rejected")
	}
}

func TestAdmitIsolatesIdentities(t *testing.T) {
	l := New(time.Minute, 2)
	ctx := context.Background()

	// exhaust one identity
	for i := 0; i < 3; i++ {
		if _, err := l.Admit(ctx, "busy-client"); err != nil {
			t.Fatalf("Admit failed: %v", err)
		}
	}

	ok, err := l.Admit(ctx, "quiet-client")
	if err != nil {
		t.Fatalf("Admit failed: %v", err)
	}

	if !ok {
		t.Error("one identity's burst should not throttle another")
	}
}

func TestAdmitWindowRecovers(t *testing.T) {
	l := New(100*time.Millisecond, 1)
	ctx := context.Background()

	if ok, _ := l.Admit(ctx, "client-2"); !ok {
		t.Fatal("first request should be admitted")
	}

	if ok, _ := l.Admit(ctx, "client-2"); ok {
		t.Fatal("second request in the window should be rejected")
	}

	time.Sleep(150 * time.Millisecond)

	ok, err := l.Admit(ctx, "client-2")
	if err != nil {
		t.Fatalf("Admit failed: %v", err)
	}

	if !ok {
		t.Error("budget should recover after the window elapses")
	}
}

func TestAdmitManyIdentities(t *testing.T) {
	l := New(time.Minute, 1)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		ok, err := l.Admit(ctx, fmt.Sprintf("client-%d", i))
		if err != nil {
			t.Fatalf("Admit failed: %v", err)
		}

		if !ok {
			t.Errorf("fresh identity %d should have been admitted", i)
		}
	}
}
