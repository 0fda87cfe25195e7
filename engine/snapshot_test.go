package engine

import (
	"sync"
	"testing"
	"time"
)

// A slow hook call must not let an older snapshot arrive after a newer one:
// the delivery worker always hands over the newest state last.
func TestChangeHookDeliversNewestLast(t *testing.T) {
	s := testStore()

	var mu sync.Mutex
	var seen []int
	gate := make(chan struct{})
	var gateOnce sync.Once
	delivered := make(chan int, 8)

	s.SetOnChange(func(snap Snapshot) {
		gateOnce.Do(func() { <-gate })
		mu.Lock()
		seen = append(seen, len(snap.Expenses))
		mu.Unlock()
		delivered <- len(snap.Expenses)
	})

	if _, err := s.AddExpense("ice", "misc", 5); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if _, err := s.AddExpense("bags", "misc", 3); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	close(gate)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case n := <-delivered:
			if n == 2 {
				mu.Lock()
				for i := 1; i < len(seen); i++ {
					if seen[i] < seen[i-1] {
						t.Fatalf("stale snapshot delivered after a newer one: %v", seen)
					}
				}
				mu.Unlock()
				return
			}
		case <-deadline:
			mu.Lock()
			defer mu.Unlock()
			t.Fatalf("newest snapshot never delivered, saw %v", seen)
		}
	}
}

// Restore goes through the same ordered delivery path as mutations.
func TestReplaceFeedsChangeHook(t *testing.T) {
	s := testStore()

	delivered := make(chan Snapshot, 1)
	s.SetOnChange(func(snap Snapshot) {
		select {
		case delivered <- snap:
		default:
		}
	})

	doc := s.ExportBackup()
	if err := s.RestoreBackup(doc); err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}

	select {
	case snap := <-delivered:
		if snap.Settings.StoreName != doc.Settings.StoreName {
			t.Fatalf("delivered snapshot store name = %q, want %q", snap.Settings.StoreName, doc.Settings.StoreName)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("restore did not reach the change hook")
	}
}
