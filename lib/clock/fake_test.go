// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNow(t *testing.T) {
	fake := Fake(testEpoch)
	if got := fake.Now(); !got.Equal(testEpoch) {
		t.Errorf("Now() = %v, want %v", got, testEpoch)
	}

	fake.Advance(time.Minute)
	if got := fake.Now(); !got.Equal(testEpoch.Add(time.Minute)) {
		t.Errorf("Now() after Advance = %v, want %v", got, testEpoch.Add(time.Minute))
	}
}

func TestFakeAfterFiresOnAdvance(t *testing.T) {
	fake := Fake(testEpoch)
	ch := fake.After(5 * time.Second)

	select {
	case <-ch:
		t.Fatal("After fired before Advance")
	default:
	}

	fake.Advance(5 * time.Second)
	select {
	case fired := <-ch:
		if !fired.Equal(testEpoch.Add(5 * time.Second)) {
			t.Errorf("fire time = %v, want %v", fired, testEpoch.Add(5*time.Second))
		}
	default:
		t.Fatal("After did not fire after Advance")
	}
}

func TestFakeAfterNonPositive(t *testing.T) {
	fake := Fake(testEpoch)
	select {
	case <-fake.After(0):
	default:
		t.Fatal("After(0) did not fire immediately")
	}
}

func TestFakeAfterPartialAdvance(t *testing.T) {
	fake := Fake(testEpoch)
	ch := fake.After(10 * time.Second)

	fake.Advance(9 * time.Second)
	select {
	case <-ch:
		t.Fatal("After fired before its deadline")
	default:
	}

	fake.Advance(time.Second)
	select {
	case <-ch:
	default:
		t.Fatal("After did not fire at its deadline")
	}
}

func TestFakeSleepBlocksUntilAdvance(t *testing.T) {
	fake := Fake(testEpoch)

	done := make(chan struct{})
	go func() {
		fake.Sleep(3 * time.Second)
		close(done)
	}()

	fake.WaitForTimers(1)
	fake.Advance(3 * time.Second)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Sleep did not return after Advance")
	}
}

func TestFakePendingCount(t *testing.T) {
	fake := Fake(testEpoch)
	if got := fake.PendingCount(); got != 0 {
		t.Errorf("PendingCount = %d, want 0", got)
	}

	fake.After(time.Second)
	fake.After(2 * time.Second)
	if got := fake.PendingCount(); got != 2 {
		t.Errorf("PendingCount = %d, want 2", got)
	}

	fake.Advance(time.Second)
	if got := fake.PendingCount(); got != 1 {
		t.Errorf("PendingCount after Advance = %d, want 1", got)
	}
}
