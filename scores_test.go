package main

import (
	"errors"
	"testing"
)

func TestApplyFeedIncrements(t *testing.T) {
	registry := newRegistry()
	ledger := newLedger(registry)
	p := registry.register("")

	for i := 1; i <= 3; i++ {
		score, err := ledger.applyFeed(p.ID)
		if err != nil {
			t.Fatalf("feed %d: %v", i, err)
		}
		if score != uint64(i*feedIncrement) {
			t.Errorf("feed %d: score = %d, want %d", i, score, i*feedIncrement)
		}
	}
}

func TestApplyFeedUnknownPlayer(t *testing.T) {
	ledger := newLedger(newRegistry())

	if _, err := ledger.applyFeed(7); !errors.Is(err, errUnknownPlayer) {
		t.Errorf("err = %v, want errUnknownPlayer", err)
	}
}

func TestApplyFeedFrozenAfterLoss(t *testing.T) {
	registry := newRegistry()
	ledger := newLedger(registry)
	p := registry.register("")

	if _, err := ledger.applyFeed(p.ID); err != nil {
		t.Fatal(err)
	}

	got, _ := registry.get(p.ID)
	got.Playing = false

	if _, err := ledger.applyFeed(p.ID); !errors.Is(err, errNotPlaying) {
		t.Errorf("err = %v, want errNotPlaying", err)
	}
	if got.Score != 1 {
		t.Errorf("score changed after loss: %d, want 1", got.Score)
	}
}

func TestApplyFeedDisconnectedStillCounts(t *testing.T) {
	// A disconnected player keeps their identity; actions against a known
	// ID are still valid.
	registry := newRegistry()
	ledger := newLedger(registry)
	p := registry.register("")
	registry.setConnected(p.ID, false)

	score, err := ledger.applyFeed(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if score != 1 {
		t.Errorf("score = %d, want 1", score)
	}
}
