package main

import "testing"

func TestRegisterAssignsQuadrantsRoundRobin(t *testing.T) {
	r := newRegistry()

	want := []int{0, 1, 2, 3, 0, 1, 2, 3}
	for i, expected := range want {
		p := r.register("")
		if p.Quadrant != expected {
			t.Errorf("registration %d: quadrant = %d, want %d", i+1, p.Quadrant, expected)
		}
	}
}

func TestRegisterNeverReusesIDs(t *testing.T) {
	r := newRegistry()

	seen := make(map[PlayerID]bool)
	for i := 0; i < 100; i++ {
		p := r.register("")
		if seen[p.ID] {
			t.Fatalf("id %s handed out twice", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestRegisterGeneratesNameWhenEmpty(t *testing.T) {
	r := newRegistry()

	p := r.register("")
	if p.Name == "" {
		t.Error("expected a generated name, got empty")
	}

	named := r.register("Mr. Wiggles")
	if named.Name != "Mr. Wiggles" {
		t.Errorf("name = %q, want %q", named.Name, "Mr. Wiggles")
	}
}

func TestRegisterInitialState(t *testing.T) {
	r := newRegistry()
	p := r.register("")

	if p.Score != 0 {
		t.Errorf("score = %d, want 0", p.Score)
	}
	if !p.Connected {
		t.Error("expected new player to be connected")
	}
	if !p.Playing {
		t.Error("expected new player to be playing")
	}
}

func TestGetNotFound(t *testing.T) {
	r := newRegistry()
	r.register("")

	if _, ok := r.get(42); ok {
		t.Error("expected lookup of unknown id to fail")
	}
}

func TestSetConnectedKeepsSeat(t *testing.T) {
	r := newRegistry()
	p1 := r.register("")
	p2 := r.register("")

	if !r.setConnected(p1.ID, false) {
		t.Fatal("setConnected on known id failed")
	}
	if r.setConnected(99, false) {
		t.Error("setConnected on unknown id succeeded")
	}

	// Disconnecting must not remove the player or renumber quadrants.
	got, ok := r.get(p1.ID)
	if !ok {
		t.Fatal("disconnected player was removed")
	}
	if got.Quadrant != 0 {
		t.Errorf("quadrant = %d, want 0", got.Quadrant)
	}
	if p2Got, _ := r.get(p2.ID); p2Got.Quadrant != 1 {
		t.Errorf("neighbor quadrant = %d, want 1", p2Got.Quadrant)
	}

	if !r.setConnected(p1.ID, true) {
		t.Fatal("reconnect failed")
	}
	if got, _ := r.get(p1.ID); !got.Connected {
		t.Error("expected player to be connected after rejoin")
	}
}

func TestEligibleFiltersDisconnectedAndEliminated(t *testing.T) {
	r := newRegistry()
	p1 := r.register("")
	p2 := r.register("")
	p3 := r.register("")
	p4 := r.register("")

	r.setConnected(p2.ID, false)
	out, _ := r.get(p3.ID)
	out.Playing = false

	got := r.eligible()
	want := []PlayerID{p1.ID, p4.ID}
	if len(got) != len(want) {
		t.Fatalf("eligible = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("eligible = %v, want %v", got, want)
		}
	}
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	r := newRegistry()
	for i := 0; i < 5; i++ {
		r.register("")
	}

	players := r.list()
	if len(players) != 5 {
		t.Fatalf("len(list) = %d, want 5", len(players))
	}
	for i := 1; i < len(players); i++ {
		if players[i].ID <= players[i-1].ID {
			t.Fatalf("list out of registration order: %v then %v", players[i-1].ID, players[i].ID)
		}
	}
}
