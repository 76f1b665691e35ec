package main

import "testing"

func TestRespondMarksSafeUntilLast(t *testing.T) {
	r := newRound([]PlayerID{1, 2, 3})

	fate, resolved := r.respond(2)
	if fate != FateSurvived || resolved {
		t.Fatalf("first responder: fate = %v resolved = %v, want Survived false", fate, resolved)
	}

	fate, resolved = r.respond(1)
	if fate != FateSurvived || resolved {
		t.Fatalf("second responder: fate = %v resolved = %v, want Survived false", fate, resolved)
	}

	// Nose goes: last one to answer loses, and the round resolves on the
	// spot.
	fate, resolved = r.respond(3)
	if fate != FateDied || !resolved {
		t.Fatalf("last responder: fate = %v resolved = %v, want Died true", fate, resolved)
	}
	if !r.hasLoser || r.loser != 3 {
		t.Errorf("loser = %v, want 3", r.loser)
	}
	if r.status != roundResolved {
		t.Error("expected round to be resolved")
	}
}

func TestRespondNoOps(t *testing.T) {
	r := newRound([]PlayerID{1, 2, 3})

	if _, resolved := r.respond(9); resolved {
		t.Error("ineligible response resolved the round")
	}
	if len(r.responded) != 0 {
		t.Error("ineligible response was recorded")
	}

	r.respond(1)
	if fate, resolved := r.respond(1); fate != FateSurvived || resolved {
		t.Errorf("duplicate response: fate = %v resolved = %v, want Survived false", fate, resolved)
	}
	if len(r.responded) != 1 {
		t.Error("duplicate response was recorded twice")
	}
}

func TestExpirePolicy(t *testing.T) {
	tests := []struct {
		name      string
		eligible  []PlayerID
		responses []PlayerID
		wantLoser PlayerID
	}{
		{
			name:      "NobodyResponds",
			eligible:  []PlayerID{4, 7, 2},
			wantLoser: 2,
		},
		{
			name:      "OneNonResponder",
			eligible:  []PlayerID{1, 2, 3},
			responses: []PlayerID{2, 3},
			wantLoser: 1,
		},
		{
			name:      "LowestIDAmongNonResponders",
			eligible:  []PlayerID{5, 8, 3, 6},
			responses: []PlayerID{3},
			wantLoser: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRound(tt.eligible)
			for _, id := range tt.responses {
				if _, resolved := r.respond(id); resolved {
					t.Fatal("round resolved before the deadline")
				}
			}

			loser, resolved := r.expire()
			if !resolved {
				t.Fatal("expire did not resolve the round")
			}
			if loser != tt.wantLoser {
				t.Errorf("loser = %v, want %v", loser, tt.wantLoser)
			}
		})
	}
}

func TestExpireIsDeterministic(t *testing.T) {
	pick := func() PlayerID {
		r := newRound([]PlayerID{9, 4, 6})
		r.respond(4)
		loser, _ := r.expire()
		return loser
	}

	first := pick()
	for i := 0; i < 10; i++ {
		if got := pick(); got != first {
			t.Fatalf("resolution not deterministic: %v then %v", first, got)
		}
	}
}

func TestResolvedRoundIgnoresLateActivity(t *testing.T) {
	r := newRound([]PlayerID{1, 2})
	if _, resolved := r.expire(); !resolved {
		t.Fatal("expire did not resolve")
	}
	if r.loser != 1 {
		t.Fatalf("loser = %v, want 1", r.loser)
	}

	// Exactly one loser per round: late responses and a second deadline
	// must not re-open or re-resolve it.
	if fate, resolved := r.respond(2); fate != FateSurvived || resolved {
		t.Errorf("late response: fate = %v resolved = %v, want Survived false", fate, resolved)
	}
	if fate, _ := r.respond(1); fate != FateDied {
		t.Errorf("loser's late response: fate = %v, want Died", fate)
	}
	if _, resolved := r.expire(); resolved {
		t.Error("second expire resolved the round again")
	}
	if r.loser != 1 {
		t.Errorf("loser changed to %v", r.loser)
	}
}

func TestNewRoundRollsMarbles(t *testing.T) {
	eligible := []PlayerID{1, 2, 3, 4}
	r := newRound(eligible)

	if len(r.marbles) != len(eligible) {
		t.Fatalf("len(marbles) = %d, want %d", len(r.marbles), len(eligible))
	}
	for id, m := range r.marbles {
		if m.X < 0 || m.X >= 1 || m.Y < 0 || m.Y >= 1 {
			t.Errorf("marble for %v out of range: %+v", id, m)
		}
	}
}
