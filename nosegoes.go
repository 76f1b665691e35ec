package main

import (
	"math/rand"

	"github.com/google/uuid"
)

// Nose goes: when a round begins, every eligible hippo scrambles to touch
// its nose. Everyone who responds in time is safe, except that the very
// last hippo to answer - or anyone who never answers - is in danger. The
// round always ends with exactly one loser.

type roundStatus int

const (
	roundIdle roundStatus = iota
	roundActive
	roundResolved
)

// Fate is what a nose-goes response earns the responding player.
type Fate string

const (
	FateSurvived Fate = "Survived"
	FateDied     Fate = "Died"
)

// Marble is a purely presentational per-player rendering hint; clients use
// it to scatter the danger cues. It plays no part in resolution.
type Marble struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RoundInfo is the wire shape of a round, sent inside BeginNoseGoes and in
// snapshots.
type RoundInfo struct {
	ID       string              `json:"id"`
	Eligible []PlayerID          `json:"eligible"`
	Marbles  map[PlayerID]Marble `json:"marbles"`
}

// Round is one nose-goes elimination. The eligible set is snapshotted when
// the round begins and never changes afterwards, so a mid-round disconnect
// neither crashes resolution nor saves the player.
type Round struct {
	id        uuid.UUID
	status    roundStatus
	eligible  []PlayerID
	marbles   map[PlayerID]Marble
	responded map[PlayerID]bool
	loser     PlayerID
	hasLoser  bool
}

func newRound(eligible []PlayerID) *Round {
	marbles := make(map[PlayerID]Marble, len(eligible))
	for _, id := range eligible {
		marbles[id] = Marble{X: rand.Float64(), Y: rand.Float64()}
	}

	return &Round{
		id:        uuid.New(),
		status:    roundActive,
		eligible:  eligible,
		marbles:   marbles,
		responded: make(map[PlayerID]bool),
	}
}

func (r *Round) info() RoundInfo {
	return RoundInfo{
		ID:       r.id.String(),
		Eligible: r.eligible,
		Marbles:  r.marbles,
	}
}

func (r *Round) isEligible(id PlayerID) bool {
	for _, e := range r.eligible {
		if e == id {
			return true
		}
	}
	return false
}

// respond records a player's answer. Responders are permanently safe for
// the round, except the last eligible player to answer, who loses on the
// spot. Responses from ineligible players, duplicates, and responses after
// resolution are idempotent no-ops and never re-open the round.
//
// It reports whether this response resolved the round.
func (r *Round) respond(id PlayerID) (Fate, bool) {
	if r.status != roundActive || !r.isEligible(id) || r.responded[id] {
		return r.fate(id), false
	}

	r.responded[id] = true
	if len(r.responded) < len(r.eligible) {
		return FateSurvived, false
	}

	// Nose goes: last one to answer is out.
	r.resolve(id)
	return FateDied, true
}

// expire resolves a round whose grace deadline passed with at least one
// player never answering. The loser is the non-responder with the lowest
// ID, so resolution is deterministic given the same inputs: registration
// order is the tie rule, and zero responses simply means every eligible
// player is a candidate.
func (r *Round) expire() (PlayerID, bool) {
	if r.status != roundActive {
		return 0, false
	}

	picked := false
	var loser PlayerID
	for _, id := range r.eligible {
		if r.responded[id] {
			continue
		}
		if !picked || id < loser {
			loser = id
			picked = true
		}
	}
	if !picked {
		// Unreachable: a fully-answered round resolves on the final
		// respond call.
		loser = r.eligible[len(r.eligible)-1]
	}

	r.resolve(loser)
	return loser, true
}

// resolve is the single atomic decision point: the loser is assigned
// exactly once, regardless of how many responses arrived or how few.
func (r *Round) resolve(loser PlayerID) {
	r.loser = loser
	r.hasLoser = true
	r.status = roundResolved
}

// fate reports what a no-op response should answer: only the recorded
// loser of this round has Died.
func (r *Round) fate(id PlayerID) Fate {
	if r.hasLoser && r.loser == id {
		return FateDied
	}
	return FateSurvived
}
