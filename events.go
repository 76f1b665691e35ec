package main

import "encoding/json"

// Which broadcast channels an event goes out on.
type audience int

const (
	audiencePlayers audience = 1 << iota
	audienceHost

	audienceBoth = audiencePlayers | audienceHost
)

// Event is the closed set of things that can happen to the session. Events
// are immutable and totally ordered by the sequence number the Broadcaster
// assigns at publish time; that order is the only ordering contract
// observers get.
//
// On the wire each event is a JSON object with a single top-level tag
// naming the event, e.g. {"PlayerScore":{"id":"3","score":4}}.
type Event interface {
	tag() string
	audiences() audience
}

type PlayerRegistered struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	Score    uint64   `json:"score"`
	Quadrant int      `json:"quadrant"`
}

func (PlayerRegistered) tag() string { return "PlayerRegistered" }
func (PlayerRegistered) audiences() audience { return audienceBoth }

type PlayerScore struct {
	ID    PlayerID `json:"id"`
	Score uint64   `json:"score"`
}

func (PlayerScore) tag() string { return "PlayerScore" }
func (PlayerScore) audiences() audience { return audienceBoth }

type BeginNoseGoes struct {
	Round RoundInfo `json:"round"`
}

func (BeginNoseGoes) tag() string { return "BeginNoseGoes" }
func (BeginNoseGoes) audiences() audience { return audiencePlayers }

type EndNoseGoes struct {
	Round string `json:"round"`
}

func (EndNoseGoes) tag() string { return "EndNoseGoes" }
func (EndNoseGoes) audiences() audience { return audiencePlayers }

// PlayerLose is a status transition, not a score mutation: the loser keeps
// their registration and their frozen score. Hosts receive it too, so the
// big screen can show the elimination.
type PlayerLose struct {
	ID    PlayerID `json:"id"`
	Score uint64   `json:"score"`
}

func (PlayerLose) tag() string { return "PlayerLose" }
func (PlayerLose) audiences() audience { return audienceBoth }

func encodeEvent(e Event) ([]byte, error) {
	return json.Marshal(map[string]Event{e.tag(): e})
}
