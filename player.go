package main

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog/log"
)

// PlayerID uniquely identifies a registered player for the lifetime of the
// process. IDs are allocated sequentially and never reused, so a client can
// hold onto its ID across reconnects and keep its progress.
//
// IDs cross the wire as strings so that they play nice with JavaScript
// clients; they are meant to be treated as opaque anyway.
type PlayerID uint64

func (id PlayerID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func (id PlayerID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *PlayerID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*id = PlayerID(parsed)
	return nil
}

const quadrants = 4

// Player holds the data we store server-side for one registered player.
type Player struct {
	ID        PlayerID
	Name      string
	Score     uint64
	Quadrant  int
	Connected bool
	Playing   bool
}

// Registry owns the player map. It is not safe for concurrent use; all
// access goes through the session loop.
type Registry struct {
	players map[PlayerID]*Player
	order   []PlayerID
	nextID  PlayerID
}

func newRegistry() *Registry {
	return &Registry{
		players: make(map[PlayerID]*Player),
	}
}

// register allocates a fresh ID and the next display quadrant, which is a
// pure function of registration order modulo the quadrant count. Seats are
// never renumbered, even for players who disconnect or stop playing.
func (r *Registry) register(name string) *Player {
	if name == "" {
		name = generateName()
	}

	p := &Player{
		ID:        r.nextID,
		Name:      name,
		Quadrant:  len(r.order) % quadrants,
		Connected: true,
		Playing:   true,
	}

	r.nextID++
	if r.nextID == 0 {
		// Wrapping would hand out duplicate identities; there is no
		// meaningful recovery for a single in-memory session.
		log.Fatal().Msg("player id space exhausted")
	}

	r.players[p.ID] = p
	r.order = append(r.order, p.ID)

	return p
}

func (r *Registry) get(id PlayerID) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// setConnected updates connection status without removing the player, so
// the same identity can rejoin and the display layout stays stable.
func (r *Registry) setConnected(id PlayerID, connected bool) bool {
	p, ok := r.players[id]
	if !ok {
		return false
	}
	p.Connected = connected
	return true
}

// list returns copies of all players in registration order.
func (r *Registry) list() []Player {
	out := make([]Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.players[id])
	}
	return out
}

// eligible returns the IDs of players who are connected and still playing,
// in registration order.
func (r *Registry) eligible() []PlayerID {
	out := make([]PlayerID, 0, len(r.order))
	for _, id := range r.order {
		if p := r.players[id]; p.Connected && p.Playing {
			out = append(out, id)
		}
	}
	return out
}
