// Hippobox session coordinator
//
// One running session coordinates every connected player and the
// spectator display:
// - Players register (optionally naming their hippo), then mash "feed me"
//   to score points
// - A background timer periodically starts a "nose goes" round; everyone
//   scrambles to respond, and exactly one hippo loses
// - Two push audiences mirror the action: the players themselves, and the
//   host screen everyone is gathered around
//
// Implementation details:
// - All mutation flows through one goroutine selecting over typed request
//   channels, each carrying a reply channel; feeds are linearized and round
//   resolution is a single atomic decision point
// - New push connections receive a snapshot of the full player list before
//   any live event, so late joiners converge without replaying history
// - Losers keep their seat and their (frozen) score; disconnected players
//   keep their identity and can rejoin with the ID they were given

package main

import (
	"encoding/json"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

type registerRequest struct {
	name  string
	reply chan Player
}

type feedRequest struct {
	id    PlayerID
	reply chan feedReply
}

type feedReply struct {
	score uint64
	err   error
}

type respondRequest struct {
	id    PlayerID
	reply chan respondReply
}

type respondReply struct {
	fate Fate
	err  error
}

type listRequest struct {
	reply chan []Player
}

type subscribeRequest struct {
	sub   *subscriber
	aud   audience
	id    PlayerID
	hasID bool
}

type unsubscribeRequest struct {
	sub *subscriber
}

// Snapshot reconstructs current state for a connection joining in progress.
// It is delivered before any live event, wrapped like one:
// {"Snapshot":{"players":[...]}}.
type Snapshot struct {
	Players []SnapshotPlayer `json:"players"`
	Round   *RoundInfo       `json:"round,omitempty"`
}

type SnapshotPlayer struct {
	ID        PlayerID `json:"id"`
	Name      string   `json:"name"`
	Score     uint64   `json:"score"`
	Quadrant  int      `json:"quadrant"`
	Connected bool     `json:"connected"`
	Playing   bool     `json:"playing"`
}

// Session is the process-wide singleton coordinating one game. It owns the
// Registry, Ledger, current Round, and Broadcaster outright; everything
// else talks to them through the request channels.
type Session struct {
	cfg       *Config
	clock     clockwork.Clock
	registry  *Registry
	ledger    *Ledger
	broadcast *Broadcaster

	round         *Round
	cooldownUntil time.Time

	// playerSubs tracks which push connections belong to which player, so
	// a socket loss only marks the player disconnected once no connection
	// of theirs remains.
	playerSubs map[*subscriber]PlayerID

	registers    chan registerRequest
	feeds        chan feedRequest
	responses    chan respondRequest
	lists        chan listRequest
	subscribes   chan subscribeRequest
	unsubscribes chan unsubscribeRequest
	quit         chan struct{}
}

func newSession(cfg *Config, clock clockwork.Clock) *Session {
	s := &Session{
		cfg:        cfg,
		clock:      clock,
		registry:   newRegistry(),
		broadcast:  newBroadcaster(),
		playerSubs: make(map[*subscriber]PlayerID),

		registers:    make(chan registerRequest, 64),
		feeds:        make(chan feedRequest, 64),
		responses:    make(chan respondRequest, 64),
		lists:        make(chan listRequest, 64),
		subscribes:   make(chan subscribeRequest, 64),
		unsubscribes: make(chan unsubscribeRequest, 64),
		quit:         make(chan struct{}),
	}
	s.ledger = newLedger(s.registry)

	go s.run()
	return s
}

func (s *Session) run() {
	ticker := s.clock.NewTicker(s.cfg.roundInterval)
	defer ticker.Stop()

	var deadline clockwork.Timer
	var deadlineCh <-chan time.Time

	clearDeadline := func() {
		if deadline != nil {
			stopAndDrainTimer(deadline)
		}
		deadline = nil
		deadlineCh = nil
	}

	for {
		select {
		case <-s.quit:
			clearDeadline()
			s.broadcast.detachAll()
			return

		case req := <-s.registers:
			p := s.registry.register(req.name)
			log.Info().Stringer("player", p.ID).Str("name", p.Name).Int("quadrant", p.Quadrant).Msg("player registered")
			s.broadcast.publish(PlayerRegistered{ID: p.ID, Name: p.Name, Score: p.Score, Quadrant: p.Quadrant})
			req.reply <- *p

		case req := <-s.feeds:
			score, err := s.ledger.applyFeed(req.id)
			if err == nil {
				s.broadcast.publish(PlayerScore{ID: req.id, Score: score})
			}
			req.reply <- feedReply{score: score, err: err}

		case req := <-s.responses:
			if _, ok := s.registry.get(req.id); !ok {
				req.reply <- respondReply{err: errUnknownPlayer}
				break
			}
			if s.round == nil {
				req.reply <- respondReply{fate: FateSurvived}
				break
			}
			fate, resolved := s.round.respond(req.id)
			if resolved {
				clearDeadline()
				s.finishRound()
			}
			req.reply <- respondReply{fate: fate}

		case req := <-s.lists:
			req.reply <- s.registry.list()

		case req := <-s.subscribes:
			if req.hasID && s.registry.setConnected(req.id, true) {
				s.playerSubs[req.sub] = req.id
			}
			s.broadcast.attach(req.sub, req.aud, s.snapshotPayload())

		case req := <-s.unsubscribes:
			s.broadcast.detach(req.sub)
			if id, ok := s.playerSubs[req.sub]; ok {
				delete(s.playerSubs, req.sub)
				if !s.playerStillAttached(id) {
					s.registry.setConnected(id, false)
					log.Debug().Stringer("player", id).Msg("player disconnected")
				}
			}

		case <-ticker.Chan():
			if s.roundActive() || s.clock.Now().Before(s.cooldownUntil) {
				break
			}
			eligible := s.registry.eligible()
			if len(eligible) < s.cfg.minPlayers {
				break
			}
			s.round = newRound(eligible)
			log.Info().Str("round", s.round.id.String()).Int("eligible", len(eligible)).Msg("nose goes")
			s.broadcast.publish(BeginNoseGoes{Round: s.round.info()})
			deadline = s.clock.NewTimer(s.cfg.roundGrace)
			deadlineCh = deadline.Chan()

		case <-deadlineCh:
			clearDeadline()
			if s.round != nil {
				if _, ok := s.round.expire(); ok {
					s.finishRound()
				}
			}
		}
	}
}

// finishRound emits the outcome of a freshly resolved round: PlayerLose for
// the loser, then EndNoseGoes, then the cooldown starts.
func (s *Session) finishRound() {
	loser := s.round.loser
	score := uint64(0)
	if p, ok := s.registry.get(loser); ok {
		p.Playing = false
		score = p.Score
	}

	log.Info().Str("round", s.round.id.String()).Stringer("loser", loser).Msg("round resolved")
	s.broadcast.publish(PlayerLose{ID: loser, Score: score})
	s.broadcast.publish(EndNoseGoes{Round: s.round.id.String()})
	s.cooldownUntil = s.clock.Now().Add(s.cfg.roundCooldown)
}

func (s *Session) roundActive() bool {
	return s.round != nil && s.round.status == roundActive
}

func (s *Session) playerStillAttached(id PlayerID) bool {
	for _, other := range s.playerSubs {
		if other == id {
			return true
		}
	}
	return false
}

func (s *Session) snapshotPayload() []byte {
	players := s.registry.list()
	snap := Snapshot{
		Players: make([]SnapshotPlayer, 0, len(players)),
	}
	for _, p := range players {
		snap.Players = append(snap.Players, SnapshotPlayer{
			ID:        p.ID,
			Name:      p.Name,
			Score:     p.Score,
			Quadrant:  p.Quadrant,
			Connected: p.Connected,
			Playing:   p.Playing,
		})
	}
	if s.roundActive() {
		info := s.round.info()
		snap.Round = &info
	}

	payload, err := json.Marshal(map[string]Snapshot{"Snapshot": snap})
	if err != nil {
		log.Error().Err(err).Msg("encode snapshot")
		return []byte(`{"Snapshot":{"players":[]}}`)
	}
	return payload
}

// stopAndDrainTimer stops a timer and drains its channel if it already
// fired, per the time.Timer.Stop documentation.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}

// Register allocates a fresh player. An empty name gets a generated one.
func (s *Session) Register(name string) Player {
	reply := make(chan Player, 1)
	s.registers <- registerRequest{name: name, reply: reply}
	return <-reply
}

// Feed applies one feed action and returns the resulting score.
func (s *Session) Feed(id PlayerID) (uint64, error) {
	reply := make(chan feedReply, 1)
	s.feeds <- feedRequest{id: id, reply: reply}
	res := <-reply
	return res.score, res.err
}

// Respond records a nose-goes response for the player.
func (s *Session) Respond(id PlayerID) (Fate, error) {
	reply := make(chan respondReply, 1)
	s.responses <- respondRequest{id: id, reply: reply}
	res := <-reply
	return res.fate, res.err
}

// Players lists all registered players in registration order.
func (s *Session) Players() []Player {
	reply := make(chan []Player, 1)
	s.lists <- listRequest{reply: reply}
	return <-reply
}

// Subscribe attaches a push connection to one of the two audiences. When a
// player ID is presented, that player is marked reconnected for as long as
// at least one of their connections remains.
func (s *Session) Subscribe(c conn, aud audience, id PlayerID, hasID bool) *subscriber {
	sub := newSubscriber(c)
	s.subscribes <- subscribeRequest{sub: sub, aud: aud, id: id, hasID: hasID}
	return sub
}

// Unsubscribe detaches a push connection. It never touches an in-progress
// round or any other player's state.
func (s *Session) Unsubscribe(sub *subscriber) {
	s.unsubscribes <- unsubscribeRequest{sub: sub}
}

// Stop shuts the session down and closes all push connections.
func (s *Session) Stop() {
	close(s.quit)
}
