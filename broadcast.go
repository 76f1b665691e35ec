package main

import (
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// conn is the write side of a push connection. The gateway wraps real
// websockets; tests substitute fakes.
type conn interface {
	write(data []byte) error
	close() error
}

type wsConn struct {
	ws *websocket.Conn
}

func (c wsConn) write(data []byte) error {
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c wsConn) close() error {
	return c.ws.Close()
}

const sendQueueSize = 64

// subscriber is one push connection with its own outbound queue, so a slow
// or stalled consumer never backpressures the game loop.
type subscriber struct {
	conn conn
	send chan []byte
}

func newSubscriber(c conn) *subscriber {
	s := &subscriber{
		conn: c,
		send: make(chan []byte, sendQueueSize),
	}
	go s.writePump()
	return s
}

func (s *subscriber) writePump() {
	defer s.conn.close()

	for msg := range s.send {
		if err := s.conn.write(msg); err != nil {
			return
		}
	}
}

// eventLogLimit bounds the in-memory event log; older entries rotate out.
// Converging late joiners use the snapshot, not log replay, so the log only
// needs enough depth for debugging.
const eventLogLimit = 256

type loggedEvent struct {
	seq     uint64
	payload []byte
}

// Broadcaster fans domain events out to two independent audiences: active
// players and the host/spectator display. It is owned by the session loop
// and is not safe for concurrent use.
type Broadcaster struct {
	subscribers map[*subscriber]audience
	seq         uint64
	events      []loggedEvent
}

func newBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[*subscriber]audience),
	}
}

// attach queues the snapshot ahead of any live event, so a join-in-progress
// connection converges to the same state as a long-lived one.
func (b *Broadcaster) attach(s *subscriber, aud audience, snapshot []byte) {
	select {
	case s.send <- snapshot:
	default:
		// Queue full before we even started; not worth keeping.
		close(s.send)
		return
	}

	b.subscribers[s] = aud
}

func (b *Broadcaster) detach(s *subscriber) {
	if _, ok := b.subscribers[s]; ok {
		delete(b.subscribers, s)
		close(s.send)
	}
}

func (b *Broadcaster) detachAll() {
	for s := range b.subscribers {
		delete(b.subscribers, s)
		close(s.send)
	}
}

// publish assigns the next sequence number, appends to the bounded event
// log, and delivers to every subscriber in the event's audiences. Delivery
// to each connection preserves publish order; a subscriber with a full
// queue is dropped rather than retried.
func (b *Broadcaster) publish(e Event) uint64 {
	payload, err := encodeEvent(e)
	if err != nil {
		log.Error().Err(err).Str("event", e.tag()).Msg("encode event")
		return b.seq
	}

	b.seq++
	b.events = append(b.events, loggedEvent{seq: b.seq, payload: payload})
	if len(b.events) > eventLogLimit {
		b.events = b.events[len(b.events)-eventLogLimit:]
	}

	for s, aud := range b.subscribers {
		if aud&e.audiences() == 0 {
			continue
		}
		select {
		case s.send <- payload:
		default:
			log.Warn().Str("event", e.tag()).Msg("subscriber too slow, dropping")
			delete(b.subscribers, s)
			close(s.send)
		}
	}

	return b.seq
}

func (b *Broadcaster) count(aud audience) int {
	n := 0
	for _, a := range b.subscribers {
		if a&aud != 0 {
			n++
		}
	}
	return n
}
