package main

// feedIncrement is how much one feed action is worth.
const feedIncrement = 1

// Ledger applies feed actions to player scores. Increments are serialized
// by the session loop, so two concurrent feeds can never lose an update.
type Ledger struct {
	registry *Registry
}

func newLedger(registry *Registry) *Ledger {
	return &Ledger{registry: registry}
}

// applyFeed increments the player's score and returns the new value.
// Feeding never decrements, and a player whose hippo is out of the game
// keeps a frozen score.
func (l *Ledger) applyFeed(id PlayerID) (uint64, error) {
	p, ok := l.registry.get(id)
	if !ok {
		return 0, errUnknownPlayer
	}
	if !p.Playing {
		return 0, errNotPlaying
	}

	p.Score += feedIncrement
	return p.Score, nil
}
