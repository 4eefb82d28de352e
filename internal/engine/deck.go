package engine

import "math/rand"

// Deck is the shared draw pile plus its discard pile. When the draw
// pile runs out the discard pile is reshuffled into a new draw pile.
type Deck struct {
	draw    []CardName
	discard []CardName
}

// NewDeck creates a shuffled deck from the given cards.
func NewDeck(cards []CardName) *Deck {
	d := &Deck{draw: make([]CardName, len(cards))}
	copy(d.draw, cards)
	d.Shuffle()
	return d
}

// newDeckFromSnapshot rebuilds a deck with exact pile order.
func newDeckFromSnapshot(draw, discard []CardName) *Deck {
	d := &Deck{
		draw:    make([]CardName, len(draw)),
		discard: make([]CardName, len(discard)),
	}
	copy(d.draw, draw)
	copy(d.discard, discard)
	return d
}

func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}

// Draw removes and returns up to n cards, reshuffling the discard pile
// in when the draw pile empties. Returns fewer if both piles run dry.
func (d *Deck) Draw(n int) []CardName {
	var drawn []CardName
	for len(drawn) < n {
		if len(d.draw) == 0 {
			if len(d.discard) == 0 {
				break
			}
			d.draw = d.discard
			d.discard = nil
			d.Shuffle()
		}
		drawn = append(drawn, d.draw[0])
		d.draw = d.draw[1:]
	}
	return drawn
}

// DrawOne draws a single card; ok is false when both piles are empty.
func (d *Deck) DrawOne() (CardName, bool) {
	cards := d.Draw(1)
	if len(cards) == 0 {
		return "", false
	}
	return cards[0], true
}

// Discard adds cards to the discard pile.
func (d *Deck) Discard(cards ...CardName) {
	d.discard = append(d.discard, cards...)
}

// Len returns the number of cards in the draw pile.
func (d *Deck) Len() int {
	return len(d.draw)
}

// DiscardLen returns the number of cards in the discard pile.
func (d *Deck) DiscardLen() int {
	return len(d.discard)
}
