package study

import (
	"math/rand"
	"sync"
	"time"
)

// Autoplay speeds selectable by the client, in milliseconds.
const (
	SpeedFast   = 4000
	SpeedNormal = 8000
	SpeedSlow   = 12000

	// defaultIntervalMs applies before the first speed selection.
	defaultIntervalMs = 3000
)

// Deck drives a flashcard session over a fixed slice of study points:
// current card, shuffle order and autoplay. A single one-second tick source
// feeds both the countdown display and the card advance, so the two can
// never drift apart.
type Deck struct {
	mu sync.Mutex

	points     []string
	order      []int
	current    int
	autoplay   bool
	intervalMs int
	remaining  int

	stop chan struct{}
}

func NewDeck(points []string) *Deck {
	d := &Deck{
		points:     points,
		intervalMs: defaultIntervalMs,
	}
	d.order = identity(len(points))
	d.remaining = d.intervalMs / 1000
	return d
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// Len reports the number of cards in the deck.
func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.points)
}

// Current returns the displayed card. ok is false for an empty deck.
func (d *Deck) Current() (card string, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.points) == 0 {
		return "", false
	}
	return d.points[d.order[d.current]], true
}

// CurrentIndex reports the zero-based position within the deck order.
func (d *Deck) CurrentIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Next advances to the following card, wrapping at the end. No-op for
// decks of one card or fewer. A manual advance during autoplay resets the
// countdown to full.
func (d *Deck) Next() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.advanceLocked(1)
}

// Prev retreats to the preceding card, wrapping at the start.
func (d *Deck) Prev() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.advanceLocked(-1)
}

func (d *Deck) advanceLocked(delta int) {
	n := len(d.points)
	if n <= 1 {
		return
	}
	d.current = (d.current + delta + n) % n
	if d.autoplay {
		d.remaining = d.intervalMs / 1000
	}
}

// Shuffle replaces the deck order with a random permutation and returns to
// the first card.
func (d *Deck) Shuffle() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.points) == 0 {
		return
	}
	d.order = rand.Perm(len(d.points))
	d.current = 0
}

// Reset restores the identity order, returns to the first card and stops
// autoplay.
func (d *Deck) Reset() {
	d.mu.Lock()
	d.order = identity(len(d.points))
	d.current = 0
	stop := d.disableLocked()
	d.mu.Unlock()
	if stop != nil {
		close(stop)
	}
}

// AutoplayEnabled reports whether autoplay is running.
func (d *Deck) AutoplayEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.autoplay
}

// SecondsRemaining reports the countdown until the next automatic advance.
func (d *Deck) SecondsRemaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.remaining
}

// SetSpeed selects the autoplay interval. Only the three exposed speeds
// are accepted.
func (d *Deck) SetSpeed(ms int) bool {
	if ms != SpeedFast && ms != SpeedNormal && ms != SpeedSlow {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.intervalMs = ms
	if d.autoplay {
		d.remaining = ms / 1000
	}
	return true
}

// ToggleAutoplay flips autoplay. Enabling restarts the countdown and the
// tick goroutine; disabling cancels the goroutine immediately.
func (d *Deck) ToggleAutoplay() bool {
	d.mu.Lock()
	if d.autoplay || len(d.points) == 0 {
		stop := d.disableLocked()
		d.mu.Unlock()
		if stop != nil {
			close(stop)
		}
		return false
	}
	d.autoplay = true
	d.remaining = d.intervalMs / 1000
	stop := make(chan struct{})
	d.stop = stop
	d.mu.Unlock()

	go d.run(stop)
	return true
}

func (d *Deck) disableLocked() chan struct{} {
	d.autoplay = false
	stop := d.stop
	d.stop = nil
	return stop
}

func (d *Deck) run(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.Tick()
		}
	}
}

// Tick is one second of autoplay: the countdown decrements, and when it
// wraps the deck advances. Exposed so the autoplay loop and tests share the
// same code path.
func (d *Deck) Tick() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.autoplay {
		return
	}
	if d.remaining <= 1 {
		d.remaining = d.intervalMs / 1000
		n := len(d.points)
		if n > 1 {
			d.current = (d.current + 1) % n
		}
		return
	}
	d.remaining--
}

// Close stops autoplay and releases the tick goroutine. Safe to call more
// than once.
func (d *Deck) Close() {
	d.mu.Lock()
	stop := d.disableLocked()
	d.mu.Unlock()
	if stop != nil {
		close(stop)
	}
}

// HandleKey maps the keyboard bindings onto deck operations: right arrow or
// space advances, left arrow retreats, enter toggles autoplay. Reports
// whether the key was handled.
func (d *Deck) HandleKey(key string) bool {
	switch key {
	case "ArrowRight", " ":
		d.Next()
	case "ArrowLeft":
		d.Prev()
	case "Enter":
		d.ToggleAutoplay()
	default:
		return false
	}
	return true
}
