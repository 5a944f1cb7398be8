package ascii

import "time"

type Option func(p *Player)

// WithDelay sets the fixed pause after each frame.
func WithDelay(d time.Duration) Option {
	return func(p *Player) {
		p.delay = d
	}
}

// WithSync paces output to the source frame rate, minus render time.
// Sources without a known rate keep the fixed delay.
func WithSync(sync bool) Option {
	return func(p *Player) {
		p.sync = sync
	}
}
