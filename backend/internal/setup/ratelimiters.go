package setup

import (
	"time"

	"github.com/itchan-dev/forum/shared/config"
	rl "github.com/itchan-dev/forum/shared/middleware/ratelimiter"
)

// limiterExpiration is how long an idle identity keeps its bucket.
const limiterExpiration = time.Hour

// RateLimiters are the per-route-group limiters. A nil field means the limit
// is turned off.
type RateLimiters struct {
	Global       *rl.UserRateLimiter
	ReadPerIP    *rl.UserRateLimiter
	WritePerUser *rl.UserRateLimiter
	VotePerUser  *rl.UserRateLimiter
}

// NewRateLimiters creates a limiter for every positive rate. Each one runs a
// sweep goroutine until Stop.
func NewRateLimiters(cfg config.RateLimits) *RateLimiters {
	return &RateLimiters{
		Global:       newLimiter(cfg.Global),
		ReadPerIP:    newLimiter(cfg.ReadPerIP),
		WritePerUser: newLimiter(cfg.WritePerUser),
		VotePerUser:  newLimiter(cfg.VotePerUser),
	}
}

func newLimiter(rps float64) *rl.UserRateLimiter {
	if rps <= 0 {
		return nil
	}
	return rl.New(rps, max(1, int(rps)), limiterExpiration)
}

func (l *RateLimiters) all() []*rl.UserRateLimiter {
	return []*rl.UserRateLimiter{l.Global, l.ReadPerIP, l.WritePerUser, l.VotePerUser}
}

// Stop ends the sweep goroutines. Safe on nil and safe to repeat.
func (l *RateLimiters) Stop() {
	if l == nil {
		return
	}
	for _, limiter := range l.all() {
		if limiter != nil {
			limiter.Stop()
		}
	}
}
