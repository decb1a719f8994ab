package metrics

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry holds the process-wide request counters reported on /health.
type Registry struct {
	started time.Time

	Requests    Counter
	Mutations   Counter
	ClientErrs  Counter
	ServerErrs  Counter
	totalMicros Counter
}

func NewRegistry() *Registry {
	return &Registry{started: time.Now()}
}

// Snapshot is a point-in-time copy of a Registry.
type Snapshot struct {
	Uptime       string  `json:"uptime"`
	Requests     uint64  `json:"requests"`
	Mutations    uint64  `json:"mutations"`
	ClientErrors uint64  `json:"clientErrors"`
	ServerErrors uint64  `json:"serverErrors"`
	AvgLatencyMs float64 `json:"avgLatencyMs"`
}

func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Uptime:       time.Since(r.started).Round(time.Second).String(),
		Requests:     r.Requests.Load(),
		Mutations:    r.Mutations.Load(),
		ClientErrors: r.ClientErrs.Load(),
		ServerErrors: r.ServerErrs.Load(),
	}
	if s.Requests > 0 {
		s.AvgLatencyMs = float64(r.totalMicros.Load()) / float64(s.Requests) / 1000
	}
	return s
}

// Middleware counts every request by outcome.
func (r *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := StartTimer()
		c.Next()

		r.Requests.Inc()
		r.totalMicros.Add(uint64(timer.Duration().Microseconds()))

		switch status := c.Writer.Status(); {
		case status >= 500:
			r.ServerErrs.Inc()
		case status >= 400:
			r.ClientErrs.Inc()
		default:
			if c.Request.Method != "GET" && c.Request.Method != "HEAD" && c.Request.Method != "OPTIONS" {
				r.Mutations.Inc()
			}
		}
	}
}
