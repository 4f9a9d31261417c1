package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ThreadsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kboard_threads_created_total",
		Help: "Threads committed together with their seed reply",
	})

	RepliesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kboard_replies_created_total",
		Help: "Replies committed to existing threads",
	})

	// result is "applied", "noop" (already in the target status) or "rejected"
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kboard_moderation_actions_total",
		Help: "Reply moderation requests by action and result",
	}, []string{"action", "result"})

	IntegrityFaults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kboard_integrity_faults_total",
		Help: "Stored data found violating an invariant",
	})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kboard_rate_limited_total",
		Help: "Write requests rejected by the rate limiter",
	})
)
