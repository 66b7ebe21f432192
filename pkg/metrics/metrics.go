package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// acquire latency - histogram to track p50/p90/p99
	// covers the whole retry/backoff loop, not a single store round trip
	// labels: resource (to see which resources are contended)
	AcquireDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "warden_acquire_duration_seconds",
			Help:    "time spent acquiring a resource, including backoff",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"resource"},
	)

	// acquire counter - counts grants vs timeouts vs errors
	// use this to calculate grant rate: granted / total
	// labels: resource, status (granted/timeout/error)
	AcquireTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warden_acquire_total",
			Help: "total number of acquire attempts",
		},
		[]string{"resource", "status"},
	)

	// release counter - tracks clean releases vs losses
	// labels: status (released/lost)
	ReleaseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warden_release_total",
			Help: "total number of releases",
		},
		[]string{"status"},
	)

	// renew counter - tracks keepalive activity
	// high rate = healthy holders, losses = expired or stolen grants
	// labels: status (renewed/lost)
	RenewTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warden_renew_total",
			Help: "total number of renewals",
		},
		[]string{"status"},
	)

	// currently held records - gauge shows real-time active grants
	// useful for capacity planning and detecting leaked holds
	RecordsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warden_records_active",
			Help: "current number of live lock records",
		},
	)

	// reclaimed records - spikes indicate crashed or partitioned holders
	SweepReclaimedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "warden_sweep_reclaimed_total",
			Help: "total number of expired records reclaimed by the sweeper",
		},
	)

	// raft leader status - 1 if this node is leader, 0 if follower
	// exactly one node in cluster should have this = 1
	// use for alerting on leader elections
	RaftIsLeader = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warden_raft_is_leader",
			Help: "whether this node is the raft leader (1 = leader, 0 = follower)",
		},
	)

	// service uptime - always 1 when running
	// scrape failure = 0 in prometheus (service down)
	Up = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warden_up",
			Help: "whether the service is up (always 1 when running)",
		},
	)
)

func init() {
	// set uptime gauge to 1 on startup
	Up.Set(1)
}
