package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	treeBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "forum",
		Name:      "thread_tree_build_seconds",
		Help:      "Time spent assembling the post tree of a thread view",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
	})

	postsOmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "forum",
		Name:      "thread_view_posts_omitted_total",
		Help:      "Posts left out of thread views because their parent is not a loaded root",
	})

	prefixFetchShared = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "forum",
		Name:      "thread_prefix_fetch_shared_total",
		Help:      "Thread views served from a fetch started by a concurrent identical request",
	})
)
