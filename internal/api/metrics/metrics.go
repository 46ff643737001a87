// Package metrics defines the application counters exported at /metrics.
// HTTP request metrics come from echoprometheus; these cover what happens
// to users, posts and comments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "piazza"

// ── Users ─────────────────────────────────────────────────────────────────────

var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// ── Posts ─────────────────────────────────────────────────────────────────────

// PostsCreatedTotal counts published posts. Topics are free text chosen by
// authors, so they are not used as a label.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

var PostsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_deleted_total",
		Help:      "Total number of posts deleted, comments included.",
	},
)

// VotesTotal counts accepted votes.
// Label:
//   - kind: "like" or "dislike"
var VotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_total",
		Help:      "Total number of accepted likes and dislikes.",
	},
	[]string{"kind"},
)

// ── Comments ──────────────────────────────────────────────────────────────────

var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments created.",
	},
)

var CommentsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_deleted_total",
		Help:      "Total number of comments deleted by their authors.",
	},
)
