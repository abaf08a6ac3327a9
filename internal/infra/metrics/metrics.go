// Package metrics provides Prometheus metrics for QuestLog: counters and
// gauges for activity logging, rewards, badges, chests and HTTP traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Activities ─────────────────────────────────────────────────────────────

// ActivitiesLogged tracks logged activities by category.
var ActivitiesLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questlog",
	Name:      "activities_logged_total",
	Help:      "Total activities logged.",
}, []string{"category"})

// ActivityMinutes tracks logged minutes by category.
var ActivityMinutes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questlog",
	Name:      "activity_minutes_total",
	Help:      "Total activity minutes logged.",
}, []string{"category"})

// ─── Rewards ────────────────────────────────────────────────────────────────

// XPAwarded tracks total XP granted.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questlog",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded across all users.",
})

// LevelUps tracks level crossings.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questlog",
	Name:      "level_ups_total",
	Help:      "Total level-up events.",
})

// BadgesEarned tracks newly earned badges by name.
var BadgesEarned = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questlog",
	Name:      "badges_earned_total",
	Help:      "Total badges earned.",
}, []string{"badge"})

// ChestsOpened tracks loot chest opens by drawn rarity.
var ChestsOpened = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questlog",
	Name:      "chests_opened_total",
	Help:      "Total loot chests opened.",
}, []string{"rarity"})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// RequestsInFlight tracks concurrently served API requests.
var RequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "questlog",
	Name:      "http_requests_in_flight",
	Help:      "Number of API requests currently being served.",
})

// RequestDuration tracks API request duration by route pattern.
var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "questlog",
	Name:      "http_request_duration_seconds",
	Help:      "API request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route"})
