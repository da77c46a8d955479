// Package metrics defines the Prometheus instruments for the chat service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "jobassistant"
	subsystem = "chat"
)

// ChatMetrics instruments conversation turns. A nil *ChatMetrics is a valid
// no-op receiver so tests can skip registration.
type ChatMetrics struct {
	turnsTotal     *prometheus.CounterVec
	completedTotal prometheus.Counter
	turnDuration   *prometheus.HistogramVec
}

// NewChatMetrics registers the chat instruments with reg.
func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "turns_total",
			Help:      "Conversation turns processed, labeled by starting step and outcome.",
		}, []string{"step", "outcome"}),
		completedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "conversations_completed_total",
			Help:      "Conversations that reached the complete step.",
		}),
		turnDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "turn_duration_seconds",
			Help:      "Time spent processing one conversation turn.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"step"}),
	}

	reg.MustRegister(m.turnsTotal, m.completedTotal, m.turnDuration)
	return m
}

// TurnProcessed counts one processed turn. Outcome is "advanced" when the
// turn moved the conversation forward, "reprompt" otherwise.
func (m *ChatMetrics) TurnProcessed(step, outcome string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(step, outcome).Inc()
}

// ConversationCompleted counts a conversation reaching the terminal step.
func (m *ChatMetrics) ConversationCompleted() {
	if m == nil {
		return
	}
	m.completedTotal.Inc()
}

// ObserveTurnDuration records how long one turn took.
func (m *ChatMetrics) ObserveTurnDuration(step string, d time.Duration) {
	if m == nil {
		return
	}
	m.turnDuration.WithLabelValues(step).Observe(d.Seconds())
}
