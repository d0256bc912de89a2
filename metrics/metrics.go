// Package metrics counts bus traffic with Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "oddeven"

// Collector implements bus.Metrics.
type Collector struct {
	sent      *prometheus.CounterVec
	delivered *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Messages sent to a channel.",
		}, []string{"channel"}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_delivered_total",
			Help:      "Messages queued for a subscriber.",
		}, []string{"channel", "subscriber"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_rejected_total",
			Help:      "Messages rejected because the subscriber queue was full.",
		}, []string{"channel", "subscriber"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processing_failures_total",
			Help:      "Messages a subscriber failed to process.",
		}, []string{"channel", "subscriber"}),
	}
	for _, col := range []prometheus.Collector{c.sent, c.delivered, c.rejected, c.failed} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Sent counts a message accepted by channel.
func (c *Collector) Sent(channel string) {
	c.sent.WithLabelValues(channel).Inc()
}

// Delivered counts a message queued for subscriber.
func (c *Collector) Delivered(channel, subscriber string) {
	c.delivered.WithLabelValues(channel, subscriber).Inc()
}

// Rejected counts a message dropped because the queue of subscriber was full.
func (c *Collector) Rejected(channel, subscriber string) {
	c.rejected.WithLabelValues(channel, subscriber).Inc()
}

// Failed counts a message subscriber failed to process.
func (c *Collector) Failed(channel, subscriber string) {
	c.failed.WithLabelValues(channel, subscriber).Inc()
}

// Totals sums every counter over its labels, keyed by metric name without namespace.
func (c *Collector) Totals() map[string]float64 {
	return map[string]float64{
		"messages_sent":       sum(c.sent),
		"messages_delivered":  sum(c.delivered),
		"messages_rejected":   sum(c.rejected),
		"processing_failures": sum(c.failed),
	}
}

func sum(vec *prometheus.CounterVec) float64 {
	ch := make(chan prometheus.Metric)
	go func() {
		vec.Collect(ch)
		close(ch)
	}()

	var total float64
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			continue
		}
		total += pb.GetCounter().GetValue()
	}
	return total
}
