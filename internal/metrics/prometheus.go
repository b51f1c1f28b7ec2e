package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/runtofuture/ethereumj/internal/publish"
)

// Prom collects event bus metrics and implements publish.Stats.
type Prom struct {
	reg *prometheus.Registry

	EventsPublished *prometheus.CounterVec
	EventsMatched   *prometheus.CounterVec
	EventsUnmatched prometheus.Counter
	Subscribers     prometheus.Gauge
	QueueDepth      prometheus.Gauge
	DispatchSeconds prometheus.Summary
}

func NewProm() *Prom {
	reg := prometheus.NewRegistry()
	p := &Prom{
		reg: reg,
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "events_published_total", Help: "Events published, by category"},
			[]string{"category"}),
		EventsMatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "events_matched_total", Help: "Subscriber deliveries scheduled, by category"},
			[]string{"category"}),
		EventsUnmatched: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "events_unmatched_total", Help: "Publishes that matched no subscriber"}),
		Subscribers: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "event_subscribers", Help: "Currently registered subscriptions"}),
		QueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "event_dispatch_queue_depth", Help: "Tasks waiting in the dispatch queue"}),
		DispatchSeconds: prometheus.NewSummary(
			prometheus.SummaryOpts{
				Name:       "event_dispatch_seconds",
				Help:       "Time spent running one dispatch task",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			}),
	}
	reg.MustRegister(p.EventsPublished, p.EventsMatched, p.EventsUnmatched, p.Subscribers, p.QueueDepth, p.DispatchSeconds)
	return p
}

// TimedExecutor wraps inner so that every task it runs reports its duration
// to DispatchSeconds.
func (p *Prom) TimedExecutor(inner publish.Executor) publish.Executor {
	return timedExecutor{inner: inner, prom: p}
}

type timedExecutor struct {
	inner publish.Executor
	prom  *Prom
}

func (e timedExecutor) Execute(t publish.Task) {
	e.inner.Execute(timedTask{Task: t, prom: e.prom})
}

type timedTask struct {
	publish.Task
	prom *Prom
}

func (t timedTask) Run() {
	start := time.Now()
	t.Task.Run()
	t.prom.DispatchSeconds.Observe(time.Since(start).Seconds())
}

func (t timedTask) String() string { return fmt.Sprint(t.Task) }

func (p *Prom) Handler() http.Handler { return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{}) }

// Published implements publish.Stats.
func (p *Prom) Published(c publish.Category, matched int) {
	p.EventsPublished.WithLabelValues(string(c)).Inc()
	if matched == 0 {
		p.EventsUnmatched.Inc()
		return
	}
	p.EventsMatched.WithLabelValues(string(c)).Add(float64(matched))
}
