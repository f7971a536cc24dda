// Package prom exports loop activity as Prometheus metrics.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-apiutil/loop"
)

const namespace = "loop"

var (
	_ loop.Observer        = (*Metrics)(nil)
	_ prometheus.Collector = (*Metrics)(nil)
)

// Metrics is a loop observer and a prometheus.Collector. One Metrics may be
// shared by many loops; register it once.
type Metrics struct {
	// tasks
	activeTasks   prometheus.Gauge
	tasksStarted  prometheus.Counter
	tasksFinished *prometheus.CounterVec
	taskDuration  prometheus.Histogram

	// loops
	loopsCreated prometheus.Counter
	loopsClosed  prometheus.Counter
	runs         *prometheus.CounterVec
	runWait      prometheus.Histogram
}

// New returns a new Metrics observer.
func New() *Metrics {
	return &Metrics{
		activeTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "active_tasks",
			Help: "Routines started and not yet finished.",
		}),
		tasksStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "tasks_started_total",
			Help: "Routines that acquired the loop baton.",
		}),
		tasksFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "tasks_finished_total",
			Help: "Routines finished, by result.",
		}, []string{"result"}),
		taskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "task_duration_seconds",
			Help:    "Routine wall time including suspensions.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
		loopsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "created_total",
			Help: "Loops created.",
		}),
		loopsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "closed_total",
			Help: "Loops closed.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "runs_total",
			Help: "Blocking runs joined, by result.",
		}, []string{"result"}),
		runWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "run_wait_seconds",
			Help:    "Time callers spent blocked in Run.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.activeTasks, m.tasksStarted, m.tasksFinished, m.taskDuration,
		m.loopsCreated, m.loopsClosed, m.runs, m.runWait,
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

func (m *Metrics) LoopCreated(_ context.Context) {
	m.loopsCreated.Inc()
}

func (m *Metrics) LoopClosed(_ context.Context, _ error) {
	m.loopsClosed.Inc()
}

// RunJoined counts a run and records how long its caller was blocked.
func (m *Metrics) RunJoined(_ context.Context, wait time.Duration, err error) {
	m.runs.WithLabelValues(result(err, false)).Inc()
	m.runWait.Observe(wait.Seconds())
}

func (m *Metrics) TaskStarted(_ context.Context) {
	m.activeTasks.Inc()
	m.tasksStarted.Inc()
}

// TaskFinished decrements active tasks and tracks result and duration.
func (m *Metrics) TaskFinished(_ context.Context, dur time.Duration, err error, panicked bool) {
	m.activeTasks.Dec()
	m.tasksFinished.WithLabelValues(result(err, panicked)).Inc()
	m.taskDuration.Observe(dur.Seconds())
}

func result(err error, panicked bool) string {
	switch {
	case panicked:
		return "panic"
	case err != nil:
		return "error"
	default:
		return "ok"
	}
}
