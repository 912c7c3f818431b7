// Package stats provides a minimal metrics facade backed by go-metrics.
// It keeps the go-metrics dependency out of the rest of the tree and adds
// scoped receivers that can be passed down a call tree, plus a Latency
// instrument for recording callsite latency.
//
// Hierarchical names use a '/' path separator. Variadic name elements have
// '/' characters replaced rather than rejected, because some instrument
// names are generated dynamically.
package stats

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rcrowley/go-metrics"
)

// Stats users can either reference this global receiver or construct their own.
var CurrentStatsReceiver StatsReceiver = NilStatsReceiver()

// A registry wrapper for metrics collected about the runtime behavior of
// an application. Receivers are cheap; scoping returns a copy.
type StatsReceiver interface {
	// Return a receiver that will automatically namespace elements with the
	// given scope args.
	//
	//   statsReceiver.Scope("foo", "bar").Counter("baz")  // is equivalent to
	//   statsReceiver.Counter("foo", "bar", "baz")
	Scope(scope ...string) StatsReceiver

	Counter(name ...string) Counter
	Gauge(name ...string) Gauge
	Latency(name ...string) Latency

	// Render the current instrument values as JSON.
	Render(pretty bool) []byte
}

type Counter interface {
	Inc(i int64)
	Count() int64
}

type Gauge interface {
	Update(i int64)
	Value() int64
}

// Latency records callsite latency:
//
//	defer stat.Latency("fooLatency_ms").Time().Stop()
type Latency interface {
	Time() StopWatch
	Count() int64
}

type StopWatch interface {
	Stop()
}

// DefaultStatsReceiver creates a receiver with a private registry.
func DefaultStatsReceiver() StatsReceiver {
	return &defaultStatsReceiver{registry: metrics.NewRegistry()}
}

// NilStatsReceiver is a no-op receiver for callers that don't report stats.
func NilStatsReceiver(scope ...string) StatsReceiver {
	return nilStatsReceiver{}
}

type defaultStatsReceiver struct {
	registry metrics.Registry
	scope    []string
}

func (s *defaultStatsReceiver) Scope(scope ...string) StatsReceiver {
	return &defaultStatsReceiver{registry: s.registry, scope: s.scoped(scope...)}
}

func (s *defaultStatsReceiver) Counter(name ...string) Counter {
	return metrics.GetOrRegisterCounter(s.name(name...), s.registry)
}

func (s *defaultStatsReceiver) Gauge(name ...string) Gauge {
	return &gauge{metrics.GetOrRegisterGauge(s.name(name...), s.registry)}
}

func (s *defaultStatsReceiver) Latency(name ...string) Latency {
	return &latency{metrics.GetOrRegisterTimer(s.name(name...), s.registry)}
}

func (s *defaultStatsReceiver) Render(pretty bool) []byte {
	captured := map[string]interface{}{}
	s.registry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case metrics.Counter:
			captured[name] = m.Count()
		case metrics.Gauge:
			captured[name] = m.Value()
		case metrics.Timer:
			t := m.Snapshot()
			captured[name+".count"] = t.Count()
			captured[name+".avg_ms"] = t.Mean() / float64(time.Millisecond)
			captured[name+".p95_ms"] = t.Percentile(0.95) / float64(time.Millisecond)
		}
	})
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(captured, "", "  ")
	} else {
		b, err = json.Marshal(captured)
	}
	if err != nil {
		return []byte("{}")
	}
	return b
}

func (s *defaultStatsReceiver) scoped(scope ...string) []string {
	for i, s := range scope {
		scope[i] = strings.Replace(s, "/", "_SLASH_", -1)
	}
	return append(append([]string{}, s.scope...), scope...)
}

func (s *defaultStatsReceiver) name(name ...string) string {
	return strings.Join(s.scoped(name...), "/")
}

type gauge struct {
	metrics.Gauge
}

func (g *gauge) Update(i int64) { g.Gauge.Update(i) }
func (g *gauge) Value() int64   { return g.Gauge.Value() }

type latency struct {
	metrics.Timer
}

func (l *latency) Time() StopWatch {
	return &stopWatch{start: time.Now(), timer: l.Timer}
}

func (l *latency) Count() int64 { return l.Timer.Count() }

type stopWatch struct {
	start time.Time
	timer metrics.Timer
}

func (s *stopWatch) Stop() {
	s.timer.UpdateSince(s.start)
}

// No-op implementations.

type nilStatsReceiver struct{}

func (s nilStatsReceiver) Scope(scope ...string) StatsReceiver { return s }
func (s nilStatsReceiver) Counter(name ...string) Counter      { return nilCounter{} }
func (s nilStatsReceiver) Gauge(name ...string) Gauge          { return nilGauge{} }
func (s nilStatsReceiver) Latency(name ...string) Latency      { return nilLatency{} }
func (s nilStatsReceiver) Render(pretty bool) []byte           { return []byte("{}") }

type nilCounter struct{}

func (nilCounter) Inc(i int64)  {}
func (nilCounter) Count() int64 { return 0 }

type nilGauge struct{}

func (nilGauge) Update(i int64) {}
func (nilGauge) Value() int64   { return 0 }

type nilLatency struct{}

func (nilLatency) Time() StopWatch { return nilStopWatch{} }
func (nilLatency) Count() int64    { return 0 }

type nilStopWatch struct{}

func (nilStopWatch) Stop() {}
