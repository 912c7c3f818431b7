package stats

import (
	"encoding/json"
	"testing"
)

func Test_ScopedCounters(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Scope("foo", "bar").Counter("baz").Inc(1)
	stat.Counter("foo", "bar", "baz").Inc(2)

	if count := stat.Scope("foo").Counter("bar", "baz").Count(); count != 3 {
		t.Errorf("expected scoped and flat names to hit the same counter, got %d", count)
	}
}

func Test_ScopeSlashesEscaped(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Counter("a/b").Inc(1)
	if count := stat.Counter("a_SLASH_b").Count(); count != 1 {
		t.Errorf("expected slash in name element to be escaped, got %d", count)
	}
}

func Test_GaugeAndLatency(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Gauge("g").Update(42)
	if v := stat.Gauge("g").Value(); v != 42 {
		t.Errorf("expected gauge 42, got %d", v)
	}

	stat.Latency("l_ms").Time().Stop()
	if c := stat.Latency("l_ms").Count(); c != 1 {
		t.Errorf("expected one latency sample, got %d", c)
	}
}

func Test_RenderIsJSON(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Counter("c").Inc(5)
	stat.Latency("l_ms").Time().Stop()

	for _, pretty := range []bool{false, true} {
		var out map[string]interface{}
		if err := json.Unmarshal(stat.Render(pretty), &out); err != nil {
			t.Fatalf("render(pretty=%v) is not json: %v", pretty, err)
		}
		if out["c"] != float64(5) {
			t.Errorf("expected counter 5 in render, got %v", out["c"])
		}
	}
}

func Test_NilReceiverIsSafe(t *testing.T) {
	stat := NilStatsReceiver()
	stat.Scope("x").Counter("y").Inc(1)
	stat.Gauge("g").Update(1)
	stat.Latency("l").Time().Stop()
	if string(stat.Render(true)) != "{}" {
		t.Errorf("expected nil receiver to render {}, got %s", stat.Render(true))
	}
}
