package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestComplexity(t *testing.T) {
	tests := []struct {
		name string
		task string
		want int
	}{
		{"no keywords", "look at the thing", 1},
		{"fix", "fix the login bug", 2},
		{"implement", "implement the parser", 3},
		{"build beats fix", "fix and build the pipeline", 4},
		{"long description bumps", "design " + strings.Repeat("x", 200), 5},
		{"capped at five", "build migrate integrate design " + strings.Repeat("x", 300), 5},
		{"case insensitive", "REFACTOR the module", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Complexity(tt.task); got != tt.want {
				t.Errorf("Complexity(%q) = %d, want %d", tt.task, got, tt.want)
			}
		})
	}
}

func TestRecord(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "missing.json"))
	now := time.Now()

	stats := s.Record("code-quality-reviewer", "review the change", now)
	if stats.TotalCalls != 1 {
		t.Errorf("TotalCalls = %d, want 1", stats.TotalCalls)
	}
	if len(stats.RecentCalls) != 1 {
		t.Errorf("RecentCalls = %d, want 1", len(stats.RecentCalls))
	}
	if stats.AvgComplexity != 2 {
		t.Errorf("AvgComplexity = %v, want 2", stats.AvgComplexity)
	}

	day := now.Format("2006-01-02")
	daily := s.Daily[day]
	if daily == nil || daily.TotalCalls != 1 || len(daily.AgentsUsed) != 1 {
		t.Errorf("daily stats not recorded: %+v", daily)
	}

	// A second agent lands in the same day bucket.
	s.Record("frontend-ui-specialist", "build the widget", now)
	if daily.TotalCalls != 2 || len(daily.AgentsUsed) != 2 {
		t.Errorf("daily stats after second agent: %+v", daily)
	}
}

func TestRecordExpiresOldCalls(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "missing.json"))
	now := time.Now()

	s.Record("a", "fix one", now.Add(-25*time.Hour))
	stats := s.Record("a", "fix two", now)

	if stats.TotalCalls != 2 {
		t.Errorf("TotalCalls = %d, want 2", stats.TotalCalls)
	}
	if len(stats.RecentCalls) != 1 {
		t.Errorf("old call not expired: %+v", stats.RecentCalls)
	}
}

func TestRecordTruncatesTask(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "missing.json"))
	stats := s.Record("a", strings.Repeat("y", 300), time.Now())
	if n := len(stats.RecentCalls[0].Task); n != 100 {
		t.Errorf("stored task length = %d, want 100", n)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")

	s := Load(path)
	s.Record("a", "implement parser", time.Now())
	if err := Save(path, s); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded := Load(path)
	if loaded.Agents["a"] == nil || loaded.Agents["a"].TotalCalls != 1 {
		t.Errorf("roundtrip lost data: %+v", loaded.Agents)
	}
}

func TestLoadGarbageStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	if s == nil || len(s.Agents) != 0 {
		t.Errorf("garbage store should load fresh: %+v", s)
	}
}

func TestSuggestions(t *testing.T) {
	now := time.Now()

	t.Run("high frequency low complexity", func(t *testing.T) {
		s := Load(filepath.Join(t.TempDir(), "m.json"))
		var stats *AgentStats
		for i := 0; i < 11; i++ {
			stats = s.Record("a", "look at thing "+strings.Repeat("z", i), now)
		}
		found := false
		for _, sg := range Suggestions(stats) {
			if strings.Contains(sg, "combining simple tasks") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected combining suggestion, got %v", Suggestions(stats))
		}
	})

	t.Run("repetitive tasks", func(t *testing.T) {
		s := Load(filepath.Join(t.TempDir(), "m.json"))
		var stats *AgentStats
		for i := 0; i < 6; i++ {
			stats = s.Record("a", "fix the same bug", now)
		}
		found := false
		for _, sg := range Suggestions(stats) {
			if strings.Contains(sg, "repetitive tasks") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected repetitive suggestion, got %v", Suggestions(stats))
		}
	})

	t.Run("nil stats", func(t *testing.T) {
		if got := Suggestions(nil); got != nil {
			t.Errorf("Suggestions(nil) = %v, want nil", got)
		}
	})
}

func TestSummary(t *testing.T) {
	stats := &AgentStats{TotalCalls: 3, AvgComplexity: 2.5}
	got := Summary(stats)
	if !strings.Contains(got, "3") || !strings.Contains(got, "2.5") {
		t.Errorf("Summary() = %q", got)
	}
}
