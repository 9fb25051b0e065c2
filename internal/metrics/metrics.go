// Package metrics records per-agent usage statistics in a small JSON store
// and derives optimization suggestions from recent activity. Store failures
// degrade to a fresh in-memory store; recording is advisory and never blocks
// a hook.
package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chaperonehq/chaperone/internal/constants"
	"github.com/chaperonehq/chaperone/internal/logger"
	"github.com/klauspost/compress/gzip"
)

// recentWindow bounds how long an invocation counts as "recent".
const recentWindow = 24 * time.Hour

// taskExcerptLen truncates stored task descriptions.
const taskExcerptLen = 100

// maxStoreSize is the size at which the store is gzip-archived and restarted.
const maxStoreSize = 1 << 20

// Store is the on-disk metrics format.
type Store struct {
	Agents map[string]*AgentStats `json:"agents"`
	Daily  map[string]*DayStats   `json:"daily_stats"`
}

// AgentStats tracks one agent's usage.
type AgentStats struct {
	TotalCalls    int     `json:"total_calls"`
	RecentCalls   []Call  `json:"recent_calls"`
	AvgComplexity float64 `json:"avg_complexity"`
}

// Call is one recorded invocation.
type Call struct {
	Timestamp  time.Time `json:"timestamp"`
	Task       string    `json:"task"`
	Complexity int       `json:"complexity"`
}

// DayStats aggregates calls per calendar day.
type DayStats struct {
	TotalCalls int      `json:"total_calls"`
	AgentsUsed []string `json:"agents_used"`
}

// DefaultPath returns the default metrics store path
// (~/.local/share/chaperone/metrics.json, or under $CHAPERONE_DATA).
func DefaultPath() (string, error) {
	if dir := os.Getenv(constants.EnvDataDir); dir != "" {
		return filepath.Join(dir, constants.MetricsFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.XDGDataSubdir, constants.AppName, constants.MetricsFileName), nil
}

// Load reads the store from path. Any failure yields a fresh empty store.
func Load(path string) *Store {
	archiveIfLarge(path)

	s := &Store{
		Agents: make(map[string]*AgentStats),
		Daily:  make(map[string]*DayStats),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		logger.Debug("metrics store unreadable, starting fresh", "path", path, "error", err)
		return &Store{Agents: make(map[string]*AgentStats), Daily: make(map[string]*DayStats)}
	}
	if s.Agents == nil {
		s.Agents = make(map[string]*AgentStats)
	}
	if s.Daily == nil {
		s.Daily = make(map[string]*DayStats)
	}
	return s
}

// Save writes the store to path.
func Save(path string, s *Store) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirMode); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, constants.FileMode)
}

// archiveIfLarge gzips an oversized store to <path>.1.gz and removes the
// original so recording starts over.
func archiveIfLarge(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxStoreSize {
		return
	}

	src, err := os.Open(path)
	if err != nil {
		return
	}
	defer src.Close()

	dst, err := os.OpenFile(path+".1.gz", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FileMode)
	if err != nil {
		return
	}
	defer dst.Close()

	gz := gzip.NewWriter(dst)
	if _, err := io.Copy(gz, src); err != nil {
		gz.Close()
		return
	}
	if err := gz.Close(); err != nil {
		return
	}
	os.Remove(path)
}

// Record registers one invocation of agent with the given task description
// and returns the agent's updated stats.
func (s *Store) Record(agent, task string, now time.Time) *AgentStats {
	stats := s.Agents[agent]
	if stats == nil {
		stats = &AgentStats{}
		s.Agents[agent] = stats
	}

	excerpt := task
	if len(excerpt) > taskExcerptLen {
		excerpt = excerpt[:taskExcerptLen]
	}

	stats.TotalCalls++
	stats.RecentCalls = append(stats.RecentCalls, Call{
		Timestamp:  now,
		Task:       excerpt,
		Complexity: Complexity(task),
	})

	cutoff := now.Add(-recentWindow)
	kept := stats.RecentCalls[:0]
	for _, c := range stats.RecentCalls {
		if c.Timestamp.After(cutoff) {
			kept = append(kept, c)
		}
	}
	stats.RecentCalls = kept

	sum := 0
	for _, c := range stats.RecentCalls {
		sum += c.Complexity
	}
	if len(stats.RecentCalls) > 0 {
		stats.AvgComplexity = float64(sum) / float64(len(stats.RecentCalls))
	}

	day := now.Format("2006-01-02")
	daily := s.Daily[day]
	if daily == nil {
		daily = &DayStats{}
		s.Daily[day] = daily
	}
	daily.TotalCalls++
	if !contains(daily.AgentsUsed, agent) {
		daily.AgentsUsed = append(daily.AgentsUsed, agent)
		sort.Strings(daily.AgentsUsed)
	}

	return stats
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// complexityKeywords weights task-description verbs.
var complexityKeywords = map[string]int{
	"implement": 3, "create": 3, "build": 4, "design": 4,
	"refactor": 3, "migrate": 4, "integrate": 4,
	"fix": 2, "update": 2, "modify": 2,
	"analyze": 2, "review": 2, "document": 2,
	"test": 2, "debug": 3, "optimize": 3,
}

// Complexity estimates task complexity on a 1-5 scale from its description.
func Complexity(task string) int {
	c := 1
	for _, word := range strings.Fields(strings.ToLower(task)) {
		if w, ok := complexityKeywords[word]; ok && w > c {
			c = w
		}
	}
	if len(task) > 200 {
		c++
	}
	if c > 5 {
		c = 5
	}
	return c
}

// Suggestions derives optimization hints from an agent's usage pattern.
func Suggestions(stats *AgentStats) []string {
	if stats == nil {
		return nil
	}

	var out []string
	if stats.TotalCalls > 10 && stats.AvgComplexity < 2 {
		out = append(out, "consider combining simple tasks to reduce overhead")
	}

	if n := len(stats.RecentCalls); n > 5 {
		last := stats.RecentCalls[n-5:]
		distinct := make(map[string]bool, len(last))
		for _, c := range last {
			distinct[c.Task] = true
		}
		if len(distinct) < 3 {
			out = append(out, "detected repetitive tasks - consider batch processing")
		}
	}
	return out
}

// Summary formats the one-line stderr summary for an agent.
func Summary(stats *AgentStats) string {
	return fmt.Sprintf("agent calls: %d (avg complexity: %.1f)", stats.TotalCalls, stats.AvgComplexity)
}
