package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/models"
)

// ResultLog incrementally persists analysis results so an interrupted
// run leaves everything computed so far on disk. The whole list is
// rewritten per append; result counts are small enough that simplicity
// wins over an append-only format.
type ResultLog struct {
	mu      sync.Mutex
	path    string
	results []models.AnalysisResult
}

// NewResultLog creates an empty log at path. Every run starts fresh:
// the first Append replaces whatever file a previous run left behind,
// so the file always holds exactly one run's ordered results.
func NewResultLog(path string) *ResultLog {
	return &ResultLog{path: path}
}

// LoadResults reads the results a previous run saved at path. A missing
// or malformed file reads as empty.
func LoadResults(path string) []models.AnalysisResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var results []models.AnalysisResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil
	}
	return results
}

// Append records a result and flushes the full list to disk.
func (l *ResultLog) Append(result models.AnalysisResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, result)

	data, err := json.MarshalIndent(l.results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create results directory: %w", err)
		}
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// Reset drops all recorded results and removes the file.
func (l *ResultLog) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = nil
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove results: %w", err)
	}
	return nil
}

// Results returns a copy of the recorded results.
func (l *ResultLog) Results() []models.AnalysisResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.AnalysisResult, len(l.results))
	copy(out, l.results)
	return out
}

func (l *ResultLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.results)
}
