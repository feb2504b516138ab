// Package stability re-runs the fingerprint pipeline and checks that the
// digest holds still. A host whose digest drifts between back-to-back runs
// cannot serve as a seed source; the report pinpoints which runs deviated
// from the baseline.
package stability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Seeder produces the digest under test. The pipeline façade satisfies it.
type Seeder interface {
	SeedString(ctx context.Context) string
}

// Report is the outcome of one stability session.
type Report struct {
	SessionID    string    `json:"sessionId"`
	CapturedAt   time.Time `json:"capturedAt"`
	BaselineHash string    `json:"baselineHash"`
	Hashes       []string  `json:"hashes"`
	UniqueHashes []string  `json:"uniqueHashes"` // observation order
	MismatchRuns []int     `json:"mismatchRuns"` // 1-based run numbers
	TotalRuns    int       `json:"totalRuns"`
	AllStable    bool      `json:"allStable"`
	AlertMessage string    `json:"alertMessage"`
}

// Run executes the pipeline runs times and compares every digest against the
// baseline. A stored baseline wins; when none is given the first observed
// hash becomes the baseline.
func Run(ctx context.Context, s Seeder, runs int, storedBaseline string) (*Report, error) {
	if runs < 1 {
		return nil, fmt.Errorf("stability: run count must be >= 1, got %d", runs)
	}

	hashes := make([]string, 0, runs)
	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("stability: session aborted after %d runs: %w", i, err)
		}
		hashes = append(hashes, s.SeedString(ctx))
	}

	baseline := storedBaseline
	if baseline == "" {
		baseline = hashes[0]
	}

	var mismatches []int
	for i, h := range hashes {
		if h != baseline {
			mismatches = append(mismatches, i+1)
		}
	}
	allStable := len(mismatches) == 0

	report := &Report{
		SessionID:    uuid.New().String(),
		CapturedAt:   time.Now().UTC(),
		BaselineHash: baseline,
		Hashes:       hashes,
		UniqueHashes: uniqueInOrder(hashes),
		MismatchRuns: mismatches,
		TotalRuns:    len(hashes),
		AllStable:    allStable,
		AlertMessage: alertMessage(baseline, len(hashes), mismatches),
	}
	return report, nil
}

// uniqueInOrder deduplicates while preserving first-seen order.
func uniqueInOrder(hashes []string) []string {
	seen := make(map[string]struct{}, len(hashes))
	var out []string
	for _, h := range hashes {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

func alertMessage(baseline string, total int, mismatches []int) string {
	if len(mismatches) == 0 {
		return fmt.Sprintf("Rendering stable: all %d hashes matched the baseline %s.", total, baseline)
	}
	runs := make([]string, len(mismatches))
	for i, n := range mismatches {
		runs[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("Inconsistencies detected: runs %s deviated from baseline %s.",
		strings.Join(runs, ", "), baseline)
}
