package stability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSeeder replays a fixed hash sequence, cycling if exhausted.
type scriptedSeeder struct {
	hashes []string
	calls  int
}

func (s *scriptedSeeder) SeedString(context.Context) string {
	h := s.hashes[s.calls%len(s.hashes)]
	s.calls++
	return h
}

func TestRunAllStable(t *testing.T) {
	s := &scriptedSeeder{hashes: []string{"aaaa"}}
	report, err := Run(context.Background(), s, 5, "")
	require.NoError(t, err)

	assert.True(t, report.AllStable)
	assert.Equal(t, "aaaa", report.BaselineHash)
	assert.Equal(t, 5, report.TotalRuns)
	assert.Empty(t, report.MismatchRuns)
	assert.Equal(t, []string{"aaaa"}, report.UniqueHashes)
	assert.Equal(t, "Rendering stable: all 5 hashes matched the baseline aaaa.", report.AlertMessage)
	assert.NotEmpty(t, report.SessionID)
}

func TestRunReportsMismatchRunsOneBased(t *testing.T) {
	s := &scriptedSeeder{hashes: []string{"aaaa", "bbbb", "aaaa", "cccc"}}
	report, err := Run(context.Background(), s, 4, "")
	require.NoError(t, err)

	assert.False(t, report.AllStable)
	assert.Equal(t, "aaaa", report.BaselineHash, "first hash becomes the baseline")
	assert.Equal(t, []int{2, 4}, report.MismatchRuns)
	assert.Equal(t, []string{"aaaa", "bbbb", "cccc"}, report.UniqueHashes)
	assert.Equal(t, "Inconsistencies detected: runs 2, 4 deviated from baseline aaaa.", report.AlertMessage)
}

func TestRunStoredBaselineTakesPrecedence(t *testing.T) {
	s := &scriptedSeeder{hashes: []string{"bbbb"}}
	report, err := Run(context.Background(), s, 3, "aaaa")
	require.NoError(t, err)

	assert.Equal(t, "aaaa", report.BaselineHash)
	assert.False(t, report.AllStable)
	assert.Equal(t, []int{1, 2, 3}, report.MismatchRuns)
}

func TestRunRejectsZeroRuns(t *testing.T) {
	_, err := Run(context.Background(), &scriptedSeeder{hashes: []string{"x"}}, 0, "")
	require.Error(t, err)
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, &scriptedSeeder{hashes: []string{"x"}}, 3, "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestUniqueInOrder(t *testing.T) {
	got := uniqueInOrder([]string{"c", "a", "c", "b", "a"})
	assert.Equal(t, []string{"c", "a", "b"}, got)
}
