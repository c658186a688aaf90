package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumstatLog(t *testing.T) {
	raw := []byte(`--commit--
10	2	core/score.go
3	0	cmd/root.go
--commit--
5	5	core/score.go
-	-	assets/logo.png
`)

	records := ParseNumstatLog(raw)
	require.Len(t, records, 3)

	// Sorted by path.
	assert.Equal(t, "assets/logo.png", records[0].Path)
	assert.Equal(t, "cmd/root.go", records[1].Path)
	assert.Equal(t, "core/score.go", records[2].Path)

	t.Run("aggregates across commits", func(t *testing.T) {
		score := records[2]
		assert.Equal(t, 2, score.Commits)
		assert.Equal(t, 15, score.LinesAdded)
		assert.Equal(t, 7, score.LinesRemoved)
		assert.Equal(t, 22, score.LinesChanged())
	})

	t.Run("binary files count commits but no lines", func(t *testing.T) {
		binary := records[0]
		assert.Equal(t, 1, binary.Commits)
		assert.Equal(t, 0, binary.LinesChanged())
	})
}

func TestParseNumstatLogEmpty(t *testing.T) {
	assert.Empty(t, ParseNumstatLog(nil))
	assert.Empty(t, ParseNumstatLog([]byte("--commit--\n\n--commit--\n")))
}
