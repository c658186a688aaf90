package core

import (
	"testing"

	"github.com/huangsam/triage/schema"
	"github.com/stretchr/testify/assert"
)

func TestComputeChurn(t *testing.T) {
	files := []string{"a.go", "b.go", "c.go"}

	t.Run("line volume drives the score", func(t *testing.T) {
		history := []schema.ChurnRecord{
			{Path: "a.go", Commits: 1, LinesAdded: 100, LinesRemoved: 50},
			{Path: "b.go", Commits: 10, LinesAdded: 5, LinesRemoved: 5},
		}
		churn := ComputeChurn(files, history)
		// a.go changed 150 lines across one commit; b.go changed 10 across ten.
		assert.Equal(t, 1.0, churn["a.go"])
		assert.Greater(t, churn["a.go"], churn["b.go"])
		assert.Equal(t, 0.0, churn["c.go"])
	})

	t.Run("history for unknown files is ignored", func(t *testing.T) {
		history := []schema.ChurnRecord{
			{Path: "deleted.go", LinesAdded: 500},
			{Path: "a.go", LinesAdded: 10},
		}
		churn := ComputeChurn(files, history)
		assert.Len(t, churn, 3)
		assert.Equal(t, 1.0, churn["a.go"])
	})

	t.Run("absent history degrades to zero", func(t *testing.T) {
		churn := ComputeChurn(files, nil)
		for _, p := range files {
			assert.Equal(t, 0.0, churn[p])
		}
	})

	t.Run("multiple records per path aggregate", func(t *testing.T) {
		history := []schema.ChurnRecord{
			{Path: "a.go", LinesAdded: 5},
			{Path: "a.go", LinesAdded: 5},
			{Path: "b.go", LinesAdded: 9},
		}
		churn := ComputeChurn([]string{"a.go", "b.go"}, history)
		assert.Equal(t, 1.0, churn["a.go"])
		assert.Equal(t, 0.0, churn["b.go"])
	})
}
