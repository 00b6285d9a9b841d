package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsTable(t *testing.T) {
	assert.Equal(t, 10, PointsFor(Easy))
	assert.Equal(t, 20, PointsFor(Medium))
	assert.Equal(t, 30, PointsFor(Hard))
	assert.Equal(t, 10, PointsFor(Difficulty("unknown")))
}

func TestScoreByDifficulty(t *testing.T) {
	q, err := NewQuestion("Capital of France?", []string{"Paris", "Lyon", "Nice"}, "Paris", "")
	require.NoError(t, err)

	for _, d := range []Difficulty{Easy, Medium, Hard} {
		t.Run(string(d), func(t *testing.T) {
			right := Score(q, q.CorrectAnswer, d)
			assert.True(t, right.IsCorrect)
			assert.Equal(t, PointsFor(d), right.PointsEarned)

			for _, wrong := range q.Options[1:] {
				res := Score(q, wrong, d)
				assert.False(t, res.IsCorrect)
				assert.Zero(t, res.PointsEarned)
			}
		})
	}
}

func TestScoreIsExactMatch(t *testing.T) {
	q, err := NewQuestion("Capital of France?", []string{"Paris", "Lyon"}, "Paris", "")
	require.NoError(t, err)

	assert.False(t, Score(q, "paris", Easy).IsCorrect)
	assert.False(t, Score(q, " Paris", Easy).IsCorrect)
}

func TestLocalScorerMatchesScore(t *testing.T) {
	q, err := NewQuestion("2+2?", []string{"3", "4"}, "4", "")
	require.NoError(t, err)

	res, err := NewLocalScorer().Score(context.Background(), ScoreRequest{Question: q, Selected: "4", Difficulty: Hard})
	require.NoError(t, err)
	assert.Equal(t, ScoreResult{IsCorrect: true, PointsEarned: 30}, res)
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Medium ")
	require.NoError(t, err)
	assert.Equal(t, Medium, d)

	_, err = ParseDifficulty("expert")
	assert.Error(t, err)
}
