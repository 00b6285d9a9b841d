package quiz

import "context"

var pointsTable = map[Difficulty]int{
	Easy:   10,
	Medium: 20,
	Hard:   30,
}

// PointsFor returns the points awarded for a correct answer. Unknown
// difficulties earn the easy rate.
func PointsFor(d Difficulty) int {
	if p, ok := pointsTable[d]; ok {
		return p
	}
	return pointsTable[Easy]
}

type ScoreRequest struct {
	Question   Question
	Selected   string
	Topic      string
	Difficulty Difficulty
}

type ScoreResult struct {
	IsCorrect    bool `json:"is_correct"`
	PointsEarned int  `json:"points_earned"`
}

// Scorer judges a submitted answer. Implementations backed by a remote
// evaluator may block; the session commits nothing until Score returns.
type Scorer interface {
	Score(ctx context.Context, req ScoreRequest) (ScoreResult, error)
}

// Score is the local grading rule: exact string match, no case or
// whitespace normalization.
func Score(q Question, selected string, d Difficulty) ScoreResult {
	if selected != q.CorrectAnswer {
		return ScoreResult{}
	}
	return ScoreResult{IsCorrect: true, PointsEarned: PointsFor(d)}
}

type LocalScorer struct{}

func NewLocalScorer() LocalScorer {
	return LocalScorer{}
}

func (LocalScorer) Score(_ context.Context, req ScoreRequest) (ScoreResult, error) {
	return Score(req.Question, req.Selected, req.Difficulty), nil
}
