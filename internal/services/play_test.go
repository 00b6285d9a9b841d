package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"studypal-backend/internal/quiz"
	"studypal-backend/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct{ err error }

func (s staticSource) Generate(_ context.Context, topic string, d quiz.Difficulty, n int) ([]quiz.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	return MockQuestions(topic, d, n), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingPublisher) Broadcast(_ string, msg ws.WSMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, msg.Type)
}

type bonusFeedback struct{ calls int }

func (b *bonusFeedback) RequestFeedback(_ context.Context, req quiz.FeedbackRequest) (quiz.FeedbackResult, error) {
	b.calls++
	return quiz.FeedbackResult{FeedbackText: "well done", BonusGiven: true, BonusPoints: 5 * req.Score}, nil
}

// flakyFeedback fails its first fail calls and honors context cancellation.
type flakyFeedback struct {
	fail  int
	calls int
}

func (f *flakyFeedback) RequestFeedback(ctx context.Context, _ quiz.FeedbackRequest) (quiz.FeedbackResult, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return quiz.FeedbackResult{}, err
	}
	if f.calls <= f.fail {
		return quiz.FeedbackResult{}, errors.New("feedback service unavailable")
	}
	return quiz.FeedbackResult{FeedbackText: "great run", BonusGiven: true, BonusPoints: 25}, nil
}

func answerAll(t *testing.T, p *PlayService, id string, correct []bool) *PlayState {
	t.Helper()
	var st *PlayState
	for _, c := range correct {
		cur, err := p.Get(id)
		require.NoError(t, err)
		require.NotNil(t, cur.Question)

		choice := ""
		for _, o := range cur.Question.Options {
			isRight := o == "Correct understanding of "+cur.Topic
			if isRight == c {
				choice = o
				break
			}
		}
		st, err = p.SubmitAnswer(context.Background(), id, choice)
		require.NoError(t, err)
		require.NotNil(t, st.Outcome)
		assert.Equal(t, c, st.Outcome.IsCorrect)

		st, err = p.Next(id)
		require.NoError(t, err)
	}
	return st
}

func TestPlayFullRunWithAccount(t *testing.T) {
	accounts, _ := newTestAccounts(t, time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	user, err := accounts.CreateUser("player", "player@studypal.com")
	require.NoError(t, err)

	fb := &bonusFeedback{}
	pub := &recordingPublisher{}
	p := NewPlayService(staticSource{}, nil, accounts, quiz.NewFeedbackOrchestrator(fb, time.Second), pub)

	st, err := p.Start(context.Background(), user.ID, "optics", quiz.Medium, 5)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateAwaitingAnswer, st.State)
	assert.Equal(t, 5, st.TotalQuestions)
	require.NotNil(t, st.Question)

	_, err = p.Report(context.Background(), st.ID, true)
	assert.ErrorIs(t, err, quiz.ErrSessionNotComplete)

	final := answerAll(t, p, st.ID, []bool{true, false, true, false, false})
	assert.Equal(t, quiz.StateComplete, final.State)
	assert.Nil(t, final.Question)
	assert.Equal(t, 40, final.Score)

	res, err := p.Report(context.Background(), st.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 40, res.Report.FinalScore)
	assert.Equal(t, 2, res.Report.CorrectCount)
	assert.Equal(t, 40.0, res.Report.AccuracyPercent)
	assert.True(t, res.Report.BonusGiven)
	assert.Equal(t, 10, res.Report.BonusPoints)
	require.NotNil(t, res.Account)
	assert.Equal(t, 50, res.Account.TotalPoints)
	assert.Equal(t, 1, res.Account.CurrentStreak)

	again, err := p.Report(context.Background(), st.ID, false)
	require.NoError(t, err)
	assert.Equal(t, res.Report, again.Report)
	assert.Equal(t, 50, again.Account.TotalPoints)
	assert.Equal(t, 1, fb.calls)

	assert.Equal(t, "answer_scored", pub.events[0])
	assert.Equal(t, "advanced", pub.events[1])
	assert.Contains(t, pub.events, "completed")
	assert.Equal(t, "report", pub.events[len(pub.events)-1])
}

func TestPlayReportSurvivesCancelledRequest(t *testing.T) {
	accounts, _ := newTestAccounts(t, time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	user, err := accounts.CreateUser("gone", "gone@studypal.com")
	require.NoError(t, err)

	fb := &flakyFeedback{}
	p := NewPlayService(staticSource{}, nil, accounts, quiz.NewFeedbackOrchestrator(fb, time.Second), nil)
	st, err := p.Start(context.Background(), user.ID, "optics", quiz.Easy, 1)
	require.NoError(t, err)
	answerAll(t, p, st.ID, []bool{true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := p.Report(ctx, st.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "great run", res.Report.FeedbackText)
	assert.True(t, res.Report.BonusGiven)
	assert.Equal(t, 25, res.Report.BonusPoints)
	assert.Equal(t, 35, res.Account.TotalPoints)

	again, err := p.Report(context.Background(), st.ID, true)
	require.NoError(t, err)
	assert.Equal(t, res.Report, again.Report)
	assert.Equal(t, 35, again.Account.TotalPoints)
	assert.Equal(t, 1, fb.calls)
}

func TestPlayReportRetriesAfterFeedbackFailure(t *testing.T) {
	accounts, _ := newTestAccounts(t, time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	user, err := accounts.CreateUser("retry", "retry@studypal.com")
	require.NoError(t, err)

	fb := &flakyFeedback{fail: 1}
	pub := &recordingPublisher{}
	p := NewPlayService(staticSource{}, nil, accounts, quiz.NewFeedbackOrchestrator(fb, time.Second), pub)
	st, err := p.Start(context.Background(), user.ID, "optics", quiz.Easy, 1)
	require.NoError(t, err)
	answerAll(t, p, st.ID, []bool{true})

	first, err := p.Report(context.Background(), st.ID, true)
	require.NoError(t, err)
	assert.Equal(t, quiz.FallbackFeedback, first.Report.FeedbackText)
	assert.False(t, first.Report.BonusGiven)
	assert.Equal(t, 10, first.Account.TotalPoints)
	assert.NotContains(t, pub.events, ws.EventReport)

	second, err := p.Report(context.Background(), st.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "great run", second.Report.FeedbackText)
	assert.True(t, second.Report.BonusGiven)
	assert.Equal(t, 35, second.Account.TotalPoints)
	assert.Equal(t, ws.EventReport, pub.events[len(pub.events)-1])

	third, err := p.Report(context.Background(), st.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 35, third.Account.TotalPoints)
	assert.Equal(t, 2, fb.calls)
}

func TestPlayAnonymousAndErrors(t *testing.T) {
	p := NewPlayService(staticSource{}, nil, nil, nil, nil)

	st, err := p.Start(context.Background(), 0, "sql", quiz.Easy, 1)
	require.NoError(t, err)

	_, err = p.SubmitAnswer(context.Background(), st.ID, "not an option")
	assert.ErrorIs(t, err, quiz.ErrInvalidAnswer)

	_, err = p.Next(st.ID)
	assert.ErrorIs(t, err, quiz.ErrInvalidTransition)

	final := answerAll(t, p, st.ID, []bool{true})
	assert.Equal(t, 10, final.Score)

	res, err := p.Report(context.Background(), st.ID, false)
	require.NoError(t, err)
	assert.Equal(t, quiz.FallbackFeedback, res.Report.FeedbackText)
	assert.Nil(t, res.Account)

	require.NoError(t, p.Discard(st.ID))
	_, err = p.Get(st.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, p.Discard(st.ID), ErrSessionNotFound)
}

func TestPlayStartFailures(t *testing.T) {
	accounts, _ := newTestAccounts(t, time.Now())
	p := NewPlayService(staticSource{}, nil, accounts, nil, nil)
	_, err := p.Start(context.Background(), 404, "x", quiz.Easy, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	p = NewPlayService(staticSource{err: errors.New("down")}, nil, nil, nil, nil)
	_, err = p.Start(context.Background(), 0, "x", quiz.Easy, 1)
	assert.Error(t, err)
	assert.Zero(t, p.Active())
}

func TestPlaySweepIdle(t *testing.T) {
	p := NewPlayService(staticSource{}, nil, nil, nil, nil)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	p.now = clock.Now

	stale, err := p.Start(context.Background(), 0, "a", quiz.Easy, 1)
	require.NoError(t, err)
	clock.t = clock.t.Add(90 * time.Minute)
	fresh, err := p.Start(context.Background(), 0, "b", quiz.Easy, 1)
	require.NoError(t, err)

	clock.t = clock.t.Add(45 * time.Minute)
	assert.Equal(t, 1, p.SweepIdle(time.Hour))
	_, err = p.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = p.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestPlayConcurrentSubmitsOnlyOneWins(t *testing.T) {
	p := NewPlayService(staticSource{}, nil, nil, nil, nil)
	st, err := p.Start(context.Background(), 0, "race", quiz.Hard, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.SubmitAnswer(context.Background(), st.ID, st.Question.Options[0]); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, succeeded)
}

func TestStartSweeperRejectsBadSchedule(t *testing.T) {
	p := NewPlayService(staticSource{}, nil, nil, nil, nil)
	_, err := StartSweeper(p, "every now and then", time.Hour)
	assert.Error(t, err)

	c, err := StartSweeper(p, "@every 1h", time.Hour)
	require.NoError(t, err)
	c.Stop()
}
