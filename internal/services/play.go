package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"studypal-backend/internal/models"
	"studypal-backend/internal/quiz"
	"studypal-backend/internal/ws"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("quiz session not found")

// QuestionSource produces the questions for a new quiz.
type QuestionSource interface {
	Generate(ctx context.Context, topic string, d quiz.Difficulty, n int) ([]quiz.Question, error)
}

// Accounts is the part of the account store a running quiz needs.
type Accounts interface {
	GetUser(userID uint) (*models.User, error)
	RecordAnswer(userID uint, topic string, d quiz.Difficulty, isCorrect bool, points int) (*models.User, error)
	AddBonus(userID uint, points int) error
}

type Publisher interface {
	Broadcast(sessionID string, message ws.WSMessage)
}

type playEntry struct {
	mu         sync.Mutex
	id         string
	userID     uint
	session    *quiz.Session
	report     *quiz.SessionReport
	lastActive time.Time
}

// PlayService keeps the running quiz sessions in memory. Calls on one
// session are serialized by its entry lock; different sessions run in
// parallel.
type PlayService struct {
	questions QuestionSource
	scorer    quiz.Scorer
	accounts  Accounts
	feedback  *quiz.FeedbackOrchestrator
	events    Publisher
	now       func() time.Time

	mu      sync.RWMutex
	entries map[string]*playEntry
}

func NewPlayService(questions QuestionSource, scorer quiz.Scorer, accounts Accounts, feedback *quiz.FeedbackOrchestrator, events Publisher) *PlayService {
	if scorer == nil {
		scorer = quiz.NewLocalScorer()
	}
	return &PlayService{
		questions: questions,
		scorer:    scorer,
		accounts:  accounts,
		feedback:  feedback,
		events:    events,
		now:       time.Now,
		entries:   make(map[string]*playEntry),
	}
}

type QuestionView struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

type AccountSummary struct {
	TotalPoints   int `json:"total_points"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

func summarize(u *models.User) *AccountSummary {
	if u == nil {
		return nil
	}
	return &AccountSummary{
		TotalPoints:   u.TotalPoints,
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
	}
}

type PlayState struct {
	ID             string          `json:"id"`
	UserID         uint            `json:"user_id,omitempty"`
	Topic          string          `json:"topic"`
	Difficulty     quiz.Difficulty `json:"difficulty"`
	State          quiz.State      `json:"state"`
	CurrentIndex   int             `json:"current_index"`
	TotalQuestions int             `json:"total_questions"`
	Score          int             `json:"score"`
	Question       *QuestionView   `json:"question,omitempty"`
	Outcome        *quiz.Outcome   `json:"outcome,omitempty"`
	Account        *AccountSummary `json:"account,omitempty"`
}

type ReportResult struct {
	ID      string             `json:"id"`
	Report  quiz.SessionReport `json:"report"`
	Account *AccountSummary    `json:"account,omitempty"`
}

func (e *playEntry) state() *PlayState {
	s := e.session
	st := &PlayState{
		ID:             e.id,
		UserID:         e.userID,
		Topic:          s.Topic,
		Difficulty:     s.Difficulty,
		State:          s.State(),
		CurrentIndex:   s.CurrentIndex(),
		TotalQuestions: s.TotalQuestions(),
		Score:          s.Score(),
	}
	if q, ok := s.Current(); ok {
		st.Question = &QuestionView{Text: q.Text, Options: q.Options}
	}
	if out, ok := s.Outcome(); ok {
		st.Outcome = &out
	}
	return st
}

// Start generates questions and opens a new session. userID 0 plays
// anonymously and nothing is credited to an account.
func (p *PlayService) Start(ctx context.Context, userID uint, topic string, d quiz.Difficulty, n int) (*PlayState, error) {
	if userID != 0 && p.accounts != nil {
		if _, err := p.accounts.GetUser(userID); err != nil {
			return nil, err
		}
	}

	questions, err := p.questions.Generate(ctx, topic, d, n)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	session, err := quiz.NewSession(topic, d, questions)
	if err != nil {
		return nil, err
	}

	e := &playEntry{
		id:         uuid.NewString(),
		userID:     userID,
		session:    session,
		lastActive: p.now(),
	}
	p.mu.Lock()
	p.entries[e.id] = e
	p.mu.Unlock()

	log.Printf("play: started %s topic=%q difficulty=%s questions=%d", e.id, topic, d, session.TotalQuestions())
	return e.state(), nil
}

func (p *PlayService) lookup(id string) (*playEntry, error) {
	p.mu.RLock()
	e, ok := p.entries[id]
	p.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// acquire returns the entry locked. A session discarded while the caller
// waited for the lock is reported as not found.
func (p *PlayService) acquire(id string) (*playEntry, error) {
	e, err := p.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	if cur, _ := p.lookup(id); cur != e {
		e.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	e.lastActive = p.now()
	return e, nil
}

func (p *PlayService) Get(id string) (*PlayState, error) {
	e, err := p.acquire(id)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()
	return e.state(), nil
}

func (p *PlayService) SubmitAnswer(ctx context.Context, id, selected string) (*PlayState, error) {
	e, err := p.acquire(id)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	out, err := e.session.SubmitAnswer(ctx, p.scorer, selected)
	if err != nil {
		return nil, err
	}

	st := e.state()
	if e.userID != 0 && p.accounts != nil {
		user, err := p.accounts.RecordAnswer(e.userID, e.session.Topic, e.session.Difficulty, out.IsCorrect, out.PointsEarned)
		if err != nil {
			log.Printf("play: %s: recording answer for user %d: %v", id, e.userID, err)
		}
		st.Account = summarize(user)
	}

	p.publish(id, ws.EventAnswerScored, st)
	return st, nil
}

func (p *PlayService) Next(id string) (*PlayState, error) {
	e, err := p.acquire(id)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	next, err := e.session.Advance()
	if err != nil {
		return nil, err
	}

	st := e.state()
	if next == quiz.StateComplete {
		p.publish(id, ws.EventCompleted, st)
	} else {
		p.publish(id, ws.EventAdvanced, st)
	}
	return st, nil
}

// Report builds the end-of-session report and merges the feedback service's
// answer. The first report the service answered is kept: later calls return
// it unchanged so a bonus is only credited once. A fallback report is not
// kept, so a retry asks the service again. The feedback call outlives a
// disconnecting client and is bounded by the orchestrator timeout.
func (p *PlayService) Report(ctx context.Context, id string, liked bool) (*ReportResult, error) {
	e, err := p.acquire(id)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	res := &ReportResult{ID: id}
	if e.report == nil {
		report, err := quiz.BuildReport(e.session)
		if err != nil {
			return nil, err
		}
		report, answered := p.feedback.TryEnrich(context.WithoutCancel(ctx), report, e.session, e.userID, liked)
		if !answered {
			log.Printf("play: %s: feedback unavailable, report not kept", id)
			res.Report = report
		} else {
			if report.BonusGiven && e.userID != 0 && p.accounts != nil {
				if err := p.accounts.AddBonus(e.userID, report.BonusPoints); err != nil {
					log.Printf("play: %s: crediting bonus for user %d: %v", id, e.userID, err)
				}
			}
			e.report = &report
			p.publish(id, ws.EventReport, report)
		}
	}
	if e.report != nil {
		res.Report = *e.report
	}

	if e.userID != 0 && p.accounts != nil {
		if user, err := p.accounts.GetUser(e.userID); err == nil {
			res.Account = summarize(user)
		}
	}
	return res, nil
}

func (p *PlayService) Discard(id string) error {
	p.mu.Lock()
	_, ok := p.entries[id]
	delete(p.entries, id)
	p.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	p.publish(id, ws.EventDiscarded, map[string]string{"id": id})
	return nil
}

// SweepIdle discards sessions untouched for longer than ttl.
func (p *PlayService) SweepIdle(ttl time.Duration) int {
	cutoff := p.now().Add(-ttl)

	p.mu.RLock()
	candidates := make([]*playEntry, 0)
	for _, e := range p.entries {
		candidates = append(candidates, e)
	}
	p.mu.RUnlock()

	removed := 0
	for _, e := range candidates {
		e.mu.Lock()
		idle := e.lastActive.Before(cutoff)
		if idle {
			p.mu.Lock()
			if p.entries[e.id] == e {
				delete(p.entries, e.id)
				removed++
			}
			p.mu.Unlock()
		}
		e.mu.Unlock()
	}
	if removed > 0 {
		log.Printf("play: swept %d idle sessions", removed)
	}
	return removed
}

func (p *PlayService) Active() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

func (p *PlayService) publish(id, event string, data interface{}) {
	if p.events == nil {
		return
	}
	p.events.Broadcast(id, ws.WSMessage{Type: event, Data: data})
}
