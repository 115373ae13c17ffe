// Package trivia runs timed guess-the-anime rounds, one per channel.
package trivia

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// DefaultRoundDuration is how long a round stays open for answers.
const DefaultRoundDuration = 60 * time.Second

// ErrGameActive is returned by Start while a channel's round is still open.
var ErrGameActive = errors.New("trivia: game already active in this channel")

// Scheduler runs a function after a delay and hands back a cancel. Schedule
// must not invoke fn synchronously; fn may run concurrently with Manager
// calls.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules on real timers.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

type game struct {
	question  Question
	cancel    func()
	onTimeout func(Question)
}

// Options configures a Manager.
type Options struct {
	Scheduler     Scheduler     // default TimerScheduler
	RoundDuration time.Duration // default DefaultRoundDuration
	Questions     []Question    // default DefaultQuestions
}

// Manager owns the active rounds. A win cancels the round's timeout and
// removes the round under one lock acquisition, and the timeout callback
// re-checks the round before reporting, so a win and a timeout never both
// fire for the same round.
type Manager struct {
	mu        sync.Mutex
	games     map[string]*game
	scheduler Scheduler
	round     time.Duration
	questions []Question
}

func NewManager(opts Options) *Manager {
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	round := opts.RoundDuration
	if round <= 0 {
		round = DefaultRoundDuration
	}
	questions := opts.Questions
	if len(questions) == 0 {
		questions = DefaultQuestions
	}
	return &Manager{
		games:     make(map[string]*game),
		scheduler: scheduler,
		round:     round,
		questions: questions,
	}
}

// Start opens a round in the channel with a random question and returns it.
// When the round expires without a winner, onTimeout receives the question.
func (m *Manager) Start(channelID string, onTimeout func(Question)) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, active := m.games[channelID]; active {
		return Question{}, ErrGameActive
	}

	q := m.questions[rand.Intn(len(m.questions))]
	g := &game{question: q, onTimeout: onTimeout}
	m.games[channelID] = g
	g.cancel = m.scheduler.Schedule(m.round, func() { m.expire(channelID) })
	return q, nil
}

// Answer checks message against the channel's open round. On a win the round
// is removed and its timeout cancelled before returning, and the winning
// question is reported.
func (m *Manager) Answer(channelID, message string) (Question, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[channelID]
	if !ok || !CheckAnswer(message, g.question.Answer) {
		return Question{}, false
	}
	delete(m.games, channelID)
	if g.cancel != nil {
		g.cancel()
	}
	return g.question, true
}

// Active reports whether the channel has an open round.
func (m *Manager) Active(channelID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.games[channelID]
	return ok
}

func (m *Manager) expire(channelID string) {
	m.mu.Lock()
	g, ok := m.games[channelID]
	if ok {
		delete(m.games, channelID)
	}
	m.mu.Unlock()

	// Absent means the round was already won.
	if !ok || g.onTimeout == nil {
		return
	}
	g.onTimeout(g.question)
}

// CheckAnswer reports whether message contains the answer, ignoring case and
// surrounding whitespace.
func CheckAnswer(message, answer string) bool {
	return strings.Contains(
		strings.TrimSpace(strings.ToLower(message)),
		strings.TrimSpace(strings.ToLower(answer)),
	)
}
