// Package session owns the mutable state of one regimen session: the
// fitness and presence flow states, the food ledger and the daily
// checklist. A single goroutine started by Run applies every action, so
// concurrent callers cannot interleave state changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/regimen/internal/catalog"
	"github.com/theirongolddev/regimen/internal/ledger"
	"github.com/theirongolddev/regimen/internal/logger"
	"github.com/theirongolddev/regimen/internal/model"
	"github.com/theirongolddev/regimen/internal/protocol"
	"github.com/theirongolddev/regimen/internal/view"
	"github.com/theirongolddev/regimen/internal/wizard"
)

// ErrClosed is returned by Apply once Run has returned.
var ErrClosed = errors.New("session closed")

// Screens accepted by Apply.
const (
	ScreenFitness  = "fitness"
	ScreenPresence = "presence"
	ScreenFood     = "food"
	ScreenDaily    = "daily"
)

// Config controls a session.
type Config struct {
	Catalog      *catalog.Catalog
	CalorieGoal  float64
	Day          string // initially selected weekday of the plan
	EventsBuffer int
	Clock        func() time.Time
}

// Request is one action for one screen. Action may carry its payload
// inline as "kind:payload"; a non-empty Payload takes precedence.
type Request struct {
	Screen  string `json:"screen"`
	Action  string `json:"action"`
	Payload string `json:"payload,omitempty"`
}

func (r Request) action() wizard.Action {
	if r.Payload != "" {
		kind, _, _ := strings.Cut(r.Action, ":")
		return wizard.Action{Kind: wizard.ActionKind(strings.TrimSpace(kind)), Payload: r.Payload}
	}
	return wizard.ParseAction(r.Action)
}

// Response reports the outcome of one request. Applied is false for
// unmapped actions and for recovered errors, which are described in Error.
type Response struct {
	Applied bool           `json:"applied"`
	Error   string         `json:"error,omitempty"`
	Screen  string         `json:"screen"`
	View    view.ViewModel `json:"view"`
}

// Event records one request handled by the session.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Request   Request   `json:"request"`
	Applied   bool      `json:"applied"`
	Error     string    `json:"error,omitempty"`
}

// update is what stream subscribers receive: an event and the view
// rendered right after it.
type update struct {
	Event Event
	View  view.ViewModel
}

type call struct {
	req   Request
	reply chan Response
}

// Session is one user's in-memory tracker state.
type Session struct {
	id        uuid.UUID
	cfg       Config
	startedAt time.Time

	fitness  *wizard.Flow
	presence *wizard.Flow

	calls chan call
	done  chan struct{}
	once  sync.Once

	// owned by the Run goroutine
	state view.Snapshot

	mu          sync.RWMutex
	latest      view.ViewModel
	nextEventID int64
	events      []Event
	nextSubID   int
	subs        map[int]chan update
}

// New validates cfg and builds the initial state. It returns a
// *model.ConfigError for a missing catalog or a bad calorie goal.
func New(cfg Config) (*Session, error) {
	if cfg.Catalog == nil {
		return nil, &model.ConfigError{Field: "catalog", Reason: "no catalog"}
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Day == "" {
		cfg.Day = catalog.DayName(cfg.Clock().Weekday())
	}

	food, err := ledger.New(ledger.Nutrition, cfg.CalorieGoal, ledger.WithClock(cfg.Clock))
	if err != nil {
		return nil, fmt.Errorf("food ledger: %w", err)
	}

	fitness := wizard.NewFitness()
	presence, err := wizard.New(wizard.Presence(cfg.Catalog.CategoryIDs()), wizard.PresenceSteps(), wizard.StepSearch)
	if err != nil {
		return nil, fmt.Errorf("presence flow: %w", err)
	}

	s := &Session{
		id:        uuid.New(),
		cfg:       cfg,
		startedAt: cfg.Clock(),
		fitness:   fitness,
		presence:  presence,
		calls:     make(chan call),
		done:      make(chan struct{}),
		subs:      make(map[int]chan update),
		state: view.Snapshot{
			Catalog:      cfg.Catalog,
			FitnessFlow:  fitness,
			Fitness:      fitness.Initial(),
			Day:          cfg.Day,
			PresenceFlow: presence,
			Presence:     presence.Initial(),
			Food:         food,
			Daily:        protocol.New(cfg.Catalog.Daily.Tasks),
		},
	}
	s.latest = view.Render(s.state)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id.String() }

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Run applies requests until ctx is canceled. It must be called once.
func (s *Session) Run(ctx context.Context) error {
	defer s.once.Do(func() { close(s.done) })
	logger.Debug("session started", "id", s.ID())

	for {
		select {
		case <-ctx.Done():
			logger.Debug("session stopped", "id", s.ID())
			return nil
		case c := <-s.calls:
			c.reply <- s.apply(c.req)
		}
	}
}

// Apply hands req to the Run goroutine and waits for the outcome.
func (s *Session) Apply(ctx context.Context, req Request) (Response, error) {
	c := call{req: req, reply: make(chan Response, 1)}
	select {
	case s.calls <- c:
	case <-s.done:
		return Response{}, ErrClosed
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
	// Run always replies once it has taken the call.
	return <-c.reply, nil
}

// View returns the most recent render.
func (s *Session) View() view.ViewModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Events returns the buffered events, oldest first.
func (s *Session) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

// Transitions lists the fitness and presence transition tables.
func (s *Session) Transitions() map[string][]wizard.Transition {
	return map[string][]wizard.Transition{
		ScreenFitness:  s.fitness.Transitions(),
		ScreenPresence: s.presence.Transitions(),
	}
}

func (s *Session) apply(req Request) Response {
	screen := req.Screen
	applied, err := s.dispatch(&screen, req)

	vm := view.Render(s.state)
	resp := Response{Applied: applied, Screen: screen, View: vm}
	if err != nil {
		resp.Error = err.Error()
	}

	log := logger.With("session", s.ID(), "screen", req.Screen, "action", req.Action)
	switch {
	case err != nil:
		if log != nil {
			log.Warn("action rejected", "err", err)
		}
	case !applied:
		if log != nil {
			log.Debug("action ignored")
		}
	}

	s.publish(Event{
		Type:      "action",
		Timestamp: s.cfg.Clock(),
		Request:   req,
		Applied:   applied,
		Error:     resp.Error,
	}, vm)
	return resp
}

// dispatch mutates s.state for req. It may redirect screen, e.g. when the
// daily protocol opens the food tracker.
func (s *Session) dispatch(screen *string, req Request) (bool, error) {
	a := req.action()
	st := &s.state

	switch req.Screen {
	case ScreenFitness:
		if a.Kind == "day" {
			if !slices.Contains(st.Catalog.Days(), a.Payload) || a.Payload == st.Day {
				return false, nil
			}
			st.Day = a.Payload
			return true, nil
		}
		next := st.FitnessFlow.Dispatch(st.Fitness, a)
		changed := !next.Equal(st.Fitness)
		st.Fitness = next
		return changed, nil

	case ScreenPresence:
		next := st.PresenceFlow.Dispatch(st.Presence, a)
		changed := !next.Equal(st.Presence)
		st.Presence = next
		return changed, nil

	case ScreenFood:
		switch a.Kind {
		case "search":
			st.FoodQuery = a.Payload
			return true, nil
		case "add":
			item, ok := ledger.Lookup(st.Catalog.Foods, a.Payload)
			if !ok {
				return false, fmt.Errorf("unknown food %q", a.Payload)
			}
			next, err := st.Food.Add(item)
			if err != nil {
				return false, err
			}
			st.Food = next
			st.FoodQuery = ""
			return true, nil
		case "remove":
			pos, err := strconv.Atoi(strings.TrimSpace(a.Payload))
			if err != nil {
				return false, fmt.Errorf("remove position %q: %w", a.Payload, err)
			}
			next, err := st.Food.Remove(pos)
			if err != nil {
				return false, err
			}
			st.Food = next
			return true, nil
		}

	case ScreenDaily:
		switch a.Kind {
		case "toggle":
			pos, err := strconv.Atoi(strings.TrimSpace(a.Payload))
			if err != nil {
				return false, fmt.Errorf("toggle position %q: %w", a.Payload, err)
			}
			next, err := st.Daily.Toggle(pos)
			if err != nil {
				return false, err
			}
			st.Daily = next
			return true, nil
		case "open-food":
			*screen = ScreenFood
			return true, nil
		}
	}
	return false, nil
}

// publish stores vm as the latest view and records ev, under one lock so
// readers never see the view of one event paired with another.
func (s *Session) publish(ev Event, vm view.ViewModel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = vm

	s.nextEventID++
	ev.ID = s.nextEventID
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- update{Event: ev, View: vm}:
		default:
		}
	}
}

func (s *Session) addSubscriber(ch chan update) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Session) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

func (s *Session) subscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
