// Package wizard implements table-driven linear flows. A flow has a fixed
// set of steps, an explicit transition table keyed by (step, sub-state,
// action) and guarded branching on the inputs collected so far.
//
// Dispatch is pure: it never mutates the state it is given, and any
// (state, action) pair missing from the table returns the input unchanged.
package wizard

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/theirongolddev/regimen/internal/model"
)

// StepID names one step of a flow.
type StepID string

// SubState names an overlay that sits on top of a step, such as a
// confirmation prompt. The zero value means no overlay is active.
type SubState string

// ActionKind tags which control the user activated.
type ActionKind string

// Action is a tagged user action with an optional payload.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Payload string     `json:"payload,omitempty"`
}

// ParseAction parses "kind" or "kind:payload".
func ParseAction(s string) Action {
	kind, payload, _ := strings.Cut(s, ":")
	return Action{Kind: ActionKind(strings.TrimSpace(kind)), Payload: payload}
}

func (a Action) String() string {
	if a.Payload == "" {
		return string(a.Kind)
	}
	return string(a.Kind) + ":" + a.Payload
}

// Value is one collected input, either a flag or a text value.
type Value struct {
	Flag   bool   `json:"flag,omitempty"`
	Text   string `json:"text,omitempty"`
	IsText bool   `json:"is_text,omitempty"`
}

// Flag returns a boolean input value.
func Flag(b bool) Value { return Value{Flag: b} }

// Text returns a string input value.
func Text(s string) Value { return Value{Text: s, IsText: true} }

func (v Value) String() string {
	if v.IsText {
		return v.Text
	}
	return fmt.Sprintf("%t", v.Flag)
}

// Inputs maps input slot names to their collected values.
type Inputs map[string]Value

// State is the complete state of one flow instance.
type State struct {
	Step   StepID   `json:"step"`
	Sub    SubState `json:"sub,omitempty"`
	Inputs Inputs   `json:"inputs"`
}

// Flag reports the boolean value of the named input.
func (s State) Flag(name string) bool {
	return s.Inputs[name].Flag
}

// Text returns the string value of the named input.
func (s State) Text(name string) string {
	return s.Inputs[name].Text
}

// With returns a copy of s with name set to v.
func (s State) With(name string, v Value) State {
	c := s.clone()
	c.Inputs[name] = v
	return c
}

// Without returns a copy of s with name removed.
func (s State) Without(names ...string) State {
	c := s.clone()
	for _, n := range names {
		delete(c.Inputs, n)
	}
	return c
}

// Equal reports whether s and o are the same step, overlay and inputs.
func (s State) Equal(o State) bool {
	return s.Step == o.Step && s.Sub == o.Sub && maps.Equal(s.Inputs, o.Inputs)
}

func (s State) clone() State {
	inputs := make(Inputs, len(s.Inputs))
	for k, v := range s.Inputs {
		inputs[k] = v
	}
	s.Inputs = inputs
	return s
}

// ApplyFunc computes the next state for a matched rule. It receives a copy
// of the current state and may modify it freely. Returning false declines
// the transition, which leaves the state unchanged.
type ApplyFunc func(s State, a Action) (State, bool)

// Rule is one row of a transition table.
type Rule struct {
	From  StepID
	Sub   SubState
	On    ActionKind
	To    []StepID // every step the rule can land on
	Note  string
	Apply ApplyFunc
}

// Definition describes a flow independently of which steps an instance
// declares.
type Definition struct {
	Name     string
	Defaults Inputs
	Rules    []Rule
}

// Transition is the public, enumerable view of one table row.
type Transition struct {
	From StepID     `json:"from"`
	Sub  SubState   `json:"sub,omitempty"`
	On   ActionKind `json:"on"`
	To   []StepID   `json:"to"`
	Note string     `json:"note,omitempty"`
}

type ruleKey struct {
	from StepID
	sub  SubState
	on   ActionKind
}

// Flow is an initialized flow instance: a declared step set, a start step
// and the rules of its definition that stay within the declared steps.
type Flow struct {
	name     string
	steps    map[StepID]struct{}
	order    []StepID
	start    StepID
	defaults Inputs
	table    map[ruleKey]Rule
}

// New initializes a flow over steps starting at start. Rules that mention
// a step outside steps are left out of the instance: their controls are
// simply absent. It returns a *model.ConfigError when start is not one of
// steps or the definition is malformed.
func New(def Definition, steps []StepID, start StepID) (*Flow, error) {
	if len(steps) == 0 {
		return nil, &model.ConfigError{Field: "steps", Reason: "no steps declared"}
	}

	f := &Flow{
		name:     def.Name,
		steps:    make(map[StepID]struct{}, len(steps)),
		start:    start,
		defaults: def.Defaults,
		table:    make(map[ruleKey]Rule),
	}
	for _, s := range steps {
		if s == "" {
			return nil, &model.ConfigError{Field: "steps", Reason: "empty step id"}
		}
		if _, dup := f.steps[s]; dup {
			continue
		}
		f.steps[s] = struct{}{}
		f.order = append(f.order, s)
	}
	if !f.Declared(start) {
		return nil, &model.ConfigError{Field: "start", Reason: fmt.Sprintf("step %q is not declared", start)}
	}

	for _, r := range def.Rules {
		if r.Apply == nil {
			return nil, &model.ConfigError{
				Field:  "rules",
				Reason: fmt.Sprintf("%s/%s has no apply func", r.From, r.On),
			}
		}
		if !f.Declared(r.From) || !f.declaredAll(r.To) {
			continue
		}
		key := ruleKey{from: r.From, sub: r.Sub, on: r.On}
		if _, dup := f.table[key]; dup {
			return nil, &model.ConfigError{
				Field:  "rules",
				Reason: fmt.Sprintf("duplicate rule for %s/%s/%s", r.From, r.Sub, r.On),
			}
		}
		f.table[key] = r
	}

	return f, nil
}

// Name returns the definition name.
func (f *Flow) Name() string { return f.name }

// Start returns the start step.
func (f *Flow) Start() StepID { return f.start }

// Steps returns the declared steps in declaration order.
func (f *Flow) Steps() []StepID {
	out := make([]StepID, len(f.order))
	copy(out, f.order)
	return out
}

// Declared reports whether step belongs to this flow.
func (f *Flow) Declared(step StepID) bool {
	_, ok := f.steps[step]
	return ok
}

func (f *Flow) declaredAll(steps []StepID) bool {
	for _, s := range steps {
		if !f.Declared(s) {
			return false
		}
	}
	return true
}

// Initial returns the state a freshly mounted flow starts in.
func (f *Flow) Initial() State {
	inputs := make(Inputs, len(f.defaults))
	for k, v := range f.defaults {
		inputs[k] = v
	}
	return State{Step: f.start, Inputs: inputs}
}

// Dispatch returns the state that follows s when a is applied. Pairs not in
// the table, declined guards, and rules landing outside the declared steps
// all return s unchanged.
func (f *Flow) Dispatch(s State, a Action) State {
	if !f.Declared(s.Step) {
		return s
	}
	r, ok := f.table[ruleKey{from: s.Step, sub: s.Sub, on: a.Kind}]
	if !ok {
		return s
	}
	next, ok := r.Apply(s.clone(), a)
	if !ok || !f.Declared(next.Step) {
		return s
	}
	return next
}

// Allowed reports whether a has a rule in the current state. A guard may
// still decline it.
func (f *Flow) Allowed(s State, kind ActionKind) bool {
	_, ok := f.table[ruleKey{from: s.Step, sub: s.Sub, on: kind}]
	return ok
}

// Available lists the action kinds with a rule in state s, sorted.
func (f *Flow) Available(s State) []ActionKind {
	var out []ActionKind
	for k := range f.table {
		if k.from == s.Step && k.sub == s.Sub {
			out = append(out, k.on)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Transitions enumerates the table, ordered by declared step, sub-state and
// action.
func (f *Flow) Transitions() []Transition {
	pos := make(map[StepID]int, len(f.order))
	for i, s := range f.order {
		pos[s] = i
	}

	out := make([]Transition, 0, len(f.table))
	for _, r := range f.table {
		to := make([]StepID, len(r.To))
		copy(to, r.To)
		out = append(out, Transition{From: r.From, Sub: r.Sub, On: r.On, To: to, Note: r.Note})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return pos[out[i].From] < pos[out[j].From]
		}
		if out[i].Sub != out[j].Sub {
			return out[i].Sub < out[j].Sub
		}
		return out[i].On < out[j].On
	})
	return out
}

// Goto returns an ApplyFunc that moves to step and closes any overlay.
func Goto(step StepID) ApplyFunc {
	return func(s State, _ Action) (State, bool) {
		s.Step = step
		s.Sub = ""
		return s, true
	}
}
