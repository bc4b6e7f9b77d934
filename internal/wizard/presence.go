package wizard

import "strings"

// Presence research flow steps.
const (
	StepSearch   StepID = "search"
	StepTopic    StepID = "topic"
	StepCategory StepID = "category"
)

// Presence research flow inputs.
const (
	InputQuery    = "query"
	InputCategory = "selectedCategory"
)

// Presence research flow actions.
const (
	ActSearch         ActionKind = "search"
	ActSelectCategory ActionKind = "select-category"
	ActNewSearch      ActionKind = "new-search"
)

// PresenceSteps returns every step of the presence flow.
func PresenceSteps() []StepID {
	return []StepID{StepSearch, StepTopic, StepCategory}
}

// Presence returns the research browser flow. Only category ids listed in
// categories can be opened.
func Presence(categories []string) Definition {
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c] = struct{}{}
	}

	return Definition{
		Name: "presence",
		Rules: []Rule{
			{
				From: StepSearch, On: ActSearch,
				To:   []StepID{StepTopic},
				Note: "payload is the query; blank queries are ignored",
				Apply: func(s State, a Action) (State, bool) {
					q := strings.TrimSpace(a.Payload)
					if q == "" {
						return s, false
					}
					s.Inputs[InputQuery] = Text(q)
					s.Step = StepTopic
					return s, true
				},
			},
			{
				From: StepTopic, On: ActSelectCategory,
				To:   []StepID{StepCategory},
				Note: "payload is the category id",
				Apply: func(s State, a Action) (State, bool) {
					if _, ok := known[a.Payload]; !ok {
						return s, false
					}
					s.Inputs[InputCategory] = Text(a.Payload)
					s.Step = StepCategory
					return s, true
				},
			},
			{
				From: StepCategory, On: ActBack,
				To: []StepID{StepTopic},
				Apply: func(s State, _ Action) (State, bool) {
					delete(s.Inputs, InputCategory)
					s.Step = StepTopic
					return s, true
				},
			},
			{
				From: StepTopic, On: ActNewSearch,
				To: []StepID{StepSearch},
				Apply: func(s State, _ Action) (State, bool) {
					delete(s.Inputs, InputQuery)
					delete(s.Inputs, InputCategory)
					s.Step = StepSearch
					return s, true
				},
			},
		},
	}
}

// NewPresence initializes the presence flow at the search step.
func NewPresence(categories []string) *Flow {
	f, err := New(Presence(categories), PresenceSteps(), StepSearch)
	if err != nil {
		panic(err) // static definition
	}
	return f
}
