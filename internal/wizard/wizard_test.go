package wizard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/regimen/internal/model"
)

var equateEmpty = cmpopts.EquateEmpty()

func scanSteps() []StepID {
	return []StepID{StepUploadCurrent, StepUploadGoal, StepGoalOptions, StepResults}
}

func TestFitnessScenario_PhotoSkipGoal(t *testing.T) {
	f, err := New(Fitness(), scanSteps(), StepUploadCurrent)
	require.NoError(t, err)

	s := f.Initial()
	require.Equal(t, StepUploadCurrent, s.Step)
	require.False(t, s.Flag(InputCurrentPhoto))
	require.False(t, s.Flag(InputGoalPhoto))

	s = f.Dispatch(s, ParseAction("photo-uploaded"))
	assert.Equal(t, StepUploadGoal, s.Step)
	assert.True(t, s.Flag(InputCurrentPhoto))

	s = f.Dispatch(s, ParseAction("skip"))
	assert.Equal(t, StepGoalOptions, s.Step)

	s = f.Dispatch(s, ParseAction("goal-selected:lose"))
	assert.Equal(t, StepResults, s.Step)
	assert.Equal(t, "lose", s.Text(InputSelectedGoal))
}

func TestNew_UnknownStartIsConfigError(t *testing.T) {
	_, err := New(Fitness(), scanSteps(), StepPlan)
	require.Error(t, err)

	var cfgErr *model.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "start", cfgErr.Field)
}

func TestNew_NoStepsIsConfigError(t *testing.T) {
	_, err := New(Fitness(), nil, StepPlan)
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNew_RuleWithoutApplyIsConfigError(t *testing.T) {
	def := Definition{Rules: []Rule{{From: "a", On: "go", To: []StepID{"b"}}}}
	_, err := New(def, []StepID{"a", "b"}, "a")
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "rules", cfgErr.Field)
}

func TestNew_DropsRulesOutsideDeclaredSteps(t *testing.T) {
	f, err := New(Fitness(), scanSteps(), StepUploadCurrent)
	require.NoError(t, err)

	for _, tr := range f.Transitions() {
		assert.True(t, f.Declared(tr.From), "from %s", tr.From)
		for _, to := range tr.To {
			assert.True(t, f.Declared(to), "%s/%s lands on undeclared %s", tr.From, tr.On, to)
		}
	}

	// results -> plan is not part of this instance
	s := State{Step: StepResults, Inputs: Inputs{}}
	assert.False(t, f.Allowed(s, ActBack))
}

// Every row of the full fitness table yields exactly the documented step
// and touches exactly the documented inputs.
func TestFitnessTransitionTable(t *testing.T) {
	f := NewFitness()
	base := f.Initial()

	tests := []struct {
		name     string
		from     State
		action   string
		wantStep StepID
		wantSub  SubState
		set      Inputs
		unset    []string
	}{
		{name: "plan start scan", from: base, action: "start-scan", wantStep: StepUploadCurrent},
		{
			name: "plan open workout", from: base, action: "open-workout:Boxing Fundamentals",
			wantStep: StepWorkoutDetail, set: Inputs{InputWorkout: Text("Boxing Fundamentals")},
		},
		{
			name: "first current photo, no goal photo", from: at(base, StepUploadCurrent),
			action: "photo-uploaded", wantStep: StepUploadGoal,
			set: Inputs{InputCurrentPhoto: Flag(true)},
		},
		{
			name: "first current photo, goal photo present",
			from: at(base.With(InputGoalPhoto, Flag(true)), StepUploadCurrent),
			action: "photo-uploaded", wantStep: StepResults,
			set: Inputs{InputCurrentPhoto: Flag(true)},
		},
		{
			name: "repeat current photo opens confirmation",
			from: at(base.With(InputCurrentPhoto, Flag(true)), StepUploadCurrent),
			action: "photo-uploaded", wantStep: StepUploadCurrent, wantSub: SubConfirmAnalysis,
		},
		{
			name: "confirm analysis",
			from: sub(at(base.With(InputCurrentPhoto, Flag(true)), StepUploadCurrent), SubConfirmAnalysis),
			action: "confirm", wantStep: StepResults,
		},
		{
			name: "cancel analysis",
			from: sub(at(base.With(InputCurrentPhoto, Flag(true)), StepUploadCurrent), SubConfirmAnalysis),
			action: "cancel", wantStep: StepUploadCurrent,
		},
		{
			name: "goal photo", from: at(base, StepUploadGoal), action: "goal-photo-uploaded",
			wantStep: StepResults, set: Inputs{InputGoalPhoto: Flag(true)},
		},
		{name: "skip goal photo", from: at(base, StepUploadGoal), action: "skip", wantStep: StepGoalOptions},
		{
			name: "select goal", from: at(base, StepGoalOptions), action: "goal-selected:gain",
			wantStep: StepResults, set: Inputs{InputSelectedGoal: Text("gain")},
		},
		{name: "goal options back", from: at(base, StepGoalOptions), action: "back", wantStep: StepUploadGoal},
		{name: "results rescan", from: at(base, StepResults), action: "rescan", wantStep: StepUploadCurrent},
		{name: "results back", from: at(base, StepResults), action: "back", wantStep: StepPlan},
		{
			name: "workout back", from: at(base.With(InputWorkout, Text("x")), StepWorkoutDetail),
			action: "back", wantStep: StepPlan, unset: []string{InputWorkout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Dispatch(tt.from, ParseAction(tt.action))

			want := tt.from.clone()
			want.Step = tt.wantStep
			want.Sub = tt.wantSub
			for k, v := range tt.set {
				want.Inputs[k] = v
			}
			for _, k := range tt.unset {
				delete(want.Inputs, k)
			}

			if diff := cmp.Diff(want, got, equateEmpty); diff != "" {
				t.Errorf("Dispatch(%s) mismatch (-want +got):\n%s", tt.action, diff)
			}
		})
	}
}

func TestFitnessUnmappedPairsAreNoOps(t *testing.T) {
	f := NewFitness()
	kinds := []ActionKind{
		ActStartScan, ActOpenWorkout, ActPhotoUploaded, ActGoalPhotoUploaded, ActSkip,
		ActGoalSelected, ActConfirm, ActCancel, ActRescan, ActBack, "unknown",
	}

	for _, step := range f.Steps() {
		for _, overlay := range []SubState{"", SubConfirmAnalysis} {
			s := State{Step: step, Sub: overlay, Inputs: Inputs{InputCurrentPhoto: Flag(true)}}
			for _, k := range kinds {
				if f.Allowed(s, k) {
					continue
				}
				got := f.Dispatch(s, Action{Kind: k, Payload: "x"})
				if diff := cmp.Diff(s, got); diff != "" {
					t.Errorf("%s/%s/%s changed state:\n%s", step, overlay, k, diff)
				}
			}
		}
	}
}

func TestConfirmationOverlayBlocksMainActions(t *testing.T) {
	f := NewFitness()
	s := at(f.Initial().With(InputCurrentPhoto, Flag(true)), StepUploadCurrent)

	s = f.Dispatch(s, ParseAction("photo-uploaded"))
	require.Equal(t, SubConfirmAnalysis, s.Sub)

	// A second upload while the prompt is open is inert.
	again := f.Dispatch(s, ParseAction("photo-uploaded"))
	assert.Empty(t, cmp.Diff(s, again))

	assert.Equal(t, []ActionKind{ActCancel, ActConfirm}, f.Available(s))

	cancelled := f.Dispatch(s, ParseAction("cancel"))
	assert.Equal(t, StepUploadCurrent, cancelled.Step)
	assert.Equal(t, SubState(""), cancelled.Sub)
}

func TestGoalSelectedWithoutPayloadIsDeclined(t *testing.T) {
	f := NewFitness()
	s := at(f.Initial(), StepGoalOptions)
	got := f.Dispatch(s, ParseAction("goal-selected"))
	assert.Empty(t, cmp.Diff(s, got))
}

func TestDispatchDoesNotMutateInput(t *testing.T) {
	f := NewFitness()
	s := at(f.Initial(), StepUploadCurrent)
	before := s.clone()

	_ = f.Dispatch(s, ParseAction("photo-uploaded"))
	assert.Empty(t, cmp.Diff(before, s))
}

func TestDispatchForeignStepIsNoOp(t *testing.T) {
	f, err := New(Fitness(), scanSteps(), StepUploadCurrent)
	require.NoError(t, err)
	s := State{Step: StepPlan, Inputs: Inputs{}}
	assert.Empty(t, cmp.Diff(s, f.Dispatch(s, ParseAction("start-scan"))))
}

func TestTransitionsOrderedByDeclaredStep(t *testing.T) {
	f := NewFitness()
	trs := f.Transitions()
	require.NotEmpty(t, trs)
	assert.Equal(t, StepPlan, trs[0].From)
	assert.Equal(t, StepWorkoutDetail, trs[len(trs)-1].From)
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, Action{Kind: "goal-selected", Payload: "lose"}, ParseAction("goal-selected:lose"))
	assert.Equal(t, Action{Kind: "skip"}, ParseAction(" skip "))
	assert.Equal(t, Action{Kind: "search", Payload: "a:b"}, ParseAction("search:a:b"))
	assert.Equal(t, "search:a:b", ParseAction("search:a:b").String())
}

func TestPresenceFlow(t *testing.T) {
	f := NewPresence([]string{"books", "research"})
	s := f.Initial()

	blank := f.Dispatch(s, ParseAction("search:   "))
	assert.Equal(t, StepSearch, blank.Step)

	s = f.Dispatch(s, ParseAction("search: body language "))
	require.Equal(t, StepTopic, s.Step)
	assert.Equal(t, "body language", s.Text(InputQuery))

	unknown := f.Dispatch(s, ParseAction("select-category:nope"))
	assert.Equal(t, StepTopic, unknown.Step)

	s = f.Dispatch(s, ParseAction("select-category:books"))
	require.Equal(t, StepCategory, s.Step)
	assert.Equal(t, "books", s.Text(InputCategory))

	s = f.Dispatch(s, ParseAction("back"))
	assert.Equal(t, StepTopic, s.Step)
	assert.NotContains(t, s.Inputs, InputCategory)
	assert.Equal(t, "body language", s.Text(InputQuery))

	s = f.Dispatch(s, ParseAction("new-search"))
	assert.Equal(t, StepSearch, s.Step)
	assert.NotContains(t, s.Inputs, InputQuery)
}

func at(s State, step StepID) State {
	s = s.clone()
	s.Step = step
	return s
}

func sub(s State, overlay SubState) State {
	s = s.clone()
	s.Sub = overlay
	return s
}
