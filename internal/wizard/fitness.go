package wizard

import "strings"

// Fitness flow steps.
const (
	StepPlan          StepID = "plan"
	StepUploadCurrent StepID = "upload-current"
	StepUploadGoal    StepID = "upload-goal"
	StepGoalOptions   StepID = "goal-options"
	StepResults       StepID = "results"
	StepWorkoutDetail StepID = "workout-detail"
)

// SubConfirmAnalysis asks before re-analyzing an already uploaded photo.
const SubConfirmAnalysis SubState = "confirm-analysis"

// Fitness flow inputs.
const (
	InputCurrentPhoto = "currentPhotoProvided"
	InputGoalPhoto    = "goalPhotoProvided"
	InputSelectedGoal = "selectedGoal"
	InputWorkout      = "workout"
)

// Fitness flow actions.
const (
	ActStartScan         ActionKind = "start-scan"
	ActOpenWorkout       ActionKind = "open-workout"
	ActPhotoUploaded     ActionKind = "photo-uploaded"
	ActGoalPhotoUploaded ActionKind = "goal-photo-uploaded"
	ActSkip              ActionKind = "skip"
	ActGoalSelected      ActionKind = "goal-selected"
	ActConfirm           ActionKind = "confirm"
	ActCancel            ActionKind = "cancel"
	ActRescan            ActionKind = "rescan"
	ActBack              ActionKind = "back"
)

// FitnessSteps returns every step of the fitness flow in screen order.
func FitnessSteps() []StepID {
	return []StepID{
		StepPlan,
		StepUploadCurrent,
		StepUploadGoal,
		StepGoalOptions,
		StepResults,
		StepWorkoutDetail,
	}
}

// Fitness returns the body-scan flow: upload a current photo, then a goal
// photo or a goal type, then view the trainer results.
func Fitness() Definition {
	return Definition{
		Name: "fitness",
		Defaults: Inputs{
			InputCurrentPhoto: Flag(false),
			InputGoalPhoto:    Flag(false),
		},
		Rules: []Rule{
			{
				From: StepPlan, On: ActStartScan,
				To:    []StepID{StepUploadCurrent},
				Note:  "open the weekly body scanner",
				Apply: Goto(StepUploadCurrent),
			},
			{
				From: StepPlan, On: ActOpenWorkout,
				To:   []StepID{StepWorkoutDetail},
				Note: "view a workout card",
				Apply: func(s State, a Action) (State, bool) {
					if w := strings.TrimSpace(a.Payload); w != "" {
						s.Inputs[InputWorkout] = Text(w)
					}
					s.Step = StepWorkoutDetail
					return s, true
				},
			},
			{
				From: StepUploadCurrent, On: ActPhotoUploaded,
				To:    []StepID{StepUploadCurrent, StepUploadGoal, StepResults},
				Note:  "confirm if a photo exists, else goal photo or results",
				Apply: currentPhotoUploaded,
			},
			{
				From: StepUploadCurrent, Sub: SubConfirmAnalysis, On: ActConfirm,
				To:    []StepID{StepResults},
				Note:  "analyze the existing photo",
				Apply: Goto(StepResults),
			},
			{
				From: StepUploadCurrent, Sub: SubConfirmAnalysis, On: ActCancel,
				To:    []StepID{StepUploadCurrent},
				Note:  "dismiss the confirmation",
				Apply: Goto(StepUploadCurrent),
			},
			{
				From: StepUploadGoal, On: ActGoalPhotoUploaded,
				To:   []StepID{StepResults},
				Note: "record the goal photo",
				Apply: func(s State, _ Action) (State, bool) {
					s.Inputs[InputGoalPhoto] = Flag(true)
					s.Step = StepResults
					return s, true
				},
			},
			{
				From: StepUploadGoal, On: ActSkip,
				To:    []StepID{StepGoalOptions},
				Note:  "choose a goal type instead",
				Apply: Goto(StepGoalOptions),
			},
			{
				From: StepGoalOptions, On: ActGoalSelected,
				To:   []StepID{StepResults},
				Note: "payload is the goal id",
				Apply: func(s State, a Action) (State, bool) {
					goal := strings.TrimSpace(a.Payload)
					if goal == "" {
						return s, false
					}
					s.Inputs[InputSelectedGoal] = Text(goal)
					s.Step = StepResults
					return s, true
				},
			},
			{
				From: StepGoalOptions, On: ActBack,
				To:    []StepID{StepUploadGoal},
				Apply: Goto(StepUploadGoal),
			},
			{
				From: StepResults, On: ActRescan,
				To:    []StepID{StepUploadCurrent},
				Note:  "weekly re-scan",
				Apply: Goto(StepUploadCurrent),
			},
			{
				From: StepResults, On: ActBack,
				To:    []StepID{StepPlan},
				Apply: Goto(StepPlan),
			},
			{
				From: StepWorkoutDetail, On: ActBack,
				To:   []StepID{StepPlan},
				Apply: func(s State, _ Action) (State, bool) {
					delete(s.Inputs, InputWorkout)
					s.Step = StepPlan
					return s, true
				},
			},
		},
	}
}

func currentPhotoUploaded(s State, _ Action) (State, bool) {
	if s.Flag(InputCurrentPhoto) {
		s.Sub = SubConfirmAnalysis
		return s, true
	}
	s.Inputs[InputCurrentPhoto] = Flag(true)
	if s.Flag(InputGoalPhoto) {
		s.Step = StepResults
	} else {
		s.Step = StepUploadGoal
	}
	return s, true
}

// NewFitness initializes the full fitness flow starting at the plan.
func NewFitness() *Flow {
	f, err := New(Fitness(), FitnessSteps(), StepPlan)
	if err != nil {
		panic(err) // static definition
	}
	return f
}
