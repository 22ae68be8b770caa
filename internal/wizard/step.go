// Package wizard implements the five-step assessment wizard as a plain state
// machine. It owns the ticker, survey answers and pain card selection and is
// driven by a single event loop; it is not safe for concurrent use.
package wizard

// Step is the current wizard screen.
type Step int

const (
	StepInput Step = iota
	StepPainCardsPage1
	StepPainCardsPage2
	StepSurvey
	StepDashboard
)

var stepNames = map[Step]string{
	StepInput:          "input",
	StepPainCardsPage1: "pain-cards-1",
	StepPainCardsPage2: "pain-cards-2",
	StepSurvey:         "survey",
	StepDashboard:      "dashboard",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsCardPage reports whether the step shows pain cards.
func (s Step) IsCardPage() bool {
	return s == StepPainCardsPage1 || s == StepPainCardsPage2
}

// Page returns the 1-based card page for card steps and 0 otherwise.
func (s Step) Page() int {
	switch s {
	case StepPainCardsPage1:
		return 1
	case StepPainCardsPage2:
		return 2
	default:
		return 0
	}
}

// Event is a navigation event without side effects beyond the step change.
// Submitting a ticker and completing a fetch are handled by Controller.Submit
// and Controller.Complete.
type Event string

const (
	EventNext      Event = "next"
	EventBack      Event = "back"
	EventGenerate  Event = "generate"
	EventEdit      Event = "edit"
	EventStartOver Event = "start-over"
	EventResume    Event = "resume"
)

var transitions = map[Step]map[Event]Step{
	StepInput: {
		EventResume: StepPainCardsPage1,
	},
	StepPainCardsPage1: {
		EventNext:      StepPainCardsPage2,
		EventStartOver: StepInput,
	},
	StepPainCardsPage2: {
		EventBack:      StepPainCardsPage1,
		EventNext:      StepSurvey,
		EventStartOver: StepInput,
	},
	StepSurvey: {
		EventBack:      StepPainCardsPage2,
		EventGenerate:  StepDashboard,
		EventStartOver: StepInput,
	},
	StepDashboard: {
		EventEdit:      StepSurvey,
		EventStartOver: StepInput,
	},
}

// Transition looks up the target of ev from step.
func Transition(from Step, ev Event) (Step, bool) {
	to, ok := transitions[from][ev]
	return to, ok
}
