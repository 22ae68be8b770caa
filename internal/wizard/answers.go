package wizard

import "fmt"

// AnswerKey identifies a survey question.
type AnswerKey string

const (
	AnswerGeoScope AnswerKey = "geoScope"
	AnswerIsSAP    AnswerKey = "isSap"
	AnswerIsOnPrem AnswerKey = "isOnPrem"
)

// Geographical scope options.
const (
	GeoUSOnly       = "US-based only"
	GeoUnderFive    = "Less than 5 countries"
	GeoMoreThanFive = "More than 5 countries"
	AnswerYes       = "Yes"
	AnswerNo        = "No"
)

// Question is one survey question with its fixed options.
type Question struct {
	Key     AnswerKey
	Prompt  string
	Options []string
}

var questions = []Question{
	{Key: AnswerGeoScope, Prompt: "Geographical Scope", Options: []string{GeoUSOnly, GeoUnderFive, GeoMoreThanFive}},
	{Key: AnswerIsSAP, Prompt: "Is your current ERP SAP?", Options: []string{AnswerYes, AnswerNo}},
	{Key: AnswerIsOnPrem, Prompt: "Is your infrastructure currently On-prem?", Options: []string{AnswerYes, AnswerNo}},
}

// Questions returns the survey in display order.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		opts := make([]string, len(q.Options))
		copy(opts, q.Options)
		out[i] = Question{Key: q.Key, Prompt: q.Prompt, Options: opts}
	}
	return out
}

// QuestionFor returns the question for key.
func QuestionFor(key AnswerKey) (Question, bool) {
	for _, q := range Questions() {
		if q.Key == key {
			return q, true
		}
	}
	return Question{}, false
}

// UserAnswers holds the survey answers.
type UserAnswers struct {
	GeoScope string `json:"geoScope" yaml:"geo_scope"`
	IsSAP    string `json:"isSap" yaml:"is_sap"`
	IsOnPrem string `json:"isOnPrem" yaml:"is_on_prem"`
}

// DefaultAnswers returns the answers preselected on a new wizard.
func DefaultAnswers() UserAnswers {
	return UserAnswers{
		GeoScope: GeoUSOnly,
		IsSAP:    AnswerYes,
		IsOnPrem: AnswerYes,
	}
}

// Get returns the answer for key.
func (a UserAnswers) Get(key AnswerKey) string {
	switch key {
	case AnswerGeoScope:
		return a.GeoScope
	case AnswerIsSAP:
		return a.IsSAP
	case AnswerIsOnPrem:
		return a.IsOnPrem
	}
	return ""
}

// Set validates value against the question's options and stores it.
func (a *UserAnswers) Set(key AnswerKey, value string) error {
	q, ok := QuestionFor(key)
	if !ok {
		return fmt.Errorf("%w: unknown question %q", ErrInvalidAnswer, key)
	}
	valid := false
	for _, opt := range q.Options {
		if opt == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q is not an option for %q", ErrInvalidAnswer, value, key)
	}

	switch key {
	case AnswerGeoScope:
		a.GeoScope = value
	case AnswerIsSAP:
		a.IsSAP = value
	case AnswerIsOnPrem:
		a.IsOnPrem = value
	}
	return nil
}

// Validate checks every answer against its options.
func (a UserAnswers) Validate() error {
	probe := a
	for _, q := range questions {
		if err := probe.Set(q.Key, a.Get(q.Key)); err != nil {
			return err
		}
	}
	return nil
}
