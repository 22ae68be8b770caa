package wizard

import (
	"errors"
	"fmt"
	"strings"

	"leadscope/internal/assessment"
	"leadscope/internal/logging"
	"leadscope/internal/selection"
)

var (
	// ErrBusy is returned by Submit while a fetch is pending.
	ErrBusy = errors.New("an assessment is already loading")
	// ErrInvalidTransition is returned for events the current step does not accept.
	ErrInvalidTransition = errors.New("invalid wizard transition")
	// ErrNoAssessment is returned by Resume before any fetch succeeded.
	ErrNoAssessment = errors.New("no assessment loaded")
	// ErrInvalidAnswer is returned for unknown questions or options.
	ErrInvalidAnswer = errors.New("invalid survey answer")
)

// Pain cards are shown in PageCount fixed pages of PageSize cards.
const (
	PageSize  = 4
	PageCount = 2
)

// Request is a fetch the caller must perform after a successful Submit.
type Request struct {
	Seq    uint64
	Ticker string
}

// Result reports the outcome of a Request back to the controller.
type Result struct {
	Seq        uint64
	Assessment *assessment.Assessment
	Err        error
}

// Controller owns the wizard state. All mutation goes through its methods.
type Controller struct {
	step     Step
	ticker   string
	answers  UserAnswers
	selected selection.Set
	loader   *assessment.Loader

	// pending is the sequence number of the request in flight, or 0.
	// The loading flag itself lives on the loader.
	seq     uint64
	pending uint64

	log *logging.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithAnswers overrides the default survey answers.
func WithAnswers(a UserAnswers) Option {
	return func(c *Controller) {
		c.answers = a
	}
}

// WithTicker pre-fills the ticker input.
func WithTicker(t string) Option {
	return func(c *Controller) {
		c.ticker = strings.ToUpper(t)
	}
}

// WithLoader shares a loader, e.g. one already holding an assessment.
func WithLoader(l *assessment.Loader) Option {
	return func(c *Controller) {
		if l != nil {
			c.loader = l
		}
	}
}

// New creates a controller on the input step with default answers.
func New(opts ...Option) *Controller {
	c := &Controller{
		step:    StepInput,
		answers: DefaultAnswers(),
		loader:  assessment.NewLoader(),
		log:     logging.Get(logging.CategoryWizard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step returns the current step.
func (c *Controller) Step() Step {
	return c.step
}

// Ticker returns the raw (uppercased) ticker input.
func (c *Controller) Ticker() string {
	return c.ticker
}

// SetTicker replaces the ticker input. Editing dismisses a surfaced error.
func (c *Controller) SetTicker(s string) {
	c.ticker = strings.ToUpper(s)
	if c.loader.Err() != nil {
		c.loader.ClearError()
	}
}

// Loading reports whether a fetch is pending.
func (c *Controller) Loading() bool {
	return c.loader.Loading()
}

// CanSubmit reports whether Submit would issue a request.
func (c *Controller) CanSubmit() bool {
	return c.step == StepInput && !c.Loading() && strings.TrimSpace(c.ticker) != ""
}

// Submit starts a fetch for the current ticker. On success the caller must
// run the returned Request and hand its outcome to Complete.
func (c *Controller) Submit() (Request, error) {
	if c.step != StepInput {
		return Request{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, c.step)
	}
	if c.Loading() {
		return Request{}, ErrBusy
	}
	ticker, err := c.loader.Begin(c.ticker)
	if err != nil {
		c.log.Debug("submit rejected: %v", err)
		return Request{}, err
	}

	c.seq++
	c.pending = c.seq
	c.log.Info("submit %s (seq %d)", ticker, c.seq)
	return Request{Seq: c.seq, Ticker: ticker}, nil
}

// Complete applies the outcome of the pending request. Results for any other
// request are ignored and false is returned.
func (c *Controller) Complete(r Result) bool {
	if c.pending == 0 || r.Seq != c.pending {
		c.log.Warn("ignoring stale result seq %d (pending %d)", r.Seq, c.pending)
		return false
	}
	c.pending = 0

	if r.Err == nil && r.Assessment == nil {
		r.Err = ErrNoAssessment
	}
	c.loader.Settle(r.Assessment, r.Err)
	if r.Err != nil {
		c.log.Warn("fetch seq %d failed: %v", r.Seq, r.Err)
		return true
	}

	a := r.Assessment
	c.selected = selection.All(a)
	c.step = StepPainCardsPage1
	if n := len(a.PainCards); n > PageSize*PageCount {
		c.log.Warn("%s returned %d pain cards; only the first %d are shown", a.CompanyName, n, PageSize*PageCount)
	}
	c.log.Info("loaded %s: %d pain cards", a.CompanyName, len(a.PainCards))
	return true
}

func (c *Controller) fire(ev Event) error {
	to, ok := Transition(c.step, ev)
	if !ok {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, c.step)
	}
	c.log.Debug("%s: %s -> %s", ev, c.step, to)
	c.step = to
	return nil
}

// Next advances between card pages and from page 2 to the survey.
func (c *Controller) Next() error {
	return c.fire(EventNext)
}

// Back returns to the previous card page or from the survey to page 2.
func (c *Controller) Back() error {
	return c.fire(EventBack)
}

// Generate moves from the survey to the dashboard.
func (c *Controller) Generate() error {
	return c.fire(EventGenerate)
}

// Edit returns from the dashboard to the survey.
func (c *Controller) Edit() error {
	return c.fire(EventEdit)
}

// StartOver returns to the input step. The current assessment and selection
// are kept until a new fetch succeeds.
func (c *Controller) StartOver() error {
	return c.fire(EventStartOver)
}

// Resume returns from the input step to the retained assessment.
func (c *Controller) Resume() error {
	if c.Loading() {
		return ErrBusy
	}
	if c.loader.Current() == nil {
		return ErrNoAssessment
	}
	if err := c.fire(EventResume); err != nil {
		return err
	}
	c.loader.ClearError()
	return nil
}

// ToggleCard flips the selection of a pain card title. Allowed on both card
// pages, for cards on either page.
func (c *Controller) ToggleCard(title string) error {
	if !c.step.IsCardPage() {
		return fmt.Errorf("%w: toggle from %s", ErrInvalidTransition, c.step)
	}
	c.selected.Toggle(title)
	return nil
}

// SetAnswer changes one survey answer.
func (c *Controller) SetAnswer(key AnswerKey, value string) error {
	if c.step != StepSurvey {
		return fmt.Errorf("%w: answer from %s", ErrInvalidTransition, c.step)
	}
	return c.answers.Set(key, value)
}

// Answers returns the current survey answers.
func (c *Controller) Answers() UserAnswers {
	return c.answers
}

// Selected returns a copy of the selected card titles.
func (c *Controller) Selected() selection.Set {
	return c.selected.Clone()
}

// IsSelected reports whether a card title is selected.
func (c *Controller) IsSelected(title string) bool {
	return c.selected.Has(title)
}

// Assessment returns the last successfully fetched assessment, or nil.
func (c *Controller) Assessment() *assessment.Assessment {
	return c.loader.Current()
}

// ActivatedTiles derives the activated tile IDs from the current assessment
// and selection. Recomputed on every call.
func (c *Controller) ActivatedTiles() []string {
	a := c.loader.Current()
	if a == nil {
		return []string{}
	}
	return selection.DeriveActivatedTiles(a.PainCards, c.selected)
}

// PageCards returns the cards shown on a 1-based page. Out-of-range pages
// and missing cards yield an empty slice.
func (c *Controller) PageCards(page int) []assessment.PainCard {
	a := c.loader.Current()
	if a == nil {
		return nil
	}
	return Paginate(a.PainCards, page)
}

// VisibleCards returns the cards of the current step's page.
func (c *Controller) VisibleCards() []assessment.PainCard {
	return c.PageCards(c.step.Page())
}

// Paginate slices cards into fixed pages of PageSize.
func Paginate(cards []assessment.PainCard, page int) []assessment.PainCard {
	if page < 1 || page > PageCount {
		return nil
	}
	start := (page - 1) * PageSize
	if start >= len(cards) {
		return nil
	}
	end := start + PageSize
	if end > len(cards) {
		end = len(cards)
	}
	return cards[start:end]
}

// Err returns the surfaced error, if any.
func (c *Controller) Err() error {
	return c.loader.Err()
}

// ClearError dismisses the surfaced error.
func (c *Controller) ClearError() {
	c.loader.ClearError()
}

// HeaderText returns the subtitle shown above each step.
func (c *Controller) HeaderText() string {
	switch c.step {
	case StepInput, StepPainCardsPage1, StepPainCardsPage2:
		return "Enter a company ticker to generate CFO-level pain points."
	case StepSurvey:
		return "Just a few more questions to tailor your results."
	case StepDashboard:
		return "Based on your selections, here is the proposed initial transformation scope."
	}
	return ""
}
