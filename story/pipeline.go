package story

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-fable/fable"
)

// Defaults mirror the revision budgets and per-call deadline the
// pipeline ships with; all are adjustable through options.
const (
	DefaultMaxInternalRevisions = 1
	DefaultMaxUserRevisions     = 2
	DefaultRequestTimeout       = 60 * time.Second
)

// userReviseTemperature is used for user-driven revisions, slightly
// warmer than the judge-driven default.
const userReviseTemperature = 0.6

// qcState tracks the internal quality loop.
type qcState int

const (
	qcJudging qcState = iota
	qcRevising
	qcAccepted
	qcExhausted
)

func (s qcState) String() string {
	switch s {
	case qcJudging:
		return "judging"
	case qcRevising:
		return "revising"
	case qcAccepted:
		return "accepted"
	case qcExhausted:
		return "exhausted"
	}
	return "unknown"
}

// feedbackState tracks the user feedback loop.
type feedbackState int

const (
	fbPresenting feedbackState = iota
	fbRevising
	fbAccepted
	fbExhausted
)

func (s feedbackState) String() string {
	switch s {
	case fbPresenting:
		return "presenting"
	case fbRevising:
		return "revising"
	case fbAccepted:
		return "accepted"
	case fbExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Pipeline wires the four agents into the full flow: classify the
// request, draft a story, run the judge/reviser quality loop, then
// iterate on user feedback within a bounded budget.
type Pipeline struct {
	classifier  *Classifier
	storyteller *Storyteller
	judge       *Judge
	reviser     *Reviser

	logger         zerolog.Logger
	maxInternal    int
	maxUser        int
	requestTimeout time.Duration
	feedback       FeedbackReader
	out            io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithMaxInternalRevisions caps judge-driven revisions per run.
func WithMaxInternalRevisions(n int) Option {
	return func(p *Pipeline) { p.maxInternal = n }
}

// WithMaxUserRevisions caps user-driven revisions per run.
func WithMaxUserRevisions(n int) Option {
	return func(p *Pipeline) { p.maxUser = n }
}

// WithRequestTimeout bounds each model call. Zero disables the deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.requestTimeout = d }
}

// WithFeedbackReader sets the source of user feedback.
func WithFeedbackReader(r FeedbackReader) Option {
	return func(p *Pipeline) { p.feedback = r }
}

// WithOutput sets the writer drafts and prompts are presented on.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.out = w }
}

// NewPipeline builds a pipeline on the given provider and model.
func NewPipeline(provider fable.ModelProvider, model string, opts ...Option) (*Pipeline, error) {
	judge, err := NewJudge(provider, model)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		classifier:     NewClassifier(provider, model),
		storyteller:    NewStoryteller(provider, model),
		judge:          judge,
		reviser:        NewReviser(provider, model),
		logger:         zerolog.Nop(),
		maxInternal:    DefaultMaxInternalRevisions,
		maxUser:        DefaultMaxUserRevisions,
		requestTimeout: DefaultRequestTimeout,
		feedback:       NewScannerFeedback(os.Stdin),
		out:            os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Generate runs classification, drafting and the internal quality loop,
// returning a draft ready to show the user.
func (p *Pipeline) Generate(ctx context.Context, request string) (*Draft, error) {
	logger := p.logger.With().Str("run_id", uuid.NewString()).Logger()

	stageCtx, cancel := p.stageContext(ctx)
	category, known, err := p.classifier.Classify(stageCtx, request)
	cancel()
	if err != nil {
		return nil, err
	}
	event := logger.Info()
	if !known {
		event = logger.Warn().Bool("known", false)
	}
	event.Str("category", category.String()).Msg("request classified")

	stageCtx, cancel = p.stageContext(ctx)
	draft, err := p.storyteller.Tell(stageCtx, request, category)
	cancel()
	if err != nil {
		return nil, err
	}
	p.checkSections(logger, draft)

	return p.qualityLoop(ctx, logger, request, draft)
}

// qualityLoop alternates judging and revising until the judge accepts
// or the internal budget is spent. The last draft is returned either way.
func (p *Pipeline) qualityLoop(ctx context.Context, logger zerolog.Logger, request string, draft *Draft) (*Draft, error) {
	state := qcJudging
	revisions := 0
	for {
		switch state {
		case qcJudging:
			stageCtx, cancel := p.stageContext(ctx)
			verdict, err := p.judge.Review(stageCtx, request, draft)
			cancel()
			if err != nil {
				return nil, err
			}
			logger.Info().
				Bool("require_revision", verdict.RequireRevision).
				Strs("safety_flags", verdict.SafetyFlags).
				Strs("required_changes", verdict.RequiredChanges).
				Str("summary", verdict.Summary).
				Msg("draft judged")
			switch {
			case !verdict.RequireRevision:
				state = qcAccepted
			case revisions >= p.maxInternal:
				state = qcExhausted
			default:
				state = qcRevising
			}
		case qcRevising:
			stageCtx, cancel := p.stageContext(ctx)
			revised, err := p.reviser.Revise(stageCtx, request, draft, JudgeFeedback)
			cancel()
			if err != nil {
				return nil, err
			}
			draft = revised
			revisions++
			p.checkSections(logger, draft)
			logger.Info().Int("revision", revisions).Msg("draft revised")
			state = qcJudging
		case qcAccepted:
			logger.Info().Int("revisions", revisions).Str("state", state.String()).Msg("quality loop done")
			return draft, nil
		case qcExhausted:
			logger.Warn().Int("revisions", revisions).Str("state", state.String()).Msg("quality loop done")
			return draft, nil
		}
	}
}

// Refine shows the draft to the user and applies their feedback until
// they accept or the user budget is spent.
func (p *Pipeline) Refine(ctx context.Context, request string, draft *Draft) (*Draft, error) {
	logger := p.logger.With().Str("run_id", uuid.NewString()).Logger()
	state := fbPresenting
	revisions := 0
	var feedback string
	for {
		switch state {
		case fbPresenting:
			p.present(draft)
			line, err := p.feedback.Next(ctx)
			if err != nil {
				return nil, fmt.Errorf("read feedback: %w", err)
			}
			feedback = line
			switch {
			case feedback == "":
				state = fbAccepted
			case revisions >= p.maxUser:
				state = fbExhausted
			default:
				state = fbRevising
			}
		case fbRevising:
			stageCtx, cancel := p.stageContext(ctx)
			revised, err := p.reviser.Revise(stageCtx, request, draft, feedback, fable.Temperature(userReviseTemperature))
			cancel()
			if err != nil {
				return nil, err
			}
			draft = revised
			revisions++
			p.checkSections(logger, draft)
			logger.Info().Int("revision", revisions).Msg("draft revised for user")
			state = fbPresenting
		case fbAccepted:
			fmt.Fprintln(p.out, "\nFinal story accepted.")
			logger.Info().Int("revisions", revisions).Str("state", state.String()).Msg("feedback loop done")
			return draft, nil
		case fbExhausted:
			fmt.Fprintln(p.out, "\nReached the revision limit; keeping the latest version.")
			logger.Warn().Int("revisions", revisions).Str("state", state.String()).Msg("feedback loop done")
			return draft, nil
		}
	}
}

// present writes the current draft and the feedback prompt.
func (p *Pipeline) present(draft *Draft) {
	fmt.Fprintf(p.out, "\n=== STORY DRAFT ===\n\n%s\n", draft.Raw)
	fmt.Fprint(p.out, "\nHow does that sound? Enter feedback (or press Enter to accept): ")
}

// checkSections logs drafts that stray from the expected Markdown
// shape. The draft still flows on; structure is advisory, not fatal.
func (p *Pipeline) checkSections(logger zerolog.Logger, draft *Draft) {
	if missing := draft.MissingSections(); len(missing) > 0 {
		logger.Warn().Strs("missing_sections", missing).Msg("draft structure incomplete")
	}
}

func (p *Pipeline) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.requestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.requestTimeout)
}
