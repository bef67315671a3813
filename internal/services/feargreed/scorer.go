package feargreed

import (
	"context"
	"errors"
	"time"

	"Diversonal/internal/domain/models"
	domsvc "Diversonal/internal/domain/service"
	applogger "Diversonal/pkg/logger"
)

// ErrNoCompleter is the fallback reason when no language model is configured.
var ErrNoCompleter = errors.New("feargreed: no language model configured")

// Result is the outcome of scoring one asset.
type Result struct {
	FearGreed models.FearGreed
	Headline  *models.Headline
	Source    models.ScoreSource
}

// Scorer produces Fear & Greed readings. Any model failure degrades to an RSI-only
// score, and a missing RSI degrades to the neutral score.
type Scorer struct {
	completer domsvc.Completer
	timeout   time.Duration
	l         *applogger.Logger
}

type ScorerOption func(*Scorer)

// WithTimeout bounds each model call. Zero leaves the caller's deadline in place.
func WithTimeout(d time.Duration) ScorerOption {
	return func(s *Scorer) { s.timeout = d }
}

func WithLogger(l *applogger.Logger) ScorerOption {
	return func(s *Scorer) { s.l = l }
}

// NewScorer creates a scorer. completer may be nil, in which case every score is a fallback.
func NewScorer(completer domsvc.Completer, opts ...ScorerOption) *Scorer {
	s := &Scorer{completer: completer, l: applogger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score runs the model and combines its sub-scores with RSI.
func (s *Scorer) Score(ctx context.Context, in Input) Result {
	scores, err := s.ask(ctx, in)
	if err != nil {
		return s.fallback(in, err)
	}

	score := Composite(in.Variant(), in.RSI, scores)
	s.l.Debug("feargreed composite",
		applogger.String("ticker", in.Ticker),
		applogger.Int("score", score),
		applogger.Float64p("rsi", in.RSI),
	)
	return Result{
		FearGreed: models.FearGreed{Score: score, Label: Label(score), RSI: in.RSI},
		Headline:  SelectHeadline(in.News, scores.HeadlineNumber),
		Source:    models.SourceComposite,
	}
}

func (s *Scorer) ask(ctx context.Context, in Input) (Scores, error) {
	if s.completer == nil {
		return Scores{}, ErrNoCompleter
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.completer.Complete(ctx, BuildPrompt(in))
	if err != nil {
		return Scores{}, err
	}
	return ParseScores(reply, in.Variant())
}

func (s *Scorer) fallback(in Input, cause error) Result {
	score, source := Fallback(in.RSI)

	var pe *ParseError
	switch {
	case errors.Is(cause, ErrNoCompleter):
		s.l.Debug("feargreed model disabled, using fallback", applogger.String("ticker", in.Ticker))
	case errors.As(cause, &pe):
		s.l.Warn("feargreed model reply unparseable, using fallback",
			applogger.String("ticker", in.Ticker),
			applogger.Error(cause),
			applogger.Int("reply_len", len(pe.Raw)),
			applogger.Float64p("rsi", in.RSI),
		)
	default:
		s.l.Warn("feargreed model call failed, using fallback",
			applogger.String("ticker", in.Ticker),
			applogger.Error(cause),
			applogger.Float64p("rsi", in.RSI),
		)
	}

	return Result{
		FearGreed: models.FearGreed{Score: score, Label: Label(score), RSI: in.RSI},
		Headline:  SelectHeadline(in.News, 1),
		Source:    source,
	}
}
