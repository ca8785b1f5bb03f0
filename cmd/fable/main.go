// Command fable generates bedtime stories for ages 5-10. A request is
// classified, drafted, reviewed by an internal judge and then refined
// with user feedback, all within bounded revision budgets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/openai/openai-go/v2/option"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/go-fable/fable"
	geminiprovider "github.com/go-fable/fable/contrib/gemini"
	openaiprovider "github.com/go-fable/fable/contrib/openai"
	"github.com/go-fable/fable/internal/config"
	"github.com/go-fable/fable/story"
)

func main() {
	prompt := flag.String("p", "", "story request (interactive prompt when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fable:", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)

	ctx := context.Background()
	provider, err := newProvider(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("provider setup failed")
	}
	provider = fable.LoggingMiddleware(logger)(provider)

	feedback := story.NewScannerFeedback(os.Stdin)
	pipeline, err := story.NewPipeline(provider, cfg.Model,
		story.WithLogger(logger),
		story.WithMaxInternalRevisions(cfg.MaxInternalRevisions),
		story.WithMaxUserRevisions(cfg.MaxUserRevisions),
		story.WithRequestTimeout(cfg.RequestTimeout),
		story.WithFeedbackReader(feedback),
		story.WithOutput(os.Stdout),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("pipeline setup failed")
	}

	request := *prompt
	if request == "" {
		fmt.Print("What kind of story do you want? ")
		request, err = feedback.Next(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("reading request failed")
		}
	}
	if request == "" {
		fmt.Fprintln(os.Stderr, "fable: empty story request")
		os.Exit(1)
	}

	draft, err := pipeline.Generate(ctx, request)
	if err != nil {
		logger.Fatal().Err(err).Msg("story generation failed")
	}
	final, err := pipeline.Refine(ctx, request, draft)
	if err != nil {
		logger.Fatal().Err(err).Msg("story refinement failed")
	}

	fmt.Printf("\n=== FINAL STORY ===\n\n%s\n", final.Raw)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

// newProvider selects the model backend from configuration. API keys
// are checked up front so a misconfigured run fails before any prompt.
func newProvider(ctx context.Context, cfg *config.Config) (fable.ModelProvider, error) {
	switch cfg.Provider {
	case "openai":
		if os.Getenv("OPENAI_API_KEY") == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		return openaiprovider.NewProvider(opts...), nil
	case "gemini":
		if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		return geminiprovider.NewProvider(ctx, &genai.ClientConfig{})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
