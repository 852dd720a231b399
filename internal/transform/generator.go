package transform

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/hoanghai1803/newsdesk/internal/ai"
	"github.com/hoanghai1803/newsdesk/internal/logger"
	"github.com/hoanghai1803/newsdesk/internal/market"
	"github.com/hoanghai1803/newsdesk/internal/textproc"
)

// ArticleExtractor resolves an article URL to readable body text.
type ArticleExtractor interface {
	Extract(ctx context.Context, rawURL string) (string, error)
}

// Options configures a Generator. Providers are keyed by Name(); nil
// collaborators disable the features that need them.
type Options struct {
	Providers       []ai.Provider
	DefaultProvider string
	Images          ai.ImageGenerator
	Articles        ArticleExtractor
	Ratings         market.Source
	LookbackDays    int
	MaxWords        int
}

// Generator runs endpoint pipelines against injected model providers.
// It holds no per-request state and is safe for concurrent use.
type Generator struct {
	providers       map[string]ai.Provider
	defaultProvider string
	images          ai.ImageGenerator
	articles        ArticleExtractor
	ratings         market.Source
	lookbackDays    int
	maxWords        int
	validate        *validator.Validate
	now             func() time.Time
}

// NewGenerator builds a Generator from opts. When the default provider has
// no client but another provider does, that provider becomes the default.
func NewGenerator(opts Options) *Generator {
	providers := make(map[string]ai.Provider, len(opts.Providers))
	for _, p := range opts.Providers {
		if p != nil {
			providers[p.Name()] = p
		}
	}

	defaultProvider := opts.DefaultProvider
	if _, ok := providers[defaultProvider]; !ok && len(providers) > 0 {
		fallback := sortedNames(providers)[0]
		slog.Warn("default AI provider not configured, falling back",
			"default", defaultProvider,
			"provider", fallback,
		)
		defaultProvider = fallback
	}

	lookback := opts.LookbackDays
	if lookback <= 0 {
		lookback = 90
	}

	return &Generator{
		providers:       providers,
		defaultProvider: defaultProvider,
		images:          opts.Images,
		articles:        opts.Articles,
		ratings:         opts.Ratings,
		lookbackDays:    lookback,
		maxWords:        opts.MaxWords,
		validate:        newValidator(),
		now:             time.Now,
	}
}

// newValidator returns a validator with the non-standard notblank tag
// registered.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("registering notblank validation: %v", err))
	}
	return v
}

// Providers lists the configured text providers by name.
func (g *Generator) Providers() []string {
	return sortedNames(g.providers)
}

// DefaultProvider names the provider used when a request does not pick one.
func (g *Generator) DefaultProvider() string {
	return g.defaultProvider
}

func sortedNames(providers map[string]ai.Provider) []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RatingsSource names the configured market-data source, or "" if none.
func (g *Generator) RatingsSource() string {
	if g.ratings == nil {
		return ""
	}
	return g.ratings.Name()
}

// ImagesEnabled reports whether an image generator is configured.
func (g *Generator) ImagesEnabled() bool {
	return g.images != nil
}

// Result is the outcome of one pipeline run. Body always holds every output
// the endpoint declares, at its empty value when err is non-nil.
type Result struct {
	Body         map[string]any
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Run executes the generic pipeline for ep: resolve articleUrl, validate,
// truncate, render, complete once, parse.
func (g *Generator) Run(ctx context.Context, ep Endpoint, req Request) (*Result, error) {
	res := &Result{Body: ep.EmptyBody()}

	req, err := g.prepare(ctx, ep, req)
	if err != nil {
		return res, err
	}

	provider, err := g.provider(req.Provider)
	if err != nil {
		return res, err
	}
	res.Provider = provider.Name()
	res.Model = provider.Model()
	ctx = logger.WithLogFields(ctx, logger.LogFields{Provider: provider.Name()})

	completion, err := provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      ep.Prompt(req),
		MaxTokens:   ep.MaxTokens,
		Temperature: ep.Temperature,
		SchemaName:  ep.SchemaName,
		Schema:      ep.Schema,
	})
	if err != nil {
		slog.ErrorContext(ctx, "completion failed", "error", err)
		return res, &UpstreamError{Op: "completion", Err: err}
	}
	res.record(completion)

	fields, err := ep.Parse(completion.Text)
	if err != nil {
		slog.WarnContext(ctx, "unparseable model output",
			"raw", logger.Truncate(completion.Text, 2000),
			"error", err,
		)
		return res, &ShapeError{Raw: completion.Text, Err: err}
	}

	res.Body = ep.Body(fields)
	return res, nil
}

// prepare fills articleText from articleUrl when needed, validates required
// fields and truncates the article to the configured word cap.
func (g *Generator) prepare(ctx context.Context, ep Endpoint, req Request) (Request, error) {
	if requires(ep, FieldArticleText) && strings.TrimSpace(req.ArticleText) == "" &&
		strings.TrimSpace(req.ArticleURL) != "" && g.articles != nil {
		text, err := g.articles.Extract(ctx, req.ArticleURL)
		if err != nil {
			slog.WarnContext(ctx, "article extraction failed", "url", req.ArticleURL, "error", err)
			return req, &ValidationError{Field: FieldArticleURL, Message: "could not extract article text from articleUrl"}
		}
		req.ArticleText = text
	}

	if err := g.checkRequired(ep, req); err != nil {
		return req, err
	}

	req.ArticleText = textproc.TruncateWords(req.ArticleText, g.maxWords)
	return req, nil
}

func (g *Generator) checkRequired(ep Endpoint, req Request) error {
	for _, f := range ep.Required {
		if err := g.validate.Var(req.Get(f), "notblank"); err != nil {
			return missingField(f)
		}
	}
	return nil
}

// provider resolves a caller-supplied provider flag. An empty or unknown flag
// selects the default provider.
func (g *Generator) provider(flag string) (ai.Provider, error) {
	name := ai.NormalizeProvider(strings.ToLower(strings.TrimSpace(flag)), g.defaultProvider)
	p, ok := g.providers[name]
	if !ok {
		return nil, fmt.Errorf("%s provider: %w", name, ErrNotConfigured)
	}
	return p, nil
}

func (r *Result) record(c *ai.Completion) {
	if c.Model != "" {
		r.Model = c.Model
	}
	r.InputTokens += c.InputTokens
	r.OutputTokens += c.OutputTokens
}

func requires(ep Endpoint, f Field) bool {
	for _, r := range ep.Required {
		if r == f {
			return true
		}
	}
	return false
}
