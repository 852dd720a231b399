package transform

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hoanghai1803/newsdesk/internal/ai"
	"github.com/hoanghai1803/newsdesk/internal/textproc"
)

// Fixed image parameters.
const (
	imageSize    = "1792x1024"
	imageQuality = "hd"
	imageStyle   = "vivid"
)

// Alt-text token budgets per provider.
const (
	altTextTokensAnthropic = 150
	altTextTokensOpenAI    = 100
)

var errNoImageURL = errors.New("image response has no URL")

// Image generates one image for req.Prompt. When req.Description is set,
// alt text is generated concurrently by the provider req.Provider selects;
// any alt-text failure falls back to the description itself.
func (g *Generator) Image(ctx context.Context, req Request) (*Result, error) {
	ep := ImageEndpoint()
	res := &Result{Body: ep.EmptyBody()}

	if err := g.checkRequired(ep, req); err != nil {
		return res, err
	}
	if g.images == nil {
		return res, &UpstreamError{Op: "image", Err: ErrNotConfigured}
	}

	prompt := strings.TrimSpace(req.Prompt)
	if style := strings.TrimSpace(req.Style); style != "" {
		prompt += "\n\nStyle: " + style
	}
	description := strings.TrimSpace(req.Description)

	var (
		image   *ai.GeneratedImage
		altText = description
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		img, err := g.images.GenerateImage(egCtx, ai.ImageRequest{
			Prompt:  prompt,
			Size:    imageSize,
			Quality: imageQuality,
			Style:   imageStyle,
		})
		if err != nil {
			slog.ErrorContext(ctx, "image generation failed", "error", err)
			return &UpstreamError{Op: "image", Err: err}
		}
		if img.URL == "" {
			slog.WarnContext(ctx, "image response missing URL", "revised_prompt", img.RevisedPrompt)
			return &ShapeError{Err: errNoImageURL}
		}
		image = img
		return nil
	})
	if description != "" {
		eg.Go(func() error {
			altText = g.altText(egCtx, description, req.Provider)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return res, err
	}

	res.Provider = ai.ProviderOpenAI
	res.Model = image.Model
	res.Body = ep.Body(Fields{
		"imageUrl":      image.URL,
		"revisedPrompt": image.RevisedPrompt,
		"altText":       altText,
	})
	return res, nil
}

// altText never fails: it returns description whenever the provider is
// missing, the call errors or the model returns nothing usable.
func (g *Generator) altText(ctx context.Context, description, flag string) string {
	name := ai.NormalizeProvider(strings.ToLower(strings.TrimSpace(flag)), ai.ProviderOpenAI)
	p, ok := g.providers[name]
	if !ok {
		slog.WarnContext(ctx, "alt-text provider not configured, using description", "provider", name)
		return description
	}

	maxTokens := altTextTokensOpenAI
	if name == ai.ProviderAnthropic {
		maxTokens = altTextTokensAnthropic
	}

	completion, err := p.Complete(ctx, ai.CompletionRequest{
		Prompt:      ai.AltTextPrompt(description),
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		slog.WarnContext(ctx, "alt-text generation failed, using description", "provider", name, "error", err)
		return description
	}

	if text := textproc.StripMarkdown(completion.Text); text != "" {
		return text
	}
	return description
}
