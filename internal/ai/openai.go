package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Compile-time interface checks.
var (
	_ Provider       = (*OpenAIProvider)(nil)
	_ ImageGenerator = (*OpenAIProvider)(nil)
)

const (
	defaultOpenAIModel      = "gpt-4o"
	defaultOpenAIImageModel = "dall-e-3"
)

// OpenAIProvider implements Provider and ImageGenerator using the OpenAI
// Chat Completions and Images APIs.
type OpenAIProvider struct {
	client     openai.Client
	model      string
	imageModel string
}

// NewOpenAIProvider creates an OpenAIProvider. SDK retries are disabled so
// every call is a single attempt.
func NewOpenAIProvider(cfg ProviderConfig, timeout time.Duration) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = defaultOpenAIImageModel
	}

	return &OpenAIProvider{
		client:     openai.NewClient(opts...),
		model:      model,
		imageModel: imageModel,
	}
}

func (p *OpenAIProvider) Name() string  { return ProviderOpenAI }
func (p *OpenAIProvider) Model() string { return p.model }

// Complete sends a chat completion request and returns the content of the
// first choice.
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.Prompt.System != "" {
		messages = append(messages, openai.SystemMessage(req.Prompt.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt.User))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.SchemaName,
					Schema: req.Schema,
					Strict: openai.Bool(true),
				},
			},
		}
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}

	slog.DebugContext(ctx, "openai chat completed",
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat: empty response: no choices returned")
	}

	return &Completion{
		Text:         resp.Choices[0].Message.Content,
		Model:        model,
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	}, nil
}

// GenerateImage renders a single image and returns its hosted URL.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error) {
	params := openai.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          openai.ImageModel(p.imageModel),
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormat("url"),
	}
	if req.Size != "" {
		params.Size = openai.ImageGenerateParamsSize(req.Size)
	}
	if req.Quality != "" {
		params.Quality = openai.ImageGenerateParamsQuality(req.Quality)
	}
	if req.Style != "" {
		params.Style = openai.ImageGenerateParamsStyle(req.Style)
	}

	start := time.Now()
	resp, err := p.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai image: %w", err)
	}

	slog.DebugContext(ctx, "openai image generated",
		"model", p.imageModel,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	img := &GeneratedImage{Model: p.imageModel}
	if len(resp.Data) > 0 {
		img.URL = resp.Data[0].URL
		img.RevisedPrompt = resp.Data[0].RevisedPrompt
	}
	return img, nil
}
