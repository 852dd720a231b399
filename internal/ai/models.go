package ai

// ProviderConfig holds the configuration needed to create an AI provider.
type ProviderConfig struct {
	Provider   string // "openai" | "anthropic"
	APIKey     string
	Model      string
	ImageModel string // openai only
	BaseURL    string // optional, used by tests and compatible gateways
	TimeoutSec int
}

// Prompt is a rendered instruction pair sent to a chat model.
type Prompt struct {
	System string
	User   string
}

// CompletionRequest is a single chat-completion call with fixed sampling
// parameters. An empty Model selects the provider's configured model.
type CompletionRequest struct {
	Prompt      Prompt
	Model       string
	MaxTokens   int
	Temperature float64

	// Schema, when set, asks providers that support structured output to
	// constrain the completion to this JSON schema.
	SchemaName string
	Schema     any
}

// Completion is the text returned by a chat model plus token usage.
type Completion struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// ImageRequest describes a single image-generation call.
type ImageRequest struct {
	Prompt  string
	Size    string
	Quality string
	Style   string
}

// GeneratedImage is the result of an image-generation call.
type GeneratedImage struct {
	URL           string
	RevisedPrompt string
	Model         string
}
