// Package transform implements the text-transform endpoints: a catalog of
// endpoint descriptions and a Generator that validates a request, renders the
// prompt, calls a model once and reshapes the completion into a response body
// whose shape never depends on whether the call succeeded.
package transform

// Field names a request field as it appears in JSON.
type Field string

const (
	FieldHeadline    Field = "headline"
	FieldArticleText Field = "articleText"
	FieldArticleURL  Field = "articleUrl"
	FieldTweak       Field = "tweak"
	FieldTicker      Field = "ticker"
	FieldPrompt      Field = "prompt"
	FieldDescription Field = "description"
	FieldStyle       Field = "style"
	FieldVersion     Field = "version"
	FieldProvider    Field = "provider"
)

// Request is the union of fields accepted by every endpoint. Each endpoint
// declares which of them are required.
type Request struct {
	Headline    string `json:"headline"`
	ArticleText string `json:"articleText"`
	ArticleURL  string `json:"articleUrl"`
	Tweak       string `json:"tweak"`
	Ticker      string `json:"ticker"`
	Prompt      string `json:"prompt"`
	Description string `json:"description"`
	Style       string `json:"style"`
	Version     string `json:"version"`
	Provider    string `json:"provider"`
}

// Get returns the value of field f.
func (r Request) Get(f Field) string {
	switch f {
	case FieldHeadline:
		return r.Headline
	case FieldArticleText:
		return r.ArticleText
	case FieldArticleURL:
		return r.ArticleURL
	case FieldTweak:
		return r.Tweak
	case FieldTicker:
		return r.Ticker
	case FieldPrompt:
		return r.Prompt
	case FieldDescription:
		return r.Description
	case FieldStyle:
		return r.Style
	case FieldVersion:
		return r.Version
	case FieldProvider:
		return r.Provider
	default:
		return ""
	}
}
