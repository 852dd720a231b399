package ai

import "github.com/invopop/jsonschema"

// GenerateSchema reflects T into a strict JSON schema suitable for
// structured-output requests.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// HeadlineSet is the structured shape requested from headline endpoints.
type HeadlineSet struct {
	Headlines []string `json:"headlines" jsonschema:"description=Alternative headlines, most recommended first"`
}

// QuoteSet is the structured shape requested from the quote extractor.
type QuoteSet struct {
	Quotes []string `json:"quotes" jsonschema:"description=Verbatim quotes taken from the article"`
}

// KeywordSet is the structured shape requested from the keyword extractor.
type KeywordSet struct {
	Keywords []string `json:"keywords" jsonschema:"description=Search keyword phrases"`
}
