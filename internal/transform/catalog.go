package transform

import (
	"net/http"

	"github.com/hoanghai1803/newsdesk/internal/ai"
)

// Endpoint names that are served by dedicated pipelines rather than Run.
const (
	AnalystRatingsName = "analyst-ratings"
	ImageName          = "dalle-image"
)

// Catalog returns every endpoint served by Generator.Run, in route order.
func Catalog() []Endpoint {
	return []Endpoint{
		{
			Name:           "adjust-headline",
			Required:       []Field{FieldHeadline, FieldTweak, FieldArticleText},
			Outputs:        []Output{{Name: "headlines", Kind: KindList}},
			Prompt:         func(r Request) ai.Prompt { return ai.AdjustHeadlinePrompt(r.Headline, r.Tweak, r.ArticleText) },
			MaxTokens:      300,
			Temperature:    0.7,
			SchemaName:     "headline_set",
			Schema:         ai.GenerateSchema[ai.HeadlineSet](),
			Parse:          jsonListOutput("headlines", 3),
			FailureMessage: "Failed to adjust headline.",
		},
		{
			Name:           "generate-headlines",
			Required:       []Field{FieldArticleText},
			Outputs:        []Output{{Name: "headlines", Kind: KindList}},
			Prompt:         func(r Request) ai.Prompt { return ai.GenerateHeadlinesPrompt(r.ArticleText) },
			MaxTokens:      400,
			Temperature:    0.7,
			Parse:          numberedListOutput("headlines", 7),
			FailureMessage: "Failed to generate headlines.",
		},
		{
			Name:           "punchy-headlines",
			Required:       []Field{FieldArticleText},
			Outputs:        []Output{{Name: "headlines", Kind: KindList}},
			Prompt:         func(r Request) ai.Prompt { return ai.PunchyHeadlinesPrompt(r.ArticleText) },
			MaxTokens:      200,
			Temperature:    0.9,
			Parse:          numberedListOutput("headlines", 3),
			FailureMessage: "Failed to generate punchy headlines.",
		},
		{
			Name:           "seo-headlines",
			Required:       []Field{FieldHeadline, FieldArticleText},
			Outputs:        []Output{{Name: "headlines", Kind: KindList}},
			Prompt:         func(r Request) ai.Prompt { return ai.SEOHeadlinesPrompt(r.Headline, r.ArticleText) },
			MaxTokens:      250,
			Temperature:    0.7,
			Parse:          numberedListOutput("headlines", 3),
			FailureMessage: "Failed to generate SEO headlines.",
		},
		{
			Name:           "short-headlines",
			Required:       []Field{FieldHeadline},
			Outputs:        []Output{{Name: "headlines", Kind: KindList}},
			Prompt:         func(r Request) ai.Prompt { return ai.ShortHeadlinesPrompt(r.Headline) },
			MaxTokens:      100,
			Temperature:    0.8,
			Parse:          numberedListOutput("headlines", 3),
			FailureMessage: "Failed to generate short headlines.",
		},
		{
			Name:           "review-headline",
			Required:       []Field{FieldHeadline, FieldArticleText},
			Outputs:        []Output{{Name: "review", Kind: KindText}},
			Prompt:         func(r Request) ai.Prompt { return ai.ReviewHeadlinePrompt(r.Headline, r.ArticleText) },
			MaxTokens:      500,
			Temperature:    0.7,
			Parse:          textOutput("review"),
			FailureMessage: "Failed to review headline.",
		},
		{
			Name:           "lead",
			Required:       []Field{FieldArticleText},
			Outputs:        []Output{{Name: "lead", Kind: KindText}},
			Prompt:         func(r Request) ai.Prompt { return ai.LeadPrompt(r.ArticleText, r.Version) },
			MaxTokens:      300,
			Temperature:    0.7,
			Parse:          textOutput("lead"),
			FailureMessage: "Failed to generate lead.",
		},
		{
			Name:           "quotes",
			Required:       []Field{FieldArticleText},
			Outputs:        []Output{{Name: "quotes", Kind: KindList, Len: 3}},
			Prompt:         func(r Request) ai.Prompt { return ai.QuotesPrompt(r.ArticleText) },
			MaxTokens:      600,
			Temperature:    0.1,
			SchemaName:     "quote_set",
			Schema:         ai.GenerateSchema[ai.QuoteSet](),
			Parse:          jsonListOutput("quotes", 3),
			FailureMessage: "Failed to extract quotes.",
		},
		{
			Name:     "h2s",
			Required: []Field{FieldArticleText},
			Outputs: []Output{
				{Name: "articleText", Kind: KindText},
				{Name: "h2s", Kind: KindList},
			},
			Prompt:         func(r Request) ai.Prompt { return ai.H2sPrompt(r.ArticleText) },
			MaxTokens:      3000,
			Temperature:    0.7,
			Parse:          headingsOutput("articleText", "h2s"),
			FailureMessage: "Failed to add subheadings.",
		},
		{
			Name:           "report",
			Required:       []Field{FieldArticleText},
			Outputs:        []Output{{Name: "report", Kind: KindText}},
			Prompt:         func(r Request) ai.Prompt { return ai.ReportPrompt(r.ArticleText) },
			MaxTokens:      1200,
			Temperature:    0.7,
			Parse:          textOutput("report"),
			FailureMessage: "Failed to generate report.",
		},
		{
			Name:           "optimize-prompt",
			Required:       []Field{FieldPrompt},
			Outputs:        []Output{{Name: "prompt", Kind: KindText}},
			Prompt:         func(r Request) ai.Prompt { return ai.OptimizePromptPrompt(r.Prompt, r.Style) },
			MaxTokens:      300,
			Temperature:    0.7,
			Parse:          textOutput("prompt"),
			FailureMessage: "Failed to optimize prompt.",
		},
		{
			Name:           "alt-text",
			Required:       []Field{FieldDescription},
			Outputs:        []Output{{Name: "altText", Kind: KindText}},
			Prompt:         func(r Request) ai.Prompt { return ai.AltTextPrompt(r.Description) },
			MaxTokens:      150,
			Temperature:    0.3,
			Parse:          plainTextOutput("altText"),
			FailureMessage: "Failed to generate alt text.",
		},
		{
			Name:           "social-posts",
			Required:       []Field{FieldHeadline, FieldArticleText},
			Outputs:        []Output{{Name: "posts", Kind: KindList}},
			Prompt:         func(r Request) ai.Prompt { return ai.SocialPostsPrompt(r.Headline, r.ArticleText) },
			MaxTokens:      400,
			Temperature:    0.8,
			Parse:          numberedListOutput("posts", 3),
			FailureMessage: "Failed to generate social posts.",
		},
		{
			Name:           "keywords",
			Required:       []Field{FieldArticleText},
			Outputs:        []Output{{Name: "keywords", Kind: KindList}},
			Prompt:         func(r Request) ai.Prompt { return ai.KeywordsPrompt(r.ArticleText) },
			MaxTokens:      300,
			Temperature:    0.1,
			SchemaName:     "keyword_set",
			Schema:         ai.GenerateSchema[ai.KeywordSet](),
			Parse:          jsonListOutput("keywords", 7),
			FailureMessage: "Failed to extract keywords.",
		},
	}
}

// AnalystRatingsEndpoint describes the market-data-augmented summary route.
// It is the one endpoint that rejects invalid input with 400.
func AnalystRatingsEndpoint() Endpoint {
	return Endpoint{
		Name:     AnalystRatingsName,
		Required: []Field{FieldTicker},
		Outputs: []Output{
			{Name: "summary", Kind: KindText},
			{Name: "ratings", Kind: KindList},
		},
		MaxTokens:      500,
		Temperature:    0.7,
		RejectStatus:   http.StatusBadRequest,
		FailureMessage: "Failed to fetch analyst ratings.",
	}
}

// ImageEndpoint describes the image-generation route.
func ImageEndpoint() Endpoint {
	return Endpoint{
		Name:     ImageName,
		Required: []Field{FieldPrompt},
		Outputs: []Output{
			{Name: "imageUrl", Kind: KindText},
			{Name: "revisedPrompt", Kind: KindText},
			{Name: "altText", Kind: KindText},
		},
		FailureMessage: "Failed to generate image.",
	}
}

// Lookup finds a catalog endpoint by route name.
func Lookup(name string) (Endpoint, bool) {
	for _, ep := range Catalog() {
		if ep.Name == name {
			return ep, true
		}
	}
	return Endpoint{}, false
}
