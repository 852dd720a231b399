package ai

import (
	"fmt"
	"strings"
)

const editorSystemPrompt = `You are a senior news editor at a digital newsroom. You write accurate, clear copy in AP style. Never invent facts that are not in the article.`

const adjustHeadlineTmpl = `Rewrite the headline below according to the editor's instruction. Return ONLY valid JSON of the form {"headlines": ["...", "...", "..."]} with exactly 3 alternatives, each under 12 words, most recommended first.

Example:
Headline: City Council Approves Budget
Instruction: make it more specific
Output: {"headlines": ["Council Approves $4.2B Budget With Transit Boost", "City Budget Passes, Adding 300 Police Officers", "Council OKs Budget After Late-Night Property Tax Deal"]}

Headline: %s
Instruction: %s

Article:
%s`

const generateHeadlinesTmpl = `Write 7 headlines for the article below. Each headline must be under 12 words, factual, and in title case. Return a numbered list, one headline per line, with no commentary.

Article:
%s`

const punchyHeadlinesTmpl = `Write 3 punchy, high-energy headlines for the article below. Each must be under 10 words and use a strong active verb. Do not use clickbait phrases like "you won't believe". Return a numbered list, one headline per line, with no commentary.

Article:
%s`

const seoHeadlinesTmpl = `Rewrite the headline below for search. Write 3 alternatives, each between 50 and 65 characters, with the most important keyword in the first five words. Return a numbered list, one headline per line, with no commentary.

Current headline: %s

Article:
%s`

const shortHeadlinesTmpl = `Write 3 very short versions of the headline below for a homepage tile. Each must be 4 words or less. Return a numbered list, one per line, with no commentary.

Example:
Headline: Governor Signs Sweeping Overhaul of State Water Rights
1. Water Rights Overhaul Signed
2. Governor Remakes Water Law
3. New State Water Rules

Headline: %s`

const reviewHeadlineTmpl = `Review the headline below against the article. In 3 to 5 short sentences, say whether it is accurate, whether it overstates or understates the story, and how it could be improved. Then suggest one improved headline under 12 words on its own final line prefixed with "Suggested:".

Headline: %s

Article:
%s`

const leadTmpl = `Write a lead paragraph for the article below. Use two sentences, no more than 45 words total. Answer who, what, when and where. Return only the paragraph.

Article:
%s`

const shortLeadTmpl = `Write a one-sentence lead for the article below, no more than 30 words. Answer who, what and why it matters. Return only the sentence.

Article:
%s`

const quotesTmpl = `Extract the 3 strongest direct quotes from the article below. Copy them verbatim, without quotation marks or attribution. If the article has fewer than 3 direct quotes, return only the ones that exist. Return ONLY valid JSON of the form {"quotes": ["...", "...", "..."]}.

Article:
%s`

const h2sTmpl = `Add subheadings to the article below. Keep every sentence of the original text unchanged. Insert a subheading before each major section, roughly every 3 to 5 paragraphs. Each subheading must be on its own line, start with "## ", be 2 to 5 words long, and have no ending punctuation. Return the full article text with the subheadings inserted.

Article:
%s`

const reportTmpl = `Write an internal editorial report on the article below for the news desk. Cover, in short paragraphs: the main news, key sources and how well they are attributed, missing context or follow-up questions, and potential legal or fairness concerns. Use plain text with short section labels.

Article:
%s`

const optimizePromptTmpl = `Rewrite the image request below as a detailed prompt for an image-generation model. Describe subject, setting, composition, lighting and mood in a single paragraph under 80 words. Do not include text, logos or real people's likenesses. Return only the prompt.

Request: %s`

const altTextTmpl = `Write accessibility alt text for an image described below. Use one sentence of 5-15 words, start with the main subject, and do not begin with "Image of" or "Picture of". Return only the alt text.

Description: %s`

const socialPostsTmpl = `Write 3 social media posts promoting the article below. Each must be under 240 characters, accurate, and end with no hashtags. Return a numbered list, one post per line, with no commentary.

Headline: %s

Article:
%s`

const keywordsTmpl = `List up to 7 search keyword phrases for the article below, most important first. Each phrase should be 1 to 4 words. Return ONLY valid JSON of the form {"keywords": ["...", "..."]}.

Article:
%s`

const analystRatingsSystemPrompt = `You are a markets reporter. You write short, neutral summaries of Wall Street analyst activity. Use only the data provided.`

const analystRatingsTmpl = `Summarize the recent analyst ratings for %s below in one paragraph of 3 to 4 sentences suitable for a market news brief. Mention the most recent action first and any clear trend in ratings or price targets. Do not give investment advice.

Recent ratings:
%s`

// AdjustHeadlinePrompt builds the prompt that rewrites a headline according
// to an editor's instruction, answered as JSON.
func AdjustHeadlinePrompt(headline, tweak, articleText string) Prompt {
	return Prompt{
		System: editorSystemPrompt,
		User:   fmt.Sprintf(adjustHeadlineTmpl, headline, tweak, articleText),
	}
}

// GenerateHeadlinesPrompt builds the prompt for a 7-item headline list.
func GenerateHeadlinesPrompt(articleText string) Prompt {
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(generateHeadlinesTmpl, articleText)}
}

// PunchyHeadlinesPrompt asks for 3 active-verb headlines under 10 words.
func PunchyHeadlinesPrompt(articleText string) Prompt {
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(punchyHeadlinesTmpl, articleText)}
}

// SEOHeadlinesPrompt asks for 3 search rewrites of headline, 50 to 65
// characters each.
func SEOHeadlinesPrompt(headline, articleText string) Prompt {
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(seoHeadlinesTmpl, headline, articleText)}
}

// ShortHeadlinesPrompt asks for 3 homepage-tile versions of headline.
func ShortHeadlinesPrompt(headline string) Prompt {
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(shortHeadlinesTmpl, headline)}
}

// ReviewHeadlinePrompt asks for a short critique of headline ending in a
// "Suggested:" line.
func ReviewHeadlinePrompt(headline, articleText string) Prompt {
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(reviewHeadlineTmpl, headline, articleText)}
}

// LeadPrompt builds the lead-paragraph prompt. Version "short" asks for a
// single-sentence lead.
func LeadPrompt(articleText, version string) Prompt {
	tmpl := leadTmpl
	if strings.EqualFold(strings.TrimSpace(version), "short") {
		tmpl = shortLeadTmpl
	}
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(tmpl, articleText)}
}

// QuotesPrompt asks for up to 3 verbatim quotes, answered as JSON.
func QuotesPrompt(articleText string) Prompt {
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(quotesTmpl, articleText)}
}

// H2sPrompt asks for the full article back with "## " subheadings inserted.
func H2sPrompt(articleText string) Prompt {
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(h2sTmpl, articleText)}
}

// ReportPrompt asks for an internal editorial report on the article.
func ReportPrompt(articleText string) Prompt {
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(reportTmpl, articleText)}
}

// OptimizePromptPrompt turns a loose image request into a model-ready image
// prompt. A non-empty style is appended to the request.
func OptimizePromptPrompt(request, style string) Prompt {
	if style = strings.TrimSpace(style); style != "" {
		request = request + " (style: " + style + ")"
	}
	return Prompt{User: fmt.Sprintf(optimizePromptTmpl, request)}
}

// AltTextPrompt asks for image alt text from a description.
func AltTextPrompt(description string) Prompt {
	return Prompt{User: fmt.Sprintf(altTextTmpl, description)}
}

// SocialPostsPrompt asks for 3 posts under 240 characters.
func SocialPostsPrompt(headline, articleText string) Prompt {
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(socialPostsTmpl, headline, articleText)}
}

// KeywordsPrompt asks for up to 7 keyword phrases, answered as JSON.
func KeywordsPrompt(articleText string) Prompt {
	return Prompt{System: editorSystemPrompt, User: fmt.Sprintf(keywordsTmpl, articleText)}
}

// AnalystRatingsPrompt embeds a pre-formatted block of rating lines.
func AnalystRatingsPrompt(ticker, ratingsBlock string) Prompt {
	return Prompt{
		System: analystRatingsSystemPrompt,
		User:   fmt.Sprintf(analystRatingsTmpl, ticker, ratingsBlock),
	}
}
