package transform

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hoanghai1803/newsdesk/internal/ai"
	"github.com/hoanghai1803/newsdesk/internal/textproc"
)

// Kind is the JSON shape of a response output.
type Kind int

const (
	KindText Kind = iota
	KindList
)

// Output is one declared response field. A list output with Len > 0 is
// always exactly Len entries long.
type Output struct {
	Name string
	Kind Kind
	Len  int
}

// Fields holds parsed output values by name.
type Fields map[string]any

// Endpoint describes one text-transform route.
type Endpoint struct {
	Name     string
	Required []Field
	Outputs  []Output

	Prompt      func(Request) ai.Prompt
	MaxTokens   int
	Temperature float64
	SchemaName  string
	Schema      any

	// Parse reshapes completion text into output values. An error means the
	// text did not have the expected structure.
	Parse func(text string) (Fields, error)

	// RejectStatus is the HTTP status for a validation failure.
	RejectStatus   int
	FailureMessage string
}

// EmptyBody returns a body holding every declared output at its empty value.
func (e Endpoint) EmptyBody() map[string]any {
	return e.Body(nil)
}

// Body returns a response body with every declared output present. Values in
// f override the empty values; list outputs are never nil.
func (e Endpoint) Body(f Fields) map[string]any {
	body := make(map[string]any, len(e.Outputs)+1)
	for _, out := range e.Outputs {
		v := f[out.Name]
		switch out.Kind {
		case KindList:
			items, _ := v.([]string)
			if items == nil {
				items = []string{}
			}
			if out.Len > 0 {
				items = textproc.PadTo(textproc.Limit(items, out.Len), out.Len)
			}
			body[out.Name] = items
		default:
			s, _ := v.(string)
			body[out.Name] = s
		}
	}
	return body
}

func (e Endpoint) rejectStatus() int {
	if e.RejectStatus == 0 {
		return http.StatusOK
	}
	return e.RejectStatus
}

// StatusFor maps a pipeline error to the HTTP status the endpoint responds
// with. A missing provider or data source is an ordinary 500.
func (e Endpoint) StatusFor(err error) int {
	var verr *ValidationError
	var serr *ShapeError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return e.rejectStatus()
	case errors.As(err, &serr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor returns the client-facing error message for err. Upstream error
// text is never included.
func (e Endpoint) MessageFor(err error) string {
	var verr *ValidationError
	var serr *ShapeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.As(err, &serr):
		return "The model returned an unexpected response. Please try again."
	case e.FailureMessage != "":
		return e.FailureMessage
	default:
		return "Something went wrong. Please try again."
	}
}

// textOutput returns a Parse func that trims the completion into one text output.
func textOutput(name string) func(string) (Fields, error) {
	return func(s string) (Fields, error) {
		return Fields{name: strings.TrimSpace(s)}, nil
	}
}

// plainTextOutput is like textOutput but also strips markdown formatting.
func plainTextOutput(name string) func(string) (Fields, error) {
	return func(s string) (Fields, error) {
		return Fields{name: textproc.StripMarkdown(s)}, nil
	}
}

// numberedListOutput splits a numbered list into at most max entries.
func numberedListOutput(name string, max int) func(string) (Fields, error) {
	return func(s string) (Fields, error) {
		return Fields{name: textproc.NumberedList(s, max)}, nil
	}
}

// jsonListOutput parses a JSON array held under name, keeping at most max entries.
func jsonListOutput(name string, max int) func(string) (Fields, error) {
	return func(s string) (Fields, error) {
		items, err := textproc.StringList(s, name)
		if err != nil {
			return nil, err
		}
		return Fields{name: textproc.Limit(items, max)}, nil
	}
}

// headingsOutput normalizes subheadings in a rewritten article and lists them.
func headingsOutput(textName, listName string) func(string) (Fields, error) {
	return func(s string) (Fields, error) {
		rewritten, found := textproc.NormalizeHeadings(strings.TrimSpace(s))
		return Fields{textName: rewritten, listName: found}, nil
	}
}
