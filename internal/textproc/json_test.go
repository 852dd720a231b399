package textproc

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON object",
			input: `{"headlines": ["a"]}`,
			want:  `{"headlines": ["a"]}`,
		},
		{
			name:  "JSON wrapped in json code fence",
			input: "```json\n{\"quotes\": [\"a\"]}\n```",
			want:  `{"quotes": ["a"]}`,
		},
		{
			name:  "JSON wrapped in plain code fence",
			input: "```\n[\"a\", \"b\"]\n```",
			want:  `["a", "b"]`,
		},
		{
			name:  "JSON with surrounding whitespace",
			input: "  \n  [\"a\"]  \n  ",
			want:  `["a"]`,
		},
		{
			name:  "prose around object",
			input: "Sure! Here are your headlines:\n{\"headlines\": [\"a\"]}\nLet me know.",
			want:  `{"headlines": ["a"]}`,
		},
		{
			name:  "bracketed prose before object",
			input: "Here are [3] headlines:\n{\"headlines\": [\"a\", \"b\", \"c\"]}",
			want:  `{"headlines": ["a", "b", "c"]}`,
		},
		{
			name:  "braces in trailing prose",
			input: "[\"a\", \"b\"]\nNote: replace {name} before publishing.",
			want:  `["a", "b"]`,
		},
		{
			name:  "no JSON at all",
			input: "I cannot help with that.",
			want:  "I cannot help with that.",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.input)
			if got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		key     string
		want    []string
		wantErr bool
	}{
		{
			name:  "object with key",
			input: `{"headlines": ["Fed Slashes Rates", "Rate Cut Arrives", "Fed Moves"]}`,
			key:   "headlines",
			want:  []string{"Fed Slashes Rates", "Rate Cut Arrives", "Fed Moves"},
		},
		{
			name:  "bare array",
			input: `["one", "two"]`,
			key:   "quotes",
			want:  []string{"one", "two"},
		},
		{
			name:  "fenced object",
			input: "```json\n{\"quotes\": [\"a\", \" \", \"b\"]}\n```",
			key:   "quotes",
			want:  []string{"a", "b"},
		},
		{
			name:  "bracketed prose before object",
			input: "Here are [3] headlines:\n{\"headlines\": [\"One\", \"Two\", \"Three\"]}",
			key:   "headlines",
			want:  []string{"One", "Two", "Three"},
		},
		{
			name:  "object missing key coerces to empty",
			input: `{"other": ["x"]}`,
			key:   "quotes",
			want:  []string{},
		},
		{
			name:  "non-array value coerces to empty",
			input: `{"quotes": "just one"}`,
			key:   "quotes",
			want:  []string{},
		},
		{
			name:    "plain text is an error",
			input:   "Here are three quotes: a, b, c",
			key:     "quotes",
			want:    []string{},
			wantErr: true,
		},
		{
			name:    "truncated JSON is an error",
			input:   `{"headlines": ["a", "b"`,
			key:     "headlines",
			want:    []string{},
			wantErr: true,
		},
		{
			name:    "empty output is an error",
			input:   "   ",
			key:     "headlines",
			want:    []string{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StringList(tt.input, tt.key)
			if tt.wantErr {
				assert.NotEqual(t, nil, err)
			} else {
				assert.Equal(t, nil, err)
			}
			if got == nil {
				t.Fatal("StringList returned nil slice")
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
