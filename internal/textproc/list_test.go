package textproc

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestNumberedList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  []string
	}{
		{
			name:  "dot markers",
			input: "1. Foo\n2. Bar\n3. Baz",
			max:   7,
			want:  []string{"Foo", "Bar", "Baz"},
		},
		{
			name:  "paren markers",
			input: "1) Foo\n2) Bar",
			max:   7,
			want:  []string{"Foo", "Bar"},
		},
		{
			name:  "space markers",
			input: "1 Foo\n2 Bar",
			max:   7,
			want:  []string{"Foo", "Bar"},
		},
		{
			name:  "mixed markers and indentation",
			input: "  1. Foo  \n2)Bar\n 3 Baz",
			max:   7,
			want:  []string{"Foo", "Bar", "Baz"},
		},
		{
			name:  "blank lines dropped",
			input: "1. Foo\n\n   \n2. Bar\n",
			max:   7,
			want:  []string{"Foo", "Bar"},
		},
		{
			name:  "truncated to cap",
			input: "1. A\n2. B\n3. C\n4. D\n5. E",
			max:   3,
			want:  []string{"A", "B", "C"},
		},
		{
			name:  "unnumbered lines kept",
			input: "Foo\nBar",
			max:   3,
			want:  []string{"Foo", "Bar"},
		},
		{
			name:  "windows line endings",
			input: "1. Foo\r\n2. Bar\r\n",
			max:   3,
			want:  []string{"Foo", "Bar"},
		},
		{
			name:  "two digit markers",
			input: "10. Ten\n11) Eleven",
			max:   0,
			want:  []string{"Ten", "Eleven"},
		},
		{
			name:  "empty input",
			input: "",
			max:   3,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NumberedList(tt.input, tt.max)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberedListNeverNil(t *testing.T) {
	got := NumberedList("\n\n", 3)
	if got == nil {
		t.Fatal("NumberedList returned nil, want empty slice")
	}
}

func TestLimit(t *testing.T) {
	assert.Equal(t, []string{}, Limit(nil, 3))
	assert.Equal(t, []string{"a", "b"}, Limit([]string{"a", "b", "c"}, 2))
	assert.Equal(t, []string{"a"}, Limit([]string{"a"}, 2))
	assert.Equal(t, []string{"a", "b", "c"}, Limit([]string{"a", "b", "c"}, 0))
}

func TestPadTo(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "nil pads to three", input: nil, want: []string{"", "", ""}},
		{name: "one pads to three", input: []string{"a"}, want: []string{"a", "", ""}},
		{name: "exact", input: []string{"a", "b", "c"}, want: []string{"a", "b", "c"}},
		{name: "truncates", input: []string{"a", "b", "c", "d"}, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadTo(tt.input, 3)
			assert.Equal(t, 3, len(got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompact(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Compact([]string{" a ", "", "  ", "b"}))
	assert.Equal(t, []string{}, Compact(nil))
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWords int
		want     string
	}{
		{name: "under limit returns original", input: "hello world", maxWords: 5, want: "hello world"},
		{name: "exactly at limit returns original", input: "one two three", maxWords: 3, want: "one two three"},
		{name: "over limit is truncated", input: "one two three four five six", maxWords: 3, want: "one two three"},
		{name: "empty string returns empty", input: "", maxWords: 5, want: ""},
		{name: "multiple spaces between words", input: "one   two   three   four", maxWords: 2, want: "one two"},
		{name: "tabs and newlines", input: "one\ttwo\nthree\rfour", maxWords: 2, want: "one two"},
		{name: "zero limit disables truncation", input: "one two three", maxWords: 0, want: "one two three"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWords(tt.input, tt.maxWords)
			if got != tt.want {
				t.Errorf("TruncateWords(%q, %d) = %q, want %q", tt.input, tt.maxWords, got, tt.want)
			}
		})
	}
}
