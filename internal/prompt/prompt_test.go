package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "shorter than cap", in: "hello", n: 10, want: "hello"},
		{name: "exactly cap", in: "hello", n: 5, want: "hello"},
		{name: "longer than cap", in: "hello world", n: 5, want: "hello"},
		{name: "empty input", in: "", n: 5, want: ""},
		{name: "zero disables cut", in: "hello", n: 0, want: "hello"},
		{name: "negative disables cut", in: "hello", n: -1, want: "hello"},
		{name: "counts code points not bytes", in: "héllo wörld", n: 7, want: "héllo w"},
		{name: "multi-byte runes", in: "日本語のテキスト", n: 3, want: "日本語"},
		{name: "emoji", in: "🙂🙃🙂🙃", n: 2, want: "🙂🙃"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.n))
		})
	}
}

func TestTruncate_PrefixProperty(t *testing.T) {
	content := strings.Repeat("abcdefghij", 5000)
	for _, n := range []int{1, 10, 9999, 10000, 30000} {
		got := Truncate(content, n)
		require.Len(t, []rune(got), n)
		assert.True(t, strings.HasPrefix(content, got), "cap %d: result must be a prefix", n)
	}
}

func TestBuild(t *testing.T) {
	page := Page{Title: "T", URL: "U", Content: "C"}

	want := "Context Information:\n" +
		"- Page Title: T\n" +
		"- URL: U\n" +
		"\n" +
		"Page Content:\n" +
		"C\n" +
		"\n" +
		"User Query: Q\n" +
		"\n" +
		"Instructions:\n" +
		"You are Aetheris. Answer the user's query based strictly on the provided page content.\n" +
		"Be concise, accurate, and professional.\n"

	got := Build(page, "Q")
	assert.Equal(t, want, got)
	assert.Equal(t, got, Build(page, "Q"), "Build() must be deterministic")
}

func TestBuild_KeepsFormatVerbs(t *testing.T) {
	page := Page{Title: "100% %s", URL: "https://example.com/?q=%d", Content: "%v %%"}
	got := Build(page, "what is %s?")

	assert.Contains(t, got, "- Page Title: 100% %s\n")
	assert.Contains(t, got, "- URL: https://example.com/?q=%d\n")
	assert.Contains(t, got, "Page Content:\n%v %%\n")
	assert.Contains(t, got, "User Query: what is %s?\n")
}

func TestBuildContext(t *testing.T) {
	page := Page{Title: "T", URL: "U", Content: "C"}
	got := BuildContext(page)

	assert.True(t, strings.HasPrefix(got, "You are Aetheris"))
	assert.Contains(t, got, "- Page Title: T\n- URL: U\n\nPage Content:\nC\n")
	assert.NotContains(t, got, "User Query:")
	assert.Equal(t, got, BuildContext(page))
}
