// Package prompt turns a webpage and a user query into model input.
package prompt

import (
	"strings"
)

// Page is the webpage the user is asking about.
type Page struct {
	URL     string
	Title   string
	Content string
}

const instructions = "You are Aetheris. Answer the user's query based strictly on the provided page content.\n" +
	"Be concise, accurate, and professional."

const chatPreamble = "You are Aetheris, an assistant that answers questions about the webpage below.\n" +
	"Answer based strictly on the provided page content. If the page does not contain the answer, say so.\n" +
	"Be concise, accurate, and professional."

// Truncate returns the first n characters (Unicode code points) of s.
// An n of zero or less disables the cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Build renders the single-shot prompt for page and query.
// The page content is used as-is; callers truncate it first.
func Build(page Page, query string) string {
	var b strings.Builder
	writePage(&b, page)
	b.WriteString("\n\nUser Query: ")
	b.WriteString(query)
	b.WriteString("\n\nInstructions:\n")
	b.WriteString(instructions)
	b.WriteString("\n")
	return b.String()
}

// BuildContext renders the chat context for page. The query is sent separately
// as the chat message.
func BuildContext(page Page) string {
	var b strings.Builder
	b.WriteString(chatPreamble)
	b.WriteString("\n\n")
	writePage(&b, page)
	b.WriteString("\n")
	return b.String()
}

func writePage(b *strings.Builder, page Page) {
	b.WriteString("Context Information:\n")
	b.WriteString("- Page Title: ")
	b.WriteString(page.Title)
	b.WriteString("\n- URL: ")
	b.WriteString(page.URL)
	b.WriteString("\n\nPage Content:\n")
	b.WriteString(page.Content)
}
