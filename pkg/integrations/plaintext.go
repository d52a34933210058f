package integrations

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips markup from free-text event fields. Some promoters submit
// info and pleaseNote as HTML fragments.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return strings.Join(strings.Fields(b.String()), " ")
			}
			return strings.TrimSpace(s)
		case html.TextToken:
			b.Write(tokenizer.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// keep words on either side of a tag apart
			b.WriteByte(' ')
		}
	}
}
