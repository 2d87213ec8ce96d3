// Package sanitize neutralizes stored-XSS payloads in free-text fields.
//
// The transform keeps a whitelist of benign markup intact, strips event
// handler attributes and script-scheme URLs from whitelisted tags, and
// escapes the angle brackets of everything else in place. Text content is
// never rewritten, which makes the transform idempotent: it can be applied
// on ingest and again on egress without double-escaping.
package sanitize

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// allowedTags maps whitelisted tag names to their permitted attributes.
// Anything absent here has its angle brackets escaped rather than being
// dropped, so the original text remains visible but inert.
var allowedTags = map[string]map[string]bool{
	"a":          {"href": true, "title": true, "target": true},
	"abbr":       {"title": true},
	"b":          {},
	"blockquote": {"cite": true},
	"br":         {},
	"caption":    {},
	"code":       {},
	"dd":         {},
	"div":        {},
	"dl":         {},
	"dt":         {},
	"em":         {},
	"h1":         {},
	"h2":         {},
	"h3":         {},
	"h4":         {},
	"h5":         {},
	"h6":         {},
	"hr":         {},
	"i":          {},
	"img":        {"src": true, "alt": true, "title": true, "width": true, "height": true},
	"li":         {},
	"mark":       {},
	"ol":         {},
	"p":          {},
	"pre":        {},
	"s":          {},
	"small":      {},
	"span":       {},
	"strong":     {},
	"sub":        {},
	"sup":        {},
	"table":      {"width": true, "border": true},
	"tbody":      {},
	"td":         {"rowspan": true, "colspan": true},
	"th":         {"rowspan": true, "colspan": true},
	"thead":      {},
	"tr":         {},
	"u":          {},
	"ul":         {},
}

var bracketEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// HTML returns s with dangerous markup neutralized. Whitelisted tags are
// re-emitted with only their permitted attributes; all other tags, comments
// and doctypes have their angle brackets escaped in place.
func HTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var buf bytes.Buffer

	for {
		tt := z.Next()

		switch tt {
		case html.ErrorToken:
			// The only error for an in-memory reader is EOF, which can land
			// mid-tag. Whatever the tokenizer consumed without emitting is
			// still user content; escape it rather than drop it.
			buf.WriteString(bracketEscaper.Replace(string(z.Raw())))
			return buf.String()
		case html.TextToken:
			// Raw keeps entities exactly as they arrived, which is what
			// makes a second pass a no-op.
			buf.Write(z.Raw())
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			raw := append([]byte(nil), z.Raw()...)
			writeTag(&buf, z.Token(), tt, raw)
		default:
			buf.WriteString(bracketEscaper.Replace(string(z.Raw())))
		}
	}
}

func writeTag(buf *bytes.Buffer, tok html.Token, tt html.TokenType, raw []byte) {
	allowed, ok := allowedTags[tok.Data]
	if !ok {
		buf.WriteString(bracketEscaper.Replace(string(raw)))
		return
	}

	if tt == html.EndTagToken {
		buf.WriteString("</")
		buf.WriteString(tok.Data)
		buf.WriteByte('>')
		return
	}

	buf.WriteByte('<')
	buf.WriteString(tok.Data)

	for _, attr := range tok.Attr {
		name := strings.ToLower(attr.Key)
		if strings.HasPrefix(name, "on") || !allowed[name] {
			continue
		}
		if (name == "href" || name == "src" || name == "cite") && unsafeURL(attr.Val) {
			continue
		}

		buf.WriteByte(' ')
		buf.WriteString(name)
		buf.WriteString(`="`)
		buf.WriteString(html.EscapeString(attr.Val))
		buf.WriteByte('"')
	}

	if tt == html.SelfClosingTagToken {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
}

func unsafeURL(val string) bool {
	v := strings.ToLower(strings.TrimSpace(val))
	if strings.HasPrefix(v, "javascript:") || strings.HasPrefix(v, "vbscript:") {
		return true
	}
	return strings.HasPrefix(v, "data:") && !strings.HasPrefix(v, "data:image/")
}
