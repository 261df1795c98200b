package eml2pdf

import (
	"encoding/base64"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"sort"
	"strings"
)

// defaultFontFamily is the standard font stack for generated content.
const defaultFontFamily = "'Helvetica Neue', Helvetica, Arial, sans-serif"

// headerDateLayout formats the Date header in the generated header block.
const headerDateLayout = "Mon, 02 Jan 2006 15:04"

// documentBuilder assembles the self-contained HTML document for rendering.
type documentBuilder interface {
	BuildDocument(msg *Message) (*builtDocument, error)
}

// builtDocument is the markup builder output: the document plus the set of
// content-ids that were successfully inlined.
type builtDocument struct {
	HTML    string
	Inlined map[string]bool
}

// Compile-time interface check
var _ documentBuilder = (*htmlDocumentBuilder)(nil)

// htmlDocumentBuilder composes the fixed-structure document: print
// stylesheet, escaped header block, rewritten body and attachment list.
type htmlDocumentBuilder struct {
	tmpl *template.Template
}

// newHTMLDocumentBuilder parses the embedded document template.
// Panics if the template cannot be parsed (programmer error).
func newHTMLDocumentBuilder() *htmlDocumentBuilder {
	tmpl, err := template.New("document").Parse(documentTemplate)
	if err != nil {
		panic("failed to parse document template: " + err.Error())
	}
	return &htmlDocumentBuilder{tmpl: tmpl}
}

// documentData feeds the document template. All string fields except Body
// are auto-escaped by html/template.
type documentData struct {
	Style       template.CSS
	From        string
	To          string
	Subject     string
	Date        string
	Body        template.HTML
	Attachments []string
}

// documentTemplate is the fixed document structure. The body is inserted
// as-is (already rewritten); every header field is escaped.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>{{.Style}}</style>
</head>
<body>
<div class="email-header">
<table>
<tr><th>From</th><td>{{.From}}</td></tr>
<tr><th>To</th><td>{{.To}}</td></tr>
<tr><th>Subject</th><td>{{.Subject}}</td></tr>
<tr><th>Date</th><td>{{.Date}}</td></tr>
</table>
</div>
<div class="email-body">
{{.Body}}
</div>
{{if .Attachments}}<div class="email-attachments">
<p>Attachments:</p>
<ul>
{{range .Attachments}}<li>{{.}}</li>
{{end}}</ul>
</div>{{end}}
</body>
</html>
`

// printStylesheet is the minimal print-oriented stylesheet: fixed page
// size and margins, an image height clamp so oversized inline images do
// not overflow a page, and header block styling.
const printStylesheet = `
@page { size: A4; margin: 12mm; }
body { font-family: ` + defaultFontFamily + `; font-size: 12px; margin: 0; }
img { max-width: 100%; max-height: 250mm; }
.email-header { border-bottom: 1px solid #ccc; padding-bottom: 8px; margin-bottom: 12px; }
.email-header table { border-collapse: collapse; }
.email-header th { text-align: left; vertical-align: top; padding-right: 12px; color: #555; font-weight: 600; }
.email-attachments { border-top: 1px solid #ccc; margin-top: 12px; padding-top: 8px; color: #555; }
`

// cidReferencePattern matches src="cid:X" image references, quoted or
// unquoted, case-insensitively. The content-id is the first non-empty group.
var cidReferencePattern = regexp.MustCompile(`(?i)src\s*=\s*(?:"cid:([^"]+)"|'cid:([^']+)'|cid:([^\s>"']+))`)

// styleBlockPattern matches whole <style> blocks so incompatible
// page-section rules can be dropped.
var styleBlockPattern = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)

// wordSectionClassPattern matches the wrapper class markers that accompany
// Word page-section styles.
var wordSectionClassPattern = regexp.MustCompile(`(?i)\s*class=["']?WordSection\d*["']?`)

// BuildDocument produces the self-contained HTML document for a message.
// Inline images are substituted as base64 data URLs; unmatched cid
// references are left untouched and degrade to broken images.
func (b *htmlDocumentBuilder) BuildDocument(msg *Message) (*builtDocument, error) {
	dataURLs := inlineImageDataURLs(msg.Attachments)

	body, inlined := rewriteCIDReferences(messageBody(msg), dataURLs)
	body = stripSectionMarkup(body)

	data := documentData{
		Style:       template.CSS(printStylesheet),
		From:        joinAddresses(msg.From),
		To:          joinAddresses(msg.To),
		Subject:     msg.Subject,
		Body:        template.HTML(body), // #nosec G203 -- body is the message's own markup, rewritten above
		Attachments: listedAttachments(msg.Attachments, inlined),
	}
	if !msg.Date.IsZero() {
		data.Date = msg.Date.Format(headerDateLayout)
	}

	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentBuild, err)
	}

	return &builtDocument{HTML: sb.String(), Inlined: inlined}, nil
}

// messageBody returns the HTML body, falling back to the plain-text body
// wrapped in an escaped <pre> block.
func messageBody(msg *Message) string {
	if msg.HTMLBody != "" {
		return msg.HTMLBody
	}
	return `<pre class="plain-body" style="white-space: pre-wrap;">` +
		html.EscapeString(msg.TextBody) + `</pre>`
}

// inlineImageDataURLs computes base64 data URLs for every attachment with
// a content-id and an image media type, keyed by normalized content-id.
func inlineImageDataURLs(attachments []Attachment) map[string]string {
	urls := make(map[string]string)
	for _, att := range attachments {
		if !att.IsInlineImage() {
			continue
		}
		urls[att.ContentID] = "data:" + att.ContentType + ";base64," +
			base64.StdEncoding.EncodeToString(att.Data)
	}
	return urls
}

// rewriteCIDReferences replaces src="cid:X" references with the matching
// data URL. Unmatched references are kept verbatim.
func rewriteCIDReferences(body string, dataURLs map[string]string) (string, map[string]bool) {
	inlined := make(map[string]bool)
	if len(dataURLs) == 0 {
		return body, inlined
	}

	rewritten := cidReferencePattern.ReplaceAllStringFunc(body, func(ref string) string {
		groups := cidReferencePattern.FindStringSubmatch(ref)
		cid := ""
		for _, g := range groups[1:] {
			if g != "" {
				cid = g
				break
			}
		}
		url, ok := dataURLs[NormalizeContentID(cid)]
		if !ok {
			return ref
		}
		inlined[NormalizeContentID(cid)] = true
		return `src="` + url + `"`
	})

	return rewritten, inlined
}

// stripSectionMarkup removes Word page-section style blocks and their
// wrapper class markers. This is a pragmatic compatibility fix for print
// rendering, not a general HTML sanitizer.
func stripSectionMarkup(body string) string {
	body = styleBlockPattern.ReplaceAllStringFunc(body, func(block string) string {
		if strings.Contains(strings.ToLower(block), "wordsection") {
			return ""
		}
		return block
	})
	return wordSectionClassPattern.ReplaceAllString(body, "")
}

// listedAttachments returns the display names for the trailing attachment
// list: every attachment except the images that were inlined into the body.
func listedAttachments(attachments []Attachment, inlined map[string]bool) []string {
	var names []string
	for _, att := range attachments {
		if att.ContentID != "" && inlined[att.ContentID] {
			continue
		}
		name := att.Filename
		if name == "" {
			name = att.ContentType
		}
		names = append(names, name)
	}
	return names
}

// joinAddresses formats an address list for the header block.
func joinAddresses(addrs []Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}

// sortedKeys returns the map's keys in sorted order.
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
