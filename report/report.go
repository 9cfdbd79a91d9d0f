// Package report renders the outcome of a merge as a standalone HTML page.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/gtlang"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Report is everything shown on the page.
type Report struct {
	Title       string
	Lang        string // target language, sets lang and dir on <html>
	Summary     gtlang.Summary
	Outcomes    []gtlang.Outcome
	Suggestions map[string]string  // key → machine suggestion, optional
	Diff        *gtlang.DiffResult // against the previous target, optional
}

const skeleton = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title></title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
td, th { border: 1px solid #ccc; padding: 2px 6px; text-align: left; }
tr.failed { background: #fdd; }
tr.fallback { background: #ffd; }
tr.conflict { background: #def; }
td.key { font-family: monospace; }
td.suggestion { color: #666; font-style: italic; }
.mc-0 { color: #000; } .mc-1 { color: #00a; } .mc-2 { color: #0a0; } .mc-3 { color: #0aa; }
.mc-4 { color: #a00; } .mc-5 { color: #a0a; } .mc-6 { color: #fa0; } .mc-7 { color: #aaa; }
.mc-8 { color: #555; } .mc-9 { color: #55f; } .mc-a { color: #5f5; } .mc-b { color: #5ff; }
.mc-c { color: #f55; } .mc-d { color: #f5f; } .mc-e { color: #cc0; } .mc-f { color: #bbb; }
.mc-l { font-weight: bold; } .mc-m { text-decoration: line-through; }
.mc-n { text-decoration: underline; } .mc-o { font-style: italic; }
</style>
</head>
<body>
<h1></h1>
<table id="summary"><tbody></tbody></table>
<table id="diff"><tbody></tbody></table>
<table id="entries">
<thead><tr><th>Key</th><th>Source</th><th>Output</th><th>Status</th><th>Suggestion</th></tr></thead>
<tbody></tbody>
</table>
</body>
</html>`

// WriteHTML renders r to w.
func WriteHTML(w io.Writer, r Report) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(skeleton))
	if err != nil {
		return fmt.Errorf("parsing report skeleton: %w", err)
	}

	title := r.Title
	if title == "" {
		title = gtlang.Name + " report"
	}
	doc.Find("title").SetText(title)
	doc.Find("h1").SetText(title)

	if r.Lang != "" {
		root := doc.Find("html")
		root.SetAttr("lang", gtlang.ToHTMLLang(r.Lang))
		root.SetAttr("dir", gtlang.GetDirection(r.Lang))
	}

	summary := doc.Find("#summary tbody")
	for _, row := range summaryRows(r.Summary) {
		summary.AppendNodes(tr("", th(row[0]), td("", row[1])))
	}

	if r.Diff != nil {
		stats := r.Diff.Stats()
		diff := doc.Find("#diff tbody")
		for _, row := range [][2]string{
			{"Added", strconv.Itoa(stats.Added)},
			{"Removed", strconv.Itoa(stats.Removed)},
			{"Modified", strconv.Itoa(stats.Modified)},
			{"Unchanged", strconv.Itoa(stats.Unchanged)},
		} {
			diff.AppendNodes(tr("", th(row[0]), td("", row[1])))
		}
	} else {
		doc.Find("#diff").Remove()
	}

	entries := doc.Find("#entries tbody")
	for _, o := range r.Outcomes {
		status := o.Status.String()
		entries.AppendNodes(tr(status,
			td("key", o.Key),
			formatted(o.Source),
			formatted(o.Text),
			td("status", status),
			td("suggestion", r.Suggestions[o.Key]),
		))
	}

	return html.Render(w, doc.Nodes[0])
}

// WriteHTMLFile renders r to path, creating parent directories.
func WriteHTMLFile(path string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return err
	}
	if err := WriteHTML(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func summaryRows(s gtlang.Summary) [][2]string {
	return [][2]string{
		{"Entries", strconv.Itoa(s.Total)},
		{"Generated", strconv.Itoa(s.Replaced)},
		{"Generated over fallback", strconv.Itoa(s.Conflict)},
		{"Fallback", strconv.Itoa(s.Fallback)},
		{"Unresolved", strconv.Itoa(s.Failed)},
		{"Pruned from fallback", strconv.Itoa(s.Pruned)},
		{"Dictionary pairs", strconv.Itoa(s.Generated)},
	}
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func tr(class string, cells ...*html.Node) *html.Node {
	row := element(atom.Tr, class)
	for _, c := range cells {
		row.AppendChild(c)
	}
	return row
}

func th(s string) *html.Node {
	n := element(atom.Th, "")
	n.AppendChild(text(s))
	return n
}

func td(class, s string) *html.Node {
	n := element(atom.Td, class)
	if s != "" {
		n.AppendChild(text(s))
	}
	return n
}

// formatted renders Minecraft § formatting codes as styled spans. A color
// code or §r ends the spans opened before it; unknown codes are shown as is.
func formatted(s string) *html.Node {
	cell := element(atom.Td, "text")
	if !strings.ContainsRune(s, '§') {
		if s != "" {
			cell.AppendChild(text(s))
		}
		return cell
	}

	parent := cell
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			parent.AppendChild(text(buf.String()))
			buf.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '§' || i+1 >= len(runes) {
			buf.WriteRune(runes[i])
			continue
		}
		code := lower(runes[i+1])
		switch {
		case isColor(code) || code == 'r':
			flush()
			parent = cell
			if code != 'r' {
				span := element(atom.Span, "mc-"+string(code))
				parent.AppendChild(span)
				parent = span
			}
		case code >= 'k' && code <= 'o':
			flush()
			span := element(atom.Span, "mc-"+string(code))
			parent.AppendChild(span)
			parent = span
		default:
			buf.WriteRune(runes[i])
			continue
		}
		i++
	}
	flush()
	return cell
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func isColor(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}
