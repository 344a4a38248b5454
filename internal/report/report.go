// Package report renders computed test runs as Markdown and HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/jbclements/t-test/domain/stats"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RunMarkdown renders a single run.
func RunMarkdown(run *stats.TestRun) string {
	var b strings.Builder

	title := run.Kind.Title()
	if label := singleLine(run.Label); label != "" {
		title = fmt.Sprintf("%s: %s", title, label)
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Run `%s`, computed %s.\n\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Samples\n\n")
	b.WriteString("| sample | n | mean | variance |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	writeSampleRow(&b, "first", run.Sample1)
	writeSampleRow(&b, "second", run.Sample2)
	b.WriteString("\n")

	b.WriteString("## Result\n\n")
	fmt.Fprintf(&b, "- t-statistic: %s\n", num(run.Statistic))
	fmt.Fprintf(&b, "- degrees of freedom: %s\n", num(run.DegreesOfFreedom))
	fmt.Fprintf(&b, "- two-tailed p-value: %s\n", num(run.PValue))
	fmt.Fprintf(&b, "- verdict: %s\n", verdict(run))

	return b.String()
}

// BatchMarkdown renders several runs as one summary table. failed counts the
// requests of the batch that produced no run.
func BatchMarkdown(title string, runs []*stats.TestRun, failed int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	if failed > 0 {
		fmt.Fprintf(&b, "%d of %d requests failed.\n\n", failed, failed+len(runs))
	}
	if len(runs) == 0 {
		b.WriteString("No runs.\n")
		return b.String()
	}

	b.WriteString("| run | label | test | t | df | p | significant |\n")
	b.WriteString("|---|---|---|---:|---:|---:|---|\n")
	for _, run := range runs {
		sig := "no"
		if run.Significant {
			sig = "yes"
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s | %s | %s |\n",
			run.ID, escapeCell(singleLine(run.Label)), run.Kind, num(run.Statistic), num(run.DegreesOfFreedom), num(run.PValue), sig)
	}
	return b.String()
}

// HTML converts Markdown to a standalone HTML page. Raw HTML in the source is
// dropped and links are limited to safe protocols, since labels are user input.
func HTML(title, md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage | html.SkipHTML | html.Safelink,
		Title: title,
	})
	return markdown.ToHTML([]byte(md), p, renderer)
}

// RunHTML renders a single run as an HTML page.
func RunHTML(run *stats.TestRun) []byte {
	return HTML(run.Kind.Title(), RunMarkdown(run))
}

// BatchHTML renders a batch summary as an HTML page.
func BatchHTML(title string, runs []*stats.TestRun, failed int) []byte {
	return HTML(title, BatchMarkdown(title, runs, failed))
}

func writeSampleRow(b *strings.Builder, name string, s stats.SampleStats) {
	fmt.Fprintf(b, "| %s | %d | %s | %s |\n", name, s.Count, num(s.Mean), num(s.Variance))
}

func verdict(run *stats.TestRun) string {
	if run.Significant {
		return fmt.Sprintf("means differ at alpha = %s", num(run.Alpha))
	}
	return fmt.Sprintf("no significant difference at alpha = %s", num(run.Alpha))
}

func num(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

// singleLine collapses whitespace so a label cannot start new Markdown blocks.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
