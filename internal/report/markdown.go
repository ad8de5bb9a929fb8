package report

import (
	"fmt"
	"strings"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`, "<", "&lt;", ">", "&gt;", "\n", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// Markdown renders the report as a Markdown document. It is the source for the
// HTML export and the body of report emails.
func Markdown(in Input) string {
	var b strings.Builder

	b.WriteString("# Real Estate Investment Analysis\n\n")
	fmt.Fprintf(&b, "Report generated %s\n\n", in.GeneratedAt.Format("January 02, 2006 at 03:04 PM"))

	b.WriteString("## Property Overview\n\n| Attribute | Value |\n|---|---|\n")
	for _, f := range PropertyFields(in.Record) {
		fmt.Fprintf(&b, "| %s | %s |\n", f.Label, escapeMarkdown(f.Display))
	}

	b.WriteString("\n## Financial Summary\n\n| Item | Amount |\n|---|---|\n")
	for _, f := range FinancialFields(in.Record) {
		fmt.Fprintf(&b, "| %s | %s |\n", f.Label, escapeMarkdown(f.Display))
	}

	b.WriteString("\n## Investment Metrics\n\n| Metric | Value | Industry Benchmark | Assessment |\n|---|---|---|---|\n")
	for _, m := range MetricRows(in.Metrics) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", m.Name, m.Display, escapeMarkdown(m.Benchmark), m.Assessment)
	}

	b.WriteString("\n## Investment Analysis & Recommendations\n\n")
	fmt.Fprintf(&b, "**Overall Score: %d/100**\n\n", in.Analysis.Score)
	for _, s := range Sections(in.Analysis) {
		if len(s.Lines) == 0 && (s.Key == "warnings" || s.Key == "risks") {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", s.Title)
		for _, line := range s.Lines {
			fmt.Fprintf(&b, "- %s\n", escapeMarkdown(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\nThis report is for informational purposes only and does not constitute financial advice.\n")
	return b.String()
}
