package report

import (
	"strconv"
	"time"

	"github.com/beevik/etree"
)

func renderXML(in Input) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("report")
	root.CreateAttr("generated_at", in.GeneratedAt.Format(time.RFC3339))

	property := root.CreateElement("property")
	for _, f := range append(PropertyFields(in.Record), FinancialFields(in.Record)...) {
		property.CreateElement(f.Key).SetText(f.Raw)
	}

	metrics := root.CreateElement("metrics")
	for _, m := range MetricRows(in.Metrics) {
		el := metrics.CreateElement(m.Key)
		el.CreateAttr("benchmark", m.Benchmark)
		el.CreateAttr("assessment", m.Assessment)
		el.SetText(Raw(m.Value))
	}

	analysis := root.CreateElement("analysis")
	analysis.CreateAttr("score", strconv.Itoa(in.Analysis.Score))
	for _, s := range Sections(in.Analysis) {
		section := analysis.CreateElement(s.Key)
		for _, line := range s.Lines {
			section.CreateElement("item").SetText(line)
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
