package report

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const pageStyle = `body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 20px; background: #f0f8ff; color: #333; }
.container { max-width: 1000px; margin: 0 auto; background: #fff; padding: 40px; border-radius: 15px; box-shadow: 0 10px 30px rgba(0,0,0,0.1); }
h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 20px; }
h2 { color: #34495e; border-left: 5px solid #3498db; padding-left: 15px; margin-top: 40px; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th { background: #3498db; color: #fff; text-align: left; padding: 10px; }
td { border: 1px solid #ecf0f1; padding: 10px; }
tr:nth-child(even) td { background: #f8f9fa; }`

var markdownHTML = goldmark.New(goldmark.WithExtensions(extension.Table))

func renderHTML(in Input) ([]byte, error) {
	var body bytes.Buffer
	if err := markdownHTML.Convert([]byte(Markdown(in)), &body); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Investment Analysis: %s</title>
<style>
%s
</style>
</head>
<body>
<div class="container">
`, html.EscapeString(in.Record.Address), pageStyle)
	page.Write(body.Bytes())
	page.WriteString("</div>\n</body>\n</html>\n")
	return page.Bytes(), nil
}
