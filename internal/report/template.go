package report

// htmlTemplate is the HTML report layout, embedded as a Go constant so the
// binary ships with no external file dependencies.
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #2563eb;
    --green: #16a34a;
    --red: #dc2626;
    --section-bg: #f8fafc;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 800px;
    margin: 0 auto;
    padding: 20px;
  }
  h1 { font-size: 1.5rem; color: var(--accent); margin-bottom: 4px; }
  h2 { font-size: 1.1rem; margin: 20px 0 10px; padding-bottom: 6px; border-bottom: 2px solid var(--accent); }
  .muted { color: var(--muted); font-size: 0.85rem; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 12px; }
  td { padding: 6px 8px; border-bottom: 1px solid var(--border); }
  td.value { text-align: right; font-variant-numeric: tabular-nums; }
  tr.total td { font-weight: 700; background: var(--section-bg); }
  .note { background: #fef3c7; border-left: 4px solid #f59e0b; padding: 8px 12px; margin: 6px 0; border-radius: 4px; }
  .sim { color: var(--muted); font-size: 0.8rem; }
  .footer { margin-top: 24px; padding-top: 12px; border-top: 1px solid var(--border); color: var(--muted); font-size: 0.8rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="muted">{{.Subtitle}} - as of {{.AsOf}}</p>

<h2>Buyer Costs</h2>
<table>
{{range .Upfront}}<tr><td>{{.Label}}{{if .Note}} <span class="muted">({{.Note}})</span>{{end}}</td><td class="value">{{.Value}}</td></tr>
{{end}}<tr class="total"><td>Total upfront</td><td class="value">{{.UpfrontTotal}}</td></tr>
</table>

<h2>Monthly Costs</h2>
<table>
{{range .Monthly}}<tr><td>{{.Label}}</td><td class="value">{{.Value}}</td></tr>
{{end}}<tr class="total"><td>Total monthly</td><td class="value">{{.MonthlyTotal}}</td></tr>
</table>

<h2>Investment Analysis</h2>
<table>
{{range .Investment}}<tr><td>{{.Label}}{{if .Note}} <span class="muted">({{.Note}})</span>{{end}}</td><td class="value">{{.Value}}</td></tr>
{{end}}</table>

<h2>Market Comparison</h2>
{{if .Simulated}}<p class="sim">Market data is simulated for demonstration.</p>{{end}}
<table>
{{range .Market}}<tr><td>{{.Label}}</td><td class="value">{{.Value}}</td></tr>
{{end}}</table>

{{if .Transactions}}<h2>Recent Transactions</h2>
<table>
{{range .Transactions}}<tr><td>{{.Date}}{{if .Simulated}} <span class="sim">[SIM]</span>{{end}}</td><td>{{.Size}}</td><td class="value">{{.PSF}}</td><td class="value">{{.Price}}</td></tr>
{{end}}</table>{{end}}

{{if .News}}<h2>Market Headlines</h2>
<ul>
{{range .News}}<li>{{.Title}} <span class="muted">({{.Source}})</span></li>
{{end}}</ul>{{end}}

{{if .Notes}}<h2>Notes</h2>
{{range .Notes}}<div class="note">[{{.Level}}] {{.Message}}</div>
{{end}}{{end}}

<div class="footer">Estimates only - not legal, tax, or financial advice.</div>
</body>
</html>`
