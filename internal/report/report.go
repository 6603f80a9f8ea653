// Package report renders a deal analysis for the terminal or as a
// self-contained HTML page.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/reddotai/sg-property-analyser/internal/datasource"
	"github.com/reddotai/sg-property-analyser/internal/engine"
	"github.com/reddotai/sg-property-analyser/pkg/models"
	"github.com/reddotai/sg-property-analyser/pkg/utils"
)

// Format specifies the output format.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// Options controls report rendering.
type Options struct {
	Format        Format
	ShowBreakdown bool // include the per-tier BSD breakdown
	ShowGlossary  bool
}

// Line is one label/value row of the report.
type Line struct {
	Label string
	Value string
	Note  string
}

// Data is the flattened rendering model built from an analysis result.
type Data struct {
	Title    string
	Subtitle string
	AsOf     string

	Upfront      []Line
	UpfrontTotal string
	Breakdown    []Line
	Monthly      []Line
	MonthlyTotal string
	Investment   []Line
	Market       []Line
	Simulated    bool
	Source       string

	Transactions []TransactionRow
	History      []HistoryRow
	News         []NewsRow
	Notes        []NoteRow
}

// TransactionRow is one comparable transaction for display.
type TransactionRow struct {
	Date      string
	PSF       string
	Price     string
	Size      string
	Simulated bool
}

// HistoryRow is one month of the price-history chart.
type HistoryRow struct {
	Month string
	Price string
	Bar   string
}

// NewsRow is one headline for display.
type NewsRow struct {
	Title  string
	Source string
}

// NoteRow is one advisory note for display.
type NoteRow struct {
	Level   string
	Message string
}

// Build flattens an analysis result (and optional market extras) into the
// rendering model.
func Build(result *models.AnalysisResult, extras *datasource.MarketData) Data {
	l := result.Listing
	d := Data{
		Title: l.Address,
		Subtitle: fmt.Sprintf("Asking %s | %.0f sqft | %s psf",
			utils.FormatSGD(l.Price), l.SizeSqft, utils.FormatSGD(l.PSF())),
		AsOf: result.AsOf.Format("2 Jan 2006"),
	}
	if d.Title == "" {
		d.Title = "Property Analysis"
	}

	up := result.Upfront
	d.Upfront = []Line{
		{Label: "BSD (Buyer's Stamp Duty)", Value: utils.FormatSGD(up.BSD)},
		{Label: "ABSD", Value: utils.FormatSGD(up.ABSD), Note: up.ABSDDescription},
		{Label: "Legal fees", Value: utils.FormatSGD(up.LegalFees)},
		{Label: "Agent commission", Value: utils.FormatSGD(up.AgentCommission)},
		{Label: "Down payment", Value: utils.FormatSGD(up.DownPayment), Note: up.LTVDescription},
	}
	if up.HDBGrants > 0 {
		d.Upfront = append(d.Upfront, Line{Label: "HDB grants", Value: "-" + utils.FormatSGD(up.HDBGrants)})
	}
	d.UpfrontTotal = utils.FormatSGD(up.NetTotal)
	for _, t := range up.BSDBreakdown {
		d.Breakdown = append(d.Breakdown, Line{Label: t.Description, Value: utils.FormatSGD(t.Amount)})
	}

	mo := result.Monthly
	d.Monthly = []Line{
		{Label: "Mortgage", Value: utils.FormatSGD(mo.Mortgage)},
		{Label: "Maintenance", Value: utils.FormatSGD(mo.Maintenance)},
		{Label: "Property tax", Value: utils.FormatSGD(mo.PropertyTax)},
	}
	d.MonthlyTotal = utils.FormatSGD(mo.Total)

	inv := result.Investment
	tdsr := fmt.Sprintf("%.1f%%", inv.TDSRPct)
	if math.IsInf(inv.TDSRPct, 1) {
		tdsr = "infeasible"
	}
	qualify := "NO"
	if inv.Qualifies {
		qualify = "YES"
	}
	cashflowState := "POSITIVE"
	if inv.Cashflow < 0 {
		cashflowState = "NEGATIVE"
	}
	d.Investment = []Line{
		{Label: "Est. rental income", Value: utils.FormatSGD(inv.EstimatedRent) + "/month"},
		{Label: "Rental yield", Value: fmt.Sprintf("%.1f%%", inv.YieldPct), Note: "benchmark " + engine.YieldBenchmark(l.PropertyType)},
		{Label: "Cashflow", Value: utils.FormatSGD(inv.Cashflow) + "/month", Note: cashflowState},
		{Label: "TDSR", Value: tdsr, Note: "qualifies: " + qualify},
	}

	mkt := result.Market
	d.Simulated = mkt.Simulated
	d.Market = []Line{
		{Label: "Deal rating", Value: strings.ToUpper(string(mkt.Rating))},
		{Label: "Subject PSF", Value: utils.FormatSGD(mkt.SubjectPSF)},
		{Label: "Market average", Value: utils.FormatSGD(mkt.BenchmarkPSF)},
		{Label: "vs market", Value: utils.FormatPct(mkt.DeltaPct)},
		{Label: "Market range", Value: fmt.Sprintf("%s - %s psf (median %s)",
			utils.FormatSGD(mkt.MinPSF), utils.FormatSGD(mkt.MaxPSF), utils.FormatSGD(mkt.MedianPSF))},
		{Label: "Trend", Value: strings.ToUpper(mkt.Trend)},
	}

	for i, t := range mkt.Transactions {
		if i >= 5 {
			break
		}
		d.Transactions = append(d.Transactions, TransactionRow{
			Date:      utils.ToSGT(t.Date).Format("2006-01-02"),
			PSF:       utils.FormatSGD(t.PSF()) + "/sqft",
			Price:     utils.FormatSGD(t.Price),
			Size:      fmt.Sprintf("%.0f sqft", t.SizeSqft),
			Simulated: t.Simulated,
		})
	}

	if extras != nil {
		d.Source = extras.Source
		d.History = buildHistory(extras.History)
		for _, item := range extras.News {
			d.News = append(d.News, NewsRow{Title: item.Title, Source: item.Source})
		}
	}

	for _, note := range result.Notes {
		d.Notes = append(d.Notes, NoteRow{
			Level:   strings.ToUpper(string(note.Level)),
			Message: note.Message,
		})
	}
	return d
}

// buildHistory scales the price series into text bars.
func buildHistory(history []models.PricePoint) []HistoryRow {
	if len(history) == 0 {
		return nil
	}

	minP, maxP := history[0].Price, history[0].Price
	for _, h := range history {
		minP = math.Min(minP, h.Price)
		maxP = math.Max(maxP, h.Price)
	}
	rangeP := maxP - minP

	rows := make([]HistoryRow, 0, len(history))
	for _, h := range history {
		barLen := 15
		if rangeP > 0 {
			barLen = int((h.Price - minP) / rangeP * 30)
		}
		rows = append(rows, HistoryRow{
			Month: h.Month,
			Price: utils.FormatSGD(h.Price),
			Bar:   strings.Repeat("█", barLen),
		})
	}
	return rows
}

// Render produces the report in the requested format.
func Render(result *models.AnalysisResult, extras *datasource.MarketData, opts Options) (string, error) {
	data := Build(result, extras)
	switch opts.Format {
	case FormatHTML:
		return renderHTML(data)
	case FormatText, "":
		return renderText(data, opts), nil
	default:
		return "", fmt.Errorf("unknown report format %q", opts.Format)
	}
}

func renderHTML(data Data) (string, error) {
	tpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("parse report template: %w", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}
