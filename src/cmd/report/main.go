package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"html"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"bingo-checker/src/pkg/bingo"
	"bingo-checker/src/pkg/config"
	"bingo-checker/src/pkg/email"
)

/*
cardRun is one parsed card.json produced by the analysis pipeline, together
with the time the run happened.
*/
type cardRun struct {
	Card    bingo.Card
	RunTime time.Time
	Path    string
}

/*
reportOptions controls which runs are included and where output is written.
*/
type reportOptions struct {
	OutDir      string
	Year        int
	Month       time.Month
	OutputPath  string
	ReportTitle string

	EmailReport    bool
	EmailProvider  string
	SenderAddress  string
	RecipientAddrs []string
}

/*
monthlyReport aggregates every card analyzed in the selected month.
*/
type monthlyReport struct {
	Title             string
	Year              int
	Month             time.Month
	CardCount         int
	LowDetectionCount int
	AverageConfidence float64
	AverageNumbers    float64
	TotalOdds         int
	TotalEvens        int
	ColumnHits        [5]int // resolved numbers per B/I/N/G/O column
}

/*
main scans the output directory for card.json runs, builds the monthly
summary, writes it as an HTML file, and optionally emails it.
*/
func main() {
	options := parseFlags()

	tl.Log(
		tl.Notice, palette.BlueBold, "%s card report for %s %v from '%s'",
		"Building", options.Month, options.Year, options.OutDir,
	)

	report, e := buildMonthlyReport(options)
	e.QuitIf(xerr.ErrorTypeError)

	htmlText := renderHTML(report)

	mkdirErr := os.MkdirAll(filepath.Dir(options.OutputPath), 0o755)
	xerr.QuitIfError(mkdirErr, "create report output directory")

	writeErr := os.WriteFile(options.OutputPath, []byte(htmlText), 0o644)
	xerr.QuitIfError(writeErr, "write HTML report file")

	tl.Log(tl.Info1, palette.Green, "Saved report to '%s'", options.OutputPath)

	if options.EmailReport {
		textBody := fmt.Sprintf(
			"Bingo card report for %s %d: %d cards analyzed, %d low-detection, average confidence %.2f.",
			report.Month, report.Year, report.CardCount, report.LowDetectionCount, report.AverageConfidence,
		)
		e = email.SendMessage(
			email.Provider(options.EmailProvider), &options.EmailReport,
			options.SenderAddress, options.RecipientAddrs,
			report.Title, textBody, htmlText,
		)
		e.QuitIf(xerr.ErrorTypeError)
	}
}

/*
parseFlags parses CLI flags and returns validated reportOptions.

Defaults:
- current month/year
- output path: ./tmp/card-report-YYYY-MM.html
*/
func parseFlags() reportOptions {
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	outDirFlag := flag.String("out", "", "Directory to scan recursively for card.json files (default: configured out_dir)")
	yearFlag := flag.Int("year", 0, "Year to report (default: current year)")
	monthFlag := flag.Int("month", 0, "Month to report 1-12 (default: current month)")
	outputFlag := flag.String("o", "", "Output HTML path (default: ./tmp/card-report-YYYY-MM.html)")
	titleFlag := flag.String("title", "", "Report title (default: Bingo card report for Month Year)")
	emailFlag := flag.Bool("email", false, "Send the report by email using the configured provider")

	flag.Parse()
	config.InitializeConfig(*configPath)

	now := time.Now()

	yearValue := *yearFlag
	if yearValue == 0 {
		yearValue = now.Year()
	}

	monthValue := *monthFlag
	if monthValue == 0 {
		monthValue = int(now.Month())
	}
	if monthValue < 1 {
		monthValue = 1
	}
	if monthValue > 12 {
		monthValue = 12
	}

	outDir := *outDirFlag
	if outDir == "" {
		outDir = config.Cfg.OutDir
	}

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = fmt.Sprintf("./tmp/card-report-%04d-%02d.html", yearValue, monthValue)
	}

	reportTitle := *titleFlag
	if reportTitle == "" {
		monthName := time.Month(monthValue).String()
		reportTitle = fmt.Sprintf("Bingo card report for %s %d", monthName, yearValue)
	}

	return reportOptions{
		OutDir:      outDir,
		Year:        yearValue,
		Month:       time.Month(monthValue),
		OutputPath:  outputPath,
		ReportTitle: reportTitle,

		EmailReport:    *emailFlag,
		EmailProvider:  config.Cfg.Email.Provider,
		SenderAddress:  config.Cfg.Email.Sender,
		RecipientAddrs: config.Cfg.Email.Recipients,
	}
}

/*
buildMonthlyReport scans card.json files, filters by the selected month/year,
and aggregates counts and confidences.

The run time comes from the timestamp-named run directory when it parses,
with the file's modification time as fallback.
*/
func buildMonthlyReport(options reportOptions) (report monthlyReport, e *xerr.Error) {
	periodStart := time.Date(options.Year, options.Month, 1, 0, 0, 0, 0, time.Local)
	periodEnd := periodStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	runs, e := collectCardRuns(options.OutDir)
	if e != nil {
		return report, e
	}

	tl.Log(tl.Info1, palette.Cyan, "Found '%v' card runs under '%s'", len(runs), options.OutDir)

	report.Title = options.ReportTitle
	report.Year = options.Year
	report.Month = options.Month

	confidenceSum := 0.0
	numbersSum := 0

	for _, run := range runs {
		if run.RunTime.Before(periodStart) || run.RunTime.After(periodEnd) {
			continue
		}

		report.CardCount += 1
		confidenceSum += run.Card.Confidence
		numbersSum += run.Card.TotalNumbers
		report.TotalOdds += run.Card.OddsCount
		report.TotalEvens += run.Card.EvensCount
		if run.Card.LowDetection {
			report.LowDetectionCount += 1
		}
		for _, number := range run.Card.Numbers {
			if number.Col >= 0 && number.Col < len(report.ColumnHits) {
				report.ColumnHits[number.Col] += 1
			}
		}
	}

	if report.CardCount > 0 {
		report.AverageConfidence = confidenceSum / float64(report.CardCount)
		report.AverageNumbers = float64(numbersSum) / float64(report.CardCount)
	}

	return report, nil
}

/*
collectCardRuns walks the output directory recursively and loads every
card.json it finds. Unreadable files are skipped with a warning, not fatal.
*/
func collectCardRuns(outDir string) (runs []cardRun, e *xerr.Error) {
	walkErr := filepath.WalkDir(outDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || entry.Name() != "card.json" {
			return nil
		}

		fileBytes, readErr := os.ReadFile(path)
		if readErr != nil {
			tl.Log(tl.Warning, palette.PurpleBold, "Skipping unreadable card file '%s': %s", path, readErr)
			return nil
		}

		card := bingo.Card{}
		if parseErr := json.Unmarshal(fileBytes, &card); parseErr != nil {
			tl.Log(tl.Warning, palette.PurpleBold, "Skipping unparsable card file '%s': %s", path, parseErr)
			return nil
		}

		runs = append(runs, cardRun{
			Card:    card,
			RunTime: determineRunTime(path),
			Path:    path,
		})
		return nil
	})

	if walkErr != nil {
		e = xerr.NewError(walkErr, "scan output directory for card runs", outDir)
		return runs, e
	}

	return runs, nil
}

/*
determineRunTime parses the timestamp-named run directory that holds the
card.json; when the name does not parse, the file modification time wins.
*/
func determineRunTime(cardPath string) time.Time {
	runDirName := filepath.Base(filepath.Dir(cardPath))
	if runTime, parseErr := time.ParseInLocation("2006-01-02_15-04-05", runDirName, time.Local); parseErr == nil {
		return runTime
	}

	info, statErr := os.Stat(cardPath)
	if statErr != nil {
		return time.Time{}
	}
	return info.ModTime()
}

/*
renderHTML converts a monthlyReport into a single HTML string using inline CSS only.
*/
func renderHTML(report monthlyReport) string {
	var buffer bytes.Buffer

	buffer.WriteString("<!doctype html>")
	buffer.WriteString("<html>")
	buffer.WriteString("<head>")
	buffer.WriteString(`<meta charset="utf-8">`)
	buffer.WriteString("<title>")
	buffer.WriteString(html.EscapeString(report.Title))
	buffer.WriteString("</title>")
	buffer.WriteString("</head>")
	buffer.WriteString(`<body style="font-family:sans-serif;max-width:720px;margin:24px auto;color:#111827;">`)

	buffer.WriteString(`<h1 style="font-size:22px;">`)
	buffer.WriteString(html.EscapeString(report.Title))
	buffer.WriteString("</h1>")

	buffer.WriteString(`<table style="border-collapse:collapse;width:100%;">`)
	writeStatRow(&buffer, "Cards analyzed", fmt.Sprintf("%d", report.CardCount))
	writeStatRow(&buffer, "Low-detection cards", fmt.Sprintf("%d", report.LowDetectionCount))
	writeStatRow(&buffer, "Average confidence", fmt.Sprintf("%.2f", report.AverageConfidence))
	writeStatRow(&buffer, "Average numbers per card", fmt.Sprintf("%.1f", math.Round(report.AverageNumbers*10)/10))
	writeStatRow(&buffer, "Odd numbers", fmt.Sprintf("%d", report.TotalOdds))
	writeStatRow(&buffer, "Even numbers", fmt.Sprintf("%d", report.TotalEvens))
	buffer.WriteString("</table>")

	buffer.WriteString(`<h2 style="font-size:16px;margin-top:24px;">Resolved numbers per column</h2>`)
	buffer.WriteString(`<table style="border-collapse:collapse;">`)
	for col := 0; col < len(report.ColumnHits); col += 1 {
		writeStatRow(&buffer, bingo.ColumnLetter(col), fmt.Sprintf("%d", report.ColumnHits[col]))
	}
	buffer.WriteString("</table>")

	buffer.WriteString("</body></html>")

	return buffer.String()
}

func writeStatRow(buffer *bytes.Buffer, label string, value string) {
	buffer.WriteString(`<tr><td style="padding:4px 12px 4px 0;color:#6B7280;">`)
	buffer.WriteString(html.EscapeString(label))
	buffer.WriteString(`</td><td style="padding:4px 0;font-weight:bold;">`)
	buffer.WriteString(html.EscapeString(value))
	buffer.WriteString("</td></tr>")
}
