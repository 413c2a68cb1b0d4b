package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/services"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/xuri/excelize/v2"
)

// Report output formats
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
)

// ReportOptions holds the flags of the report command
type ReportOptions struct {
	Format string
	Output string
	ListOptions
}

// ReportCommand summarises work orders as a table, CSV or XLSX
type ReportCommand struct {
	app  *App
	opts ReportOptions
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App, opts ReportOptions) *ReportCommand {
	if opts.Format == "" {
		opts.Format = FormatTable
	}
	return &ReportCommand{app: app, opts: opts}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context, args []string) error {
	format := strings.ToLower(c.opts.Format)
	switch format {
	case FormatTable, FormatCSV:
	case FormatXLSX:
		if c.opts.Output == "" {
			return errors.NewInvalidInputError("output", "", "xlsx reports need --output FILE")
		}
	default:
		return errors.NewInvalidInputError("format", c.opts.Format, "unsupported format, use table, csv or xlsx")
	}

	b, err := c.app.business()
	if err != nil {
		return err
	}
	report, err := b.BuildReport(ctx, c.opts.filter())
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return c.writeCSV(report)
	case FormatXLSX:
		if err := writeReportXLSX(c.opts.Output, reportHeaders, c.reportRows(report)); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.opts.Output, err)
		}
		c.app.printf("Wrote %d work orders to %s\n", len(report.Rows), c.opts.Output)
		return nil
	default:
		c.renderSummary(report)
		return nil
	}
}

var reportHeaders = []string{
	"ID", "Reference", "Plate", "Created", "Estimated Hours", "ETA", "Completed",
	"Worked Hours", "Paused Hours", "Remaining Hours", "Pauses", "Overdue",
}

// numericReportColumns are written to XLSX as numbers rather than text
var numericReportColumns = map[int]bool{0: true, 4: true, 7: true, 8: true, 9: true, 10: true}

func hoursString(minutes int64) string {
	return strconv.FormatFloat(float64(minutes)/60, 'f', 2, 64)
}

// reportRows flattens the report into export rows
func (c *ReportCommand) reportRows(report *services.Report) [][]string {
	rows := make([][]string, 0, len(report.Rows))
	for _, p := range report.Rows {
		w := p.WorkOrder
		completed := ""
		if w.ActualCompletion != nil {
			completed = w.ActualCompletion.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			strconv.FormatInt(w.ID, 10),
			w.Reference,
			w.Plate,
			w.CreatedAt.Format(time.RFC3339),
			strconv.FormatFloat(w.EstimatedHours, 'f', 2, 64),
			w.EstimatedCompletion.Format(time.RFC3339),
			completed,
			hoursString(p.WorkedMinutes),
			hoursString(p.PausedMinutes),
			hoursString(p.RemainingMinutes),
			strconv.Itoa(p.PauseCount),
			strconv.FormatBool(p.Overdue),
		})
	}
	return rows
}

func (c *ReportCommand) writeCSV(report *services.Report) (err error) {
	var out io.Writer = c.app.out
	if c.opts.Output != "" {
		f, createErr := os.Create(c.opts.Output)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", c.opts.Output, createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close %s: %w", c.opts.Output, closeErr)
			}
		}()
		out = f
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(reportHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range c.reportRows(report) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeReportXLSX writes headers and rows to the first sheet of a new workbook
func writeReportXLSX(path string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			var value interface{} = v
			if numericReportColumns[col] {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					value = n
				}
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func (c *ReportCommand) renderSummary(report *services.Report) {
	c.app.renderProgress(report.Rows)
	if report.Total == 0 {
		return
	}

	t := newTable(c.app.out, table.Row{"Summary", ""})
	t.AppendRows([]table.Row{
		{"Work orders", fmt.Sprintf("%d (%d open, %d completed)", report.Total, report.Open, report.Completed)},
		{"Overdue", report.Overdue},
		{"Estimated", fmt.Sprintf("%.2fh", report.EstimatedHours)},
		{"Worked", fmt.Sprintf("%.2fh", report.WorkedHours)},
		{"Paused", fmt.Sprintf("%.2fh", report.PausedHours)},
	})

	stats := report.PauseStatistics
	if stats.Count > 0 {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"Stopped pauses", fmt.Sprintf("%d, %s in total", stats.Count, domain.FormatMinutes(stats.TotalMinutes))},
			{"Mean pause", fmt.Sprintf("%.0fm", stats.MeanMinutes)},
			{"Median pause", fmt.Sprintf("%.0fm", stats.MedianMinutes)},
			{"90th percentile", fmt.Sprintf("%.0fm", stats.P90Minutes)},
			{"Longest pause", fmt.Sprintf("%.0fm", stats.MaxMinutes)},
		})
	}
	t.Render()
}
