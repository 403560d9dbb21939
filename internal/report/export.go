package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportFormat is a document format for Export
type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
)

// ExportFormatFromPath picks the export format from the file extension
func ExportFormatFromPath(path string) (ExportFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ExportXLSX, nil
	case ".pdf":
		return ExportPDF, nil
	default:
		return "", fmt.Errorf("unsupported export file: %s (use .xlsx or .pdf)", path)
	}
}

// Export renders the report as a document
func (r *Report) Export(format ExportFormat) ([]byte, error) {
	if r.Summary == nil {
		return nil, errNoSummary
	}
	switch format {
	case ExportXLSX:
		return r.BuildXLSX()
	case ExportPDF:
		return r.BuildPDF()
	default:
		return nil, fmt.Errorf("unknown export format: %s", format)
	}
}

const (
	appliancesSheet = "Appliances"
	summarySheet    = "Summary"
)

// BuildXLSX renders a workbook with an appliance sheet (largest and smallest
// consumers filled in their chart colours), a summary sheet and a column chart.
func (r *Report) BuildXLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", appliancesSheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("adding sheet: %w", err)
	}

	headers := []string{"Name", "Power (W)", "Quantity", "Hours/day", "Energy (kWh/day)"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(appliancesSheet, cell, h); err != nil {
			return nil, err
		}
	}

	styles := map[Role]int{}
	for _, role := range []Role{RoleMax, RoleMin} {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{roleColor(role)}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("creating style: %w", err)
		}
		styles[role] = style
	}

	for i, e := range r.Entries {
		row := i + 2
		values := []interface{}{e.Name(), e.PowerWatts(), e.Quantity(), e.DailyHours(), e.EnergyKWh()}
		for col, v := range values {
			if err := f.SetCellValue(appliancesSheet, fmt.Sprintf("%c%d", 'A'+col, row), v); err != nil {
				return nil, err
			}
		}
		if style, ok := styles[r.role(e)]; ok {
			if err := f.SetCellStyle(appliancesSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), style); err != nil {
				return nil, err
			}
		}
	}

	s := r.Summary
	summary := [][2]interface{}{
		{"Home Load Analysis", nil},
		{"Generated", time.Now().Format(time.RFC3339)},
		{"Number of Appliances", s.Count},
		{"Total Energy (kWh/day)", s.TotalEnergyKWh},
		{"Average Energy (kWh/day)", s.AverageEnergyKWh},
		{"Most Energy-Consuming", s.Max.Name()},
		{"Most Energy (kWh/day)", s.Max.EnergyKWh()},
		{"Least Energy-Consuming", s.Min.Name()},
		{"Least Energy (kWh/day)", s.Min.EnergyKWh()},
	}
	for i, kv := range summary {
		row := i + 1
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), kv[0]); err != nil {
			return nil, err
		}
		if kv[1] == nil {
			continue
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), kv[1]); err != nil {
			return nil, err
		}
	}

	if len(r.Entries) > 0 {
		last := len(r.Entries) + 1
		err := f.AddChart(appliancesSheet, "G2", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$E$1", appliancesSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", appliancesSheet, last),
				Values:     fmt.Sprintf("%s!$E$2:$E$%d", appliancesSheet, last),
			}},
			Legend: excelize.ChartLegend{Position: "none"},
		})
		if err != nil {
			return nil, fmt.Errorf("adding chart: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPDF renders the summary, a bar chart and the appliance table
func (r *Report) BuildPDF() ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	s := r.Summary
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Home Load Analysis")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")),
		fmt.Sprintf("Total Energy Consumed: %s kWh/day", r.kwh(s.TotalEnergyKWh)),
		fmt.Sprintf("Average Energy per Appliance: %s kWh/day", r.kwh(s.AverageEnergyKWh)),
		fmt.Sprintf("Most Energy-Consuming: %s (%s kWh/day)", s.Max.Name(), r.kwh(s.Max.EnergyKWh())),
		fmt.Sprintf("Least Energy-Consuming: %s (%s kWh/day)", s.Min.Name(), r.kwh(s.Min.EnergyKWh())),
		fmt.Sprintf("Number of Appliances: %d", s.Count),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	r.drawChart(pdf, tr)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{60, 28, 24, 24, 40}
	for i, h := range []string{"Name", "Power (W)", "Quantity", "Hours", "Energy (kWh)"} {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, e := range r.Entries {
		fill := false
		if role := r.role(e); role != RoleOther {
			pdf.SetFillColor(rgb(roleColor(role)))
			fill = true
		}
		pdf.CellFormat(widths[0], 6, tr(truncate(e.Name(), 30)), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 6, formatNumber(e.PowerWatts(), 1), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[2], 6, formatNumber(e.Quantity(), 1), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 6, formatNumber(e.DailyHours(), 2), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[4], 6, r.kwh(e.EnergyKWh()), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawChart draws a bar per appliance scaled to the largest consumer
func (r *Report) drawChart(pdf *gofpdf.Fpdf, tr func(string) string) {
	bars := r.Chart()
	if len(bars) == 0 {
		return
	}

	const (
		chartW = 180.0
		chartH = 60.0
		gap    = 1.0
	)
	x0, y0 := pdf.GetX(), pdf.GetY()+4
	peak := r.Summary.Max.EnergyKWh()
	barW := chartW / float64(len(bars))

	pdf.SetFont("Arial", "", 6)
	for i, b := range bars {
		h := b.EnergyKWh / peak * chartH
		x := x0 + float64(i)*barW
		pdf.SetFillColor(rgb(b.Color))
		pdf.Rect(x+gap, y0+chartH-h, barW-2*gap, h, "F")

		value := formatNumber(b.EnergyKWh, r.Decimals)
		pdf.Text(x+(barW-pdf.GetStringWidth(value))/2, y0+chartH-h-1, value)

		label := tr(b.Label)
		for pdf.GetStringWidth(label) > barW && len(label) > 1 {
			label = label[:len(label)-1]
		}
		pdf.Text(x+(barW-pdf.GetStringWidth(label))/2, y0+chartH+4, label)
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(x0, y0+chartH, x0+chartW, y0+chartH)

	pdf.SetXY(x0, y0+chartH+8)
}
