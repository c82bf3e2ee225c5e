package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"taskui/internal/service"
)

// Formats lists the export formats.
var Formats = []string{"text", "csv", "json", "pdf"}

// Export renders the task list in the given format.
func Export(tasks []service.Task, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "text":
		var b bytes.Buffer
		if err := FormatTable(&b, tasks); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case "json":
		if tasks == nil {
			tasks = []service.Task{}
		}
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "csv":
		var b bytes.Buffer
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "title", "description", "status"})
		for _, t := range tasks {
			_ = w.Write([]string{fmt.Sprint(t.ID), t.Title, t.Description, t.Status})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case "pdf":
		return exportPDF(tasks)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// column widths in mm, A4 portrait minus margins
var pdfWidths = []float64{15, 60, 85, 30}

func exportPDF(tasks []service.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	for i, h := range []string{"ID", "Title", "Description", "Status"} {
		pdf.CellFormat(pdfWidths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		for i, cell := range displayRow(t) {
			pdf.CellFormat(pdfWidths[i], 6, tr(truncate(cell, pdfWidths[i])), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// truncate shortens s to roughly fit a cell of width mm at 10pt.
func truncate(s string, width float64) string {
	max := int(width / 2)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
