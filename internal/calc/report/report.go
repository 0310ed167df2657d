package report

import (
	"fmt"
	"io"
	"time"

	colebrook "Pipeflow/internal/calc/colebrook"

	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string          `json:"project"`
	Author  string          `json:"author"`
	Title   string          `json:"title"`
	Notes   string          `json:"notes"`
	Case    colebrook.Input `json:"case"`
}

// Render writes a one-page calculation sheet for a solved case.
func Render(w io.Writer, in Input, res colebrook.Result, date time.Time) error {
	if in.Title == "" {
		in.Title = "Friction Factor Calculation"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(in.Title, true)
	pdf.SetAuthor(in.Author, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", in.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", in.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Input")
	table(pdf, [][2]string{
		{"Roughness", fmt.Sprintf("%g", in.Case.Roughness)},
		{"Hydraulic diameter", fmt.Sprintf("%g", in.Case.HydraulicDiameter)},
		{"Reynolds number", fmt.Sprintf("%g", in.Case.Reynolds)},
		{"Tolerance", fmt.Sprintf("%g", tolerance(in.Case))},
	})

	section(pdf, "Result")
	table(pdf, [][2]string{
		{"Darcy friction factor", fmt.Sprintf("%.6f", res.FrictionFactor)},
		{"Method", string(res.Method)},
		{"Iterations", fmt.Sprintf("%d", res.Iterations)},
		{"Function evaluations", fmt.Sprintf("%d", res.Evaluations)},
		{"Final bracket width", fmt.Sprintf("%.3g", res.BracketWidth)},
		{"Flow regime", string(res.Regime)},
	})

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, res.Notes, "", "L", false)
	if in.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, in.Notes, "", "L", false)
	}
	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, name string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, name)
	pdf.Ln(8)
}

func table(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		pdf.CellFormat(70, 7, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, r[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func tolerance(in colebrook.Input) float64 {
	if in.Tolerance > 0 {
		return in.Tolerance
	}
	return colebrook.DefaultTolerance
}
