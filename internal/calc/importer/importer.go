package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	colebrook "Pipeflow/internal/calc/colebrook"

	"github.com/xuri/excelize/v2"
)

// Header is the first row of an exported workbook. Imported workbooks use the
// same leading columns: method, roughness, hydraulic_diameter, reynolds and an
// optional tolerance.
var Header = []interface{}{
	"method", "roughness", "hydraulic_diameter", "reynolds", "tolerance",
	"friction_factor", "iterations", "regime", "error",
}

// Row is one data line of the sheet. Line is 1-based as shown in a spreadsheet.
type Row struct {
	Line   int               `json:"line"`
	Input  colebrook.Input   `json:"input"`
	Result *colebrook.Result `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

type Report struct {
	Count   int   `json:"count"`
	Skipped int   `json:"skipped"`
	Rows    []Row `json:"rows"`
}

// Read solves every data row of the first sheet. Rows that cannot be parsed
// or solved are kept with their error and counted as skipped.
func Read(r io.Reader) (Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Report{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Report{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return Report{}, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	var rep Report
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		row := Row{Line: i + 1}
		input, err := parseRow(rows[i])
		row.Input = input
		if err == nil {
			var res colebrook.Result
			res, err = colebrook.Calculate(input)
			if err == nil {
				row.Result = &res
			}
		}
		if err != nil {
			row.Error = err.Error()
			rep.Skipped++
		} else {
			rep.Count++
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep, nil
}

// Write renders the report as a workbook with Header as its first row.
func Write(w io.Writer, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := Header
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rep.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Input.Method, row.Input.Roughness, row.Input.HydraulicDiameter, row.Input.Reynolds, row.Input.Tolerance,
		}
		if row.Result != nil {
			values = append(values, row.Result.FrictionFactor, row.Result.Iterations, string(row.Result.Regime), "")
		} else {
			values = append(values, nil, nil, nil, row.Error)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func parseRow(row []string) (colebrook.Input, error) {
	if len(row) < 4 {
		return colebrook.Input{}, fmt.Errorf("bad row: want at least 4 columns, got %d", len(row))
	}
	roughness, err := toFloat(row[1])
	if err != nil {
		return colebrook.Input{}, fmt.Errorf("roughness: %w", err)
	}
	dh, err := toFloat(row[2])
	if err != nil {
		return colebrook.Input{}, fmt.Errorf("hydraulic_diameter: %w", err)
	}
	re, err := toFloat(row[3])
	if err != nil {
		return colebrook.Input{}, fmt.Errorf("reynolds: %w", err)
	}
	in := colebrook.Input{
		Method:            strings.TrimSpace(row[0]),
		Roughness:         roughness,
		HydraulicDiameter: dh,
		Reynolds:          re,
	}
	if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
		tol, err := toFloat(row[4])
		if err != nil {
			return in, fmt.Errorf("tolerance: %w", err)
		}
		in.Tolerance = tol
	}
	return in, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
