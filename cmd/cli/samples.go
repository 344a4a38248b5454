package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jbclements/t-test/adapters/excel"
	"github.com/jbclements/t-test/internal/config"

	"github.com/spf13/cobra"
)

// sampleOptions selects where the two samples come from
type sampleOptions struct {
	a, b       string
	file       string
	sheet      string
	colA, colB string
}

func (o *sampleOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.a, "a", "", "First sample as a comma-separated list")
	cmd.Flags().StringVar(&o.b, "b", "", "Second sample as a comma-separated list")
	cmd.Flags().StringVar(&o.file, "file", "", "Read samples from an .xlsx or .csv file (default EXCEL_FILE)")
	cmd.Flags().StringVar(&o.sheet, "sheet", "", "Worksheet to read (default EXCEL_SHEET)")
	cmd.Flags().StringVar(&o.colA, "col-a", "", "Column holding the first sample")
	cmd.Flags().StringVar(&o.colB, "col-b", "", "Column holding the second sample")
}

// load resolves the two samples, preferring inline lists over a file
func (o *sampleOptions) load(data config.DataConfig) ([]float64, []float64, error) {
	if o.a != "" || o.b != "" {
		s1, err := parseList(o.a)
		if err != nil {
			return nil, nil, fmt.Errorf("--a: %w", err)
		}
		s2, err := parseList(o.b)
		if err != nil {
			return nil, nil, fmt.Errorf("--b: %w", err)
		}
		return s1, s2, nil
	}

	file, sheet := o.file, o.sheet
	if file == "" {
		file = data.ExcelFile
	}
	if sheet == "" {
		sheet = data.ExcelSheet
	}
	if file == "" {
		return nil, nil, fmt.Errorf("provide --a and --b, or --file with --col-a and --col-b")
	}
	if o.colA == "" || o.colB == "" {
		return nil, nil, fmt.Errorf("--col-a and --col-b are required with --file")
	}

	reader := excel.NewDataReader(file, sheet)
	s1, err := reader.Column(o.colA)
	if err != nil {
		return nil, nil, err
	}
	s2, err := reader.Column(o.colB)
	if err != nil {
		return nil, nil, err
	}
	return s1, s2, nil
}

// parseList parses "1, 2.5,3"; an empty string is an empty sample
func parseList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}

	fields := strings.Split(s, ",")
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%q is not a finite number", f)
		}
		values = append(values, v)
	}
	return values, nil
}
