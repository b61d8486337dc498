package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/tensorrand/internal/tensor"
)

// render prints the first limit elements in logical order and summarizes all of them.
func (a *app) render(t *tensor.RawTensor, limit int) error {
	values := t.ToFloat64Slice()

	var data [][]string
	for i, v := range values {
		if i >= limit {
			break
		}
		data = append(data, []string{strconv.Itoa(i), formatValue(v)})
	}

	mean, std := stat.MeanStdDev(values, nil)
	if len(values) < 2 {
		std = 0
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"INDEX", "VALUE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.AppendBulk(data)
	table.Render()

	summary := tablewriter.NewWriter(a.out)
	summary.SetHeader([]string{"SHAPE", "DTYPE", "MIN", "MAX", "MEAN", "STDDEV", "OFFSET"})
	summary.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	summary.SetAlignment(tablewriter.ALIGN_LEFT)
	summary.SetBorder(false)
	summary.Append([]string{
		t.Shape().String(),
		t.DType().String(),
		formatValue(floats.Min(values)),
		formatValue(floats.Max(values)),
		formatValue(mean),
		formatValue(std),
		strconv.FormatUint(a.gen.Offset(), 10),
	})
	summary.Render()
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
