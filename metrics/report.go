package metrics

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Write renders the report to w: the scalar accuracy to two decimal places,
// the per-class table with macro and weighted averages, and the confusion
// matrix of integer counts.
func (r *ClassificationReport) Write(w io.Writer) {
	fmt.Fprintf(w, "Accuracy: %.2f\n\n", r.Accuracy)

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"", "precision", "recall", "f1-score", "support"})
	for i, class := range r.Classes {
		m := r.PerClass[i]
		table.Append([]string{
			class,
			fmt.Sprintf("%.2f", m.Precision),
			fmt.Sprintf("%.2f", m.Recall),
			fmt.Sprintf("%.2f", m.F1),
			strconv.Itoa(m.Support),
		})
	}
	table.Append([]string{
		"macro avg",
		fmt.Sprintf("%.2f", r.MacroAvg.Precision),
		fmt.Sprintf("%.2f", r.MacroAvg.Recall),
		fmt.Sprintf("%.2f", r.MacroAvg.F1),
		strconv.Itoa(r.MacroAvg.Support),
	})
	table.Append([]string{
		"weighted avg",
		fmt.Sprintf("%.2f", r.WeightedAvg.Precision),
		fmt.Sprintf("%.2f", r.WeightedAvg.Recall),
		fmt.Sprintf("%.2f", r.WeightedAvg.F1),
		strconv.Itoa(r.WeightedAvg.Support),
	})
	table.Render()

	fmt.Fprintf(w, "\nConfusion matrix (rows: true, columns: predicted):\n")
	matrix := tablewriter.NewWriter(w)
	matrix.SetAutoFormatHeaders(false)
	matrix.SetHeader(append([]string{""}, r.Classes...))
	for i, class := range r.Classes {
		row := []string{class}
		for j := range r.Classes {
			row = append(row, strconv.Itoa(r.Matrix.Counts[i][j]))
		}
		matrix.Append(row)
	}
	matrix.Render()
}

// String renders the report as with Write.
func (r *ClassificationReport) String() string {
	var sb strings.Builder
	r.Write(&sb)
	return sb.String()
}
