// Package export serializes datasets for download and offline tooling.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/chrissnell/pumpmon/internal/types"
)

// CSVHeader is the column layout of an exported dataset: the reading schema
// followed by the derived status and explanation fields.
var CSVHeader = []string{
	"timestamp", "inlet_pressure", "outlet_pressure", "inlet_temp",
	"outlet_temp", "flow_rate", "power", "efficiency", "status", "explanation",
}

// WriteCSV writes the dataset to w as UTF-8 CSV with a header row, in dataset
// order (most-recent-first).
func WriteCSV(w io.Writer, ds *types.Dataset) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, r := range ds.Readings {
		record := []string{
			r.Timestamp.Format(time.RFC3339),
			formatFloat(r.InletPressure),
			formatFloat(r.OutletPressure),
			formatFloat(r.InletTemp),
			formatFloat(r.OutletTemp),
			formatFloat(r.FlowRate),
			formatFloat(r.Power),
			formatFloat(r.Efficiency),
			string(r.Status),
			r.Explanation,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
