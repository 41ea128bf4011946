package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/pyramid/internal/dataset"
)

var totalsHeader = []string{"time", "source", "left", "right", "total", "left_share", "right_share"}

// WriteTotalsCSV writes one row of group totals per frame. Left totals are
// written as positive counts.
func WriteTotalsCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(totalsHeader); err != nil {
		return err
	}
	for i := 0; i < ds.Frames(); i++ {
		left, right := ds.Shares(i)
		row := []string{
			ds.Times[i],
			ds.Sources[i],
			formatFloat(-ds.TotalsLeft[i]),
			formatFloat(ds.TotalsRight[i]),
			formatFloat(ds.Totals[i]),
			strconv.FormatFloat(left, 'f', 2, 64),
			strconv.FormatFloat(right, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
