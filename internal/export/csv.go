package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/cosmosim/internal/panels"
)

// WriteCSV writes one "time,value" row per sample.
func WriteCSV(w io.Writer, c *panels.Chart) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "value"}); err != nil {
		return err
	}

	res := c.Result
	for i := range res.Times {
		row := []string{
			strconv.FormatFloat(res.Times[i], 'f', 6, 64),
			strconv.FormatFloat(res.Values[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
