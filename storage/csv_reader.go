package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/tobgu/qframe"
	qcsv "github.com/tobgu/qframe/config/csv"

	"house-prices/models"
)

// columnTypes pins the parsed type of the projected columns so that codes
// such as "NA" never turn a column into something else.
var columnTypes = map[string]string{
	models.ColOverallCond: "int",
	models.ColUtilities:   "string",
	models.ColFoundation:  "string",
	models.ColYearBuilt:   "int",
	models.ColMSZoning:    "string",
	models.ColSalePrice:   "float",
}

// CSVSource reads the house sales dataset from a CSV file.
// The file is re-read on every Load.
type CSVSource struct {
	Path string
}

// NewCSVSource returns a source for the CSV file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Load reads the file, projects it to models.Columns and numbers the rows by
// their position in the file.
func (c *CSVSource) Load(ctx context.Context) (qframe.QFrame, error) {
	if err := ctx.Err(); err != nil {
		return qframe.QFrame{}, err
	}

	f, err := os.Open(c.Path)
	if err != nil {
		return qframe.QFrame{}, fmt.Errorf("csv: open %q: %w", c.Path, err)
	}
	defer f.Close()

	qf := qframe.ReadCSV(f, qcsv.Types(columnTypes))
	if qf.Err != nil {
		return qframe.QFrame{}, fmt.Errorf("csv: parse %q: %w", c.Path, qf.Err)
	}

	for _, col := range models.Columns {
		if !qf.Contains(col) {
			return qframe.QFrame{}, fmt.Errorf("csv: %q: missing column %s", c.Path, col)
		}
	}

	qf = qf.Select(models.Columns...)
	if qf.Err != nil {
		return qframe.QFrame{}, fmt.Errorf("csv: select columns: %w", qf.Err)
	}

	listings, err := Listings(qf)
	if err != nil {
		return qframe.QFrame{}, fmt.Errorf("csv: %q: %w", c.Path, err)
	}
	return NewFrame(listings), nil
}
