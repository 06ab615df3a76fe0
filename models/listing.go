package models

// Wildcard is the query value meaning "no constraint on this column".
const Wildcard = "*"

// Dataset column names, in the order the dashboard shows them.
const (
	ColOverallCond = "OverallCond"
	ColUtilities   = "Utilities"
	ColFoundation  = "Foundation"
	ColYearBuilt   = "YearBuilt"
	ColMSZoning    = "MSZoning"
	ColSalePrice   = "SalePrice"

	// ColRow holds a row's position in the source dataset.
	ColRow = "Row"
)

// Columns lists the six columns the loader projects the dataset to.
var Columns = []string{
	ColOverallCond, ColUtilities, ColFoundation, ColYearBuilt, ColMSZoning, ColSalePrice,
}

// FrameColumns is the layout of every frame a source returns: the source row
// position followed by Columns.
var FrameColumns = append([]string{ColRow}, Columns...)

// Listing is one house sale from the dataset. Row is its position in the
// source and survives filtering.
type Listing struct {
	Row         int
	OverallCond int
	Utilities   string
	Foundation  string
	YearBuilt   int
	MSZoning    string
	SalePrice   float64
}

// Query is the single-row filter built from the sidebar controls.
// Utilities, Foundation and MSZoning hold either a dataset code or Wildcard.
type Query struct {
	OverallCond int
	Utilities   string
	Foundation  string
	YearBuilt   int
	MSZoning    string
}

// HistogramBin is one bar of the sale price histogram, covering [Low, High).
// The last bin of a histogram also includes High.
type HistogramBin struct {
	Low   float64
	High  float64
	Count int
}

// Report holds everything the page renders below the input echo.
type Report struct {
	Rows      []Listing
	Count     int
	MeanPrice float64
	Histogram []HistogramBin
}

// Empty reports whether the filter matched nothing.
func (r *Report) Empty() bool {
	return r.Count == 0
}
