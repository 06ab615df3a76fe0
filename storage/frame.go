package storage

import (
	"fmt"

	"github.com/tobgu/qframe"
	"github.com/tobgu/qframe/config/newqf"

	"house-prices/models"
)

// NewFrame builds a frame laid out as models.FrameColumns from in-memory
// listings.
func NewFrame(listings []models.Listing) qframe.QFrame {
	n := len(listings)
	rowIdx := make([]int, n)
	cond := make([]int, n)
	utilities := make([]string, n)
	foundation := make([]string, n)
	year := make([]int, n)
	zoning := make([]string, n)
	price := make([]float64, n)

	for i, l := range listings {
		rowIdx[i] = l.Row
		cond[i] = l.OverallCond
		utilities[i] = l.Utilities
		foundation[i] = l.Foundation
		year[i] = l.YearBuilt
		zoning[i] = l.MSZoning
		price[i] = l.SalePrice
	}

	return qframe.New(map[string]interface{}{
		models.ColRow:         rowIdx,
		models.ColOverallCond: cond,
		models.ColUtilities:   utilities,
		models.ColFoundation:  foundation,
		models.ColYearBuilt:   year,
		models.ColMSZoning:    zoning,
		models.ColSalePrice:   price,
	}, newqf.ColumnOrder(models.FrameColumns...))
}

// Listings materializes every row of a frame holding models.Columns. Without
// a models.ColRow column rows are numbered by position.
func Listings(qf qframe.QFrame) ([]models.Listing, error) {
	if qf.Err != nil {
		return nil, qf.Err
	}

	row := func(i int) int { return i }
	if qf.Contains(models.ColRow) {
		rv, err := qf.IntView(models.ColRow)
		if err != nil {
			return nil, fmt.Errorf("frame: %s: %w", models.ColRow, err)
		}
		row = rv.ItemAt
	}

	cond, err := qf.IntView(models.ColOverallCond)
	if err != nil {
		return nil, fmt.Errorf("frame: %s: %w", models.ColOverallCond, err)
	}
	year, err := qf.IntView(models.ColYearBuilt)
	if err != nil {
		return nil, fmt.Errorf("frame: %s: %w", models.ColYearBuilt, err)
	}
	price, err := qf.FloatView(models.ColSalePrice)
	if err != nil {
		return nil, fmt.Errorf("frame: %s: %w", models.ColSalePrice, err)
	}
	utilities, err := qf.StringView(models.ColUtilities)
	if err != nil {
		return nil, fmt.Errorf("frame: %s: %w", models.ColUtilities, err)
	}
	foundation, err := qf.StringView(models.ColFoundation)
	if err != nil {
		return nil, fmt.Errorf("frame: %s: %w", models.ColFoundation, err)
	}
	zoning, err := qf.StringView(models.ColMSZoning)
	if err != nil {
		return nil, fmt.Errorf("frame: %s: %w", models.ColMSZoning, err)
	}

	out := make([]models.Listing, qf.Len())
	for i := range out {
		out[i] = models.Listing{
			Row:         row(i),
			OverallCond: cond.ItemAt(i),
			Utilities:   deref(utilities.ItemAt(i)),
			Foundation:  deref(foundation.ItemAt(i)),
			YearBuilt:   year.ItemAt(i),
			MSZoning:    deref(zoning.ItemAt(i)),
			SalePrice:   price.ItemAt(i),
		}
	}
	return out, nil
}

// deref maps a missing string cell to "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
