package services

import (
	"math"

	"house-prices/models"
	"house-prices/utils"
)

// HistogramBins is the number of bars in the sale price histogram.
const HistogramBins = 20

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate builds the report for the filtered rows. An empty input yields a
// zero mean and no histogram.
func (s *InsightService) Generate(rows []models.Listing) *models.Report {
	report := &models.Report{Rows: rows, Count: len(rows)}
	if len(rows) == 0 {
		s.logger.Debug("[insights] empty result, skipping price stats")
		return report
	}

	prices := make([]float64, len(rows))
	for i, r := range rows {
		prices[i] = r.SalePrice
	}

	report.MeanPrice = MeanPrice(prices)
	report.Histogram = Histogram(prices, HistogramBins)
	return report
}

// MeanPrice is the arithmetic mean of prices, or 0 when there are none.
func MeanPrice(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	var total float64
	for _, p := range prices {
		total += p
	}
	return total / float64(len(prices))
}

// Histogram splits [min, max] of prices into n equal-width bins.
// When every price is the same all of them land in the first bin.
func Histogram(prices []float64, n int) []models.HistogramBin {
	if len(prices) == 0 || n <= 0 {
		return nil
	}

	lo, hi := prices[0], prices[0]
	for _, p := range prices[1:] {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}

	width := (hi - lo) / float64(n)
	bins := make([]models.HistogramBin, n)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}
	bins[n-1].High = hi

	for _, p := range prices {
		idx := 0
		if width > 0 {
			idx = int((p - lo) / width)
			if idx >= n {
				idx = n - 1
			}
		}
		bins[idx].Count++
	}
	return bins
}
