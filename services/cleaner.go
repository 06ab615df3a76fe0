package services

import (
	"strings"

	"house-prices/models"
	"house-prices/utils"
)

// Cleaner validates listings before they are imported into a database.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean trims categorical codes and drops rows with an impossible condition,
// year or price.
func (c *Cleaner) Clean(raw []models.Listing) []models.Listing {
	result := make([]models.Listing, 0, len(raw))

	for i, r := range raw {
		if r.OverallCond < ConditionSlider.Min || r.OverallCond > ConditionSlider.Max {
			c.logger.Warn("[cleaner] Row %d: OverallCond %d out of range, dropped", i, r.OverallCond)
			continue
		}
		if r.YearBuilt <= 0 {
			c.logger.Warn("[cleaner] Row %d: YearBuilt %d invalid, dropped", i, r.YearBuilt)
			continue
		}
		if r.SalePrice < 0 {
			c.logger.Warn("[cleaner] Row %d: negative SalePrice, dropped", i)
			continue
		}

		r.Utilities = normaliseCode(r.Utilities)
		r.Foundation = normaliseCode(r.Foundation)
		r.MSZoning = normaliseCode(r.MSZoning)
		result = append(result, r)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

func normaliseCode(s string) string {
	return strings.TrimSpace(s)
}
