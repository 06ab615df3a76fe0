package services

import (
	"context"
	"fmt"

	"github.com/tobgu/qframe"

	"house-prices/models"
	"house-prices/storage"
	"house-prices/utils"
)

// Dashboard runs one full interaction: load the dataset, filter it and build
// the report. Nothing is kept between calls.
type Dashboard struct {
	source   storage.ListingSource
	engine   *FilterEngine
	insights *InsightService
}

func NewDashboard(source storage.ListingSource, logger *utils.Logger) *Dashboard {
	return &Dashboard{
		source:   source,
		engine:   NewFilterEngine(logger),
		insights: NewInsightService(logger),
	}
}

// Filter loads a fresh copy of the dataset and returns the rows matching q.
func (d *Dashboard) Filter(ctx context.Context, q models.Query) (qframe.QFrame, error) {
	qf, err := d.source.Load(ctx)
	if err != nil {
		return qframe.QFrame{}, fmt.Errorf("load dataset: %w", err)
	}
	return d.engine.Apply(qf, q)
}

// Run filters the dataset with q and summarises the result.
func (d *Dashboard) Run(ctx context.Context, q models.Query) (*models.Report, error) {
	result, err := d.Filter(ctx, q)
	if err != nil {
		return nil, err
	}
	rows, err := storage.Listings(result)
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}
	return d.insights.Generate(rows), nil
}
