package services

import (
	"context"
	"errors"
	"io"

	"github.com/tobgu/qframe"

	"house-prices/models"
	"house-prices/storage"
	"house-prices/utils"
)

func newTestLogger() *utils.Logger { return utils.New(io.Discard, io.Discard, true) }

func sampleListings() []models.Listing {
	return []models.Listing{
		{OverallCond: 5, Utilities: "AllPub", Foundation: "PConc", YearBuilt: 2006, MSZoning: "RL", SalePrice: 200000},
		{OverallCond: 5, Utilities: "AllPub", Foundation: "CBlock", YearBuilt: 2006, MSZoning: "RM", SalePrice: 150000},
		{OverallCond: 5, Utilities: "NoSeWa", Foundation: "PConc", YearBuilt: 2006, MSZoning: "RL", SalePrice: 100000},
		{OverallCond: 6, Utilities: "AllPub", Foundation: "PConc", YearBuilt: 2006, MSZoning: "RL", SalePrice: 300000},
		{OverallCond: 5, Utilities: "AllPub", Foundation: "PConc", YearBuilt: 2005, MSZoning: "RL", SalePrice: 250000},
		{OverallCond: 5, Utilities: "AllPub", Foundation: "PConc", YearBuilt: 2006, MSZoning: "FV", SalePrice: 175000},
	}
}

func anyQuery(cond, year int) models.Query {
	return models.Query{
		OverallCond: cond,
		Utilities:   models.Wildcard,
		Foundation:  models.Wildcard,
		YearBuilt:   year,
		MSZoning:    models.Wildcard,
	}
}

type memorySource struct {
	listings []models.Listing
	err      error
	loads    int
}

func (m *memorySource) Load(context.Context) (qframe.QFrame, error) {
	m.loads++
	if m.err != nil {
		return qframe.QFrame{}, m.err
	}
	return storage.NewFrame(m.listings), nil
}

var errMissingFile = errors.New("open data/train.csv: no such file or directory")
