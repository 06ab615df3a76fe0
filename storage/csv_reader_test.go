package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-prices/models"
)

const sampleCSV = `Id,MSSubClass,MSZoning,LotFrontage,Utilities,Foundation,OverallCond,YearBuilt,Alley,SalePrice
1,60,RL,65,AllPub,PConc,5,2003,NA,208500
2,20,RL,80,AllPub,CBlock,8,1976,NA,181500
3,70,C (all),NA,NoSeWa,BrkTil,5,1915,Grvl,40000
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVSourceProjectsColumns(t *testing.T) {
	src := NewCSVSource(writeFile(t, sampleCSV))
	qf, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.FrameColumns, qf.ColumnNames())
	assert.Equal(t, 3, qf.Len())

	rows, err := Listings(qf)
	require.NoError(t, err)
	assert.Equal(t, models.Listing{
		Row: 2, OverallCond: 5, Utilities: "NoSeWa", Foundation: "BrkTil", YearBuilt: 1915, MSZoning: "C (all)", SalePrice: 40000,
	}, rows[2])
}

func TestCSVSourceMissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"))
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCSVSourceMissingColumn(t *testing.T) {
	src := NewCSVSource(writeFile(t, "Id,OverallCond,YearBuilt,SalePrice\n1,5,2003,208500\n"))
	_, err := src.Load(context.Background())
	assert.Error(t, err)
}

func TestCSVSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCSVSource(writeFile(t, sampleCSV)).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFrameListingsRoundTrip(t *testing.T) {
	in := []models.Listing{
		{OverallCond: 5, Utilities: "AllPub", Foundation: "PConc", YearBuilt: 2006, MSZoning: "RL", SalePrice: 200000},
		{Row: 4, OverallCond: 7, Utilities: "ELO", Foundation: "Wood", YearBuilt: 1920, MSZoning: "RM", SalePrice: 99500.5},
	}
	out, err := Listings(NewFrame(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
