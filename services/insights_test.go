package services

import (
	"math"
	"testing"

	"house-prices/models"
)

func TestInsightMeanPrice(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	rows := sampleListings()[:3]
	r := svc.Generate(rows)

	want := (200000.0 + 150000.0 + 100000.0) / 3
	if math.Abs(r.MeanPrice-want) > 1e-9 {
		t.Errorf("MeanPrice: got %.2f, want %.2f", r.MeanPrice, want)
	}
	if r.Count != 3 {
		t.Errorf("Count: got %d, want 3", r.Count)
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(nil)
	if !r.Empty() {
		t.Error("expected empty report")
	}
	if r.MeanPrice != 0.0 {
		t.Errorf("MeanPrice: got %v, want exactly 0", r.MeanPrice)
	}
	if r.Histogram != nil {
		t.Errorf("expected no histogram, got %d bins", len(r.Histogram))
	}
}

func TestHistogramCounts(t *testing.T) {
	prices := []float64{100, 100, 150, 199, 200}
	bins := Histogram(prices, 20)

	if len(bins) != 20 {
		t.Fatalf("bins: got %d, want 20", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(prices) {
		t.Errorf("total count: got %d, want %d", total, len(prices))
	}
	if bins[0].Count != 2 {
		t.Errorf("first bin: got %d, want 2", bins[0].Count)
	}
	if bins[19].Count != 2 {
		t.Errorf("last bin includes max: got %d, want 2", bins[19].Count)
	}
	if bins[0].Low != 100 || bins[19].High != 200 {
		t.Errorf("edges: got [%v, %v], want [100, 200]", bins[0].Low, bins[19].High)
	}
}

func TestHistogramSinglePrice(t *testing.T) {
	bins := Histogram([]float64{120000, 120000}, 20)
	if bins[0].Count != 2 {
		t.Errorf("first bin: got %d, want 2", bins[0].Count)
	}
}

func TestHistogramEmpty(t *testing.T) {
	if bins := Histogram(nil, 20); bins != nil {
		t.Errorf("expected nil, got %v", bins)
	}
}

func TestMeanPriceMatchesRows(t *testing.T) {
	rows := []models.Listing{{SalePrice: 10}, {SalePrice: 20}, {SalePrice: 60}}
	r := NewInsightService(newTestLogger()).Generate(rows)
	if r.MeanPrice != 30 {
		t.Errorf("MeanPrice: got %v, want 30", r.MeanPrice)
	}
}
