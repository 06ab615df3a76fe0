package snapshot

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-prices/services"
)

func TestParseQueriesDefault(t *testing.T) {
	qs, err := ParseQueries(nil)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "5", qs[0].Get(services.ParamCondition))
	assert.Equal(t, "2006", qs[0].Get(services.ParamYearBuilt))
	assert.Equal(t, services.AnyLabel, qs[0].Get(services.ParamZoning))
}

func TestParseQueriesFillsDefaults(t *testing.T) {
	qs, err := ParseQueries([]string{"cond=8&year=1950"})
	require.NoError(t, err)
	assert.Equal(t, "8", qs[0].Get(services.ParamCondition))
	assert.Equal(t, services.AnyLabel, qs[0].Get(services.ParamUtilities))
}

func TestParseQueriesRejectsInvalid(t *testing.T) {
	_, err := ParseQueries([]string{"cond=0"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestPageURL(t *testing.T) {
	q := url.Values{}
	q.Set(services.ParamCondition, "5")
	got, err := PageURL("http://localhost:8501/", q)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8501/?cond=5", got)
}

func TestFileNameStableAndDistinct(t *testing.T) {
	a := services.DefaultSelection().Values()
	b := services.DefaultSelection().Values()
	b.Set(services.ParamZoning, "Жилье низкой плотности")

	assert.Equal(t, FileName(a), FileName(a))
	assert.NotEqual(t, FileName(a), FileName(b))
	assert.True(t, strings.HasPrefix(FileName(a), "cond5_year2006_"))
	assert.True(t, strings.HasSuffix(FileName(a), ".png"))
}

func TestDistinctDropsRepeats(t *testing.T) {
	a := services.DefaultSelection().Values()
	b := services.DefaultSelection().Values()
	b.Set(services.ParamCondition, "8")

	qs := []url.Values{a, b, a}
	assert.Equal(t, []url.Values{a, b}, Distinct(qs))
	// Every call starts fresh.
	assert.Equal(t, []url.Values{a, b}, Distinct(qs))
}
