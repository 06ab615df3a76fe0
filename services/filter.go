package services

import (
	"fmt"

	"github.com/tobgu/qframe"

	"house-prices/models"
	"house-prices/utils"
)

// Predicate is a single column equality constraint.
type Predicate struct {
	Column string
	Value  interface{}
}

func (p Predicate) clause() qframe.FilterClause {
	return qframe.Filter{Column: p.Column, Comparator: "=", Arg: p.Value}
}

// Predicates lists the constraints a query imposes. Condition and year are
// always present; each categorical column is present only when the query
// does not hold the wildcard for it.
func Predicates(q models.Query) []Predicate {
	preds := []Predicate{
		{Column: models.ColOverallCond, Value: q.OverallCond},
		{Column: models.ColYearBuilt, Value: q.YearBuilt},
	}

	optional := []struct {
		column string
		value  string
	}{
		{models.ColUtilities, q.Utilities},
		{models.ColFoundation, q.Foundation},
		{models.ColMSZoning, q.MSZoning},
	}
	for _, o := range optional {
		if o.value != models.Wildcard {
			preds = append(preds, Predicate{Column: o.column, Value: o.value})
		}
	}
	return preds
}

// FilterEngine selects the dataset rows matching a query.
type FilterEngine struct {
	logger *utils.Logger
}

func NewFilterEngine(logger *utils.Logger) *FilterEngine {
	return &FilterEngine{logger: logger}
}

// Apply returns the rows of qf matching every predicate of q.
// No match yields an empty frame, not an error.
func (e *FilterEngine) Apply(qf qframe.QFrame, q models.Query) (qframe.QFrame, error) {
	if qf.Err != nil {
		return qf, qf.Err
	}

	preds := Predicates(q)
	clauses := make([]qframe.FilterClause, 0, len(preds))
	for _, p := range preds {
		clauses = append(clauses, p.clause())
	}

	result := qf.Filter(qframe.And(clauses...))
	if result.Err != nil {
		return result, fmt.Errorf("filter: %w", result.Err)
	}

	e.logger.Debug("[filter] %d predicates matched %d of %d rows", len(preds), result.Len(), qf.Len())
	return result, nil
}
