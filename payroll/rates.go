/*
rates.go - Wage rate selection from the versioned rate table

PURPOSE:
  Resolves the applicable hourly rate for a (work type, sub-category,
  date) triple from a table of versioned rate rows.

SELECTION RULES:
  1. Among rows matching the work type and the exact sub-category, pick
     the latest EffectiveFrom that is on or before the as-of date.
  2. A wildcard row (sub-category "-" or empty) applies regardless of
     sub-category, but ONLY when no more specific row matches.
  3. Same-date ties resolve last-writer-wins by insertion order. Callers
     must not create such ties in practice; the behavior is defined but
     discouraged.

FAILURE:
  NoApplicableRateError when no row satisfies the date constraint. The
  aggregator refuses to proceed rather than pricing at zero.

SEE ALSO:
  - types.go: WageRate row definition
  - aggregate.go: Resolves a rate per contributing record
*/
package payroll

// RateTable holds wage rate rows in insertion order. The order is part
// of the contract: it breaks same-effective-date ties (last writer wins).
type RateTable struct {
	rates []WageRate
}

// NewRateTable builds a table from rows in the given order.
// Rows arrive unsorted from providers; the table does the selecting.
func NewRateTable(rates ...WageRate) *RateTable {
	t := &RateTable{rates: make([]WageRate, 0, len(rates))}
	t.Add(rates...)
	return t
}

// Add appends rows, preserving insertion order.
func (t *RateTable) Add(rates ...WageRate) {
	t.rates = append(t.rates, rates...)
}

// Rates returns a copy of all rows in insertion order.
func (t *RateTable) Rates() []WageRate {
	out := make([]WageRate, len(t.rates))
	copy(out, t.rates)
	return out
}

// Resolve returns the applicable rate row for a work type, sub-category
// and as-of date.
func (t *RateTable) Resolve(workTypeID WorkTypeID, subCategory SubCategory, asOf WorkDate) (WageRate, error) {
	// Pass 1: exact sub-category match.
	if rate, ok := t.latest(workTypeID, subCategory, asOf, false); ok {
		return rate, nil
	}

	// Pass 2: wildcard rows, only when the query asked for something specific.
	if !subCategory.IsAny() {
		if rate, ok := t.latest(workTypeID, subCategory, asOf, true); ok {
			return rate, nil
		}
	}

	return WageRate{}, &NoApplicableRateError{WorkTypeID: workTypeID, SubCategory: subCategory, AsOf: asOf}
}

// ResolveAmount is the convenience form returning just the hourly amount.
func (t *RateTable) ResolveAmount(workTypeID WorkTypeID, subCategory SubCategory, asOf WorkDate) (Money, error) {
	rate, err := t.Resolve(workTypeID, subCategory, asOf)
	if err != nil {
		return Money{}, err
	}
	return rate.HourlyAmount, nil
}

// latest scans for the row with the latest EffectiveFrom <= asOf.
// Iteration follows insertion order and uses AfterOrEqual so that a
// later-inserted row wins a same-date tie.
func (t *RateTable) latest(workTypeID WorkTypeID, subCategory SubCategory, asOf WorkDate, wildcard bool) (WageRate, bool) {
	var best WageRate
	found := false
	for _, r := range t.rates {
		if r.WorkTypeID != workTypeID {
			continue
		}
		if wildcard {
			if !r.SubCategory.IsAny() {
				continue
			}
		} else if !r.SubCategory.Matches(subCategory) {
			continue
		}
		if r.EffectiveFrom.After(asOf) {
			continue
		}
		if !found || r.EffectiveFrom.AfterOrEqual(best.EffectiveFrom) {
			best = r
			found = true
		}
	}
	return best, found
}
