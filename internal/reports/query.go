package reports

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateInputLayout is the textual format for caller-supplied date parameters
const DateInputLayout = "2006-01-02"

// Anchored builds a whole-string, case-insensitive pattern for the one
// canonical value of a field. All other acceptable values use plain
// equality; the asymmetry is part of the query contract.
func Anchored(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

// DateRange builds a closed range predicate over [from, to]
func DateRange(from, to time.Time) bson.M {
	return bson.M{"$gte": from, "$lte": to}
}

// OrDateRange builds a disjunction of the same closed range over several
// fields, for reports that match either of two date columns
func OrDateRange(fields []string, from, to time.Time) bson.A {
	clauses := make(bson.A, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, bson.M{field: DateRange(from, to)})
	}
	return clauses
}

// ParseDateRange validates a from/to date pair. Both values must be
// present for a range to apply; the effective range spans from 00:00:00 on
// the from date through 23:59:59 on the to date.
func ParseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(DateInputLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, invalidDateFormat("from_date", err)
	}

	to, err := time.Parse(DateInputLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, invalidDateFormat("to_date", err)
	}
	to = to.AddDate(0, 0, 1).Add(-time.Second)

	if to.Before(from) {
		return time.Time{}, time.Time{}, invalidDateRange("from_date", "to_date")
	}

	return from, to, nil
}

// oneOf checks membership of value in the allowed enumeration for a field
func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return invalidParameter(field, value, allowed)
}

// matchValue returns the filter value for one acceptable enum member:
// the canonical value is matched by anchored pattern, everything else by
// plain equality.
func matchValue(value, canonical string) interface{} {
	if value == canonical {
		return Anchored(value)
	}
	return value
}
