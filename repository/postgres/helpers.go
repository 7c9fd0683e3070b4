package postgres

import "time"

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// limitArg converts a filter limit into a LIMIT argument. A non-positive
// limit means the caller wants the whole snapshot; passing NULL makes
// Postgres treat the clause as LIMIT ALL, so report readers are never
// silently truncated. Positive limits are clamped for paginated listings.
func limitArg(limit int) interface{} {
	if limit <= 0 {
		return nil
	}
	if limit > 500 {
		return 500
	}
	return limit
}
