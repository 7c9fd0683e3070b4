package repository

import "context"

// ReportCache memoizes rendered dashboard reports. The engine itself is pure;
// a report is fully determined by the snapshot version and the reference day,
// which together form the cache key.
type ReportCache interface {
	Get(ctx context.Context, version, today string) ([]byte, error)
	Set(ctx context.Context, version, today string, payload []byte) error
}
