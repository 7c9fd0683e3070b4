package postgres

import (
	"testing"
	"time"
)

func TestLimitArgSnapshotReadsAreUnbounded(t *testing.T) {
	// Zero means "everything": the argument must become SQL NULL
	// (LIMIT ALL), not a default page size.
	if got := limitArg(0); got != nil {
		t.Errorf("limitArg(0) = %v, want nil", got)
	}
	if got := limitArg(-1); got != nil {
		t.Errorf("limitArg(-1) = %v, want nil", got)
	}
}

func TestLimitArgPagination(t *testing.T) {
	if got := limitArg(10); got != 10 {
		t.Errorf("limitArg(10) = %v", got)
	}
	if got := limitArg(501); got != 500 {
		t.Errorf("limitArg(501) = %v, want clamped 500", got)
	}
}

func TestNullTime(t *testing.T) {
	if got := nullTime(nil); got != nil {
		t.Errorf("nullTime(nil) = %v", got)
	}
	ts := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	if got := nullTime(&ts); got != ts {
		t.Errorf("nullTime = %v", got)
	}
}
