package reschedule

import (
	"testing"

	"github.com/workplan/backend/domain"
)

func multiDayTask() *domain.Task {
	return &domain.Task{
		ID:        "t1",
		StartDate: "2024-06-03",
		EndDate:   "2024-06-07",
		CreatedBy: "E001",
	}
}

var (
	trashBox = Box{Left: 0, Top: 0, Right: 100, Bottom: 100}
	cellBox  = Box{Left: 200, Top: 0, Right: 300, Bottom: 100}
)

func TestShiftPreservesDuration(t *testing.T) {
	task := multiDayTask()
	shifted, err := Shift(task, "2024-06-20")
	if err != nil {
		t.Fatal(err)
	}
	if shifted.StartDate != "2024-06-20" || shifted.EndDate != "2024-06-24" {
		t.Errorf("shifted to %s..%s", shifted.StartDate, shifted.EndDate)
	}
	if shifted.DurationDays() != task.DurationDays() {
		t.Errorf("duration changed: %d vs %d", shifted.DurationDays(), task.DurationDays())
	}
	// Original untouched.
	if task.StartDate != "2024-06-03" {
		t.Error("original task mutated")
	}
}

func TestShiftAcrossMonthBoundary(t *testing.T) {
	task := &domain.Task{StartDate: "2024-02-27", EndDate: "2024-03-02"}
	shifted, err := Shift(task, "2024-12-30")
	if err != nil {
		t.Fatal(err)
	}
	if shifted.EndDate != "2025-01-03" {
		t.Errorf("end = %s, want 2025-01-03", shifted.EndDate)
	}
}

func TestShiftSingleDayTask(t *testing.T) {
	task := &domain.Task{StartDate: "2024-06-05", EndDate: "2024-06-05"}
	shifted, err := Shift(task, "2024-06-10")
	if err != nil {
		t.Fatal(err)
	}
	if shifted.StartDate != "2024-06-10" || shifted.EndDate != "2024-06-10" {
		t.Errorf("shifted to %s..%s", shifted.StartDate, shifted.EndDate)
	}
}

func TestShiftRejectsBadDate(t *testing.T) {
	if _, err := Shift(multiDayTask(), "garbage"); err == nil {
		t.Fatal("expected error")
	} else if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("error = %v, want INVALID", err)
	}
}

func TestResolveDropOnDateCell(t *testing.T) {
	surface := ForActor(multiDayTask(), "E001", false, trashBox, []DateCell{{Date: "2024-06-20", Box: cellBox}})
	res, err := Resolve(multiDayTask(), Point{X: 250, Y: 50}, surface)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeRescheduled || res.Task == nil {
		t.Fatalf("result = %+v", res)
	}
	if res.Task.StartDate != "2024-06-20" || res.Task.EndDate != "2024-06-24" {
		t.Errorf("rescheduled to %s..%s", res.Task.StartDate, res.Task.EndDate)
	}
}

func TestResolveDropOnTrash(t *testing.T) {
	surface := ForActor(multiDayTask(), "E001", false, trashBox, nil)
	res, err := Resolve(multiDayTask(), Point{X: 50, Y: 50}, surface)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeDeleted {
		t.Errorf("outcome = %s, want deleted", res.Outcome)
	}
}

func TestResolveTrashWinsOverlap(t *testing.T) {
	// Trash zone layered over a date cell: deletion takes priority.
	overlap := DateCell{Date: "2024-06-20", Box: trashBox}
	surface := ForActor(multiDayTask(), "E001", false, trashBox, []DateCell{overlap})
	res, _ := Resolve(multiDayTask(), Point{X: 50, Y: 50}, surface)
	if res.Outcome != OutcomeDeleted {
		t.Errorf("outcome = %s, want deleted to win", res.Outcome)
	}
}

func TestResolveDropElsewhere(t *testing.T) {
	surface := ForActor(multiDayTask(), "E001", false, trashBox, []DateCell{{Date: "2024-06-20", Box: cellBox}})
	res, _ := Resolve(multiDayTask(), Point{X: 999, Y: 999}, surface)
	if res.Outcome != OutcomeUnchanged || res.Task != nil {
		t.Errorf("result = %+v, want unchanged", res)
	}
}

func TestDeleteZoneWithheldWithoutPermission(t *testing.T) {
	task := multiDayTask() // created by E001
	surface := ForActor(task, "E002", false, trashBox, nil)
	if surface.DeleteZone != nil {
		t.Fatal("delete zone offered to actor without permission")
	}
	// A release over the (absent) trash zone falls through to unchanged.
	res, _ := Resolve(task, Point{X: 50, Y: 50}, surface)
	if res.Outcome != OutcomeUnchanged {
		t.Errorf("outcome = %s, want unchanged (fail closed)", res.Outcome)
	}

	admin := ForActor(task, "E999", true, trashBox, nil)
	if admin.DeleteZone == nil {
		t.Error("admin should get the delete zone")
	}
}

func TestResolveBoxEdgesInclusive(t *testing.T) {
	surface := Surface{DateCells: []DateCell{{Date: "2024-06-20", Box: cellBox}}}
	res, _ := Resolve(multiDayTask(), Point{X: cellBox.Left, Y: cellBox.Top}, surface)
	if res.Outcome != OutcomeRescheduled {
		t.Errorf("edge point should hit the cell, got %s", res.Outcome)
	}
}
