// Package reschedule resolves drag-and-drop gestures on calendar tasks.
// A gesture is a tiny state machine: idle -> dragging -> one of three
// outcomes (deleted, rescheduled, unchanged) -> idle. The package is
// rendering-agnostic: inputs are release coordinates and target bounding
// boxes, the output is a discriminated result.
package reschedule

import (
	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/dateutil"
)

// Point is a pointer-release position in surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned bounding box with inclusive edges.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

func (b Box) contains(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Top && p.Y <= b.Bottom
}

// DateCell pairs a grid cell's box with the day it represents.
type DateCell struct {
	Date string `json:"date"`
	Box  Box    `json:"box"`
}

// Surface describes the drop targets available to one gesture. DeleteZone is
// nil when the actor may not delete the dragged task; the zone is simply
// never offered rather than rejected after the fact.
type Surface struct {
	DeleteZone *Box
	DateCells  []DateCell
}

// ForActor builds the gesture surface, withholding the delete zone from
// actors without delete permission on the dragged task.
func ForActor(task *domain.Task, actorEmployeeID string, actorIsAdmin bool, deleteZone Box, cells []DateCell) Surface {
	s := Surface{DateCells: cells}
	if domain.CanDeleteTask(task, actorEmployeeID, actorIsAdmin) {
		s.DeleteZone = &deleteZone
	}
	return s
}

// Outcome discriminates the three ways a gesture can end.
type Outcome string

const (
	OutcomeUnchanged   Outcome = "unchanged"
	OutcomeDeleted     Outcome = "deleted"
	OutcomeRescheduled Outcome = "rescheduled"
)

// Result is the resolved gesture. Task is populated only for a reschedule
// and carries the shifted copy; the original is never mutated.
type Result struct {
	Outcome Outcome      `json:"outcome"`
	Task    *domain.Task `json:"task,omitempty"`
}

// Resolve classifies a release point against the surface. The delete zone
// wins when it and a date cell both contain the point; a release outside
// every target leaves the task untouched.
func Resolve(task *domain.Task, release Point, surface Surface) (Result, error) {
	if task == nil {
		return Result{Outcome: OutcomeUnchanged}, nil
	}

	if surface.DeleteZone != nil && surface.DeleteZone.contains(release) {
		return Result{Outcome: OutcomeDeleted}, nil
	}

	for _, cell := range surface.DateCells {
		if cell.Date == "" || !cell.Box.contains(release) {
			continue
		}
		shifted, err := Shift(task, cell.Date)
		if err != nil {
			return Result{Outcome: OutcomeUnchanged}, err
		}
		return Result{Outcome: OutcomeRescheduled, Task: shifted}, nil
	}

	return Result{Outcome: OutcomeUnchanged}, nil
}

// Shift returns a copy of the task moved so its range starts on newStart,
// preserving the day-count duration exactly.
func Shift(task *domain.Task, newStart string) (*domain.Task, error) {
	if _, err := dateutil.Parse(newStart); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid drop date", err)
	}

	newEnd, err := dateutil.AddDays(newStart, task.DurationDays())
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid task range", err)
	}

	shifted := *task
	shifted.StartDate = newStart
	shifted.EndDate = newEnd
	return &shifted, nil
}
