// Package protocol tracks the daily protocol checklist.
package protocol

import "github.com/theirongolddev/regimen/internal/model"

// Checklist is an ordered list of daily tasks. Like the food ledger it is a
// value: Toggle returns a new Checklist.
type Checklist struct {
	tasks []model.Task
}

// New returns a checklist over a copy of tasks.
func New(tasks []model.Task) Checklist {
	return Checklist{tasks: append([]model.Task(nil), tasks...)}
}

// Toggle flips the completion of the task at pos. An out-of-range pos
// returns the checklist unchanged and a *model.IndexError.
func (c Checklist) Toggle(pos int) (Checklist, error) {
	if pos < 0 || pos >= len(c.tasks) {
		return c, &model.IndexError{Pos: pos, Len: len(c.tasks)}
	}
	next := New(c.tasks)
	next.tasks[pos].Completed = !next.tasks[pos].Completed
	return next, nil
}

// Tasks returns a copy of the tasks.
func (c Checklist) Tasks() []model.Task {
	return append([]model.Task(nil), c.tasks...)
}

// Len returns the number of tasks.
func (c Checklist) Len() int { return len(c.tasks) }

// Progress reports completed and total task counts.
func (c Checklist) Progress() (completed, total int) {
	for _, t := range c.tasks {
		if t.Completed {
			completed++
		}
	}
	return completed, len(c.tasks)
}

// Ratio returns the completed fraction, 0 for an empty checklist.
func (c Checklist) Ratio() float64 {
	done, total := c.Progress()
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}
