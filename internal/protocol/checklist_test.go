package protocol

import (
	"errors"
	"testing"

	"github.com/theirongolddev/regimen/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{Task: "Morning Hydration"},
		{Task: "Skincare Routine"},
		{Task: "Workout Session"},
	}
}

func TestToggle(t *testing.T) {
	c := New(sampleTasks())

	c2, err := c.Toggle(1)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if done, total := c2.Progress(); done != 1 || total != 3 {
		t.Errorf("Progress = %d/%d, want 1/3", done, total)
	}
	if done, _ := c.Progress(); done != 0 {
		t.Errorf("original checklist changed: %d done", done)
	}

	c3, _ := c2.Toggle(1)
	if done, _ := c3.Progress(); done != 0 {
		t.Errorf("double toggle done = %d, want 0", done)
	}
}

func TestToggleOutOfRange(t *testing.T) {
	c := New(sampleTasks())
	for _, pos := range []int{-1, 3} {
		got, err := c.Toggle(pos)
		var idxErr *model.IndexError
		if !errors.As(err, &idxErr) {
			t.Fatalf("Toggle(%d) err = %v, want IndexError", pos, err)
		}
		if got.Len() != 3 {
			t.Errorf("Toggle(%d) changed length to %d", pos, got.Len())
		}
	}
}

func TestRatio(t *testing.T) {
	if r := New(nil).Ratio(); r != 0 {
		t.Errorf("empty Ratio = %v, want 0", r)
	}
	c, _ := New(sampleTasks()).Toggle(0)
	c, _ = c.Toggle(2)
	if r := c.Ratio(); r < 0.66 || r > 0.67 {
		t.Errorf("Ratio = %v, want ~0.667", r)
	}
}

func TestNewCopiesInput(t *testing.T) {
	tasks := sampleTasks()
	c := New(tasks)
	tasks[0].Completed = true
	if done, _ := c.Progress(); done != 0 {
		t.Error("checklist aliases caller slice")
	}
}
