// Package taskview is the task manager view-model shared by the terminal UI,
// the web page and the commands.
package taskview

import "taskui/internal/service"

// Mode is either CreateMode or EditMode.
type Mode interface {
	isMode()
}

// CreateMode submits the form as a new task.
type CreateMode struct{}

// EditMode submits the form as an update of Task.
// Task is the snapshot taken when editing began; its Status is sent back unchanged.
type EditMode struct {
	Task service.Task
}

func (CreateMode) isMode() {}
func (EditMode) isMode()   {}

// Form holds the two editable fields.
type Form struct {
	Title       string
	Description string
}

// State is everything a surface needs to render.
type State struct {
	Tasks []service.Task
	Form  Form
	Mode  Mode
}

// Editing reports whether the state is in edit mode.
func (s State) Editing() bool {
	_, ok := s.Mode.(EditMode)
	return ok
}

// SubmitLabel is the caption of the submit control for a mode.
func SubmitLabel(m Mode) string {
	if _, ok := m.(EditMode); ok {
		return "Update"
	}
	return "Add"
}

// FindTask returns the task with the given ID from the list.
func (s State) FindTask(id int64) (service.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}
