package taskview

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"taskui/internal/metrics"
	"taskui/internal/service"
)

// ErrSuperseded is returned by Load when a newer Load started before it finished.
// Its result was discarded.
var ErrSuperseded = errors.New("fetch superseded by a newer fetch")

// Manager owns the task list, the form and the mode. Every transition goes
// through its methods; all methods are safe for concurrent use.
//
// Failures are logged and leave the previous state in place. They are also
// returned so callers can decide whether to report them.
type Manager struct {
	svc service.Service
	log *zap.Logger

	mu    sync.Mutex
	state State

	// fetchGen identifies the newest Load; cancelFetch cancels it.
	fetchGen    uint64
	cancelFetch context.CancelFunc

	// formRev changes whenever the form or mode is touched by the user.
	formRev uint64
}

// New creates a Manager in create mode with an empty list.
func New(svc service.Service, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		svc: svc,
		log: log.Named("taskview"),
		state: State{
			Tasks: []service.Task{},
			Mode:  CreateMode{},
		},
	}
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	s.Tasks = make([]service.Task, len(m.state.Tasks))
	copy(s.Tasks, m.state.Tasks)
	return s
}

// SetTitle binds the title field.
func (m *Manager) SetTitle(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Form.Title != title {
		m.state.Form.Title = title
		m.formRev++
	}
}

// SetDescription binds the description field.
func (m *Manager) SetDescription(description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Form.Description != description {
		m.state.Form.Description = description
		m.formRev++
	}
}

// Edit makes task the edit target and copies its fields into the form.
// Any unsaved edit of another task is dropped. No API call is made.
func (m *Manager) Edit(task service.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Mode = EditMode{Task: task}
	m.state.Form = Form{Title: task.Title, Description: task.Description}
	m.formRev++
}

// Load fetches the full list and replaces the current one.
// Starting a Load cancels any Load still in flight; the older one then
// returns ErrSuperseded without touching the state.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	m.fetchGen++
	gen := m.fetchGen
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFetch = cancel
	m.mu.Unlock()
	defer cancel()

	tasks, err := m.svc.ListTasks(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.fetchGen {
		metrics.StaleFetches.Inc()
		m.log.Debug("discarding superseded fetch", zap.Uint64("generation", gen))
		return ErrSuperseded
	}
	m.cancelFetch = nil
	if err != nil {
		m.log.Error("error fetching tasks", zap.Error(err))
		return fmt.Errorf("fetch tasks: %w", err)
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	m.state.Tasks = tasks
	return nil
}

// Submit creates or updates a task from the form, depending on the mode.
// On success the form is cleared, the mode returns to create and the list is
// re-fetched. On failure the form and mode are left as they were.
//
// Exception: if the form or mode changed while the request was in flight
// (typing, or Edit of another task), success leaves that newer input in
// place instead of clearing it, so a second edit is never lost.
func (m *Manager) Submit(ctx context.Context) error {
	m.mu.Lock()
	form := m.state.Form
	mode := m.state.Mode
	rev := m.formRev
	m.mu.Unlock()

	return m.submit(ctx, mode, form, rev, true)
}

// SubmitForm submits form in the given mode instead of the shared ones.
// Surfaces whose requests each carry their own form, like the web page, use
// it so one client's edit cannot redirect another client's create.
// The shared form and mode are reset on success only when the shared mode
// is the one that was submitted.
func (m *Manager) SubmitForm(ctx context.Context, mode Mode, form Form) error {
	m.mu.Lock()
	rev := m.formRev
	owned := sameMode(m.state.Mode, mode)
	m.mu.Unlock()

	return m.submit(ctx, mode, form, rev, owned)
}

// sameMode reports whether a and b target the same thing: both create, or
// edits of the same task ID.
func sameMode(a, b Mode) bool {
	switch a := a.(type) {
	case CreateMode:
		_, ok := b.(CreateMode)
		return ok
	case EditMode:
		e, ok := b.(EditMode)
		return ok && e.Task.ID == a.Task.ID
	}
	return false
}

func (m *Manager) submit(ctx context.Context, mode Mode, form Form, rev uint64, reset bool) error {
	var err error
	switch md := mode.(type) {
	case CreateMode:
		_, err = m.svc.CreateTask(ctx, service.TaskInput{
			Title:       form.Title,
			Description: form.Description,
			Status:      service.StatusPending,
		})
	case EditMode:
		_, err = m.svc.UpdateTask(ctx, md.Task.ID, service.TaskInput{
			Title:       form.Title,
			Description: form.Description,
			Status:      md.Task.Status,
		})
	default:
		err = fmt.Errorf("unknown mode %T", mode)
	}
	if err != nil {
		m.log.Error("error submitting task", zap.Error(err))
		return fmt.Errorf("submit task: %w", err)
	}

	m.mu.Lock()
	if reset && m.formRev == rev {
		m.state.Mode = CreateMode{}
		m.state.Form = Form{}
		m.formRev++
	}
	m.mu.Unlock()

	m.refetch(ctx)
	return nil
}

// Delete deletes a task by ID and re-fetches the list on success.
// On failure the list is left as it was.
func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.svc.DeleteTask(ctx, id); err != nil {
		m.log.Error("error deleting task", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	m.refetch(ctx)
	return nil
}

// refetch reloads after a successful mutation. Its failure is already logged
// by Load and does not fail the mutation.
func (m *Manager) refetch(ctx context.Context) {
	_ = m.Load(ctx)
}
