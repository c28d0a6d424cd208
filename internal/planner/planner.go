// Package planner keeps dated study tasks and filters them by calendar day.
package planner

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ParsePriority(value string) (Priority, error) {
	switch Priority(value) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(value), nil
	case "":
		return PriorityMedium, nil
	}
	return "", fmt.Errorf("invalid priority %q, valid values are low, medium, high", value)
}

// Label capitalizes the priority for display.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityHigh:
		return "High"
	default:
		return "Medium"
	}
}

type Task struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	DueDate     Date     `yaml:"due_date"`
	Priority    Priority `yaml:"priority"`
	Completed   bool     `yaml:"completed"`
}

// Input is what a user submits to create a Task. An empty priority means medium.
type Input struct {
	Title       string   `validate:"required"`
	Description string
	DueDate     *Date    `validate:"required"`
	Priority    Priority `validate:"omitempty,oneof=low medium high"`
}

// Planner is the task list owned by one planner module instance. It is
// safe for concurrent use because reminders read it from the scheduler.
type Planner struct {
	mu    sync.Mutex
	tasks []Task
	newID func() string
}

// New copies the seed tasks into a new Planner.
func New(tasks []Task) *Planner {
	return &Planner{
		tasks: slices.Clone(tasks),
		newID: uuid.NewString,
	}
}

// Tasks returns every task in insertion order.
func (p *Planner) Tasks() []Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.tasks)
}

// Add appends a new, not yet completed task. Invalid input is refused
// without an error and leaves the list unchanged.
func (p *Planner) Add(input Input) (Task, bool) {
	if err := validate.Struct(input); err != nil {
		slog.Default().Debug("refused task",
			slog.String("title", input.Title),
			slog.Any("error", err),
		)
		return Task{}, false
	}
	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	task := Task{
		ID:          p.newID(),
		Title:       input.Title,
		Description: input.Description,
		DueDate:     *input.DueDate,
		Priority:    priority,
	}
	p.tasks = append(p.tasks, task)
	return task, true
}

// Toggle flips the completion flag of the task with id.
func (p *Planner) Toggle(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			p.tasks[i].Completed = !p.tasks[i].Completed
			return true
		}
	}
	return false
}

// Delete removes the task with id and reports whether it existed.
func (p *Planner) Delete(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	before := len(p.tasks)
	p.tasks = slices.DeleteFunc(p.tasks, func(task Task) bool {
		return task.ID == id
	})
	return len(p.tasks) != before
}

// Filter returns the tasks due on selected. A nil selection means all tasks.
func (p *Planner) Filter(selected *Date) []Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return FilterByDate(p.tasks, selected)
}

// TaskDates returns the distinct due dates in ascending order.
func (p *Planner) TaskDates() []Date {
	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[Date]struct{})
	var dates []Date
	for _, task := range p.tasks {
		if _, ok := seen[task.DueDate]; ok {
			continue
		}
		seen[task.DueDate] = struct{}{}
		dates = append(dates, task.DueDate)
	}
	slices.SortFunc(dates, func(a, b Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})
	return dates
}

// Pending returns the open tasks due on day.
func (p *Planner) Pending(day Date) []Task {
	return slices.DeleteFunc(p.Filter(&day), func(task Task) bool {
		return task.Completed
	})
}

func FilterByDate(tasks []Task, selected *Date) []Task {
	if selected == nil {
		return slices.Clone(tasks)
	}
	var filtered []Task
	for _, task := range tasks {
		if task.DueDate == *selected {
			filtered = append(filtered, task)
		}
	}
	return filtered
}
