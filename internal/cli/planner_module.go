package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studydash/internal/planner"
	"github.com/at-ishikawa/studydash/internal/reminder"
)

var priorityColors = map[planner.Priority]*color.Color{
	planner.PriorityHigh:   color.New(color.FgRed),
	planner.PriorityMedium: color.New(color.FgYellow),
	planner.PriorityLow:    color.New(color.FgGreen),
}

const displayDateLayout = "Jan 2, 2006"

type plannerModule struct {
	moduleBase
	planner   *planner.Planner
	selected  *planner.Date
	scheduler *reminder.Scheduler
	location  *time.Location
}

func newPlannerModule(base moduleBase, tasks []planner.Task, reminderTime string, location *time.Location) (*plannerModule, error) {
	if location == nil {
		location = time.Local
	}
	today := planner.Today(location)
	m := &plannerModule{
		moduleBase: base,
		planner:    planner.New(tasks),
		selected:   &today,
		location:   location,
	}
	if reminderTime == "" {
		return m, nil
	}

	scheduler := reminder.NewScheduler(location)
	if _, err := scheduler.ScheduleDaily(reminderTime, m.remind); err != nil {
		return nil, fmt.Errorf("scheduler.ScheduleDaily(%s) > %w", reminderTime, err)
	}
	scheduler.Start()
	m.scheduler = scheduler
	return m, nil
}

// remind runs on the scheduler goroutine.
func (m *plannerModule) remind() {
	today := planner.Today(m.location)
	m.printf("\n%s", reminder.DailySummary(m.planner.Pending(today), today))
}

func (m *plannerModule) Section() Section {
	return SectionPlanner
}

func (m *plannerModule) Help() []commandHelp {
	return []commandHelp{
		{usage: "add", summary: "add a task"},
		{usage: "toggle <id>", summary: "mark a task done or not done"},
		{usage: "delete <id>", summary: "remove a task"},
		{usage: "date <YYYY-MM-DD|today|all>", summary: "choose which day to list"},
		{usage: "list", summary: "show the tasks of the chosen day"},
		{usage: "dates", summary: "show the days that have tasks"},
	}
}

func (m *plannerModule) Handle(command string, args []string) error {
	switch command {
	case "add":
		return m.add()
	case "toggle", "done":
		id, err := m.resolve(args, command+" <id>")
		if err != nil {
			return err
		}
		m.planner.Toggle(id)
		m.Render()
	case "delete", "rm":
		id, err := m.resolve(args, "delete <id>")
		if err != nil {
			return err
		}
		m.planner.Delete(id)
		m.Render()
	case "date":
		value, err := singleArg(args, "date <YYYY-MM-DD|today|all>")
		if err != nil {
			return err
		}
		if err := m.selectDate(value); err != nil {
			return err
		}
		m.Render()
	case "list":
		m.Render()
	case "dates":
		m.renderDates()
	default:
		return errUnknownCommand
	}
	return nil
}

func (m *plannerModule) selectDate(value string) error {
	switch strings.ToLower(value) {
	case "all":
		m.selected = nil
	case "today":
		today := planner.Today(m.location)
		m.selected = &today
	default:
		date, err := planner.ParseDate(value)
		if err != nil {
			return usagef("%v", err)
		}
		m.selected = &date
	}
	return nil
}

func (m *plannerModule) resolve(args []string, usage string) (string, error) {
	value, err := singleArg(args, usage)
	if err != nil {
		return "", err
	}
	tasks := m.planner.Tasks()
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return resolveID(value, ids)
}

func (m *plannerModule) add() error {
	fallbackDate := planner.Today(m.location)
	if m.selected != nil {
		fallbackDate = *m.selected
	}

	title, err := m.prompt("Title", "")
	if err != nil {
		return err
	}
	description, err := m.prompt("Description", "")
	if err != nil {
		return err
	}
	dueValue, err := m.prompt("Due date", fallbackDate.String())
	if err != nil {
		return err
	}
	priorityValue, err := m.prompt("Priority (low/medium/high)", string(planner.PriorityMedium))
	if err != nil {
		return err
	}

	input := planner.Input{
		Title:       title,
		Description: description,
		Priority:    planner.Priority(strings.ToLower(priorityValue)),
	}
	if due, err := planner.ParseDate(dueValue); err == nil {
		input.DueDate = &due
	}
	task, ok := m.planner.Add(input)
	if !ok {
		m.notice("Nothing added.")
		return nil
	}
	m.notice("Added %s for %s.", shortID(task.ID), task.DueDate.Format(displayDateLayout))
	m.Render()
	return nil
}

func (m *plannerModule) Render() {
	heading := "All tasks"
	if m.selected != nil {
		heading = "Tasks for " + m.selected.Format(displayDateLayout)
	}
	m.printf("%s\n", m.bold.Sprint(heading))

	tasks := m.planner.Filter(m.selected)
	if len(tasks) == 0 {
		m.notice("  No tasks for this date.")
		return
	}
	for _, task := range tasks {
		m.renderTask(task)
	}
}

func (m *plannerModule) renderTask(task planner.Task) {
	check := "[ ]"
	title := task.Title
	if task.Completed {
		check = "[x]"
		title = m.faint.Sprint(title)
	}
	priority := priorityColors[task.Priority]
	if priority == nil {
		priority = priorityColors[planner.PriorityMedium]
	}
	m.printf("  %s %-8s %s %s %s\n",
		check,
		shortID(task.ID),
		title,
		priority.Sprintf("(%s)", task.Priority.Label()),
		m.faint.Sprint(task.DueDate.Format(displayDateLayout)),
	)
	if task.Description != "" {
		m.printf("               %s\n", task.Description)
	}
}

func (m *plannerModule) renderDates() {
	dates := m.planner.TaskDates()
	if len(dates) == 0 {
		m.notice("  No tasks yet.")
		return
	}
	for _, date := range dates {
		marker := " "
		if m.selected != nil && *m.selected == date {
			marker = "*"
		}
		m.printf("  %s %s  %d task(s)\n", marker, date.String(), len(m.planner.Filter(&date)))
	}
}

func (m *plannerModule) Close() error {
	if m.scheduler != nil {
		m.scheduler.Stop()
		m.scheduler = nil
	}
	return nil
}
