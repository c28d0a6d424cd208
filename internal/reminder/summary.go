package reminder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/at-ishikawa/studydash/internal/planner"
)

var priorityRank = map[planner.Priority]int{
	planner.PriorityHigh:   0,
	planner.PriorityMedium: 1,
	planner.PriorityLow:    2,
}

// DailySummary renders the pending tasks of today, highest priority first.
// Callers pass the already filtered tasks, see planner.Planner.Pending.
func DailySummary(pending []planner.Task, today planner.Date) string {
	pending = slices.Clone(pending)
	slices.SortStableFunc(pending, func(a, b planner.Task) int {
		return priorityRank[a.Priority] - priorityRank[b.Priority]
	})

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Reminder for %s\n", today.Format("Jan 2, 2006")))
	if len(pending) == 0 {
		builder.WriteString("  no open tasks due today\n")
		return builder.String()
	}
	for _, task := range pending {
		builder.WriteString(fmt.Sprintf("  - [%s] %s\n", task.Priority.Label(), task.Title))
	}
	return builder.String()
}
