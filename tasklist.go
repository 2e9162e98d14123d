package todo

import (
	"math"
	"slices"
)

type TaskFilter int

const (
	FilterAll TaskFilter = iota
	FilterActive
	FilterCompleted
)

func ParseTaskFilter(s string) (TaskFilter, bool) {
	switch s {
	case "", "all":
		return FilterAll, true
	case "active":
		return FilterActive, true
	case "completed":
		return FilterCompleted, true
	}
	return FilterAll, false
}

func (f TaskFilter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	}
	return "all"
}

type TaskStats struct {
	Total     int
	Completed int
	Pending   int
}

// PercentComplete is the rounded share of completed tasks, 0 when empty.
func (s TaskStats) PercentComplete() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
}

// TaskList is the client's copy of the user's tasks, kept in the order the
// service returned them.
type TaskList struct {
	tasks []Task
}

func NewTaskList(tasks []Task) *TaskList {
	return &TaskList{
		tasks: slices.Clone(tasks),
	}
}

func (l *TaskList) Tasks(f TaskFilter) []Task {
	var filtered []Task
	for _, t := range l.tasks {
		switch f {
		case FilterActive:
			if t.IsCompleted() {
				continue
			}
		case FilterCompleted:
			if !t.IsCompleted() {
				continue
			}
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func (l *TaskList) Stats() TaskStats {
	stats := TaskStats{Total: len(l.tasks)}
	for _, t := range l.tasks {
		if t.IsCompleted() {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

// AllTags returns the distinct tags in first-seen order.
func (l *TaskList) AllTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, t := range l.tasks {
		for _, tag := range t.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
