package main

import (
	"fmt"
	"strings"

	"github.com/benjamonnguyen/todo"
	"github.com/charmbracelet/lipgloss"
)

const (
	dash     = '─'
	barFull  = '█'
	barEmpty = '░'
	barWidth = 20
)

var (
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)

	priorityStyles = map[todo.TaskPriority]lipgloss.Style{
		todo.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		todo.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		todo.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func line(length int) string {
	return strings.Repeat(string(dash), length)
}

func checkbox(t todo.Task) string {
	if t.IsCompleted() {
		return successStyle.Render("[x]")
	}
	return "[ ]"
}

func renderPriority(p todo.TaskPriority) string {
	style, ok := priorityStyles[p]
	if !ok {
		return string(p)
	}
	return style.Render(string(p))
}

func renderTags(tags []string) string {
	rendered := make([]string, 0, len(tags))
	for _, tag := range tags {
		rendered = append(rendered, tagStyle.Render("#"+tag))
	}
	return strings.Join(rendered, " ")
}

// renderTask formats a task as a single line.
func renderTask(t todo.Task) string {
	title := titleStyle.Render(t.Title)
	if t.IsCompleted() {
		title = doneStyle.Render(t.Title)
	}

	parts := []string{
		checkbox(t),
		faintStyle.Render(fmt.Sprintf("%3d", t.ID)),
		title,
		"(" + renderPriority(t.Priority) + ")",
	}
	if len(t.Tags) > 0 {
		parts = append(parts, renderTags(t.Tags))
	}
	if t.DueDate != nil {
		parts = append(parts, faintStyle.Render("due "+t.DueDate.Format("2006-01-02")))
	}
	return strings.Join(parts, " ")
}

func renderTaskList(tasks []todo.Task) string {
	if len(tasks) == 0 {
		return faintStyle.Render("No tasks")
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, renderTask(t))
	}
	return strings.Join(lines, "\n")
}

func renderTaskDetail(t todo.Task) string {
	rows := [][2]string{
		{"Status", string(t.Status)},
		{"Priority", renderPriority(t.Priority)},
	}
	if t.Description != nil && *t.Description != "" {
		rows = append(rows, [2]string{"Description", *t.Description})
	}
	if len(t.Tags) > 0 {
		rows = append(rows, [2]string{"Tags", renderTags(t.Tags)})
	}
	if t.DueDate != nil {
		rows = append(rows, [2]string{"Due", t.DueDate.Format("2006-01-02 15:04")})
	}
	rows = append(rows,
		[2]string{"Created", t.CreatedAt.Local().Format("2006-01-02 15:04")},
		[2]string{"Updated", t.UpdatedAt.Local().Format("2006-01-02 15:04")},
	)

	header := fmt.Sprintf("%s %s", faintStyle.Render(fmt.Sprintf("#%d", t.ID)), titleStyle.Render(t.Title))
	lines := []string{header, faintStyle.Render(line(lipgloss.Width(header)))}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-12s %s", r[0], r[1]))
	}
	return strings.Join(lines, "\n")
}

func renderProgress(percent int) string {
	filled := percent * barWidth / 100
	return successStyle.Render(strings.Repeat(string(barFull), filled)) +
		faintStyle.Render(strings.Repeat(string(barEmpty), barWidth-filled))
}

func renderStats(s todo.TaskStats, tags []string) string {
	lines := []string{
		fmt.Sprintf("%d tasks, %d completed, %d pending", s.Total, s.Completed, s.Pending),
		fmt.Sprintf("%s %d%% complete", renderProgress(s.PercentComplete()), s.PercentComplete()),
	}
	if len(tags) > 0 {
		lines = append(lines, "Tags: "+renderTags(tags))
	}
	return strings.Join(lines, "\n")
}

func renderUser(u todo.User) string {
	name := titleStyle.Render(u.DisplayName())
	if u.DisplayName() == u.Email {
		return name
	}
	return name + " " + faintStyle.Render("<"+u.Email+">")
}
