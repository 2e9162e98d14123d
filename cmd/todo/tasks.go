package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benjamonnguyen/todo"
	"github.com/spf13/cobra"
)

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func (c *cli) lsCmd() *cobra.Command {
	var (
		status, priority, tag, filter string
		limit, offset                 int
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.requireAuth(); err != nil {
				return err
			}
			f, ok := todo.ParseTaskFilter(filter)
			if !ok {
				return fmt.Errorf("filter must be 'all', 'active' or 'completed', got %q", filter)
			}

			var params todo.ListTasksParams
			if status != "" {
				s, err := todo.ParseTaskStatus(status)
				if err != nil {
					return err
				}
				params.Status = &s
			}
			if priority != "" {
				p, err := todo.ParseTaskPriority(priority)
				if err != nil {
					return err
				}
				params.Priority = &p
			}
			if tag != "" {
				params.Tag = &tag
			}
			if cmd.Flags().Changed("limit") {
				params.Limit = &limit
			}
			if cmd.Flags().Changed("offset") {
				params.Offset = &offset
			}

			ctx, cancel := c.app.timeout(cmd.Context())
			defer cancel()
			tasks, err := c.app.tasks.GetTasks(ctx, params)
			if err != nil {
				return err
			}

			list := todo.NewTaskList(tasks)
			fmt.Fprintln(cmd.OutOrStdout(), renderTaskList(list.Tasks(f)))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only tasks with status (pending|completed)")
	cmd.Flags().StringVar(&priority, "priority", "", "only tasks with priority (high|medium|low)")
	cmd.Flags().StringVar(&tag, "tag", "", "only tasks with tag")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of tasks")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of tasks to skip")
	cmd.Flags().StringVar(&filter, "filter", "all", "all|active|completed, applied after fetching")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.requireAuth(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := c.app.timeout(cmd.Context())
			defer cancel()
			task, err := c.app.tasks.GetTask(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTaskDetail(task))
			return nil
		},
	}
}

// taskFlags are the editable fields shared by add and edit.
type taskFlags struct {
	title, desc, priority, due, status string
	tags                               []string
	clearTags                          bool
}

func (f *taskFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.desc, "desc", "", "description")
	cmd.Flags().StringVar(&f.priority, "priority", "", "high|medium|low")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tag, repeatable")
	cmd.Flags().StringVar(&f.due, "due", "", "due date (YYYY-MM-DD or RFC 3339)")
}

func (f *taskFlags) parsePriority() (*todo.TaskPriority, error) {
	if f.priority == "" {
		return nil, nil
	}
	p, err := todo.ParseTaskPriority(f.priority)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (f *taskFlags) parseDue() (*todo.Timestamp, error) {
	if f.due == "" {
		return nil, nil
	}
	ts, err := todo.ParseTimestamp(f.due)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (c *cli) addCmd() *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.requireAuth(); err != nil {
				return err
			}
			req := todo.CreateTaskRequest{
				Title: strings.Join(args, " "),
				Tags:  f.tags,
			}
			if f.desc != "" {
				req.Description = &f.desc
			}
			var err error
			if req.Priority, err = f.parsePriority(); err != nil {
				return err
			}
			if req.DueDate, err = f.parseDue(); err != nil {
				return err
			}

			ctx, cancel := c.app.timeout(cmd.Context())
			defer cancel()
			task, err := c.app.tasks.CreateTask(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Added"), renderTask(task))
			return nil
		},
	}
	f.addFlags(cmd)
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.requireAuth(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var req todo.UpdateTaskRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &f.title
			}
			if flags.Changed("desc") {
				req.Description = &f.desc
			}
			if req.Priority, err = f.parsePriority(); err != nil {
				return err
			}
			if req.DueDate, err = f.parseDue(); err != nil {
				return err
			}
			if f.status != "" {
				s, err := todo.ParseTaskStatus(f.status)
				if err != nil {
					return err
				}
				req.Status = &s
			}
			switch {
			case f.clearTags:
				req.Tags = []string{}
			case flags.Changed("tag"):
				req.Tags = f.tags
			}
			if req.Title == nil && req.Description == nil && req.Priority == nil &&
				req.DueDate == nil && req.Status == nil && req.Tags == nil {
				return fmt.Errorf("nothing to update")
			}

			ctx, cancel := c.app.timeout(cmd.Context())
			defer cancel()
			task, err := c.app.tasks.UpdateTask(ctx, id, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Updated"), renderTask(task))
			return nil
		},
	}
	f.addFlags(cmd)
	cmd.Flags().StringVar(&f.title, "title", "", "title")
	cmd.Flags().StringVar(&f.status, "status", "", "pending|completed")
	cmd.Flags().BoolVar(&f.clearTags, "clear-tags", false, "remove all tags")
	return cmd
}

func (c *cli) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.requireAuth(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := c.app.timeout(cmd.Context())
			defer cancel()
			task, err := c.app.tasks.ToggleTaskComplete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTask(task))
			return nil
		},
	}
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.requireAuth(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := c.app.timeout(cmd.Context())
			defer cancel()
			if err := c.app.tasks.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Deleted task %d", id)))
			return nil
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.requireAuth(); err != nil {
				return err
			}
			ctx, cancel := c.app.timeout(cmd.Context())
			defer cancel()
			tasks, err := c.app.tasks.GetTasks(ctx, todo.ListTasksParams{})
			if err != nil {
				return err
			}
			list := todo.NewTaskList(tasks)
			fmt.Fprintln(cmd.OutOrStdout(), renderStats(list.Stats(), list.AllTags()))
			return nil
		},
	}
}
