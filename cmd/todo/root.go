package main

import (
	"github.com/benjamonnguyen/todo"
	"github.com/spf13/cobra"
)

const (
	groupAuth  = "auth"
	groupTasks = "tasks"
)

type cli struct {
	root     *cobra.Command
	confFile string
	app      *app
}

func newCLI() *cli {
	c := &cli{}
	c.root = c.rootCmd()
	return c
}

// Execute runs the command line and releases the app stack.
func (c *cli) Execute() error {
	defer func() {
		if c.app != nil {
			c.app.Close()
		}
	}()
	return c.root.Execute()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "todo",
		Short:         "Manage your tasks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// help and completion must not touch config, the token db or the service
			if cmd.GroupID != groupAuth && cmd.GroupID != groupTasks {
				return nil
			}
			a, err := newApp(cmd.Context(), c.confFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.confFile, "config", todo.DefaultConfFile(), "path to config file")

	root.AddGroup(
		&cobra.Group{ID: groupAuth, Title: "Account:"},
		&cobra.Group{ID: groupTasks, Title: "Tasks:"},
	)
	for _, cmd := range []*cobra.Command{c.signupCmd(), c.loginCmd(), c.logoutCmd(), c.whoamiCmd()} {
		cmd.GroupID = groupAuth
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{c.lsCmd(), c.showCmd(), c.addCmd(), c.editCmd(), c.doneCmd(), c.rmCmd(), c.statsCmd()} {
		cmd.GroupID = groupTasks
		root.AddCommand(cmd)
	}
	return root
}
