package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type credentials struct {
	email    string
	password string
}

func (c *credentials) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.email, "email", "", "account email, prompted for if empty")
	cmd.Flags().StringVar(&c.password, "password", "", "account password, prompted for if empty")
}

// resolve prompts for whatever was not passed as a flag.
func (c *credentials) resolve(cmd *cobra.Command) error {
	var err error
	if c.email == "" {
		if c.email, err = prompt("Email", false, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	if c.password == "" {
		if c.password, err = prompt("Password", true, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	if c.email == "" || c.password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

func (c *cli) signupCmd() *cobra.Command {
	var (
		creds               credentials
		firstName, lastName string
	)
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := creds.resolve(cmd); err != nil {
				return err
			}
			ctx, cancel := c.app.timeout(cmd.Context())
			defer cancel()
			if err := c.app.session.Signup(ctx, creds.email, creds.password, firstName, lastName); err != nil {
				return err
			}
			user, _ := c.app.session.User()
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Welcome, "+user.DisplayName()+"!"))
			return nil
		},
	}
	creds.addFlags(cmd)
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := creds.resolve(cmd); err != nil {
				return err
			}
			ctx, cancel := c.app.timeout(cmd.Context())
			defer cancel()
			if err := c.app.session.Login(ctx, creds.email, creds.password); err != nil {
				return err
			}
			user, _ := c.app.session.User()
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Logged in as "+user.DisplayName()))
			return nil
		},
	}
	creds.addFlags(cmd)
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.app.session.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), faintStyle.Render("Not logged in"))
				return nil
			}
			ctx, cancel := c.app.timeout(cmd.Context())
			defer cancel()
			c.app.session.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Logged out"))
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, ok := c.app.session.User()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), faintStyle.Render("Not logged in"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderUser(user))
			if at, ok := c.app.tokenSavedAt(cmd.Context()); ok {
				fmt.Fprintln(cmd.OutOrStdout(), faintStyle.Render("signed in "+at.Local().Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}
