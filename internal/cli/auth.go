package cli

import (
	"errors"
	"strings"

	"kale-admin/internal/api"
	"kale-admin/internal/model"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the menu service and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			if password == "" {
				password = envOr("KALE_PASSWORD", "")
			}
			if username == "" || password == "" {
				return writeErr(cmd, errors.New("username and password are required (flag --password or env KALE_PASSWORD)"))
			}

			store, _, err := wire(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.Login(cmd.Context(), model.Credentials{Username: username, Password: password}); err != nil {
				return writeErr(cmd, err)
			}
			sess := store.Current()
			return writeOut(cmd, app, map[string]any{"data": sess.User})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password (prefer KALE_PASSWORD to keep it out of shell history)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := wire(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			store.Logout()
			return writeOut(cmd, app, map[string]any{"data": "logged out"})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sess := store.Current()
			return writeOut(cmd, app, map[string]any{"data": sess.User})
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the current operator's profile",
	}
	cmd.AddCommand(newProfileUpdateCmd(app))
	cmd.AddCommand(newProfilePasswordCmd(app))
	return cmd
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	var username string
	var email string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update username/email",
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			email = strings.TrimSpace(email)
			if username == "" && email == "" {
				return writeErr(cmd, errors.New("nothing to update; pass --username and/or --email"))
			}

			store, _, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.UpdateProfile(cmd.Context(), api.ProfileUpdate{Username: username, Email: email}); err != nil {
				return writeErr(cmd, err)
			}
			sess := store.Current()
			return writeOut(cmd, app, map[string]any{"data": sess.User})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "New username")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	return cmd
}

func newProfilePasswordCmd(app *App) *cobra.Command {
	var current string
	var next string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the current operator's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if current == "" || next == "" {
				return writeErr(cmd, errors.New("--current and --new are required"))
			}

			store, _, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.ChangePassword(cmd.Context(), api.PasswordChange{CurrentPassword: current, NewPassword: next}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "password changed"})
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	return cmd
}

func newSeedCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a freshly provisioned backend",
	}

	admin := &cobra.Command{
		Use:   "admin",
		Short: "Create the initial admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := wire(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			msg, err := client.SeedAdmin(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": msg})
		},
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "Install the default category set",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			msg, err := client.SeedCategories(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": msg})
		},
	}

	cmd.AddCommand(admin)
	cmd.AddCommand(categories)
	return cmd
}
