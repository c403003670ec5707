package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"kale-admin/internal/api"
	"kale-admin/internal/format"
	"kale-admin/internal/model"

	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Staff account commands",
	}
	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersCreateCmd(app))
	cmd.AddCommand(newUsersUpdateCmd(app))
	cmd.AddCommand(newUsersDeleteCmd(app))
	return cmd
}

func parseRoleFlag(s string) (model.Role, error) {
	r := model.Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q (admin|manager|staff)", s)
	}
	return r, nil
}

func newUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staff accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			users, err := client.Users(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			if app.Format == "table" {
				t := format.Table{Header: []string{"#", "ID", "USERNAME", "EMAIL", "ROLE", "ACTIVE"}}
				for i, u := range users {
					t.Rows = append(t.Rows, []string{
						strconv.Itoa(i + 1), u.ID, u.Username, u.Email,
						string(u.Role), strconv.FormatBool(u.IsActive),
					})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": users})
		},
	}
}

func newUsersCreateCmd(app *App) *cobra.Command {
	var username, email, password, role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			email = strings.TrimSpace(email)
			if username == "" || email == "" || password == "" {
				return writeErr(cmd, errors.New("--username, --email and --password are required"))
			}
			r, err := parseRoleFlag(role)
			if err != nil {
				return writeErr(cmd, err)
			}

			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p := api.UserPayload{Username: username, Email: email, Password: password, Role: r}
			if err := client.CreateUser(cmd.Context(), p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "user created"})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&role, "role", "staff", "Role (admin|manager|staff)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersUpdateCmd(app *App) *cobra.Command {
	var username, email, role, active, password string

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := api.UserPayload{
				Username: strings.TrimSpace(username),
				Email:    strings.TrimSpace(email),
				Password: password,
			}
			if strings.TrimSpace(role) != "" {
				r, err := parseRoleFlag(role)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.Role = r
			}
			if strings.TrimSpace(active) != "" {
				b, err := strconv.ParseBool(active)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("--active: %v", err))
				}
				p.IsActive = &b
			}
			if p == (api.UserPayload{}) {
				return writeErr(cmd, errors.New("nothing to update"))
			}

			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.UpdateUser(cmd.Context(), args[0], p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "user updated"})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "New username")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	cmd.Flags().StringVar(&role, "role", "", "New role (admin|manager|staff)")
	cmd.Flags().StringVar(&active, "active", "", "Set active (true|false)")
	return cmd
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteUser(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "user deleted"})
		},
	}
}
