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

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Category commands",
	}
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesAddCmd(app))
	cmd.AddCommand(newCategoriesUpdateCmd(app))
	cmd.AddCommand(newCategoriesDeleteCmd(app))
	cmd.AddCommand(newCategoriesMoveCmd(app))
	return cmd
}

func parseKindFlag(s string) (model.MenuKind, error) {
	k, ok := model.ParseKind(s)
	if !ok {
		return "", fmt.Errorf("unknown kind %q (foods|drinks|desserts|hookahs)", s)
	}
	return k, nil
}

func newCategoriesListCmd(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories (all kinds, or one kind sorted by display order)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var cats []model.Category
			if strings.TrimSpace(kind) == "" {
				cats, err = client.Categories(cmd.Context())
			} else {
				var k model.MenuKind
				k, err = parseKindFlag(kind)
				if err != nil {
					return writeErr(cmd, err)
				}
				cats, err = client.CategoriesByKind(cmd.Context(), k)
				if err == nil {
					model.SortCategoriesByOrder(cats)
				}
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			if app.Format == "table" {
				t := format.Table{Header: []string{"#", "ID", "NAME", "TYPE", "ORDER", "ACTIVE"}}
				for i, c := range cats {
					t.Rows = append(t.Rows, []string{
						strconv.Itoa(i + 1), c.ID, c.Name, string(c.Type),
						strconv.Itoa(c.Order), strconv.FormatBool(c.IsActive),
					})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": cats})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Menu kind (foods|drinks|desserts|hookahs)")
	return cmd
}

func newCategoriesAddCmd(app *App) *cobra.Command {
	var name string
	var kind string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return writeErr(cmd, errors.New("category name is required"))
			}
			k, err := parseKindFlag(kind)
			if err != nil {
				return writeErr(cmd, err)
			}

			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.AddCategory(cmd.Context(), api.CategoryPayload{Name: name, Type: k}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "category added"})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&kind, "kind", "", "Menu kind (foods|drinks|desserts|hookahs)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func newCategoriesUpdateCmd(app *App) *cobra.Command {
	var name string
	var active string

	cmd := &cobra.Command{
		Use:   "update <category-id>",
		Short: "Rename a category or toggle its visibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upd := api.CategoryUpdate{}
			if n := strings.TrimSpace(name); n != "" {
				upd.Name = &n
			}
			if strings.TrimSpace(active) != "" {
				b, err := strconv.ParseBool(active)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("--active: %v", err))
				}
				upd.IsActive = &b
			}
			if upd.Name == nil && upd.IsActive == nil {
				return writeErr(cmd, errors.New("nothing to update; pass --name and/or --active"))
			}

			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.UpdateCategory(cmd.Context(), args[0], upd); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "category updated"})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&active, "active", "", "Set visibility (true|false)")
	return cmd
}

func newCategoriesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "category deleted"})
		},
	}
}

func newCategoriesMoveCmd(app *App) *cobra.Command {
	var kind string
	var from int
	var to int

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a category within its kind's display order",
		Long: strings.TrimSpace(`
Move the category at index --from to index --to (0-based, in the order shown
by "categories list --kind ..."). Every shifted category gets a fresh dense
order value; the printed list is re-fetched from the service afterwards.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKindFlag(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			if from < 0 || to < 0 {
				return writeErr(cmd, errors.New("--from and --to must be >= 0"))
			}

			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}

			cats, err := client.CategoriesByKind(cmd.Context(), k)
			if err != nil {
				return writeErr(cmd, err)
			}
			if from >= len(cats) || to >= len(cats) {
				return writeErr(cmd, fmt.Errorf("index out of range (list has %d categories)", len(cats)))
			}

			fresh, err := reorderEngine(client).Move(cmd.Context(), k, cats, from, to)
			if err != nil {
				// Partial failure: the re-fetched list below is already the
				// service's authoritative state.
				if fresh != nil {
					_ = writeOut(cmd, app, map[string]any{"data": fresh})
				}
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": fresh})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Menu kind (foods|drinks|desserts|hookahs)")
	cmd.Flags().IntVar(&from, "from", 0, "Source index (0-based)")
	cmd.Flags().IntVar(&to, "to", 0, "Destination index (0-based)")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
