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

func itemKinds() []model.MenuKind { return model.Kinds() }

// newItemsCmd builds one kind's command group (foods, drinks, desserts,
// hookahs). All four share the same verbs; drinks additionally get the
// service's server-side search.
func newItemsCmd(app *App, kind model.MenuKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Manage %s", kind),
	}
	cmd.AddCommand(newItemsListCmd(app, kind))
	cmd.AddCommand(newItemsAddCmd(app, kind))
	cmd.AddCommand(newItemsUpdateCmd(app, kind))
	cmd.AddCommand(newItemsDeleteCmd(app, kind))
	if kind == model.KindDrinks {
		cmd.AddCommand(newDrinksSearchCmd(app))
	}
	return cmd
}

func writeItemList(cmd *cobra.Command, app *App, items []model.MenuItem, cats []model.Category) error {
	if app.Format == "table" {
		t := format.Table{Header: []string{"#", "ID", "NAME", "CATEGORY", "PRICE"}}
		for i, it := range items {
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(i + 1), it.ID, it.Name,
				it.Category.DisplayName(cats),
				strconv.FormatFloat(it.Price, 'f', -1, 64),
			})
		}
		return writeOut(cmd, app, t)
	}
	return writeOut(cmd, app, map[string]any{"data": items})
}

func newItemsListCmd(app *App, kind model.MenuKind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := client.MenuItems(cmd.Context(), kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Category names may arrive as bare ids; resolve for table output.
			var cats []model.Category
			if app.Format == "table" {
				cats, _ = client.CategoriesByKind(cmd.Context(), kind)
			}
			return writeItemList(cmd, app, items, cats)
		},
	}
}

func itemPayloadFromFlags(name, category, description string, price float64) (api.MenuItemPayload, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return api.MenuItemPayload{}, errors.New("item name is required")
	}
	if category == "" {
		return api.MenuItemPayload{}, errors.New("category id is required")
	}
	if price < 0 {
		return api.MenuItemPayload{}, errors.New("price must not be negative")
	}
	return api.MenuItemPayload{
		Name:        name,
		Price:       price,
		Category:    category,
		Description: strings.TrimSpace(description),
	}, nil
}

func newItemsAddCmd(app *App, kind model.MenuKind) *cobra.Command {
	var name, category, description string
	var price float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Add a %s item", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := itemPayloadFromFlags(name, category, description, price)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.AddMenuItem(cmd.Context(), kind, p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "item added"})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().Float64Var(&price, "price", 0, "Price")
	cmd.Flags().StringVar(&category, "category", "", "Category id")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newItemsUpdateCmd(app *App, kind model.MenuKind) *cobra.Command {
	var name, category, description string
	var price float64

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: fmt.Sprintf("Update a %s item", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := itemPayloadFromFlags(name, category, description, price)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.UpdateMenuItem(cmd.Context(), kind, args[0], p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "item updated"})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().Float64Var(&price, "price", 0, "Price")
	cmd.Flags().StringVar(&category, "category", "", "Category id")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newItemsDeleteCmd(app *App, kind model.MenuKind) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <item-id>",
		Short: fmt.Sprintf("Delete a %s item", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteMenuItem(cmd.Context(), kind, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "item deleted"})
		},
	}
}

func newDrinksSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search drinks by name (server-side)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.TrimSpace(args[0])
			if q == "" {
				return writeErr(cmd, errors.New("query must not be empty"))
			}
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := client.SearchDrinks(cmd.Context(), q)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeItemList(cmd, app, items, nil)
		},
	}
}
