package cli

import (
	"fmt"
	"strings"
	"time"

	"kale-admin/internal/export"
	"kale-admin/internal/model"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export fetched data to .xlsx",
	}
	cmd.AddCommand(newExportItemsCmd(app))
	cmd.AddCommand(newExportCategoriesCmd(app))
	cmd.AddCommand(newExportImagesCmd(app))
	return cmd
}

func exportPath(out, base string) string {
	if strings.TrimSpace(out) != "" {
		return out
	}
	return export.Filename(base, time.Now())
}

func newExportItemsCmd(app *App) *cobra.Command {
	var kind string
	var out string

	cmd := &cobra.Command{
		Use:   "items",
		Short: "Export one kind's menu items",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKindFlag(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}

			items, err := client.MenuItems(cmd.Context(), k)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Rows must carry resolved category names, never bare ids.
			cats, err := client.CategoriesByKind(cmd.Context(), k)
			if err != nil {
				return writeErr(cmd, err)
			}

			path := exportPath(out, string(k))
			if err := export.WriteItems(path, model.ArabicKindName(k), items, cats); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": fmt.Sprintf("exported %d items to %s", len(items), path)})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Menu kind (foods|drinks|desserts|hookahs)")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default: <kind>-<date>.xlsx)")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func newExportCategoriesCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Export all categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cats, err := client.Categories(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			path := exportPath(out, "categories")
			if err := export.WriteCategories(path, cats); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": fmt.Sprintf("exported %d categories to %s", len(cats), path)})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (default: categories-<date>.xlsx)")
	return cmd
}

func newExportImagesCmd(app *App) *cobra.Command {
	var kind string
	var out string

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Export one image collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parseScopeFlag(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}

			imgs, err := client.Images(cmd.Context(), scope)
			if err != nil {
				return writeErr(cmd, err)
			}
			cats, err := client.Categories(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			path := exportPath(out, string(scope)+"-images")
			if err := export.WriteImages(path, string(scope), imgs, cats); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": fmt.Sprintf("exported %d images to %s", len(imgs), path)})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Image kind (food|drink|dessert|hookah|special)")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default: <kind>-images-<date>.xlsx)")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}
