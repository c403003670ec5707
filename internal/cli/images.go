package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"kale-admin/internal/api"
	"kale-admin/internal/format"

	"github.com/spf13/cobra"
)

func newImagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Image asset commands",
	}
	cmd.AddCommand(newImagesListCmd(app))
	cmd.AddCommand(newImagesAddCmd(app))
	cmd.AddCommand(newImagesDeleteCmd(app))
	return cmd
}

func parseScopeFlag(s string) (api.ImageScope, error) {
	scope, ok := api.ParseImageScope(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return "", fmt.Errorf("unknown image kind %q (food|drink|dessert|hookah|special)", s)
	}
	return scope, nil
}

func newImagesListCmd(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List images in one collection",
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

			if app.Format == "table" {
				t := format.Table{Header: []string{"#", "ID", "FILE", "CATEGORY"}}
				for i, img := range imgs {
					t.Rows = append(t.Rows, []string{
						strconv.Itoa(i + 1), img.ID, img.StoredFilename(), img.Category.Name(),
					})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": imgs})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Image kind (food|drink|dessert|hookah|special)")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func newImagesAddCmd(app *App) *cobra.Command {
	var kind string
	var category string
	var name string

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Upload an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parseScopeFlag(kind)
			if err != nil {
				return writeErr(cmd, err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()

			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.UploadImage(cmd.Context(), scope, filepath.Base(args[0]), f, category, name); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "image uploaded"})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Image kind (food|drink|dessert|hookah|special)")
	cmd.Flags().StringVar(&category, "category", "", "Category id (omit for special images)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func newImagesDeleteCmd(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "delete <image-id>",
		Short: "Delete an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parseScopeFlag(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, client, err := requireSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteImage(cmd.Context(), scope, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "image deleted"})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Image kind (food|drink|dessert|hookah|special)")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}
