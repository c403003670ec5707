package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"kale-admin/internal/api"
	"kale-admin/internal/format"
	"kale-admin/internal/menu"
	"kale-admin/internal/session"
	"kale-admin/internal/tui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type App struct {
	BaseURL    string
	Dir        string
	PrettyJSON bool
	Format     string
}

const defaultBaseURL = "https://kale-cafe.com"

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "kale-admin",
		Short:        "Kale Café menu administration (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive admin TUI
  kale-admin

  # Scriptable commands
  kale-admin login --username admin
  kale-admin categories list --kind drinks
  kale-admin categories move --kind drinks --from 0 --to 2
  kale-admin export items --kind foods
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// A .env next to the invocation is the same convenience the hosted
		// panel gets from its deployment environment. Missing file is fine.
		_ = godotenv.Load()
		if strings.TrimSpace(app.BaseURL) == "" {
			app.BaseURL = envOr("KALE_API_URL", defaultBaseURL)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", envOr("KALE_API_URL", ""), "Menu service base URL")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("KALE_ADMIN_DIR", ""), "State dir for the stored session (default: ~/.kale-admin)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("KALE_ADMIN_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newProfileCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	for _, k := range itemKinds() {
		cmd.AddCommand(newItemsCmd(app, k))
	}
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newImagesCmd(app))
	cmd.AddCommand(newExportCmd(app))

	return cmd
}

func runTUI(app *App) error {
	store, client, err := wire(app)
	if err != nil {
		return err
	}
	return tui.Run(store, client)
}

// wire builds the session store and the API client and couples them: the
// client reads the bearer token from the store and hands its 401 teardown
// back to it.
func wire(app *App) (*session.Store, *api.Client, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := session.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		dir = d
		app.Dir = dir
	}

	store := session.NewStore(dir)
	client := api.New(api.Options{
		BaseURL:        app.BaseURL,
		TokenSource:    store.Token,
		OnUnauthorized: store.Invalidate,
	})
	store.AttachGateway(client)
	return store, client, nil
}

var errNotLoggedIn = errors.New("not logged in; run `kale-admin login` first")

// requireSession restores the stored session and fails when unauthenticated.
// This is the CLI's route guard: every protected command goes through it.
func requireSession(ctx context.Context, app *App) (*session.Store, *api.Client, error) {
	store, client, err := wire(app)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Restore(ctx); err != nil {
		return nil, nil, err
	}
	if store.State() != session.StateAuthenticated {
		return nil, nil, errNotLoggedIn
	}
	return store, client, nil
}

func reorderEngine(client *api.Client) *menu.Engine { return menu.NewEngine(client) }

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
