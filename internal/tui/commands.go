package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"kale-admin/internal/api"
	"kale-admin/internal/menu"
	"kale-admin/internal/model"
	"kale-admin/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages produced by async work. Every network call runs inside a tea.Cmd
// and reports back through one of these; the Update loop never blocks.

type restoreDoneMsg struct {
	state session.State
	err   error
}

type loginDoneMsg struct {
	err error
}

type categoriesMsg struct {
	kind model.MenuKind
	cats []model.Category
	err  error
}

type itemsMsg struct {
	kind  model.MenuKind
	items []model.MenuItem
	cats  []model.Category
	err   error
}

type usersMsg struct {
	users []model.User
	err   error
}

type imagesMsg struct {
	scope api.ImageScope
	imgs  []model.ImageAsset
	cats  []model.Category
	err   error
}

// mutationDoneMsg reports any create/update/delete. reload names the view
// whose data became stale; viewHome means nothing to refetch.
type mutationDoneMsg struct {
	note   string
	reload view
	err    error
}

type reorderDoneMsg struct {
	kind model.MenuKind
	cats []model.Category
	err  error
}

type statusExpireMsg struct {
	seq int
}

func restoreCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		err := store.Restore(context.Background())
		return restoreDoneMsg{state: store.State(), err: err}
	}
}

func loginCmd(store *session.Store, creds model.Credentials) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{err: store.Login(context.Background(), creds)}
	}
}

func fetchCategoriesCmd(client *api.Client, kind model.MenuKind) tea.Cmd {
	return func() tea.Msg {
		cats, err := client.CategoriesByKind(context.Background(), kind)
		if err == nil {
			model.SortCategoriesByOrder(cats)
		}
		return categoriesMsg{kind: kind, cats: cats, err: err}
	}
}

func fetchItemsCmd(client *api.Client, kind model.MenuKind) tea.Cmd {
	return func() tea.Msg {
		items, err := client.MenuItems(context.Background(), kind)
		if err != nil {
			return itemsMsg{kind: kind, err: err}
		}
		// Category names for display and for the item form's category lookup.
		cats, err := client.CategoriesByKind(context.Background(), kind)
		if err != nil {
			return itemsMsg{kind: kind, err: err}
		}
		model.SortCategoriesByOrder(cats)
		return itemsMsg{kind: kind, items: items, cats: cats}
	}
}

func fetchUsersCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		users, err := client.Users(context.Background())
		return usersMsg{users: users, err: err}
	}
}

func fetchImagesCmd(client *api.Client, scope api.ImageScope) tea.Cmd {
	return func() tea.Msg {
		imgs, err := client.Images(context.Background(), scope)
		if err != nil {
			return imagesMsg{scope: scope, err: err}
		}
		cats, err := client.Categories(context.Background())
		if err != nil {
			return imagesMsg{scope: scope, err: err}
		}
		return imagesMsg{scope: scope, imgs: imgs, cats: cats}
	}
}

// mutateCmd wraps a single write. note is the success flash; reload tells the
// Update loop which list to refetch afterwards.
func mutateCmd(note string, reload view, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{note: note, reload: reload, err: fn(context.Background())}
	}
}

func uploadImageCmd(client *api.Client, scope api.ImageScope, path, categoryID, name string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return mutationDoneMsg{reload: viewImages, err: err}
		}
		defer f.Close()
		err = client.UploadImage(context.Background(), scope, filepath.Base(path), f, categoryID, name)
		return mutationDoneMsg{note: "Image uploaded", reload: viewImages, err: err}
	}
}

func moveCategoryCmd(engine *menu.Engine, kind model.MenuKind, cats []model.Category, src, dst int) tea.Cmd {
	snapshot := append([]model.Category{}, cats...)
	return func() tea.Msg {
		fresh, err := engine.Move(context.Background(), kind, snapshot, src, dst)
		return reorderDoneMsg{kind: kind, cats: fresh, err: err}
	}
}

const statusLinger = 4 * time.Second

func statusExpireCmd(seq int) tea.Cmd {
	return tea.Tick(statusLinger, func(time.Time) tea.Msg {
		return statusExpireMsg{seq: seq}
	})
}
