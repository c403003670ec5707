package tui

import (
	"fmt"
	"strconv"
	"strings"

	"kale-admin/internal/api"
	"kale-admin/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

// sectionItem is one entry on the home screen.
type sectionItem struct {
	title  string
	desc   string
	target view
	kind   model.MenuKind
	scope  api.ImageScope
}

func (i sectionItem) FilterValue() string { return i.title }
func (i sectionItem) Title() string       { return i.title }
func (i sectionItem) Description() string { return i.desc }

func homeSections() []list.Item {
	var items []list.Item
	for _, k := range model.Kinds() {
		items = append(items, sectionItem{
			title:  fmt.Sprintf("Categories: %s", k),
			desc:   "Order, rename, add and remove categories",
			target: viewCategories,
			kind:   k,
		})
	}
	for _, k := range model.Kinds() {
		items = append(items, sectionItem{
			title:  fmt.Sprintf("Items: %s", k),
			desc:   "Menu items with prices and descriptions",
			target: viewItems,
			kind:   k,
		})
	}
	for _, s := range api.ImageScopes() {
		items = append(items, sectionItem{
			title:  fmt.Sprintf("Images: %s", s),
			desc:   "Uploaded image assets",
			target: viewImages,
			scope:  s,
		})
	}
	items = append(items,
		sectionItem{title: "Staff users", desc: "Operator accounts and roles", target: viewUsers},
		sectionItem{title: "Profile", desc: "Your account and password", target: viewProfile},
		sectionItem{title: "Help", desc: "Keys and workflow", target: viewHelp},
	)
	return items
}

type categoryItem struct {
	cat      model.Category
	position int // 1-based display position
}

func (i categoryItem) FilterValue() string { return i.cat.Name }
func (i categoryItem) Title() string {
	name := i.cat.Name
	if !i.cat.IsActive {
		name += " (hidden)"
	}
	return fmt.Sprintf("%d. %s", i.position, name)
}
func (i categoryItem) Description() string { return i.cat.ID }

type menuItemItem struct {
	item model.MenuItem
	cats []model.Category
}

func (i menuItemItem) FilterValue() string { return i.item.Name }
func (i menuItemItem) Title() string {
	return fmt.Sprintf("%s — %s", i.item.Name, strconv.FormatFloat(i.item.Price, 'f', -1, 64))
}
func (i menuItemItem) Description() string {
	cat := i.item.Category.DisplayName(i.cats)
	if cat == "" {
		cat = "(no category)"
	}
	if d := strings.TrimSpace(i.item.Description); d != "" {
		return cat + " · " + d
	}
	return cat
}

type userItem struct {
	user model.User
}

func (i userItem) FilterValue() string { return i.user.Username }
func (i userItem) Title() string {
	name := i.user.Username
	if !i.user.IsActive {
		name += " (disabled)"
	}
	return name
}
func (i userItem) Description() string {
	return fmt.Sprintf("%s · %s", i.user.Email, i.user.Role)
}

type imageItem struct {
	img  model.ImageAsset
	cats []model.Category
}

func (i imageItem) FilterValue() string { return i.img.StoredFilename() }
func (i imageItem) Title() string {
	if n := strings.TrimSpace(i.img.Name); n != "" {
		return n
	}
	return i.img.StoredFilename()
}
func (i imageItem) Description() string {
	cat := i.img.Category.DisplayName(i.cats)
	if cat == "" {
		cat = "special"
	}
	return cat + " · " + i.img.StoredFilename()
}

func newList(title string, items []list.Item) list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		BorderLeftForeground(colorAccent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(colorMuted).
		Background(colorSelectedBg).
		BorderLeftForeground(colorAccent)

	l := list.New(items, d, 0, 0)
	l.Title = title
	// The app renders its own header/footer chrome; keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	// Bubble list defaults to quitting on ESC; here ESC means "back".
	l.KeyMap.Quit.SetKeys("q")
	return l
}
