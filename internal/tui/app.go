// Package tui is the interactive administration panel: sign-in, category
// ordering, menu items, staff users and image assets, all against the live
// menu service.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kale-admin/internal/api"
	"kale-admin/internal/menu"
	"kale-admin/internal/model"
	"kale-admin/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type view int

const (
	viewLogin view = iota
	viewHome
	viewCategories
	viewItems
	viewUsers
	viewImages
	viewProfile
	viewHelp
)

type formKind int

const (
	formNone formKind = iota
	formAddCategory
	formRenameCategory
	formAddItem
	formEditItem
	formAddUser
	formEditUser
	formUploadImage
	formEditProfile
	formChangePassword
)

type appModel struct {
	store  *session.Store
	client *api.Client
	engine *menu.Engine

	width  int
	height int

	view  view
	kind  model.MenuKind
	scope api.ImageScope

	home list.Model
	data list.Model

	cats     []model.Category
	items    []model.MenuItem
	itemCats []model.Category
	users    []model.User
	imgs     []model.ImageAsset
	imgCats  []model.Category

	loginForm formModel
	form      *formModel
	formKind  formKind
	editID    string

	confirm *confirmState

	spin spinner.Model
	busy bool

	// pendingMoveID keeps the cursor on the category the operator just moved
	// once the reconciled list comes back.
	pendingMoveID string

	statusText string
	statusErr  bool
	statusSeq  int

	helpBody string
}

// Run starts the interactive panel. It blocks until the operator quits.
func Run(store *session.Store, client *api.Client) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := &appModel{
		store:  store,
		client: client,
		engine: menu.NewEngine(client),
		view:   viewLogin,
		home:   newList("home", homeSections()),
		data:   newList("", nil),
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.resetLoginForm("")

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *appModel) Init() tea.Cmd {
	m.busy = true
	m.statusText = "Restoring session…"
	return tea.Batch(m.spin.Tick, restoreCmd(m.store))
}

func (m *appModel) resetLoginForm(errText string) {
	f := newForm("Sign in",
		fieldSpec{label: "Username", placeholder: "admin"},
		fieldSpec{label: "Password", secret: true},
	)
	f.errText = errText
	m.loginForm = f
}

// --- update ---

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeLists()
		if m.view == viewHelp {
			m.helpBody = renderHelp(m.width)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case statusExpireMsg:
		if msg.seq == m.statusSeq {
			m.statusText, m.statusErr = "", false
		}
		return m, nil

	case restoreDoneMsg:
		m.busy = false
		m.statusText = ""
		if msg.err != nil {
			return m, m.setStatus(msg.err.Error(), true)
		}
		if msg.state == session.StateAuthenticated {
			m.view = viewHome
			return m, m.setStatus(m.greeting(), false)
		}
		return m, nil

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.resetLoginForm(msg.err.Error())
			return m, nil
		}
		m.view = viewHome
		return m, m.setStatus(m.greeting(), false)

	case categoriesMsg:
		if m.view != viewCategories || msg.kind != m.kind {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.cats = msg.cats
		m.setCategoryListItems()
		return m, nil

	case itemsMsg:
		if m.view != viewItems || msg.kind != m.kind {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.items, m.itemCats = msg.items, msg.cats
		m.setMenuItemListItems()
		return m, nil

	case usersMsg:
		if m.view != viewUsers {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.users = msg.users
		m.setUserListItems()
		return m, nil

	case imagesMsg:
		if m.view != viewImages || msg.scope != m.scope {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.imgs, m.imgCats = msg.imgs, msg.cats
		m.setImageListItems()
		return m, nil

	case mutationDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		cmds := []tea.Cmd{m.setStatus(msg.note, false)}
		if reload := m.reloadCmd(msg.reload); reload != nil {
			m.busy = true
			cmds = append(cmds, m.spin.Tick, reload)
		}
		return m, tea.Batch(cmds...)

	case reorderDoneMsg:
		if m.view != viewCategories || msg.kind != m.kind {
			return m, nil
		}
		m.busy = false
		if msg.cats != nil {
			m.cats = msg.cats
			m.setCategoryListItems()
			if m.pendingMoveID != "" {
				for i, c := range m.cats {
					if c.ID == m.pendingMoveID {
						m.data.Select(i)
						break
					}
				}
			}
		}
		m.pendingMoveID = ""
		if msg.err != nil {
			if msg.cats == nil {
				return m, m.fail(msg.err)
			}
			// Some writes landed, some did not; the list above is the
			// service's actual state.
			return m, m.setStatus("Order partially saved: "+msg.err.Error(), true)
		}
		return m, m.setStatus("Order saved", false)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirm != nil {
		switch msg.String() {
		case "y", "enter":
			c := *m.confirm
			m.confirm = nil
			return m, m.dispatchConfirm(c)
		case "n", "esc":
			m.confirm = nil
		}
		return m, nil
	}

	if m.form != nil {
		submitted, canceled, cmd := m.form.Update(msg)
		if canceled {
			m.form, m.formKind, m.editID = nil, formNone, ""
			return m, nil
		}
		if submitted {
			return m, m.submitForm()
		}
		return m, cmd
	}

	switch m.view {
	case viewLogin:
		return m.handleLoginKey(msg)
	case viewHome:
		return m.handleHomeKey(msg)
	case viewProfile:
		return m.handleProfileKey(msg)
	case viewHelp:
		if msg.String() == "esc" || msg.String() == "q" {
			m.view = viewHome
		}
		return m, nil
	default:
		return m.handleDataKey(msg)
	}
}

func (m *appModel) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	submitted, _, cmd := m.loginForm.Update(msg)
	if !submitted {
		return m, cmd
	}
	creds := model.Credentials{
		Username: m.loginForm.value(0),
		Password: m.loginForm.rawValue(1),
	}
	if creds.Username == "" || creds.Password == "" {
		m.loginForm.errText = "Username and password are required"
		return m, nil
	}
	m.loginForm.errText = ""
	m.busy = true
	return m, tea.Batch(m.spin.Tick, loginCmd(m.store, creds))
}

func (m *appModel) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.home.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.home, cmd = m.home.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "L":
		m.confirm = &confirmState{prompt: "Log out?", action: confirmLogout}
		return m, nil
	case "enter":
		s, ok := m.home.SelectedItem().(sectionItem)
		if !ok {
			return m, nil
		}
		return m, m.openSection(s)
	}
	var cmd tea.Cmd
	m.home, cmd = m.home.Update(msg)
	return m, cmd
}

func (m *appModel) openSection(s sectionItem) tea.Cmd {
	m.view = s.target
	m.kind = s.kind
	m.scope = s.scope

	switch s.target {
	case viewProfile:
		return nil
	case viewHelp:
		m.helpBody = renderHelp(m.width)
		return nil
	}

	m.data = newList(s.title, nil)
	m.resizeLists()
	m.busy = true
	return tea.Batch(m.spin.Tick, m.reloadCmd(s.target))
}

// reloadCmd returns the fetch for the given view, nil when it has no data to
// fetch or does not match the current position.
func (m *appModel) reloadCmd(v view) tea.Cmd {
	if v != m.view {
		return nil
	}
	switch v {
	case viewCategories:
		return fetchCategoriesCmd(m.client, m.kind)
	case viewItems:
		return fetchItemsCmd(m.client, m.kind)
	case viewUsers:
		return fetchUsersCmd(m.client)
	case viewImages:
		return fetchImagesCmd(m.client, m.scope)
	}
	return nil
}

func (m *appModel) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.view = viewHome
	case "e":
		u := m.store.Current().User
		if u == nil {
			return m, nil
		}
		f := newForm("Edit profile",
			fieldSpec{label: "Username", value: u.Username},
			fieldSpec{label: "Email", value: u.Email},
		)
		m.form, m.formKind = &f, formEditProfile
	case "p":
		f := newForm("Change password",
			fieldSpec{label: "Current password", secret: true},
			fieldSpec{label: "New password", secret: true},
		)
		m.form, m.formKind = &f, formChangePassword
	}
	return m, nil
}

func (m *appModel) handleDataKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.data.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.data, cmd = m.data.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		if m.data.FilterState() == list.FilterApplied {
			break // let the list clear its filter
		}
		m.view = viewHome
		return m, nil
	case "r":
		m.busy = true
		return m, tea.Batch(m.spin.Tick, m.reloadCmd(m.view))
	case "a":
		return m, m.openAddForm()
	case "e":
		return m, m.openEditForm()
	case "d":
		m.openDeleteConfirm()
		return m, nil
	case "J", "K":
		if m.view != viewCategories || m.busy {
			return m, nil
		}
		src := m.data.Index()
		dst := src + 1
		if msg.String() == "K" {
			dst = src - 1
		}
		if src < 0 || dst < 0 || dst >= len(m.cats) {
			return m, nil
		}
		m.busy = true
		m.pendingMoveID = m.cats[src].ID
		return m, tea.Batch(m.spin.Tick, moveCategoryCmd(m.engine, m.kind, m.cats, src, dst))
	}

	var cmd tea.Cmd
	m.data, cmd = m.data.Update(msg)
	return m, cmd
}

// --- forms ---

func (m *appModel) openAddForm() tea.Cmd {
	switch m.view {
	case viewCategories:
		f := newForm(fmt.Sprintf("New %s category", m.kind),
			fieldSpec{label: "Name"},
		)
		m.form, m.formKind = &f, formAddCategory
	case viewItems:
		f := newForm(fmt.Sprintf("New %s item", m.kind),
			fieldSpec{label: "Name"},
			fieldSpec{label: "Price", placeholder: "0.0"},
			fieldSpec{label: "Category", placeholder: "name or id"},
			fieldSpec{label: "Description"},
		)
		m.form, m.formKind = &f, formAddItem
	case viewUsers:
		f := newForm("New user",
			fieldSpec{label: "Username"},
			fieldSpec{label: "Email"},
			fieldSpec{label: "Password", secret: true},
			fieldSpec{label: "Role", placeholder: "admin|manager|staff", value: "staff"},
		)
		m.form, m.formKind = &f, formAddUser
	case viewImages:
		specs := []fieldSpec{
			{label: "File path"},
			{label: "Display name"},
		}
		if m.scope != api.ScopeSpecial {
			specs = append(specs, fieldSpec{label: "Category", placeholder: "name or id"})
		}
		f := newForm(fmt.Sprintf("Upload %s image", m.scope), specs...)
		m.form, m.formKind = &f, formUploadImage
	}
	return nil
}

func (m *appModel) openEditForm() tea.Cmd {
	switch m.view {
	case viewCategories:
		it, ok := m.data.SelectedItem().(categoryItem)
		if !ok {
			return nil
		}
		f := newForm("Rename category",
			fieldSpec{label: "Name", value: it.cat.Name},
		)
		m.form, m.formKind, m.editID = &f, formRenameCategory, it.cat.ID
	case viewItems:
		it, ok := m.data.SelectedItem().(menuItemItem)
		if !ok {
			return nil
		}
		cat := it.item.Category.DisplayName(m.itemCats)
		if cat == "" {
			cat = it.item.Category.ID()
		}
		f := newForm("Edit item",
			fieldSpec{label: "Name", value: it.item.Name},
			fieldSpec{label: "Price", value: strconv.FormatFloat(it.item.Price, 'f', -1, 64)},
			fieldSpec{label: "Category", value: cat, placeholder: "name or id"},
			fieldSpec{label: "Description", value: it.item.Description},
		)
		m.form, m.formKind, m.editID = &f, formEditItem, it.item.ID
	case viewUsers:
		it, ok := m.data.SelectedItem().(userItem)
		if !ok {
			return nil
		}
		f := newForm("Edit user",
			fieldSpec{label: "Username", value: it.user.Username},
			fieldSpec{label: "Email", value: it.user.Email},
			fieldSpec{label: "Role", value: string(it.user.Role), placeholder: "admin|manager|staff"},
			fieldSpec{label: "Active", value: strconv.FormatBool(it.user.IsActive), placeholder: "true|false"},
			fieldSpec{label: "New password", secret: true, placeholder: "leave empty to keep"},
		)
		m.form, m.formKind, m.editID = &f, formEditUser, it.user.ID
	}
	return nil
}

func (m *appModel) openDeleteConfirm() {
	switch m.view {
	case viewCategories:
		if it, ok := m.data.SelectedItem().(categoryItem); ok {
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Delete category %q?", it.cat.Name),
				action: confirmDeleteCategory,
				id:     it.cat.ID,
			}
		}
	case viewItems:
		if it, ok := m.data.SelectedItem().(menuItemItem); ok {
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Delete item %q?", it.item.Name),
				action: confirmDeleteItem,
				id:     it.item.ID,
			}
		}
	case viewUsers:
		if it, ok := m.data.SelectedItem().(userItem); ok {
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Delete user %q?", it.user.Username),
				action: confirmDeleteUser,
				id:     it.user.ID,
			}
		}
	case viewImages:
		if it, ok := m.data.SelectedItem().(imageItem); ok {
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Delete image %q?", it.Title()),
				action: confirmDeleteImage,
				id:     it.img.ID,
			}
		}
	}
}

func (m *appModel) dispatchConfirm(c confirmState) tea.Cmd {
	client, kind, scope := m.client, m.kind, m.scope
	switch c.action {
	case confirmLogout:
		m.store.Logout()
		m.view = viewLogin
		m.resetLoginForm("")
		return m.setStatus("Logged out", false)
	case confirmDeleteCategory:
		m.busy = true
		return tea.Batch(m.spin.Tick, mutateCmd("Category deleted", viewCategories, func(ctx context.Context) error {
			return client.DeleteCategory(ctx, c.id)
		}))
	case confirmDeleteItem:
		m.busy = true
		return tea.Batch(m.spin.Tick, mutateCmd("Item deleted", viewItems, func(ctx context.Context) error {
			return client.DeleteMenuItem(ctx, kind, c.id)
		}))
	case confirmDeleteUser:
		m.busy = true
		return tea.Batch(m.spin.Tick, mutateCmd("User deleted", viewUsers, func(ctx context.Context) error {
			return client.DeleteUser(ctx, c.id)
		}))
	case confirmDeleteImage:
		m.busy = true
		return tea.Batch(m.spin.Tick, mutateCmd("Image deleted", viewImages, func(ctx context.Context) error {
			return client.DeleteImage(ctx, scope, c.id)
		}))
	}
	return nil
}

func (m *appModel) submitForm() tea.Cmd {
	f := m.form
	client, store, kind, scope, id := m.client, m.store, m.kind, m.scope, m.editID

	closeForm := func() {
		m.form, m.formKind, m.editID = nil, formNone, ""
	}
	start := func(c tea.Cmd) tea.Cmd {
		closeForm()
		m.busy = true
		return tea.Batch(m.spin.Tick, c)
	}

	switch m.formKind {
	case formAddCategory:
		name := f.value(0)
		if name == "" {
			f.errText = "Name is required"
			return nil
		}
		return start(mutateCmd("Category added", viewCategories, func(ctx context.Context) error {
			return client.AddCategory(ctx, api.CategoryPayload{Name: name, Type: kind})
		}))

	case formRenameCategory:
		name := f.value(0)
		if name == "" {
			f.errText = "Name is required"
			return nil
		}
		return start(mutateCmd("Category renamed", viewCategories, func(ctx context.Context) error {
			return client.UpdateCategory(ctx, id, api.CategoryUpdate{Name: &name})
		}))

	case formAddItem, formEditItem:
		p, err := m.itemPayloadFromForm(f)
		if err != nil {
			f.errText = err.Error()
			return nil
		}
		if m.formKind == formAddItem {
			return start(mutateCmd("Item added", viewItems, func(ctx context.Context) error {
				return client.AddMenuItem(ctx, kind, p)
			}))
		}
		return start(mutateCmd("Item updated", viewItems, func(ctx context.Context) error {
			return client.UpdateMenuItem(ctx, kind, id, p)
		}))

	case formAddUser:
		p := api.UserPayload{
			Username: f.value(0),
			Email:    f.value(1),
			Password: f.rawValue(2),
			Role:     model.Role(strings.ToLower(f.value(3))),
		}
		if p.Username == "" || p.Email == "" || p.Password == "" {
			f.errText = "Username, email and password are required"
			return nil
		}
		if !p.Role.Valid() {
			f.errText = "Role must be admin, manager or staff"
			return nil
		}
		return start(mutateCmd("User created", viewUsers, func(ctx context.Context) error {
			return client.CreateUser(ctx, p)
		}))

	case formEditUser:
		p := api.UserPayload{
			Username: f.value(0),
			Email:    f.value(1),
			Role:     model.Role(strings.ToLower(f.value(2))),
			Password: f.rawValue(4),
		}
		if p.Role != "" && !p.Role.Valid() {
			f.errText = "Role must be admin, manager or staff"
			return nil
		}
		if v := f.value(3); v != "" {
			active, err := strconv.ParseBool(v)
			if err != nil {
				f.errText = "Active must be true or false"
				return nil
			}
			p.IsActive = &active
		}
		return start(mutateCmd("User updated", viewUsers, func(ctx context.Context) error {
			return client.UpdateUser(ctx, id, p)
		}))

	case formUploadImage:
		path := f.value(0)
		if path == "" {
			f.errText = "File path is required"
			return nil
		}
		name := f.value(1)
		var categoryID string
		if scope != api.ScopeSpecial {
			categoryID = m.resolveCategory(f.value(2), m.imgCats)
			if categoryID == "" {
				f.errText = "Category is required"
				return nil
			}
		}
		closeForm()
		m.busy = true
		return tea.Batch(m.spin.Tick, uploadImageCmd(client, scope, path, categoryID, name))

	case formEditProfile:
		upd := api.ProfileUpdate{Username: f.value(0), Email: f.value(1)}
		if upd.Username == "" || upd.Email == "" {
			f.errText = "Username and email are required"
			return nil
		}
		return start(mutateCmd("Profile updated", viewProfile, func(ctx context.Context) error {
			return store.UpdateProfile(ctx, upd)
		}))

	case formChangePassword:
		chg := api.PasswordChange{CurrentPassword: f.rawValue(0), NewPassword: f.rawValue(1)}
		if chg.CurrentPassword == "" || chg.NewPassword == "" {
			f.errText = "Both passwords are required"
			return nil
		}
		return start(mutateCmd("Password changed", viewProfile, func(ctx context.Context) error {
			return store.ChangePassword(ctx, chg)
		}))
	}
	return nil
}

func (m *appModel) itemPayloadFromForm(f *formModel) (api.MenuItemPayload, error) {
	p := api.MenuItemPayload{
		Name:        f.value(0),
		Description: f.value(3),
	}
	if p.Name == "" {
		return p, fmt.Errorf("name is required")
	}
	price, err := strconv.ParseFloat(f.value(1), 64)
	if err != nil || price < 0 {
		return p, fmt.Errorf("price must be a non-negative number")
	}
	p.Price = price
	p.Category = m.resolveCategory(f.value(2), m.itemCats)
	if p.Category == "" {
		return p, fmt.Errorf("category is required")
	}
	return p, nil
}

// resolveCategory accepts either a category name (matched case-insensitively
// against the given list) or a raw id.
func (m *appModel) resolveCategory(s string, cats []model.Category) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, c := range cats {
		if strings.EqualFold(c.Name, s) {
			return c.ID
		}
	}
	return s
}

// --- list contents ---

func (m *appModel) setCategoryListItems() {
	items := make([]list.Item, len(m.cats))
	for i, c := range m.cats {
		items[i] = categoryItem{cat: c, position: i + 1}
	}
	m.data.SetItems(items)
}

func (m *appModel) setMenuItemListItems() {
	items := make([]list.Item, len(m.items))
	for i, it := range m.items {
		items[i] = menuItemItem{item: it, cats: m.itemCats}
	}
	m.data.SetItems(items)
}

func (m *appModel) setUserListItems() {
	items := make([]list.Item, len(m.users))
	for i, u := range m.users {
		items[i] = userItem{user: u}
	}
	m.data.SetItems(items)
}

func (m *appModel) setImageListItems() {
	items := make([]list.Item, len(m.imgs))
	for i, img := range m.imgs {
		items[i] = imageItem{img: img, cats: m.imgCats}
	}
	m.data.SetItems(items)
}

// --- status / errors ---

func (m *appModel) setStatus(text string, isErr bool) tea.Cmd {
	m.statusText, m.statusErr = text, isErr
	m.statusSeq++
	return statusExpireCmd(m.statusSeq)
}

// fail routes an error to the status line. An unauthorized failure means the
// session store already tore the session down, so the panel returns to the
// sign-in screen.
func (m *appModel) fail(err error) tea.Cmd {
	if ae, ok := api.AsError(err); ok && ae.Kind == api.FailureUnauthorized {
		m.view = viewLogin
		m.form, m.formKind, m.editID = nil, formNone, ""
		m.confirm = nil
		m.resetLoginForm("Session expired. Please sign in again.")
		return nil
	}
	return m.setStatus(err.Error(), true)
}

func (m *appModel) greeting() string {
	if u := m.store.Current().User; u != nil {
		return "Signed in as " + u.Username
	}
	return "Signed in"
}

// --- layout ---

const chromeLines = 4 // header (2) + status (1) + footer (1)

func (m *appModel) resizeLists() {
	h := m.height - chromeLines
	if h < 3 {
		h = 3
	}
	m.home.SetSize(m.width, h)
	m.data.SetSize(m.width, h)
}

func (m *appModel) View() string {
	if m.width == 0 {
		return ""
	}

	if m.confirm != nil {
		return renderConfirmModal(m.confirm.prompt, m.width, m.height)
	}
	if m.form != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
	}

	header := m.renderHeader()
	status := m.renderStatus()
	footer := styleMuted().Render(m.footerHint())

	var body string
	switch m.view {
	case viewLogin:
		body = lipgloss.Place(m.width, m.height-chromeLines, lipgloss.Center, lipgloss.Center, m.loginForm.View())
	case viewHome:
		body = m.home.View()
	case viewProfile:
		body = m.renderProfile()
	case viewHelp:
		body = m.helpBody
	default:
		body = m.data.View()
	}

	return header + "\n" + body + "\n" + status + "\n" + footer
}

func (m *appModel) renderHeader() string {
	title := styleHeader().Render("Kale Café Admin")
	section := styleMuted().Render(" · " + m.sectionTitle())
	right := styleMuted().Render(m.client.BaseURL())
	line := title + section

	pad := m.width - lipgloss.Width(line) - lipgloss.Width(right)
	if pad > 1 {
		line += strings.Repeat(" ", pad) + right
	}
	line = ansi.Truncate(line, m.width, "…")
	rule := styleMuted().Render(strings.Repeat("─", max(m.width, 1)))
	return line + "\n" + rule
}

func (m *appModel) sectionTitle() string {
	switch m.view {
	case viewLogin:
		return "sign in"
	case viewHome:
		return "home"
	case viewCategories:
		return fmt.Sprintf("categories (%s)", m.kind)
	case viewItems:
		return fmt.Sprintf("items (%s)", m.kind)
	case viewUsers:
		return "users"
	case viewImages:
		return fmt.Sprintf("images (%s)", m.scope)
	case viewProfile:
		return "profile"
	case viewHelp:
		return "help"
	}
	return ""
}

func (m *appModel) renderStatus() string {
	if m.busy {
		return m.spin.View() + " " + styleMuted().Render("working…")
	}
	if m.statusText == "" {
		return ""
	}
	if m.statusErr {
		return styleError().Render(m.statusText)
	}
	return styleSuccess().Render(m.statusText)
}

func (m *appModel) footerHint() string {
	switch m.view {
	case viewLogin:
		return "enter sign in · ctrl+c quit"
	case viewHome:
		return "enter open · / filter · L logout · q quit"
	case viewCategories:
		return "a add · e rename · d delete · J/K move · r reload · / filter · esc back"
	case viewItems:
		return "a add · e edit · d delete · r reload · / filter · esc back"
	case viewUsers:
		return "a add · e edit · d delete · r reload · / filter · esc back"
	case viewImages:
		return "a upload · d delete · r reload · / filter · esc back"
	case viewProfile:
		return "e edit · p change password · esc back"
	case viewHelp:
		return "esc back"
	}
	return ""
}

func (m *appModel) renderProfile() string {
	u := m.store.Current().User
	if u == nil {
		return styleMuted().Render("No profile loaded.")
	}
	rows := []string{
		styleHeader().Render(u.Username),
		"",
		styleMuted().Render("Email:  ") + u.Email,
		styleMuted().Render("Role:   ") + string(u.Role),
	}
	if u.LastLogin != nil {
		rows = append(rows, styleMuted().Render("Seen:   ")+u.LastLogin.Format("2006-01-02 15:04"))
	}
	body := strings.Join(rows, "\n")
	return lipgloss.Place(m.width, m.height-chromeLines, lipgloss.Center, lipgloss.Center, body)
}
