package model

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// MenuKind is the type-scoped namespace for categories, menu items, and images.
type MenuKind string

const (
	KindFoods    MenuKind = "foods"
	KindDrinks   MenuKind = "drinks"
	KindDesserts MenuKind = "desserts"
	KindHookahs  MenuKind = "hookahs"
)

func Kinds() []MenuKind {
	return []MenuKind{KindFoods, KindDrinks, KindDesserts, KindHookahs}
}

func ParseKind(s string) (MenuKind, bool) {
	switch MenuKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindFoods:
		return KindFoods, true
	case KindDrinks:
		return KindDrinks, true
	case KindDesserts:
		return KindDesserts, true
	case KindHookahs:
		return KindHookahs, true
	}
	return "", false
}

// ArabicKindName mirrors the labels the menu service uses in exports.
func ArabicKindName(k MenuKind) string {
	switch k {
	case KindFoods:
		return "مأكولات"
	case KindDrinks:
		return "مشروبات"
	case KindDesserts:
		return "حلويات"
	case KindHookahs:
		return "أراكيل"
	}
	return string(k)
}

type Category struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Type      MenuKind   `json:"type"`
	Order     int        `json:"order"`
	IsActive  bool       `json:"isActive"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// SortCategoriesByOrder sorts ascending by Order. The sort is stable so rows
// with duplicate or missing order values keep their fetch order; that fetch
// order is the display order the operator sees and moves rows within.
func SortCategoriesByOrder(cats []Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Order < cats[j].Order
	})
}

// CategoryRef is a category reference that the service returns inconsistently:
// sometimes a bare id string, sometimes the populated category object.
// It is normalized here, once, at the wire boundary, so no other package has
// to care which shape arrived.
type CategoryRef struct {
	id   string
	name string
}

func NewCategoryRef(id string) CategoryRef { return CategoryRef{id: strings.TrimSpace(id)} }

func (r CategoryRef) ID() string   { return r.id }
func (r CategoryRef) Name() string { return r.name }
func (r CategoryRef) IsZero() bool { return r.id == "" && r.name == "" }

// DisplayName resolves the reference against a fetched category list,
// preferring the embedded name when the service populated it.
func (r CategoryRef) DisplayName(cats []Category) string {
	if r.name != "" {
		return r.name
	}
	for _, c := range cats {
		if c.ID == r.id {
			return c.Name
		}
	}
	return r.id
}

func (r *CategoryRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = CategoryRef{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = CategoryRef{id: strings.TrimSpace(id)}
		return nil
	}
	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*r = CategoryRef{id: strings.TrimSpace(obj.ID), name: strings.TrimSpace(obj.Name)}
	return nil
}

// MarshalJSON always re-emits the bare id; that is the shape mutation
// endpoints accept.
func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if r.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

type MenuItem struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Price       float64     `json:"price"`
	Category    CategoryRef `json:"category"`
	Description string      `json:"description,omitempty"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time  `json:"updatedAt,omitempty"`
}

type ImageAsset struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
	// Kind-scoped images use "imagePath"; special images use "image".
	ImagePath string      `json:"imagePath,omitempty"`
	Image     string      `json:"image,omitempty"`
	Category  CategoryRef `json:"category,omitempty"`
	Size      int64       `json:"size,omitempty"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
}

// StoredFilename returns whichever filename field the service filled in.
func (a ImageAsset) StoredFilename() string {
	if strings.TrimSpace(a.ImagePath) != "" {
		return a.ImagePath
	}
	return a.Image
}

type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// Password is write-only; the service never echoes it back.
	Password  string     `json:"password,omitempty"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the authenticated-operator snapshot owned by the session store.
// Authenticated is derived: it is true exactly when both Token and User are set.
type Session struct {
	Token string
	User  *User
}

func (s Session) Authenticated() bool { return strings.TrimSpace(s.Token) != "" && s.User != nil }
