package api

import (
	"net/url"

	"kale-admin/internal/model"
)

// Endpoint paths mirror the menu service's route table verbatim, including its
// casing quirks (hookah item routes are all-lowercase, hookah category and
// image routes are not).

const (
	epLogin          = "/api/auth/login"
	epProfile        = "/api/auth/profile"
	epChangePassword = "/api/auth/change-password"
	epSeedAdmin      = "/api/auth/seed-admin"

	epUsers = "/api/users"

	epCategories     = "/api/getCategories"
	epAddCategory    = "/api/addCategory"
	epSeedCategories = "/api/seedCategories"

	epSearchDrink = "/api/searchDrink"
)

func epUserByID(id string) string       { return epUsers + "/" + url.PathEscape(id) }
func epUpdateCategory(id string) string { return "/api/updateCategory/" + url.PathEscape(id) }
func epDeleteCategory(id string) string { return "/api/deleteCategory/" + url.PathEscape(id) }

// kindSegment is the route segment for one menu kind's item routes ("Food",
// "Drink", "Dessert", or the service's lowercase "hookah").
func kindSegment(k model.MenuKind) string {
	switch k {
	case model.KindFoods:
		return "Food"
	case model.KindDrinks:
		return "Drink"
	case model.KindDesserts:
		return "Dessert"
	case model.KindHookahs:
		return "hookah"
	}
	return string(k)
}

// categorySegment is the segment for the per-kind category routes. The service
// lowercases hookah everywhere except here: /api/getHookahCategories.
func categorySegment(k model.MenuKind) string {
	if k == model.KindHookahs {
		return "Hookah"
	}
	return kindSegment(k)
}

func epKindCategories(k model.MenuKind) string {
	return "/api/get" + categorySegment(k) + "Categories"
}

func epMenuItems(k model.MenuKind) string { return "/api/get" + kindSegment(k) + "s" }
func epAddMenuItem(k model.MenuKind) string {
	return "/api/add" + kindSegment(k)
}
func epUpdateMenuItem(k model.MenuKind, id string) string {
	return "/api/update" + kindSegment(k) + "/" + url.PathEscape(id)
}
func epDeleteMenuItem(k model.MenuKind, id string) string {
	return "/api/delete" + kindSegment(k) + "/" + url.PathEscape(id)
}

// ImageScope selects one of the five image collections.
type ImageScope string

const (
	ScopeFood    ImageScope = "food"
	ScopeDrink   ImageScope = "drink"
	ScopeDessert ImageScope = "dessert"
	ScopeHookah  ImageScope = "hookah"
	ScopeSpecial ImageScope = "special"
)

func ImageScopes() []ImageScope {
	return []ImageScope{ScopeFood, ScopeDrink, ScopeDessert, ScopeHookah, ScopeSpecial}
}

func ParseImageScope(s string) (ImageScope, bool) {
	switch ImageScope(s) {
	case ScopeFood, ScopeDrink, ScopeDessert, ScopeHookah, ScopeSpecial:
		return ImageScope(s), true
	}
	return "", false
}

func ImageScopeForKind(k model.MenuKind) ImageScope {
	switch k {
	case model.KindFoods:
		return ScopeFood
	case model.KindDrinks:
		return ScopeDrink
	case model.KindDesserts:
		return ScopeDessert
	case model.KindHookahs:
		return ScopeHookah
	}
	return ScopeSpecial
}

func scopeSegment(s ImageScope) string {
	switch s {
	case ScopeFood:
		return "Food"
	case ScopeDrink:
		return "Drink"
	case ScopeDessert:
		return "Dessert"
	case ScopeHookah:
		return "Hookah"
	}
	return "Special"
}

func epImages(s ImageScope) string   { return "/api/get" + scopeSegment(s) + "Images" }
func epAddImage(s ImageScope) string { return "/api/add" + scopeSegment(s) + "Image" }
func epDeleteImage(s ImageScope, id string) string {
	return "/api/delete" + scopeSegment(s) + "Image/" + url.PathEscape(id)
}
