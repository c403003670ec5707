package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kale-admin/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL
	return New(opts)
}

func TestBearerTokenAttached(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, Options{TokenSource: func() string { return "  tok-123  " }})

	if _, err := c.Categories(context.Background()); err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want Bearer tok-123", got)
	}
}

func TestNoBearerHeaderWithoutToken(t *testing.T) {
	var got string
	var present bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}, Options{TokenSource: func() string { return "" }})

	if _, err := c.Categories(context.Background()); err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if present {
		t.Fatalf("Authorization header sent without a token: %q", got)
	}
}

func TestStatusTranslation(t *testing.T) {
	cases := []struct {
		status  int
		kind    FailureKind
		message string
	}{
		{400, FailureBadRequest, "Invalid request"},
		{401, FailureUnauthorized, "Unauthorized access"},
		{403, FailureForbidden, "Access denied"},
		{404, FailureNotFound, "Resource not found"},
		{500, FailureServer, "Server error. Please try again later."},
		{503, FailureServer, "Server error. Please try again later."},
		{418, FailureUnknown, "Request failed (HTTP 418)"},
	}

	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"message":"boom"}`))
		}, Options{})

		_, err := c.Categories(context.Background())
		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		ae, ok := AsError(err)
		if !ok {
			t.Fatalf("status %d: error %T is not tagged", tc.status, err)
		}
		if ae.Kind != tc.kind {
			t.Fatalf("status %d: kind = %s, want %s", tc.status, ae.Kind, tc.kind)
		}
		if ae.Message != tc.message {
			t.Fatalf("status %d: message = %q, want %q", tc.status, ae.Message, tc.message)
		}
		if ae.HTTPStatus != tc.status {
			t.Fatalf("status %d: HTTPStatus = %d", tc.status, ae.HTTPStatus)
		}
		if ae.Detail != "boom" {
			t.Fatalf("status %d: detail = %q, want boom", tc.status, ae.Detail)
		}
	}
}

func TestUnauthorizedInvokesTeardownHook(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, Options{OnUnauthorized: func() { calls++ }})

	if _, err := c.Categories(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("OnUnauthorized calls = %d, want 1", calls)
	}
}

func TestForbiddenDoesNotInvokeTeardown(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, Options{OnUnauthorized: func() { calls++ }})

	if _, err := c.Categories(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if calls != 0 {
		t.Fatalf("OnUnauthorized calls = %d, want 0", calls)
	}
}

func TestConnectionFailureIsNetworkError(t *testing.T) {
	// Nothing listens on this port.
	c := New(Options{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Categories(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	ae, ok := AsError(err)
	if !ok || ae.Kind != FailureNetwork {
		t.Fatalf("err = %v, want network failure", err)
	}
	if ae.Message != "Network error. Please check your connection." {
		t.Fatalf("message = %q", ae.Message)
	}
}

func TestTimeoutIsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`[]`))
	}, Options{Timeout: 30 * time.Millisecond})

	_, err := c.Categories(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if ae, ok := AsError(err); !ok || ae.Kind != FailureNetwork {
		t.Fatalf("err = %v, want network failure", err)
	}
}

func TestLoginDecodesTokenAndUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		w.Write([]byte(`{"token":"tok","user":{"_id":"u1","username":"admin","role":"admin"}}`))
	}, Options{})

	res, err := c.Login(context.Background(), model.Credentials{Username: "admin", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok" || res.User.ID != "u1" || res.User.Username != "admin" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestUpdateProfileUnwrapsUserEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"_id":"u1","username":"renamed"}}`))
	}, Options{})

	u, err := c.UpdateProfile(context.Background(), ProfileUpdate{Username: "renamed"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.Username != "renamed" {
		t.Fatalf("username = %q", u.Username)
	}
}

func TestSearchDrinksEscapesQuery(t *testing.T) {
	var q string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/searchDrink" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q = r.URL.Query().Get("q")
		w.Write([]byte(`[]`))
	}, Options{})

	if _, err := c.SearchDrinks(context.Background(), " mint & tea "); err != nil {
		t.Fatalf("SearchDrinks: %v", err)
	}
	if q != "mint & tea" {
		t.Fatalf("q = %q, want %q", q, "mint & tea")
	}
}

func TestHookahEndpointsUseLowercaseSegment(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`[]`))
	}, Options{})

	if _, err := c.MenuItems(context.Background(), model.KindHookahs); err != nil {
		t.Fatalf("MenuItems: %v", err)
	}
	if path != "/api/gethookahs" {
		t.Fatalf("path = %s, want /api/gethookahs", path)
	}
}

func TestHookahCategoryEndpointIsCapitalized(t *testing.T) {
	// The service lowercases hookah on its item routes but not on its
	// category route.
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`[]`))
	}, Options{})

	if _, err := c.CategoriesByKind(context.Background(), model.KindHookahs); err != nil {
		t.Fatalf("CategoriesByKind: %v", err)
	}
	if path != "/api/getHookahCategories" {
		t.Fatalf("path = %s, want /api/getHookahCategories", path)
	}
}

func TestKindCategoryPaths(t *testing.T) {
	cases := []struct {
		kind model.MenuKind
		want string
	}{
		{model.KindFoods, "/api/getFoodCategories"},
		{model.KindDrinks, "/api/getDrinkCategories"},
		{model.KindDesserts, "/api/getDessertCategories"},
		{model.KindHookahs, "/api/getHookahCategories"},
	}
	for _, tc := range cases {
		if got := epKindCategories(tc.kind); got != tc.want {
			t.Fatalf("epKindCategories(%s) = %s, want %s", tc.kind, got, tc.want)
		}
	}
}
