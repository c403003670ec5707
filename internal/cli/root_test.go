package cli

import (
	"testing"
	"time"

	"kale-admin/internal/api"
	"kale-admin/internal/model"
)

func TestRootCommandRegistration(t *testing.T) {
	root := NewRootCmd()

	want := []string{
		"login", "logout", "whoami", "profile", "seed",
		"categories", "foods", "drinks", "desserts", "hookahs",
		"users", "images", "export",
	}
	have := map[string]bool{}
	for _, c := range root.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}

func TestParseKindFlag(t *testing.T) {
	k, err := parseKindFlag(" Drinks ")
	if err != nil || k != model.KindDrinks {
		t.Fatalf("parseKindFlag(Drinks) = (%q, %v)", k, err)
	}
	if _, err := parseKindFlag("snacks"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestParseScopeFlag(t *testing.T) {
	s, err := parseScopeFlag("HOOKAH")
	if err != nil || s != api.ScopeHookah {
		t.Fatalf("parseScopeFlag(HOOKAH) = (%q, %v)", s, err)
	}
	if _, err := parseScopeFlag("foods"); err == nil {
		t.Fatalf("expected error: image scopes are singular")
	}
}

func TestParseRoleFlag(t *testing.T) {
	r, err := parseRoleFlag("Manager")
	if err != nil || r != model.RoleManager {
		t.Fatalf("parseRoleFlag(Manager) = (%q, %v)", r, err)
	}
	if _, err := parseRoleFlag("owner"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestItemPayloadFromFlags(t *testing.T) {
	p, err := itemPayloadFromFlags(" Mint tea ", "c1", "fresh", 12.5)
	if err != nil {
		t.Fatalf("itemPayloadFromFlags: %v", err)
	}
	if p.Name != "Mint tea" || p.Category != "c1" || p.Price != 12.5 {
		t.Fatalf("payload = %+v", p)
	}

	if _, err := itemPayloadFromFlags("", "c1", "", 1); err == nil {
		t.Fatalf("expected error for missing name")
	}
	if _, err := itemPayloadFromFlags("Tea", "", "", 1); err == nil {
		t.Fatalf("expected error for missing category")
	}
	if _, err := itemPayloadFromFlags("Tea", "c1", "", -1); err == nil {
		t.Fatalf("expected error for negative price")
	}
}

func TestExportPath(t *testing.T) {
	if got := exportPath("custom.xlsx", "foods"); got != "custom.xlsx" {
		t.Fatalf("explicit path = %q", got)
	}
	got := exportPath("", "foods")
	want := "foods-" + time.Now().Format("2006-01-02") + ".xlsx"
	if got != want {
		t.Fatalf("default path = %q, want %q", got, want)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("KALE_TEST_ENVOR", "set")
	if got := envOr("KALE_TEST_ENVOR", "fallback"); got != "set" {
		t.Fatalf("envOr = %q", got)
	}
	if got := envOr("KALE_TEST_ENVOR_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("envOr = %q", got)
	}
}
