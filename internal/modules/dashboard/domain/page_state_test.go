package domain

import (
	"net/url"
	"testing"
)

func TestPageStateSetTableReplacesView(t *testing.T) {
	t.Parallel()

	state := NewPageState("s1", "frontdesk", RoleFrontDesk)
	state.SetTable(TableView{Panel: "checkins", Rows: []Row{{Key: "a"}, {Key: "b"}}})
	state.SetTable(TableView{Panel: "checkins", Rows: []Row{{Key: "c"}}})

	view, ok := state.Table("checkins")
	if !ok {
		t.Fatal("expected checkins view")
	}
	if len(view.Rows) != 1 || view.Rows[0].Key != "c" {
		t.Fatalf("expected only the latest rows, got %+v", view.Rows)
	}
}

func TestPageStateRestoreKeepsOnlyUI(t *testing.T) {
	t.Parallel()

	state := NewPageState("s1", "admin", RoleAdmin)
	state.SetActiveTab("rooms")
	state.Select("delete-room", "7")
	state.Select("delete-user", "")

	ui := state.UI()
	restored := NewPageState("s1", "admin", RoleAdmin)
	restored.Restore(ui)

	if restored.UI().ActiveTab != "rooms" {
		t.Fatalf("expected active tab rooms, got %q", restored.UI().ActiveTab)
	}
	if restored.Selected("delete-room") != "7" {
		t.Fatalf("expected selection to survive, got %q", restored.Selected("delete-room"))
	}
	if len(restored.Panels()) != 0 {
		t.Fatal("views must not be restored")
	}

	state.Select("delete-room", "")
	if state.Selected("delete-room") != "" {
		t.Fatal("blank id should clear selection")
	}
}

func TestListQueryKeepsAllowedParams(t *testing.T) {
	t.Parallel()

	raw := url.Values{"date": {" 2024-06-01 "}, "page": {"3"}, "month": {""}}
	q := NewListQuery(raw, []string{"date", "month"})

	if q.Get("date") != "2024-06-01" {
		t.Fatalf("expected trimmed date, got %q", q.Get("date"))
	}
	if _, ok := q.Params["page"]; ok {
		t.Fatal("undeclared params must be dropped")
	}
	if _, ok := q.Params["month"]; ok {
		t.Fatal("blank params must be dropped")
	}
	if q.CanonicalKey() != "date=2024-06-01" {
		t.Fatalf("unexpected canonical key %q", q.CanonicalKey())
	}
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	s, err := NewSession(" tok ", `{"id":7,"username":"ravi","role":"payment-officer"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Role != RolePaymentOfficer || s.Profile.ID != "7" || s.Token != "tok" {
		t.Fatalf("unexpected session %+v", s)
	}
	if s.ID != SessionKey("tok") {
		t.Fatal("session id should derive from the token")
	}

	if _, err := NewSession("tok", "{not json"); err == nil {
		t.Fatal("expected malformed userInfo error")
	}
}
