package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/aagag/internal/catalog"
	"github.com/abelbrown/aagag/internal/controller"
	"github.com/abelbrown/aagag/internal/favorites"
	"github.com/abelbrown/aagag/internal/i18n"
	"github.com/abelbrown/aagag/internal/model"
	"github.com/abelbrown/aagag/internal/store"
)

var testCatalog = catalog.Catalog{
	{Key: "seoul", Source: "서울"},
	{Key: "incheon", Source: "인천"},
}

// mockLoader records requests and answers them from a fixed set of datasets.
type mockLoader struct {
	datasets map[string]*model.Dataset
	fail     error
	requests []controller.Request
}

func (m *mockLoader) load(req controller.Request) tea.Cmd {
	m.requests = append(m.requests, req)
	return func() tea.Msg {
		if m.fail != nil {
			return DatasetLoaded{controller.Loaded{Request: req, Err: m.fail}}
		}
		return DatasetLoaded{controller.Loaded{Request: req, Dataset: m.datasets[req.Region]}}
	}
}

func dataset(source string, n int) *model.Dataset {
	ds := &model.Dataset{Metadata: model.Metadata{Source: source, ParsedAt: "2025-06-01T09:30:00"}}
	for i := 0; i < n; i++ {
		tags := []string{"한식"}
		if i%2 == 1 {
			tags = append(tags, "주점")
		}
		ds.Data = append(ds.Data, model.Restaurant{
			Name: fmt.Sprintf("%s %02d", source, i),
			Tags: tags,
		})
	}
	return ds
}

func newTestApp(t *testing.T) (App, *mockLoader) {
	t.Helper()
	loader := &mockLoader{datasets: map[string]*model.Dataset{
		"seoul":   dataset("서울", 10),
		"incheon": dataset("인천", 3),
	}}
	b := controller.New(controller.Options{
		Catalog:      testCatalog,
		Favorites:    favorites.Open(store.NewMemory()),
		PageSize:     4,
		LoadInterval: time.Millisecond,
		Seed:         7,
	})
	app := NewApp(b, loader.load, i18n.New("en"), "seoul")
	return app, loader
}

// run executes cmd and feeds any DatasetLoaded it produces back into app.
func run(app App, cmd tea.Cmd) App {
	if cmd == nil {
		return app
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			app = run(app, c)
		}
	case DatasetLoaded:
		next, _ := app.Update(msg)
		app = next.(App)
	}
	return app
}

func send(app App, msg tea.Msg) (App, tea.Cmd) {
	next, cmd := app.Update(msg)
	return next.(App), cmd
}

func press(app App, keys ...string) App {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+r":
			msg = tea.KeyMsg{Type: tea.KeyCtrlR}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var cmd tea.Cmd
		app, cmd = send(app, msg)
		// Only loads are executed; other commands are timers and blinks.
		if loadKeys[k] {
			app = run(app, cmd)
		}
	}
	return app
}

var loadKeys = map[string]bool{"[": true, "]": true, "r": true}

func started(t *testing.T) (App, *mockLoader) {
	t.Helper()
	app, loader := newTestApp(t)
	app = run(app, app.Init())
	app, _ = send(app, tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, loader
}

func TestAppInitLoadsStartRegion(t *testing.T) {
	app, loader := started(t)

	if len(loader.requests) != 1 || loader.requests[0].Region != "seoul" {
		t.Fatalf("expected one seoul request, got %+v", loader.requests)
	}
	v := app.browser.View()
	if v.State != controller.StateReady {
		t.Fatalf("expected ready state, got %v", v.State)
	}
	if len(v.Items) != 4 || v.Total != 10 {
		t.Errorf("expected 4 of 10 visible, got %d of %d", len(v.Items), v.Total)
	}
}

func TestAppInitNilLoad(t *testing.T) {
	b := controller.New(controller.Options{Catalog: testCatalog, Seed: 1})
	app := NewApp(b, nil, i18n.New("en"), "seoul")
	app = run(app, app.Init())

	if app.browser.View().State != controller.StateLoading {
		t.Error("without a loader the region should stay loading")
	}
}

func TestAppNavigationLoadsMore(t *testing.T) {
	app, _ := started(t)

	app = press(app, "j")
	if app.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", app.Cursor())
	}
	if n := len(app.browser.View().Items); n != 8 {
		t.Errorf("moving near the end should reveal a page, got %d items", n)
	}

	app = press(app, "k", "k")
	if app.Cursor() != 0 {
		t.Errorf("cursor should stop at 0, got %d", app.Cursor())
	}

	app = press(app, "G")
	if app.Cursor() != 7 {
		t.Errorf("expected cursor at last shown row, got %d", app.Cursor())
	}
}

func TestAppStaleLoadDropped(t *testing.T) {
	app, loader := newTestApp(t)
	app, _ = send(app, tea.WindowSizeMsg{Width: 80, Height: 24})

	// Select seoul but hold the response.
	first := app.browser.SelectRegion("seoul")
	held := loader.load(first)

	app = press(app, "]")
	if app.browser.Region().Key != "incheon" {
		t.Fatalf("expected incheon, got %q", app.browser.Region().Key)
	}

	app, _ = send(app, held())
	v := app.browser.View()
	if v.Region.Key != "incheon" || v.Total != 3 {
		t.Errorf("stale seoul load overwrote incheon: %+v", v.Region)
	}
}

func TestAppSearchMode(t *testing.T) {
	app, _ := started(t)

	app = press(app, "/", "0", "3")
	if app.mode != modeSearch {
		t.Fatal("expected search mode")
	}
	v := app.browser.View()
	if v.Query != "03" || v.Total != 1 {
		t.Errorf("expected one match for 03, got query %q total %d", v.Query, v.Total)
	}

	app = press(app, "enter")
	if app.mode != modeBrowse || app.browser.View().Query != "03" {
		t.Error("enter should leave search mode and keep the query")
	}

	app = press(app, "/", "esc")
	if app.browser.View().Query != "" {
		t.Error("esc in search mode should clear the query")
	}
}

func TestAppTagPicker(t *testing.T) {
	app, _ := started(t)

	app = press(app, "t")
	if app.mode != modeTags {
		t.Fatal("expected tag mode")
	}
	v := app.browser.View()
	if len(v.AvailableTags) != 2 {
		t.Fatalf("expected 2 tags, got %v", v.AvailableTags)
	}

	// Tags are collated: 주점 before 한식.
	app = press(app, "enter")
	v = app.browser.View()
	if len(v.SelectedTags) != 1 || v.SelectedTags[0] != "주점" || v.Total != 5 {
		t.Errorf("expected 주점 selected with 5 results, got %v / %d", v.SelectedTags, v.Total)
	}

	app = press(app, "한")
	if got := app.browser.View().AvailableTags; len(got) != 1 || got[0] != "한식" {
		t.Errorf("tag query should narrow the picker, got %v", got)
	}

	app = press(app, "ctrl+r", "esc")
	if app.mode != modeBrowse || len(app.browser.View().SelectedTags) != 0 {
		t.Error("ctrl+r should clear tags and esc close the picker")
	}
}

func TestAppToggleFavorite(t *testing.T) {
	app, _ := started(t)

	name := app.browser.View().Items[0].Name
	app = press(app, "f")
	v := app.browser.View()
	if !v.Favorite[0] || v.RegionFavorites != 1 {
		t.Fatalf("expected %q to become a favorite", name)
	}
	if !strings.Contains(app.Status(), "1") {
		t.Errorf("expected favorites count in status, got %q", app.Status())
	}

	app = press(app, "F")
	v = app.browser.View()
	if !v.FavoritesOnly || v.Total != 1 || v.Items[0].Name != name {
		t.Errorf("favorites-only should show just %q, got %d", name, v.Total)
	}

	app = press(app, "f")
	if v := app.browser.View(); v.State != controller.StateEmpty {
		t.Errorf("removing the last favorite should empty the list, got %v", v.State)
	}
}

func TestAppSortCycle(t *testing.T) {
	app, _ := started(t)

	app = press(app, "s")
	v := app.browser.View()
	if v.Sort.Preset() != "name-asc" {
		t.Fatalf("expected name-asc, got %q", v.Sort.Preset())
	}
	if v.Items[0].Name != "서울 00" {
		t.Errorf("expected 서울 00 first, got %q", v.Items[0].Name)
	}
	if app.Status() != "Name A-Z" {
		t.Errorf("expected sort label in status, got %q", app.Status())
	}

	app = press(app, "s", "s", "s", "s")
	if p := app.browser.View().Sort.Preset(); p != "none" {
		t.Errorf("sort should wrap to none, got %q", p)
	}
}

func TestAppErrorAndRetry(t *testing.T) {
	app, loader := newTestApp(t)
	loader.fail = errors.New("boom")
	app = run(app, app.Init())
	app, _ = send(app, tea.WindowSizeMsg{Width: 80, Height: 24})

	if app.browser.View().State != controller.StateError {
		t.Fatal("expected error state")
	}
	if !strings.Contains(app.View(), "Could not load data") {
		t.Error("error title missing from view")
	}

	loader.fail = nil
	app = press(app, "r")
	if len(loader.requests) != 2 {
		t.Errorf("expected a retry request, got %d requests", len(loader.requests))
	}
	if app.browser.View().State != controller.StateReady {
		t.Error("retry should recover")
	}

	// r outside the error state does nothing.
	app = press(app, "r")
	if len(loader.requests) != 2 {
		t.Error("retry should only fire in the error state")
	}
}

func TestAppRegionSwitchKeepsQuery(t *testing.T) {
	app, _ := started(t)

	app = press(app, "/", "0", "enter", "]")
	v := app.browser.View()
	if v.Region.Key != "incheon" || v.Query != "0" {
		t.Errorf("expected incheon with query kept, got %q / %q", v.Region.Key, v.Query)
	}
	if v.Total != 3 {
		t.Errorf("all incheon entries contain 0, got %d", v.Total)
	}

	app = press(app, "]")
	if app.browser.Region().Key != "seoul" {
		t.Error("region selection should wrap")
	}
}

func TestAppViewRendering(t *testing.T) {
	app, _ := started(t)

	out := app.View()
	first := app.browser.View().Items[0].Name
	for _, want := range []string{"Aagag Sekki", "서울", "인천", first, "10 restaurants in 서울"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	app = press(app, "enter")
	if !app.showDetail {
		t.Error("enter should open the detail panel")
	}
	app = press(app, "esc")
	if app.showDetail {
		t.Error("esc should close the detail panel")
	}
}

func TestAppViewBeforeResize(t *testing.T) {
	app, _ := newTestApp(t)
	if app.View() != "Loading data..." {
		t.Errorf("expected loading text, got %q", app.View())
	}
}

func TestAppQuit(t *testing.T) {
	app, _ := started(t)
	_, cmd := send(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestStatusClearedBySequence(t *testing.T) {
	app, _ := started(t)
	app = press(app, "x")
	if app.Status() == "" {
		t.Fatal("shuffle should set a status")
	}

	app, _ = send(app, statusCleared{seq: app.statusSeq - 1})
	if app.Status() == "" {
		t.Error("an older clear should not drop the newer status")
	}
	app, _ = send(app, statusCleared{seq: app.statusSeq})
	if app.Status() != "" {
		t.Error("matching clear should drop the status")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("가나다라마", 3); got != "가나…" {
		t.Errorf("expected 가나…, got %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged, got %q", got)
	}
}
