package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/aagag/internal/controller"
	"github.com/abelbrown/aagag/internal/i18n"
	"github.com/abelbrown/aagag/internal/logging"
	"github.com/abelbrown/aagag/internal/model"
	"github.com/abelbrown/aagag/internal/pager"
)

// mode selects which input receives key presses.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeTags
)

const statusTTL = 2 * time.Second

// App is the root Bubble Tea model.
// App does not fetch. It turns controller Requests into commands through
// load and receives the results as DatasetLoaded messages.
type App struct {
	browser *controller.Browser
	load    func(controller.Request) tea.Cmd
	tr      *i18n.Translator
	start   string
	now     func() time.Time

	mode       mode
	search     textinput.Model
	tagSearch  textinput.Model
	tagCursor  int
	spinner    spinner.Model
	cursor     int
	showDetail bool
	status     string
	statusSeq  int

	width  int
	height int
	ready  bool
}

// NewApp creates an App that opens region start. load executes a dataset
// request; a nil load leaves requests pending.
func NewApp(browser *controller.Browser, load func(controller.Request) tea.Cmd, tr *i18n.Translator, start string) App {
	if tr == nil {
		tr = i18n.Default()
	}

	search := textinput.New()
	search.Placeholder = tr.T("search_placeholder")
	search.Prompt = "/ "
	search.PromptStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	search.CharLimit = 64

	tagSearch := textinput.New()
	tagSearch.Placeholder = tr.T("tag_search_placeholder")
	tagSearch.Prompt = "# "
	tagSearch.PromptStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	tagSearch.CharLimit = 32

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return App{
		browser:   browser,
		load:      load,
		tr:        tr,
		start:     start,
		now:       time.Now,
		search:    search,
		tagSearch: tagSearch,
		spinner:   s,
	}
}

// Init selects the start region.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.request(a.browser.SelectRegion(a.start)), a.spinner.Tick)
}

func (a App) request(req controller.Request) tea.Cmd {
	if a.load == nil {
		return nil
	}
	return a.load(req)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch a.mode {
		case modeSearch:
			return a.updateSearch(msg)
		case modeTags:
			return a.updateTags(msg)
		}
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.Width = msg.Width - 20
		a.tagSearch.Width = msg.Width - 20
		a.ready = true
		return a, nil

	case DatasetLoaded:
		v, applied := a.browser.Receive(msg.Loaded)
		if !applied {
			logging.Debug("Dropped stale dataset", "region", msg.Request.Region, "token", msg.Request.Token)
			return a, nil
		}
		a.cursor = 0
		a.tagCursor = 0
		if v.State == controller.StateReady && !v.Persistent {
			return a.setStatus(a.tr.T("favorites_memory"))
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case statusCleared:
		if msg.seq == a.statusSeq {
			a.status = ""
		}
		return a, nil
	}

	return a, nil
}

// handleKeyMsg processes keyboard input in browse mode.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Down):
		v := a.browser.View()
		if a.cursor < len(v.Items)-1 {
			a.cursor++
		}
		return a.maybeLoadMore(v)

	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case key.Matches(msg, keys.Top):
		a.cursor = 0
		return a, nil

	case key.Matches(msg, keys.Bottom):
		v := a.browser.View()
		if len(v.Items) > 0 {
			a.cursor = len(v.Items) - 1
		}
		return a.maybeLoadMore(v)

	case key.Matches(msg, keys.Detail):
		a.showDetail = !a.showDetail
		return a, nil

	case key.Matches(msg, keys.Search):
		a.mode = modeSearch
		a.search.SetValue(a.browser.View().Query)
		a.search.CursorEnd()
		cmd := a.search.Focus()
		return a, cmd

	case key.Matches(msg, keys.Tags):
		a.mode = modeTags
		a.tagCursor = 0
		a.tagSearch.SetValue(a.browser.View().TagQuery)
		cmd := a.tagSearch.Focus()
		return a, cmd

	case key.Matches(msg, keys.PrevRegion), key.Matches(msg, keys.NextRegion):
		delta := 1
		if key.Matches(msg, keys.PrevRegion) {
			delta = -1
		}
		next := a.browser.Catalog().Neighbor(a.browser.Region().Key, delta)
		if next.Key == a.browser.Region().Key {
			return a, nil
		}
		a.cursor = 0
		a.showDetail = false
		a.tagSearch.SetValue("")
		return a, a.request(a.browser.SelectRegion(next.Key))

	case key.Matches(msg, keys.Favorite):
		v := a.browser.View()
		if a.cursor >= len(v.Items) {
			return a, nil
		}
		v = a.browser.ToggleFavorite(v.Items[a.cursor].Name)
		a.cursor = clampCursor(a.cursor, len(v.Items))
		return a.setStatus(a.tr.Count("favorites_count", v.RegionFavorites))

	case key.Matches(msg, keys.FavoritesOnly):
		a.browser.SetFavoritesOnly(!a.browser.View().FavoritesOnly)
		a.cursor = 0
		return a, nil

	case key.Matches(msg, keys.Sort):
		preset := model.NextSortPreset(a.browser.View().Sort)
		a.browser.SetSort(preset.Option())
		a.cursor = 0
		return a.setStatus(a.tr.SortLabel(preset.Value))

	case key.Matches(msg, keys.Shuffle):
		a.browser.Shuffle()
		a.cursor = 0
		return a.setStatus(a.tr.T("shuffle"))

	case key.Matches(msg, keys.Retry):
		if a.browser.View().State != controller.StateError {
			return a, nil
		}
		return a, a.request(a.browser.Retry())

	case key.Matches(msg, keys.Escape):
		if a.showDetail {
			a.showDetail = false
			return a, nil
		}
		v := a.browser.View()
		if v.Query != "" || len(v.SelectedTags) > 0 {
			a.browser.SetQuery("")
			a.browser.ClearTags()
			a.cursor = 0
		}
		return a, nil
	}

	return a, nil
}

// updateSearch feeds keys to the search input and applies the query live.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		a.mode = modeBrowse
		a.search.Blur()
		return a, nil
	case key.Matches(msg, keys.Escape):
		a.mode = modeBrowse
		a.search.Blur()
		a.search.SetValue("")
		a.browser.SetQuery("")
		a.cursor = 0
		return a, nil
	}

	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if a.search.Value() != before {
		a.browser.SetQuery(a.search.Value())
		a.cursor = 0
	}
	return a, cmd
}

// updateTags drives the tag picker.
func (a App) updateTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.browser.View()
	switch {
	case key.Matches(msg, keys.Escape):
		a.mode = modeBrowse
		a.tagSearch.Blur()
		return a, nil
	case key.Matches(msg, keys.Enter):
		if a.tagCursor < len(v.AvailableTags) {
			a.browser.ToggleTag(v.AvailableTags[a.tagCursor])
			a.cursor = 0
		}
		return a, nil
	case key.Matches(msg, keys.ClearTags):
		a.browser.ClearTags()
		a.cursor = 0
		return a, nil
	case msg.Type == tea.KeyDown:
		if a.tagCursor < len(v.AvailableTags)-1 {
			a.tagCursor++
		}
		return a, nil
	case msg.Type == tea.KeyUp:
		if a.tagCursor > 0 {
			a.tagCursor--
		}
		return a, nil
	}

	before := a.tagSearch.Value()
	var cmd tea.Cmd
	a.tagSearch, cmd = a.tagSearch.Update(msg)
	if a.tagSearch.Value() != before {
		a.browser.SetTagQuery(a.tagSearch.Value())
		a.tagCursor = 0
	}
	return a, cmd
}

// maybeLoadMore reveals the next page when the cursor nears the end.
func (a App) maybeLoadMore(v controller.View) (tea.Model, tea.Cmd) {
	if v.HasMore && pager.NearEnd(a.cursor, len(v.Items)) {
		if _, advanced := a.browser.LoadMore(a.now()); advanced {
			logging.Debug("Loaded next page", "region", v.Region.Key, "page", v.Page+1)
		}
	}
	return a, nil
}

func (a App) setStatus(text string) (tea.Model, tea.Cmd) {
	a.statusSeq++
	a.status = text
	seq := a.statusSeq
	return a, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusCleared{seq: seq}
	})
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return a.tr.T("loading")
	}
	return a.render(a.browser.View())
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Status returns the transient status line (for testing).
func (a App) Status() string {
	return a.status
}
