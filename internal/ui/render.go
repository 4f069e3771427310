package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/aagag/internal/controller"
	"github.com/abelbrown/aagag/internal/i18n"
	"github.com/abelbrown/aagag/internal/model"
)

// maxTagRows caps the tag picker height.
const maxTagRows = 8

func (a App) render(v controller.View) string {
	var sections []string
	sections = append(sections, a.renderHeader(v))
	sections = append(sections, a.renderFilterBar(v))

	var detail string
	if a.showDetail && v.State == controller.StateReady {
		if c := clampCursor(a.cursor, len(v.Items)); c < len(v.Items) {
			detail = renderDetail(v.Items[c], v.Favorite[c], a.width, a.tr)
		}
	}
	var picker string
	if a.mode == modeTags {
		picker = a.renderTagPicker(v)
	}

	status := a.renderStatusBar(v)
	used := lipgloss.Height(sections[0]) + lipgloss.Height(sections[1]) + lipgloss.Height(status)
	if picker != "" {
		used += lipgloss.Height(picker)
	}
	if detail != "" {
		used += lipgloss.Height(detail)
	}
	height := max(a.height-used, 1)

	sections = append(sections, a.renderBody(v, height))
	if picker != "" {
		sections = append(sections, picker)
	}
	if detail != "" {
		sections = append(sections, detail)
	}
	sections = append(sections, status)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the title and the region selector.
func (a App) renderHeader(v controller.View) string {
	title := TitleBar.Render(a.tr.T("app_title"))
	tabs := make([]string, 0, len(a.browser.Catalog()))
	for _, r := range a.browser.Catalog() {
		style := RegionTab
		if r.Key == v.Region.Key {
			style = RegionTabActive
		}
		tabs = append(tabs, style.Render(r.Source))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, append([]string{title, " "}, tabs...)...)
}

// renderFilterBar shows the search input, the selected tags and the count.
func (a App) renderFilterBar(v controller.View) string {
	var left string
	switch {
	case a.mode == modeSearch:
		left = a.search.View()
	case v.Query != "":
		left = "/ " + v.Query
	default:
		left = StatusBarText.Render(a.search.Placeholder)
	}
	for _, tag := range v.SelectedTags {
		left += " " + SelectedTag.Render("#"+tag)
	}
	if v.FavoritesOnly {
		left += " " + FavoriteMark.Render("♥ "+a.tr.Tf("favorites_only", i18n.Data{"Source": v.Source}))
	}

	count := ""
	if v.State == controller.StateReady || v.State == controller.StateEmpty {
		count = FilterBarCount.Render(a.tr.Tf("result_count", i18n.Data{"Source": v.Source, "Count": v.Total}))
	}
	padding := max(a.width-lipgloss.Width(left)-lipgloss.Width(count)-2, 1)
	return FilterBar.Width(a.width).Render(left + strings.Repeat(" ", padding) + count)
}

// renderBody renders the result area for the view state.
func (a App) renderBody(v controller.View, height int) string {
	switch v.State {
	case controller.StateLoading:
		return HelpStyle.Render(a.spinner.View() + " " + a.tr.T("loading"))
	case controller.StateError:
		return ErrorStyle.Render(a.tr.T("error_title")) + "\n" +
			HelpStyle.Render(v.Err+"\n\n[r] "+a.tr.T("retry"))
	case controller.StateEmpty:
		return HelpStyle.Render(a.tr.T("no_results") + "\n" + a.tr.T("no_results_hint"))
	}
	return RenderList(v, clampCursor(a.cursor, len(v.Items)), a.width, height, a.tr)
}

// RenderList renders the visible entries with a footer line.
func RenderList(v controller.View, cursor, width, height int, tr *i18n.Translator) string {
	var b strings.Builder
	available := max(height-1, 1)
	offset := 0
	if cursor >= available {
		offset = cursor - available + 1
	}
	end := min(offset+available, len(v.Items))
	for i := offset; i < end; i++ {
		b.WriteString(renderItemLine(v.Items[i], v.Favorite[i], i == cursor, width))
		b.WriteString("\n")
	}

	footer := tr.T("all_loaded")
	if v.HasMore {
		footer = fmt.Sprintf("↓ %s (%d/%d)", tr.T("load_more"), len(v.Items), v.Total)
	}
	b.WriteString(StatusBarText.Render("  " + footer))
	return b.String()
}

// renderItemLine renders a single entry line.
func renderItemLine(item model.Restaurant, favorite, selected bool, width int) string {
	mark := "  "
	if favorite {
		mark = FavoriteMark.Render("♥ ")
	}

	rating := ""
	if item.HasRating() {
		rating = StarStyle.Render(fmt.Sprintf(" ★%.1f", item.Rating()))
	}

	tags := ""
	if len(item.Tags) > 0 {
		tags = TagBadge.Render(" #" + strings.Join(item.Tags, " #"))
	}

	nameWidth := max(width-lipgloss.Width(mark)-lipgloss.Width(rating)-lipgloss.Width(tags)-4, 12)
	name := truncate(item.Name, nameWidth)

	style := NormalItem
	if selected {
		style = SelectedItem
	}
	line := mark + style.Render(name) + rating + tags
	if lipgloss.Width(line) > width && width > 0 {
		line = mark + style.Render(name) + rating
	}
	return line
}

// renderDetail shows everything known about the selected entry.
func renderDetail(item model.Restaurant, favorite bool, width int, tr *i18n.Translator) string {
	var lines []string
	title := lipgloss.NewStyle().Bold(true).Render(item.Name)
	if favorite {
		title = FavoriteMark.Render("♥ ") + title
	}
	lines = append(lines, title)
	if item.Location != "" {
		lines = append(lines, item.Location)
	}
	if item.Summary != "" {
		lines = append(lines, item.Summary)
	}
	if item.HasRating() {
		lines = append(lines, StarStyle.Render(tr.Tf("rating", i18n.Data{"Rating": fmt.Sprintf("%.1f", item.Rating())})))
	}
	if n := len(item.ReviewImg); n > 0 {
		lines = append(lines, tr.Count("photos", n))
	}
	if item.NaverMapURL != "" {
		lines = append(lines, tr.T("naver_map")+": "+item.NaverMapURL)
	}
	if item.Link != "" {
		lines = append(lines, tr.T("original_link")+": "+item.Link)
	}
	if item.HasRating() || len(item.ReviewImg) > 0 {
		lines = append(lines, StatusBarText.Render(tr.T("kakao_notice")))
	}
	return DetailPanel.Width(max(width-2, 20)).Render(strings.Join(lines, "\n"))
}

// renderTagPicker lists the tags matching the tag query.
func (a App) renderTagPicker(v controller.View) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(a.tr.Count("tags_title", v.TagCount)))
	b.WriteString("\n")
	b.WriteString(a.tagSearch.View())
	b.WriteString("\n")

	if len(v.AvailableTags) == 0 {
		b.WriteString(StatusBarText.Render(a.tr.Tf("no_tags", i18n.Data{"Query": v.TagQuery})))
	} else {
		selected := make(map[string]bool, len(v.SelectedTags))
		for _, t := range v.SelectedTags {
			selected[t] = true
		}
		offset := 0
		if a.tagCursor >= maxTagRows {
			offset = a.tagCursor - maxTagRows + 1
		}
		end := min(offset+maxTagRows, len(v.AvailableTags))
		for i := offset; i < end; i++ {
			tag := v.AvailableTags[i]
			box := "[ ]"
			if selected[tag] {
				box = "[x]"
			}
			line := box + " " + tag
			if i == a.tagCursor {
				line = SelectedItem.Render(line)
			} else {
				line = NormalItem.Render(line)
			}
			b.WriteString(line)
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}
	b.WriteString("\n")
	b.WriteString(StatusBarText.Render(a.tr.T("tags_help")))
	return DetailPanel.Width(max(a.width-2, 20)).Render(b.String())
}

// renderStatusBar shows the sort, favorites, dataset date and key hints.
func (a App) renderStatusBar(v controller.View) string {
	parts := []string{
		a.tr.SortLabel(v.Sort.Preset()),
		FavoriteMark.Render("♥") + " " + a.tr.Count("favorites_count", v.RegionFavorites),
	}
	if t, ok := v.Metadata.ParsedTime(); ok {
		parts = append(parts, a.tr.Tf("updated", i18n.Data{"Date": t.Format("2006-01-02 15:04")}))
	}
	if a.status != "" {
		parts = append(parts, StatusBarKey.Render(a.status))
	}
	left := strings.Join(parts, " · ")

	hints := StatusBarText.Render(a.tr.T("help"))
	padding := a.width - lipgloss.Width(left) - lipgloss.Width(hints) - 2
	if padding < 1 {
		return StatusBar.Width(a.width).Render(left)
	}
	return StatusBar.Width(a.width).Render(left + strings.Repeat(" ", padding) + hints)
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
