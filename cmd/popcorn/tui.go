// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file, `tui.go`, is the interactive front end built on bubbletea. The
// session stays the source of truth: the bubbletea model only keeps the last
// snapshot plus cursor positions, and every key that changes state becomes a
// session intent.
package main

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaycherian/go-popcorn/internal/core/model"
	"github.com/jaycherian/go-popcorn/internal/core/session"
)

var (
	accentColor = lipgloss.Color("#FCC419")
	mutedColor  = lipgloss.Color("#868E96")
	errorColor  = lipgloss.Color("#FA5252")

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(0, 1)
	focusedStyle  = boxStyle.BorderForeground(accentColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
)

type keyMap struct {
	Quit   key.Binding
	Next   key.Binding
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	Less   key.Binding
	More   key.Binding
	Add    key.Binding
	Delete key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
	Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/rate")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Less:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "less")),
	More:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "more")),
	Add:    key.NewBinding(key.WithKeys("+", "a"), key.WithHelp("+", "add to list")),
	Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
}

func helpLine() string {
	var parts []string
	for _, b := range []key.Binding{keys.Next, keys.Open, keys.Less, keys.More, keys.Add, keys.Delete, keys.Back, keys.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

type pane int

const (
	paneSearch pane = iota
	paneResults
	paneDetail
	paneWatched
)

// snapshotMsg and titleMsg carry a sequence number because UI delivers them
// from separate goroutines; older ones are dropped.
type snapshotMsg struct {
	seq      uint64
	snapshot model.Snapshot
}

type titleMsg struct {
	seq   uint64
	title string
}

// UI forwards session output to a bubbletea program. Delivery never blocks
// the state goroutine.
type UI struct {
	mu      sync.Mutex
	program *tea.Program
	seq     atomic.Uint64
}

func NewUI() *UI {
	return &UI{}
}

// Attach sets the program that receives snapshots and titles.
func (u *UI) Attach(p *tea.Program) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.program = p
}

func (u *UI) Render(s model.Snapshot) {
	u.send(snapshotMsg{seq: u.seq.Add(1), snapshot: s})
}

func (u *UI) SetTitle(title string) {
	u.send(titleMsg{seq: u.seq.Add(1), title: title})
}

func (u *UI) send(msg tea.Msg) {
	u.mu.Lock()
	p := u.program
	u.mu.Unlock()
	if p != nil {
		go p.Send(msg)
	}
}

// browser is the bubbletea model.
type browser struct {
	dispatch func(session.Intent)
	input    textinput.Model
	spinner  spinner.Model
	snap     model.Snapshot
	snapSeq  uint64
	titleSeq uint64
	pane     pane
	cursor   int
	watched  int
	width    int
}

func newBrowser(dispatch func(session.Intent), initial model.Snapshot) browser {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return browser{
		dispatch: dispatch,
		input:    ti,
		spinner:  sp,
		snap:     initial,
		width:    100,
	}
}

func (b browser) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, b.spinner.Tick)
}

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.seq < b.snapSeq {
			return b, nil
		}
		b.snapSeq = msg.seq
		b.snap = msg.snapshot
		b.clamp()
		return b, nil
	case titleMsg:
		if msg.seq < b.titleSeq {
			return b, nil
		}
		b.titleSeq = msg.seq
		return b, tea.SetWindowTitle(msg.title)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		return b, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return b, nil
}

// clamp keeps cursors inside the lists and leaves the detail pane once the
// view closes.
func (b *browser) clamp() {
	b.cursor = min(b.cursor, max(len(b.snap.Results)-1, 0))
	b.watched = min(b.watched, max(len(b.snap.Watched)-1, 0))
	if b.pane == paneDetail && b.snap.Selection == nil {
		b.pane = paneResults
	}
}

func (b *browser) focus(p pane) tea.Cmd {
	b.pane = p
	if p == paneSearch {
		return b.input.Focus()
	}
	b.input.Blur()
	return nil
}

func (b browser) nextPane() pane {
	switch b.pane {
	case paneSearch:
		return paneResults
	case paneResults:
		if b.snap.Selection != nil {
			return paneDetail
		}
		return paneWatched
	case paneDetail:
		return paneSearch
	default:
		return paneSearch
	}
}

func (b browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, keys.Next):
		cmd := b.focus(b.nextPane())
		return b, cmd
	}

	switch b.pane {
	case paneResults:
		return b.updateResults(msg)
	case paneDetail:
		return b.updateDetail(msg)
	case paneWatched:
		return b.updateWatched(msg)
	default:
		return b.updateSearch(msg)
	}
}

func (b browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Down), key.Matches(msg, keys.Open):
		if len(b.snap.Results) > 0 {
			b.focus(paneResults)
		}
		return b, nil
	case key.Matches(msg, keys.Back):
		if b.snap.Selection != nil {
			b.dispatch(session.Cancel{})
		}
		return b, nil
	}

	before := b.input.Value()
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	if v := b.input.Value(); v != before {
		b.dispatch(session.QueryChange{Query: v})
	}
	return b, cmd
}

func (b browser) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if b.cursor == 0 {
			cmd := b.focus(paneSearch)
			return b, cmd
		}
		b.cursor--
	case key.Matches(msg, keys.Down):
		if b.cursor < len(b.snap.Results)-1 {
			b.cursor++
		}
	case key.Matches(msg, keys.Open):
		if b.cursor < len(b.snap.Results) {
			id := b.snap.Results[b.cursor].ID
			b.dispatch(session.Select{ID: id})
			if b.snap.Selection == nil || b.snap.Selection.ID != id {
				b.focus(paneDetail)
			}
		}
	case key.Matches(msg, keys.Back):
		if b.snap.Selection != nil {
			b.dispatch(session.Cancel{})
			return b, nil
		}
		cmd := b.focus(paneSearch)
		return b, cmd
	}
	return b, nil
}

func (b browser) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := b.snap.Selection
	if sel == nil {
		cmd := b.focus(paneResults)
		return b, cmd
	}
	preview := sel.Rating.Hovered
	if preview == 0 {
		preview = sel.Rating.Committed
	}

	switch {
	case key.Matches(msg, keys.Less):
		if preview > 1 {
			b.dispatch(session.HoverRating{Value: preview - 1})
		}
	case key.Matches(msg, keys.More):
		if preview < sel.Rating.Max {
			b.dispatch(session.HoverRating{Value: preview + 1})
		}
	case key.Matches(msg, keys.Open):
		if sel.Rating.Hovered > 0 {
			b.dispatch(session.Rate{Value: sel.Rating.Hovered})
			b.dispatch(session.LeaveRating{})
		}
	case key.Matches(msg, keys.Add):
		b.dispatch(session.AddToWatched{})
	case key.Matches(msg, keys.Back):
		b.dispatch(session.Cancel{})
		b.focus(paneResults)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9':
		n := int(msg.Runes[0] - '0')
		if n == 0 {
			n = 10
		}
		b.dispatch(session.Rate{Value: n})
	}
	return b, nil
}

func (b browser) updateWatched(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if b.watched > 0 {
			b.watched--
		}
	case key.Matches(msg, keys.Down):
		if b.watched < len(b.snap.Watched)-1 {
			b.watched++
		}
	case key.Matches(msg, keys.Delete):
		if b.watched < len(b.snap.Watched) {
			b.dispatch(session.Delete{ID: b.snap.Watched[b.watched].ID})
		}
	case key.Matches(msg, keys.Back):
		cmd := b.focus(paneSearch)
		return b, cmd
	}
	return b, nil
}

func (b browser) View() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("🍿 usePopcorn"))
	sb.WriteString("  ")
	sb.WriteString(b.input.View())
	sb.WriteString("  ")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("Found %d results", b.snap.ResultCount)))
	sb.WriteString("\n")

	half := max(b.width/2-4, 30)
	left := b.box(b.pane == paneResults, half).Render(b.resultsView())
	var right string
	if b.snap.Selection != nil {
		right = b.box(b.pane == paneDetail, half).Render(b.detailView(b.snap.Selection))
	} else {
		right = b.box(b.pane == paneWatched, half).Render(b.watchedView())
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(helpLine()))
	return sb.String()
}

func (b browser) box(focused bool, width int) lipgloss.Style {
	if focused {
		return focusedStyle.Width(width)
	}
	return boxStyle.Width(width)
}

func (b browser) resultsView() string {
	switch {
	case b.snap.Loading:
		return b.spinner.View() + " Loading..."
	case b.snap.Error != "":
		return errorStyle.Render("⛔ " + b.snap.Error)
	case len(b.snap.Results) == 0:
		return mutedStyle.Render("Type at least 3 characters to search.")
	}

	var sb strings.Builder
	for i, m := range b.snap.Results {
		line := fmt.Sprintf("%s  🗓 %s", m.Title, m.Year)
		switch {
		case b.pane == paneResults && i == b.cursor:
			sb.WriteString(selectedStyle.Render("> " + line))
		case b.snap.Selection != nil && b.snap.Selection.ID == m.ID:
			sb.WriteString(selectedStyle.Render("  " + line))
		default:
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (b browser) detailView(v *model.SelectionView) string {
	switch {
	case v.Loading:
		return b.spinner.View() + " Loading..."
	case v.Error != "":
		return errorStyle.Render("⛔ " + v.Error)
	case v.Detail == nil:
		return ""
	}

	d := v.Detail
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(d.Title) + "\n")
	fmt.Fprintf(&sb, "%s • %s\n%s\n⭐ %s IMDb Rating\n\n", d.Released, d.Runtime, d.Genre, d.CatalogRating)
	if v.Phase == model.PhaseAlreadyRated {
		fmt.Fprintf(&sb, "You already watched this movie and you ranked it %d⭐\n", v.StoredRating)
	} else {
		sb.WriteString(selectedStyle.Render(stars(v.Rating)) + "\n")
	}
	if v.CanCommit {
		sb.WriteString(selectedStyle.Render("[+] Add List") + "\n")
	}
	fmt.Fprintf(&sb, "\n%s\n\nStarring: %s\nDirected by: %s", d.Plot, d.Actors, d.Director)
	return sb.String()
}

func (b browser) watchedView() string {
	sum := b.snap.Summary
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("MOVIES YOU WATCHED") + "\n")
	fmt.Fprintf(&sb, "#️⃣ %d movies  ⭐️ %.1f  🌟 %.1f  ⏳ %.1f min\n", sum.Count, sum.AvgCatalogRating, sum.AvgUserRating, sum.AvgRuntime)
	for i, e := range b.snap.Watched {
		line := fmt.Sprintf("%s  ⭐️ %s  🌟 %d  ⏳ %d min", e.Title, e.CatalogRating, e.UserRating, e.RuntimeMinutes)
		if b.pane == paneWatched && i == b.watched {
			sb.WriteString("\n" + selectedStyle.Render("> "+line))
		} else {
			sb.WriteString("\n  " + line)
		}
	}
	return sb.String()
}
