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

// This file, `terminal.go`, is the line-oriented front end: Terminal renders
// snapshots as text and sets the window title with an OSC 0 escape, and
// ParseCommand turns an input line into a session intent.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/jaycherian/go-popcorn/internal/core/model"
	"github.com/jaycherian/go-popcorn/internal/core/session"
)

var (
	// ErrQuit is returned by ParseCommand for the quit command.
	ErrQuit = errors.New("quit")
	// ErrHelp is returned by ParseCommand for the help command.
	ErrHelp = errors.New("help")
)

const helpText = `commands:
  s <query>    search (fewer than 3 characters clears the list)
  o <n|id>     open or close result n
  h <n>        preview rating n
  l            end the preview
  r <n>        rate n (again to clear)
  a            add the open movie to the watched list
  d <n|id>     delete watched movie n
  x            close the detail view
  ?            this help
  q            quit
`

// Terminal writes everything the session shows to a single writer.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// SetTitle sets the terminal window title.
func (t *Terminal) SetTitle(title string) {
	t.write([]byte("\x1b]0;" + stripControl(title) + "\a"))
}

// Notice prints a line outside the snapshot frame.
func (t *Terminal) Notice(format string, args ...any) {
	t.write([]byte(fmt.Sprintf(format, args...) + "\n"))
}

// Help prints the command summary.
func (t *Terminal) Help() {
	t.write([]byte(helpText))
}

// Render draws one frame.
func (t *Terminal) Render(s model.Snapshot) {
	t.write(FormatSnapshot(s))
}

func (t *Terminal) write(p []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.w.Write(p); err != nil {
		slog.Debug("terminal write failed", "error", err)
	}
}

// stripControl drops characters that would end or break an escape sequence.
func stripControl(in string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, in)
}

// FormatSnapshot renders s as text.
func FormatSnapshot(s model.Snapshot) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "\n🍿 usePopcorn   search: %q   Found %d results\n", s.Query, s.ResultCount)
	switch {
	case s.Loading:
		b.WriteString("  Loading...\n")
	case s.Error != "":
		fmt.Fprintf(&b, "  ⛔ %s\n", s.Error)
	default:
		for i, m := range s.Results {
			marker := " "
			if s.Selection != nil && s.Selection.ID == m.ID {
				marker = ">"
			}
			fmt.Fprintf(&b, " %s%2d. %s  🗓 %s\n", marker, i+1, m.Title, m.Year)
		}
	}

	if s.Selection != nil {
		b.WriteString("\n")
		formatSelection(&b, s.Selection)
	}

	b.WriteString("\n")
	sum := s.Summary
	fmt.Fprintf(&b, "MOVIES YOU WATCHED  #️⃣ %d movies  ⭐️ %.1f  🌟 %.1f  ⏳ %.1f min\n",
		sum.Count, sum.AvgCatalogRating, sum.AvgUserRating, sum.AvgRuntime)
	for i, e := range s.Watched {
		fmt.Fprintf(&b, "  %2d. %s  ⭐️ %s  🌟 %d  ⏳ %d min\n", i+1, e.Title, e.CatalogRating, e.UserRating, e.RuntimeMinutes)
	}
	return b.Bytes()
}

func formatSelection(b *bytes.Buffer, v *model.SelectionView) {
	switch {
	case v.Loading:
		b.WriteString("  Loading...\n")
		return
	case v.Error != "":
		fmt.Fprintf(b, "  ⛔ %s\n", v.Error)
		return
	case v.Detail == nil:
		return
	}

	d := v.Detail
	fmt.Fprintf(b, "  %s\n  %s • %s\n  %s\n  ⭐ %s IMDb Rating\n", d.Title, d.Released, d.Runtime, d.Genre, d.CatalogRating)
	if v.Phase == model.PhaseAlreadyRated {
		fmt.Fprintf(b, "  You already watched this movie and you ranked it %d⭐\n", v.StoredRating)
	} else {
		fmt.Fprintf(b, "  %s\n", stars(v.Rating))
	}
	if v.CanCommit {
		b.WriteString("  [a] + Add List\n")
	}
	fmt.Fprintf(b, "  %s\n  Starring: %s\n  Directed by: %s\n", d.Plot, d.Actors, d.Director)
}

func stars(r model.RatingView) string {
	out := strings.Repeat("★", r.Display) + strings.Repeat("☆", r.Max-r.Display)
	if r.Display > 0 {
		out += " " + strconv.Itoa(r.Display)
	}
	return out
}

// ParseCommand maps an input line to an intent. Result and watched numbers
// are resolved against s and start at 1. An empty line yields a nil intent.
func ParseCommand(line string, s model.Snapshot) (session.Intent, error) {
	verb, arg, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	switch verb {
	case "":
		return nil, nil
	case "s", "search":
		return session.QueryChange{Query: arg}, nil
	case "o", "open":
		id, err := resolve(arg, len(s.Results), func(i int) string { return s.Results[i].ID })
		if err != nil {
			return nil, err
		}
		return session.Select{ID: id}, nil
	case "h", "hover":
		n, err := number(arg)
		if err != nil {
			return nil, err
		}
		return session.HoverRating{Value: n}, nil
	case "l", "leave":
		return session.LeaveRating{}, nil
	case "r", "rate":
		n, err := number(arg)
		if err != nil {
			return nil, err
		}
		return session.Rate{Value: n}, nil
	case "a", "add":
		return session.AddToWatched{}, nil
	case "d", "delete":
		id, err := resolve(arg, len(s.Watched), func(i int) string { return s.Watched[i].ID })
		if err != nil {
			return nil, err
		}
		return session.Delete{ID: id}, nil
	case "x", "esc", "back":
		return session.Cancel{}, nil
	case "?", "help":
		return nil, ErrHelp
	case "q", "quit":
		return nil, ErrQuit
	default:
		return nil, fmt.Errorf("unknown command %q", verb)
	}
}

func number(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", arg)
	}
	return n, nil
}

// resolve accepts a 1-based position or a literal id.
func resolve(arg string, n int, idAt func(int) string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", errors.New("missing argument")
	}
	i, err := strconv.Atoi(arg)
	if err != nil {
		return arg, nil
	}
	if i < 1 || i > n {
		return "", fmt.Errorf("no entry %d", i)
	}
	return idAt(i - 1), nil
}
