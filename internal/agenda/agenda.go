// Package agenda lists the tasks in root and _later and renders them as a
// dated agenda for the terminal.
package agenda

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/mattsolo1/nothing/pkg/filer"
	"github.com/mattsolo1/nothing/pkg/models"
	"github.com/mattsolo1/nothing/pkg/taskname"
)

// Item is one task placed on the agenda.
type Item struct {
	models.Task
	Date    civil.Date `json:"date"`
	Dated   bool       `json:"dated"`
	Overdue bool       `json:"overdue"`
}

// Agenda groups the tasks by where they live.
type Agenda struct {
	Today civil.Date `json:"today"`
	Now   []Item     `json:"now"`
	Later []Item     `json:"later"`
	// Skipped counts entries whose names did not parse.
	Skipped int `json:"skipped"`
}

// Collect reads root and its later directory. Undated tasks sort after
// dated ones; ties sort by title.
func Collect(fs afero.Fs, root string, config *filer.Config, today civil.Date) (*Agenda, error) {
	if config == nil {
		config = filer.DefaultConfig()
	}
	a := &Agenda{Today: today}

	var err error
	var skipped int
	if a.Now, skipped, err = collect(fs, root, models.LocationRoot, today, true); err != nil {
		return nil, err
	}
	a.Skipped += skipped
	if a.Later, skipped, err = collect(fs, filepath.Join(root, config.LaterDir), models.LocationLater, today, false); err != nil {
		return nil, err
	}
	a.Skipped += skipped
	return a, nil
}

func collect(fs afero.Fs, dir string, loc models.Location, today civil.Date, isRoot bool) ([]Item, int, error) {
	exists, err := afero.DirExists(fs, dir)
	if err != nil || !exists {
		return nil, 0, err
	}
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", dir, err)
	}

	var items []Item
	skipped := 0
	for _, info := range infos {
		base := info.Name()
		if strings.HasPrefix(base, ".") || (isRoot && strings.HasPrefix(base, "_")) {
			continue
		}
		n, err := taskname.Parse(base, taskname.Dateless())
		if err != nil {
			skipped++
			continue
		}

		item := Item{Task: models.Task{
			Path:       filepath.Join(dir, base),
			Location:   loc,
			Name:       n,
			IsDir:      info.IsDir(),
			ModifiedAt: info.ModTime(),
		}}
		if n.HasDate() {
			d, err := n.Date(today)
			if err != nil {
				skipped++
				continue
			}
			item.Date, item.Dated = d, true
			item.Overdue = d.Before(today)
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Dated != b.Dated {
			return a.Dated
		}
		if a.Dated && a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		if a.Name.Time != b.Name.Time {
			return a.Name.Time < b.Name.Time
		}
		return a.Name.Title < b.Name.Title
	})
	return items, skipped, nil
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dateStyle    = lipgloss.NewStyle().Faint(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	todayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	emptyStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
)

// Render writes the agenda to w.
func Render(w io.Writer, a *Agenda) error {
	sections := []string{
		section("Now", a.Now, a.Today),
		section("Later", a.Later, a.Today),
	}
	if a.Skipped > 0 {
		sections = append(sections, emptyStyle.Render(fmt.Sprintf("%d entries with unreadable names", a.Skipped)))
	}
	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, sections...))
	return err
}

func section(title string, items []Item, today civil.Date) string {
	lines := []string{headerStyle.Render(fmt.Sprintf("%s (%d)", title, len(items)))}
	if len(items) == 0 {
		lines = append(lines, emptyStyle.Render("  nothing"))
	}
	for _, it := range items {
		lines = append(lines, "  "+line(it, today))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(lines, "")...)
}

func line(it Item, today civil.Date) string {
	when := strings.Repeat(" ", len("2006-01-02 Mon"))
	if it.Dated {
		when = it.Date.String() + " " + it.Date.In(time.UTC).Weekday().String()[:3]
	}
	if it.Name.Time != "" {
		when += " " + it.Name.Time[:2] + ":" + it.Name.Time[2:]
	} else {
		when += "      "
	}

	title := it.Name.Title
	if it.IsDir {
		title += "/"
	}
	if it.Name.Rule != "" {
		title += dateStyle.Render(" (" + it.Name.Rule + ")")
	}

	switch {
	case it.Overdue:
		return overdueStyle.Render(when) + "  " + title
	case it.Dated && it.Date == today:
		return todayStyle.Render(when) + "  " + title
	default:
		return dateStyle.Render(when) + "  " + title
	}
}
