// Package timetable reads menu schedules from a YAML file and evaluates them
// without a database. It backs the schedulectl command.
package timetable

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"menuboard/internal/schedule"

	"gopkg.in/yaml.v3"
)

var ErrNoMenus = errors.New("timetable has no menus")

// File is the on-disk format:
//
//	timezone: Europe/Berlin
//	menus:
//	  - name: Lunch
//	    schedules:
//	      - schedule_type: time_range
//	        start_time: "11:00"
//	        end_time: "15:00"
//	        is_active: true
type File struct {
	Timezone string `yaml:"timezone"`
	Menus    []Menu `yaml:"menus"`
}

type Menu struct {
	Name      string              `yaml:"name"`
	Schedules []schedule.Schedule `yaml:"schedules"`
}

func (m Menu) ScheduleSet() []schedule.Schedule {
	return m.Schedules
}

// Result is the outcome of evaluating one menu.
type Result struct {
	Menu    string
	Visible bool
	Active  *schedule.Schedule
}

func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a timetable and validates every schedule in it.
func Load(r io.Reader) (*File, error) {
	var tt File
	if err := yaml.NewDecoder(r).Decode(&tt); err != nil {
		return nil, fmt.Errorf("decode timetable: %w", err)
	}

	if len(tt.Menus) == 0 {
		return nil, ErrNoMenus
	}

	for _, m := range tt.Menus {
		for i, s := range m.Schedules {
			if err := schedule.Validate(s); err != nil {
				return nil, fmt.Errorf("menu %q schedule %d: %w", m.Name, i, err)
			}
		}
	}

	return &tt, nil
}

// Location resolves the file's timezone, falling back to fallback when the
// file does not name one.
func (tt *File) Location(fallback *time.Location) (*time.Location, error) {
	if tt.Timezone == "" {
		return fallback, nil
	}
	return time.LoadLocation(tt.Timezone)
}

// Evaluate reports, in file order, whether each menu is visible at now and
// which of its schedules wins.
func (tt *File) Evaluate(now time.Time) []Result {
	out := make([]Result, 0, len(tt.Menus))
	for _, m := range tt.Menus {
		r := Result{
			Menu:    m.Name,
			Visible: schedule.IsMenuVisible(m.Schedules, now),
		}
		if s, ok := schedule.ActiveSchedule(m.Schedules, now); ok {
			r.Active = &s
		}
		out = append(out, r)
	}
	return out
}

// Visible returns the menus shown at now.
func (tt *File) Visible(now time.Time) []Menu {
	return schedule.FilterVisible(tt.Menus, now)
}
