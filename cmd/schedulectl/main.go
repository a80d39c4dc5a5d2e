// Command schedulectl evaluates a YAML timetable of menu schedules at a given
// instant and prints which menus would be shown.
//
//	schedulectl -f menus.yaml -at 2024-06-03T12:30:00Z -tz Europe/Berlin
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"menuboard/internal/logging"
	"menuboard/internal/timetable"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schedulectl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	file := fs.String("f", "menus.yaml", "timetable file")
	at := fs.String("at", "", "instant to evaluate, RFC3339 (default now)")
	tz := fs.String("tz", "", "timezone, overrides the file's timezone")
	visibleOnly := fs.Bool("visible-only", false, "print only the names of visible menus, one per line")
	verbose := fs.Bool("v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logging.NewWithWriter(stderr, level, true)

	tt, err := timetable.LoadFile(*file)
	if err != nil {
		log.Error().Err(err).Str("file", *file).Msg("cannot read timetable")
		return 1
	}

	if *tz != "" {
		tt.Timezone = *tz
	}
	loc, err := tt.Location(time.Local)
	if err != nil {
		log.Error().Err(err).Str("timezone", tt.Timezone).Msg("unknown timezone")
		return 1
	}

	now := time.Now()
	if *at != "" {
		now, err = time.Parse(time.RFC3339, *at)
		if err != nil {
			log.Error().Err(err).Msg("-at must be RFC3339")
			return 2
		}
	}
	now = now.In(loc)

	log.Debug().Time("now", now).Int("menus", len(tt.Menus)).Msg("evaluating")

	if *visibleOnly {
		for _, m := range tt.Visible(now) {
			fmt.Fprintln(stdout, m.Name)
		}
		return 0
	}

	fmt.Fprintf(stdout, "evaluated at %s (%s)\n\n", now.Format(time.RFC3339), now.Weekday())

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MENU\tVISIBLE\tACTIVE SCHEDULE\tPRIORITY")
	for _, r := range tt.Evaluate(now) {
		active, priority := "-", "-"
		if r.Active != nil {
			active = describe(r.Active.Name, string(r.Active.Type))
			priority = fmt.Sprint(r.Active.Priority)
		}
		fmt.Fprintf(w, "%s\t%t\t%s\t%s\n", r.Menu, r.Visible, active, priority)
	}
	w.Flush()

	return 0
}

func describe(name, kind string) string {
	if name == "" {
		return kind
	}
	return fmt.Sprintf("%s (%s)", name, kind)
}
