package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fberk/focusflow/internal/export"
	"github.com/fberk/focusflow/internal/store"
	"github.com/fberk/focusflow/internal/tui"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:          "focusflow",
		Short:        "An adaptive focus timer for the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, log, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			app, err := tui.NewApp(s, log)
			if err != nil {
				return err
			}

			p := tea.NewProgram(app, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: user config dir)")

	cmd.AddCommand(newExportCommand(&dbPath))
	cmd.AddCommand(newStatsCommand(&dbPath))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newExportCommand(dbPath *string) *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export completed-phase history to CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			phases, err := s.ListPhases(store.PhaseFilter{})
			if err != nil {
				return err
			}

			if out == "" {
				home, _ := os.UserHomeDir()
				out = filepath.Join(home, fmt.Sprintf("focusflow-export-%s.%s",
					time.Now().Format("2006-01-02"), format))
			}

			switch format {
			case "csv":
				err = export.ToCSV(phases, out)
			case "json":
				days, derr := s.ListDailyStats("0000-01-01", "9999-12-31")
				if derr != nil {
					return derr
				}
				err = export.ToJSON(phases, days, out)
			default:
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			if err != nil {
				return err
			}

			fmt.Printf("exported %d phases to %s\n", len(phases), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "export format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: ~/focusflow-export-<date>.<format>)")

	return cmd
}

func newStatsCommand(dbPath *string) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print recent daily focus statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			now := time.Now()
			from := store.DayKey(now.AddDate(0, 0, -days))
			to := store.DayKey(now.AddDate(0, 0, 1))
			rows, err := s.ListDailyStats(from, to)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("no recorded phases yet")
				return nil
			}

			fmt.Printf("%-12s %8s %8s %6s %7s %7s\n", "Day", "Focus", "Break", "Micro", "Forced", "Rating")
			fmt.Println(strings.Repeat("-", 54))
			for _, d := range rows {
				rating := "-"
				if d.RatingCount > 0 {
					rating = fmt.Sprintf("%.0f", d.AverageRating())
				}
				fmt.Printf("%-12s %7.1fh %7.1fh %6d %7d %7s\n",
					d.Day,
					float64(d.FocusSeconds)/3600,
					float64(d.BreakSeconds)/3600,
					d.MicroBreakCount, d.ForcedBreakCount, rating,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 14, "number of days to show")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the focusflow version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("focusflow", version)
		},
	}
}

// openStore opens the database and a file-backed logger next to it.
// The TUI owns stdout, so diagnostics go to the log file.
func openStore(dbPath string) (*store.Store, *logrus.Logger, error) {
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
		dbPath = p
	}

	s, err := store.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
		FullTimestamp:   true,
	})
	logPath := filepath.Join(filepath.Dir(dbPath), "focusflow.log")
	if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		log.SetOutput(f)
	} else {
		log.SetOutput(os.Stderr)
	}

	return s, log, nil
}
