package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"miftah/internal/bootstrap"
	"miftah/internal/platform/config"
	apperrors "miftah/internal/platform/errors"
	"miftah/internal/platform/markdown"
)

const renderWidth = 80

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, apperrors.ErrInvalidInput) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type globalFlags struct {
	home      string
	ephemeral bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "miftah",
		Short:         "Quran reading progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.home, "home", ".", "directory holding .miftah/ state")
	root.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "keep state in memory only")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newProgressCmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newBookmarkCmd(flags))
	return root
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.New(flags.home)
	if err != nil {
		return nil, err
	}
	if flags.ephemeral {
		cfg.Storage.Driver = config.DriverMemory
	}
	return bootstrap.New(cfg)
}

// withApp runs fn against a freshly wired app and releases storage after.
func withApp(flags *globalFlags, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func intArgs(args []string, names ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number, got %q: %w", names[i], a, apperrors.ErrInvalidInput)
		}
		out[i] = n
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the miftah dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, bootstrap.RunTUI)
		},
	}
}

func newProgressCmd(flags *globalFlags) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Reading position, completed surahs and daily goal"}

	var asJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current progress record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				p := app.ProgressCLI.GetProgress(context.Background())
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), p)
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "position: %d:%d\n", p.LastSurah, p.LastAyah)
				_, _ = fmt.Fprintf(w, "streak: %d days\n", p.Streak)
				_, _ = fmt.Fprintf(w, "daily goal: %d verses\n", p.DailyGoal)
				_, _ = fmt.Fprintf(w, "reading time: %d min\n", p.TotalReadingTime)
				_, _ = fmt.Fprintf(w, "completed surahs: %d\n", len(p.CompletedSurahs))
				if p.LastReadDate != "" {
					_, _ = fmt.Fprintf(w, "last read: %s\n", p.LastReadDate)
				}
				return nil
			})
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")

	update := &cobra.Command{
		Use:   "update <surah> <ayah>",
		Short: "Record the current reading position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArgs(args, "surah", "ayah")
			if err != nil {
				return err
			}
			return withApp(flags, func(app *bootstrap.App) error {
				ctx := context.Background()
				if err := app.ProgressCLI.UpdateProgress(ctx, n[0], n[1]); err != nil {
					return err
				}
				p := app.ProgressCLI.GetProgress(ctx)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "position %d:%d streak=%d\n", p.LastSurah, p.LastAyah, p.Streak)
				return nil
			})
		},
	}

	complete := &cobra.Command{
		Use:   "complete <surah>",
		Short: "Mark a surah as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArgs(args, "surah")
			if err != nil {
				return err
			}
			return withApp(flags, func(app *bootstrap.App) error {
				ctx := context.Background()
				if err := app.ProgressCLI.MarkSurahCompleted(ctx, n[0]); err != nil {
					return err
				}
				p := app.ProgressCLI.GetProgress(ctx)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "surah %d completed (%d/114)\n", n[0], len(p.CompletedSurahs))
				return nil
			})
		},
	}

	goal := &cobra.Command{
		Use:   "goal <verses>",
		Short: "Set the daily verse goal (1-100)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArgs(args, "verses")
			if err != nil {
				return err
			}
			return withApp(flags, func(app *bootstrap.App) error {
				if err := app.ProgressCLI.SetDailyGoal(context.Background(), n[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "daily goal set to %d verses\n", n[0])
				return nil
			})
		},
	}

	progress.AddCommand(show, update, complete, goal)
	return progress
}

func newSessionCmd(flags *globalFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Timed reading sessions"}

	start := &cobra.Command{
		Use:   "start <surah> <ayah>",
		Short: "Start a reading session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArgs(args, "surah", "ayah")
			if err != nil {
				return err
			}
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Start(context.Background(), n[0], n[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s (surah %d from ayah %d)\n", out.SessionID, out.SurahNumber, out.StartAyah)
				return nil
			})
		},
	}

	end := &cobra.Command{
		Use:   "end <ayah>",
		Short: "End the active session at the given ayah",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArgs(args, "ayah")
			if err != nil {
				return err
			}
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.End(context.Background(), n[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: %s surah=%d verses=%d duration=%dmin goal=%.0f%%\n",
					out.SessionID, out.SurahNumber, out.VersesRead, out.DurationMin, out.GoalProgress)
				return nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.GetActive(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active: %s surah=%d from ayah %d, started %s (%s ago)\n",
					out.SessionID, out.SurahNumber, out.StartAyah,
					out.StartedAt.Format(time.RFC3339), time.Since(out.StartedAt).Round(time.Second))
				return nil
			})
		},
	}

	var duration, verses int
	record := &cobra.Command{
		Use:   "record <surah> <start-ayah> <end-ayah>",
		Short: "Log a session timed elsewhere",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArgs(args, "surah", "start-ayah", "end-ayah")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("verses") {
				verses = n[2] - n[1] + 1
			}
			return withApp(flags, func(app *bootstrap.App) error {
				if err := app.ProgressCLI.RecordSession(context.Background(), n[0], n[1], n[2], duration, verses); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session recorded: surah %d %d-%d\n", n[0], n[1], n[2])
				return nil
			})
		},
	}
	record.Flags().IntVar(&duration, "minutes", 1, "session length in minutes")
	record.Flags().IntVar(&verses, "verses", 0, "verses read (defaults to the ayah range)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List logged sessions from the last 30 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				sessions, err := app.ProgressCLI.ListSessions(context.Background())
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tsurah %d\t%d-%d\t%d verses\t%d min\n",
						s.Date.Format("2006-01-02 15:04"), s.SurahNumber, s.StartAyah, s.EndAyah, s.VersesRead, s.Duration)
				}
				return nil
			})
		},
	}

	session.AddCommand(start, end, status, record, list)
	return session
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Derived reading statistics"}

	today := &cobra.Command{
		Use:   "today",
		Short: "Verses, time and goal progress for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Today(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "verses=%d time=%dmin goal=%.0f%% sessions=%d\n",
					out.VersesRead, out.TimeSpent, out.GoalProgress, out.SessionsCount)
				return nil
			})
		},
	}

	week := &cobra.Command{
		Use:   "week",
		Short: "Activity over the trailing seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Week(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "days=%d/7 verses=%d average=%.1fmin\n",
					out.DaysRead, out.TotalVerses, out.AverageTime)
				return nil
			})
		},
	}

	var asJSON bool
	overview := &cobra.Command{
		Use:   "overview",
		Short: "Completion, milestones and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Overview(context.Background())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "completed: %d/114 (%.1f%%)\n", out.CompletedCount, out.CompletionPercent)
				_, _ = fmt.Fprintf(w, "position: %.1f%% through\n", out.PositionPercent)
				_, _ = fmt.Fprintf(w, "reading time: %dh\n", out.TotalHours)
				_, _ = fmt.Fprintf(w, "next milestone: %d days (%d to go)\n", out.NextMilestone, out.MilestoneRemaining)
				if out.EstimatedWeeksToComplete > 0 {
					_, _ = fmt.Fprintf(w, "estimated weeks to complete: %d\n", out.EstimatedWeeksToComplete)
				}
				if len(out.Achievements) > 0 {
					_, _ = fmt.Fprintf(w, "achievements: %s\n", strings.Join(out.Achievements, ", "))
				}
				_, _ = fmt.Fprintln(w, out.Motivation)
				return nil
			})
		},
	}
	overview.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	var (
		outPath string
		raw     bool
	)
	export := &cobra.Command{
		Use:   "export",
		Short: "Render a markdown progress note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Export(context.Background(), outPath)
				if err != nil {
					return err
				}
				if out.Path == "" {
					content := out.Content
					if !raw {
						if content, err = markdown.RenderTerminal(out.Content, renderWidth); err != nil {
							return err
						}
					}
					_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", out.Path)
				return nil
			})
		},
	}
	export.Flags().StringVar(&outPath, "out", "", "note to create or refresh (prints to stdout when empty)")
	export.Flags().BoolVar(&raw, "raw", false, "print the note as plain markdown instead of rendering it")

	stats.AddCommand(today, week, overview, export)
	return stats
}

func newBookmarkCmd(flags *globalFlags) *cobra.Command {
	bookmark := &cobra.Command{Use: "bookmark", Short: "Saved verses"}

	var name, note string
	add := &cobra.Command{
		Use:   "add <surah> <ayah>",
		Short: "Bookmark a verse",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArgs(args, "surah", "ayah")
			if err != nil {
				return err
			}
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.BookmarkCLI.Add(context.Background(), n[0], n[1], name, note)
				if err != nil {
					return err
				}
				if !out.Added {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d:%d is already bookmarked\n", n[0], n[1])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bookmarked %d:%d\n", n[0], n[1])
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "surah name to show with the bookmark")
	add.Flags().StringVar(&note, "note", "", "personal note")

	remove := &cobra.Command{
		Use:   "remove <surah> <ayah>",
		Short: "Remove a bookmark",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArgs(args, "surah", "ayah")
			if err != nil {
				return err
			}
			return withApp(flags, func(app *bootstrap.App) error {
				removed, err := app.BookmarkCLI.Remove(context.Background(), n[0], n[1])
				if err != nil {
					return err
				}
				if !removed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d:%d was not bookmarked\n", n[0], n[1])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d:%d\n", n[0], n[1])
				return nil
			})
		},
	}

	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List bookmarked verses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				bookmarks, err := app.BookmarkCLI.ListBookmarks(context.Background())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), bookmarks)
				}
				w := cmd.OutOrStdout()
				if len(bookmarks) == 0 {
					_, _ = fmt.Fprintln(w, "no bookmarks")
					return nil
				}
				for _, b := range bookmarks {
					line := fmt.Sprintf("%d:%d", b.SurahNumber, b.AyahNumber)
					if b.SurahName != "" {
						line += " " + b.SurahName
					}
					if !b.BookmarkedAt.IsZero() {
						line += "\t" + b.BookmarkedAt.Local().Format("2006-01-02")
					}
					if b.Notes != "" {
						line += "\t" + b.Notes
					}
					_, _ = fmt.Fprintln(w, line)
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	clearAll := &cobra.Command{
		Use:   "clear",
		Short: "Remove every bookmark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if err := app.BookmarkCLI.Clear(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "bookmarks cleared")
				return nil
			})
		},
	}

	bookmark.AddCommand(add, remove, list, clearAll)
	return bookmark
}
