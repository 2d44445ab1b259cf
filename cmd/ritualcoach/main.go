package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"ritualcoach/internal/bootstrap"
	progressdto "ritualcoach/internal/modules/progress/dto"
	reminderdto "ritualcoach/internal/modules/reminder/dto"
	ritualdto "ritualcoach/internal/modules/ritual/dto"
	timerdto "ritualcoach/internal/modules/timer/dto"
	"ritualcoach/internal/platform/config"
	"ritualcoach/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globals struct {
	dataDir string
	backend string
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "ritualcoach",
		Short:         "Daily puja guide, step tracker and streak keeper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.dataDir, "data-dir", defaultDataDir(), "directory for progress, guides and config")
	root.PersistentFlags().StringVar(&g.backend, "backend", "", "storage backend override: sqlite|file|memory")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(g))
	root.AddCommand(newProfileCmd(g))
	root.AddCommand(newRitualCmd(g))
	root.AddCommand(newStreakCmd(g))
	root.AddCommand(newStatsCmd(g))
	root.AddCommand(newProgressCmd(g))
	root.AddCommand(newTimerCmd(g))
	root.AddCommand(newGuideCmd(g))
	root.AddCommand(newRemindCmd(g))
	root.AddCommand(newFlowsCmd(g))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ritualcoach"
	}
	return filepath.Join(home, ".ritualcoach")
}

// withApp wires the application for one command and releases it afterwards.
func withApp(g *globals, run func(app *bootstrap.App) error) error {
	v := viper.New()
	if g.backend != "" {
		v.Set("storage.backend", g.backend)
	}
	cfg, err := config.Load(g.dataDir, v)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, g.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close app", zap.Error(err))
		}
	}()
	return run(app)
}

func newTUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(g, bootstrap.RunTUI)
		},
	}
}

func newProfileCmd(g *globals) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Manage the practitioner profile"}

	var input progressdto.ProfileInput
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Create or replace the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.SaveProfile(cmd.Context(), input)
				if err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&input.Tradition, "tradition", "andhra_smarta", "andhra_smarta|vaishnava")
	setCmd.Flags().StringVar(&input.Region, "region", "south", "south|north")
	setCmd.Flags().StringVar(&input.Language, "language", "en", "te|hi|en")
	setCmd.Flags().StringVar(&input.DailyTime, "time", "06:00", "daily ritual time, HH:MM")
	setCmd.Flags().IntVar(&input.DurationMinutes, "duration", 30, "minutes set aside per day")
	setCmd.Flags().StringVar(&input.DietaryRules, "dietary", "", "dietary rules to observe")
	setCmd.Flags().BoolVar(&input.KidMode, "kid-mode", false, "kid-friendly step titles and descriptions")
	setCmd.Flags().StringVar(&input.UserID, "user-id", "", "keep an existing user id")
	profile.AddCommand(setCmd)

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				out, found, err := app.ProgressCLI.Profile(cmd.Context())
				if err != nil {
					return err
				}
				if !found {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no profile; run `ritualcoach profile set`")
					return nil
				}
				printProfile(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})
	return profile
}

func printProfile(w io.Writer, p progressdto.ProfileOutput) {
	_, _ = fmt.Fprintf(w, "user=%s tradition=%s region=%s language=%s\n", p.UserID, p.Tradition, p.Region, p.Language)
	_, _ = fmt.Fprintf(w, "daily_time=%s duration=%dm kid_mode=%t\n", p.DailyTime, p.DurationMinutes, p.KidMode)
	if p.DietaryRules != "" {
		_, _ = fmt.Fprintf(w, "dietary=%s\n", p.DietaryRules)
	}
}

func newRitualCmd(g *globals) *cobra.Command {
	ritual := &cobra.Command{Use: "ritual", Short: "Work through today's ritual"}

	ritual.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Record the start of today's session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				session, err := app.RitualCLI.Start(cmd.Context())
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), session)
				return nil
			})
		},
	})
	ritual.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show today's progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				session, err := app.RitualCLI.Status(cmd.Context())
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), session)
				return nil
			})
		},
	})
	ritual.AddCommand(&cobra.Command{
		Use:   "complete [step-id]",
		Short: "Complete a step, the active one by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stepID := ""
			if len(args) == 1 {
				stepID = args[0]
			}
			return withApp(g, func(app *bootstrap.App) error {
				result, err := app.RitualCLI.Complete(cmd.Context(), stepID)
				if err != nil {
					return err
				}
				printStepResult(cmd.OutOrStdout(), "completed", result)
				return nil
			})
		},
	})
	ritual.AddCommand(&cobra.Command{
		Use:   "undo <step-id>",
		Short: "Mark a step as not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				result, err := app.RitualCLI.Undo(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printStepResult(cmd.OutOrStdout(), "reopened", result)
				return nil
			})
		},
	})

	var tradition, region string
	stepsCmd := &cobra.Command{
		Use:   "steps",
		Short: "List the steps of a flow, the profile's by default",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				flow, err := app.RitualCLI.Flow(cmd.Context(), tradition, region)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s (%s) %d min\n", flow.Name, flow.Tradition, flow.TotalMinutes)
				for _, step := range flow.Steps {
					_, _ = fmt.Fprintf(out, "%2d. %-14s %3dm  %s\n", step.Index+1, step.ID, step.DurationMinutes, step.Title)
				}
				if len(flow.Variations) > 0 {
					_, _ = fmt.Fprintf(out, "\n%s:\n", flow.RegionLabel)
					for _, v := range flow.Variations {
						_, _ = fmt.Fprintf(out, "  - %s\n", v)
					}
				}
				return nil
			})
		},
	}
	stepsCmd.Flags().StringVar(&tradition, "tradition", "", "flow tradition")
	stepsCmd.Flags().StringVar(&region, "region", "", "regional variations to include")
	ritual.AddCommand(stepsCmd)

	ritual.AddCommand(&cobra.Command{
		Use:   "materials",
		Short: "List the materials for today's ritual",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				checklist, err := app.RitualCLI.Materials(cmd.Context())
				if err != nil {
					return err
				}
				for _, item := range checklist.Items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", item.Name)
				}
				return nil
			})
		},
	})
	return ritual
}

func printSession(w io.Writer, s ritualdto.SessionOutput) {
	_, _ = fmt.Fprintf(w, "%s %s: %d/%d steps (%d%%), %d min left\n", s.Date, s.FlowName, s.CompletedCount, s.TotalSteps, s.ProgressPercent, s.RemainingMinutes)
	for _, step := range s.Steps {
		mark := " "
		switch step.Status {
		case "completed":
			mark = "x"
		case "active":
			mark = ">"
		}
		_, _ = fmt.Fprintf(w, "[%s] %-14s %3dm  %s\n", mark, step.ID, step.DurationMinutes, step.Title)
	}
	if s.IsCompleted {
		_, _ = fmt.Fprintln(w, "ritual complete")
	}
}

func printStepResult(w io.Writer, verb string, r ritualdto.StepResultOutput) {
	if !r.Changed {
		_, _ = fmt.Fprintf(w, "%s unchanged\n", r.StepID)
	} else {
		_, _ = fmt.Fprintf(w, "%s %s (%d/%d)\n", verb, r.StepID, r.Session.CompletedCount, r.Session.TotalSteps)
	}
	if r.RitualCompleted {
		_, _ = fmt.Fprintf(w, "ritual complete, streak %d (longest %d)\n", r.Streak.Current, r.Streak.Longest)
	}
}

func newStreakCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the completion streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				streak, err := app.ProgressCLI.Streak(cmd.Context())
				if err != nil {
					return err
				}
				last := streak.LastCompletionDate
				if last == "" {
					last = "never"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "current=%d longest=%d last=%s\n", streak.Current, streak.Longest, last)
				return nil
			})
		},
	}
}

func newStatsCmd(g *globals) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Completion statistics"}
	stats.AddCommand(&cobra.Command{
		Use:   "week",
		Short: "Show the last seven days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				days, err := app.ProgressCLI.Week(cmd.Context())
				if err != nil {
					return err
				}
				for _, day := range days {
					state := "-"
					switch {
					case day.IsCompleted:
						state = "done"
					case len(day.CompletedSteps) > 0:
						state = fmt.Sprintf("%d steps", len(day.CompletedSteps))
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", day.Date, state)
				}
				return nil
			})
		},
	})
	stats.AddCommand(&cobra.Command{
		Use:   "month",
		Short: "Show this month's completion rate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				month, err := app.ProgressCLI.Month(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed=%d days=%d rate=%.1f%%\n", month.CompletedDays, month.TotalDays, month.CompletionRate)
				return nil
			})
		},
	})
	return stats
}

func newProgressCmd(g *globals) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Export or clear stored progress"}

	var outPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored record as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				payload, err := app.ProgressCLI.Export(cmd.Context())
				if err != nil {
					return err
				}
				if outPath == "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
					return nil
				}
				if err := os.WriteFile(outPath, payload, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", outPath)
				return nil
			})
		},
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "file to write instead of stdout")
	progress.AddCommand(exportCmd)

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the profile, daily records and streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear progress without --yes")
			}
			return withApp(g, func(app *bootstrap.App) error {
				removed, err := app.ProgressCLI.Clear(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d records\n", removed)
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	progress.AddCommand(clearCmd)
	return progress
}

func newTimerCmd(g *globals) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Countdown timer"}
	timer.AddCommand(&cobra.Command{
		Use:   "run <minutes>",
		Short: "Count down in the foreground until done or interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var minutes int
			if _, err := fmt.Sscanf(args[0], "%d", &minutes); err != nil || minutes <= 0 {
				return fmt.Errorf("minutes must be a positive number, got %q", args[0])
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(g, func(app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				last, err := app.TimerCLI.Run(ctx, minutes, func(tick timerdto.Tick) {
					_, _ = fmt.Fprintf(out, "\r%s remaining  %3.0f%%", tick.Clock, tick.Progress*100)
				})
				_, _ = fmt.Fprintln(out)
				if errors.Is(err, context.Canceled) {
					_, _ = fmt.Fprintf(out, "stopped at %s remaining\n", last.Clock)
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, "time is up")
				return nil
			})
		},
	})
	return timer
}

func newGuideCmd(g *globals) *cobra.Command {
	guide := &cobra.Command{Use: "guide", Short: "Printable ritual guides"}

	var tradition, region string
	var withHTML bool
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a Markdown guide, and optionally HTML, into the data dir",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				out, err := app.GuideCLI.Export(cmd.Context(), tradition, region, withHTML)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d steps, %d min\n", out.Title, out.Steps, out.TotalMinutes)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.MarkdownPath)
				if out.HTMLPath != "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.HTMLPath)
				}
				return nil
			})
		},
	}
	exportCmd.Flags().StringVar(&tradition, "tradition", "", "flow tradition, the profile's by default")
	exportCmd.Flags().StringVar(&region, "region", "", "regional variations to include")
	exportCmd.Flags().BoolVar(&withHTML, "html", false, "also write an HTML page")
	guide.AddCommand(exportCmd)

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the guide Markdown without writing files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				body, err := app.GuideCLI.Preview(cmd.Context(), tradition, region)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), body)
				return nil
			})
		},
	}
	previewCmd.Flags().StringVar(&tradition, "tradition", "", "flow tradition, the profile's by default")
	previewCmd.Flags().StringVar(&region, "region", "", "regional variations to include")
	guide.AddCommand(previewCmd)
	return guide
}

func newRemindCmd(g *globals) *cobra.Command {
	var now bool
	remind := &cobra.Command{
		Use:   "remind",
		Short: "Log a reminder at the profile's daily time until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				if now {
					reminder, err := app.ReminderCLI.Now(cmd.Context())
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), reminder.Message)
					return nil
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				err := app.ReminderCLI.Run(ctx, func(s reminderdto.ScheduleOutput) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminding daily at %s %s (cron %q), next %s\n",
						s.DailyTime, s.TimeZone, s.CronSpec, s.NextRun.Format(time.RFC1123))
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
	remind.Flags().BoolVar(&now, "now", false, "print today's reminder once and exit")
	return remind
}

func newFlowsCmd(g *globals) *cobra.Command {
	flows := &cobra.Command{Use: "flows", Short: "Ritual flow catalog"}
	flows.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available traditions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				summaries, err := app.RitualCLI.Flows(cmd.Context())
				if err != nil {
					return err
				}
				for _, f := range summaries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-28s %2d steps %3d min\n", f.Tradition, strings.TrimSpace(f.Name), f.StepCount, f.TotalMinutes)
				}
				return nil
			})
		},
	})
	return flows
}
