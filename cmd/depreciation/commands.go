package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/SscSPs/asset_depreciation/internal/dto"
	"github.com/SscSPs/asset_depreciation/internal/platform/config"
	"github.com/SscSPs/asset_depreciation/pkg/database"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run depreciation once and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			runMode, err := domain.ParseRunMode(mode)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, runErr := a.services.Depreciation.RunOnce(cmd.Context(), runMode)
			if result != nil {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(dto.ToRunResultResponse(result)); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(domain.CatchUp), "Run mode: catch_up or current_period")
	return cmd
}

func newDueCommand() *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Explain whether the schedule is due right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if schedule == "" {
				schedule = a.cfg.ScheduleName
			}
			cfg, decision, evalErr := a.services.Schedule.Diagnose(cmd.Context(), schedule)
			if cfg == nil {
				return evalErr
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintf(w, "SCHEDULE\t%s\n", cfg.Name)
			fmt.Fprintf(w, "RECURRENCE\t%s at %s (%s)\n", cfg.Frequency, cfg.ExecutionTime, cfg.Timezone)
			fmt.Fprintf(w, "LOCAL NOW\t%s\n", decision.LocalNow.Format(time.RFC3339))
			fmt.Fprintf(w, "DUE\t%t (%s)\n", decision.Due, decision.Reason)
			if decision.WindowStart != nil {
				fmt.Fprintf(w, "WINDOW\t%s - %s\n", decision.WindowStart.Format(time.RFC3339), decision.WindowEnd.Format(time.RFC3339))
			}
			fmt.Fprintf(w, "LAST RUN\t%s\n", formatOptionalTime(cfg.LastRunAt))
			fmt.Fprintf(w, "NEXT RUN\t%s\n", formatOptionalTime(decision.NextRunAt))
			if evalErr != nil {
				fmt.Fprintf(w, "ERROR\t%s\n", evalErr)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "Schedule name (defaults to SCHEDULE_NAME)")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(newMigrateUpCommand())
	cmd.AddCommand(newMigrateDownCommand())
	cmd.AddCommand(newMigrateStatusCommand())
	return cmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return database.MigrateUp(cfg.DatabaseURL)
		},
	}
}

func newMigrateDownCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return database.MigrateDown(cfg.DatabaseURL, steps)
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	return cmd
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			status, err := database.GetMigrationStatus(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if !status.Applied {
				fmt.Println("No migrations have been applied yet")
				return nil
			}
			state := "clean"
			if status.Dirty {
				state = "dirty"
			}
			fmt.Printf("Current migration version: %d (status: %s)\n", status.Version, state)
			return nil
		},
	}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
