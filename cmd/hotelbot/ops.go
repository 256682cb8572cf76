package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotelbot/internal/app"
	"hotelbot/internal/bootstrap"
	mysqlrepo "hotelbot/internal/storage/mysql"
)

var (
	seedKeep bool
	seedRand uint64
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := mysqlrepo.Open(cmd.Context(), cfg.MySQLDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		applied, err := mysqlrepo.Migrate(cmd.Context(), db)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
		}
		for _, v := range applied {
			fmt.Fprintln(cmd.OutOrStdout(), "applied", v)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo hotels, rooms and bookings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		deps, err := bootstrap.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer deps.Close()
		if _, err := mysqlrepo.Migrate(ctx, deps.DB); err != nil {
			return err
		}

		if !cmd.Flags().Changed("seed") {
			seedRand = uint64(time.Now().UnixNano())
		}
		start := time.Now()
		res, err := app.NewSeeder(deps.Repo, deps.Cache).Populate(ctx, app.SeedOptions{
			Keep:    seedKeep,
			Seed:    seedRand,
			Workers: cfg.SeedWorkers,
		})
		if err != nil {
			return err
		}
		log.Info().Uint64("seed", seedRand).Dur("took", time.Since(start)).Msg("seeding done")
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Inserted %d hotels, %d rooms, %d bookings\n", res.Hotels, res.Rooms, res.Bookings)
		return nil
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print a report of the database contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := mysqlrepo.Open(cmd.Context(), cfg.MySQLDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		rep, err := app.NewReporter(mysqlrepo.New(db)).Build(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("🏨 HOTEL DATABASE CONTENTS"))
		return rep.Render(cmd.OutOrStdout())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test the database connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := mysqlrepo.Open(cmd.Context(), cfg.MySQLDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		st, err := mysqlrepo.New(db).OverallStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("count hotels: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Database connection successful! Found %d hotels.\n", st.TotalHotels)
		if cfg.RequireLLM() != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "⚠️  GEMINI_API_KEY is not set; chat will not be available.")
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedKeep, "keep", false, "keep existing rows instead of clearing the tables")
	seedCmd.Flags().Uint64Var(&seedRand, "seed", 0, "random seed for reproducible data (default: time based)")
}
