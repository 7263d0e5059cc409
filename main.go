package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nonsonwune/college_db/config"
	"github.com/nonsonwune/college_db/models"
	"github.com/nonsonwune/college_db/refresh"
	"github.com/nonsonwune/college_db/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := &cobra.Command{
		Use:           "college_db",
		Short:         "Rebuild the college database from IPEDS and College Scorecard extracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRefreshCmd(), newStatsCmd(), newInspectCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		color.Red("Error: %v", err)
		stop()
		os.Exit(1)
	}
}

type storeFlags struct {
	driver string
	dbPath string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "driver", "", "Database driver: sqlite or postgres (default from DB_DRIVER)")
	cmd.Flags().StringVar(&f.dbPath, "db", "", "SQLite database file (default from DB_PATH)")
}

func (f *storeFlags) apply(cfg *config.Config) {
	if f.driver != "" {
		cfg.Driver = f.driver
	}
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}
}

func loadConfig(sf *storeFlags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	sf.apply(&cfg)
	return cfg, cfg.Validate()
}

func newRefreshCmd() *cobra.Command {
	var (
		sf         storeFlags
		dataDir    string
		chunkSize  int
		rejectsDir string
		sources    string
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Drop and rebuild every table from the source CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			sf.apply(&cfg)
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if chunkSize != 0 {
				cfg.ChunkSize = chunkSize
			}
			if rejectsDir != "" {
				cfg.RejectsDir = rejectsDir
			}
			if sources != "" {
				cfg.SourcesFile = sources
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			report, err := refresh.Run(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			refresh.PrintReport(cmd.OutOrStdout(), report)
			color.Green("Database refresh completed successfully!")
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the source CSV files (default from DATA_DIR)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Rows per chunk when loading completions (default from CHUNK_SIZE)")
	cmd.Flags().StringVar(&rejectsDir, "rejects-dir", "", "Write dropped rows to CSV files in this directory")
	cmd.Flags().StringVar(&sources, "sources", "", "YAML manifest overriding the candidate source files")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var sf storeFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show row counts and size of an existing database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&sf)
			if err != nil {
				return err
			}
			s, err := store.Open(cmd.Context(), cfg.StoreOptions())
			if err != nil {
				return err
			}
			defer s.Close()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Table", "Records"})
			table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
			for _, name := range models.AllTables {
				n, err := s.CountRows(cmd.Context(), name)
				if err != nil {
					return err
				}
				table.Append([]string{name, humanize.Comma(n)})
			}
			size, err := s.Size(cmd.Context())
			if err != nil {
				return err
			}
			table.SetFooter([]string{"Database size", humanize.Bytes(uint64(size))})

			color.Yellow("\nDatabase statistics")
			table.Render()
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func newInspectCmd() *cobra.Command {
	var (
		sf    storeFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "inspect <unitid>",
		Short: "Show one institution with its financial, earnings and program data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unitID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unitid %q: %w", args[0], err)
			}
			cfg, err := loadConfig(&sf)
			if err != nil {
				return err
			}
			s, err := store.Open(cmd.Context(), cfg.StoreOptions())
			if err != nil {
				return err
			}
			defer s.Close()

			inst, err := s.Institution(cmd.Context(), unitID)
			if err != nil {
				return err
			}
			programs, err := s.Programs(cmd.Context(), unitID, limit)
			if err != nil {
				return err
			}
			printInstitution(cmd, inst, programs)
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().IntVar(&limit, "programs", 10, "Number of programs to list")
	return cmd
}

func printInstitution(cmd *cobra.Command, inst *models.Institution, programs []models.AcademicProgram) {
	out := cmd.OutOrStdout()

	color.New(color.FgCyan, color.Bold).Fprintf(out, "\n%s (%d)\n", inst.Name, inst.UnitID)
	fmt.Fprintf(out, "Location: %s, %s %s\n", str(inst.City), str(inst.State), str(inst.ZipCode))
	fmt.Fprintf(out, "Website:  %s\n", str(inst.Website))
	fmt.Fprintf(out, "Programs: %s completion records\n", humanize.Comma(inst.ProgramCount))

	if len(inst.Financial) > 0 {
		color.New(color.FgYellow).Fprintln(out, "\nCost of attendance")
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Year", "Tuition (in-state)", "Tuition (out-of-state)", "Fees", "Room & board"})
		for _, f := range inst.Financial {
			table.Append([]string{num(f.Year), money(f.TuitionInState), money(f.TuitionOutState), money(f.Fees), money(f.RoomBoardOnCampus)})
		}
		table.Render()
	}

	if e := inst.Earnings; e != nil {
		color.New(color.FgYellow).Fprintln(out, "\nOutcomes")
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Earnings (6y)", "Earnings (10y)", "Median debt", "Completion", "Retention"})
		table.Append([]string{money(e.Earnings6YearsAfterEntry), money(e.Earnings10YearsAfterEntry),
			money(e.MedianDebt), rate(e.CompletionRate), rate(e.RetentionRate)})
		table.Render()
	}

	if len(programs) > 0 {
		color.New(color.FgYellow).Fprintln(out, "\nLargest programs")
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"CIP code", "Award level", "Completions", "Year"})
		for _, p := range programs {
			table.Append([]string{str(p.CIPCode), num(p.CredentialLevel), num(p.Completions), num(p.Year)})
		}
		table.Render()
	}
}

func str(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func num(n *int64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatInt(*n, 10)
}

func money(f *float64) string {
	if f == nil {
		return "-"
	}
	return "$" + humanize.Commaf(*f)
}

func rate(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *f*100)
}
