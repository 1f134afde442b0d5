package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"loadboard/adapters/excel"
	"loadboard/app"
	"loadboard/domain/schedule"
	"loadboard/internal/analytics"
	"loadboard/internal/export"
	"loadboard/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sourceFlags select the schedule file a command reads
type sourceFlags struct {
	file  string
	sheet string
}

// filterFlags mirror the dashboard's filter query parameters
type filterFlags struct {
	instructors []string
	departments []string
	halls       []string
	days        []string
	hourLo      float64
	hourHi      float64
}

func newRootCmd() *cobra.Command {
	src := &sourceFlags{}
	rootCmd := &cobra.Command{
		Use:           "loadboard-cli",
		Short:         "Inspect and export class schedule workloads from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultFile := os.Getenv("SCHEDULE_FILE")
	if defaultFile == "" {
		defaultFile = "cleaned_schedule.xlsx"
	}
	rootCmd.PersistentFlags().StringVarP(&src.file, "file", "f", defaultFile, "Schedule spreadsheet (.xlsx or .csv)")
	rootCmd.PersistentFlags().StringVar(&src.sheet, "sheet", os.Getenv("SHEET_NAME"), "Worksheet name (default: first sheet)")

	rootCmd.AddCommand(
		newSummaryCmd(src),
		newExportCmd(src),
		newGenerateCmd(),
	)
	return rootCmd
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.instructors, "instructor", nil, "Keep only these instructors (repeatable)")
	cmd.Flags().StringSliceVar(&f.departments, "department", nil, "Keep only these departments (repeatable)")
	cmd.Flags().StringSliceVar(&f.halls, "hall", nil, "Keep only these halls (repeatable)")
	cmd.Flags().StringSliceVar(&f.days, "day", nil, "Keep only these days, e.g. Mon,R,Sat")
	cmd.Flags().Float64Var(&f.hourLo, "hour-lo", analytics.HourMin, "Earliest start hour")
	cmd.Flags().Float64Var(&f.hourHi, "hour-hi", analytics.HourMax, "Latest start hour")
}

// filter goes through the same query parsing as the web dashboard
func (f *filterFlags) filter(cmd *cobra.Command) (analytics.Filter, error) {
	q := url.Values{}
	q[app.ParamInstructor] = f.instructors
	q[app.ParamDepartment] = f.departments
	q[app.ParamHall] = f.halls
	q[app.ParamDay] = f.days
	if cmd.Flags().Changed("hour-lo") {
		q.Set(app.ParamHourLo, strconv.FormatFloat(f.hourLo, 'f', -1, 64))
	}
	if cmd.Flags().Changed("hour-hi") {
		q.Set(app.ParamHourHi, strconv.FormatFloat(f.hourHi, 'f', -1, 64))
	}
	return app.ParseFilter(q)
}

func load(ctx context.Context, src *sourceFlags) (*app.DashboardService, error) {
	reader := excel.DefaultReaderConfig()
	reader.SheetName = src.sheet
	svc := app.NewDashboardService(nil, nil, app.DashboardConfig{Reader: reader})
	if _, err := svc.LoadFile(ctx, src.file); err != nil {
		return nil, err
	}
	return svc, nil
}

func newSummaryCmd(src *sourceFlags) *cobra.Command {
	filters := &filterFlags{}
	var asJSON bool
	var topN int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print KPIs, workload insight and top lists for a schedule",
		Long: `Print the dashboard summary for a schedule file.

Example: loadboard-cli summary -f fall.xlsx --day Mon,Tue --hour-lo 9 --hour-hi 13`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filters.filter(cmd)
			if err != nil {
				return err
			}
			svc, err := load(cmd.Context(), src)
			if err != nil {
				return err
			}
			table, err := svc.Table(cmd.Context())
			if err != nil {
				return err
			}
			summary := analytics.Summarize(table, analytics.Apply(table, f), topN)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			return printSummary(cmd.OutOrStdout(), table, summary)
		},
	}
	filters.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	cmd.Flags().IntVar(&topN, "top", analytics.DefaultTopN, "Length of the ranked lists")
	return cmd
}

func printSummary(w io.Writer, table *schedule.Table, s analytics.Summary) error {
	fmt.Fprintf(w, "Source: %s\n", table.Source)
	if table.Dropped > 0 {
		fmt.Fprintf(w, "Skipped %d rows with an unreadable day\n", table.Dropped)
	}
	if len(table.MissingColumns) > 0 {
		fmt.Fprintf(w, "Missing columns: %s\n", strings.Join(table.MissingColumns, ", "))
	}
	if s.Fallback {
		fmt.Fprintln(w, "No sessions matched the filters; showing the full schedule")
	}

	fmt.Fprintf(w, "\nSessions: %d  Courses: %d  Instructors: %d  Hours: %.1f\n",
		s.KPIs.Sessions, s.KPIs.UniqueCourses, s.KPIs.ActiveInstructors, s.KPIs.TotalHours)
	fmt.Fprintf(w, "Coverage: %d sessions, %d faculties, %d courses, %d instructors\n",
		s.Coverage.Sessions, s.Coverage.Faculties, s.Coverage.Courses, s.Coverage.Instructors)
	fmt.Fprintf(w, "Top instructor: %s (%.1f h/week, %+.1f%% vs average)\n",
		s.Load.TopInstructor, s.Load.TopHours, s.Load.PercentAboveAverage)
	fmt.Fprintf(w, "Peak slot: %s\n", s.PeakText)
	fmt.Fprintf(w, "Busiest hall: %s (%.1f h)\n", s.TopHall.Key, s.TopHall.Hours())

	sections := []struct {
		title string
		unit  string
		rows  []analytics.Ranked
	}{
		{"Instructor load", "Hours", s.Instructors},
		{"Hall usage", "Hours", s.Halls},
		{"Courses by total time", "Hours", s.Courses},
		{"Frequent courses", "Sessions", s.FrequentCourses},
		{"Faculty distribution", "Hours", s.Faculties},
	}
	for _, sec := range sections {
		fmt.Fprintf(w, "\n%s\n", sec.title)
		rows := make([][]string, 0, len(sec.rows))
		for i, r := range sec.rows {
			value := strconv.Itoa(r.Value)
			if sec.unit == "Hours" {
				value = fmt.Sprintf("%.1f", r.Hours())
			}
			rows = append(rows, []string{strconv.Itoa(i + 1), r.Key, value})
		}
		if err := writeTable(w, []string{"#", "Name", sec.unit}, rows); err != nil {
			return err
		}
	}
	return nil
}

func newExportCmd(src *sourceFlags) *cobra.Command {
	filters := &filterFlags{}
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered schedule to CSV or XLSX",
		Long: `Write the filtered sessions with the derived start_hour column.
The format follows the --out extension.

Example: loadboard-cli export -f fall.xlsx --instructor "Smith, John" --out smith.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filters.filter(cmd)
			if err != nil {
				return err
			}
			svc, err := load(cmd.Context(), src)
			if err != nil {
				return err
			}
			view, err := svc.Records(cmd.Context(), f)
			if err != nil {
				return err
			}

			write := export.WriteCSV
			switch strings.ToLower(filepath.Ext(out)) {
			case ".csv":
			case ".xlsx":
				write = export.WriteXLSX
			default:
				return fmt.Errorf("unsupported output %q: use .csv or .xlsx", out)
			}

			if err := writeOutput(out, func(w io.Writer) error { return write(w, view.Records) }); err != nil {
				return err
			}
			if view.Fallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "No sessions matched the filters; exported the full schedule")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sessions to %s\n", view.Len(), out)
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", export.CSVFilename, "Output file (.csv or .xlsx)")
	return cmd
}

// writeOutput creates path and runs write on it. A failed write or close
// removes the partial file.
func writeOutput(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func newGenerateCmd() *cobra.Command {
	config := testkit.DefaultScheduleConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic schedule with a share of malformed cells",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := testkit.NewScheduleDataGenerator(config)

			var data []byte
			var err error
			switch strings.ToLower(filepath.Ext(out)) {
			case ".csv":
				data, err = gen.CSVBytes()
			case ".xlsx":
				data, err = gen.XLSXBytes()
			default:
				return fmt.Errorf("unsupported output %q: use .csv or .xlsx", out)
			}
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sessions to %s\n", config.Sessions, out)
			return nil
		},
	}
	cmd.Flags().IntVar(&config.Sessions, "sessions", config.Sessions, "Number of class sessions")
	cmd.Flags().IntVar(&config.Instructors, "instructors", config.Instructors, "Number of distinct instructors")
	cmd.Flags().IntVar(&config.Halls, "halls", config.Halls, "Number of distinct halls")
	cmd.Flags().Float64Var(&config.DirtyRate, "dirty-rate", config.DirtyRate, "Share of rows with a malformed cell")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed")
	cmd.Flags().StringVarP(&out, "out", "o", "sample_schedule.xlsx", "Output file (.csv or .xlsx)")
	return cmd
}
