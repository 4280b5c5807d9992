// InsightEd - Student examination report service
//
// InsightEd turns exam result records into per-student and per-class PDF
// reports with grades, charts and AI-assisted teacher feedback.
//
// Commands:
//   - generate: build a report for a student ID or a class
//   - shell:    interactive REPL over the loaded results
//   - serve:    HTTP API with live report events over websocket
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaffarkeikei/InsightEd/pkg/api"
	"github.com/jaffarkeikei/InsightEd/pkg/config"
	"github.com/jaffarkeikei/InsightEd/pkg/dataset"
	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/feedback"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
	"github.com/jaffarkeikei/InsightEd/pkg/help"
	"github.com/jaffarkeikei/InsightEd/pkg/logging"
	"github.com/jaffarkeikei/InsightEd/pkg/metrics"
	"github.com/jaffarkeikei/InsightEd/pkg/report"
	"github.com/jaffarkeikei/InsightEd/pkg/shell"
	"github.com/jaffarkeikei/InsightEd/pkg/spinner"
)

const version = "1.0.0"

var (
	configPath string
	logLevel   string
	dataPath   string
)

func main() {
	root := &cobra.Command{
		Use:           "insighted",
		Short:         "Generate student examination reports",
		Long:          "InsightEd builds PDF examination reports for students and classes from exam result records.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/insighted/config.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	root.PersistentFlags().StringVar(&dataPath, "data", "", "Results file, overriding data.path")

	root.AddCommand(
		initCmd(),
		generateCmd(),
		studentsCmd(),
		analyzeCmd(),
		exportCmd(),
		shellCmd(),
		serveCmd(),
		versionCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		rerrors.Display(err)
		os.Exit(1)
	}
}

// app is everything a command needs once config and data are loaded.
type app struct {
	cfg      *config.Config
	book     *gradebook.Book
	feedback *feedback.Service
	metrics  *metrics.Collector
	gen      *report.Generator
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(resolveConfigPath())
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if err := logging.Configure(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return nil, rerrors.ConfigWrap(err, rerrors.ErrConfigInvalid, "invalid log settings")
	}
	return cfg, nil
}

func loadApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	settings, err := report.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		book:     ds.Book(),
		feedback: feedback.NewServiceFromConfig(cfg.Feedback),
		metrics:  metrics.New(),
	}
	a.gen = report.NewGenerator(a.book, a.feedback, settings, a.metrics)
	logging.New("data").Infof("loaded %d results from %s", a.book.Len(), cfg.Data.Path)
	return a, nil
}

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveConfigPath()
			if err := config.InitConfig(path, force); err != nil {
				return err
			}
			fmt.Printf("Config initialized at: %s\n", path)
			fmt.Println("Edit this file to set the school name, data path and feedback model.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func generateCmd() *cobra.Command {
	var (
		outDir     string
		chart      string
		variant    string
		noFeedback bool
		force      bool
	)
	cmd := &cobra.Command{
		Use:   "generate <student-id|class>",
		Short: "Generate a student or class PDF report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			q, err := gradebook.ParseQuery(args[0])
			if err != nil {
				return err
			}
			req := report.Request{Query: q, SkipFeedback: noFeedback}
			if chart != "" {
				if req.Chart, err = report.ParseChartKind(chart); err != nil {
					return err
				}
			}
			if variant != "" {
				v, err := feedback.ParseVariant(variant)
				if err != nil {
					return rerrors.Validation(rerrors.ErrValidationInvalid, err.Error()).WithContext("flag", "variant")
				}
				req.Variant = v
			}
			if outDir == "" {
				outDir = a.cfg.Report.OutputDir
			}

			spin := spinner.New(fmt.Sprintf("Generating report for %s", q.Value))
			var bar *spinner.Progress
			if q.Kind == gradebook.QueryClass {
				req.Progress = func(done, total int) {
					if bar == nil {
						spin.Stop()
						bar = spinner.NewProgress(os.Stderr, total, "students composed")
					}
					bar.Set(done, total)
				}
			}

			spin.Start()
			out, err := a.gen.GenerateWith(cmd.Context(), req)
			if bar != nil {
				bar.Finish()
			}
			if err != nil {
				spin.Fail("Report failed")
				return err
			}
			spin.Stop()

			path := filepath.Join(outDir, out.Filename)
			if _, err := os.Stat(path); err == nil && !force {
				ok, err := shell.NewInteractivePrompter().Confirm(fmt.Sprintf("%s exists. Overwrite?", path))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Skipped.")
					return nil
				}
			}
			if _, err := out.SaveTo(outDir); err != nil {
				return err
			}
			fmt.Printf("Saved %s (%d pages, %d students)\n", path, out.Pages, out.Students)
			if out.Fallback {
				fmt.Printf("Note: feedback came from templates (%s)\n", out.FallbackReason)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory (default: report.output_dir)")
	cmd.Flags().StringVar(&chart, "chart", "", "Chart kind: bar, radar, line, none")
	cmd.Flags().StringVar(&variant, "variant", "", "Feedback variant: academic, stakeholder, narrative")
	cmd.Flags().BoolVar(&noFeedback, "no-feedback", false, "Skip the feedback section")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing report without asking")
	return cmd
}

func studentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "students",
		Short: "List students with their average scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			fmt.Printf("%-8s %-24s %-8s %5s %8s  %s\n", "ID", "Name", "Class", "Exams", "Average", "Performance")
			for _, r := range a.book.Roster() {
				fmt.Printf("%-8s %-24s %-8s %5d %8s  %s\n",
					r.StudentID, r.StudentName, r.Class, r.Exams, gradebook.FormatPercent(r.Average), r.Performance)
			}
			return nil
		},
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <class>",
		Short: "Print subject analysis for a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			sel, err := a.book.Lookup(gradebook.Query{Kind: gradebook.QueryClass, Value: args[0]})
			if err != nil {
				return err
			}
			ca := gradebook.AnalyzeClass(args[0], sel.Groups)

			fmt.Printf("Class %s: %d students, average %s\n", ca.Class, ca.TotalStudents, gradebook.FormatPercent(ca.ClassAverage))
			if ca.Top != nil && ca.Bottom != nil {
				fmt.Printf("Top: %s (%s)  Bottom: %s (%s)\n",
					ca.Top.StudentName, gradebook.FormatPercent(ca.Top.Average),
					ca.Bottom.StudentName, gradebook.FormatPercent(ca.Bottom.Average))
			}
			fmt.Println()
			fmt.Printf("%-20s %8s %8s %8s %6s %6s\n", "Subject", "Average", "Highest", "Lowest", "Above", "Below")
			for _, s := range ca.Subjects {
				fmt.Printf("%-20s %8s %8s %8s %6d %6d\n", s.Subject,
					gradebook.FormatPercent(s.AverageScore), gradebook.FormatPercent(s.HighestScore),
					gradebook.FormatPercent(s.LowestScore), s.AboveAverage, s.BelowAverage)
			}
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <student-id|class> <file>",
		Short: "Export matching results to .xlsx, .csv, .yaml or .json",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			q, err := gradebook.ParseQuery(args[0])
			if err != nil {
				return err
			}
			sel, err := a.book.Lookup(q)
			if err != nil {
				return err
			}
			results := sel.Results()
			if err := dataset.Save(args[1], &dataset.Dataset{Results: results}); err != nil {
				return err
			}
			fmt.Printf("Exported %d results to %s\n", len(results), args[1])
			return nil
		},
	}
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			homeDir, _ := os.UserHomeDir()
			sh, err := shell.New(a.gen, shell.Config{
				HistoryFile: filepath.Join(homeDir, ".insighted_history"),
				OutputDir:   a.cfg.Report.OutputDir,
			})
			if err != nil {
				return err
			}

			banner := help.NewBox(59)
			fmt.Println(banner.Top())
			fmt.Println(banner.RowCenter("InsightEd - Examination Reports"))
			fmt.Println(banner.RowCenter(a.cfg.Report.SchoolName))
			fmt.Println(banner.Bottom())
			fmt.Println()

			if err := sh.Run(cmd.Context()); err != nil && err != context.Canceled {
				return err
			}
			fmt.Println("Goodbye!")
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			sc := api.ServerConfigFrom(a.cfg.Server)
			if port != 0 {
				sc.Port = port
			}

			hub := api.NewHub()
			go hub.Run()
			defer hub.Stop()

			srv := api.NewServer(sc)
			api.Mount(srv.Router(), api.Services{
				Version:   version,
				Generator: a.gen,
				Feedback:  a.feedback,
				Metrics:   a.metrics,
				Hub:       hub,
			})
			if err := srv.Start(); err != nil {
				return err
			}
			fmt.Printf("InsightEd API listening on http://%s\n", srv.Address())

			<-cmd.Context().Done()
			fmt.Println("\nShutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default: server.port)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("InsightEd %s\n", version)
		},
	}
}
