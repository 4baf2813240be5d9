package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/collide/internal/attacher"
	"github.com/san-kum/collide/internal/automation"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/ecs"
	"github.com/san-kum/collide/internal/export"
	"github.com/san-kum/collide/internal/scenario"
	"github.com/san-kum/collide/internal/storage"
	"github.com/san-kum/collide/internal/viz"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"
	dnevents "github.com/yohamta/donburi/features/events"
)

var (
	dataDir    string
	configFile string
	preset     string
	duration   float32
	verbose    bool
	noSave     bool
	jsonOut    bool
	theme      string
	plotWidth  int
	plotHeight int
	sweepMin   float32
	sweepMax   float32
	sweepSteps int
	snapshotAt float32
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "collide",
		Short:        "continuous collision detection playground",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".collide", "data directory")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.CurrentTheme.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario to completion",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "play a scenario in the terminal",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	eventsCmd := &cobra.Command{
		Use:   "events [run_id]",
		Short: "show the crossings of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showEvents,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot pair distances of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := config.Groups()
			if len(args) == 1 {
				groups = args
			}
			for _, g := range groups {
				presets := config.ListPresets(g)
				if len(presets) == 0 {
					return fmt.Errorf("no presets for group: %s", g)
				}
				fmt.Printf("%s:\n", g)
				for _, p := range presets {
					fmt.Printf("  %s/%s\n", g, p)
				}
			}
			return nil
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [group/name] [path]",
		Short: "write a preset to a yaml config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := presetConfig(args[0])
			if err != nil {
				return err
			}
			return config.Save(args[1], cfg)
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run a yaml batch of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [group/name] [param]",
		Short: "sweep tolerance, min, max or duration over a range",
		Args:  cobra.ExactArgs(2),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float32Var(&sweepMin, "from", 1e-4, "first value")
	sweepCmd.Flags().Float32Var(&sweepMax, "to", 1e-2, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write the scene at a given time as SVG",
		RunE:  runSnapshot,
	}
	addScenarioFlags(snapshotCmd)
	snapshotCmd.Flags().Float32Var(&snapshotAt, "at", 0, "scene time")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, eventsCmd, plotCmd, exportCmd, presetsCmd, dumpCmd, batchCmd, sweepCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "headon/points", "preset as group/name")
	cmd.Flags().Float32Var(&duration, "time", 0, "override the scenario duration")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log crossings and behaviours to stderr")
}

func presetConfig(name string) (*config.Config, error) {
	group, p, ok := strings.Cut(name, "/")
	if !ok {
		return nil, fmt.Errorf("preset must be group/name, got %q", name)
	}
	cfg := config.GetPreset(group, p)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(group))
	}
	return cfg, nil
}

// loadConfig resolves --config over --preset and applies overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = presetConfig(preset)
	}
	if err != nil {
		return nil, err
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	return cfg, nil
}

func logger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "collide: ", log.Lmicroseconds)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	viz.SetTheme(theme)

	world := donburi.NewWorld()
	tally := ecs.NewTally(world)
	s, err := scenario.Build(cfg,
		scenario.WithLogger(logger()),
		scenario.WithObserver(ecs.NewPublisher(world)),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := s.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	dnevents.ProcessAllEvents(world)

	runID := ""
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		if runID, err = st.Save(result); err != nil {
			return err
		}
	}

	if jsonOut {
		return storage.ExportJSON(os.Stdout, result)
	}

	fmt.Printf("completed %s in %v\n", cfg.Name, elapsed)
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("bands: upper %d, intermediate %d, lower %d\n\n",
		tally.Count(attacher.Upper), tally.Count(attacher.Intermediate), tally.Count(attacher.Lower))
	fmt.Println(viz.Summary(viz.CurrentTheme, result))
	fmt.Println()
	fmt.Println(viz.EventTable(viz.CurrentTheme, result.Crossings))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	viz.SetTheme(theme)
	return viz.Run(cfg, scenario.WithLogger(logger()))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tCROSSINGS\tACTIONS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Crossings,
			run.Actions,
		)
	}
	return w.Flush()
}

func showEvents(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	records, err := st.LoadEvents(args[0])
	if err != nil {
		return err
	}
	viz.SetTheme(theme)
	fmt.Println(viz.EventTable(viz.CurrentTheme, records))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	pairs, samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	graph := viz.DistancePlot(pairs, samples, plotWidth, plotHeight)
	if graph == "" {
		return fmt.Errorf("no data to plot")
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runBatch(cmd *cobra.Command, args []string) error {
	b, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunBatch(ctx, b, logger())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tCROSSINGS\tACTIONS\tRUN")
	for _, r := range results {
		runID := "-"
		if !noSave {
			if runID, err = st.Save(r); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", r.Name, len(r.Crossings), len(r.Actions), runID)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	results, err := automation.RunSweep(cmd.Context(), &automation.Sweep{
		Preset: args[0],
		Param:  args[1],
		Min:    sweepMin,
		Max:    sweepMax,
		Steps:  sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCROSSINGS\tFIRST_CONTACT\tITERATIONS\n", strings.ToUpper(args[1]))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%.5f\t%d\n", r.Value, r.Crossings, r.FirstContact, r.Iterations)
	}
	return w.Flush()
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	viz.SetTheme(theme)

	s, err := scenario.Build(cfg, scenario.WithLogger(logger()))
	if err != nil {
		return err
	}
	// behaviours may change motion, so replay up to the requested time
	if err := s.Advance(cmd.Context(), snapshotAt); err != nil {
		return err
	}
	return export.WriteSceneSVG(os.Stdout, outFile, s, s.Now(), viz.CurrentTheme)
}
