package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lavasim/internal/config"
	"github.com/san-kum/lavasim/internal/field"
	"github.com/san-kum/lavasim/internal/geometry"
	"github.com/san-kum/lavasim/internal/metrics"
	"github.com/san-kum/lavasim/internal/physics"
	"github.com/san-kum/lavasim/internal/sim"
	"github.com/san-kum/lavasim/internal/storage"
	"github.com/san-kum/lavasim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	ticks      int
	seed       int64
	blobCount  int
	blobRadius float64
	bottomTemp float64
	topTemp    float64
	collision  string
	speed      int
	blobIndex  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lavasim",
		Short: "thermal-buoyancy lava lamp simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lavasim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the lamp in the terminal",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().IntVar(&speed, "speed", 2, "simulation ticks per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's blob trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&blobIndex, "blob", 0, "blob index to plot")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot the diffused temperature profile",
		RunE:  plotProfile,
	}
	addConfigFlags(profileCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, profileCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&ticks, "ticks", 2000, "number of simulation ticks")
	cmd.Flags().Int64Var(&seed, "seed", 42, "spawn seed")
	cmd.Flags().IntVar(&blobCount, "blobs", config.DefaultBlobCount, "number of blobs")
	cmd.Flags().Float64Var(&blobRadius, "radius", config.DefaultBlobRadius, "blob radius")
	cmd.Flags().Float64Var(&bottomTemp, "bottom-temp", config.DefaultBottomTemp, "bottom boundary temperature")
	cmd.Flags().Float64Var(&topTemp, "top-temp", config.DefaultTopTemp, "top boundary temperature")
	cmd.Flags().StringVar(&collision, "collision", "normal", "wall collision mode (normal|halfwidth)")
}

// resolveConfig merges preset, config file, and CLI flags, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("blobs") {
		cfg.Blobs.Count = blobCount
	}
	if cmd.Flags().Changed("radius") {
		cfg.Blobs.Radius = blobRadius
	}
	if cmd.Flags().Changed("bottom-temp") {
		cfg.Thermal.BottomTemp = bottomTemp
	}
	if cmd.Flags().Changed("top-temp") {
		cfg.Thermal.TopTemp = topTemp
	}
	if cmd.Flags().Changed("collision") {
		cfg.Collision = collision
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildLamp assembles the simulation from a validated config.
func buildLamp(cfg *config.Config) (*sim.Lamp, error) {
	container, err := geometry.NewContainer(
		cfg.Container.CenterX,
		cfg.Container.TopY,
		cfg.Container.TopWidth,
		cfg.Container.BottomWidth,
		cfg.Container.Height,
	)
	if err != nil {
		return nil, err
	}

	// One field sample per dx unit of chamber height.
	n := int(cfg.Container.Height / cfg.Thermal.Dx)
	f, err := field.New(n,
		cfg.Container.TopY, cfg.Container.Height,
		cfg.Thermal.TopTemp, cfg.Thermal.BottomTemp,
		cfg.Thermal.Diffusivity, cfg.Thermal.Dt, cfg.Thermal.Dx,
	)
	if err != nil {
		return nil, err
	}

	fluid := &physics.Fluid{
		Gravity:          cfg.Fluid.Gravity,
		AmbientDensity:   cfg.Fluid.AmbientDensity,
		ReferenceDensity: cfg.Fluid.ReferenceDensity,
		ReferenceTemp:    cfg.Fluid.ReferenceTemp,
		ExpansionCoeff:   cfg.Fluid.ExpansionCoeff,
		HeatTransfer:     cfg.Fluid.HeatTransfer,
		Dt:               cfg.Thermal.Dt,
	}

	lamp := sim.New(container, f, fluid, physics.CollisionMode(cfg.Collision))

	if len(cfg.Blobs.Positions) > 0 {
		for _, p := range cfg.Blobs.Positions {
			lamp.AddBlob(p.X, p.Y, p.Radius)
		}
	} else {
		lamp.SpawnBlobs(cfg.Blobs.Count, cfg.Blobs.Radius, cfg.Seed)
	}

	return lamp, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	lamp, err := buildLamp(cfg)
	if err != nil {
		return err
	}

	lamp.AddMetric(metrics.NewRiseHeight())
	lamp.AddMetric(metrics.NewMeanTemperature())
	lamp.AddMetric(metrics.NewWallPenetration(lamp.Container))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running lamp simulation (%d ticks, %d blobs)...\n", cfg.Ticks, len(lamp.Blobs))
	start := time.Now()

	result, err := lamp.Run(context.Background(), cfg.Ticks)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Seed, cfg.Thermal.Dt, cfg.Collision, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.TicksTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// Validate geometry up front; the builder is re-invoked on reset.
	if _, err := buildLamp(cfg); err != nil {
		return err
	}

	build := func() *sim.Lamp {
		lamp, _ := buildLamp(cfg)
		return lamp
	}

	m := viz.NewModel(build, speed)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tTICKS\tBLOBS\tDT\tCOLLISION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2fs\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Blobs,
			run.Dt,
			run.Collision,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if blobIndex < 0 || blobIndex >= meta.Blobs {
		return fmt.Errorf("blob index %d out of range (run has %d blobs)", blobIndex, meta.Blobs)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("blob: %d\n\n", blobIndex)

	// Columns per blob: x, y, temperature, density.
	cols := []struct {
		offset  int
		caption string
	}{
		{1, "height (y, smaller is higher)"},
		{2, "temperature"},
		{3, "density"},
	}

	for _, col := range cols {
		data := make([]float64, len(states))
		for i := range states {
			idx := blobIndex*4 + col.offset
			if idx < len(states[i]) {
				data[i] = states[i][idx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func plotProfile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	lamp, err := buildLamp(cfg)
	if err != nil {
		return err
	}

	for i := 0; i < cfg.Ticks; i++ {
		lamp.Field.Step()
	}

	graph := asciigraph.Plot(lamp.Field.Profile(),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("temperature profile after %d ticks (top to bottom)", cfg.Ticks)),
	)
	fmt.Println(graph)
	fmt.Printf("\ndiffusion number: %.6f (stable <= 0.5)\n", cfg.DiffusionNumber())

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < meta.Blobs; i++ {
		header = append(header,
			fmt.Sprintf("b%d_x", i),
			fmt.Sprintf("b%d_y", i),
			fmt.Sprintf("b%d_temp", i),
			fmt.Sprintf("b%d_density", i),
		)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{fmt.Sprintf("%.6f", times[i])}
		for _, val := range states[i] {
			row = append(row, fmt.Sprintf("%.6f", val))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, states, times)
}
