package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mazegen/internal/carver"
	"github.com/san-kum/mazegen/internal/config"
	"github.com/san-kum/mazegen/internal/grid"
	"github.com/san-kum/mazegen/internal/placement"
	"github.com/san-kum/mazegen/internal/pool"
	"github.com/san-kum/mazegen/internal/scheduler"
	"github.com/san-kum/mazegen/internal/stats"
	"github.com/san-kum/mazegen/internal/viz"
	"github.com/spf13/cobra"
)

var (
	width      int
	height     int
	seed       int64
	carverName string
	braiding   float64
	startFlag  string
	endFlag    string
	// Config file
	configFile string
	// Preset name
	preset string
	// Frame rate for live view
	frameRate int
	themeName string
	compact   bool
	solve     bool
	chart     bool
)

// main registers commands and flags for the mazegen CLI and launches the
// live view when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "mazegen",
		Short: "incremental maze generation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no command given
			return viz.Run(config.DefaultConfig())
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate a maze and print it",
		RunE:  runGenerate,
	}
	generateCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "maze width in cells")
	generateCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "maze height in cells")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = randomize)")
	generateCmd.Flags().StringVar(&carverName, "carver", config.DefaultCarver, "carving algorithm")
	generateCmd.Flags().Float64Var(&braiding, "braiding", 0, "dead-end removal probability [0,1]")
	generateCmd.Flags().StringVar(&startFlag, "start", "", "start cell override as x,y")
	generateCmd.Flags().StringVar(&endFlag, "end", "", "end cell override as x,y")
	generateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	generateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	generateCmd.Flags().BoolVar(&compact, "compact", false, "render as braille minimap")
	generateCmd.Flags().BoolVar(&solve, "solve", false, "overlay the shortest path")
	generateCmd.Flags().BoolVar(&chart, "chart", false, "plot build progress samples")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch generation frame by frame",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "maze width in cells")
	liveCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "maze height in cells")
	liveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = randomize)")
	liveCmd.Flags().StringVar(&carverName, "carver", config.DefaultCarver, "carving algorithm")
	liveCmd.Flags().Float64Var(&braiding, "braiding", 0, "dead-end removal probability [0,1]")
	liveCmd.Flags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	carversCmd := &cobra.Command{
		Use:   "carvers",
		Short: "list carving algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range carver.NewRegistry().List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tCARVER\tBRAIDING")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%s\t%.2f\n", name, p.Width, p.Height, p.Carver, p.Braiding)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a starter config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "maze.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range viz.ThemeNames() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(generateCmd, liveCmd, carversCmd, presetsCmd, themesCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, config file and flags in that order, flags
// winning when explicitly set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("carver") {
		cfg.Carver = carverName
	}
	if cmd.Flags().Changed("braiding") {
		cfg.Braiding = braiding
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = themeName
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = frameRate
	}
	if startFlag != "" {
		p, err := parsePoint(startFlag)
		if err != nil {
			return nil, fmt.Errorf("bad --start: %w", err)
		}
		cfg.Start = p
	}
	if endFlag != "" {
		p, err := parsePoint(endFlag)
		if err != nil {
			return nil, fmt.Errorf("bad --end: %w", err)
		}
		cfg.End = p
	}

	return cfg, cfg.Validate()
}

func parsePoint(s string) (*config.Point, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("want x,y got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}
	return &config.Point{X: x, Y: y}, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	c, err := carver.NewRegistry().Get(cfg.Carver)
	if err != nil {
		return err
	}

	p, err := pool.New(pool.Callbacks{
		Create: func(pool.Role) pool.Visual { return viz.NewTermTile() },
		Reset:  func(v pool.Visual) { v.Reset() },
	})
	if err != nil {
		return err
	}
	defer p.Close()

	sched := scheduler.New(p, scheduler.Options{
		CarveOpsPerStep:   cfg.Steps.CarveOps,
		BuildCellsPerStep: cfg.Steps.BuildCells,
	})
	var samples []float64
	sched.OnProgress(func(f float64) { samples = append(samples, f) })

	place := placement.Request{AutoPlace: cfg.AutoPlace}
	if cfg.Start != nil {
		place.Start = &grid.Point{X: cfg.Start.X, Y: cfg.Start.Y}
	}
	if cfg.End != nil {
		place.End = &grid.Point{X: cfg.End.X, Y: cfg.End.Y}
	}

	th := viz.GetTheme(cfg.Theme)
	err = sched.Generate(scheduler.Request{
		Width:  cfg.Width,
		Height: cfg.Height,
		Seed:   cfg.Seed,
		Carver: c,
		Braid:  cfg.Braiding,
		Place:  place,
		Wall:   pool.Color(th.Wall),
		Floor:  pool.Color(th.Floor),
		Hidden: pool.Color(th.Hidden),
		Start:  pool.Color(th.Start),
		End:    pool.Color(th.End),
	})
	if err != nil {
		return err
	}

	for {
		more, err := sched.Step()
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	g := sched.Grid()
	// Out-of-grid sentinels keep markers off the print when placement
	// was not requested.
	start, end := grid.Point{X: -1, Y: -1}, grid.Point{X: -1, Y: -1}
	if sched.Placed() {
		start, end = sched.StartPoint(), sched.EndPoint()
	}
	var path []grid.Point
	if solve && sched.Placed() {
		path = stats.Solve(g, start, end)
	}

	if compact {
		printCompact(g, path)
	} else {
		printMaze(g, start, end, path)
	}

	for _, w := range sched.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	summary := stats.Collect(g, start, end)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "size\t%dx%d\n", g.Width, g.Height)
	fmt.Fprintf(tw, "open cells\t%d (%.1f%%)\n", summary.OpenCells, summary.OpenRatio*100)
	fmt.Fprintf(tw, "dead ends\t%d\n", summary.DeadEnds)
	if sched.Placed() {
		fmt.Fprintf(tw, "solvable\t%t\n", summary.Solvable)
	}
	if summary.Solvable {
		fmt.Fprintf(tw, "solution\t%d cells\n", summary.SolutionLen)
	}
	fmt.Fprintf(tw, "instances\t%d\n", p.Outstanding())
	if err := tw.Flush(); err != nil {
		return err
	}

	if chart && len(samples) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(samples, asciigraph.Height(6), asciigraph.Width(40), asciigraph.Caption("build progress")))
	}
	return nil
}

// printMaze renders the maze with block characters, two columns per cell.
func printMaze(g *grid.Grid, start, end grid.Point, path []grid.Point) {
	onPath := make(map[grid.Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			pt := grid.Point{X: x, Y: y}
			switch {
			case pt == start:
				b.WriteString("S ")
			case pt == end:
				b.WriteString("E ")
			case onPath[pt]:
				b.WriteString("· ")
			case g.IsWallAt(x, y):
				b.WriteString("██")
			default:
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}

// printCompact renders the maze as a braille minimap, one cell per dot.
func printCompact(g *grid.Grid, path []grid.Point) {
	c := viz.FitCanvas(g.Width, g.Height)
	c.PlotWalls(g.Width, g.Height, g.IsWallAt)
	c.PlotPath(path)
	fmt.Print(c.String())
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg)
}
