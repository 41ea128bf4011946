package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pyramid/internal/config"
	"github.com/san-kum/pyramid/internal/dataset"
	"github.com/san-kum/pyramid/internal/export"
	"github.com/san-kum/pyramid/internal/loader"
	"github.com/san-kum/pyramid/internal/metrics"
	"github.com/san-kum/pyramid/internal/playback"
	"github.com/san-kum/pyramid/internal/tui"
	"github.com/san-kum/pyramid/internal/viz"
	"github.com/spf13/cobra"
)

const debugLog = "pyramid-debug.log"

var (
	configFile string
	dataDir    string
	baseURL    string
	sheet      string
	speed      float64
	repeat     bool
	preset     string
	sentinel   string
	theme      string
	locale     string
	debug      bool
	// export flags
	frame   int
	outPath string
	// play flags
	plain bool
	// init-config flags
	force bool

	logFile *os.File
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "pyramid [dataset...]",
		Short:             "animated population pyramids in the terminal",
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
				logFile = nil
			}
		},
		RunE: runShow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDir, "dataset directory")
	pf.StringVar(&baseURL, "url", "", "fetch datasets from <url>/data/<name>.csv")
	pf.StringVar(&sheet, "sheet", "", "sheet to read from xlsx datasets (default first)")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "frames per second")
	pf.BoolVar(&repeat, "repeat", false, "loop back to the first frame")
	pf.StringVar(&preset, "preset", "", "playback preset")
	pf.StringVar(&sentinel, "sentinel", dataset.DefaultSentinel, "first field of the row that starts the right group")
	pf.StringVar(&locale, "locale", config.DefaultLocale, "locale for numbers")
	pf.BoolVar(&debug, "debug", false, "write a debug log to "+debugLog)

	showCmd := &cobra.Command{
		Use:   "show [dataset...]",
		Short: "interactive pyramid view",
		RunE:  runShow,
	}
	for _, c := range []*cobra.Command{rootCmd, showCmd} {
		c.Flags().StringVar(&theme, "theme", config.DefaultTheme, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	}

	playCmd := &cobra.Command{
		Use:   "play [dataset]",
		Short: "play a dataset to stdout without the interactive view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&plain, "plain", false, "append frames instead of redrawing the screen")

	inspectCmd := &cobra.Command{
		Use:   "inspect [dataset]",
		Short: "print a summary of a dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspect,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [dataset]",
		Short: "export the parsed dataset to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportTo(cmd, args, func(w io.Writer, name string, ds *dataset.Dataset) error {
				return export.WriteJSON(w, name, ds)
			})
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [dataset]",
		Short: "export per-frame totals to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportTo(cmd, args, func(w io.Writer, _ string, ds *dataset.Dataset) error {
				return export.WriteTotalsCSV(w, ds)
			})
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [dataset]",
		Short: "draw one frame as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportTo(cmd, args, func(w io.Writer, _ string, ds *dataset.Dataset) error {
				return export.WriteSVG(w, ds, frame)
			})
		},
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [dataset]",
		Short: "draw one frame as a PNG bar chart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return fmt.Errorf("export-png needs --out")
			}
			return exportTo(cmd, args, func(w io.Writer, _ string, ds *dataset.Dataset) error {
				return export.WritePNG(w, ds, frame)
			})
		},
	}

	for _, c := range []*cobra.Command{exportJSONCmd, exportCSVCmd, exportSVGCmd, exportPNGCmd} {
		c.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	}
	for _, c := range []*cobra.Command{exportSVGCmd, exportPNGCmd} {
		c.Flags().IntVar(&frame, "frame", 0, "frame index")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list playback presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPEED\tREPEAT")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%g\t%t\n", name, p.Speed, p.Repeat)
			}
			return w.Flush()
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInitConfig,
	}
	initConfigCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(showCmd, playCmd, inspectCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, exportPNGCmd, presetsCmd, initConfigCmd)
	return rootCmd
}

// setupLogging sends the standard logger to a file with --debug and drops
// it otherwise; the interactive view owns the terminal.
func setupLogging(cmd *cobra.Command, args []string) error {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(debugLog, "pyramid")
	if err != nil {
		return err
	}
	logFile = f
	return nil
}

// loadConfig layers defaults, the config file, a preset and explicitly set
// flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}

	if preset != "" && !cfg.ApplyPreset(preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.Source.Dir == "" {
		cfg.Source.Dir = dataDir
	}
	if flags.Changed("url") {
		cfg.Source.BaseURL = baseURL
	}
	if flags.Changed("sheet") {
		cfg.Source.Sheet = sheet
	}
	if flags.Changed("speed") {
		cfg.Playback.Speed = speed
	}
	if flags.Changed("repeat") {
		cfg.Playback.Repeat = repeat
	}
	if flags.Changed("sentinel") {
		cfg.Dialect.Sentinel = sentinel
	}
	if flags.Changed("locale") {
		cfg.View.Locale = locale
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.View.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("config: %+v", *cfg)
	return cfg, nil
}

func newLoader(cfg *config.Config) *loader.Resolver {
	return loader.New(cfg.Source.Dir, cfg.Source.BaseURL, cfg.Source.Sheet)
}

// loadDataset loads args[0], or the first configured dataset.
func loadDataset(cmd *cobra.Command, args []string) (*config.Config, string, *dataset.Dataset, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", nil, err
	}
	name := cfg.Datasets[0]
	if len(args) > 0 {
		name = args[0]
	}

	text, err := newLoader(cfg).LoadText(cmd.Context(), name)
	if err != nil {
		return nil, "", nil, err
	}
	ds, err := cfg.DatasetDialect().Build(text)
	if err != nil {
		return nil, "", nil, fmt.Errorf("%s: %w", name, err)
	}
	log.Printf("loaded %q: %d frames", name, ds.Frames())
	return cfg, name, ds, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names := cfg.Datasets
	if len(args) > 0 {
		names = args
	}

	return viz.Run(viz.Options{
		Names:   names,
		Loader:  newLoader(cfg),
		Dialect: cfg.DatasetDialect(),
		Speed:   cfg.Playback.Speed,
		Repeat:  cfg.Playback.Repeat,
		Theme:   cfg.View.Theme,
		Locale:  cfg.View.Locale,
	})
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, _, ds, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	r := tui.NewLiveRenderer(cmd.OutOrStdout(), cfg.View.Locale, !plain)
	err = tui.Play(ctx, ds, r, playback.Options{Speed: cfg.Playback.Speed, Repeat: cfg.Playback.Repeat})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, name, ds, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}
	num := viz.NewFormatter(cfg.View.Locale)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "dataset: %s\n", name)
	fmt.Fprintf(out, "title: %s\n", ds.Title)
	fmt.Fprintf(out, "frames: %d\n", ds.Frames())
	fmt.Fprintf(out, "groups: %d left, %d right\n", len(ds.Left), len(ds.Right))
	fmt.Fprintf(out, "scale: 0 - %s %s\n\n", num.Number(ds.Scaled(ds.MaxValue)), ds.Label)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tTIME\tSOURCE\tLEFT\tRIGHT\tTOTAL\tLEFT%\tRIGHT%\tRATIO\tCHANGE")
	for i := 0; i < ds.Frames(); i++ {
		left, right := ds.Shares(i)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i,
			ds.Times[i],
			ds.Sources[i],
			num.Number(-ds.TotalsLeft[i]),
			num.Number(ds.TotalsRight[i]),
			num.Number(ds.Totals[i]),
			num.Percent(left),
			num.Percent(right),
			num.Number(math.Round(metrics.FrameRatio(ds, i)*10)/10),
			num.Percent(metrics.Change(ds, i)),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, r := range metrics.Summarize(ds) {
		fmt.Fprintf(out, "%s: %s\n", r.Name, num.Number(math.Round(r.Value*10)/10))
	}

	if ds.Frames() > 1 {
		totals := make([]float64, ds.Frames())
		for i, v := range ds.Totals {
			totals[i] = ds.Scaled(v)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(totals,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total, "+ds.Label),
		))
	}
	return nil
}

func exportTo(cmd *cobra.Command, args []string, write func(io.Writer, string, *dataset.Dataset) error) error {
	_, name, ds, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}
	if outPath == "" {
		return write(cmd.OutOrStdout(), name, ds)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := write(f, name, ds); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := "pyramid.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
