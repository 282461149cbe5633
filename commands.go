package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mineview/internal/config"
	"mineview/internal/export"
	"mineview/internal/loader"
	"mineview/internal/log"
	"mineview/internal/metrics"
	"mineview/internal/preview"
	"mineview/internal/scene"
	"mineview/internal/theme"
	"mineview/internal/topology"
	"mineview/internal/tui"
)

// --- Global Command Variables ---
var (
	configPath  string
	exportFmt   string
	exportOut   string
	planFmt     string
	planOut     string
	planWidth   float64
	planPreview bool
	themeName   string
	metricsAddr string

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:           "mineview",
		Short:         "Inspect mine tunnel schemes",
		Long:          "mineview loads Windows-1251 mine scheme XML files and turns them into tunnel geometry, plans and reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			if err := log.SetFileOutput(cfg.Log.File); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Could not configure debug logging to file: %v\n", err)
			}
			return log.SetLevel(cfg.Log.Level)
		},
	}

	statsCmd = &cobra.Command{
		Use:   "stats FILE",
		Short: "Print element counts, extent, topology and group tallies",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}

	exportCmd = &cobra.Command{
		Use:   "export FILE",
		Short: "Export the tunnel scene as JSON, YAML or Wavefront OBJ",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	planCmd = &cobra.Command{
		Use:   "plan FILE",
		Short: "Draw the tunnel network seen from above",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlan,
	}

	routeCmd = &cobra.Command{
		Use:   "route FILE FROM TO",
		Short: "Find the shortest tunnel route between two nodes",
		Args:  cobra.ExactArgs(3),
		RunE:  runRoute,
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect FILE",
		Short: "Browse a mine file interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	watchCmd = &cobra.Command{
		Use:   "watch FILE",
		Short: "Reload a mine file whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "settings file")

	exportCmd.Flags().StringVarP(&exportFmt, "format", "f", "json", "output format: json, yaml or obj")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (stdout if empty; obj also writes a .mtl next to it)")

	planCmd.Flags().StringVarP(&planFmt, "format", "f", "", "output format: dot, svg or png (default from settings)")
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "output file (stdout if empty)")
	planCmd.Flags().Float64Var(&planWidth, "width", 0, "longer side in inches (default from settings)")
	planCmd.Flags().BoolVar(&planPreview, "preview", false, "show the plan inline as sixel graphics")

	inspectCmd.Flags().StringVar(&themeName, "theme", "classic", "color theme: "+strings.Join(theme.GetThemeManager().Available(), ", "))

	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (default from settings)")

	rootCmd.AddCommand(statsCmd, exportCmd, planCmd, routeCmd, inspectCmd, watchCmd)
}

// loadModel runs the whole pipeline once for a command
func loadModel(ctx context.Context, path string) (*loader.Model, error) {
	return loader.New().LoadFile(ctx, path)
}

func buildScene(m *loader.Model) (*scene.Scene, []scene.GroupInfo, error) {
	s := scene.New()
	infos, err := s.Build(m.Graph, m.Extent.Center)
	if err != nil {
		return nil, nil, err
	}
	return s, infos, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	m, err := loadModel(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	network, err := topology.New(m.Graph)
	if err != nil {
		return err
	}
	sum, err := network.Summary()
	if err != nil {
		return err
	}
	findings, err := network.Audit()
	if err != nil {
		return err
	}
	_, infos, err := buildScene(m)
	if err != nil && !errors.Is(err, scene.ErrNoNodes) {
		return err
	}
	return writeStats(cmd.OutOrStdout(), m, sum, infos, findings)
}

func writeStats(out io.Writer, m *loader.Model, sum topology.Summary, infos []scene.GroupInfo, findings []topology.Finding) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	st := m.Graph.Statistics()
	fmt.Fprintf(w, "File\t%s\n", m.Source)
	fmt.Fprintf(w, "Load id\t%s\n", m.ID)
	fmt.Fprintf(w, "Nodes\t%d\n", st.Nodes)
	fmt.Fprintf(w, "Sections\t%d\n", st.Sections)
	fmt.Fprintf(w, "Excavations\t%d\n", st.Excavations)
	fmt.Fprintf(w, "Horizons\t%d\n", st.Horizons)
	if ext := m.Extent; ext.Valid() {
		fmt.Fprintf(w, "Extent\t%.2f x %.2f x %.2f\n", ext.Dimensions.Width, ext.Dimensions.Height, ext.Dimensions.Depth)
		fmt.Fprintf(w, "Center\t%.2f, %.2f, %.2f\n", ext.Center.X, ext.Center.Y, ext.Center.Z)
	}
	fmt.Fprintf(w, "Components\t%d\n", sum.Components)
	fmt.Fprintf(w, "Total length\t%.2f\n", sum.TotalLength)

	if len(infos) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "GROUP\tNAME\tCOLOR\tDRAWN\tLISTED")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", info.Name, info.Label, export.HexColor(info.Color), info.SectionsValid, info.SectionsTotal)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(findings) > 0 {
		fmt.Fprintf(out, "\n%d audit findings:\n", len(findings))
		for _, f := range findings {
			fmt.Fprintf(out, "  %s\n", f)
		}
	}
	return nil
}

// createOutput opens path for writing, or returns stdout when path is empty
func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func runExport(cmd *cobra.Command, args []string) error {
	switch exportFmt {
	case "json", "yaml", "obj":
	default:
		return fmt.Errorf("unsupported export format %q", exportFmt)
	}

	m, err := loadModel(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	s, _, err := buildScene(m)
	if err != nil {
		return err
	}

	out, err := createOutput(cmd, exportOut)
	if err != nil {
		return err
	}
	defer out.Close()

	switch exportFmt {
	case "json":
		return export.WriteJSON(out, export.NewDocument(m.Source, m.Graph, m.Extent, s))
	case "yaml":
		return export.WriteYAML(out, export.NewDocument(m.Source, m.Graph, m.Extent, s))
	}

	if exportOut == "" {
		return export.WriteOBJ(out, s, "")
	}
	mtlPath := strings.TrimSuffix(exportOut, filepath.Ext(exportOut)) + ".mtl"
	if err := export.WriteOBJ(out, s, filepath.Base(mtlPath)); err != nil {
		return err
	}
	mtl, err := os.Create(mtlPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", mtlPath, err)
	}
	defer mtl.Close()
	return export.WriteMTL(mtl, s)
}

func runPlan(cmd *cobra.Command, args []string) error {
	m, err := loadModel(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	network, err := topology.New(m.Graph)
	if err != nil {
		return err
	}

	opts := topology.PlanOptions{
		Format:        cfg.Plan.Format,
		Width:         cfg.Plan.Width,
		SectionColors: scene.SectionColors(m.Graph),
	}
	if planFmt != "" {
		opts.Format = planFmt
	}
	if planWidth > 0 {
		opts.Width = planWidth
	}

	if planOut != "" || !planPreview {
		out, err := createOutput(cmd, planOut)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := network.RenderPlan(cmd.Context(), out, opts); err != nil {
			return err
		}
	}

	if !planPreview {
		return nil
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("--preview needs a terminal on stdout")
	}
	var buf bytes.Buffer
	opts.Format = topology.FormatPNG
	if err := network.RenderPlan(cmd.Context(), &buf, opts); err != nil {
		return err
	}
	return preview.WritePNG(os.Stdout, buf.Bytes(), cfg.Preview.Width)
}

func runRoute(cmd *cobra.Command, args []string) error {
	m, err := loadModel(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	network, err := topology.New(m.Graph)
	if err != nil {
		return err
	}
	route, err := network.Route(args[1], args[2])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", strings.Join(route.Nodes, " -> "))
	fmt.Fprintf(out, "sections: %s\n", strings.Join(route.Sections, ", "))
	fmt.Fprintf(out, "length: %.2f\n", route.Length)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	// Check if we have a proper TTY
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("inspect requires a terminal/TTY; use stats for plain output")
	}
	tm := theme.GetThemeManager()
	if err := tm.SetTheme(themeName); err != nil {
		return err
	}

	app := tui.NewApplication(args[0], tm.Current())
	if err := app.Run(); err != nil {
		return fmt.Errorf("error running inspector: %w", err)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()
	l := loader.New(
		loader.WithObserver(reg),
		loader.WithStatus(func(st loader.Status) {
			if st.Loading {
				log.Debug("load progress", "progress", st.Progress, "message", st.Message)
			}
		}),
	)

	w, err := loader.NewWatcher(l, args[0], cfg.Watch.Debounce)
	if err != nil {
		return err
	}
	defer w.Stop()

	s := scene.New()
	out := cmd.OutOrStdout()
	w.Reloaded = func(m *loader.Model, err error) {
		if err != nil {
			if !errors.Is(err, loader.ErrSuperseded) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s reload failed: %v\n", time.Now().Format(time.TimeOnly), err)
			}
			return
		}
		infos, err := s.Build(m.Graph, m.Extent.Center)
		reg.RecordScene(infos, s.MeshCount())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s scene: %v\n", time.Now().Format(time.TimeOnly), err)
			return
		}
		st := m.Graph.Statistics()
		fmt.Fprintf(out, "%s loaded %s: %d nodes, %d sections, %d groups, %d meshes\n",
			m.LoadedAt.Format(time.TimeOnly), m.Source, st.Nodes, st.Sections, len(infos), s.MeshCount())
		for _, info := range infos {
			if n := info.SectionsInvalid(); n > 0 {
				fmt.Fprintf(out, "  %s: %d of %d sections skipped\n", info.Name, n, info.SectionsTotal)
			}
		}
	}

	addr := cfg.Metrics.Addr
	if metricsAddr != "" {
		addr = metricsAddr
	}
	if addr != "" {
		srv := serveMetrics(addr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serveMetrics(addr string, reg *metrics.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}
