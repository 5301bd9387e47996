package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ritzau/layerlint/pkg/analysis"
	"github.com/ritzau/layerlint/pkg/config"
	"github.com/ritzau/layerlint/pkg/finder"
	"github.com/ritzau/layerlint/pkg/logging"
	"github.com/ritzau/layerlint/pkg/render"
	"github.com/ritzau/layerlint/pkg/report"
	"github.com/ritzau/layerlint/pkg/rules"
	"github.com/ritzau/layerlint/pkg/watcher"
	"github.com/ritzau/layerlint/pkg/web"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("layerlint", pflag.ExitOnError)
	flags.String("workspace", ".", "Path to the analyzed project root")
	flags.String("src", "src", "Source directory under the workspace")
	flags.StringSlice("layers", nil, "Layer order, earliest first (overrides layerlint.toml)")
	flags.String("output", "docs/architecture/dependencies", "Output directory for DOT/PNG/report")
	flags.Bool("render", true, "Rasterize the DOT file with graphviz")
	flags.Bool("web", false, "Serve results over HTTP instead of writing reports once")
	flags.Int("port", 8080, "Port for the web server")
	flags.Bool("watch", false, "Re-run analysis when source files change (web mode)")
	flags.Bool("open", true, "Open the browser in web mode")
	flags.Bool("json-logs", false, "Emit logs as JSON")
	flags.CountP("verbose", "v", "Increase log verbosity (-v, -vv)")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	setupLogging(cfg)

	if cfg.WebMode {
		runWeb(cfg)
		return
	}

	result, err := runAnalysis(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := writeOutputs(cfg, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	report.PrintSummary(cfg.Workspace, result)

	if result.HasViolations() {
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch {
	case cfg.VerboseCnt >= 2:
		level = slog.LevelDebug - 4
	case cfg.VerboseCnt == 1:
		level = slog.LevelDebug
	}
	if cfg.JSONLogs {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}
}

func runAnalysis(cfg *config.Config) (*analysis.Result, error) {
	start := time.Now()

	files, err := finder.FindSourceFiles(cfg.Workspace, cfg.Src)
	if err != nil {
		return nil, fmt.Errorf("finding source files: %w", err)
	}

	layers := rules.NewLayerTable(cfg.Layers)
	result := analysis.Run(files, layers)

	logging.Info("analysis finished",
		"files", len(files),
		"modules", len(result.Modules),
		"edges", len(result.Edges),
		"violations", len(result.Violations()),
		"durationMs", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func writeOutputs(cfg *config.Config, result *analysis.Result) error {
	outDir := filepath.Join(cfg.Workspace, cfg.Output)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	dotPath := filepath.Join(outDir, "dependency-map.dot")
	if err := os.WriteFile(dotPath, []byte(render.BuildDOT(result)), 0o644); err != nil {
		return fmt.Errorf("writing DOT file: %w", err)
	}
	logging.Info("wrote graph description", "path", dotPath)

	if cfg.Render {
		pngPath := filepath.Join(outDir, "dependency-map.png")
		if err := renderPNG(dotPath, pngPath); err != nil {
			// Rendering needs graphviz on PATH; the DOT file is still useful without it.
			logging.Warn("could not render PNG", "error", err)
		} else {
			logging.Info("wrote graph image", "path", pngPath)
		}
	}

	reportPath := filepath.Join(outDir, "dependency-violations.md")
	if err := os.WriteFile(reportPath, []byte(report.BuildViolationsMarkdown(result)), 0o644); err != nil {
		return fmt.Errorf("writing violations report: %w", err)
	}
	logging.Info("wrote violations report", "path", reportPath)

	return nil
}

// renderPNG shells out to the external graphviz layout tool.
func renderPNG(dotPath, pngPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "dot", "-Tpng", dotPath, "-o", pngPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("dot failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

func runWeb(cfg *config.Config) {
	server := web.NewServer()

	result, err := runAnalysis(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	server.SetResult(result)

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	go func() {
		if err := server.Start(cfg.Port); err != nil {
			logging.Fatal("web server failed", "error", err)
		}
	}()

	if cfg.Watch {
		go watchAndRerun(cfg, server)
	}

	if cfg.OpenBrowser {
		time.Sleep(250 * time.Millisecond)
		openBrowser(url)
	}

	logging.Info("serving analysis results", "url", url)
	select {}
}

func watchAndRerun(cfg *config.Config, server *web.Server) {
	ctx := context.Background()

	fw, err := watcher.NewFileWatcher(cfg.Workspace, cfg.Src)
	if err != nil {
		logging.Error("failed to create watcher", "error", err)
		return
	}
	if err := fw.Start(ctx); err != nil {
		logging.Error("failed to start watcher", "error", err)
		return
	}

	debouncer := watcher.NewDebouncer(fw.Events(), 300*time.Millisecond, 2*time.Second)
	debouncer.Start(ctx)

	for event := range debouncer.Output() {
		logging.Info("change detected, re-running analysis",
			"paths", len(event.Paths),
			"configChange", event.Type == watcher.ChangeTypeConfig,
		)

		current := cfg
		if event.Type == watcher.ChangeTypeConfig {
			reloaded, err := config.Load(nil)
			if err != nil {
				logging.Warn("config reload failed, keeping previous", "error", err)
			} else {
				current = reloaded
			}
		}

		result, err := runAnalysis(current)
		if err != nil {
			logging.Error("re-analysis failed", "error", err)
			continue
		}
		server.SetResult(result)
	}
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		logging.Warn("cannot open browser on platform", "platform", runtime.GOOS)
		return
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		logging.Warn("failed to open browser", "error", err)
	}
}
