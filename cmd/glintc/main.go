// Command glintc compiles one or more fixture program files (see
// internal/fixture) through the semantic core and prints whatever
// diagnostics the run produced.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"glint/internal/config"
	"glint/internal/diag"
	"glint/internal/diagfmt"
	"glint/internal/fixture"
	"glint/internal/ident"
	"glint/internal/pipeline"
	"glint/internal/source"
	"glint/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "glintc [flags] <fixture.json>...",
	Short: "Compile fixture programs through the semantic core",
	Long:  `glintc loads one or more fixture program files, runs each through the desugar/resolve/infer/lower pipeline, and reports the resulting diagnostics.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompile,
}

func init() {
	rootCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json)")
	rootCmd.Flags().String("config", "", "path to a policy TOML file (defaults to diag.DefaultPolicy)")
	rootCmd.Flags().Bool("color", true, "colorize pretty output")
	rootCmd.Flags().Bool("quiet", false, "suppress the progress readout")
	rootCmd.Flags().Int("jobs", 0, "max concurrent module compiles (0 = one per module)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// moduleResult is one fixture file's compile outcome.
type moduleResult struct {
	name string
	bag  *diag.Bag
	err  error
}

func runCompile(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	configPath, _ := cmd.Flags().GetString("config")
	color, _ := cmd.Flags().GetBool("color")
	quiet, _ := cmd.Flags().GetBool("quiet")
	jobs, _ := cmd.Flags().GetInt("jobs")

	policy := diag.DefaultPolicy()
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		policy = cfg.Policy()
	}

	// source.FileSet.Add is not safe for concurrent use, so every fixture
	// is read and registered sequentially here; only the compile itself
	// (each with its own ident.Pool and arenas, per spec §5's
	// per-pipeline-pool requirement for parallel compilation) runs
	// concurrently below.
	fs := source.NewFileSet()
	names := make([]string, len(args))
	raws := make([][]byte, len(args))
	fileIDs := make([]source.FileID, len(args))
	for i, path := range args {
		names[i] = filepath.Base(path)
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		raws[i] = raw
		fileIDs[i] = fs.Add(path, raw)
	}

	events := make(chan pipeline.Event, 64)
	results := make([]moduleResult, len(args))

	go func() {
		g, gctx := errgroup.WithContext(cmd.Context())
		if jobs <= 0 {
			jobs = len(args)
		}
		g.SetLimit(jobs)

		for i := range args {
			i := i
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = compileOne(names[i], raws[i], fileIDs[i], policy, events)
				return nil
			})
		}
		_ = g.Wait()
		close(events)
	}()

	if quiet || len(args) < 2 {
		drain(events)
	} else {
		model := ui.NewProgressModel("compiling", names, events)
		program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
		if _, err := program.Run(); err != nil {
			drain(events)
		}
	}

	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	anyError := false
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.name, r.err)
			anyError = true
			continue
		}
		r.bag.Sort()
		if r.bag.HasErrors() {
			anyError = true
		}
		switch format {
		case "json":
			if err := diagfmt.JSON(os.Stdout, r.bag, fs, diagfmt.JSONOpts{IncludePositions: true}); err != nil {
				return err
			}
		default:
			diagfmt.Pretty(os.Stdout, r.bag, fs, diagfmt.PrettyOpts{
				Color:   color,
				Context: 2,
				Width:   uint8(min(width, 255)),
			})
		}
	}

	if anyError {
		return fmt.Errorf("glintc: one or more modules reported errors")
	}
	return nil
}

func compileOne(name string, raw []byte, fileID source.FileID, policy diag.Policy, events chan<- pipeline.Event) moduleResult {
	pool := ident.NewPool()
	mod, err := fixture.Decode(raw, pool, fileID)
	if err != nil {
		return moduleResult{name: name, err: err}
	}

	bag := diag.NewBag()
	sink := diag.NewSink(bag, policy)
	if _, err := pipeline.CompileWithEvents(mod, sink, events); err != nil && !bag.HasErrors() {
		return moduleResult{name: name, bag: bag, err: err}
	}
	return moduleResult{name: name, bag: bag}
}

func drain(events <-chan pipeline.Event) {
	for range events {
	}
}
