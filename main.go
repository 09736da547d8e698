/*
offmesh parses OFF mesh files and prints the result.

	offmesh [flags] file.off [file.off ...]
	offmesh [flags] -watch dir
*/
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spaghettifunk/offmesh/engine"
	"github.com/spaghettifunk/offmesh/engine/config"
	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/format"
	"github.com/spaghettifunk/offmesh/engine/metadata"
	"github.com/spaghettifunk/offmesh/engine/off"
)

const (
	exitParseFailure = 1
	exitInvalidArgs  = 2
)

var resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)

type cliFlags struct {
	noVertexColor, vertexColor, optionalVertexColor bool
	vertexChannels                                  int
	noFaceColor, faceColor, optionalFaceColor       bool
	faceChannels                                    int

	configPath string
	watchDir   string
	emit       bool
	workers    int
	logLevel   string

	set map[string]bool
}

func parseFlags(args []string) (*cliFlags, *flag.FlagSet, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("offmesh", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&f.noVertexColor, "nvc", false, "Disable vertex color parsing.")
	fs.BoolVar(&f.vertexColor, "vc", false, "Enable vertex color parsing.")
	fs.BoolVar(&f.optionalVertexColor, "ovc", false, "Parse vertex color if presented.")
	fs.IntVar(&f.vertexChannels, "vcc", 3, "Number of vertex color channels. [3 -> RGB, 4 -> RGBA]")
	fs.BoolVar(&f.noFaceColor, "nfc", false, "Disable face color parsing.")
	fs.BoolVar(&f.faceColor, "fc", false, "Enable face color parsing.")
	fs.BoolVar(&f.optionalFaceColor, "ofc", false, "Parse face color if presented.")
	fs.IntVar(&f.faceChannels, "fcc", 3, "Number of face color channels. [3 -> RGB, 4 -> RGBA]")
	fs.StringVar(&f.configPath, "config", "", "TOML configuration file. Flags override it.")
	fs.StringVar(&f.watchDir, "watch", "", "Watch a directory and re-parse .off files when they change.")
	fs.BoolVar(&f.emit, "emit", false, "Write each parsed mesh back as OFF to stdout.")
	fs.IntVar(&f.workers, "workers", 0, "Number of files parsed in parallel.")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error.")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, fs, nil
}

func colorMode(group string, none, mandatory, optional bool) (metadata.ColorMode, bool, error) {
	n := 0
	for _, b := range []bool{none, mandatory, optional} {
		if b {
			n++
		}
	}
	switch {
	case n > 1:
		return metadata.ColorNone, false, fmt.Errorf("only one of the %s color flags may be given", group)
	case mandatory:
		return metadata.ColorMandatory, true, nil
	case optional:
		return metadata.ColorOptional, true, nil
	default:
		return metadata.ColorNone, n == 1, nil
	}
}

// buildConfig layers the flags that were given on top of the config file.
func buildConfig(f *cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	vm, vset, err := colorMode("vertex", f.noVertexColor, f.vertexColor, f.optionalVertexColor)
	if err != nil {
		return nil, err
	}
	fm, fset, err := colorMode("face", f.noFaceColor, f.faceColor, f.optionalFaceColor)
	if err != nil {
		return nil, err
	}
	if vset {
		cfg.Parse.VertexColor = vm.String()
	}
	if fset {
		cfg.Parse.FaceColor = fm.String()
	}
	if f.set["vcc"] {
		cfg.Parse.VertexChannels = f.vertexChannels
	}
	if f.set["fcc"] {
		cfg.Parse.FaceChannels = f.faceChannels
	}
	if f.set["workers"] {
		cfg.Jobs.Workers = f.workers
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Not errors, but most likely not what the user meant.
	if cfg.Parse.VertexColor == metadata.ColorNone.String() && f.set["vcc"] {
		core.LogWarn("The number of vertex color channel is given, but vertex color is disabled.")
	}
	if cfg.Parse.FaceColor == metadata.ColorNone.String() && f.set["fcc"] {
		core.LogWarn("The number of face color channel is given, but face color is disabled.")
	}
	return cfg, nil
}

// resultPrinter writes each result as one block. Watch mode calls Print
// from several workers at once.
type resultPrinter struct {
	mutex sync.Mutex
	w     io.Writer
	emit  bool
}

func (p *resultPrinter) Print(r engine.LoadResult) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s\n", resultStyle.Render("[RESULT]"), r.Path)
	fmt.Fprintln(&b, format.Mesh(r.Mesh(), format.DefaultOmitted()))
	fmt.Fprintf(&b, "Elapsed: %s\n", r.Elapsed)
	if p.emit {
		if err := off.Write(&b, r.Mesh()); err != nil {
			core.LogError("%s: %s", r.Path, err)
		}
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	if _, err := p.w.Write(b.Bytes()); err != nil {
		core.LogError("%s: %s", r.Path, err)
	}
}

func run(args []string, stdout io.Writer) int {
	f, fs, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		core.LogError("%s", err)
		return exitInvalidArgs
	}
	if f.watchDir == "" && fs.NArg() == 0 {
		core.LogError("no OFF file given")
		return exitInvalidArgs
	}

	cfg, err := buildConfig(f)
	if err != nil {
		core.LogError("%s", err)
		return exitInvalidArgs
	}

	e, err := engine.New(cfg)
	if err != nil {
		core.LogError("%s", err)
		return exitInvalidArgs
	}
	defer e.Shutdown()

	printer := &resultPrinter{w: stdout, emit: f.emit}

	if f.watchDir != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// signal channel to capture system calls
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		go func() {
			<-sigCh
			cancel()
		}()

		err := e.Watch(ctx, f.watchDir, func(r engine.LoadResult) {
			if r.Err != nil {
				core.LogError("%s", r.Err)
				return
			}
			printer.Print(r)
		})
		if err != nil {
			core.LogError("%s", err)
			return exitParseFailure
		}
		return 0
	}

	status := 0
	for _, r := range e.LoadFiles(fs.Args()) {
		if r.Err != nil {
			core.LogError("%s", r.Err)
			status = exitParseFailure
			continue
		}
		printer.Print(r)
	}
	if fs.NArg() > 1 {
		parsed, failed := core.MetricsParsed()
		total, slowest := core.MetricsTotals()
		core.LogInfo("%d parsed, %d failed, average %s, slowest %s, total %s.", parsed, failed, core.MetricsAverage(), slowest, total)
	}
	return status
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}
