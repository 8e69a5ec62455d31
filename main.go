// ABOUTME: Entry point for the careergen application
// ABOUTME: Handles command-line parsing, profiling, and routing to CLI or TUI modes

// Package main provides the entry point for careergen, a Clone Hero career
// setlist generator that arranges a scored song library into difficulty tiers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"careergen/config"
	"careergen/scanner"
	"careergen/setlist"
	"careergen/song"
	"careergen/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	interactive := flag.Bool("tui", false, "run in interactive mode with tier review and re-rolls")
	debug := flag.Bool("debug", false, "enable debug logging to careergen-debug.log")
	dryRun := flag.Bool("dry-run", false, "preview tiers without writing a setlist")
	output := flag.String("out", "", "write setlist to this file (default: career.setlist)")
	seed := flag.Int64("seed", 0, "fixed shuffle seed for reproducible tiers (default: random)")
	artist := flag.String("artist", "", "restrict the career to songs by this artist")
	noCache := flag.Bool("rescan", false, "ignore the scan cache and re-read every song")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: careergen [flags] <songs-directory>")
		fmt.Println("Example: careergen ~/clonehero/Songs")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	opts := RunOptions{
		LibraryRoot: args[0],
		OutputPath:  *output,
		ArtistQuery: *artist,
		DryRun:      *dryRun,
		NoCache:     *noCache,
		DebugLog:    *debug,
	}
	if isFlagSet("seed") {
		opts.Seed = seed
	}

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	if *interactive {
		if *debug {
			if err := SetupDebugLog("careergen-debug.log"); err != nil {
				log.Printf("Failed to setup debug log: %v", err)

				return 1
			}
		}

		if err := runTUI(opts); err != nil {
			log.Printf("TUI error: %v", err)

			return 1
		}

		return 0
	}

	if err := RunCLI(opts); err != nil {
		log.Printf("CLI error: %v", err)

		return 1
	}

	return 0
}

// isFlagSet reports whether the named flag was passed explicitly, which
// distinguishes -seed 0 from no seed at all
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})

	return set
}

// runTUI wires shared state into the interactive mode
func runTUI(opts RunOptions) error {
	configPath := config.GetConfigPath()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	shared := config.NewSharedConfig(cfg)

	deps := tui.Deps{
		Scan: func(ctx context.Context, progress func(done, total int)) ([]song.Song, error) {
			return ScanLibrary(ctx, opts, func(p scanner.Progress) {
				progress(p.Processed, p.Total)
			})
		},
		Arrange: func(songs []song.Song, cfg config.Config, seed *int64) ([][]song.Song, error) {
			return Arrange(songs, cfg, opts.ArtistQuery, seed)
		},
		Export: setlist.ExportTiers,
		Debugf: debugf,
	}

	return tui.Run(tui.Options{
		LibraryRoot: opts.LibraryRoot,
		OutputPath:  opts.OutputPath,
		ArtistQuery: opts.ArtistQuery,
		Seed:        opts.Seed,
		DryRun:      opts.DryRun,
		NoCache:     opts.NoCache,
	}, shared, deps, configPath)
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
