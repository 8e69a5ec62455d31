// ABOUTME: CLI mode implementation for non-interactive career generation
// ABOUTME: Handles scan progress display, tier table output and setlist export

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"careergen/scanner"
	"careergen/setlist"
	"careergen/song"
)

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// RunCLI scans the library, arranges tiers and exports the setlist
func RunCLI(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog("careergen-debug.log"); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-stop
		cancel()
	}()

	fmt.Printf("Scanning library: %s\n", opts.LibraryRoot)

	progress := cliScanProgress(isTTY(os.Stdout))

	data, err := InitializeLibrary(ctx, opts, progress)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d playable songs\n\n", len(data.Songs))

	tiers, err := Arrange(data.Songs, data.Config, opts.ArtistQuery, opts.Seed)
	if err != nil {
		return err
	}

	printTiers(tiers, data.Config.TierTheme)

	if opts.DryRun {
		fmt.Println("\n--dry-run mode: no setlist written")

		return nil
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = "career.setlist"
	}

	fmt.Printf("\nWriting setlist to: %s\n", outputPath)

	if err := setlist.ExportTiers(tiers, outputPath); err != nil {
		return err
	}

	fmt.Println("Done!")

	return nil
}

// cliScanProgress returns a progress callback that overwrites a status line
// on a TTY and stays silent otherwise
func cliScanProgress(isTerminal bool) func(scanner.Progress) {
	if !isTerminal {
		return nil
	}

	tracker := newProgressTracker()

	return func(p scanner.Progress) {
		if p.Total == 0 {
			return
		}

		rate, print := tracker.observe(p.Processed, p.Total)
		if !print {
			return
		}

		fmt.Printf("\rScanning %d/%d songs (%.0f/s)     ", p.Processed, p.Total, rate)

		if p.Processed == p.Total {
			fmt.Println()
		}
	}
}

// printTiers writes the arrangement as a table, one section per tier
func printTiers(tiers [][]song.Song, theme string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	for ti, tier := range tiers {
		name := setlist.TierName(ti, setlist.Theme(theme))

		if _, err := fmt.Fprintf(w, "%s\t%s\t\t\t\t\n", name, formatScoreRange(tier)); err != nil {
			log.Printf("Warning: failed to write tier header: %v", err)
		}

		for _, s := range tier {
			flags := ""
			if s.IsVeryLong {
				flags = "long"
			}

			if _, err := fmt.Fprintf(w, "  %s\t%s\t%s\t%d\t%.1f\t%s\n",
				truncate(s.Name, 34),
				truncate(s.Artist, 24),
				formatDuration(s.LengthMS),
				s.DiffGuitar,
				s.Score,
				flags,
			); err != nil {
				log.Printf("Warning: failed to write song row: %v", err)
			}
		}

		if len(tier) == 0 {
			if _, err := fmt.Fprintln(w, "  (empty)\t\t\t\t\t"); err != nil {
				log.Printf("Warning: failed to write empty marker: %v", err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}
}
