// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// g4scan scans nucleotide sequences for putative G-quadruplex forming
// sequences (G4s/QGRS), groups raw hits into overlap families and
// reports one representative per family.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kortschak/g4scan/internal/export"
	"github.com/kortschak/g4scan/internal/g4"
	"github.com/kortschak/g4scan/internal/loader"
)

// bedgraphFlag is an optional-value boolean flag: "-bedgraph" alone
// enables the sidecar with no label, "-bedgraph=label" supplies one.
type bedgraphFlag struct {
	set   bool
	label string
}

func (b *bedgraphFlag) String() string { return b.label }
func (b *bedgraphFlag) IsBoolFlag() bool { return true }

func (b *bedgraphFlag) Set(v string) error {
	b.set = true
	if v == "true" {
		// The flag package passes "true" for a bare -bedgraph.
		v = ""
	}
	b.label = v
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("g4scan", flag.ContinueOnError)

	seq := fs.String("seq", "", "inline sequence to scan (mutually exclusive with -file)")
	file := fs.String("file", "", "FASTA file to scan (mutually exclusive with -seq)")
	minTetrads := fs.Int("min_tetrads", 2, "minimum G-run length to seed a candidate")
	minScore := fs.Int("min_score", 17, "minimum heuristic G-score")
	maxGRun := fs.Int("max_g_run", 10, "maximum G-run length to consider")
	maxG4Length := fs.Int("max_g4_length", 45, "maximum total length of a G4")
	format := fs.String("format", "text", "output format: text or columnar")
	mode := fs.String("mode", "mmap", "ingestion mode for file input: mmap or stream")
	output := fs.String("output", "", "output file (valid only with -seq)")
	outputDir := fs.String("output_dir", "", "output directory (required with -file)")
	var bg bedgraphFlag
	fs.Var(&bg, "bedgraph", "write a bedGraph family-density sidecar, with optional label")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage of %[1]s:
  $ %[1]s -seq <sequence> [options]
  $ %[1]s -file <fasta> -output_dir <dir> [options]

Options:
`, os.Args[0])
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	limits := g4.Limits{
		MinTetrads:  *minTetrads,
		MaxGRun:     *maxGRun,
		MaxG4Length: *maxG4Length,
		MinScore:    *minScore,
	}
	if err := limits.Validate(); err != nil {
		log.Println(err)
		fs.Usage()
		return 2
	}

	haveSeq := *seq != ""
	haveFile := *file != ""
	if haveSeq == haveFile {
		log.Println("g4scan: exactly one of -seq or -file is required")
		fs.Usage()
		return 2
	}
	if *format != "text" && *format != "columnar" {
		log.Printf("g4scan: unknown format: %q", *format)
		return 2
	}
	if *mode != "mmap" && *mode != "stream" {
		log.Printf("g4scan: unknown mode: %q", *mode)
		return 2
	}

	if haveSeq {
		if explicit["mode"] {
			log.Println("g4scan: -mode is only valid with -file")
			return 2
		}
		if explicit["output_dir"] {
			log.Println("g4scan: -output_dir is only valid with -file")
			return 2
		}
		if bg.set && *output == "" {
			log.Println("g4scan: -bedgraph requires -output when using -seq")
			return 2
		}
		if err := runInline(*seq, limits, *format, *output, bg); err != nil {
			log.Println(err)
			return 1
		}
		return 0
	}

	if explicit["output"] {
		log.Println("g4scan: -output is only valid with -seq")
		return 2
	}
	if *outputDir == "" {
		log.Println("g4scan: -output_dir is required with -file")
		return 2
	}
	if err := runFile(*file, *mode, limits, *format, *outputDir, bg); err != nil {
		log.Println(err)
		return 1
	}
	return 0
}

func runInline(seq string, limits g4.Limits, format, output string, bg bedgraphFlag) error {
	s := loader.LoadInline(seq)
	hits, err := g4.DispatchWindows(s, limits)
	if err != nil {
		return err
	}
	families, err := g4.Consolidate(hits)
	if err != nil {
		return err
	}
	reps := representatives(families)

	var w = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if format == "columnar" {
		if err := export.WriteColumnar(w, output, reps); err != nil {
			return err
		}
	} else {
		if err := export.WriteText(w, reps); err != nil {
			return err
		}
	}

	if bg.set {
		bf, err := os.Create(output + ".bedgraph")
		if err != nil {
			return err
		}
		defer bf.Close()
		if err := export.WriteBedGraph(bf, s.Name, families, bg.label); err != nil {
			return err
		}
	}
	return nil
}

func runFile(path, mode string, limits g4.Limits, format, outputDir string, bg bedgraphFlag) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	alloc := export.NewNameAllocator()
	n := 0

	write := func(name string, hits []g4.Hit) error {
		n++
		families, err := g4.Consolidate(hits)
		if err != nil {
			return err
		}
		return writeRecord(outputDir, alloc, name, format, families, bg)
	}

	switch mode {
	case "mmap":
		seqs, err := loader.LoadMmap(path)
		if err != nil {
			return err
		}
		if len(seqs) == 0 {
			return fmt.Errorf("g4scan: %s contains no FASTA records", path)
		}
		for _, s := range seqs {
			hits, err := g4.DispatchWindows(s, limits)
			if err != nil {
				return err
			}
			if err := write(s.Name, hits); err != nil {
				return err
			}
		}
	case "stream":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := loader.ScanStream(f, limits, write); err != nil {
			return err
		}
	}

	if n == 0 {
		return fmt.Errorf("g4scan: %s contains no FASTA records", path)
	}
	return nil
}

func writeRecord(outputDir string, alloc *export.NameAllocator, name, format string, families []g4.Family, bg bedgraphFlag) error {
	ext := ".txt"
	if format == "columnar" {
		ext = ".bin"
	}
	stem := alloc.Next(export.Sanitize(name))
	path := filepath.Join(outputDir, stem+ext)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reps := representatives(families)
	if format == "columnar" {
		if err := export.WriteColumnar(f, path, reps); err != nil {
			return err
		}
	} else {
		if err := export.WriteText(f, reps); err != nil {
			return err
		}
	}

	if bg.set {
		bf, err := os.Create(filepath.Join(outputDir, stem+".bedgraph"))
		if err != nil {
			return err
		}
		defer bf.Close()
		if err := export.WriteBedGraph(bf, name, families, bg.label); err != nil {
			return err
		}
	}
	return nil
}

func representatives(families []g4.Family) []g4.Hit {
	reps := make([]g4.Hit, len(families))
	for i, f := range families {
		reps[i] = f.Representative
	}
	return reps
}
