// Command partctl inspects and manages partition sets.
//
// Usage:
//
//	partctl [flags] ls
//	partctl [flags] path MIN MAX
//	partctl [flags] cat N
//	partctl [flags] split INPUT
//	partctl [flags] rm
//
// The partition set is described by -config (YAML) or by -dir, -base, -ext
// and -format for local files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bmiovino/filepartition"
	"github.com/bmiovino/filepartition/codec"
	"github.com/bmiovino/filepartition/format"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	configPath := flag.String("config", "", "YAML configuration file")
	dir := flag.String("dir", ".", "Partition directory (without -config)")
	base := flag.String("base", "", "Partition base file name (without -config)")
	ext := flag.String("ext", "", "Partition file extension (without -config)")
	formatName := flag.String("format", "csv", "Record format: csv, jsonl, avro (without -config)")
	size := flag.Int("size", 0, "Records per partition for split (overrides the configuration)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		return 2
	}

	cfg, err := loadConfig(*configPath, *dir, *base, *ext, *formatName)
	if err != nil {
		return report(os.Stderr, err)
	}
	if *size > 0 {
		cfg.PartitionSize = *size
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, flag.Args(), os.Stdout); err != nil {
		return report(os.Stderr, err)
	}
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: partctl [flags] ls | path MIN MAX | cat N | split INPUT | rm\n\nflags:\n")
	flag.PrintDefaults()
}

func loadConfig(path, dir, base, ext, formatName string) (*filepartition.Config, error) {
	if path != "" {
		return filepartition.LoadConfig(path)
	}

	cfg := &filepartition.Config{
		Layout: filepartition.LayoutConfig{Dir: dir, BaseName: base, Extension: ext},
		Format: formatName,
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run dispatches on the record shape of the configured format. CSV rows are
// read as header-keyed string maps, everything else as generic maps.
func run(ctx context.Context, cfg *filepartition.Config, args []string, out io.Writer) error {
	fopts, err := cfg.FormatOptions()
	if err != nil {
		return err
	}
	if name := strings.ToLower(cfg.Format); name == "" || name == "csv" {
		return command[map[string]string](ctx, cfg, format.CSVMap{Comma: fopts.Comma}, args, out)
	}

	f, err := format.ByName[map[string]any](cfg.Format, fopts)
	if err != nil {
		return err
	}
	return command(ctx, cfg, f, args, out)
}

func command[T any](ctx context.Context, cfg *filepartition.Config, f format.Format[T], args []string, out io.Writer) error {
	p, err := filepartition.OpenWithFormat(ctx, cfg, f)
	if err != nil {
		return err
	}

	switch args[0] {
	case "ls":
		return list(ctx, p, out)

	case "path":
		if len(args) != 3 {
			return errors.New("path needs MIN and MAX")
		}
		lo, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("MIN: %w", err)
		}
		hi, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("MAX: %w", err)
		}
		_, err = fmt.Fprintln(out, p.PartitionFilePath(lo, hi))
		return err

	case "cat":
		if len(args) != 2 {
			return errors.New("cat needs a partition number")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("N: %w", err)
		}
		res, err := p.ReadPartition(ctx, n)
		if err != nil {
			return err
		}
		for _, item := range res.Data {
			line, err := codec.Default.Marshal(item)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out, string(line)); err != nil {
				return err
			}
		}
		return nil

	case "split":
		if len(args) != 2 {
			return errors.New("split needs an input file")
		}
		in, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer func() { _ = in.Close() }()

		items, err := f.Decode(in)
		if err != nil {
			return fmt.Errorf("decode %s: %w", args[1], err)
		}
		if err := p.WritePartitions(ctx, items, cfg.PartitionSize); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "wrote %d records in %d partitions\n", len(items), p.NumberOfPartitions())
		return err

	case "rm":
		removed, err := p.Purge(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "removed %d partitions\n", removed)
		return err

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func list[T any](ctx context.Context, p *filepartition.Partitioner[T], out io.Writer) error {
	if err := p.Rescan(ctx); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tMIN\tMAX\tRECORDS\tPATH")
	for _, r := range p.Records() {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\n", r.Number, r.MinIndex, r.MaxIndex, r.Len(), p.PartitionFilePath(r.MinIndex, r.MaxIndex))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	report := p.Inspect()
	fmt.Fprintf(out, "\n%d partitions, %d indices covered [%d, %d]\n",
		report.Partitions, report.Covered, p.MinIndex(), p.MaxIndex())
	for _, g := range report.Gaps {
		fmt.Fprintf(out, "gap %s\n", g)
	}
	for _, o := range report.Overlapping {
		fmt.Fprintf(out, "overlap %s %s\n", o.A.Boundary(), o.B.Boundary())
	}
	return nil
}

// report prints err and returns the process exit code for it.
func report(w io.Writer, err error) int {
	fmt.Fprintf(w, "partctl: %v\n", err)
	switch filepartition.StatusOf(err).Kind {
	case filepartition.KindValidation:
		return 2
	case filepartition.KindNotFound:
		return 3
	default:
		return 1
	}
}
