// Command build-titles converts the IMDb title.basics dataset into the JSON
// array kinobotd loads at startup.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/vmunix/kinobot/internal/titles"
)

func main() {
	input := flag.String("input", "title.basics.tsv.gz", "IMDb title.basics file (.tsv or .tsv.gz)")
	output := flag.String("output", "movies.json", "Output JSON file")
	types := flag.String("types", "movie", "Comma-separated title types to keep (empty keeps all)")
	adult := flag.Bool("adult", false, "Keep titles flagged as adult")
	flag.Parse()

	f := filter{types: parseTypes(*types), adult: *adult}
	if err := run(*input, *output, f); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseTypes(s string) map[string]bool {
	keep := make(map[string]bool)
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			keep[t] = true
		}
	}
	return keep
}

type filter struct {
	types map[string]bool // empty keeps every type
	adult bool
}

func (f filter) keep(rec titles.Record) bool {
	if rec.IsAdult && !f.adult {
		return false
	}
	return len(f.types) == 0 || f.types[rec.TitleType]
}

func run(input, output string, f filter) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	var r io.Reader = in
	if strings.HasSuffix(input, ".gz") {
		zr, err := gzip.NewReader(in)
		if err != nil {
			return fmt.Errorf("open gzip: %w", err)
		}
		defer func() { _ = zr.Close() }()
		r = zr
	}

	records, st, err := convert(r, f)
	if err != nil {
		return err
	}
	fmt.Printf("Read %d rows: %d kept, %d filtered, %d rejected\n",
		st.rows, len(records), st.filtered, st.rejected)

	if err := writeAtomic(output, records); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Printf("Written to %s\n", output)
	return nil
}

type stats struct {
	rows     int
	filtered int
	rejected int
}

// convert reads tab-separated rows after the header line. Malformed rows are
// counted as rejected, rows the filter drops as filtered.
func convert(r io.Reader, f filter) ([]titles.Record, stats, error) {
	var st stats
	var records []titles.Record

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	header := true
	for sc.Scan() {
		if header {
			header = false
			continue
		}
		st.rows++

		rec, ok := titles.ParseRow(strings.Split(sc.Text(), "\t"))
		if !ok {
			st.rejected++
			continue
		}
		if !f.keep(rec) {
			st.filtered++
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, st, fmt.Errorf("read input: %w", err)
	}
	return records, st, nil
}

func writeAtomic(path string, records []titles.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".titles-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := titles.Encode(tmp, records); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
