package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"roguedex/internal/dataset"
	"roguedex/internal/merge"
	"roguedex/internal/resolve"
	"roguedex/internal/taxonomy"
	"roguedex/pkg/database"
	"roguedex/pkg/models"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "process":
		handleProcess(args[1:])
	case "merge":
		handleMerge(args[1:])
	case "export":
		handleExport(args[1:])
	case "mirror":
		handleMirror(args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

// handleProcess resolves one raw series input file into a dataset.
func handleProcess(args []string) {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	in := fs.String("in", "", "raw series input JSON path")
	out := fs.String("out", "", "output dataset JSON path (default: <series>.dataset.json)")
	save := fs.Bool("save", false, "also save the dataset to the local database")
	_ = fs.Parse(args)

	if *in == "" {
		log.Fatal("usage: roguedex process -in series.json [-out dataset.json] [-save]")
	}

	var input models.SeriesInput
	if err := readJSON(*in, &input); err != nil {
		log.Fatalf("read input: %v", err)
	}

	ds, err := resolve.New(taxonomy.DefaultRegistry()).Process(&input)
	if err != nil {
		log.Fatalf("process failed: %v", err)
	}

	path := *out
	if path == "" {
		path = slugFile(ds.Series) + ".dataset.json"
	}
	if err := writeJSON(path, ds); err != nil {
		log.Fatalf("write dataset: %v", err)
	}
	log.Printf("[cli] processed %q: %d villains, %d timeline entries -> %s",
		ds.Series, len(ds.Villains), len(ds.Timeline), path)

	if *save {
		saveToDB(ds)
	}
}

// handleMerge combines previously processed dataset files.
func handleMerge(args []string) {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	out := fs.String("out", "merged.dataset.json", "output dataset JSON path")
	save := fs.Bool("save", false, "also save the merged dataset to the local database")
	_ = fs.Parse(args)

	files := fs.Args()
	if len(files) == 0 {
		log.Fatal("usage: roguedex merge [-out merged.json] [-save] dataset.json...")
	}

	datasets := make([]*models.SeriesDataset, 0, len(files))
	for _, f := range files {
		var ds models.SeriesDataset
		if err := readJSON(f, &ds); err != nil {
			log.Fatalf("read dataset %s: %v", f, err)
		}
		datasets = append(datasets, &ds)
	}

	combined, err := merge.Merge(datasets)
	if err != nil {
		log.Fatalf("merge failed: %v", err)
	}
	if err := writeJSON(*out, combined); err != nil {
		log.Fatalf("write merged dataset: %v", err)
	}
	log.Printf("[cli] merged %d datasets into %q -> %s", len(datasets), combined.Series, *out)

	if *save {
		saveToDB(combined)
	}
}

// handleExport writes the villain table of a dataset as CSV.
func handleExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	in := fs.String("in", "", "dataset JSON path")
	out := fs.String("out", "villains.csv", "output CSV path")
	_ = fs.Parse(args)

	if *in == "" {
		log.Fatal("usage: roguedex export -in dataset.json [-out villains.csv]")
	}
	var ds models.SeriesDataset
	if err := readJSON(*in, &ds); err != nil {
		log.Fatalf("read dataset: %v", err)
	}
	if err := writeCSV(*out, ds.Villains); err != nil {
		log.Fatalf("write csv: %v", err)
	}
	log.Printf("[cli] exported %d villains to %s", len(ds.Villains), *out)
}

// handleMirror serves a prefetched raw series JSON for the scraper's
// -mirror mode, so re-processing never hits the wiki.
func handleMirror(args []string) {
	fs := flag.NewFlagSet("mirror", flag.ExitOnError)
	data := fs.String("data", "data/series.json", "raw series input JSON path")
	addr := fs.String("addr", ":9000", "listen address")
	_ = fs.Parse(args)

	http.HandleFunc("/series.json", func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile(*data)
		if err != nil {
			http.Error(w, "cannot read series JSON: "+err.Error(), http.StatusInternalServerError)
			return
		}
		// validate so a bad file doesn't silently break consumers
		var input models.SeriesInput
		if err := json.Unmarshal(b, &input); err != nil {
			http.Error(w, "series JSON invalid: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err := input.Validate(); err != nil {
			http.Error(w, "series JSON invalid: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	})

	log.Printf("mirror serving %s on %s", *data, *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

func saveToDB(ds *models.SeriesDataset) {
	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := dataset.NewRepo(db).Save(ctx, ds); err != nil {
		log.Fatalf("save failed: %v", err)
	}
	log.Printf("[cli] dataset %q saved to database", ds.Series)
}

func readJSON(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, villains []models.Villain) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{
		"id", "name", "aliases", "url", "identity_source", "first_appearance", "frequency",
	}); err != nil {
		return err
	}
	for _, v := range villains {
		if err := writer.Write([]string{
			v.ID,
			v.Name,
			strings.Join(v.Aliases, "|"),
			v.URL,
			string(v.IdentitySource),
			fmt.Sprintf("%d", v.FirstAppearance),
			fmt.Sprintf("%d", v.Frequency),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func slugFile(series string) string {
	s := strings.ToLower(strings.TrimSpace(series))
	return strings.ReplaceAll(s, " ", "-")
}

func printUsage() {
	fmt.Println("roguedex <command> [flags]")
	fmt.Println("commands:")
	fmt.Println("  process -in series.json [-out dataset.json] [-save]")
	fmt.Println("  merge [-out merged.json] [-save] dataset.json...")
	fmt.Println("  export -in dataset.json [-out villains.csv]")
	fmt.Println("  mirror [-data series.json] [-addr :9000]")
}
