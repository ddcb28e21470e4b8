package main

import (
	"context"
	"flag"
	"log"
	"time"

	"roguedex/internal/dataset"
	"roguedex/internal/fetch"
	"roguedex/internal/resolve"
	"roguedex/internal/taxonomy"
	"roguedex/pkg/database"
)

func main() {
	var (
		series  = flag.String("series", "Amazing Spider-Man", "series name")
		baseURL = flag.String("base", "", "issue page URL template with one %d slot")
		mirror  = flag.String("mirror", "", "mirror URL serving a prefetched series JSON (overrides -base)")
		start   = flag.Int("start", 0, "first issue (0 = series default)")
		end     = flag.Int("end", 0, "last issue (0 = series default)")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var src fetch.Source
	switch {
	case *mirror != "":
		src = fetch.NewMirrorSource(*mirror)
	case *baseURL != "":
		wiki := fetch.NewWikiSource(*series, *baseURL)
		if *start > 0 && *end > 0 {
			wiki.Range = fetch.IssueRange{Start: *start, End: *end}
		}
		src = wiki
	default:
		log.Fatal("either -base or -mirror is required")
	}

	log.Printf("[scraper] fetching %s from %s", *series, src.Name())
	input, err := src.FetchSeries(ctx)
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}
	log.Printf("[scraper] fetched %d issues", len(input.Issues))

	resolver := resolve.New(taxonomy.DefaultRegistry())
	ds, err := resolver.Process(input)
	if err != nil {
		log.Fatalf("process failed: %v", err)
	}
	log.Printf("[scraper] resolved %d villains, %d groups", len(ds.Villains), len(ds.Groups))

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := dataset.NewRepo(db).Save(ctx, ds); err != nil {
		log.Fatalf("save failed: %v", err)
	}
	log.Printf("[scraper] dataset %q saved", ds.Series)
}
