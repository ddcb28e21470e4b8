package dataset

import (
	"context"
	"testing"
	"time"

	"roguedex/pkg/database"
	"roguedex/pkg/models"
)

func newRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepo(db)
}

func sample(series string) *models.SeriesDataset {
	return &models.SeriesDataset{
		Series:      series,
		ProcessedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Stats:       models.Stats{TotalVillains: 1, MostFrequent: "Green Goblin", MostFrequentCount: 2, AverageFrequency: 2},
		Villains: []models.Villain{{
			ID: "green-goblin", Name: "Green Goblin", Aliases: []string{},
			IdentitySource: models.SourceName, FirstAppearance: 1,
			Appearances: []int{1, 2}, Frequency: 2,
		}},
		Timeline: []models.TimelineEntry{{
			Issue: 1, VillainCount: 1,
			Villains:    []string{"Green Goblin"},
			VillainURLs: []*string{nil},
			VillainIDs:  []string{"green-goblin"},
		}},
	}
}

func TestRepoRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, sample("Test Series")); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, "Test Series")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored dataset")
	}
	if got.Series != "Test Series" || len(got.Villains) != 1 || got.Villains[0].Frequency != 2 {
		t.Fatalf("unexpected dataset: %+v", got)
	}
	if got.Timeline[0].VillainURLs[0] != nil {
		t.Fatal("nil url slot must survive the round trip")
	}
}

func TestRepoGetMissing(t *testing.T) {
	repo := newRepo(t)
	got, err := repo.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing series, got %+v", got)
	}
}

func TestRepoUpsertKeepsOneRowPerSeries(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := sample("Test Series")
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := sample("Test Series")
	second.Stats.TotalVillains = 7
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("re-save: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 row after upsert, got %d", len(items))
	}
	if items[0].VillainCount != 7 {
		t.Fatalf("expected updated villain count, got %d", items[0].VillainCount)
	}
}

func TestRepoDelete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, sample("Test Series")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, "Test Series"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := repo.Get(ctx, "Test Series"); got != nil {
		t.Fatal("expected dataset gone after delete")
	}
	// deleting again is not an error
	if err := repo.Delete(ctx, "Test Series"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
