package suggestsrc

import (
	"context"
	"testing"

	"github.com/dealhive/dealsearch/internal/store"
	"github.com/dealhive/dealsearch/internal/store/memory"
)

func seededStore() *memory.Store {
	s := memory.New()
	s.Load(store.Tags, []store.Record{
		{"id": "t1", "name": "laptop", "slug": "laptop"},
		{"id": "t2", "name": "laptop-bags", "slug": "laptop-bags"},
		{"id": "t3", "name": "coffee", "slug": "coffee"},
	})
	s.Load(store.Deals, []store.Record{
		{"id": "d1", "title": "Laptop Stand", "merchant": "Acme", "views_count": 50.0},
		{"id": "d2", "title": "Laptop Sleeve", "merchant": "Acme", "views_count": 900.0},
		{"id": "d3", "title": "Espresso Machine", "merchant": "", "views_count": 400.0},
	})
	s.Load(store.Categories, []store.Record{
		{"id": "c1", "name": "Home & Kitchen"},
		{"id": "c2", "name": "Kitchen Gadgets"},
	})
	return s
}

func TestTagNames_Prefix(t *testing.T) {
	repo := New(seededStore())
	names, err := repo.TagNames(context.Background(), "lap", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "laptop" || names[1] != "laptop-bags" {
		t.Errorf("names = %v", names)
	}
}

func TestDealTitles_MostViewedFirst(t *testing.T) {
	repo := New(seededStore())
	titles, err := repo.DealTitles(context.Background(), "laptop", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(titles) != 2 || titles[0] != "Laptop Sleeve" {
		t.Errorf("titles = %v", titles)
	}
}

func TestMerchants_Deduplicated(t *testing.T) {
	repo := New(seededStore())
	merchants, err := repo.Merchants(context.Background(), "ac", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merchants) != 1 || merchants[0] != "Acme" {
		t.Errorf("merchants = %v", merchants)
	}
}

func TestCategoryNames_Substring(t *testing.T) {
	repo := New(seededStore())
	names, err := repo.CategoryNames(context.Background(), "kitchen", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("names = %v", names)
	}
}

func TestTopDealTexts_TitleAndMerchant(t *testing.T) {
	repo := New(seededStore())
	texts, err := repo.TopDealTexts(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Top two deals by views: d2 (title+merchant) and d3 (empty merchant skipped).
	want := []string{"Laptop Sleeve", "Acme", "Espresso Machine"}
	if len(texts) != len(want) {
		t.Fatalf("texts = %v", texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], want[i])
		}
	}
}
