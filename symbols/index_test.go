package symbols

import (
	"testing"
)

func TestIndexHas(t *testing.T) {
	idx := NewIndex()

	if !idx.Has("BrandGithub") {
		t.Error("expected BrandGithub to be a catalog member")
	}
	if !idx.Has("IconArrowRight") {
		t.Error("expected IconArrowRight to be a catalog member")
	}
	if idx.Has("BrandGithup") {
		t.Error("misspelled name should not be a catalog member")
	}
	if idx.Has("iconarrowright") {
		t.Error("membership is case-sensitive")
	}
}

func TestIndexSearch(t *testing.T) {
	idx := NewIndex()

	tests := []struct {
		name    string
		query   string
		limit   int
		want    string // expected to appear in results
		wantNil bool
	}{
		{name: "keyword match", query: "subscribe", limit: 5, want: "BrandYoutube"},
		{name: "name fragment", query: "github", limit: 5, want: "BrandGithub"},
		{name: "icon keyword", query: "notification", limit: 5, want: "IconBell"},
		{name: "empty query", query: "", limit: 5, wantNil: true},
		{name: "zero limit", query: "github", limit: 0, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := idx.Search(tt.query, tt.limit)
			if tt.wantNil {
				if len(results) != 0 {
					t.Fatalf("expected no results, got %d", len(results))
				}
				return
			}
			if len(results) == 0 {
				t.Fatalf("no results for %q", tt.query)
			}
			if len(results) > tt.limit {
				t.Fatalf("got %d results, limit was %d", len(results), tt.limit)
			}
			for _, r := range results {
				if r.Name == tt.want {
					return
				}
			}
			t.Errorf("expected %q among results for %q, got %v", tt.want, tt.query, results)
		})
	}
}

func TestIndexSuggest(t *testing.T) {
	idx := NewIndex()

	suggestions := idx.Suggest("BrandGithup", 3)
	if len(suggestions) == 0 {
		t.Fatal("expected suggestions for near-miss name")
	}
	found := false
	for _, s := range suggestions {
		if !idx.Has(s) {
			t.Errorf("suggestion %q is not a catalog member", s)
		}
		if s == "BrandGithub" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected BrandGithub among suggestions, got %v", suggestions)
	}
}

func TestCatalogNamesAreWellFormed(t *testing.T) {
	for _, sym := range Brands {
		if len(sym.Name) < 6 || sym.Name[:5] != "Brand" {
			t.Errorf("brand symbol %q must carry the Brand prefix", sym.Name)
		}
	}
	for _, sym := range Icons {
		if len(sym.Name) < 5 || sym.Name[:4] != "Icon" {
			t.Errorf("icon symbol %q must carry the Icon prefix", sym.Name)
		}
	}
}
