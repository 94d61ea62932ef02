package symbols

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match is one ranked search result.
type Match struct {
	Name  string
	Score int
}

// Index answers keyword queries against the fixed catalogs. It is what the
// model's search-symbols tool runs against, and what the sandbox consults
// when a program references a symbol it does not recognize.
type Index struct {
	names   []string        // catalog names, brands first then icons
	targets []string        // lowercased "name keyword keyword ..." per symbol
	byName  map[string]bool // exact membership
}

// NewIndex builds the index over the Brands and Icons catalogs.
func NewIndex() *Index {
	all := make([]Symbol, 0, len(Brands)+len(Icons))
	all = append(all, Brands...)
	all = append(all, Icons...)

	idx := &Index{
		names:   make([]string, 0, len(all)),
		targets: make([]string, 0, len(all)),
		byName:  make(map[string]bool, len(all)),
	}
	for _, sym := range all {
		idx.names = append(idx.names, sym.Name)
		idx.targets = append(idx.targets, strings.ToLower(sym.Name+" "+strings.Join(sym.Keywords, " ")))
		idx.byName[sym.Name] = true
	}
	return idx
}

// Has reports whether name is an exact catalog member.
func (idx *Index) Has(name string) bool {
	return idx.byName[name]
}

// Search returns up to limit symbol names ranked by fuzzy match quality
// against names and keywords. An empty query returns no matches.
func (idx *Index) Search(query string, limit int) []Match {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" || limit <= 0 {
		return nil
	}

	matches := fuzzy.Find(query, idx.targets)
	results := make([]Match, 0, limit)
	for _, m := range matches {
		results = append(results, Match{Name: idx.names[m.Index], Score: m.Score})
		if len(results) == limit {
			break
		}
	}
	return results
}

// Suggest returns up to n catalog names closest to a symbol name that is not
// in the catalog. Used to build missing-dependency messages that name real
// alternatives.
func (idx *Index) Suggest(name string, n int) []string {
	// Trailing typos defeat a subsequence matcher, so retry with the query
	// progressively shortened until something matches.
	for query := name; len(query) >= 4; query = query[:len(query)-1] {
		matches := idx.Search(query, n)
		if len(matches) == 0 {
			continue
		}
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Name)
		}
		return names
	}
	return nil
}

// Names returns every catalog name, brands first. The sandbox uses this to
// populate the execution environment's symbol tables.
func (idx *Index) Names() []string {
	out := make([]string, len(idx.names))
	copy(out, idx.names)
	return out
}
