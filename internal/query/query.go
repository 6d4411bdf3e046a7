// Package query filters, sorts and paginates entity snapshots for display.
// Every function is pure: inputs are never modified.
package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// DefaultPageSize applies when a spec carries no positive page size.
const DefaultPageSize = 12

// SortKey selects the ordering of a view.
type SortKey string

const (
	SortNone       SortKey = ""
	SortDateAsc    SortKey = "date-asc"
	SortDateDesc   SortKey = "date-desc"
	SortBudgetAsc  SortKey = "budget-asc"
	SortBudgetDesc SortKey = "budget-desc"
	SortPriority   SortKey = "priority"
	SortFavorites  SortKey = "favorites"
)

// Spec describes what a view shows. Zero values disable each filter.
type Spec struct {
	Text      string
	Tags      []string
	Status    string
	Payment   string
	Project   string
	DateRange DateRange
	Sort      SortKey
	PageIndex int
	PageSize  int
}

// Result is one page of a view.
type Result[T any] struct {
	Page       []T `json:"page"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

// Accessor exposes the fields of T the engine filters and sorts on. A nil
// function disables the matching filter or sort for T.
type Accessor[T any] struct {
	Search  func(T) string
	Tags    func(T) []string
	Status  func(T) string
	Payment func(T) string
	Project func(T) string
	Date    func(T) (time.Time, bool)
	// PseudoTags are tag values that select on Status instead of Tags.
	PseudoTags []string
	// Favorite, when set, is the primary sort key of every sort.
	Favorite func(T) bool
	Sorts    map[SortKey]func(a, b T) int
}

// Run applies spec to items.
func Run[T any](items []T, spec Spec, acc Accessor[T]) Result[T] {
	filtered := Filter(items, spec, acc)
	Sort(filtered, spec.Sort, acc)
	page, total := Paginate(filtered, spec.PageIndex, spec.PageSize)
	return Result[T]{Page: page, TotalPages: total, Total: len(filtered)}
}

// Filter returns the items matching every filter of spec, in input order.
func Filter[T any](items []T, spec Spec, acc Accessor[T]) []T {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(spec.Text))
	statuses, tags := splitTags(spec.Tags, acc.PseudoTags)

	out := make([]T, 0, len(items))
	for _, it := range items {
		if needle != "" && acc.Search != nil && !strings.Contains(fold.String(acc.Search(it)), needle) {
			continue
		}
		if acc.Status != nil {
			if !isAll(spec.Status) && acc.Status(it) != spec.Status {
				continue
			}
			if len(statuses) > 0 && !slices.Contains(statuses, acc.Status(it)) {
				continue
			}
		}
		if len(tags) > 0 && (acc.Tags == nil || !hasAll(fold, acc.Tags(it), tags)) {
			continue
		}
		if acc.Payment != nil && !isAll(spec.Payment) && acc.Payment(it) != spec.Payment {
			continue
		}
		if acc.Project != nil && !isAll(spec.Project) && acc.Project(it) != spec.Project {
			continue
		}
		if acc.Date != nil && !spec.DateRange.Unbounded() {
			d, ok := acc.Date(it)
			if !ok || !spec.DateRange.Contains(d) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// Sort orders items in place. The sort is stable so ties keep input order.
func Sort[T any](items []T, key SortKey, acc Accessor[T]) {
	less := acc.Sorts[key]
	if less == nil && acc.Favorite == nil {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		if acc.Favorite != nil {
			if c := compareFavorite(acc.Favorite(a), acc.Favorite(b)); c != 0 {
				return c
			}
		}
		if less == nil {
			return 0
		}
		return less(a, b)
	})
}

// Paginate returns page index (1-based) and the page count. An index out of
// range yields an empty page.
func Paginate[T any](items []T, index, size int) ([]T, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := (len(items) + size - 1) / size
	if index < 1 || index > total {
		return []T{}, total
	}
	start := (index - 1) * size
	end := min(start+size, len(items))
	return slices.Clone(items[start:end]), total
}

// ClampPage bounds a requested page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	return max(1, min(page, totalPages))
}

// ByDate orders by the accessor date, undated items last in both directions.
func ByDate[T any](date func(T) (time.Time, bool), desc bool) func(a, b T) int {
	return func(a, b T) int {
		da, okA := date(a)
		db, okB := date(b)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		if desc {
			return db.Compare(da)
		}
		return da.Compare(db)
	}
}

// ByNumber orders by a numeric field.
func ByNumber[T any, N cmp.Ordered](field func(T) N, desc bool) func(a, b T) int {
	return func(a, b T) int {
		if desc {
			return cmp.Compare(field(b), field(a))
		}
		return cmp.Compare(field(a), field(b))
	}
}

func compareFavorite(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	}
	return 1
}

func isAll(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "all", "Tous", "Toutes":
		return true
	}
	return false
}

func splitTags(selected, pseudo []string) (statuses, tags []string) {
	for _, t := range selected {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if slices.Contains(pseudo, t) {
			statuses = append(statuses, t)
		} else {
			tags = append(tags, t)
		}
	}
	return statuses, tags
}

func hasAll(fold cases.Caser, have, want []string) bool {
	folded := make([]string, len(have))
	for i, h := range have {
		folded[i] = fold.String(h)
	}
	for _, w := range want {
		if !slices.Contains(folded, fold.String(w)) {
			return false
		}
	}
	return true
}
