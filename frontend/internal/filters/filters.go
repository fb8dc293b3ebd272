// Package filters holds the forum list filter bar state. State is a value: every change
// produces a full replacement, and applying it turns it into a query string.
package filters

import (
	"net/url"
	"strings"
)

const (
	CategoryAll = "all"

	SortLatest       = "latest"
	SortOldest       = "oldest"
	SortPopularity   = "popularity"
	SortMostComments = "most_comments"

	paramSearch   = "search"
	paramCategory = "category"
	paramSort     = "sort"
)

type Option struct {
	Value string
	Label string
}

var sorts = []Option{
	{SortLatest, "Terbaru"},
	{SortOldest, "Terlama"},
	{SortPopularity, "Terpopuler"},
	{SortMostComments, "Komentar Terbanyak"},
}

var categories = []Option{
	{CategoryAll, "Semua Kategori"},
	{"teknologi", "Teknologi"},
	{"bisnis", "Bisnis"},
	{"desain", "Desain"},
	{"pendidikan", "Pendidikan"},
	{"sosial", "Sosial"},
	{"lainnya", "Lainnya"},
}

func Sorts() []Option      { return append([]Option(nil), sorts...) }
func Categories() []Option { return append([]Option(nil), categories...) }

type State struct {
	Search   string
	Category string
	Sort     string
}

func Default() State {
	return State{Category: CategoryAll, Sort: SortLatest}
}

// FromQuery reads the filter bar from a page query. Unknown sorts fall back to latest and a
// missing category means all; a category outside the known list is kept as is.
func FromQuery(q url.Values) State {
	return Default().
		WithSearch(q.Get(paramSearch)).
		WithCategory(q.Get(paramCategory)).
		WithSort(q.Get(paramSort))
}

func (s State) WithSearch(search string) State {
	s.Search = strings.TrimSpace(search)
	return s
}

func (s State) WithCategory(category string) State {
	category = strings.TrimSpace(category)
	if category == "" {
		category = CategoryAll
	}
	s.Category = category
	return s
}

func (s State) WithSort(sort string) State {
	if !validSort(sort) {
		sort = SortLatest
	}
	s.Sort = sort
	return s
}

func (s State) IsDefault() bool { return s == Default() }

// Query encodes s, leaving out values equal to the defaults.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Search != "" {
		q.Set(paramSearch, s.Search)
	}
	if s.Category != "" && s.Category != CategoryAll {
		q.Set(paramCategory, s.Category)
	}
	if s.Sort != "" && s.Sort != SortLatest {
		q.Set(paramSort, s.Sort)
	}
	return q
}

// URL is where applying s from the page at path leads.
func (s State) URL(path string) string {
	if q := s.Query(); len(q) > 0 {
		return path + "?" + q.Encode()
	}
	return path
}

func validSort(sort string) bool {
	for _, o := range sorts {
		if o.Value == sort {
			return true
		}
	}
	return false
}
