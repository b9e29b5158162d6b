// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package models

import (
	"net/url"
	"strconv"
)

// TimeWindow selects the trending aggregation window.
type TimeWindow string

// Valid trending time windows.
const (
	TimeWindowDay  TimeWindow = "day"
	TimeWindowWeek TimeWindow = "week"
)

// Strategy selects the personalized recommendation algorithm.
type Strategy string

// Valid recommendation strategies.
const (
	StrategyHybrid        Strategy = "hybrid"
	StrategyCollaborative Strategy = "collaborative"
	StrategyContent       Strategy = "content"
	StrategyTrending      Strategy = "trending"
)

// SearchFilters holds the multi-field movie search filter. Every field is
// optional; zero values are omitted from the generated query string.
type SearchFilters struct {
	Query         string
	Genre         string
	Year          int
	Language      string
	MinRating     float64
	MaxRating     float64
	MinRuntime    int
	MaxRuntime    int
	MinRevenue    int64
	MaxRevenue    int64
	Certification string
	WithCast      string
	WithCrew      string
	WithCompanies string
	WithKeywords  string
	SortBy        string
	Page          int
}

// Values builds the query string for /movies/search/, omitting zero-valued
// fields so the backend applies only the filters the caller set.
func (f SearchFilters) Values() url.Values {
	v := url.Values{}

	setStr := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	setInt := func(key string, val int) {
		if val != 0 {
			v.Set(key, strconv.Itoa(val))
		}
	}

	setStr("query", f.Query)
	setStr("genre", f.Genre)
	setInt("year", f.Year)
	setStr("language", f.Language)
	if f.MinRating != 0 {
		v.Set("min_rating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if f.MaxRating != 0 {
		v.Set("max_rating", strconv.FormatFloat(f.MaxRating, 'f', -1, 64))
	}
	setInt("min_runtime", f.MinRuntime)
	setInt("max_runtime", f.MaxRuntime)
	if f.MinRevenue != 0 {
		v.Set("min_revenue", strconv.FormatInt(f.MinRevenue, 10))
	}
	if f.MaxRevenue != 0 {
		v.Set("max_revenue", strconv.FormatInt(f.MaxRevenue, 10))
	}
	setStr("certification", f.Certification)
	setStr("with_cast", f.WithCast)
	setStr("with_crew", f.WithCrew)
	setStr("with_companies", f.WithCompanies)
	setStr("with_keywords", f.WithKeywords)
	setStr("sort_by", f.SortBy)
	setInt("page", f.Page)

	return v
}
