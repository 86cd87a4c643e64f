package analysis

import (
	"github.com/shopspring/decimal"
)

// Group summarizes the profit of the rows sharing a key.
type Group struct {
	Key   string          `json:"key"`
	Count int             `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
	Mean  decimal.Decimal `json:"mean"`
}

// GroupBy buckets rows by key and returns the non-empty groups in the order
// of keys. Rows whose key is not listed are left out.
func GroupBy(rows []Row, keys []string, key func(Row) string) []Group {
	index := make(map[string]int, len(keys))
	groups := make([]Group, len(keys))
	for i, k := range keys {
		index[k] = i
		groups[i] = Group{Key: k, Sum: decimal.Zero}
	}

	for _, row := range rows {
		i, ok := index[key(row)]
		if !ok {
			continue
		}
		groups[i].Count++
		groups[i].Sum = groups[i].Sum.Add(row.Profit)
	}

	result := make([]Group, 0, len(groups))
	for _, g := range groups {
		if g.Count == 0 {
			continue
		}
		g.Mean = g.Sum.Div(decimal.NewFromInt(int64(g.Count))).Round(2)
		result = append(result, g)
	}
	return result
}

// ByDayOfWeek groups rows with a start time by weekday, Monday first.
func ByDayOfWeek(rows []Row) []Group {
	return GroupBy(rows, Weekdays, func(r Row) string { return r.DayOfWeek })
}

// ByTimeBucket groups rows with a start time by part of day.
func ByTimeBucket(rows []Row) []Group {
	return GroupBy(rows, stringsOf(TimeBuckets), func(r Row) string { return string(r.TimeBucket) })
}

// ByBuyInCategory groups rows by buy-in bucket, cheapest first.
func ByBuyInCategory(rows []Row) []Group {
	return GroupBy(rows, stringsOf(BuyInCategories), func(r Row) string { return string(r.BuyInCategory) })
}

// ByRankPercentCategory groups rows by finishing bucket; the "" group holds
// the runs that did not cash.
func ByRankPercentCategory(rows []Row) []Group {
	return GroupBy(rows, stringsOf(RankPercentCategories), func(r Row) string { return string(r.RankPercentCategory) })
}

// ByTag groups rows by each tag their tournament name contains. A row may
// count towards several tags.
func ByTag(rows []Row, tags []string) []Group {
	var result []Group
	for _, tag := range tags {
		matching := make([]Row, 0)
		for _, row := range rows {
			if containsAny(row.TournamentName, []string{tag}) {
				matching = append(matching, row)
			}
		}
		result = append(result, GroupBy(matching, []string{tag}, func(Row) string { return tag })...)
	}
	return result
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
