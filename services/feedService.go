package services

import (
	"context"
	"fmt"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	SortRecent     = "recent"
	SortMostPrayed = "most_prayed"
	SortUrgent     = "urgent"
)

// ListFeed pages through public requests. An empty or "all" category means no
// filter; unknown sorts fall back to recent.
func ListFeed(ctx context.Context, category string, sort string, page int) (models.RequestPage, error) {
	where := []exp.Expression{publiclyVisible()}

	if category != "" && category != "all" {
		if !models.IsValidCategory(category) {
			return models.RequestPage{}, invalid("category", "Unknown category.")
		}
		where = append(where, goqu.I("pr.category").Eq(category))
	}

	newest := goqu.I("pr.datetime_create").Desc()

	switch sort {
	case SortMostPrayed:
		return pageOfRequests(ctx, page, where,
			goqu.L("COALESCE(?, 0)", goqu.I("pc.prayer_count")).Desc(),
			newest,
		)
	case SortUrgent:
		where = append(where, goqu.I("pr.is_urgent").IsTrue())
		return pageOfRequests(ctx, page, where, newest)
	default:
		return pageOfRequests(ctx, page, where, newest)
	}
}

func communityTotals(ctx context.Context) (models.CommunityTotals, error) {
	prayers, err := initializers.DB.From("prayer").CountContext(ctx)
	if err != nil {
		return models.CommunityTotals{}, fmt.Errorf("count prayers: %w", err)
	}

	requests, err := initializers.DB.From(goqu.T("prayer_request").As("pr")).
		Where(publiclyVisible()).
		CountContext(ctx)
	if err != nil {
		return models.CommunityTotals{}, fmt.Errorf("count public requests: %w", err)
	}

	answered, err := initializers.DB.From(goqu.T("prayer_request").As("pr")).
		Where(publiclyVisible(), goqu.I("pr.is_answered").IsTrue()).
		CountContext(ctx)
	if err != nil {
		return models.CommunityTotals{}, fmt.Errorf("count answered requests: %w", err)
	}

	return models.CommunityTotals{
		Total_Prayers:     int(prayers),
		Total_Requests:    int(requests),
		Answered_Requests: int(answered),
	}, nil
}

// fillCategories returns one entry per known category in display order,
// zero where counts has none.
func fillCategories(counts []models.CategoryCount) []models.CategoryCount {
	byCategory := make(map[string]int, len(counts))
	for _, c := range counts {
		byCategory[c.Category] = c.Count
	}

	filled := make([]models.CategoryCount, 0, len(models.Categories))
	for _, category := range models.Categories {
		filled = append(filled, models.CategoryCount{Category: category, Count: byCategory[category]})
	}
	return filled
}

// Home gathers the landing page: today's featured request, the newest public
// requests and community totals.
func Home(ctx context.Context) (models.HomeView, error) {
	featured, err := FeaturedForDate(ctx, today())
	if err != nil {
		return models.HomeView{}, err
	}

	recent, err := listRequests(ctx, 6, []exp.Expression{publiclyVisible()}, goqu.I("pr.datetime_create").Desc())
	if err != nil {
		return models.HomeView{}, err
	}

	totals, err := communityTotals(ctx)
	if err != nil {
		return models.HomeView{}, err
	}

	return models.HomeView{
		Featured:        featured,
		Recent_Requests: recent,
		Totals:          totals,
	}, nil
}

func CommunityImpact(ctx context.Context) (models.CommunityImpact, error) {
	totals, err := communityTotals(ctx)
	if err != nil {
		return models.CommunityImpact{}, err
	}

	var counts []models.CategoryCount
	err = initializers.DB.From(goqu.T("prayer_request").As("pr")).
		Select(goqu.I("pr.category"), goqu.COUNT("*").As("count")).
		Where(publiclyVisible()).
		GroupBy(goqu.I("pr.category")).
		ScanStructsContext(ctx, &counts)
	if err != nil {
		return models.CommunityImpact{}, fmt.Errorf("count requests by category: %w", err)
	}

	todayCounts := initializers.DB.From("prayer").
		Select(goqu.C("prayer_request_id"), goqu.COUNT("*").As("today_count")).
		Where(goqu.L("datetime_create::date = ?::date", today())).
		GroupBy("prayer_request_id")

	var rows []models.PrayerRequestRow
	err = requestRows().
		Join(todayCounts.As("tc"), goqu.On(goqu.I("tc.prayer_request_id").Eq(goqu.I("pr.prayer_request_id")))).
		Where(publiclyVisible()).
		Order(goqu.I("tc.today_count").Desc(), goqu.I("pr.datetime_create").Desc()).
		Limit(5).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return models.CommunityImpact{}, fmt.Errorf("list most prayed today: %w", err)
	}

	return models.CommunityImpact{
		Totals:          totals,
		Category_Counts: fillCategories(counts),
		Top_Today:       models.NewPrayerRequestViews(rows),
	}, nil
}

// PrayerTree counts every prayer offered, split by the category of the
// request it was offered for.
func PrayerTree(ctx context.Context) (models.PrayerTree, error) {
	var counts []models.CategoryCount
	err := initializers.DB.From(goqu.T("prayer").As("p")).
		Select(goqu.I("pr.category"), goqu.COUNT("*").As("count")).
		Join(goqu.T("prayer_request").As("pr"), goqu.On(goqu.I("pr.prayer_request_id").Eq(goqu.I("p.prayer_request_id")))).
		GroupBy(goqu.I("pr.category")).
		ScanStructsContext(ctx, &counts)
	if err != nil {
		return models.PrayerTree{}, fmt.Errorf("count prayers by category: %w", err)
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	return models.PrayerTree{
		Total_Prayers:   total,
		Category_Counts: fillCategories(counts),
	}, nil
}
