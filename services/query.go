package services

import (
	"context"
	"fmt"
	"time"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

var now = time.Now

const dateLayout = "2006-01-02"

func today() string {
	return now().Format(dateLayout)
}

// prayerCounts is the per-request prayer tally joined onto request listings.
func prayerCounts() *goqu.SelectDataset {
	return initializers.DB.From("prayer").
		Select(goqu.C("prayer_request_id"), goqu.COUNT("*").As("prayer_count")).
		GroupBy("prayer_request_id")
}

// requestRows selects requests with their owner's username and prayer count,
// scannable into models.PrayerRequestRow.
func requestRows() *goqu.SelectDataset {
	return initializers.DB.From(goqu.T("prayer_request").As("pr")).
		Select(
			goqu.I("pr.prayer_request_id"),
			goqu.I("pr.user_profile_id"),
			goqu.I("pr.title"),
			goqu.I("pr.content"),
			goqu.I("pr.category"),
			goqu.I("pr.bible_verse"),
			goqu.I("pr.is_anonymous"),
			goqu.I("pr.is_private"),
			goqu.I("pr.is_public"),
			goqu.I("pr.is_urgent"),
			goqu.I("pr.is_answered"),
			goqu.I("pr.testimony"),
			goqu.I("pr.datetime_answered"),
			goqu.I("pr.datetime_create"),
			goqu.I("pr.datetime_update"),
			goqu.I("u.username"),
			goqu.COALESCE(goqu.I("pc.prayer_count"), 0).As("prayer_count"),
		).
		Join(goqu.T("user_profile").As("u"), goqu.On(goqu.I("u.user_profile_id").Eq(goqu.I("pr.user_profile_id")))).
		LeftJoin(prayerCounts().As("pc"), goqu.On(goqu.I("pc.prayer_request_id").Eq(goqu.I("pr.prayer_request_id"))))
}

func publiclyVisible() exp.Expression {
	return goqu.And(
		goqu.I("pr.is_public").IsTrue(),
		goqu.I("pr.is_private").IsFalse(),
	)
}

// normalizePage clamps page to at least 1 and returns the row offset for it.
func normalizePage(page, perPage int) (int, uint) {
	if page < 1 {
		page = 1
	}
	return page, uint((page - 1) * perPage)
}

func perPage() int {
	if initializers.Config.RequestsPerPage <= 0 {
		return 20
	}
	return initializers.Config.RequestsPerPage
}

func loadRequest(ctx context.Context, requestID int) (models.PrayerRequest, bool, error) {
	var request models.PrayerRequest
	found, err := initializers.DB.From("prayer_request").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		ScanStructContext(ctx, &request)
	if err != nil {
		return models.PrayerRequest{}, false, fmt.Errorf("load prayer request %d: %w", requestID, err)
	}
	return request, found, nil
}

func requireRequest(ctx context.Context, requestID int) (models.PrayerRequest, error) {
	request, found, err := loadRequest(ctx, requestID)
	if err != nil {
		return models.PrayerRequest{}, err
	}
	if !found {
		return models.PrayerRequest{}, notFound("Prayer request not found.")
	}
	return request, nil
}

// pageOfRequests counts the requests matching where and returns the requested
// page of them in the given order. Pages past the end come back empty.
func pageOfRequests(ctx context.Context, page int, where []exp.Expression, order ...exp.OrderedExpression) (models.RequestPage, error) {
	size := perPage()
	page, offset := normalizePage(page, size)

	total, err := initializers.DB.From(goqu.T("prayer_request").As("pr")).
		Where(where...).
		CountContext(ctx)
	if err != nil {
		return models.RequestPage{}, fmt.Errorf("count requests: %w", err)
	}

	var rows []models.PrayerRequestRow
	err = requestRows().
		Where(where...).
		Order(order...).
		Limit(uint(size)).
		Offset(offset).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return models.RequestPage{}, fmt.Errorf("list requests: %w", err)
	}

	return models.NewRequestPage(rows, page, size, int(total)), nil
}

func listRequests(ctx context.Context, limit uint, where []exp.Expression, order ...exp.OrderedExpression) ([]models.PrayerRequestView, error) {
	ds := requestRows().Where(where...).Order(order...)
	if limit > 0 {
		ds = ds.Limit(limit)
	}

	var rows []models.PrayerRequestRow
	if err := ds.ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return models.NewPrayerRequestViews(rows), nil
}
