package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// SetFeaturedPrayer features a request on a date, replacing whatever was
// featured on that date before.
func SetFeaturedPrayer(ctx context.Context, caller models.Caller, in models.FeaturedPrayerSet) error {
	if err := RequireAdmin(caller); err != nil {
		return err
	}

	date, err := time.Parse(dateLayout, in.Featured_Date)
	if err != nil {
		return invalid("featuredDate", "Invalid date format. Use YYYY-MM-DD.")
	}

	if _, err := requireRequest(ctx, in.Prayer_Request_ID); err != nil {
		return err
	}

	_, err = initializers.DB.Insert("daily_featured_prayer").
		Rows(goqu.Record{
			"prayer_request_id": in.Prayer_Request_ID,
			"featured_date":     date.Format(dateLayout),
		}).
		OnConflict(goqu.DoUpdate("featured_date", goqu.Record{
			"prayer_request_id": in.Prayer_Request_ID,
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("set featured prayer: %w", err)
	}

	initializers.Log.WithFields(logrus.Fields{
		"prayer_request_id": in.Prayer_Request_ID,
		"featured_date":     date.Format(dateLayout),
	}).Info("featured prayer set")
	return nil
}

// ListFeatured returns recent featured entries alongside recent public
// requests an admin can choose from.
func ListFeatured(ctx context.Context, caller models.Caller) (models.FeaturedListing, error) {
	if err := RequireAdmin(caller); err != nil {
		return models.FeaturedListing{}, err
	}

	featured := []models.FeaturedPrayerWithTitle{}
	err := initializers.DB.From(goqu.T("daily_featured_prayer").As("f")).
		Select(
			goqu.I("f.daily_featured_prayer_id"),
			goqu.I("f.prayer_request_id"),
			goqu.I("f.featured_date"),
			goqu.I("f.datetime_create"),
			goqu.I("pr.title"),
		).
		Join(goqu.T("prayer_request").As("pr"), goqu.On(goqu.I("pr.prayer_request_id").Eq(goqu.I("f.prayer_request_id")))).
		Order(goqu.I("f.featured_date").Desc()).
		Limit(30).
		ScanStructsContext(ctx, &featured)
	if err != nil {
		return models.FeaturedListing{}, fmt.Errorf("list featured prayers: %w", err)
	}

	recent, err := listRequests(ctx, 20, []exp.Expression{publiclyVisible()}, goqu.I("pr.datetime_create").Desc())
	if err != nil {
		return models.FeaturedListing{}, err
	}

	return models.FeaturedListing{Featured: featured, Recent_Requests: recent}, nil
}

// FeaturedForDate returns the request featured on date, or nil. Requests that
// have since become private or hidden are not shown.
func FeaturedForDate(ctx context.Context, date string) (*models.PrayerRequestView, error) {
	var row models.PrayerRequestRow
	found, err := requestRows().
		Join(goqu.T("daily_featured_prayer").As("f"), goqu.On(goqu.I("f.prayer_request_id").Eq(goqu.I("pr.prayer_request_id")))).
		Where(goqu.I("f.featured_date").Eq(date), publiclyVisible()).
		ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("load featured prayer: %w", err)
	}
	if !found {
		return nil, nil
	}

	view := models.NewPrayerRequestView(row)
	return &view, nil
}

// AdventDay is the day of the Advent calendar to show: the day of month in
// December, 1 at any other time of year.
func AdventDay(t time.Time) int {
	if t.Month() != time.December {
		return 1
	}
	return t.Day()
}

func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GetAdventReflections returns reflections up to and including asOfDay in
// ascending order, with today's reflection picked out when one exists.
func GetAdventReflections(ctx context.Context, asOfDay int) (models.AdventCalendar, error) {
	var reflections []models.AdventReflection
	err := initializers.DB.From("advent_reflection").
		Where(goqu.C("day").Lte(asOfDay)).
		Order(goqu.C("day").Asc()).
		ScanStructsContext(ctx, &reflections)
	if err != nil {
		return models.AdventCalendar{}, fmt.Errorf("list advent reflections: %w", err)
	}

	calendar := models.AdventCalendar{
		Current_Day: asOfDay,
		Reflections: make([]models.AdventReflectionView, 0, len(reflections)),
	}

	for _, r := range reflections {
		rendered, err := RenderMarkdown(r.Reflection)
		if err != nil {
			return models.AdventCalendar{}, fmt.Errorf("render reflection for day %d: %w", r.Day, err)
		}
		calendar.Reflections = append(calendar.Reflections, models.AdventReflectionView{
			AdventReflection: r,
			Reflection_HTML:  rendered,
		})
	}

	for i := range calendar.Reflections {
		if calendar.Reflections[i].Day == asOfDay {
			calendar.Today = &calendar.Reflections[i]
		}
	}

	return calendar, nil
}

func ChristmasEve() string {
	return initializers.Config.ChristmasEvePrayerTime
}
