package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/metrics"
	"github.com/PrayNoel/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/sirupsen/logrus"
)

const AlreadyPrayedNotice = "You have already prayed for this request."

func Pray(ctx context.Context, caller models.Caller, requestID int) (models.PrayResult, error) {
	return PrayWithNote(ctx, caller, requestID, models.PrayerNoteCreate{})
}

// PrayWithNote records the caller's prayer for a request and bumps today's
// stats in the same transaction. A second prayer by the same caller is a no-op
// reported through AlreadyPrayed.
func PrayWithNote(ctx context.Context, caller models.Caller, requestID int, note models.PrayerNoteCreate) (models.PrayResult, error) {
	if err := RequireUser(caller); err != nil {
		return models.PrayResult{}, err
	}

	prayerNote := optionalText(&note.Prayer_Note)
	if prayerNote != nil && len(*prayerNote) > 500 {
		return models.PrayResult{}, invalid("prayerNote", "Prayer notes can be at most 500 characters.")
	}

	request, err := requireRequest(ctx, requestID)
	if err != nil {
		return models.PrayResult{}, err
	}

	tx, err := initializers.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.PrayResult{}, fmt.Errorf("begin prayer transaction: %w", err)
	}

	var result models.PrayResult
	err = tx.Wrap(func() error {
		inserted, err := tx.Insert("prayer").
			Rows(models.Prayer{
				User_Profile_ID:   caller.User_Profile_ID,
				Prayer_Request_ID: requestID,
				Prayer_Note:       prayerNote,
				Is_Private:        note.Is_Private,
			}).
			OnConflict(goqu.DoNothing()).
			Returning("prayer_id").
			Executor().ScanValContext(ctx, &result.Prayer_ID)
		if err != nil {
			return fmt.Errorf("insert prayer: %w", err)
		}
		if !inserted {
			result.Already_Prayed = true
			return nil
		}

		_, err = tx.Insert("prayer_stats").
			Rows(goqu.Record{
				"user_profile_id": caller.User_Profile_ID,
				"stat_date":       today(),
				"prayers_offered": 1,
			}).
			OnConflict(goqu.DoUpdate("user_profile_id, stat_date", goqu.Record{
				"prayers_offered": goqu.L("prayer_stats.prayers_offered + 1"),
			})).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("update prayer stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.PrayResult{}, err
	}

	metrics.RecordPrayer(result.Already_Prayed)
	if result.Already_Prayed {
		return result, nil
	}

	initializers.Log.WithFields(logrus.Fields{
		"prayer_request_id": requestID,
		"user_profile_id":   caller.User_Profile_ID,
	}).Info("prayer recorded")

	if request.User_Profile_ID != caller.User_Profile_ID {
		notifyAsync(pushEnabled(), func() {
			NotifyOwnerOfPrayer(request.User_Profile_ID, request.Prayer_Request_ID, request.Title)
		})
	}

	return result, nil
}

// Encourage appends an encouragement to a request.
func Encourage(ctx context.Context, caller models.Caller, requestID int, in models.EncouragementCreate) (models.Encouragement, error) {
	if err := RequireUser(caller); err != nil {
		return models.Encouragement{}, err
	}

	content := strings.TrimSpace(in.Content)
	if len(content) < 5 || len(content) > 1000 {
		return models.Encouragement{}, invalid("content", "Encouragements must be between 5 and 1000 characters.")
	}

	request, err := requireRequest(ctx, requestID)
	if err != nil {
		return models.Encouragement{}, err
	}

	encouragement := models.Encouragement{
		User_Profile_ID:   caller.User_Profile_ID,
		Prayer_Request_ID: requestID,
		Content:           content,
		Bible_Verse:       optionalText(in.Bible_Verse),
	}

	_, err = initializers.DB.Insert("encouragement").Rows(encouragement).
		Returning("encouragement_id").
		Executor().ScanValContext(ctx, &encouragement.Encouragement_ID)
	if err != nil {
		return models.Encouragement{}, fmt.Errorf("insert encouragement: %w", err)
	}

	if request.User_Profile_ID != caller.User_Profile_ID {
		notifyAsync(emailEnabled(), func() {
			NotifyOwnerOfEncouragement(request.User_Profile_ID, request.Title, content)
		})
	}

	return encouragement, nil
}

// MyPrayers lists the caller's prayers with today's tally.
func MyPrayers(ctx context.Context, caller models.Caller) (models.MyPrayers, error) {
	if err := RequireUser(caller); err != nil {
		return models.MyPrayers{}, err
	}

	prayers := []models.PrayerWithRequest{}
	err := initializers.DB.From(goqu.T("prayer").As("p")).
		Select(
			goqu.I("p.prayer_id"),
			goqu.I("p.user_profile_id"),
			goqu.I("p.prayer_request_id"),
			goqu.I("p.prayer_note"),
			goqu.I("p.is_private"),
			goqu.I("p.datetime_create"),
			goqu.I("pr.title"),
		).
		Join(goqu.T("prayer_request").As("pr"), goqu.On(goqu.I("pr.prayer_request_id").Eq(goqu.I("p.prayer_request_id")))).
		Where(goqu.I("p.user_profile_id").Eq(caller.User_Profile_ID)).
		Order(goqu.I("p.datetime_create").Desc()).
		ScanStructsContext(ctx, &prayers)
	if err != nil {
		return models.MyPrayers{}, fmt.Errorf("list my prayers: %w", err)
	}

	var todayCount int
	_, err = initializers.DB.From("prayer_stats").
		Select("prayers_offered").
		Where(
			goqu.C("user_profile_id").Eq(caller.User_Profile_ID),
			goqu.C("stat_date").Eq(today()),
		).
		ScanValContext(ctx, &todayCount)
	if err != nil {
		return models.MyPrayers{}, fmt.Errorf("load prayer stats: %w", err)
	}

	return models.MyPrayers{
		Prayers:     prayers,
		Today_Count: todayCount,
		Total:       len(prayers),
	}, nil
}
