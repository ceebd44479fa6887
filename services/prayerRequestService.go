package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/sirupsen/logrus"
)

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateRequest(in models.PrayerRequestCreate) error {
	title := strings.TrimSpace(in.Title)
	if len(title) < 5 || len(title) > 200 {
		return invalid("title", "Title must be between 5 and 200 characters.")
	}
	if len(strings.TrimSpace(in.Content)) < 10 {
		return invalid("content", "Please share at least 10 characters about your request.")
	}
	if !models.IsValidCategory(in.Category) {
		return invalid("category", "Please choose a valid category.")
	}
	return nil
}

// CreateRequest publishes a new prayer request owned by the caller.
func CreateRequest(ctx context.Context, caller models.Caller, in models.PrayerRequestCreate) (models.PrayerRequest, error) {
	if err := RequireUser(caller); err != nil {
		return models.PrayerRequest{}, err
	}
	if err := validateRequest(in); err != nil {
		return models.PrayerRequest{}, err
	}

	request := models.PrayerRequest{
		User_Profile_ID: caller.User_Profile_ID,
		Title:           strings.TrimSpace(in.Title),
		Content:         strings.TrimSpace(in.Content),
		Category:        in.Category,
		Bible_Verse:     optionalText(in.Bible_Verse),
		Is_Anonymous:    in.Is_Anonymous,
		Is_Private:      in.Is_Private,
		Is_Public:       true,
		Is_Urgent:       in.Is_Urgent,
	}

	_, err := initializers.DB.Insert("prayer_request").Rows(request).
		Returning("prayer_request_id").
		Executor().ScanValContext(ctx, &request.Prayer_Request_ID)
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("insert prayer request: %w", err)
	}

	initializers.Log.WithFields(logrus.Fields{
		"prayer_request_id": request.Prayer_Request_ID,
		"user_profile_id":   caller.User_Profile_ID,
		"category":          request.Category,
	}).Info("prayer request created")
	return request, nil
}

func canSeeRestricted(caller models.Caller, ownerID int) bool {
	return caller.Admin || caller.Owns(ownerID)
}

// ViewRequest returns a request with its public prayers and encouragements.
// Private and moderated requests are visible only to their owner and admins.
func ViewRequest(ctx context.Context, caller models.Caller, requestID int) (models.RequestDetail, error) {
	var row models.PrayerRequestRow
	found, err := requestRows().
		Where(goqu.I("pr.prayer_request_id").Eq(requestID)).
		ScanStructContext(ctx, &row)
	if err != nil {
		return models.RequestDetail{}, fmt.Errorf("load prayer request %d: %w", requestID, err)
	}
	if !found {
		return models.RequestDetail{}, notFound("Prayer request not found.")
	}

	if row.Is_Private && !canSeeRestricted(caller, row.User_Profile_ID) {
		return models.RequestDetail{}, forbidden("This prayer request is private.")
	}
	if !row.Is_Public && !canSeeRestricted(caller, row.User_Profile_ID) {
		return models.RequestDetail{}, forbidden("This prayer request has been hidden by a moderator.")
	}

	prayers := []models.PrayerWithUser{}
	err = initializers.DB.From(goqu.T("prayer").As("p")).
		Select(
			goqu.I("p.prayer_id"),
			goqu.I("p.user_profile_id"),
			goqu.I("p.prayer_request_id"),
			goqu.I("p.prayer_note"),
			goqu.I("p.is_private"),
			goqu.I("p.datetime_create"),
			goqu.I("u.username"),
		).
		Join(goqu.T("user_profile").As("u"), goqu.On(goqu.I("u.user_profile_id").Eq(goqu.I("p.user_profile_id")))).
		Where(
			goqu.I("p.prayer_request_id").Eq(requestID),
			goqu.I("p.is_private").IsFalse(),
		).
		Order(goqu.I("p.datetime_create").Desc()).
		ScanStructsContext(ctx, &prayers)
	if err != nil {
		return models.RequestDetail{}, fmt.Errorf("list prayers: %w", err)
	}

	encouragements := []models.EncouragementWithUser{}
	err = initializers.DB.From(goqu.T("encouragement").As("e")).
		Select(
			goqu.I("e.encouragement_id"),
			goqu.I("e.user_profile_id"),
			goqu.I("e.prayer_request_id"),
			goqu.I("e.content"),
			goqu.I("e.bible_verse"),
			goqu.I("e.datetime_create"),
			goqu.I("u.username"),
		).
		Join(goqu.T("user_profile").As("u"), goqu.On(goqu.I("u.user_profile_id").Eq(goqu.I("e.user_profile_id")))).
		Where(goqu.I("e.prayer_request_id").Eq(requestID)).
		Order(goqu.I("e.datetime_create").Desc()).
		ScanStructsContext(ctx, &encouragements)
	if err != nil {
		return models.RequestDetail{}, fmt.Errorf("list encouragements: %w", err)
	}

	hasPrayed := false
	if caller.Authenticated() {
		n, err := initializers.DB.From("prayer").
			Where(
				goqu.C("user_profile_id").Eq(caller.User_Profile_ID),
				goqu.C("prayer_request_id").Eq(requestID),
			).
			CountContext(ctx)
		if err != nil {
			return models.RequestDetail{}, fmt.Errorf("check prayed: %w", err)
		}
		hasPrayed = n > 0
	}

	return models.RequestDetail{
		Request:        models.NewPrayerRequestView(row),
		Prayers:        prayers,
		Encouragements: encouragements,
		Prayer_Count:   row.Prayer_Count,
		Has_Prayed:     hasPrayed,
	}, nil
}

// MarkAnswered records a testimony. Calling it again overwrites the testimony.
func MarkAnswered(ctx context.Context, caller models.Caller, requestID int, testimony string) error {
	if err := RequireUser(caller); err != nil {
		return err
	}

	request, err := requireRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if !caller.Owns(request.User_Profile_ID) {
		return forbidden("Only the person who shared this request can mark it as answered.")
	}

	_, err = initializers.DB.Update("prayer_request").
		Set(goqu.Record{
			"is_answered":       true,
			"testimony":         optionalText(&testimony),
			"datetime_answered": goqu.L("NOW()"),
			"datetime_update":   goqu.L("NOW()"),
		}).
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("mark request %d answered: %w", requestID, err)
	}

	initializers.Log.WithField("prayer_request_id", requestID).Info("prayer request answered")
	return nil
}

// DeleteRequest removes a request. Its prayers, encouragements, reports,
// circle shares and featured entries go with it.
func DeleteRequest(ctx context.Context, caller models.Caller, requestID int) error {
	if err := RequireUser(caller); err != nil {
		return err
	}

	request, err := requireRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if !canSeeRestricted(caller, request.User_Profile_ID) {
		return forbidden("You can only delete your own prayer requests.")
	}

	_, err = initializers.DB.Delete("prayer_request").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete request %d: %w", requestID, err)
	}

	initializers.Log.WithFields(logrus.Fields{
		"prayer_request_id": requestID,
		"deleted_by":        caller.User_Profile_ID,
	}).Info("prayer request deleted")
	return nil
}

func MyRequests(ctx context.Context, caller models.Caller) ([]models.PrayerRequestView, error) {
	if err := RequireUser(caller); err != nil {
		return nil, err
	}

	return listRequests(ctx, 0,
		[]exp.Expression{goqu.I("pr.user_profile_id").Eq(caller.User_Profile_ID)},
		goqu.I("pr.datetime_create").Desc(),
	)
}

// AnsweredRequests pages through answered public requests, most recently
// updated first.
func AnsweredRequests(ctx context.Context, page int) (models.RequestPage, error) {
	return pageOfRequests(ctx, page,
		[]exp.Expression{publiclyVisible(), goqu.I("pr.is_answered").IsTrue()},
		goqu.I("pr.datetime_update").Desc(),
	)
}
