package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const (
	inviteCodePrefix   = "CIRCLE-"
	inviteCodeAttempts = 5
)

func generateInviteCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return inviteCodePrefix + strings.ToUpper(hex.EncodeToString(b)), nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isCircleMember(ctx context.Context, circleID, userProfileID int) (bool, error) {
	n, err := initializers.DB.From("circle_member").
		Where(
			goqu.C("prayer_circle_id").Eq(circleID),
			goqu.C("user_profile_id").Eq(userProfileID),
		).
		CountContext(ctx)
	if err != nil {
		return false, fmt.Errorf("check circle membership: %w", err)
	}
	return n > 0, nil
}

func loadCircle(ctx context.Context, where goqu.Ex) (models.PrayerCircle, bool, error) {
	var circle models.PrayerCircle
	found, err := initializers.DB.From("prayer_circle").Where(where).ScanStructContext(ctx, &circle)
	if err != nil {
		return models.PrayerCircle{}, false, fmt.Errorf("load circle: %w", err)
	}
	return circle, found, nil
}

// CreateCircle creates a circle with a fresh invite code and makes the caller
// its first member.
func CreateCircle(ctx context.Context, caller models.Caller, in models.PrayerCircleCreate) (models.PrayerCircle, error) {
	if err := RequireUser(caller); err != nil {
		return models.PrayerCircle{}, err
	}

	name := strings.TrimSpace(in.Circle_Name)
	if len(name) < 3 || len(name) > 100 {
		return models.PrayerCircle{}, invalid("circleName", "Circle name must be between 3 and 100 characters.")
	}

	circle := models.PrayerCircle{
		Circle_Name:        name,
		Circle_Description: optionalText(in.Circle_Description),
		Created_By:         caller.User_Profile_ID,
	}

	for attempt := 1; ; attempt++ {
		code, err := generateInviteCode()
		if err != nil {
			return models.PrayerCircle{}, fmt.Errorf("generate invite code: %w", err)
		}
		circle.Invite_Code = code

		err = insertCircle(ctx, &circle)
		if err == nil {
			break
		}
		if !isUniqueViolation(err) || attempt == inviteCodeAttempts {
			return models.PrayerCircle{}, err
		}
		initializers.Log.WithField("attempt", attempt).Debug("invite code collision, retrying")
	}

	initializers.Log.WithFields(logrus.Fields{
		"prayer_circle_id": circle.Prayer_Circle_ID,
		"created_by":       caller.User_Profile_ID,
	}).Info("prayer circle created")
	return circle, nil
}

func insertCircle(ctx context.Context, circle *models.PrayerCircle) error {
	tx, err := initializers.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin circle transaction: %w", err)
	}

	return tx.Wrap(func() error {
		_, err := tx.Insert("prayer_circle").Rows(*circle).
			Returning("prayer_circle_id").
			Executor().ScanValContext(ctx, &circle.Prayer_Circle_ID)
		if err != nil {
			return fmt.Errorf("insert circle: %w", err)
		}

		_, err = tx.Insert("circle_member").
			Rows(models.CircleMember{
				Prayer_Circle_ID: circle.Prayer_Circle_ID,
				User_Profile_ID:  circle.Created_By,
			}).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("insert circle creator: %w", err)
		}
		return nil
	})
}

// JoinCircle adds the caller to the circle owning inviteCode.
func JoinCircle(ctx context.Context, caller models.Caller, inviteCode string) (models.JoinResult, error) {
	if err := RequireUser(caller); err != nil {
		return models.JoinResult{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if code == "" {
		return models.JoinResult{}, invalid("inviteCode", "Please enter an invite code.")
	}

	circle, found, err := loadCircle(ctx, goqu.Ex{"invite_code": code})
	if err != nil {
		return models.JoinResult{}, err
	}
	if !found {
		return models.JoinResult{}, notFound("Invalid invite code.")
	}

	member, err := isCircleMember(ctx, circle.Prayer_Circle_ID, caller.User_Profile_ID)
	if err != nil {
		return models.JoinResult{}, err
	}
	if member {
		return models.JoinResult{Circle: circle, Already_Member: true}, nil
	}

	_, err = initializers.DB.Insert("circle_member").
		Rows(models.CircleMember{
			Prayer_Circle_ID: circle.Prayer_Circle_ID,
			User_Profile_ID:  caller.User_Profile_ID,
		}).
		OnConflict(goqu.DoNothing()).
		Executor().ExecContext(ctx)
	if err != nil {
		return models.JoinResult{}, fmt.Errorf("join circle: %w", err)
	}

	return models.JoinResult{Circle: circle}, nil
}

// GetCircle returns a circle with its members and shared requests. Only
// members and admins may look inside.
func GetCircle(ctx context.Context, caller models.Caller, circleID int) (models.CircleDetail, error) {
	if err := RequireUser(caller); err != nil {
		return models.CircleDetail{}, err
	}

	circle, found, err := loadCircle(ctx, goqu.Ex{"prayer_circle_id": circleID})
	if err != nil {
		return models.CircleDetail{}, err
	}
	if !found {
		return models.CircleDetail{}, notFound("Prayer circle not found.")
	}

	if !caller.Admin {
		member, err := isCircleMember(ctx, circleID, caller.User_Profile_ID)
		if err != nil {
			return models.CircleDetail{}, err
		}
		if !member {
			return models.CircleDetail{}, forbidden("You are not a member of this circle.")
		}
	}

	members := []models.CircleMemberWithUser{}
	err = initializers.DB.From(goqu.T("circle_member").As("cm")).
		Select(
			goqu.I("cm.circle_member_id"),
			goqu.I("cm.prayer_circle_id"),
			goqu.I("cm.user_profile_id"),
			goqu.I("cm.datetime_joined"),
			goqu.I("u.username"),
		).
		Join(goqu.T("user_profile").As("u"), goqu.On(goqu.I("u.user_profile_id").Eq(goqu.I("cm.user_profile_id")))).
		Where(goqu.I("cm.prayer_circle_id").Eq(circleID)).
		Order(goqu.I("cm.datetime_joined").Asc()).
		ScanStructsContext(ctx, &members)
	if err != nil {
		return models.CircleDetail{}, fmt.Errorf("list circle members: %w", err)
	}

	var rows []models.PrayerRequestRow
	err = requestRows().
		Join(goqu.T("circle_request").As("cr"), goqu.On(goqu.I("cr.prayer_request_id").Eq(goqu.I("pr.prayer_request_id")))).
		Where(
			goqu.I("cr.prayer_circle_id").Eq(circleID),
			goqu.I("pr.is_public").IsTrue(),
		).
		Order(goqu.I("cr.datetime_create").Desc()).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return models.CircleDetail{}, fmt.Errorf("list circle requests: %w", err)
	}

	return models.CircleDetail{
		Circle:   circle,
		Members:  members,
		Requests: models.NewPrayerRequestViews(rows),
	}, nil
}

// ShareRequest shares one of the caller's requests with a circle they belong
// to. It reports true when the request was already shared there.
func ShareRequest(ctx context.Context, caller models.Caller, circleID int, requestID int) (bool, error) {
	if err := RequireUser(caller); err != nil {
		return false, err
	}

	_, found, err := loadCircle(ctx, goqu.Ex{"prayer_circle_id": circleID})
	if err != nil {
		return false, err
	}
	if !found {
		return false, notFound("Prayer circle not found.")
	}

	member, err := isCircleMember(ctx, circleID, caller.User_Profile_ID)
	if err != nil {
		return false, err
	}
	if !member {
		return false, forbidden("You are not a member of this circle.")
	}

	request, err := requireRequest(ctx, requestID)
	if err != nil {
		return false, err
	}
	if !caller.Owns(request.User_Profile_ID) {
		return false, forbidden("You can only share your own prayer requests.")
	}

	var circleRequestID int
	inserted, err := initializers.DB.Insert("circle_request").
		Rows(models.CircleRequest{
			Prayer_Circle_ID:  circleID,
			Prayer_Request_ID: requestID,
		}).
		OnConflict(goqu.DoNothing()).
		Returning("circle_request_id").
		Executor().ScanValContext(ctx, &circleRequestID)
	if err != nil {
		return false, fmt.Errorf("share request: %w", err)
	}

	return !inserted, nil
}

func MyCircles(ctx context.Context, caller models.Caller) ([]models.PrayerCircle, error) {
	if err := RequireUser(caller); err != nil {
		return nil, err
	}

	circles := []models.PrayerCircle{}
	err := initializers.DB.From(goqu.T("prayer_circle").As("c")).
		Select(
			goqu.I("c.prayer_circle_id"),
			goqu.I("c.circle_name"),
			goqu.I("c.circle_description"),
			goqu.I("c.invite_code"),
			goqu.I("c.created_by"),
			goqu.I("c.datetime_create"),
		).
		Join(goqu.T("circle_member").As("cm"), goqu.On(goqu.I("cm.prayer_circle_id").Eq(goqu.I("c.prayer_circle_id")))).
		Where(goqu.I("cm.user_profile_id").Eq(caller.User_Profile_ID)).
		Order(goqu.I("c.circle_name").Asc()).
		ScanStructsContext(ctx, &circles)
	if err != nil {
		return nil, fmt.Errorf("list my circles: %w", err)
	}
	return circles, nil
}
