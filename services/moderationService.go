package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/metrics"
	"github.com/PrayNoel/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/sirupsen/logrus"
)

// Report files a pending report against a request. Duplicate reports are allowed.
func Report(ctx context.Context, caller models.Caller, requestID int, in models.ReportCreate) (models.Report, error) {
	if err := RequireUser(caller); err != nil {
		return models.Report{}, err
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return models.Report{}, invalid("reason", "Please provide a reason for reporting.")
	}

	if _, err := requireRequest(ctx, requestID); err != nil {
		return models.Report{}, err
	}

	report := models.Report{
		Prayer_Request_ID: requestID,
		User_Profile_ID:   caller.User_Profile_ID,
		Reason:            reason,
		Status:            models.ReportStatusPending,
	}

	_, err := initializers.DB.Insert("report").Rows(report).
		Returning("report_id").
		Executor().ScanValContext(ctx, &report.Report_ID)
	if err != nil {
		return models.Report{}, fmt.Errorf("insert report: %w", err)
	}

	metrics.RecordReport()
	initializers.Log.WithFields(logrus.Fields{
		"report_id":         report.Report_ID,
		"prayer_request_id": requestID,
	}).Info("prayer request reported")
	return report, nil
}

// ListReports returns reports in the given status, newest first. An empty
// status means pending.
func ListReports(ctx context.Context, caller models.Caller, status string) ([]models.ReportWithDetails, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}

	if status == "" {
		status = models.ReportStatusPending
	}
	if !models.IsValidReportStatus(status) {
		return nil, invalid("status", "Unknown report status.")
	}

	reports := []models.ReportWithDetails{}
	err := initializers.DB.From(goqu.T("report").As("r")).
		Select(
			goqu.I("r.report_id"),
			goqu.I("r.prayer_request_id"),
			goqu.I("r.user_profile_id"),
			goqu.I("r.reason"),
			goqu.I("r.status"),
			goqu.I("r.reviewed_by"),
			goqu.I("r.datetime_reviewed"),
			goqu.I("r.datetime_create"),
			goqu.I("pr.title"),
			goqu.I("u.username").As("reporter"),
		).
		Join(goqu.T("prayer_request").As("pr"), goqu.On(goqu.I("pr.prayer_request_id").Eq(goqu.I("r.prayer_request_id")))).
		Join(goqu.T("user_profile").As("u"), goqu.On(goqu.I("u.user_profile_id").Eq(goqu.I("r.user_profile_id")))).
		Where(goqu.I("r.status").Eq(status)).
		Order(goqu.I("r.datetime_create").Desc()).
		ScanStructsContext(ctx, &reports)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	return reports, nil
}

// ReviewReport resolves a pending report. "remove" hides the reported request
// and marks the report reviewed in one transaction; "dismiss" only closes the
// report. Other reports on the same request are left pending.
func ReviewReport(ctx context.Context, caller models.Caller, reportID int, action string) (models.Report, error) {
	if err := RequireAdmin(caller); err != nil {
		return models.Report{}, err
	}

	var status string
	switch action {
	case models.ReviewActionDismiss:
		status = models.ReportStatusDismissed
	case models.ReviewActionRemove:
		status = models.ReportStatusReviewed
	default:
		return models.Report{}, invalid("action", "Unknown review action.")
	}

	var report models.Report
	found, err := initializers.DB.From("report").
		Where(goqu.C("report_id").Eq(reportID)).
		ScanStructContext(ctx, &report)
	if err != nil {
		return models.Report{}, fmt.Errorf("load report %d: %w", reportID, err)
	}
	if !found {
		return models.Report{}, notFound("Report not found.")
	}
	if report.Status != models.ReportStatusPending {
		return models.Report{}, invalid("status", "This report has already been reviewed.")
	}

	tx, err := initializers.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Report{}, fmt.Errorf("begin review transaction: %w", err)
	}

	err = tx.Wrap(func() error {
		result, err := tx.Update("report").
			Set(goqu.Record{
				"status":            status,
				"reviewed_by":       caller.User_Profile_ID,
				"datetime_reviewed": goqu.L("NOW()"),
			}).
			Where(
				goqu.C("report_id").Eq(reportID),
				goqu.C("status").Eq(models.ReportStatusPending),
			).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("update report %d: %w", reportID, err)
		}
		updated, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update report %d: %w", reportID, err)
		}
		if updated == 0 {
			return invalid("status", "This report has already been reviewed.")
		}

		if action == models.ReviewActionRemove {
			_, err := tx.Update("prayer_request").
				Set(goqu.Record{"is_public": false, "datetime_update": goqu.L("NOW()")}).
				Where(goqu.C("prayer_request_id").Eq(report.Prayer_Request_ID)).
				Executor().ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("hide request %d: %w", report.Prayer_Request_ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Report{}, err
	}

	reviewer := caller.User_Profile_ID
	report.Status = status
	report.Reviewed_By = &reviewer

	initializers.Log.WithFields(logrus.Fields{
		"report_id":   reportID,
		"action":      action,
		"reviewed_by": reviewer,
	}).Info("report reviewed")
	return report, nil
}

// TogglePublic flips a request's visibility and returns the new state.
func TogglePublic(ctx context.Context, caller models.Caller, requestID int) (bool, error) {
	if err := RequireAdmin(caller); err != nil {
		return false, err
	}

	var isPublic bool
	found, err := initializers.DB.Update("prayer_request").
		Set(goqu.Record{
			"is_public":       goqu.L("NOT is_public"),
			"datetime_update": goqu.L("NOW()"),
		}).
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		Returning("is_public").
		Executor().ScanValContext(ctx, &isPublic)
	if err != nil {
		return false, fmt.Errorf("toggle request %d: %w", requestID, err)
	}
	if !found {
		return false, notFound("Prayer request not found.")
	}

	return isPublic, nil
}

// ToggleAdmin flips another user's admin flag. Admins cannot change their own.
func ToggleAdmin(ctx context.Context, caller models.Caller, targetUserID int) (bool, error) {
	if err := RequireAdmin(caller); err != nil {
		return false, err
	}
	if targetUserID == caller.User_Profile_ID {
		return false, ErrSelfDemotion
	}

	var isAdmin bool
	found, err := initializers.DB.Update("user_profile").
		Set(goqu.Record{"admin": goqu.L("NOT admin")}).
		Where(goqu.C("user_profile_id").Eq(targetUserID)).
		Returning("admin").
		Executor().ScanValContext(ctx, &isAdmin)
	if err != nil {
		return false, fmt.Errorf("toggle admin %d: %w", targetUserID, err)
	}
	if !found {
		return false, notFound("User not found.")
	}

	initializers.Log.WithFields(logrus.Fields{
		"target_user_id": targetUserID,
		"admin":          isAdmin,
		"changed_by":     caller.User_Profile_ID,
	}).Info("admin status changed")
	return isAdmin, nil
}

func AdminDashboard(ctx context.Context, caller models.Caller) (models.AdminDashboard, error) {
	if err := RequireAdmin(caller); err != nil {
		return models.AdminDashboard{}, err
	}

	pending, err := initializers.DB.From("report").
		Where(goqu.C("status").Eq(models.ReportStatusPending)).
		CountContext(ctx)
	if err != nil {
		return models.AdminDashboard{}, fmt.Errorf("count pending reports: %w", err)
	}

	users, err := initializers.DB.From("user_profile").CountContext(ctx)
	if err != nil {
		return models.AdminDashboard{}, fmt.Errorf("count users: %w", err)
	}

	requests, err := initializers.DB.From("prayer_request").CountContext(ctx)
	if err != nil {
		return models.AdminDashboard{}, fmt.Errorf("count requests: %w", err)
	}

	recent, err := listRequests(ctx, 10, nil, goqu.I("pr.datetime_create").Desc())
	if err != nil {
		return models.AdminDashboard{}, err
	}

	return models.AdminDashboard{
		Pending_Reports: int(pending),
		Total_Users:     int(users),
		Total_Requests:  int(requests),
		Recent_Requests: recent,
	}, nil
}

// AdminRequests pages through every request, hidden and private included.
func AdminRequests(ctx context.Context, caller models.Caller, page int) (models.RequestPage, error) {
	if err := RequireAdmin(caller); err != nil {
		return models.RequestPage{}, err
	}
	return pageOfRequests(ctx, page, []exp.Expression{}, goqu.I("pr.datetime_create").Desc())
}

func ListUsers(ctx context.Context, caller models.Caller) ([]models.UserProfile, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}

	users := []models.UserProfile{}
	err := initializers.DB.From("user_profile").
		Select("user_profile_id", "username", "email", "admin", "datetime_create").
		Order(goqu.C("datetime_create").Desc()).
		ScanStructsContext(ctx, &users)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
