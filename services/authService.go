package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const TokenLifetime = 24 * time.Hour

var validate = validator.New()

func validateSignup(signup models.UserProfileSignup) error {
	username := strings.TrimSpace(signup.Username)
	if len(username) < 3 || len(username) > 80 {
		return invalid("username", "Username must be between 3 and 80 characters.")
	}
	if err := validate.Var(strings.TrimSpace(signup.Email), "required,email"); err != nil {
		return invalid("email", "Please enter a valid email address.")
	}
	if len(signup.Password) < 6 {
		return invalid("password", "Password must be at least 6 characters.")
	}
	if signup.Password != signup.Confirm_Password {
		return invalid("confirmPassword", "Passwords must match.")
	}
	return nil
}

// Register creates a new account after checking the username and email are free.
func Register(ctx context.Context, signup models.UserProfileSignup) (models.UserProfile, error) {
	if err := validateSignup(signup); err != nil {
		return models.UserProfile{}, err
	}

	username := strings.TrimSpace(signup.Username)
	email := strings.ToLower(strings.TrimSpace(signup.Email))

	taken, err := initializers.DB.From("user_profile").
		Where(goqu.C("username").Eq(username)).
		CountContext(ctx)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("check username: %w", err)
	}
	if taken > 0 {
		return models.UserProfile{}, invalid("username", "Username already taken.")
	}

	registered, err := initializers.DB.From("user_profile").
		Where(goqu.C("email").Eq(email)).
		CountContext(ctx)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("check email: %w", err)
	}
	if registered > 0 {
		return models.UserProfile{}, invalid("email", "Email already registered.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.UserProfile{
		Username: username,
		Email:    email,
		Password: string(hash),
	}

	_, err = initializers.DB.Insert("user_profile").Rows(user).
		Returning("user_profile_id").
		Executor().ScanValContext(ctx, &user.User_Profile_ID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("insert user: %w", err)
	}

	if mailer := GetEmailService(); mailer != nil {
		go func(to, name string) {
			if err := mailer.SendWelcomeEmail(to, name); err != nil {
				initializers.Log.WithError(err).Warn("welcome email failed")
			}
		}(user.Email, user.Username)
	}

	initializers.Log.WithField("user_profile_id", user.User_Profile_ID).Info("user registered")
	return user, nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords produce
// the same error.
func Authenticate(ctx context.Context, login models.Login) (models.UserProfile, error) {
	var user models.UserProfile
	found, err := initializers.DB.From("user_profile").
		Where(goqu.C("email").Eq(strings.ToLower(strings.TrimSpace(login.Email)))).
		ScanStructContext(ctx, &user)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("load user: %w", err)
	}
	if !found {
		return models.UserProfile{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(login.Password)); err != nil {
		return models.UserProfile{}, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken signs an HS256 token carrying the user's id and role.
func IssueToken(user models.UserProfile) (string, error) {
	role := "user"
	if user.Admin {
		role = "admin"
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.User_Profile_ID,
		"role": role,
		"exp":  time.Now().Add(TokenLifetime).Unix(),
	})

	return token.SignedString([]byte(initializers.Config.SecretKey))
}

// ParseToken validates a signed token and returns the user id it names.
func ParseToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(initializers.Config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrUnauthenticated
	}

	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, ErrUnauthenticated
	}

	return int(id), nil
}

func GetUserByID(ctx context.Context, userProfileID int) (models.UserProfile, bool, error) {
	var user models.UserProfile
	found, err := initializers.DB.From("user_profile").
		Where(goqu.C("user_profile_id").Eq(userProfileID)).
		ScanStructContext(ctx, &user)
	if err != nil {
		return models.UserProfile{}, false, fmt.Errorf("load user %d: %w", userProfileID, err)
	}
	return user, found, nil
}

func RequireUser(caller models.Caller) error {
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

func RequireAdmin(caller models.Caller) error {
	if err := RequireUser(caller); err != nil {
		return err
	}
	if !caller.Admin {
		return forbidden("You need administrator privileges to access this page.")
	}
	return nil
}

// EnsureAdmin promotes the account registered under email, if any. Used to
// bootstrap the first administrator.
func EnsureAdmin(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	result, err := initializers.DB.Update("user_profile").
		Set(goqu.Record{"admin": true}).
		Where(goqu.C("email").Eq(email), goqu.C("admin").IsFalse()).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("promote %s: %w", email, err)
	}

	if n, _ := result.RowsAffected(); n > 0 {
		initializers.Log.WithField("email", email).Info("bootstrap admin promoted")
	}
	return nil
}

// StorePushToken registers a device token for the caller, moving it over if
// another account held it.
func StorePushToken(ctx context.Context, caller models.Caller, req models.PushTokenRequest) error {
	if err := RequireUser(caller); err != nil {
		return err
	}

	_, err := initializers.DB.Insert("user_push_tokens").
		Rows(goqu.Record{
			"user_profile_id": caller.User_Profile_ID,
			"push_token":      req.PushToken,
			"platform":        req.Platform,
		}).
		OnConflict(goqu.DoUpdate("push_token", goqu.Record{
			"user_profile_id": caller.User_Profile_ID,
			"platform":        req.Platform,
			"updated_at":      goqu.L("NOW()"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("store push token: %w", err)
	}

	initializers.Log.WithFields(logrus.Fields{
		"user_profile_id": caller.User_Profile_ID,
		"platform":        req.Platform,
	}).Debug("push token stored")
	return nil
}
