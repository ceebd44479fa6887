package models

import "time"

type UserProfile struct {
	User_Profile_ID int       `json:"userProfileId" goqu:"skipinsert"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Password        string    `json:"-"`
	Admin           bool      `json:"admin"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type UserProfileSignup struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Confirm_Password string `json:"confirmPassword"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Caller identifies who is invoking a service operation. The zero value is an
// anonymous visitor.
type Caller struct {
	User_Profile_ID int
	Admin           bool
}

func (c Caller) Authenticated() bool {
	return c.User_Profile_ID > 0
}

func (c Caller) Owns(userProfileID int) bool {
	return c.Authenticated() && c.User_Profile_ID == userProfileID
}

func CallerFor(user UserProfile) Caller {
	return Caller{User_Profile_ID: user.User_Profile_ID, Admin: user.Admin}
}
