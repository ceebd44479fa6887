package models

import "time"

type PrayerCircle struct {
	Prayer_Circle_ID   int       `json:"prayerCircleId" goqu:"skipinsert"`
	Circle_Name        string    `json:"circleName"`
	Circle_Description *string   `json:"circleDescription"`
	Invite_Code        string    `json:"inviteCode"`
	Created_By         int       `json:"createdBy"`
	Datetime_Create    time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type PrayerCircleCreate struct {
	Circle_Name        string  `json:"circleName"`
	Circle_Description *string `json:"circleDescription"`
}

type CircleJoin struct {
	Invite_Code string `json:"inviteCode"`
}

type CircleMember struct {
	Circle_Member_ID int       `json:"circleMemberId" goqu:"skipinsert"`
	Prayer_Circle_ID int       `json:"prayerCircleId"`
	User_Profile_ID  int       `json:"userProfileId"`
	Datetime_Joined  time.Time `json:"datetimeJoined" goqu:"skipinsert"`
}

type CircleMemberWithUser struct {
	CircleMember
	Username string `json:"username"`
}

type CircleRequest struct {
	Circle_Request_ID int       `json:"circleRequestId" goqu:"skipinsert"`
	Prayer_Circle_ID  int       `json:"prayerCircleId"`
	Prayer_Request_ID int       `json:"prayerRequestId"`
	Datetime_Create   time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type CircleDetail struct {
	Circle   PrayerCircle           `json:"circle"`
	Members  []CircleMemberWithUser `json:"members"`
	Requests []PrayerRequestView    `json:"requests"`
}

type JoinResult struct {
	Circle         PrayerCircle `json:"circle"`
	Already_Member bool         `json:"alreadyMember"`
}
