package models

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type CommunityTotals struct {
	Total_Prayers     int `json:"totalPrayers"`
	Total_Requests    int `json:"totalRequests"`
	Answered_Requests int `json:"answeredRequests"`
}

type HomeView struct {
	Featured        *PrayerRequestView  `json:"featured"`
	Recent_Requests []PrayerRequestView `json:"recentRequests"`
	Totals          CommunityTotals     `json:"totals"`
}

type CommunityImpact struct {
	Totals          CommunityTotals     `json:"totals"`
	Category_Counts []CategoryCount     `json:"categoryCounts"`
	Top_Today       []PrayerRequestView `json:"topToday"`
}

type PrayerTree struct {
	Total_Prayers   int             `json:"totalPrayers"`
	Category_Counts []CategoryCount `json:"categoryCounts"`
}

type AdminDashboard struct {
	Pending_Reports int                 `json:"pendingReports"`
	Total_Users     int                 `json:"totalUsers"`
	Total_Requests  int                 `json:"totalRequests"`
	Recent_Requests []PrayerRequestView `json:"recentRequests"`
}
