package models

import "time"

type DailyFeaturedPrayer struct {
	Daily_Featured_Prayer_ID int       `json:"dailyFeaturedPrayerId" goqu:"skipinsert"`
	Prayer_Request_ID        int       `json:"prayerRequestId"`
	Featured_Date            time.Time `json:"featuredDate"`
	Datetime_Create          time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type FeaturedPrayerSet struct {
	Prayer_Request_ID int    `json:"prayerRequestId"`
	Featured_Date     string `json:"featuredDate"`
}

type FeaturedPrayerWithTitle struct {
	DailyFeaturedPrayer
	Title string `json:"title"`
}

type FeaturedListing struct {
	Featured        []FeaturedPrayerWithTitle `json:"featured"`
	Recent_Requests []PrayerRequestView       `json:"recentRequests"`
}

type AdventReflection struct {
	Advent_Reflection_ID int    `json:"adventReflectionId" goqu:"skipinsert"`
	Day                  int    `json:"day"`
	Scripture            string `json:"scripture"`
	Reflection           string `json:"reflection"`
	Prompt               string `json:"prompt"`
}

type AdventReflectionView struct {
	AdventReflection
	Reflection_HTML string `json:"reflectionHtml"`
}

type AdventCalendar struct {
	Current_Day int                    `json:"currentDay"`
	Reflections []AdventReflectionView `json:"reflections"`
	Today       *AdventReflectionView  `json:"today"`
}
