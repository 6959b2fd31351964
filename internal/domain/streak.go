package domain

import "time"

// DayFormat is the calendar-day layout used for streaks and day-scoped
// queries.
const DayFormat = "2006-01-02"

// StreakLookbackDays bounds the distinct-day window fed into
// CurrentStreak. A gap longer than the window cannot extend a streak, so
// fetching more history changes nothing.
const StreakLookbackDays = 90

// CurrentStreak returns the number of consecutive calendar days, ending
// at today, that each have at least one brew. days must hold distinct
// local calendar days in DayFormat, sorted descending (most recent
// first).
//
// The walk compares days[i] against the expected day today-i; the first
// mismatch ends the streak. A history gap only matters at the end
// nearest to today, and a day without a brew today yields 0 even if a
// streak ran through yesterday.
func CurrentStreak(days []string, today string) int {
	anchor, err := time.Parse(DayFormat, today)
	if err != nil {
		return 0
	}
	streak := 0
	for i, day := range days {
		expected := anchor.AddDate(0, 0, -i).Format(DayFormat)
		if day != expected {
			break
		}
		streak++
	}
	return streak
}
