package domain

import (
	"time"

	"github.com/vladimiradmaev/translator-bot/internal/utils"
)

// Unlimited is the remaining-quota sentinel for users without a daily ceiling
const Unlimited = -1

// QuotaState is a free-tier daily counter
type QuotaState struct {
	Used    int
	Day     time.Time
	Ceiling int
}

// QuotaFor builds the quota state stored on a profile
func QuotaFor(u *UserProfile, ceiling int) QuotaState {
	return QuotaState{
		Used:    u.DailyTranslations,
		Day:     u.DailyResetAt,
		Ceiling: ceiling,
	}
}

// UsedOn returns the number of translations counted for the day of now.
// A counter recorded on any other day counts as zero.
func (q QuotaState) UsedOn(now time.Time) int {
	if !utils.SameDay(q.Day, now) || q.Used < 0 {
		return 0
	}
	return q.Used
}

// Remaining returns how many translations are left for the day of now, never negative
func (q QuotaState) Remaining(now time.Time) int {
	remaining := q.Ceiling - q.UsedOn(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Increment returns the state after one more translation on the day of now
func (q QuotaState) Increment(now time.Time) QuotaState {
	return QuotaState{
		Used:    q.UsedOn(now) + 1,
		Day:     utils.StartOfDay(now),
		Ceiling: q.Ceiling,
	}
}
