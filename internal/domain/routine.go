package domain

import (
	"fmt"
	"strings"
	"time"

	"motionfit/routine-app/internal/textnorm"
)

// DateLayout is the wire format for week Mondays.
const DateLayout = "2006-01-02"

// MaxDays is the number of training days a week document can hold.
const MaxDays = 5

// WeekDocument is one week of a block as persisted. Days maps "1".."5" to a
// list of exercise entries and "1_rpe".."5_rpe" to a per-day RPE scalar. The
// day values are kept untyped because historical documents hold several
// shapes; the engine normalizer is the only reader.
type WeekDocument struct {
	Key          string         `bson:"_id,omitempty" json:"-"`
	ClientName   string         `bson:"client_name" json:"clientName"`
	ClientEmail  string         `bson:"client_email" json:"clientEmail"`
	WeekMonday   string         `bson:"week_monday" json:"weekMonday"`
	TrainerEmail string         `bson:"trainer_email" json:"trainerEmail"`
	BlockID      string         `bson:"block_id,omitempty" json:"blockId,omitempty"`
	Days         map[string]any `bson:"days" json:"days"`
}

// WeekKey builds the document key for a client/Monday pair.
func WeekKey(clientEmail, weekMonday string) string {
	return textnorm.EmailKey(clientEmail) + "_" + strings.ReplaceAll(weekMonday, "-", "_")
}

// DayKey returns the Days key for a day number.
func DayKey(day int) string {
	return fmt.Sprintf("%d", day)
}

// RPEKey returns the Days key holding the day's session RPE.
func RPEKey(day int) string {
	return fmt.Sprintf("%d_rpe", day)
}

// DayRaw returns the stored value for a day, which may be any historical
// shape (list, index-keyed map, wrapped map). Nil when the day is absent.
func (d *WeekDocument) DayRaw(day int) any {
	if d.Days == nil {
		return nil
	}
	return d.Days[DayKey(day)]
}

// MondayDate parses the document's week Monday.
func (d *WeekDocument) MondayDate() (time.Time, error) {
	return time.Parse(DateLayout, d.WeekMonday)
}

// MondayOf returns the Monday of the week containing t, preserving location
// at midnight. Ordering of weeks is always by this date, never by a stored
// index.
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}
