package scheduling

import "time"

// SessionCategory is the closed set of session families that share a
// teacher's time. Conflict checks always run across all three.
type SessionCategory int

const (
	CategoryQuran SessionCategory = iota
	CategoryAcademic
	CategoryCourse
)

// AllCategories in the order conflict checks scan them.
var AllCategories = [3]SessionCategory{CategoryQuran, CategoryAcademic, CategoryCourse}

func (c SessionCategory) String() string {
	switch c {
	case CategoryQuran:
		return "quran"
	case CategoryAcademic:
		return "academic"
	case CategoryCourse:
		return "course"
	default:
		return "unknown"
	}
}

// LabelAr is the Arabic label used in user-facing conflict messages.
func (c SessionCategory) LabelAr() string {
	switch c {
	case CategoryQuran:
		return "جلسة قرآن"
	case CategoryAcademic:
		return "درس أكاديمي"
	case CategoryCourse:
		return "دورة تفاعلية"
	default:
		return "جلسة"
	}
}

var weekdayNamesAr = map[time.Weekday]string{
	time.Saturday:  "السبت",
	time.Sunday:    "الأحد",
	time.Monday:    "الاثنين",
	time.Tuesday:   "الثلاثاء",
	time.Wednesday: "الأربعاء",
	time.Thursday:  "الخميس",
	time.Friday:    "الجمعة",
}

// WeekdayAr returns the Arabic day name.
func WeekdayAr(d time.Weekday) string {
	return weekdayNamesAr[d]
}

var weekdaysByName = map[string]time.Weekday{
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
}

// ParseWeekday maps the lowercase English day names used on the wire to
// time.Weekday. ok is false for anything unrecognised.
func ParseWeekday(name string) (time.Weekday, bool) {
	d, ok := weekdaysByName[name]
	return d, ok
}

// uniqueDays drops duplicate weekdays while preserving order.
func uniqueDays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]struct{}, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
