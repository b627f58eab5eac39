package scheduling

import (
	"fmt"
	"time"
)

// User-facing Arabic message templates. Keep wording stable: the dashboard
// and mobile clients display these verbatim.

const (
	msgNoDaysSelected    = "يجب اختيار يوم واحد على الأقل"
	msgDaysValid         = "عدد الأيام المختارة مناسب"
	msgTooManyDays       = "لا يمكن اختيار أكثر من 7 أيام في الأسبوع"
	msgTooManyDaysCourse = "لا يمكن اختيار أكثر من 5 أيام في الأسبوع للدورة التفاعلية"

	msgCountNotPositive = "عدد الجلسات يجب أن يكون أكبر من صفر"
	msgCountValid       = "عدد الجلسات مناسب"

	msgStartInPast           = "لا يمكن الجدولة في تاريخ سابق"
	msgDateRangeValid        = "نطاق التواريخ مناسب"
	msgPacingValid           = "وتيرة الجدولة مناسبة"
	msgPacingAggressive      = "وتيرة الجدولة سريعة جداً وقد تكون مرهقة للطالب"
	msgSubscriptionNotActive = "الاشتراك غير نشط"
	msgSubscriptionExpired   = "الاشتراك منتهي"

	msgTrialLeadTime      = "يجب جدولة الجلسة التجريبية قبل ساعة واحدة على الأقل من موعدها"
	msgTrialSingleDay     = "الجلسة التجريبية ليوم واحد فقط، سيتم استخدام أول يوم محدد"
	msgTrialSingleCount   = "الجلسة التجريبية جلسة واحدة فقط"
	msgTrialAlreadyExists = "تمت جدولة الجلسة التجريبية بالفعل"

	msgCapacityEmpty = "لا يوجد طلاب مسجلون في الحلقة بعد"
	msgCircleFull    = "الحلقة مكتملة العدد"
	msgCapacityOK    = "سعة الحلقة مناسبة"
)

func msgDaysExceedRecommended(selected, recommended int) string {
	return fmt.Sprintf("عدد الأيام المختارة (%d) يتجاوز الموصى به (%d أيام في الأسبوع)", selected, recommended)
}

func msgCountExceedsRemaining(requested, remaining int) string {
	return fmt.Sprintf("لا يمكن جدولة %d جلسة. الجلسات المتبقية: %d فقط", requested, remaining)
}

func msgCountExceedsCap(cap int) string {
	return fmt.Sprintf("عدد الجلسات المطلوب كبير جداً (الحد الأقصى %d)", cap)
}

func msgCountLow(requested, remaining int) string {
	return fmt.Sprintf("عدد الجلسات المطلوب (%d) أقل بكثير من الجلسات المتبقية (%d)", requested, remaining)
}

func msgCountFarFromTarget(requested, target int) string {
	return fmt.Sprintf("عدد الجلسات المطلوب (%d) بعيد عن الهدف الشهري للحلقة (%d جلسات)", requested, target)
}

func msgStartBeforeEarliest(earliest time.Time) string {
	return fmt.Sprintf("تاريخ البداية يجب ألا يسبق %s", earliest.Format("2006/01/02"))
}

func msgEndBeyondExpiry(expiry time.Time) string {
	return fmt.Sprintf("نهاية الجدولة تتجاوز تاريخ انتهاء الاشتراك في %s", expiry.Format("2006/01/02"))
}

func msgEndBeyondCourse(end time.Time) string {
	return fmt.Sprintf("نهاية الجدولة تتجاوز تاريخ انتهاء الدورة في %s", end.Format("2006/01/02"))
}

func msgPacingOverBudget(total, remaining int) string {
	return fmt.Sprintf("إجمالي الجلسات المطلوب جدولتها (%d) يتجاوز الجلسات المتبقية (%d)", total, remaining)
}

func msgPacingCapped(total, remaining int) string {
	return fmt.Sprintf("سيتم جدولة %d جلسة فقط من أصل %d لعدم توفر رصيد كافٍ", remaining, total)
}

func msgPacingTooSlow(remaining int, expiry time.Time) string {
	return fmt.Sprintf("وتيرة الجدولة بطيئة، لن يتم استهلاك %d جلسة قبل انتهاء الاشتراك في %s", remaining, expiry.Format("2006/01/02"))
}

func msgPacingAboveTarget(total, expected int) string {
	return fmt.Sprintf("إجمالي الجلسات (%d) يتجاوز الهدف الشهري المتوقع (%d)", total, expected)
}

func msgPacingBelowTarget(total, expected int) string {
	return fmt.Sprintf("إجمالي الجلسات (%d) أقل من الهدف الشهري المتوقع (%d)", total, expected)
}

func msgTrialNotSchedulable(status string) string {
	return fmt.Sprintf("لا يمكن جدولة جلسة لطلب تجريبي بحالة %s", status)
}

func msgCapacityLow(enrolled, max int) string {
	return fmt.Sprintf("عدد الطلاب المسجلين (%d) أقل من ربع سعة الحلقة (%d)", enrolled, max)
}

func msgConflict(category SessionCategory, at time.Time) string {
	return fmt.Sprintf("يوجد تعارض مع %s يوم %s الساعة %s", category.LabelAr(), WeekdayAr(at.Weekday()), at.Format("15:04"))
}

func msgWeeksExceedCourseDuration(weeks, durationWeeks int) string {
	return fmt.Sprintf("مدة الجدولة (%d أسابيع) تتجاوز مدة الدورة (%d أسابيع)", weeks, durationWeeks)
}
