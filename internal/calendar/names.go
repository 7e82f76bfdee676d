package calendar

// Month name tables. Arrays are copied on return, so callers can never
// mutate the shared tables.

// Afghan Solar Hijri month names (Dari), Hamal through Hoot.
var persianMonths = [12]string{
	"حمل", "ثور", "جوزا", "سرطان", "اسد", "سنبله",
	"میزان", "عقرب", "قوس", "جدی", "دلو", "حوت",
}

var arabicMonths = [12]string{
	"محرم", "صفر", "ربيع الأول", "ربيع الثاني", "جمادى الأولى", "جمادى الآخرة",
	"رجب", "شعبان", "رمضان", "شوال", "ذو القعدة", "ذو الحجة",
}

var gregorianMonths = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthNames returns the 12 month names of a calendar system, or an empty
// table for an unknown system.
func MonthNames(system System) [12]string {
	switch system {
	case Persian:
		return persianMonths
	case Arabic:
		return arabicMonths
	case Gregorian:
		return gregorianMonths
	default:
		return [12]string{}
	}
}

// MonthName returns the name of a 1-based month, or "" when out of range.
func MonthName(system System, month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames(system)[month-1]
}
