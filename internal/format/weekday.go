package format

import (
	"time"

	"golang.org/x/text/language"
)

var weekdayTags = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Italian,
	language.Dutch,
}

var weekdayNames = [][7]string{
	{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	{"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"},
	{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"},
	{"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato"},
	{"Zondag", "Maandag", "Dinsdag", "Woensdag", "Donderdag", "Vrijdag", "Zaterdag"},
}

var weekdayMatcher = language.NewMatcher(weekdayTags)

// Weekdays holds the day names for one language, Sunday first.
type Weekdays [7]string

// WeekdaysFor picks the closest supported language for a BCP 47 tag such as
// "de" or "fr-CH". Unknown or empty tags fall back to English.
func WeekdaysFor(lang string) Weekdays {
	tag, err := language.Parse(lang)
	if err != nil {
		return weekdayNames[0]
	}
	_, idx, conf := weekdayMatcher.Match(tag)
	if conf == language.No {
		return weekdayNames[0]
	}
	return weekdayNames[idx]
}

// Name returns the name of the weekday of t.
func (w Weekdays) Name(t time.Time) string {
	return w[t.Weekday()]
}
