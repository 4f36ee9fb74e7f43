// Package reltime описывает разницу между двумя моментами короткой фразой
// ("3 hours ago", "через 2 дня") на явно выбранном языке.
package reltime

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

type unit int

const (
	second unit = iota
	minute
	hour
	day
	week
	month
	year
)

var steps = []struct {
	unit unit
	size time.Duration
}{
	{year, 365 * 24 * time.Hour},
	{month, 30 * 24 * time.Hour},
	{week, 7 * 24 * time.Hour},
	{day, 24 * time.Hour},
	{hour, time.Hour},
	{minute, time.Minute},
	{second, time.Second},
}

// phrases - формулировки одного языка.
type phrases struct {
	now    string
	past   string // шаблон fmt, %s это "<n> <единица>"
	future string
	units  map[unit]map[plural.Form]string
}

var english = phrases{
	now:    "just now",
	past:   "%s ago",
	future: "in %s",
	units: map[unit]map[plural.Form]string{
		second: {plural.One: "second", plural.Other: "seconds"},
		minute: {plural.One: "minute", plural.Other: "minutes"},
		hour:   {plural.One: "hour", plural.Other: "hours"},
		day:    {plural.One: "day", plural.Other: "days"},
		week:   {plural.One: "week", plural.Other: "weeks"},
		month:  {plural.One: "month", plural.Other: "months"},
		year:   {plural.One: "year", plural.Other: "years"},
	},
}

var russian = phrases{
	now:    "только что",
	past:   "%s назад",
	future: "через %s",
	units: map[unit]map[plural.Form]string{
		second: {plural.One: "секунду", plural.Few: "секунды", plural.Many: "секунд", plural.Other: "секунды"},
		minute: {plural.One: "минуту", plural.Few: "минуты", plural.Many: "минут", plural.Other: "минуты"},
		hour:   {plural.One: "час", plural.Few: "часа", plural.Many: "часов", plural.Other: "часа"},
		day:    {plural.One: "день", plural.Few: "дня", plural.Many: "дней", plural.Other: "дня"},
		week:   {plural.One: "неделю", plural.Few: "недели", plural.Many: "недель", plural.Other: "недели"},
		month:  {plural.One: "месяц", plural.Few: "месяца", plural.Many: "месяцев", plural.Other: "месяца"},
		year:   {plural.One: "год", plural.Few: "года", plural.Many: "лет", plural.Other: "года"},
	},
}

var (
	supported = []language.Tag{language.English, language.Russian}
	matcher   = language.NewMatcher(supported)
	wording   = map[language.Tag]phrases{
		language.English: english,
		language.Russian: russian,
	}
)

// Formatter форматирует относительное время для одного языка.
type Formatter struct {
	tag     language.Tag
	phrases phrases
}

// New разбирает locale (тег BCP 47, например "en-GB" или "ru") и выбирает
// ближайший поддерживаемый язык. Для неподдерживаемых языков используется английский.
func New(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	_, index, _ := matcher.Match(tag)
	base := supported[index]
	return &Formatter{tag: base, phrases: wording[base]}, nil
}

// Language возвращает язык, который реально используется.
func (f *Formatter) Language() language.Tag {
	return f.tag
}

// Format описывает t относительно now.
func (f *Formatter) Format(t, now time.Time) string {
	d := t.Sub(now)
	future := d > 0
	if d < 0 {
		d = -d
	}
	if d < time.Second {
		return f.phrases.now
	}

	for _, s := range steps {
		if d < s.size {
			continue
		}
		n := int(math.Floor(float64(d) / float64(s.size)))
		quantity := fmt.Sprintf("%d %s", n, f.unitName(s.unit, n))
		if future {
			return fmt.Sprintf(f.phrases.future, quantity)
		}
		return fmt.Sprintf(f.phrases.past, quantity)
	}
	return f.phrases.now
}

// Since - это Format(t, time.Now()).
func (f *Formatter) Since(t time.Time) string {
	return f.Format(t, time.Now())
}

func (f *Formatter) unitName(u unit, n int) string {
	forms := f.phrases.units[u]
	form := plural.Cardinal.MatchPlural(f.tag, n, 0, 0, 0, 0)
	if name, ok := forms[form]; ok {
		return name
	}
	return forms[plural.Other]
}
