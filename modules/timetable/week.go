package timetable

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/icza/gox/timex"
)

// Контейнер недельного расписания
const WeekSelector = ".entry"

// Недельная таблица одного преподавателя в сыром виде,
// по строкам и ячейкам, для отрисовки картинки
type WeekSection struct {
	Teacher string
	Grid    [][]string
}

// Разобранная недельная страница
type WeekPage struct {
	IntervalRaw string
	Interval    [2]time.Time
	Headers     []string
	Sections    []WeekSection
}

// ParseWeek разбирает недельную страницу: под контейнером идут тройки
// h2 (номер - преподаватель), h3 (интервал недели), таблица.
// Интервал и заголовки дней общие, берутся из первой тройки
func ParseWeek(doc *goquery.Document, roster *Roster) (*WeekPage, error) {
	content := doc.Find(WeekSelector)
	if content.Length() == 0 {
		return nil, fmt.Errorf("week container %s not found", WeekSelector)
	}

	page := WeekPage{}
	page.IntervalRaw = strings.TrimSpace(content.Find("h3").First().Text())
	if interval, err := ParseWeekInterval(page.IntervalRaw); err == nil {
		page.Interval = interval
	}

	content.Find("table").First().Find("tr").First().Find("th").
		Each(func(i int, s *goquery.Selection) {
			page.Headers = append(page.Headers, strings.TrimSpace(s.Text()))
		})

	var tables []*goquery.Selection
	content.Find("table").Each(func(i int, s *goquery.Selection) {
		tables = append(tables, s)
	})
	content.Find("h2").Each(func(i int, s *goquery.Selection) {
		if i >= len(tables) {
			return
		}
		// В h2 недельной страницы имя стоит после тире
		name := strings.TrimSpace(headerTail(s.Text()).Label)
		if !roster.Contains(name) {
			return
		}
		page.Sections = append(page.Sections, WeekSection{
			Teacher: name,
			Grid:    tableGrid(tables[i]),
		})
	})

	return &page, nil
}

func tableGrid(table *goquery.Selection) [][]string {
	var grid [][]string
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		grid = append(grid, cells)
	})

	return grid
}

// Интервал недели на сайте пишется как "01.09.2025 - 06.09.2025"
func ParseWeekInterval(raw string) ([2]time.Time, error) {
	var interval [2]time.Time
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return interval, fmt.Errorf("week interval %q: want two dates", raw)
	}
	for i, p := range parts {
		t, err := ParseDate(p)
		if err != nil {
			return interval, err
		}
		interval[i] = t
	}

	return interval, nil
}

func ParseDate(raw string) (time.Time, error) {
	return time.Parse("02.01.2006", strings.TrimSpace(raw))
}

func DateInInterval(date time.Time, interval [2]time.Time) bool {
	if interval[0].IsZero() || interval[1].IsZero() {
		return false
	}

	return !date.Before(interval[0]) && !date.After(interval[1])
}

// Учебная неделя с понедельника по субботу, на случай,
// когда сайт ещё не сообщил свой интервал
func CurrentWeekInterval(now time.Time) [2]time.Time {
	year, week := now.ISOWeek()
	begin := timex.WeekStart(year, week)

	return [2]time.Time{begin, begin.AddDate(0, 0, 5)}
}
