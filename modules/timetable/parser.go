package timetable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Контейнер дневного расписания на сайте колледжа
const DaySelector = "#wrapperTables"

// Сайт выложил субботу следующей недели раньше времени, разбор откладываем
var ErrNextSaturday = errors.New("next saturday detected")

// Ошибка разбора таблицы одного преподавателя.
// Остальные преподаватели при этом разбираются дальше
type TeacherError struct {
	Teacher string
	Err     error
}

func (e TeacherError) Error() string {
	return fmt.Sprintf("teacher %s: %v", e.Teacher, e.Err)
}

// ParseDay разбирает дневную страницу: дети контейнера чередуются как
// заголовок преподавателя / таблица пар. Преподаватели не из справочника
// молча пропускаются. thHeaders - заголовки дней с недельной страницы,
// по ним уточняется обрезанная дата
func ParseDay(
	doc *goquery.Document,
	roster *Roster,
	thHeaders []string,
	weekInterval [2]time.Time,
) (*Timetable, []TeacherError, error) {
	content := doc.Find(DaySelector)
	if content.Length() == 0 {
		return nil, nil, fmt.Errorf("day container %s not found", DaySelector)
	}

	var items []*goquery.Selection
	content.ChildrenFiltered("div").Each(func(i int, s *goquery.Selection) {
		items = append(items, s)
	})
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("day container %s is empty", DaySelector)
	}

	// Неразобранная дата не критична, в снимок уйдёт сырая подпись
	day, err := resolveDate(items[0].Text(), thHeaders)
	if err == nil && saturdayOutsideInterval(day, weekInterval) {
		return nil, nil, ErrNextSaturday
	}

	tt := Timetable{Date: day.Label}
	var teacherErrs []TeacherError
	for i := 1; i < len(items); i += 2 {
		name := headerHead(items[i-1].Text())
		if !roster.Contains(name) {
			continue
		}
		ti, err := parseTeacherTable(name, items[i])
		if err != nil {
			teacherErrs = append(teacherErrs, TeacherError{Teacher: name, Err: err})

			continue
		}
		ti.Normalize()
		tt.TeacherInfos = append(tt.TeacherInfos, ti)
	}

	// Хвостовой заголовок без таблицы - преподаватель без пар
	if len(items)%2 == 1 {
		name := headerHead(items[len(items)-1].Text())
		if roster.Contains(name) {
			tt.TeacherInfos = append(tt.TeacherInfos, TeacherInfo{Name: name})
		}
	}

	return &tt, teacherErrs, nil
}

// Разбор таблицы пар одного преподавателя: три строки - номера, группы,
// кабинеты. Отсутствие таблицы - это день без пар, а не ошибка
func parseTeacherTable(name string, item *goquery.Selection) (TeacherInfo, error) {
	ti := TeacherInfo{Name: name}
	rows := item.Find("table tbody tr")
	if rows.Length() < 3 {
		return ti, nil
	}

	numbers := rows.Eq(0).Find("th")
	groups := rows.Eq(1).Find("td")
	cabinets := rows.Eq(2).Find("td")

	var parseErr error
	numbers.EachWithBreak(func(j int, s *goquery.Selection) bool {
		idx, err := parseLessonIndex(s.Text())
		if err != nil {
			parseErr = err

			return false
		}
		// Пустые ячейки уходят в снимок заглушкой, а не пустой строкой
		cabinet := Empty
		if j < cabinets.Length() {
			if v := strings.TrimSpace(cabinets.Eq(j).Text()); v != "" {
				cabinet = v
			}
		}
		group := strings.ReplaceAll(strings.TrimSpace(groups.Eq(j).Text()), "*", "")
		if group == "" {
			group = Empty
		}
		ti.Lessons = append(ti.Lessons, Lesson{
			Index:   idx,
			Cabinet: cabinet,
			Group:   group,
		})

		return true
	})
	if parseErr != nil {
		return ti, parseErr
	}

	return ti, nil
}

// Номер пары на сайте пишется как "№1"
func parseLessonIndex(raw string) (int, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "№", ""))
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("lesson index %q: %w", raw, err)
	}

	return idx, nil
}

type dayDate struct {
	Label string
	Time  time.Time
	Known bool
}

// Текст заголовка до тире - имя преподавателя
func headerHead(text string) string {
	head, _, _ := strings.Cut(text, "-")

	return strings.TrimSpace(head)
}

// Текст заголовка после тире - дата дня
func headerTail(text string) dayDate {
	_, tail, _ := strings.Cut(text, "-")

	return dayDate{Label: strings.TrimSpace(tail)}
}

// Дата из первого заголовка, уточнённая по заголовкам дней недели.
// На дневной странице дата бывает обрезана, в заголовках недели
// она всегда вида "среда, 03.09.2025"
func resolveDate(header string, thHeaders []string) (dayDate, error) {
	day := headerTail(header)
	if day.Label == "" {
		return day, fmt.Errorf("no date in header %q", header)
	}
	for _, th := range thHeaders {
		if strings.Contains(strings.ToLower(th), strings.ToLower(day.Label)) {
			day.Label = th

			break
		}
	}
	_, datePart, found := strings.Cut(day.Label, ", ")
	if !found {
		return day, fmt.Errorf("no weekday part in %q", day.Label)
	}
	t, err := ParseDate(datePart)
	if err != nil {
		return day, err
	}
	day.Time = t
	day.Known = true

	return day, nil
}

func saturdayOutsideInterval(day dayDate, interval [2]time.Time) bool {
	if !day.Known || day.Time.Weekday() != time.Saturday {
		return false
	}

	return !DateInInterval(day.Time, interval)
}
