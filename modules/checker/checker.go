// Поиск изменений между двумя снимками дневного расписания
package checker

import (
	"golang.org/x/exp/slices"

	"rasp.mgkct.by/teachersbot/modules/timetable"
)

// Changed возвращает имена преподавателей, чьё расписание изменилось
// относительно прошлого снимка. Снимки не изменяются.
//
// Если прошлого снимка нет или число преподавателей не совпало,
// изменившимися считаются все: сайт мог перевыложить весь день,
// и молча потерять кого-то хуже, чем разослать лишний раз
func Changed(new, prev *timetable.Timetable) []string {
	if new == nil {
		return nil
	}
	if prev == nil || len(new.TeacherInfos) != len(prev.TeacherInfos) {
		return allNames(new)
	}

	var changed []string
	for _, ti := range new.TeacherInfos {
		old := prev.Teacher(ti.Name)
		if len(ti.Lessons) == 0 {
			// Пары были и пропали - тоже повод для рассылки
			if old != nil && len(old.Lessons) > 0 {
				changed = appendName(changed, ti.Name)
			}

			continue
		}
		if old == nil || !old.Equals(ti) {
			changed = appendName(changed, ti.Name)
		}
	}

	return changed
}

func allNames(tt *timetable.Timetable) []string {
	var names []string
	for _, ti := range tt.TeacherInfos {
		names = appendName(names, ti.Name)
	}

	return names
}

func appendName(names []string, name string) []string {
	if slices.Contains(names, name) {
		return names
	}

	return append(names, name)
}
