package tg

import (
	"fmt"
	"strings"

	"rasp.mgkct.by/teachersbot/modules/timetable"
)

// Текст дневного расписания одного преподавателя.
// Пустой список пар - отдельное сообщение, а не пустое тело
func DayTimetableMessage(date string, ti timetable.TeacherInfo) string {
	if len(ti.Lessons) == 0 {
		return fmt.Sprintf("У %s нет пар", ti.Name)
	}

	str := fmt.Sprintf("День - %s\n\n", date)
	str += fmt.Sprintf("Преподаватель: <b>%s</b>\n\n", ti.Name)
	for _, l := range ti.Lessons {
		group := strings.ReplaceAll(l.Group, "\n", " ")
		cabinet := strings.ReplaceAll(l.Cabinet, "\n", " ")

		str += fmt.Sprintf("<b>Пара №%d</b>\n", l.Index)
		if len(group) < 2 {
			str += "Предмет: -\n"
		} else {
			str += group + "\n"
		}
		if len(cabinet) < 2 {
			str += "Каб: -\n\n"
		} else {
			str += fmt.Sprintf("Каб: %s\n\n", cabinet)
		}
	}

	return str
}
