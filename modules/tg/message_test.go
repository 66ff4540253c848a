package tg

import (
	"strings"
	"testing"

	"rasp.mgkct.by/teachersbot/modules/timetable"
)

func TestDayTimetableMessage(t *testing.T) {
	ti := timetable.TeacherInfo{
		Name: "Иванов И. И.",
		Lessons: []timetable.Lesson{
			{Index: 1, Cabinet: "-", Group: "-"},
			{Index: 2, Cabinet: "204", Group: "Группа 123"},
		},
	}

	msg := DayTimetableMessage("среда, 03.09.2025", ti)
	for _, want := range []string{
		"среда, 03.09.2025",
		"<b>Иванов И. И.</b>",
		"Пара №1",
		"Предмет: -",
		"Каб: -",
		"Пара №2",
		"Группа 123",
		"Каб: 204",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message lost %q:\n%s", want, msg)
		}
	}
}

func TestDayTimetableMessageNoLessons(t *testing.T) {
	ti := timetable.TeacherInfo{Name: "Иванов И. И."}
	msg := DayTimetableMessage("среда, 03.09.2025", ti)
	if msg != "У Иванов И. И. нет пар" {
		t.Errorf("empty day message: %q", msg)
	}
}

func TestGeneralKeyboard(t *testing.T) {
	key := GeneralKeyboard(false)
	if len(key.Keyboard) != 4 {
		t.Fatalf("want 4 rows, got %d", len(key.Keyboard))
	}
	if key.Keyboard[3][0].Text != KeySubscribe {
		t.Errorf("last button: %q", key.Keyboard[3][0].Text)
	}

	key = GeneralKeyboard(true)
	if key.Keyboard[3][0].Text != KeyUnsubscribe {
		t.Errorf("last button with notifications on: %q", key.Keyboard[3][0].Text)
	}
	if !key.ResizeKeyboard {
		t.Error("keyboard must be resizable")
	}
}
