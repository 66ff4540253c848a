package checker

import (
	"testing"

	"golang.org/x/exp/slices"

	"rasp.mgkct.by/teachersbot/modules/timetable"
)

func schedule() *timetable.Timetable {
	return &timetable.Timetable{
		Date: "среда, 03.09.2025",
		TeacherInfos: []timetable.TeacherInfo{
			{
				Name: "Иванов И. И.",
				Lessons: []timetable.Lesson{
					{Index: 1, Cabinet: "204", Group: "Группа 123"},
				},
			},
			{
				Name: "Петров П. П.",
				Lessons: []timetable.Lesson{
					{Index: 1, Cabinet: "305", Group: "Группа 456"},
					{Index: 2, Cabinet: "305", Group: "Группа 456"},
				},
			},
		},
	}
}

func TestChangedIdentical(t *testing.T) {
	if changed := Changed(schedule(), schedule()); len(changed) != 0 {
		t.Fatalf("identical schedules changed: %v", changed)
	}
}

func TestChangedNoPrevious(t *testing.T) {
	changed := Changed(schedule(), nil)
	if len(changed) != 2 {
		t.Fatalf("first run must mark everyone: %v", changed)
	}
}

func TestChangedCabinet(t *testing.T) {
	new, prev := schedule(), schedule()
	new.TeacherInfos[0].Lessons[0].Cabinet = "305"

	changed := Changed(new, prev)
	if len(changed) != 1 || changed[0] != "Иванов И. И." {
		t.Fatalf("want only Иванов: %v", changed)
	}
	// Входные снимки не изменяются
	if prev.TeacherInfos[0].Lessons[0].Cabinet != "204" {
		t.Error("previous snapshot mutated")
	}
}

func TestChangedEmptiedOut(t *testing.T) {
	new, prev := schedule(), schedule()
	new.TeacherInfos[1].Lessons = nil

	changed := Changed(new, prev)
	if !slices.Contains(changed, "Петров П. П.") {
		t.Fatalf("teacher who lost all lessons must be marked: %v", changed)
	}
}

func TestChangedStillEmpty(t *testing.T) {
	new, prev := schedule(), schedule()
	new.TeacherInfos[1].Lessons = nil
	prev.TeacherInfos[1].Lessons = nil

	changed := Changed(new, prev)
	if slices.Contains(changed, "Петров П. П.") {
		t.Fatalf("empty then and now is not a change: %v", changed)
	}
}

func TestChangedCountMismatch(t *testing.T) {
	new, prev := schedule(), schedule()
	new.TeacherInfos = append(new.TeacherInfos, timetable.TeacherInfo{
		Name: "Сидорова С. С.",
		Lessons: []timetable.Lesson{
			{Index: 1, Cabinet: "101", Group: "Группа 789"},
		},
	})

	// Число преподавателей изменилось - оповещаются все
	changed := Changed(new, prev)
	if len(changed) != 3 {
		t.Fatalf("count mismatch must mark everyone: %v", changed)
	}
}

func TestChangedSwappedTeacher(t *testing.T) {
	new, prev := schedule(), schedule()
	new.TeacherInfos[1].Name = "Сидорова С. С."

	changed := Changed(new, prev)
	if !slices.Contains(changed, "Сидорова С. С.") {
		t.Fatalf("teacher absent from previous must be marked: %v", changed)
	}
	if slices.Contains(changed, "Иванов И. И.") {
		t.Fatalf("untouched teacher marked: %v", changed)
	}
}

func TestChangedOrderMatters(t *testing.T) {
	new, prev := schedule(), schedule()
	new.TeacherInfos[1].Lessons[0], new.TeacherInfos[1].Lessons[1] =
		new.TeacherInfos[1].Lessons[1], new.TeacherInfos[1].Lessons[0]

	changed := Changed(new, prev)
	if !slices.Contains(changed, "Петров П. П.") {
		t.Fatalf("lesson order change must be a change: %v", changed)
	}
}
