// Модель дневного расписания преподавателей
package timetable

import "sync"

// Заглушка для пустого кабинета или группы
const Empty = "-"

type Lesson struct {
	Index   int
	Cabinet string
	Group   string
}

type TeacherInfo struct {
	Name    string
	Lessons []Lesson
}

// Разобранное расписание на один день
type Timetable struct {
	Date         string
	TeacherInfos []TeacherInfo
}

func (l Lesson) Equals(other Lesson) bool {
	return l.Index == other.Index &&
		l.Cabinet == other.Cabinet &&
		l.Group == other.Group
}

// Структурное сравнение: имя и весь список пар попарно
func (t TeacherInfo) Equals(other TeacherInfo) bool {
	if t.Name != other.Name || len(t.Lessons) != len(other.Lessons) {
		return false
	}
	for i := range t.Lessons {
		if !t.Lessons[i].Equals(other.Lessons[i]) {
			return false
		}
	}

	return true
}

func (tt *Timetable) Equals(other *Timetable) bool {
	if tt == nil || other == nil {
		return tt == other
	}
	if tt.Date != other.Date || len(tt.TeacherInfos) != len(other.TeacherInfos) {
		return false
	}
	for i := range tt.TeacherInfos {
		if !tt.TeacherInfos[i].Equals(other.TeacherInfos[i]) {
			return false
		}
	}

	return true
}

// Поиск преподавателя в снимке
func (tt *Timetable) Teacher(name string) *TeacherInfo {
	for i := range tt.TeacherInfos {
		if tt.TeacherInfos[i].Name == name {
			return &tt.TeacherInfos[i]
		}
	}

	return nil
}

// Normalize подрезает хвост из пустых пар и забивает пропуски в начале
// заглушками, чтобы список всегда начинался с первой пары.
// Повторный вызов ничего не меняет
func (t *TeacherInfo) Normalize() {
	lessons := t.Lessons
	for len(lessons) > 0 && emptyGroup(lessons[len(lessons)-1].Group) {
		lessons = lessons[:len(lessons)-1]
	}
	if len(lessons) == 0 {
		t.Lessons = nil

		return
	}

	minIdx := lessons[0].Index
	for _, l := range lessons {
		if l.Index < minIdx {
			minIdx = l.Index
		}
	}
	for i := 1; i < minIdx; i++ {
		lessons = append(lessons, Lesson{
			Index:   i,
			Cabinet: Empty,
			Group:   Empty,
		})
	}
	// Сортировка вставками: пар в дне не больше десятка
	for i := 1; i < len(lessons); i++ {
		for j := i; j > 0 && lessons[j].Index < lessons[j-1].Index; j-- {
			lessons[j], lessons[j-1] = lessons[j-1], lessons[j]
		}
	}
	t.Lessons = lessons
}

func emptyGroup(group string) bool {
	return group == "" || group == Empty
}

// Holder хранит текущий снимок расписания между циклами проверки.
// Писатель один (updater), читатели - обработчики команд
type Holder struct {
	mu sync.RWMutex
	tt *Timetable
}

// Копия текущего снимка или nil, если разбора ещё не было
func (h *Holder) Get() *Timetable {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.tt == nil {
		return nil
	}
	cp := *h.tt
	cp.TeacherInfos = append([]TeacherInfo(nil), h.tt.TeacherInfos...)

	return &cp
}

func (h *Holder) Set(tt *Timetable) {
	h.mu.Lock()
	h.tt = tt
	h.mu.Unlock()
}
