package timetable

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Справочник преподавателей. Загружается один раз при старте,
// всё, что в нём не найдено, для бота не существует
type Roster struct {
	Teachers []string
}

// Загрузка справочника из JSON-файла вида ["Иванов И. И.", ...]
func LoadRoster(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var teachers []string
	if err := json.Unmarshal(raw, &teachers); err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	if len(teachers) == 0 {
		return nil, fmt.Errorf("roster %s: empty list", path)
	}

	return &Roster{Teachers: teachers}, nil
}

// Точное совпадение с каноническим именем
func (r *Roster) Contains(name string) bool {
	for _, t := range r.Teachers {
		if t == name {
			return true
		}
	}

	return false
}

// Поиск по фамилии для подписки: без регистра, по вхождению
func (r *Roster) Match(query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return ""
	}
	for _, t := range r.Teachers {
		if strings.Contains(strings.ToLower(t), query) {
			return t
		}
	}

	return ""
}
