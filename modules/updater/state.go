package updater

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"rasp.mgkct.by/teachersbot/modules/timetable"
)

// Версия формата файла состояния. При несовпадении файл
// игнорируется целиком и состояние набирается заново
const StateVersion = 1

// Состояние между перезапусками: подписи страниц, интервал недели,
// заголовки дней и последний разобранный снимок
type State struct {
	Version           int
	WeekInterval      [2]time.Time
	ThHeaders         []string
	LastDaySignature  string
	LastWeekSignature string
	Timetable         *timetable.Timetable
}

func LoadState(path string) *State {
	fresh := &State{Version: StateVersion}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Println(err)
		}

		return fresh
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("state %s: %v", path, err)

		return fresh
	}
	if state.Version != StateVersion {
		log.Printf("state %s: version %d, want %d, ignored", path, state.Version, StateVersion)

		return fresh
	}

	return &state
}

func (s *State) Save(path string) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, raw, 0o644)
}
