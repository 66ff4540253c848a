// Цикл проверки сайта: подписи, разбор, поиск изменений, рассылка
package updater

import (
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"

	"rasp.mgkct.by/teachersbot/modules/checker"
	"rasp.mgkct.by/teachersbot/modules/fetch"
	"rasp.mgkct.by/teachersbot/modules/htmlschedule"
	"rasp.mgkct.by/teachersbot/modules/notify"
	"rasp.mgkct.by/teachersbot/modules/tg"
	"rasp.mgkct.by/teachersbot/modules/timetable"
)

// Источник страниц расписания. В проде - modules/fetch,
// в тестах подменяется заглушкой
type Fetcher interface {
	DayPage() (*goquery.Document, error)
	WeekPage() (*goquery.Document, error)
}

type Updater struct {
	Bot       *tg.Bot
	Fetcher   Fetcher
	Roster    *timetable.Roster
	State     *State
	StatePath string
	WkPath    string
	ImgPath   string

	// Число фактически выполненных разборов дневной страницы
	Parses int64

	busy atomic.Bool
}

// Tick выполняет один цикл проверки. Если прошлый цикл ещё не
// завершился, новый не ставится в очередь, а пропускается
func (u *Updater) Tick() {
	if !u.busy.CompareAndSwap(false, true) {
		log.Println("check still running, tick skipped")

		return
	}
	defer u.busy.Store(false)

	now := time.Now()
	u.Bot.MarkCheck(now)

	dayDoc, err := u.Fetcher.DayPage()
	if err != nil {
		log.Println(err)

		return
	}
	daySig := fetch.DaySignature(dayDoc)
	parseDay := daySig != "" && daySig != u.State.LastDaySignature

	weekDoc, err := u.Fetcher.WeekPage()
	if err != nil {
		// Неделя не критична для дневного цикла
		log.Println(err)
		weekDoc = nil
	}
	parseWeek := false
	var weekSig string
	if weekDoc != nil {
		weekSig = fetch.WeekSignature(weekDoc)
		parseWeek = weekSig != "" && weekSig != u.State.LastWeekSignature
	}

	if parseWeek {
		u.Bot.SendAdminMsg("Start parse week")
		u.updateWeek(weekDoc)
		u.State.LastWeekSignature = weekSig
		u.Bot.SendAdminMsg("End parse week")
	}

	if parseDay {
		u.Bot.SendAdminMsg("Start parse day")
		// Прерванный разбор не записывает подпись,
		// чтобы следующий цикл попробовал страницу ещё раз
		if u.updateDay(dayDoc, now) {
			u.State.LastDaySignature = daySig
		}
		u.Bot.SendAdminMsg("End parse day")
	}

	if parseDay || parseWeek {
		if err := u.State.Save(u.StatePath); err != nil {
			log.Println(err)
		}
	}
}

// Разбор дневной страницы и рассылка изменений.
// Снимок подменяется только после сравнения со старым.
// Возвращает false, если разбор прерван и страницу надо повторить
func (u *Updater) updateDay(doc *goquery.Document, now time.Time) bool {
	atomic.AddInt64(&u.Parses, 1)

	interval := u.State.WeekInterval
	if interval[0].IsZero() {
		interval = timetable.CurrentWeekInterval(now)
	}

	tt, teacherErrs, err := timetable.ParseDay(doc, u.Roster, u.State.ThHeaders, interval)
	if err != nil {
		if errors.Is(err, timetable.ErrNextSaturday) {
			u.Bot.SendAdminMsg("Detected next Saturday!")

			return false
		}
		u.Bot.SendAdminMsg("Ошибка разбора дневного расписания: " + err.Error())

		return false
	}
	for _, te := range teacherErrs {
		u.Bot.SendAdminMsg("Ошибка дневного расписания у преподавателя: " + te.Error())
	}

	prev := u.State.Timetable
	changed := checker.Changed(tt, prev)

	u.State.Timetable = tt
	u.Bot.Snapshot.Set(tt)

	// Первый запуск: снимка для сравнения не было, рассылать нечего
	if prev != nil && len(changed) > 0 {
		go notify.ChangedTeachers(u.Bot, tt, changed)
	}

	return true
}

// Разбор недельной страницы: обновление интервала и заголовков дней,
// перерисовка картинок, оповещение о новом интервале
func (u *Updater) updateWeek(doc *goquery.Document) {
	page, err := timetable.ParseWeek(doc, u.Roster)
	if err != nil {
		u.Bot.SendAdminMsg("Ошибка разбора недельного расписания: " + err.Error())

		return
	}

	if len(page.Headers) > 0 {
		u.State.ThHeaders = page.Headers
	}

	for _, section := range page.Sections {
		if err := htmlschedule.CreateWeekImg(u.WkPath, u.ImgPath, page.IntervalRaw, section); err != nil {
			u.Bot.SendAdminMsg("Ошибка в преподавателе: " + section.Teacher + ": " + err.Error())
		}
	}

	newInterval := !page.Interval[0].IsZero() && page.Interval != u.State.WeekInterval
	hadInterval := !u.State.WeekInterval[0].IsZero()
	if newInterval {
		u.State.WeekInterval = page.Interval
		u.Bot.SendAdminMsg("New interval is " + page.IntervalRaw)
		if hadInterval {
			go notify.NewWeekInterval(u.Bot, page.IntervalRaw)
		}
	}
}
