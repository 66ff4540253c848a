// Рассылка уведомлений об изменениях расписания
package notify

import (
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/exp/slices"

	"rasp.mgkct.by/teachersbot/modules/database"
	"rasp.mgkct.by/teachersbot/modules/tg"
	"rasp.mgkct.by/teachersbot/modules/timetable"
)

// Число одновременных отправок
const defaultWorkers = 8

type Message struct {
	TgId int64
	Text string
}

// Mailer раздаёт сообщения пачкой через пул воркеров.
// Ошибка доставки одному получателю не трогает остальных
type Mailer struct {
	Send    func(tgId int64, text string) error
	Workers int
}

func (m *Mailer) Fanout(msgs []Message) int {
	workers := m.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0
	sem := make(chan struct{}, workers)
	for _, msg := range msgs {
		wg.Add(1)
		sem <- struct{}{}
		go func(msg Message) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := m.Send(msg.TgId, msg.Text); err != nil {
				log.Println(err)

				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}(msg)
	}
	wg.Wait()

	return sent
}

func botMailer(bot *tg.Bot) *Mailer {
	return &Mailer{
		Send: func(tgId int64, text string) error {
			msg := tgbotapi.NewMessage(tgId, text)
			msg.ParseMode = tgbotapi.ModeHTML
			_, err := bot.TG.Send(msg)

			return err
		},
	}
}

// ChangedTeachers рассылает подписчикам изменившихся преподавателей их
// новое дневное расписание. Сводка уходит админу
func ChangedTeachers(bot *tg.Bot, day *timetable.Timetable, changed []string) {
	if len(changed) == 0 {
		return
	}
	bot.SendAdminMsg(
		"There's been a schedule change with the teachers: " + strings.Join(changed, ", "),
	)

	var msgs []Message
	for _, teacher := range changed {
		ti := day.Teacher(teacher)
		if ti == nil {
			continue
		}
		users, err := database.UsersByTeacher(bot.DB, teacher)
		if err != nil {
			log.Println(err)

			continue
		}
		text := "‼ Обнаружены изменения в расписании\n\n" +
			tg.DayTimetableMessage(day.Date, *ti)
		for _, user := range users {
			msgs = append(msgs, Message{TgId: user.TgId, Text: text})
		}
	}

	sent := botMailer(bot).Fanout(msgs)
	bot.SendAdminMsg(fmt.Sprintf("%s: %d notifications sent", day.Date, sent))
}

// NewWeekInterval оповещает всех с включённой рассылкой о выходе
// нового недельного расписания
func NewWeekInterval(bot *tg.Bot, intervalStr string) {
	users, err := database.UsersWithNotifications(bot.DB)
	if err != nil {
		log.Println(err)

		return
	}

	var msgs []Message
	var ids []int64
	for _, user := range users {
		if slices.Contains(ids, user.TgId) {
			continue
		}
		ids = append(ids, user.TgId)
		msgs = append(msgs, Message{
			TgId: user.TgId,
			Text: "Вышло новое недельное расписание. Нажмите \"" + tg.KeyWeek +
				"\" для просмотра",
		})
	}

	sent := botMailer(bot).Fanout(msgs)
	bot.SendAdminMsg(fmt.Sprintf("%s: %d notifications sent", intervalStr, sent))
}
