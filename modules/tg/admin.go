package tg

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mergestat/timediff"

	"rasp.mgkct.by/teachersbot/modules/database"
)

// Сводка состояния бота для админа
func (bot *Bot) Status(user *database.TgUser) (tgbotapi.Message, error) {
	var str string

	snapshot := bot.Snapshot.Get()
	if snapshot == nil {
		str = "Снимок расписания ещё не загружен\n"
	} else {
		str = fmt.Sprintf(
			"Снимок: %s, преподавателей: %d\n",
			snapshot.Date, len(snapshot.TeacherInfos),
		)
	}

	last := bot.LastCheck()
	if last.IsZero() {
		str += "Проверок сайта ещё не было"
	} else {
		str += fmt.Sprintf(
			"Последняя проверка сайта: %s",
			timediff.TimeDiff(last, timediff.WithLocale("ru-RU")),
		)
	}

	users, err := bot.DB.Count(&database.TgUser{})
	if err != nil {
		return nilMsg, err
	}
	str += fmt.Sprintf("\nПользователей: %d", users)

	return bot.SendMsg(user, str, nil)
}

// Рассылка произвольного сообщения всем пользователям
func (bot *Bot) SayAll(msg *tgbotapi.Message) (tgbotapi.Message, error) {
	var users []database.TgUser
	if err := bot.DB.Where("TgId > 0").Find(&users); err != nil {
		return nilMsg, err
	}
	say := tgbotapi.NewMessage(0, strings.TrimSpace(strings.TrimPrefix(msg.Text, "/sayall")))
	for _, u := range users {
		say.ChatID = u.TgId
		if _, err := bot.TG.Send(say); err != nil {
			if !strings.Contains(err.Error(), "blocked by user") {
				bot.Debug.Println(err)
			}
		}
	}

	say.ChatID = bot.Admin
	say.Text = fmt.Sprintf("Сообщения отправлены (%s)", time.Now().Format("15:04:05"))

	return bot.TG.Send(say)
}
