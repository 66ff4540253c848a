package tg

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rasp.mgkct.by/teachersbot/modules/database"
)

var nilMsg = tgbotapi.Message{}

// Обработка одного апдейта Telegram. Любая ошибка здесь касается
// одного пользователя и не должна валить процесс
func (bot *Bot) HandleUpdate(update tgbotapi.Update) (tgbotapi.Message, error) {
	if update.Message == nil {
		return nilMsg, nil
	}
	msg := update.Message
	user, err := InitUser(bot.DB, msg.From)
	if err != nil {
		return nilMsg, err
	}
	bot.Debug.Printf("Message [%d:%d] <%s> %s", user.UserId, user.TgId, user.Name, msg.Text)

	if strings.Contains(msg.Text, "/help") {
		return bot.SendMsg(user, bot.HelpTxt, GeneralKeyboard(user.Notifications))
	}
	if strings.Contains(msg.Text, "/start") {
		return bot.Start(user)
	}
	if user.TgId == bot.Admin {
		if strings.Contains(msg.Text, "/status") {
			return bot.Status(user)
		}
		if strings.Contains(msg.Text, "/sayall") {
			return bot.SayAll(msg)
		}
	}

	switch user.PosTag {
	case database.ChangeTeacher:
		return bot.SetTeacher(user, msg.Text)
	case database.Ready:
		return bot.handleMenu(user, msg.Text)
	default:
		return bot.Start(user)
	}
}

func (bot *Bot) handleMenu(user *database.TgUser, text string) (tgbotapi.Message, error) {
	switch text {
	case KeyDay:
		return bot.SendDayTimetable(user)
	case KeyWeek:
		return bot.SendWeekTimetable(user)
	case KeyChange:
		return bot.AskTeacher(user)
	case KeySubscribe:
		return bot.SetNotifications(user, true)
	case KeyUnsubscribe:
		return bot.SetNotifications(user, false)
	default:
		return bot.SendMsg(user, "Выберите действие с клавиатуры", GeneralKeyboard(user.Notifications))
	}
}

// Приветственное сообщение
func (bot *Bot) Start(user *database.TgUser) (tgbotapi.Message, error) {
	user.PosTag = database.Ready
	if _, err := bot.DB.ID(user.UserId).Cols("PosTag").Update(user); err != nil {
		return nilMsg, err
	}

	return bot.SendMsg(
		user,
		"Бот расписания преподавателей МГКЦТ\n"+
			"Выберите преподавателя и получайте дневное и недельное расписание "+
			"вместе с уведомлениями об изменениях",
		GeneralKeyboard(user.Notifications),
	)
}

func (bot *Bot) AskTeacher(user *database.TgUser) (tgbotapi.Message, error) {
	user.PosTag = database.ChangeTeacher
	if _, err := bot.DB.ID(user.UserId).Cols("PosTag").Update(user); err != nil {
		return nilMsg, err
	}

	return bot.SendMsg(user,
		"Для оформления подписки на преподавателя отправьте его фамилию",
		tgbotapi.ReplyKeyboardRemove{RemoveKeyboard: true},
	)
}

// Подписка на преподавателя по фамилии. Нечёткий поиск по справочнику,
// старые подписки при смене снимаются
func (bot *Bot) SetTeacher(user *database.TgUser, query string) (tgbotapi.Message, error) {
	teacher := bot.Roster.Match(query)
	if teacher == "" {
		return bot.SendMsg(user, "Преподаватель не найден", nil)
	}

	if _, err := bot.DB.Delete(&database.Subscription{UserId: user.UserId}); err != nil {
		return nilMsg, err
	}
	if _, err := bot.DB.Insert(&database.Subscription{
		UserId:  user.UserId,
		Teacher: teacher,
	}); err != nil {
		return nilMsg, err
	}
	user.PosTag = database.Ready
	if _, err := bot.DB.ID(user.UserId).Cols("PosTag").Update(user); err != nil {
		return nilMsg, err
	}

	return bot.SendMsg(user,
		fmt.Sprintf("Вы успешно подписались на расписание преподавателя %s", teacher),
		GeneralKeyboard(user.Notifications),
	)
}

func (bot *Bot) SetNotifications(user *database.TgUser, enabled bool) (tgbotapi.Message, error) {
	if enabled {
		teachers, err := database.TeachersOfUser(bot.DB, user.UserId)
		if err != nil {
			return nilMsg, err
		}
		if len(teachers) == 0 {
			return bot.SendMsg(user,
				"Перед оформлением подписки на рассылку необходимо выбрать преподавателя", nil)
		}
	}

	user.Notifications = enabled
	if _, err := bot.DB.ID(user.UserId).UseBool("Notifications").
		Cols("Notifications").Update(user); err != nil {
		return nilMsg, err
	}

	text := "Вы успешно отменили подписку на расписание"
	if enabled {
		text = "Вы успешно подписались на рассылку изменений расписания"
	}

	return bot.SendMsg(user, text, GeneralKeyboard(enabled))
}
