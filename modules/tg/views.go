package tg

import (
	"fmt"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rasp.mgkct.by/teachersbot/modules/database"
)

// Дневное расписание по подпискам пользователя из текущего снимка
func (bot *Bot) SendDayTimetable(user *database.TgUser) (tgbotapi.Message, error) {
	teachers, err := database.TeachersOfUser(bot.DB, user.UserId)
	if err != nil {
		return nilMsg, err
	}
	if len(teachers) == 0 {
		return bot.SendMsg(user, "Вы еще не выбрали преподавателя", GeneralKeyboard(user.Notifications))
	}

	snapshot := bot.Snapshot.Get()
	if snapshot == nil {
		return bot.SendMsg(user, "Расписание ещё не загружено, попробуйте позже", nil)
	}

	var last tgbotapi.Message
	for _, teacher := range teachers {
		ti := snapshot.Teacher(teacher)
		if ti == nil {
			last, err = bot.SendMsg(user, fmt.Sprintf("У %s нет пар", teacher), nil)
		} else {
			last, err = bot.SendMsg(user, DayTimetableMessage(snapshot.Date, *ti), nil)
		}
		if err != nil {
			return last, err
		}
	}

	return last, nil
}

// Недельное расписание - закешированные картинки по подпискам
func (bot *Bot) SendWeekTimetable(user *database.TgUser) (tgbotapi.Message, error) {
	teachers, err := database.TeachersOfUser(bot.DB, user.UserId)
	if err != nil {
		return nilMsg, err
	}
	if len(teachers) == 0 {
		return bot.SendMsg(user, "Вы еще не выбрали преподавателя", GeneralKeyboard(user.Notifications))
	}

	var last tgbotapi.Message
	for _, teacher := range teachers {
		path := filepath.Join(bot.ImgPath, teacher+".jpg")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			last, err = bot.SendMsg(user,
				fmt.Sprintf("Недельное расписание для %s ещё не готово", teacher), nil)
			if err != nil {
				return last, err
			}

			continue
		}
		photo := tgbotapi.NewPhoto(user.TgId, tgbotapi.FilePath(path))
		photo.Caption = teacher
		last, err = bot.TG.Send(photo)
		if err != nil {
			return last, err
		}
	}

	return last, nil
}
