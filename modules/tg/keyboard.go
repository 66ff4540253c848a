package tg

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Кнопки главного меню
const (
	KeyDay         = "Посмотреть расписание на день"
	KeyWeek        = "Посмотреть расписание на неделю"
	KeyChange      = "Сменить преподавателя"
	KeySubscribe   = "Подписаться на рассылку"
	KeyUnsubscribe = "Отписаться от рассылки"
)

// Основная клавиатура. Последняя кнопка зависит от того,
// включена ли у пользователя рассылка
func GeneralKeyboard(notifications bool) tgbotapi.ReplyKeyboardMarkup {
	last := KeySubscribe
	if notifications {
		last = KeyUnsubscribe
	}
	key := tgbotapi.NewReplyKeyboard(
		[]tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(KeyDay)},
		[]tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(KeyWeek)},
		[]tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(KeyChange)},
		[]tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(last)},
	)
	key.ResizeKeyboard = true
	key.InputFieldPlaceholder = "Выберите действие"

	return key
}
