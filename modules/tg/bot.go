package tg

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"xorm.io/xorm"

	"rasp.mgkct.by/teachersbot/modules/database"
	"rasp.mgkct.by/teachersbot/modules/timetable"
)

type Bot struct {
	TG       *tgbotapi.BotAPI
	DB       *xorm.Engine
	Admin    int64
	HelpTxt  string
	Roster   *timetable.Roster
	Snapshot *timetable.Holder
	ImgPath  string
	Debug    *log.Logger
	Updates  tgbotapi.UpdatesChannel

	// Время последней проверки сайта, unix-секунды
	lastCheck atomic.Int64
}

var envKeys = []string{
	"TELEGRAM_APITOKEN",
	"TELEGRAM_ADMIN",
	"MYSQL_USER",
	"MYSQL_PASS",
	"MYSQL_DB",
	"RASP_URL",
	"TEACHERS_PATH",
	"WK_PATH",
	"CHECK_PERIOD",
	"SITE_ADDR",
}

func CheckEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found")
	}
	for _, key := range envKeys {
		if _, exists := os.LookupEnv(key); !exists {
			return fmt.Errorf("lost env key: %s", key)
		}
	}

	return nil
}

// Полная инициализация бота со стороны Telegram и БД
func InitBot(files database.LogFiles, db database.DB, token string) (*Bot, error) {
	var bot Bot
	engine, err := database.Connect(db, files.DBLogFile)
	if err != nil {
		return nil, err
	}
	bot.DB = engine

	bot.TG, err = tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if err := tgbotapi.SetLogger(log.New(files.TgLogFile, "", log.LstdFlags)); err != nil {
		return nil, err
	}
	bot.GetUpdates()

	log.Printf("Authorized on account %s", bot.TG.Self.UserName)
	bot.Debug = log.New(io.MultiWriter(os.Stderr, files.DebugFile), "", log.LstdFlags)
	bot.Snapshot = &timetable.Holder{}

	return &bot, nil
}

func (bot *Bot) GetUpdates() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	bot.Updates = bot.TG.GetUpdatesChan(u)
}

func (bot *Bot) SendMsg(user *database.TgUser, text string, markup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(user.TgId, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup

	return bot.TG.Send(msg)
}

// Служебное сообщение админу. Ошибки отправки только логируются:
// недоступность админа не должна ломать цикл проверки
func (bot *Bot) SendAdminMsg(text string) {
	if bot.Admin == 0 {
		return
	}
	msg := tgbotapi.NewMessage(bot.Admin, text)
	if _, err := bot.TG.Send(msg); err != nil {
		bot.Debug.Println(err)
	}
}

func (bot *Bot) MarkCheck(now time.Time) {
	bot.lastCheck.Store(now.Unix())
}

func (bot *Bot) LastCheck() time.Time {
	sec := bot.lastCheck.Load()
	if sec == 0 {
		return time.Time{}
	}

	return time.Unix(sec, 0)
}

// Получение данных о пользователе из БД и создание нового при необходимости
func InitUser(db *xorm.Engine, user *tgbotapi.User) (*database.TgUser, error) {
	var users []database.TgUser
	err := db.Find(&users, &database.TgUser{TgId: user.ID})
	if err != nil {
		return nil, err
	}
	if len(users) > 0 {
		return &users[0], nil
	}

	id, err := database.GenerateID(db)
	if err != nil {
		return nil, err
	}
	tgUser := database.TgUser{
		UserId: id,
		TgId:   user.ID,
		Name:   user.FirstName,
		PosTag: database.NotStarted,
	}
	if _, err := db.Insert(database.User{UserId: id}, tgUser); err != nil {
		return nil, err
	}

	return &tgUser, nil
}
