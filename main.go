package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/robfig/cron/v3"

	"rasp.mgkct.by/teachersbot/modules/database"
	"rasp.mgkct.by/teachersbot/modules/fetch"
	"rasp.mgkct.by/teachersbot/modules/site"
	"rasp.mgkct.by/teachersbot/modules/tg"
	"rasp.mgkct.by/teachersbot/modules/timetable"
	"rasp.mgkct.by/teachersbot/modules/updater"
)

const (
	statePath = "last.json"
	imgPath   = "cachedImages"
)

func main() {
	if err := tg.CheckEnv(); err != nil {
		log.Fatal(err)
	}
	logs := database.OpenLogs()
	defer logs.CloseAll()

	roster, err := timetable.LoadRoster(os.Getenv("TEACHERS_PATH"))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Teachers: %d", len(roster.Teachers))

	bot, err := tg.InitBot(
		logs,
		database.DB{
			User:   os.Getenv("MYSQL_USER"),
			Pass:   os.Getenv("MYSQL_PASS"),
			Schema: os.Getenv("MYSQL_DB"),
		},
		os.Getenv("TELEGRAM_APITOKEN"),
	)
	if err != nil {
		log.Fatal(err)
	}
	bot.Admin, err = strconv.ParseInt(os.Getenv("TELEGRAM_ADMIN"), 10, 64)
	if err != nil {
		log.Fatal(err)
	}
	bot.Roster = roster
	bot.ImgPath = imgPath
	bot.HelpTxt = "Бот присылает расписание преподавателей МГКЦТ и уведомления " +
		"об изменениях.\n\n" +
		"Нажмите \"" + tg.KeyChange + "\" и отправьте фамилию, чтобы выбрать " +
		"преподавателя, затем \"" + tg.KeySubscribe + "\", чтобы получать изменения"

	state := updater.LoadState(statePath)
	bot.Snapshot.Set(state.Timetable)

	upd := &updater.Updater{
		Bot:       bot,
		Fetcher:   fetch.New(os.Getenv("RASP_URL")),
		Roster:    roster,
		State:     state,
		StatePath: statePath,
		WkPath:    os.Getenv("WK_PATH"),
		ImgPath:   imgPath,
	}

	period, err := strconv.Atoi(os.Getenv("CHECK_PERIOD"))
	if err != nil {
		log.Fatal(err)
	}
	// Пропускаем тик, если прошлая проверка ещё идёт
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))
	if _, err := c.AddFunc(fmt.Sprintf("@every %dm", period), upd.Tick); err != nil {
		log.Fatal(err)
	}
	c.Start()
	defer c.Stop()

	srv := site.Server{
		Snapshot:  bot.Snapshot,
		ImgPath:   imgPath,
		LastCheck: bot.LastCheck,
	}
	go func() {
		log.Println(http.ListenAndServe(os.Getenv("SITE_ADDR"), srv.Router()))
	}()

	// Первая проверка сразу при старте
	go upd.Tick()

	log.Println("Started")
	for update := range bot.Updates {
		if _, err := bot.HandleUpdate(update); err != nil {
			log.Println(err)
		}
	}
}
