package database

import (
	"io"
	"log"
	"os"
	"time"

	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
)

// Файлы логов по направлениям: SQL, Telegram и отладка бота.
// Пишутся с суточной ротацией, старые файлы подчищаются
type LogFiles struct {
	DBLogFile io.WriteCloser
	TgLogFile io.WriteCloser
	DebugFile io.WriteCloser
}

func OpenLogs() LogFiles {
	return LogFiles{
		DBLogFile: CreateLog("sql"),
		TgLogFile: CreateLog("tg"),
		DebugFile: CreateLog("debug"),
	}
}

func (f *LogFiles) CloseAll() {
	f.DBLogFile.Close()
	f.TgLogFile.Close()
	f.DebugFile.Close()
}

func CreateLog(name string) io.WriteCloser {
	if err := os.MkdirAll("logs", os.ModePerm); err != nil {
		log.Println(err)
	}
	f, err := rotatelogs.New(
		"logs/"+name+"_%Y-%m-%d.log",
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(30*24*time.Hour),
	)
	if err != nil {
		log.Println(err)

		return os.Stderr
	}

	return f
}
