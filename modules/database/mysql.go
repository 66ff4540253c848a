package database

import (
	"fmt"
	"io"
	"math/rand"

	_ "github.com/go-sql-driver/mysql"
	"xorm.io/xorm"
	"xorm.io/xorm/log"
	"xorm.io/xorm/names"
)

type DB struct {
	User   string
	Pass   string
	Host   string
	Schema string
}

func Connect(db DB, logFile io.Writer) (*xorm.Engine, error) {
	if db.Host == "" {
		db.Host = "localhost:3306"
	}
	engine, err := xorm.NewEngine(
		"mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8", db.User, db.Pass, db.Host, db.Schema),
	)
	if err != nil {
		return nil, err
	}

	engine.ShowSQL(true)
	engine.SetLogger(log.NewSimpleLogger(logFile))
	engine.SetMapper(names.SameMapper{})

	if err := engine.Sync(&User{}, &TgUser{}, &Subscription{}); err != nil {
		return nil, err
	}

	return engine, nil
}

// Случайный внутренний ID пользователя с проверкой на коллизию
func GenerateID(engine *xorm.Engine) (int64, error) {
	id := rand.Int63n(899999999) + 100000000

	exists, err := engine.ID(id).Exist(&User{})
	if err != nil {
		return 0, err
	}
	if exists {
		return GenerateID(engine)
	}

	return id, nil
}
