package database

import (
	"xorm.io/builder"
	"xorm.io/xorm"
)

// Подписчики преподавателя с включённой рассылкой
func UsersByTeacher(db *xorm.Engine, teacher string) ([]TgUser, error) {
	var users []TgUser
	err := db.
		UseBool("Notifications").
		Table("Subscription").
		Cols("TgId", "TgUser.UserId").
		Join("INNER", "TgUser", "TgUser.UserId = Subscription.UserId").
		Where(builder.Eq{"Subscription.Teacher": teacher}).
		Find(&users, &TgUser{Notifications: true})

	return users, err
}

// Все пользователи с подпиской и включённой рассылкой,
// для оповещения о новом недельном расписании
func UsersWithNotifications(db *xorm.Engine) ([]TgUser, error) {
	var users []TgUser
	err := db.
		UseBool("Notifications").
		Table("Subscription").
		Cols("TgId", "TgUser.UserId").
		Join("INNER", "TgUser", "TgUser.UserId = Subscription.UserId").
		GroupBy("TgUser.UserId").
		Find(&users, &TgUser{Notifications: true})

	return users, err
}

// Список подписок пользователя
func TeachersOfUser(db *xorm.Engine, userId int64) ([]string, error) {
	var subs []Subscription
	if err := db.Where(builder.Eq{"UserId": userId}).Find(&subs); err != nil {
		return nil, err
	}
	var teachers []string
	for _, s := range subs {
		teachers = append(teachers, s.Teacher)
	}

	return teachers, nil
}
