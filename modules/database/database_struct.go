package database

// Состояния диалога с пользователем
const (
	NotStarted    = "not_started"
	Ready         = "ready"
	ChangeTeacher = "change_teacher"
)

type User struct {
	UserId int64 `xorm:"pk"`
}

type TgUser struct {
	UserId        int64 `xorm:"pk"`
	TgId          int64
	Name          string
	PosTag        string
	Notifications bool
}

// Подписка пользователя на одного преподавателя
type Subscription struct {
	UID     int64 `xorm:"pk autoincr"`
	UserId  int64
	Teacher string
}
