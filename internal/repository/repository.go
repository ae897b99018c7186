package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Bug          BugRepository
	Notification NotificationRepository
	Preference   PreferenceRepository
	Config       ConfigRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Bug:          NewBugRepository(db),
		Notification: NewNotificationRepository(db),
		Preference:   NewPreferenceRepository(db),
		Config:       NewConfigRepository(db),
	}
}
