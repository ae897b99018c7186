package handler

import "bugtrail/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Bug          *BugHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Bug:          NewBugHandler(services.Bug),
		Notification: NewNotificationHandler(services.Notification, services.Preference),
		Admin:        NewAdminHandler(services.Preference, services.Retention),
	}
}
