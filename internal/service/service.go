package service

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"bugtrail/internal/config"
	"bugtrail/internal/repository"
	"bugtrail/internal/service/auth"
	"bugtrail/internal/service/bug"
	"bugtrail/internal/service/channel"
	"bugtrail/internal/service/dispatch"
	"bugtrail/internal/service/notification"
	"bugtrail/internal/service/preference"
	"bugtrail/internal/service/retention"
)

type Services struct {
	Auth         auth.Service
	Bug          bug.Service
	Notification notification.Service
	Preference   preference.Service
	Dispatch     dispatch.Service
	Retention    retention.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, cfg *config.Config, log zerolog.Logger) *Services {
	prefs := preference.NewService(repos.Preference, repos.Config, log)

	channels := []channel.Channel{
		channel.NewMailChannel(cfg, log),
		channel.NewPushChannel(cfg, log),
		channel.NewInAppChannel(repos.Notification, prefs, log),
	}

	dispatcher := dispatch.NewService(repos.User, prefs, channels, log)

	return &Services{
		Auth:         auth.NewService(repos.User, cfg),
		Bug:          bug.NewService(repos.Bug, dispatcher),
		Notification: notification.NewService(repos.Notification, redisClient, log),
		Preference:   prefs,
		Dispatch:     dispatcher,
		Retention:    retention.NewService(repos.Notification, prefs, log),
	}
}
