package app

import (
	"github.com/robfig/cron/v3"

	"github.com/bistrostack/gastropanel/config"
	"github.com/bistrostack/gastropanel/internal/audit"
	"github.com/bistrostack/gastropanel/internal/notify"
	"github.com/bistrostack/gastropanel/internal/repository"
)

// StoreProvider provides persistence access
type StoreProvider interface {
	Store() *repository.Store
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AuditProvider provides the activity recorder
type AuditProvider interface {
	Audit() *audit.Recorder
}

// NotifyProvider provides the event publisher
type NotifyProvider interface {
	Notifier() *notify.Publisher
}

// AppContext combines all provider interfaces for full application context.
// Components should depend on specific providers or this combined interface.
type AppContext interface {
	StoreProvider
	ConfigProvider
	SchedulerProvider
	AuditProvider
	NotifyProvider

	// Release shuts down background workers and closes external handles
	Release()
}
