package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	logRetention       = 365 * 24 * time.Hour
	activeSessionIdle  = 48 * time.Hour
	jobContextDeadline = 30 * time.Second
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		zap.L().Warn("unknown system location, scheduling in local time",
			zap.String("location", a.appConfig.System.Location), zap.Error(err))
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedPruneLogs()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@every 10m", func() {
		a.SchedSweepSessions()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedPruneLogs drops activity log entries older than the retention window.
func (a *Application) SchedPruneLogs() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobContextDeadline)
	defer cancel()

	removed, err := a.store.PruneLogs(ctx, time.Now().Add(-logRetention))
	if err != nil {
		zap.L().Error("log prune failed", zap.Error(err))
		return
	}
	if removed > 0 {
		zap.L().Info("pruned activity logs", zap.Int64("removed", removed))
	}
}

// SchedSweepSessions removes active-session markers whose owner never logged
// out and has been idle past the cutoff.
func (a *Application) SchedSweepSessions() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobContextDeadline)
	defer cancel()

	removed, err := a.store.SweepActiveLogins(ctx, time.Now().Add(-activeSessionIdle))
	if err != nil {
		zap.L().Error("session sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		zap.L().Info("swept stale sessions", zap.Int64("removed", removed))
	}
}
