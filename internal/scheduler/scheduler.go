package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/benchwarmer/internal/config"
	"github.com/robfig/cron/v3"
)

// Auditor produces the weekly audit message.
type Auditor interface {
	LastCompletedWeek() (int, error)
	GetWeekSummary(week int) (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	auditor     Auditor
	sendMessage func(string) error
	expr        string
	schedule    cron.Schedule
	location    *time.Location
}

// ParseSchedule checks a standard five field cron expression.
func ParseSchedule(expr string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid audit schedule %q: %w", expr, err)
	}
	return schedule, nil
}

func NewScheduler(auditor Auditor, sendMessage func(string) error, cfg config.Audit) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %s: %w", cfg.Timezone, err)
	}

	schedule, err := ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, err
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		auditor:     auditor,
		sendMessage: sendMessage,
		expr:        cfg.Schedule,
		schedule:    schedule,
		location:    location,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.CronJob(s.expr, false),
		gocron.NewTask(s.sendWeeklyAudit),
	)
	if err != nil {
		return fmt.Errorf("failed to create weekly audit job: %w", err)
	}

	slog.Info("Scheduled weekly audit", "schedule", s.expr, "next", s.NextRun(time.Now()))
	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// NextRun is the first audit after from, in the configured time zone.
func (s *Scheduler) NextRun(from time.Time) time.Time {
	return s.schedule.Next(from.In(s.location))
}

func (s *Scheduler) sendWeeklyAudit() {
	week, err := s.auditor.LastCompletedWeek()
	if err != nil {
		slog.Error("Failed to get last completed week", "error", err)
		return
	}

	summary, err := s.auditor.GetWeekSummary(week)
	if err != nil {
		slog.Error("Failed to get week audit", "week", week, "error", err)
		return
	}

	if err := s.sendMessage(summary); err != nil {
		slog.Error("Failed to send week audit", "week", week, "error", err)
	}
}
