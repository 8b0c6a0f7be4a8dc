package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vishyyyyyyyyy/ToyoQuest/config"
	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
	"github.com/vishyyyyyyyyy/ToyoQuest/scraper"
	"github.com/vishyyyyyyyyy/ToyoQuest/storage"
)

func validateHourMinute(hour, minute int) (int, int) {
	if hour < 0 || hour > 23 {
		logger.Warn("invalid scrape hour, using 0", "hour", hour)
		hour = 0
	}
	if minute < 0 || minute > 59 {
		logger.Warn("invalid scrape minute, using 0", "minute", minute)
		minute = 0
	}
	return hour, minute
}

func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

type taskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// Scheduler refreshes the vehicle catalog on a daily schedule (or a short
// fixed interval in debug mode), keeping the CSV the recommendation
// pipeline reads reasonably fresh without manual scrapes.
type Scheduler struct {
	cfg     *config.Config
	scraper *scraper.Scraper
	task    taskStatus
	mutex   sync.Mutex
}

func NewScheduler(cfg *config.Config, s *scraper.Scraper) *Scheduler {
	return &Scheduler{cfg: cfg, scraper: s}
}

// Start launches the scheduler loop in the background.
func Start(cfg *config.Config, s *scraper.Scraper) {
	sched := NewScheduler(cfg, s)
	sched.initTask()
	go sched.run()

	logger.Info("scheduler started", "check_interval_sec", cfg.Scheduler.CheckIntervalSec)
}

func (s *Scheduler) initTask() {
	now := time.Now()

	if s.cfg.Scheduler.DebugEnabled {
		interval := time.Duration(s.cfg.Scheduler.DebugIntervalSec) * time.Second
		s.task = taskStatus{
			LastRun:     now.Add(-interval),
			NextRun:     now.Add(interval),
			Description: fmt.Sprintf("catalog scrape (debug mode: every %ds)", s.cfg.Scheduler.DebugIntervalSec),
		}
		logger.Info("debug scheduling enabled", "interval_sec", s.cfg.Scheduler.DebugIntervalSec)
		return
	}

	hour, minute := validateHourMinute(s.cfg.Scheduler.ScrapeHour, s.cfg.Scheduler.ScrapeMin)
	s.task = taskStatus{
		LastRun:     now,
		NextRun:     getNextTimePoint(now, hour, minute),
		Description: fmt.Sprintf("daily catalog scrape at %02d:%02d", hour, minute),
	}
	logger.Info("catalog scrape scheduled", "next_run", s.task.NextRun.Format(time.RFC3339))
}

func (s *Scheduler) run() {
	interval := time.Duration(s.cfg.Scheduler.CheckIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		s.maybeRun(time.Now())
	}
}

func (s *Scheduler) maybeRun(now time.Time) {
	s.mutex.Lock()
	due := !s.task.IsRunning && now.After(s.task.NextRun)
	if due {
		s.task.IsRunning = true
	}
	s.mutex.Unlock()
	if !due {
		return
	}

	logger.Info("running scheduled task", "task", s.task.Description)
	s.runScrape()

	s.mutex.Lock()
	s.task.IsRunning = false
	s.task.LastRun = now
	if s.cfg.Scheduler.DebugEnabled {
		s.task.NextRun = now.Add(time.Duration(s.cfg.Scheduler.DebugIntervalSec) * time.Second)
	} else {
		hour, minute := validateHourMinute(s.cfg.Scheduler.ScrapeHour, s.cfg.Scheduler.ScrapeMin)
		s.task.NextRun = getNextTimePoint(now, hour, minute)
	}
	logger.Info("scheduled task finished", "task", s.task.Description, "next_run", s.task.NextRun.Format(time.RFC3339))
	s.mutex.Unlock()
}

func (s *Scheduler) runScrape() {
	records := s.scraper.Run(context.Background())
	if len(records) == 0 {
		logger.Warn("scheduled scrape collected no records, keeping existing catalog")
		return
	}
	if err := storage.WriteCatalog(s.cfg.Storage.CatalogFile, records); err != nil {
		logger.Error("scheduled scrape failed to write catalog", "error", err)
	}
}
