// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobStatus is the outcome of the last run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Job is a unit of background work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

// Name implements Job
func (f JobFunc) Name() string { return f.JobName }

// Run implements Job
func (f JobFunc) Run(ctx context.Context) error { return f.Fn(ctx) }

// JobInfo describes a registered job and its last run
type JobInfo struct {
	Name       string        `json:"name"`
	Spec       string        `json:"spec"`
	Status     JobStatus     `json:"status"`
	LastRun    *time.Time    `json:"last_run,omitempty"`
	LastError  string        `json:"last_error,omitempty"`
	LastTook   time.Duration `json:"last_took"`
	NextRun    *time.Time    `json:"next_run,omitempty"`
	RunCount   int64         `json:"run_count"`
	ErrorCount int64         `json:"error_count"`
}

// Seconds are optional so that both "0 */5 * * * *" and "*/5 * * * *" work
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseSpec validates a cron spec
func ParseSpec(spec string) error {
	_, err := cronParser.Parse(spec)
	return err
}

type entry struct {
	job     Job
	spec    string
	entryID cron.EntryID
	info    JobInfo
}

// Scheduler runs registered jobs on their cron spec. A job is skipped while
// its previous run is still in progress and every run gets its own timeout.
type Scheduler struct {
	cron       *cron.Cron
	jobTimeout time.Duration
	logger     *zap.Logger

	mu      sync.Mutex
	entries map[string]*entry
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a scheduler. jobTimeout bounds each run; zero means no bound.
func New(jobTimeout time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scheduler")
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(cronParser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		jobTimeout: jobTimeout,
		logger:     logger,
		entries:    make(map[string]*entry),
		ctx:        context.Background(),
	}
}

// Register adds job to run on spec
func (s *Scheduler) Register(spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrSchedulerRunning
	}
	if _, ok := s.entries[job.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name())
	}

	e := &entry{
		job:  job,
		spec: spec,
		info: JobInfo{Name: job.Name(), Spec: spec, Status: JobStatusPending},
	}
	id, err := s.cron.AddFunc(spec, func() { s.run(e) })
	if err != nil {
		return fmt.Errorf("job %s: invalid spec %q: %w", job.Name(), spec, err)
	}
	e.entryID = id
	s.entries[job.Name()] = e
	return nil
}

// Start starts the cron loop. Jobs run with a context derived from ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.entries)))
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		cancel()
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

// RunNow runs the named job synchronously, outside its schedule
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	e, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.run(e)
}

// Jobs lists the registered jobs sorted by name
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobInfo, 0, len(s.entries))
	for _, e := range s.entries {
		info := e.info
		if s.running {
			if next := s.cron.Entry(e.entryID).Next; !next.IsZero() {
				info.NextRun = &next
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Scheduler) run(e *entry) error {
	s.mu.Lock()
	parent := s.ctx
	started := time.Now()
	e.info.Status = JobStatusRunning
	e.info.LastRun = &started
	s.mu.Unlock()

	ctx := parent
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, s.jobTimeout)
		defer cancel()
	}

	log := s.logger.With(zap.String("job", e.job.Name()))
	log.Debug("Job started")
	err := e.job.Run(ctx)
	took := time.Since(started)

	s.mu.Lock()
	e.info.RunCount++
	e.info.LastTook = took
	if err != nil {
		e.info.Status = JobStatusFailed
		e.info.LastError = err.Error()
		e.info.ErrorCount++
	} else {
		e.info.Status = JobStatusSuccess
		e.info.LastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		log.Error("Job failed", zap.Duration("took", took), zap.Error(err))
		return err
	}
	log.Info("Job finished", zap.Duration("took", took))
	return nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
