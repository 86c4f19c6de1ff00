package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vnykmshr/taskgate/pkg/concurrency/controller"
)

// Task describes a scheduled task.
type Task struct {
	ID       string
	RunAt    time.Time
	Interval time.Duration // Zero for one-time tasks
	Created  time.Time
}

// Scheduler defers and repeats task submissions into a concurrency
// controller, with cron support.
type Scheduler[T any] interface {
	// Basic scheduling
	Schedule(id string, task controller.Task[T], runAt time.Time) error
	ScheduleAfter(id string, task controller.Task[T], delay time.Duration) error
	ScheduleRepeating(id string, task controller.Task[T], interval time.Duration) error

	// Cron scheduling
	ScheduleCron(id string, cronExpr string, task controller.Task[T]) error

	// Task management
	Cancel(id string) bool
	CancelAll()
	List() []Task

	// Lifecycle
	Start() error
	Stop() <-chan struct{}
}

// Config holds scheduler configuration.
type Config[T any] struct {
	// Controller executes fired tasks. If nil, the scheduler owns a
	// controller with a default limit and stops it on Stop.
	Controller controller.Controller[T]

	// OnResult, if set, receives the outcome of every fired task.
	// Failures are delivered here as values; they never abort the
	// scheduler or sibling tasks.
	OnResult func(controller.Result[T])

	Location     *time.Location // For cron scheduling
	TickInterval time.Duration  // How often to check for ready tasks (default: 50ms)
	MaxTasks     int            // Maximum number of scheduled tasks (default: 10000)
}

const defaultControllerLimit = 4

type scheduledTask[T any] struct {
	id           string
	task         controller.Task[T]
	runAt        time.Time
	interval     time.Duration
	cronSchedule cron.Schedule
	created      time.Time
}

type scheduler[T any] struct {
	ctrl         controller.Controller[T]
	ownCtrl      bool
	onResult     func(controller.Result[T])
	location     *time.Location
	tickInterval time.Duration
	maxTasks     int
	cronParser   cron.Parser

	mu      sync.RWMutex
	tasks   map[string]*scheduledTask[T]
	ticker  *time.Ticker
	done    chan struct{}
	running bool

	taskWg sync.WaitGroup
}

// New creates a scheduler with default configuration.
func New[T any]() Scheduler[T] {
	return NewWithConfig(Config[T]{})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig[T any](cfg Config[T]) Scheduler[T] {
	ctrl := cfg.Controller
	ownCtrl := false
	if ctrl == nil {
		ctrl = controller.New[T](defaultControllerLimit)
		ownCtrl = true
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	tickInterval := cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = 50 * time.Millisecond // Reasonable default
	}

	maxTasks := cfg.MaxTasks
	if maxTasks <= 0 {
		maxTasks = 10000 // Reasonable default
	}

	return &scheduler[T]{
		ctrl:         ctrl,
		ownCtrl:      ownCtrl,
		onResult:     cfg.OnResult,
		location:     location,
		tickInterval: tickInterval,
		maxTasks:     maxTasks,
		cronParser:   cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		tasks:        make(map[string]*scheduledTask[T]),
		done:         make(chan struct{}),
	}
}

func (s *scheduler[T]) Schedule(id string, task controller.Task[T], runAt time.Time) error {
	if err := validateEntry(id, task); err != nil {
		return err
	}
	if runAt.IsZero() {
		return fmt.Errorf("task run time cannot be zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSlotLocked(id); err != nil {
		return err
	}

	s.tasks[id] = &scheduledTask[T]{
		id:      id,
		task:    task,
		runAt:   runAt,
		created: time.Now(),
	}

	return nil
}

func (s *scheduler[T]) ScheduleAfter(id string, task controller.Task[T], delay time.Duration) error {
	return s.Schedule(id, task, time.Now().Add(delay))
}

func (s *scheduler[T]) ScheduleRepeating(id string, task controller.Task[T], interval time.Duration) error {
	if err := validateEntry(id, task); err != nil {
		return err
	}
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSlotLocked(id); err != nil {
		return err
	}

	s.tasks[id] = &scheduledTask[T]{
		id:       id,
		task:     task,
		runAt:    time.Now(),
		interval: interval,
		created:  time.Now(),
	}

	return nil
}

func (s *scheduler[T]) ScheduleCron(id string, cronExpr string, task controller.Task[T]) error {
	if err := validateEntry(id, task); err != nil {
		return err
	}
	if cronExpr == "" {
		return fmt.Errorf("cron expression cannot be empty")
	}

	schedule, err := s.cronParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSlotLocked(id); err != nil {
		return err
	}

	now := time.Now().In(s.location)
	s.tasks[id] = &scheduledTask[T]{
		id:           id,
		task:         task,
		runAt:        schedule.Next(now),
		cronSchedule: schedule,
		created:      time.Now(),
	}

	return nil
}

func validateEntry[T any](id string, task controller.Task[T]) error {
	if id == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if len(id) > 255 {
		return fmt.Errorf("task ID too long (max 255 characters)")
	}
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}
	return nil
}

// checkSlotLocked verifies id is free and capacity remains.
// Must be called with s.mu held.
func (s *scheduler[T]) checkSlotLocked(id string) error {
	if _, exists := s.tasks[id]; exists {
		return fmt.Errorf("task with ID %q already exists, use a different ID or cancel the existing task first", id)
	}
	if len(s.tasks) >= s.maxTasks {
		return fmt.Errorf("cannot schedule task: maximum number of tasks (%d) reached", s.maxTasks)
	}
	return nil
}

func (s *scheduler[T]) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[id]; exists {
		delete(s.tasks, id)
		return true
	}
	return false
}

func (s *scheduler[T]) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make(map[string]*scheduledTask[T])
}

func (s *scheduler[T]) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, Task{
			ID:       t.id,
			RunAt:    t.runAt,
			Interval: t.interval,
			Created:  t.created,
		})
	}

	// Sort by run time
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].RunAt.Before(tasks[j].RunAt)
	})

	return tasks
}

func (s *scheduler[T]) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running, call Stop() first")
	}

	s.running = true
	s.ticker = time.NewTicker(s.tickInterval)

	go s.run()
	return nil
}

func (s *scheduler[T]) Stop() <-chan struct{} {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.done)
		if s.ticker != nil {
			s.ticker.Stop()
		}
	}
	s.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		s.taskWg.Wait()
		if s.ownCtrl {
			s.ctrl.Stop()
		}
	}()

	return stopped
}

func (s *scheduler[T]) run() {
	defer func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
	}()

	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.processReadyTasks()
		}
	}
}

func (s *scheduler[T]) processReadyTasks() {
	now := time.Now()

	s.mu.Lock()
	if len(s.tasks) == 0 {
		s.mu.Unlock()
		return // Quick exit if no tasks
	}

	ready := make([]*scheduledTask[T], 0, len(s.tasks))

	for id, task := range s.tasks {
		if now.After(task.runAt) || now.Equal(task.runAt) {
			ready = append(ready, task)

			// Handle rescheduling
			if task.interval > 0 {
				// Repeating task
				task.runAt = now.Add(task.interval)
			} else if task.cronSchedule != nil {
				// Cron task
				task.runAt = task.cronSchedule.Next(now.In(s.location))
			} else {
				// One-time task
				delete(s.tasks, id)
			}
		}
	}
	s.mu.Unlock()

	// Fire ready tasks through the controller; admission control and
	// error isolation happen there.
	for _, st := range ready {
		s.taskWg.Add(1)
		go func(st *scheduledTask[T]) {
			defer s.taskWg.Done()
			value, err := s.ctrl.Execute(context.Background(), st.id, st.task)
			if s.onResult != nil {
				s.onResult(controller.Result[T]{ID: st.id, Value: value, Err: err})
			}
		}(st)
	}
}
