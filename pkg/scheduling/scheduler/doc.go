/*
Package scheduler defers and repeats task submissions into a concurrency
controller.

The scheduler keeps a table of pending tasks and, on a fixed tick, fires
every task whose run time has arrived. Fired tasks execute through a
controller, so deferred and recurring work shares the same concurrency
ceiling, error isolation, and stats as directly submitted work.

Basic usage:

	ctrl := controller.New[string](4)
	s := scheduler.NewWithConfig(scheduler.Config[string]{
		Controller: ctrl,
		OnResult: func(r controller.Result[string]) {
			if r.Err != nil {
				log.Printf("%s: %v", r.ID, r.Err)
			}
		},
	})

	s.Schedule("nightly-audit", auditSite, time.Now().Add(time.Hour))
	s.ScheduleRepeating("heartbeat", ping, time.Minute)
	s.ScheduleCron("weekday-report", "0 0 9 * * MON-FRI", report)

	s.Start()
	defer func() { <-s.Stop() }()

Cron expressions use six fields (seconds first). One-time tasks are removed
after firing; repeating and cron tasks reschedule themselves.

Stop drains: the returned channel closes once every already-fired task has
completed. Tasks still pending in the table are simply never fired.
*/
package scheduler
