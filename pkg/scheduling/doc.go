/*
Package scheduling provides time-based submission on top of the
bounded-concurrency execution core.

  - scheduler: deferred, repeating, and cron-based task submission into a
    concurrency controller

Fired tasks share the controller's concurrency ceiling and error isolation
with directly submitted work:

	ctrl := controller.New[string](4)
	s := scheduler.NewWithConfig(scheduler.Config[string]{Controller: ctrl})

	s.ScheduleRepeating("hourly-audit", auditSite, time.Hour)
	s.ScheduleCron("weekday-report", "0 0 9 * * MON-FRI", report)

	s.Start()
	defer func() { <-s.Stop() }()
*/
package scheduling
