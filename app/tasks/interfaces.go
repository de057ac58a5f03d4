package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background calendar processing.
// Example usage:
//
//	scheduler := NewScheduler(configCache, calRepo, eventRepo, httpClient, pipeline, eventCache)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewSyncCalendarTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
