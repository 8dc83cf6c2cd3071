// Package jobs provides scheduled background tasks for the parcel system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ParcelDispatchJob - Runs every second to assign pending parcels to available agents
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatchHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatch job uses the cron expression "* * * * * *", i.e. it runs every
// second. An idle system (no pending parcels, or no agents on duty with free
// capacity) is a normal state, not an error; the job stays quiet about it.
package jobs
