// Package jobs provides scheduled background tasks for the parcel service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance operations.
//
// # Available Jobs
//
// 1. IdempotencySweepJob - Runs hourly to delete expired idempotency records
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(idempotencyStore, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the "@hourly" cron expression. Expired idempotency records
// are already invisible to reads, so sweep frequency only affects storage
// growth, not correctness.
package jobs
