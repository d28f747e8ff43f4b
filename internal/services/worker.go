package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/skillbridge/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(reportID uuid.UUID)
}

type worker struct {
	reportRepo  repositories.ReportRepository
	analyzer    AnalyzerService
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	reportRepo repositories.ReportRepository,
	analyzer AnalyzerService,
	concurrency int,
) Worker {
	return &worker{
		reportRepo:  reportRepo,
		analyzer:    analyzer,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Re-enqueue reports that were queued before a restart.
	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(reportID uuid.UUID) {
	select {
	case w.jobQueue <- reportID:
		log.Printf("📥 Report %s enqueued", reportID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue report %s", reportID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped", workerID)
			return
		case reportID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing report %s", workerID, reportID)
			if err := w.analyzer.AnalyzeReport(ctx, reportID); err != nil {
				log.Printf("❌ Worker #%d failed to process report %s: %v", workerID, reportID, err)
			} else {
				log.Printf("✅ Worker #%d completed report %s", workerID, reportID)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pendingJobs, err := w.reportRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending reports: %v", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending reports", len(pendingJobs))
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
