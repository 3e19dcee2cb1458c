package service

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/storage"
)

// cleanupTask is one file scheduled for deletion
type cleanupTask struct {
	ID       string
	Filename string
	Attempts int
}

// cleanupService deletes replaced and orphaned files in the background.
// Deletion is at-least-once within the process: failed removals are retried
// up to MaxAttempts and permanent failures are logged, never surfaced to the
// request that scheduled them.
type cleanupService struct {
	files       storage.FileStore
	log         zerolog.Logger
	queue       chan *cleanupTask
	retryDelay  time.Duration
	maxAttempts int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	running     bool
	mu          sync.Mutex
}

// newCleanupService creates a new CleanupService
func newCleanupService(files storage.FileStore, cfg *config.CleanupConfig, log zerolog.Logger) *cleanupService {
	return &cleanupService{
		files:       files,
		log:         log.With().Str("service", "cleanup").Logger(),
		queue:       make(chan *cleanupTask, cfg.QueueSize),
		retryDelay:  cfg.PollInterval,
		maxAttempts: cfg.MaxAttempts,
	}
}

// StartProcessor starts the background deletion worker
func (s *cleanupService) StartProcessor(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.log.Info().Msg("File cleanup processor started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case <-s.ctx.Done():
				s.log.Info().Msg("File cleanup processor stopping")
				return
			case task := <-s.queue:
				s.safeProcess(task)
			}
		}
	}()
}

// StopProcessor stops the worker and waits for it to finish the in-flight task
func (s *cleanupService) StopProcessor() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false
	s.log.Info().Msg("File cleanup processor stopped")
}

// Enqueue schedules files for background deletion. It never blocks the
// caller: when the queue is full or the processor is not running, removal is
// attempted inline, best-effort.
func (s *cleanupService) Enqueue(filenames ...string) {
	for _, name := range filenames {
		if name == "" {
			continue
		}
		task := &cleanupTask{ID: uuid.New().String(), Filename: name}

		s.mu.Lock()
		running := s.running
		s.mu.Unlock()

		if !running {
			s.removeInline(task)
			continue
		}

		select {
		case s.queue <- task:
		default:
			s.log.Warn().
				Str("filename", name).
				Msg("Cleanup queue full, removing inline")
			s.removeInline(task)
		}
	}
}

// safeProcess runs one task with panic recovery so a bad task cannot
// take the worker down.
func (s *cleanupService) safeProcess(task *cleanupTask) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Interface("panic", r).
				Str("task_id", task.ID).
				Msg("Cleanup task panicked - recovered")
		}
	}()
	s.processTask(task)
}

// processTask removes one file, requeuing on failure until attempts run out.
func (s *cleanupService) processTask(task *cleanupTask) {
	task.Attempts++

	err := s.files.Remove(task.Filename)
	if err == nil || os.IsNotExist(err) {
		s.log.Debug().
			Str("task_id", task.ID).
			Str("filename", task.Filename).
			Int("attempts", task.Attempts).
			Msg("File removed")
		return
	}

	if task.Attempts >= s.maxAttempts {
		s.log.Error().
			Err(err).
			Str("task_id", task.ID).
			Str("filename", task.Filename).
			Int("attempts", task.Attempts).
			Msg("File cleanup failed permanently")
		return
	}

	s.log.Warn().
		Err(err).
		Str("task_id", task.ID).
		Str("filename", task.Filename).
		Int("attempts", task.Attempts).
		Msg("File cleanup failed, will retry")

	// Requeue after a delay so a transient failure does not spin the worker
	time.AfterFunc(s.retryDelay, func() {
		select {
		case s.queue <- task:
		default:
			s.log.Error().
				Str("task_id", task.ID).
				Str("filename", task.Filename).
				Msg("Cleanup queue full on retry, dropping task")
		}
	})
}

// removeInline is the fallback path when the background queue is unavailable
func (s *cleanupService) removeInline(task *cleanupTask) {
	if err := s.files.Remove(task.Filename); err != nil && !os.IsNotExist(err) {
		s.log.Error().
			Err(err).
			Str("task_id", task.ID).
			Str("filename", task.Filename).
			Msg("Inline file cleanup failed")
	}
}
