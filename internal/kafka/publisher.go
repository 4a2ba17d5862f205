package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"gitlab.ozon.dev/ecom/returns/internal/db"
	"gitlab.ozon.dev/ecom/returns/internal/metrics"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Publisher drains outbox_tasks into Kafka. A batch is claimed with
// SKIP LOCKED and marked PROCESSING inside one transaction, so several
// engine instances can poll the same table without publishing a row twice.
type Publisher struct {
	db             db.DB
	repo           storage.OutboxTaskRepository
	producer       Producer
	config         PublisherConfig
	wg             sync.WaitGroup
	shutdownSignal chan struct{}
	stopOnce       sync.Once
}

func NewPublisher(db db.DB, repo storage.OutboxTaskRepository, producer Producer, config PublisherConfig) *Publisher {
	return &Publisher{
		db:             db,
		repo:           repo,
		producer:       producer,
		config:         config,
		shutdownSignal: make(chan struct{}),
	}
}

// Run polls the outbox until ctx is cancelled or Shutdown is called. The
// caller owns Shutdown; Run never closes the producer itself.
func (p *Publisher) Run(ctx context.Context) {
	log.Println("Starting outbox publisher...")
	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				log.Printf("ERROR: outbox publisher failed to process batch: %v", err)
			}
		case <-p.shutdownSignal:
			log.Println("Outbox publisher received shutdown signal, stopping...")
			return
		case <-ctx.Done():
			log.Println("Outbox publisher context cancelled, stopping...")
			return
		}
	}
}

// Shutdown stops the poll loop, waits for an in-flight batch to finish and
// closes the producer. Safe to call more than once and concurrently with a
// ctx-driven exit of Run.
func (p *Publisher) Shutdown() {
	p.stopOnce.Do(func() {
		log.Println("Initiating outbox publisher shutdown...")
		close(p.shutdownSignal)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			log.Println("Outbox publisher shutdown complete.")
		case <-shutdownCtx.Done():
			log.Println("WARN: outbox publisher shutdown timed out.")
		}

		if err := p.producer.Close(); err != nil {
			log.Printf("ERROR: failed to close Kafka producer: %v", err)
		}
	})
}

func (p *Publisher) processBatch(ctx context.Context) error {
	tx, err := p.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin claim transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	tasks, err := p.repo.GetProcessableTasksTx(ctx, tx, p.config.BatchSize, p.config.MaxAttempts)
	if err != nil {
		return fmt.Errorf("failed to get processable tasks: %w", err)
	}

	if len(tasks) == 0 {
		return tx.Commit(ctx)
	}

	log.Printf("Outbox publisher: claimed %d tasks", len(tasks))

	for _, task := range tasks {
		err := p.repo.UpdateTaskStatusTx(ctx, tx, task.ID, repository.TaskStatusProcessing, task.Attempts, nil, nil)
		if err != nil {
			return fmt.Errorf("failed to mark task %s as PROCESSING: %w", task.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit task claim: %w", err)
	}

	for i, task := range tasks {
		select {
		case <-p.shutdownSignal:
			log.Printf("Shutdown signal received during batch, releasing %d unsent tasks.", len(tasks)-i)
			p.releaseUnsent(tasks[i:])
			return errors.New("publisher shutdown during batch processing")
		case <-ctx.Done():
			log.Printf("Context cancelled during batch, releasing %d unsent tasks.", len(tasks)-i)
			p.releaseUnsent(tasks[i:])
			return ctx.Err()
		default:
		}

		if err := p.processSingleTask(ctx, task); err != nil {
			log.Printf("ERROR: failed to process task %s: %v", task.ID, err)
		}
	}

	return nil
}

// releaseUnsent puts claimed-but-unsent tasks back in reach of the next
// poll. FAILED rows with attempts below the cap stay claimable; rows left
// PROCESSING would be orphaned. Attempts are kept as-is so a shutdown does
// not burn a retry. The run context may already be cancelled here.
func (p *Publisher) releaseUnsent(tasks []*repository.OutboxTask) {
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := "publisher stopped before send"
	for _, task := range tasks {
		err := p.repo.UpdateTaskStatus(releaseCtx, p.db, task.ID, repository.TaskStatusFailed, task.Attempts, &msg, nil)
		if err != nil {
			log.Printf("ERROR: failed to release unsent task %s: %v", task.ID, err)
		}
	}
}

func (p *Publisher) processSingleTask(ctx context.Context, task *repository.OutboxTask) error {
	log.Printf("Publishing task %s (attempt %d)", task.ID, task.Attempts+1)

	// Key by return id so every event for one return lands on one partition
	// and consumers see its transitions in order.
	key := []byte(task.ID.String())
	var event repository.ReturnEventPayload
	if err := jsoniter.ConfigFastest.Unmarshal(task.Payload, &event); err == nil && event.ReturnID != "" {
		key = []byte(event.ReturnID)
	}

	err := p.producer.SendMessage(ctx, task.Topic, key, task.Payload)
	if err != nil {
		log.Printf("Failed to send task %s to producer: %v", task.ID, err)
		metrics.OutboxFailedTotal.Inc()

		newAttempts := task.Attempts + 1
		errMsg := err.Error()
		if newAttempts >= p.config.MaxAttempts {
			log.Printf("Task %s reached max attempts (%d), it will not be retried.", task.ID, p.config.MaxAttempts)
		}

		updateErr := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusFailed, newAttempts, &errMsg, nil)
		if updateErr != nil {
			log.Printf("CRITICAL: failed to mark task %s FAILED after send failure: %v (send error: %v)", task.ID, updateErr, err)
			return fmt.Errorf("failed to update task status after send failure: %w", updateErr)
		}
		return err
	}

	now := time.Now().UTC()
	updateErr := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusDone, task.Attempts, nil, &now)
	if updateErr != nil {
		log.Printf("ERROR: failed to mark task %s DONE after successful send: %v", task.ID, updateErr)
		return fmt.Errorf("failed to update task status after successful send: %w", updateErr)
	}

	metrics.OutboxPublishedTotal.Inc()
	return nil
}
