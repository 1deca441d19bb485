package errorlogs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"kinderadmin/pkg/logger"

	"github.com/IBM/sarama"
)

// errMalformed marks stream messages that can never be stored.
var errMalformed = errors.New("malformed error log message")

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	RetryBackoffMs       int
	MaxProcessingTime    time.Duration
	AutoCommit           bool
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig(brokers []string, groupID, topic string) *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              brokers,
		GroupID:              groupID,
		Topics:               []string{topic},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		RetryBackoffMs:       100,
		MaxProcessingTime:    time.Minute,
		AutoCommit:           true,
		OffsetOldest:         true,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

// Consumer drains the error log topic into the repository.
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	repo          Repository
	wg            sync.WaitGroup
	cancel        context.CancelFunc
}

func NewConsumer(config *ConsumerConfig, repo Repository) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{consumerGroup: group, config: config, repo: repo}, nil
}

// Start launches numWorkers consumers. They run until Stop is called or ctx
// is cancelled.
func (c *Consumer) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, c.cancel = context.WithCancel(ctx)

	logger.GetDefault().InfoContext(ctx, "starting error log consumers",
		"workers", numWorkers,
		"topics", c.config.Topics,
	)

	go c.handleErrors(ctx)

	for i := 0; i < numWorkers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(ctx, workerID)
		}(i)
	}
}

func (c *Consumer) runWorker(ctx context.Context, workerID int) {
	handler := &groupHandler{
		workerID:   workerID,
		repo:       c.repo,
		maxRetries: c.config.MaxRetries,
		backoff:    c.config.RetryBackoffDuration,
	}

	for {
		if ctx.Err() != nil {
			return
		}
		if err := c.consumerGroup.Consume(ctx, c.config.Topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			logger.GetDefault().WarnContext(ctx, "error log consumer failed",
				"worker", workerID,
				"error", err.Error(),
			)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (c *Consumer) handleErrors(ctx context.Context) {
	for err := range c.consumerGroup.Errors() {
		logger.GetDefault().WarnContext(ctx, "consumer group error", "error", err.Error())
	}
}

// Stop cancels the workers, waits for them and closes the group.
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type groupHandler struct {
	workerID   int
	repo       Repository
	maxRetries int
	backoff    time.Duration
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			err := h.processMessage(session.Context(), message)
			switch {
			case err == nil:
				session.MarkMessage(message, "")
			case errors.Is(err, errMalformed):
				logger.GetDefault().WarnContext(session.Context(), "skipping malformed error log",
					"worker", h.workerID,
					"partition", message.Partition,
					"offset", message.Offset,
				)
				session.MarkMessage(message, "")
			default:
				// Marking a later offset would commit past this entry, so the
				// claim stops here and the message is redelivered after the
				// session restarts.
				logger.GetDefault().LogError(session.Context(), "store error log", err)
				return fmt.Errorf("partition %d offset %d: %w", message.Partition, message.Offset, err)
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *groupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	entry, err := FromJSON(message.Value)
	if err != nil || entry.EventID == "" {
		return errMalformed
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = message.Timestamp
	}
	entry.ID = 0

	return h.executeWithRetry(ctx, entry)
}

func (h *groupHandler) executeWithRetry(ctx context.Context, entry *ErrorLog) error {
	for attempt := 0; ; attempt++ {
		err := h.repo.Create(ctx, entry)
		if err == nil {
			return nil
		}
		if attempt >= h.maxRetries {
			return fmt.Errorf("failed to store error log %s after %d attempts: %w", entry.EventID, attempt+1, err)
		}

		delay := h.backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
