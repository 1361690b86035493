package scheduler

import (
	"context"
	"fmt"
	"time"

	"skrytki/platform/cache"
	"skrytki/platform/config"

	"github.com/hibiken/asynq"
)

// importTimeout bounds a single import run on the worker.
const importTimeout = 30 * time.Minute

type Client struct {
	client *asynq.Client
	queue  string
}

// ImportEnqueuer hands dataset imports to the worker.
type ImportEnqueuer interface {
	EnqueueImport(ctx context.Context, source string) (string, error)
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueImport schedules an import of source and returns the task id.
// Only one import per source can be pending at a time.
func (c *Client) EnqueueImport(ctx context.Context, source string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("scheduler client not configured")
	}

	task, err := NewDatasetImportTask(DatasetImportPayload{Source: source})
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(importTimeout),
		asynq.Unique(importTimeout),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue dataset import: %w", err)
	}
	return info.ID, nil
}

func queueName(cfg config.SchedulerConfig) string {
	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}
	return queue
}

func redisClientOpt(cfg config.SchedulerConfig) (asynq.RedisClientOpt, error) {
	opt, err := cache.ParseOptions(cfg)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}

var _ ImportEnqueuer = (*Client)(nil)
