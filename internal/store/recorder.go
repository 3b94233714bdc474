package store

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/typedojo/internal/model"
)

const (
	defaultShards    = 4
	defaultQueueSize = 64
	recordTimeout    = 5 * time.Second
)

// RecorderConfig tunes a Recorder. Zero values pick defaults.
type RecorderConfig struct {
	Shards    int
	QueueSize int
	Logger    *slog.Logger
	// OnDrop is called when an update is dropped because its queue is full.
	OnDrop func(word string)
	// OnError is called when a stored update fails.
	OnError func(word string, err error)
}

type recordJob struct {
	word   model.Word
	update func(*model.WordStats)
}

// Recorder applies per-word stat updates in the background. Updates for the
// same word always land on the same queue, so their read-modify-write cycles
// never interleave. Record never blocks.
type Recorder struct {
	store  WordStatsStore
	cfg    RecorderConfig
	now    func() time.Time
	queues []chan recordJob
	group  errgroup.Group

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

// NewRecorder starts the background workers.
func NewRecorder(st WordStatsStore, cfg RecorderConfig) *Recorder {
	if cfg.Shards <= 0 {
		cfg.Shards = defaultShards
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	r := &Recorder{
		store:  st,
		cfg:    cfg,
		now:    time.Now,
		queues: make([]chan recordJob, cfg.Shards),
		done:   make(chan struct{}),
	}
	for i := range r.queues {
		queue := make(chan recordJob, cfg.QueueSize)
		r.queues[i] = queue
		r.group.Go(func() error {
			for job := range queue {
				r.apply(job)
			}
			return nil
		})
	}
	return r
}

// Record queues update for word. The update runs against the stored
// counters and also stamps the last-seen time.
func (r *Recorder) Record(word model.Word, update func(*model.WordStats)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queues[r.shard(word.Text)] <- recordJob{word: word, update: update}:
	default:
		r.cfg.Logger.Warn("dropping word stats update; queue full", "word", word.Text)
		if r.cfg.OnDrop != nil {
			r.cfg.OnDrop(word.Text)
		}
	}
}

// Close stops accepting updates and waits for queued ones to finish or for
// ctx to end.
func (r *Recorder) Close(ctx context.Context) error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		for _, queue := range r.queues {
			close(queue)
		}
		r.mu.Unlock()
		go func() {
			_ = r.group.Wait()
			close(r.done)
		}()
	})
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) shard(word string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(word))
	return int(h.Sum32() % uint32(len(r.queues)))
}

func (r *Recorder) apply(job recordJob) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := r.applyContext(ctx, job); err != nil {
		r.cfg.Logger.Warn("failed to record word stats", "word", job.word.Text, "err", err)
		if r.cfg.OnError != nil {
			r.cfg.OnError(job.word.Text, err)
		}
	}
}

func (r *Recorder) applyContext(ctx context.Context, job recordJob) error {
	rec, ok, err := r.store.Get(ctx, job.word.Text)
	if err != nil {
		return err
	}
	now := r.now()
	if !ok {
		rec = model.NewSavedWordStats(job.word, now)
	}
	job.update(&rec.Stats)
	rec.Stats.LastSeen = now
	return r.store.Put(ctx, rec)
}
