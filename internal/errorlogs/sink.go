package errorlogs

import (
	"context"
	"sync"
	"time"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/utils/response"
)

// ServerSink is a response.ErrorLogger that forwards every error to next and
// also records internal failures as server-side error logs. Entries are
// queued and written by Run; a full queue drops them.
type ServerSink struct {
	next    response.ErrorLogger
	service Service
	queue   chan *ErrorLog
	once    sync.Once
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewServerSink(next response.ErrorLogger, service Service, buffer int) *ServerSink {
	if buffer < 1 {
		buffer = 1
	}
	return &ServerSink{
		next:    next,
		service: service,
		queue:   make(chan *ErrorLog, buffer),
		done:    make(chan struct{}),
	}
}

func (s *ServerSink) LogError(ctx context.Context, label string, err error) {
	s.next.LogError(ctx, label, err)

	if err == nil || apperrors.KindOf(err) != apperrors.KindInternal {
		return
	}

	entry := &ErrorLog{
		Source:    SourceServer,
		Level:     LevelError,
		Message:   truncate(err.Error(), maxMessageLen),
		Component: truncate(label, 200),
		CreatedAt: time.Now(),
	}

	select {
	case s.queue <- entry:
	default:
	}
}

// Start runs the writer in the background. Close waits for it to finish.
func (s *ServerSink) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run(ctx)
	}()
}

// Run writes queued entries until ctx is cancelled or Close is called. After
// Close the remaining entries are written even if ctx is cancelled meanwhile.
func (s *ServerSink) Run(ctx context.Context) {
	for {
		select {
		case entry := <-s.queue:
			s.write(ctx, entry)
		case <-ctx.Done():
			return
		case <-s.done:
			s.drain(context.WithoutCancel(ctx))
			return
		}
	}
}

func (s *ServerSink) drain(ctx context.Context) {
	for {
		select {
		case entry := <-s.queue:
			s.write(ctx, entry)
		default:
			return
		}
	}
}

func (s *ServerSink) write(ctx context.Context, entry *ErrorLog) {
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := s.service.Record(writeCtx, entry); err != nil {
		s.next.LogError(writeCtx, "record server error", err)
	}
}

// Close stops the writer and blocks until a writer launched by Start has
// drained the queue.
func (s *ServerSink) Close() {
	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
}
