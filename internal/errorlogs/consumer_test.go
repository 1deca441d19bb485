package errorlogs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(repo Repository) *groupHandler {
	return &groupHandler{repo: repo, maxRetries: 2, backoff: time.Millisecond}
}

func TestProcessMessageStoresEntry(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *ErrorLog) bool {
		return e.EventID == "evt-1" && e.ID == 0 && e.CreatedAt.Equal(fixedNow)
	})).Return(nil)

	payload, err := (&ErrorLog{ID: 99, EventID: "evt-1", Message: "boom"}).ToJSON()
	require.NoError(t, err)

	err = newTestHandler(repo).processMessage(context.Background(), &sarama.ConsumerMessage{
		Value:     payload,
		Timestamp: fixedNow,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProcessMessageRejectsMalformed(t *testing.T) {
	h := newTestHandler(new(mockRepository))

	err := h.processMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("{not json")})
	assert.ErrorIs(t, err, errMalformed)

	err = h.processMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{"message":"no id"}`)})
	assert.ErrorIs(t, err, errMalformed)
}

func TestExecuteWithRetryRecovers(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("deadlock")).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	err := newTestHandler(repo).executeWithRetry(context.Background(), &ErrorLog{EventID: "evt-2"})

	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestExecuteWithRetryGivesUp(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	err := newTestHandler(repo).executeWithRetry(context.Background(), &ErrorLog{EventID: "evt-3"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	repo.AssertNumberOfCalls(t, "Create", 3)
}

func TestExecuteWithRetryStopsOnCancel(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("timeout"))

	h := &groupHandler{repo: repo, maxRetries: 5, backoff: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.executeWithRetry(ctx, &ErrorLog{EventID: "evt-4"})
	assert.ErrorIs(t, err, context.Canceled)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

type fakeSession struct {
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32                        { return nil }
func (s *fakeSession) MemberID() string                                  { return "member" }
func (s *fakeSession) GenerationID() int32                               { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)           {}
func (s *fakeSession) Commit()                                           {}
func (s *fakeSession) ResetOffset(string, int32, int64, string)          {}
func (s *fakeSession) Context() context.Context                          { return s.ctx }
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) { s.marked = append(s.marked, msg.Offset) }

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return "client-error-logs" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func claimOf(t *testing.T, entries ...*ErrorLog) *fakeClaim {
	t.Helper()
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, len(entries))}
	for i, entry := range entries {
		payload, err := entry.ToJSON()
		require.NoError(t, err)
		claim.messages <- &sarama.ConsumerMessage{Offset: int64(i), Value: payload, Timestamp: fixedNow}
	}
	close(claim.messages)
	return claim
}

func TestConsumeClaimMarksStoredAndMalformed(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	session := &fakeSession{ctx: context.Background()}

	claim := claimOf(t, &ErrorLog{EventID: "evt-a"}, &ErrorLog{Message: "missing id"}, &ErrorLog{EventID: "evt-c"})

	require.NoError(t, newTestHandler(repo).ConsumeClaim(session, claim))
	assert.Equal(t, []int64{0, 1, 2}, session.marked)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestConsumeClaimStopsOnStoreFailure(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *ErrorLog) bool { return e.EventID == "evt-b" })).
		Return(errors.New("connection refused"))
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	session := &fakeSession{ctx: context.Background()}

	claim := claimOf(t, &ErrorLog{EventID: "evt-a"}, &ErrorLog{EventID: "evt-b"}, &ErrorLog{EventID: "evt-c"})

	err := newTestHandler(repo).ConsumeClaim(session, claim)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset 1")
	assert.Equal(t, []int64{0}, session.marked)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.MatchedBy(func(e *ErrorLog) bool { return e.EventID == "evt-c" }))
}
