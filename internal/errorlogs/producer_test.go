package errorlogs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisherSendsJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got ErrorLog
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.EventID != "evt-1" || got.Message != "boom" {
			return errors.New("unexpected payload")
		}
		return nil
	})

	publisher := newKafkaPublisher(producer, "client-error-logs")
	err := publisher.Publish(context.Background(), &ErrorLog{
		EventID:   "evt-1",
		Level:     LevelError,
		Message:   "boom",
		Component: "Dashboard",
	})

	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisherWrapsSendError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := newKafkaPublisher(producer, "client-error-logs")
	err := publisher.Publish(context.Background(), &ErrorLog{EventID: "evt-2", Message: "boom"})

	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestCreateHeaders(t *testing.T) {
	headers := createHeaders(&ErrorLog{EventID: "evt-3", Level: LevelFatal, Source: SourceServer})

	got := map[string]string{}
	for _, h := range headers {
		got[string(h.Key)] = string(h.Value)
	}
	assert.Equal(t, map[string]string{"event_id": "evt-3", "level": "fatal", "source": "server"}, got)
}
