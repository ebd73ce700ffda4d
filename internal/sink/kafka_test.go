package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newscrawl/internal/article"
)

func TestKafka_SendKeyedByURLHash(t *testing.T) {
	var mock *mocks.SyncProducer
	s := NewKafka([]string{"broker-1:9092"}, "")
	s.newProducer = func(_ []string, config *sarama.Config) (sarama.SyncProducer, error) {
		mock = mocks.NewSyncProducer(t, config)
		return mock, nil
	}

	ctx := context.Background()
	require.NoError(t, s.Open(ctx))
	require.NotNil(t, mock)

	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != DefaultKafkaTopic {
			return fmt.Errorf("unexpected topic %q", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "abc123" {
			return fmt.Errorf("unexpected key %q", key)
		}

		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var decoded map[string]any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if decoded["url"] != "https://apnews.com/article/one" {
			return fmt.Errorf("unexpected url %v", decoded["url"])
		}
		return nil
	})

	err := s.Send(ctx, &article.Record{
		URL:     "https://apnews.com/article/one",
		Source:  "ap",
		URLHash: "abc123",
		ParseOK: true,
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestKafka_SendBeforeOpen(t *testing.T) {
	t.Parallel()

	s := NewKafka([]string{"broker-1:9092"}, "raw_news")
	err := s.Send(context.Background(), &article.Record{URLHash: "h"})
	assert.Error(t, err)
}
