package realtime

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// testClient builds a client that is never attached to a connection; sent
// messages pile up in its buffer where tests can read them.
func testClient(t *testing.T, b *Broker) *Client {
	t.Helper()

	client := NewClient(nil, b)
	b.RegisterClient(client)

	t.Cleanup(func() {
		b.UnregisterClient(client.ID)
	})

	return client
}

func receive(t *testing.T, c *Client) *Message {
	t.Helper()

	select {
	case data := <-c.sendCh:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return &msg
	default:
		t.Fatal("no message queued")
		return nil
	}
}

func TestBrokerPublish(t *testing.T) {
	b := NewBroker()
	client := testClient(t, b)

	require.NoError(t, b.Subscribe(client, "abcd1234"))

	delivered := b.Publish("abcd1234", map[string]string{"method": "POST"})
	require.Equal(t, 1, delivered)

	msg := receive(t, client)
	require.Equal(t, MessageTypeEvent, msg.Type)

	var payload EventPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	require.Equal(t, "abcd1234", payload.Topic)

	event, ok := payload.Event.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "POST", event["method"])
}

func TestBrokerPublishNoSubscribers(t *testing.T) {
	b := NewBroker()

	delivered := b.Publish("nobody-home", "payload")
	require.Equal(t, 0, delivered)
}

func TestBrokerPublishTopicIsolation(t *testing.T) {
	b := NewBroker()
	subscribed := testClient(t, b)
	other := testClient(t, b)

	require.NoError(t, b.Subscribe(subscribed, "topic-a"))
	require.NoError(t, b.Subscribe(other, "topic-b"))

	delivered := b.Publish("topic-a", "hello")
	require.Equal(t, 1, delivered)

	require.Len(t, subscribed.sendCh, 1)
	require.Len(t, other.sendCh, 0)
}

func TestBrokerMultipleSubscribers(t *testing.T) {
	b := NewBroker()
	first := testClient(t, b)
	second := testClient(t, b)

	require.NoError(t, b.Subscribe(first, "shared"))
	require.NoError(t, b.Subscribe(second, "shared"))

	delivered := b.Publish("shared", "fanout")
	require.Equal(t, 2, delivered)
	require.Len(t, first.sendCh, 1)
	require.Len(t, second.sendCh, 1)
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	client := testClient(t, b)

	require.NoError(t, b.Subscribe(client, "abcd1234"))
	b.Unsubscribe(client, "abcd1234")

	delivered := b.Publish("abcd1234", "gone")
	require.Equal(t, 0, delivered)
	require.Len(t, client.sendCh, 0)
	require.Empty(t, client.Topics())
}

func TestBrokerUnregisterCleansTopics(t *testing.T) {
	b := NewBroker()

	client := NewClient(nil, b)
	b.RegisterClient(client)
	require.NoError(t, b.Subscribe(client, "abcd1234"))

	b.UnregisterClient(client.ID)

	require.Equal(t, 0, b.ClientCount())
	require.Equal(t, 0, b.SubscriptionCount())
	require.Equal(t, 0, b.Publish("abcd1234", "gone"))
}

func TestBrokerSubscribeEmptyTopic(t *testing.T) {
	b := NewBroker()
	client := testClient(t, b)

	require.ErrorIs(t, b.Subscribe(client, ""), ErrTopicRequired)
}

func TestClientTopicLimit(t *testing.T) {
	b := NewBroker()
	client := testClient(t, b)

	for i := 0; i < maxTopics; i++ {
		require.NoError(t, b.Subscribe(client, fmt.Sprintf("topic-%d", i)))
	}

	require.ErrorIs(t, b.Subscribe(client, "one-too-many"), ErrSubscriptionLimit)
}

func TestBrokerStats(t *testing.T) {
	b := NewBroker()
	client := testClient(t, b)

	require.NoError(t, b.Subscribe(client, "a"))
	require.NoError(t, b.Subscribe(client, "b"))

	stats := b.Stats()
	require.Equal(t, 1, stats.Connections)
	require.Equal(t, 2, stats.Subscriptions)
}
