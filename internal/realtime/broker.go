package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/watzon/hookline/internal/metrics"
)

// Broker manages WebSocket clients and their topic subscriptions. Delivery
// is fire-and-forget: a publish reaches whoever is subscribed at call time
// and nothing is buffered or replayed.
type Broker struct {
	mu      sync.RWMutex
	clients map[string]*Client
	topics  map[string]map[string]*Client
}

// NewBroker creates a new topic broker.
func NewBroker() *Broker {
	return &Broker{
		clients: make(map[string]*Client),
		topics:  make(map[string]map[string]*Client),
	}
}

// Stop disconnects every client. Used during server shutdown.
func (b *Broker) Stop() {
	b.mu.Lock()
	clients := make([]*Client, 0, len(b.clients))
	for _, client := range b.clients {
		clients = append(clients, client)
	}
	b.clients = make(map[string]*Client)
	b.topics = make(map[string]map[string]*Client)
	b.mu.Unlock()

	for _, client := range clients {
		client.CloseWithoutUnsubscribe()
	}

	b.updateStats()
}

// RegisterClient adds a new client to the broker.
func (b *Broker) RegisterClient(client *Client) {
	b.mu.Lock()
	b.clients[client.ID] = client
	total := len(b.clients)
	b.mu.Unlock()

	log.Debug().Str("client_id", client.ID).Int("total_clients", total).Msg("Client connected")
	b.updateStats()
}

// UnregisterClient removes a client and all its subscriptions.
func (b *Broker) UnregisterClient(clientID string) {
	b.mu.Lock()
	client, ok := b.clients[clientID]
	if !ok {
		b.mu.Unlock()
		return
	}

	for _, topic := range client.Topics() {
		b.removeFromTopic(topic, clientID)
	}
	delete(b.clients, clientID)
	total := len(b.clients)
	b.mu.Unlock()

	log.Debug().Str("client_id", clientID).Int("total_clients", total).Msg("Client disconnected")
	b.updateStats()
}

// Subscribe adds the client to a topic. Any topic string is accepted; codes
// are not checked against the store, matching the relay's behavior of
// publishing to unregistered codes.
func (b *Broker) Subscribe(client *Client, topic string) error {
	if topic == "" {
		return ErrTopicRequired
	}

	if err := client.addTopic(topic); err != nil {
		return err
	}

	b.mu.Lock()
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[string]*Client)
		b.topics[topic] = subs
	}
	subs[client.ID] = client
	b.mu.Unlock()

	log.Debug().Str("client_id", client.ID).Str("topic", topic).Msg("Client subscribed")
	b.updateStats()
	return nil
}

// Unsubscribe removes the client from a topic.
func (b *Broker) Unsubscribe(client *Client, topic string) {
	client.removeTopic(topic)

	b.mu.Lock()
	b.removeFromTopic(topic, client.ID)
	b.mu.Unlock()

	b.updateStats()
}

// Publish delivers an event to every subscriber of topic and returns how
// many clients it was handed to. It never blocks on a subscriber: each
// client gets the message queued on its send buffer, and a full buffer
// drops the message for that client.
func (b *Broker) Publish(topic string, event any) int {
	payload, err := json.Marshal(&EventPayload{
		Topic: topic,
		Event: event,
	})
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to encode event payload")
		return 0
	}

	msg := &Message{
		Type:    MessageTypeEvent,
		Payload: payload,
	}

	b.mu.RLock()
	subscribers := make([]*Client, 0, len(b.topics[topic]))
	for _, client := range b.topics[topic] {
		subscribers = append(subscribers, client)
	}
	b.mu.RUnlock()

	for _, client := range subscribers {
		_ = client.Send(msg)
	}

	log.Debug().Str("topic", topic).Int("subscribers", len(subscribers)).Msg("Event published")
	return len(subscribers)
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// SubscriptionCount returns the number of active topic subscriptions.
func (b *Broker) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := 0
	for _, subs := range b.topics {
		total += len(subs)
	}
	return total
}

// BrokerStats is reported by the health endpoint.
type BrokerStats struct {
	Connections   int `json:"connections"`
	Subscriptions int `json:"subscriptions"`
}

func (b *Broker) Stats() BrokerStats {
	return BrokerStats{
		Connections:   b.ClientCount(),
		Subscriptions: b.SubscriptionCount(),
	}
}

// removeFromTopic must be called with b.mu held.
func (b *Broker) removeFromTopic(topic, clientID string) {
	subs, ok := b.topics[topic]
	if !ok {
		return
	}
	delete(subs, clientID)
	if len(subs) == 0 {
		delete(b.topics, topic)
	}
}

func (b *Broker) updateStats() {
	metrics.UpdateRealtimeStats(b.ClientCount(), b.SubscriptionCount())
}
