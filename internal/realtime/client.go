package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	writeTimeout   = 10 * time.Second
	pingInterval   = 30 * time.Second
	pongTimeout    = 60 * time.Second
	maxMessageSize = 64 * 1024
	maxTopics      = 100
	sendBufferSize = 256
)

// Client represents a connected WebSocket client.
type Client struct {
	ID     string
	conn   *websocket.Conn
	broker *Broker
	topics map[string]struct{}
	mu     sync.RWMutex
	sendCh chan []byte
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a new WebSocket client.
func NewClient(conn *websocket.Conn, broker *Broker) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:     uuid.New().String(),
		conn:   conn,
		broker: broker,
		topics: make(map[string]struct{}),
		sendCh: make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Run starts the client's read and write loops. It blocks until the
// connection closes.
func (c *Client) Run() {
	go c.writePump()
	go c.pingPump()
	c.readPump()
}

// Close terminates the client connection.
func (c *Client) Close() {
	c.mu.Lock()
	select {
	case <-c.done:
		c.mu.Unlock()
		return
	default:
		close(c.done)
	}
	c.mu.Unlock()

	c.cancel()
	c.conn.Close(websocket.StatusNormalClosure, "closing")
}

// CloseWithoutUnsubscribe terminates the connection without broker cleanup.
// Used during broker shutdown to avoid deadlock.
func (c *Client) CloseWithoutUnsubscribe() {
	c.mu.Lock()
	select {
	case <-c.done:
		c.mu.Unlock()
		return
	default:
		close(c.done)
	}
	c.topics = make(map[string]struct{})
	c.mu.Unlock()

	c.cancel()
	c.conn.Close(websocket.StatusGoingAway, "server shutting down")
}

// Send queues a message to be sent to the client. A full send buffer drops
// the message rather than blocking the publisher.
func (c *Client) Send(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.sendCh <- data:
		return nil
	case <-c.done:
		return context.Canceled
	default:
		log.Warn().Str("client_id", c.ID).Msg("Client send buffer full, dropping message")
		return nil
	}
}

// SendError sends an error message to the client.
func (c *Client) SendError(msgID string, code ErrorCode, message string) error {
	payload, _ := json.Marshal(&ErrorPayload{
		Code:    string(code),
		Message: message,
	})

	return c.Send(&Message{
		ID:      msgID,
		Type:    MessageTypeError,
		Payload: payload,
	})
}

// Topics returns the topics this client is subscribed to.
func (c *Client) Topics() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	topics := make([]string, 0, len(c.topics))
	for topic := range c.topics {
		topics = append(topics, topic)
	}
	return topics
}

func (c *Client) addTopic(topic string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.topics) >= maxTopics {
		return ErrSubscriptionLimit
	}

	c.topics[topic] = struct{}{}
	return nil
}

func (c *Client) removeTopic(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.topics, topic)
}

func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.Read(c.ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				log.Debug().Err(err).Str("client_id", c.ID).Msg("WebSocket read error")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = c.SendError("", ErrorCodeInvalidMessage, "Invalid JSON message")
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) writePump() {
	for {
		select {
		case data := <-c.sendCh:
			ctx, cancel := context.WithTimeout(c.ctx, writeTimeout)
			err := c.conn.Write(ctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				log.Debug().Err(err).Str("client_id", c.ID).Msg("WebSocket write error")
				return
			}
		case <-c.done:
			return
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) pingPump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(c.ctx, pongTimeout)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				log.Debug().Err(err).Str("client_id", c.ID).Msg("Ping failed")
				c.Close()
				return
			}
		case <-c.done:
			return
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeSubscribe:
		c.handleSubscribe(msg)
	case MessageTypeUnsubscribe:
		c.handleUnsubscribe(msg)
	case MessageTypePing:
		c.handlePing(msg)
	default:
		_ = c.SendError(msg.ID, ErrorCodeInvalidMessage, "Unknown message type")
	}
}

func (c *Client) handleSubscribe(msg *Message) {
	var payload SubscribePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		_ = c.SendError(msg.ID, ErrorCodeInvalidPayload, "Invalid subscribe payload")
		return
	}

	if payload.Topic == "" {
		_ = c.SendError(msg.ID, ErrorCodeInvalidPayload, "Topic is required")
		return
	}

	if err := c.broker.Subscribe(c, payload.Topic); err != nil {
		if errors.Is(err, ErrSubscriptionLimit) {
			_ = c.SendError(msg.ID, ErrorCodeSubscriptionLimit, "Too many topic subscriptions")
			return
		}
		_ = c.SendError(msg.ID, ErrorCodeInvalidPayload, err.Error())
		return
	}

	ack, _ := json.Marshal(&SubscribedPayload{Topic: payload.Topic})
	_ = c.Send(&Message{
		ID:      msg.ID,
		Type:    MessageTypeSubscribed,
		Payload: ack,
	})
}

func (c *Client) handleUnsubscribe(msg *Message) {
	var payload UnsubscribePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		_ = c.SendError(msg.ID, ErrorCodeInvalidPayload, "Invalid unsubscribe payload")
		return
	}

	if payload.Topic == "" {
		_ = c.SendError(msg.ID, ErrorCodeInvalidPayload, "Topic is required")
		return
	}

	c.broker.Unsubscribe(c, payload.Topic)
}

func (c *Client) handlePing(msg *Message) {
	_ = c.Send(&Message{
		ID:   msg.ID,
		Type: MessageTypePong,
	})
}
