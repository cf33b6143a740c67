package websocket

import (
	"encoding/json"

	"github.com/isdelr/eventboard-be/internal/models"
	"github.com/rs/zerolog/log"
)

// TopicAll is the subscription that receives every change.
const TopicAll = "all"

type envelope struct {
	topic string
	data  []byte
}

// Hub maintains the set of active clients and broadcasts event changes to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Outbound change notifications.
	broadcast chan envelope

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of topics (a category or "all") to the clients subscribed to it.
	subscriptions map[string]map[*Client]bool

	done chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:     make(chan envelope, 64),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		done:          make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				close(client.Send)
			}
			return
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client, client.Topic)
			log.Info().Int("total_clients", len(h.clients)).Str("topic", client.Topic).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case env := <-h.broadcast:
			for client := range h.recipients(env.topic) {
				select {
				case client.Send <- env.data:
				default:
					h.drop(client)
				}
			}
		}
	}
}

// Stop ends the processing loop and closes every client's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// Join registers a client unless the hub has stopped.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters a client. It does not block once the hub has stopped.
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// Publish broadcasts a change. Changes carrying an event reach the "all"
// subscribers and the subscribers of the event's category; anything else
// reaches every client.
func (h *Hub) Publish(action string, payload any) {
	data, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to encode websocket message")
		return
	}
	topic := ""
	if e, ok := payload.(models.Event); ok {
		topic = string(e.Category)
	}
	select {
	case h.broadcast <- envelope{topic: topic, data: data}:
	default:
		log.Warn().Str("action", action).Msg("Websocket broadcast queue full, dropping message")
	}
}

func (h *Hub) recipients(topic string) map[*Client]bool {
	if topic == "" {
		return h.clients
	}
	out := make(map[*Client]bool, len(h.subscriptions[TopicAll])+len(h.subscriptions[topic]))
	for c := range h.subscriptions[TopicAll] {
		out[c] = true
	}
	for c := range h.subscriptions[topic] {
		out[c] = true
	}
	return out
}

func (h *Hub) drop(client *Client) {
	close(client.Send)
	delete(h.clients, client)
	h.removeSubscription(client)
}

func (h *Hub) addSubscription(client *Client, topic string) {
	if topic == "" {
		topic = TopicAll
	}
	if h.subscriptions[topic] == nil {
		h.subscriptions[topic] = make(map[*Client]bool)
	}
	h.subscriptions[topic][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for topic, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, topic)
			}
		}
	}
}
