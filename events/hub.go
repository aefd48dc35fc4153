package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/econursery/nursery-app/models"
)

// Event types pushed to connected admin dashboards.
const (
	EventOrderPlaced  = "order_placed"
	EventOrderStatus  = "order_status"
	EventOrderCancel  = "order_cancelled"
	EventLowStock     = "low_stock"
	EventNotification = "notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks every connected back-office client.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var storeHub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	storeHub.mutex.Lock()
	defer storeHub.mutex.Unlock()
	storeHub.clients[conn] = role
}

// UnregisterClient drops a connection.
func UnregisterClient(conn *websocket.Conn) {
	storeHub.mutex.Lock()
	defer storeHub.mutex.Unlock()
	delete(storeHub.clients, conn)
	conn.Close()
}

// BroadcastOrderPlaced announces a freshly committed order.
func BroadcastOrderPlaced(order models.Order) {
	broadcast(Message{
		Event: EventOrderPlaced,
		Data:  order,
	})
}

// BroadcastOrderStatus announces a status transition.
func BroadcastOrderStatus(order models.Order) {
	broadcast(Message{
		Event: EventOrderStatus,
		Data:  order,
	})
}

// BroadcastOrderCancelled announces an owner cancellation.
func BroadcastOrderCancelled(order models.Order) {
	broadcast(Message{
		Event: EventOrderCancel,
		Data:  order,
	})
}

// BroadcastLowStock warns that a catalog item is about to run out.
func BroadcastLowStock(kind models.ItemKind, item models.CatalogInfo) {
	broadcast(Message{
		Event: EventLowStock,
		Data: map[string]interface{}{
			"item_kind": kind,
			"item":      item,
		},
	})
}

// BroadcastNotification mirrors a persisted notification to live clients.
func BroadcastNotification(n models.Notification) {
	broadcast(Message{
		Event: EventNotification,
		Data:  n,
	})
}

func broadcast(msg Message) {
	storeHub.mutex.Lock()
	defer storeHub.mutex.Unlock()

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("events: marshal failed: %v", err)
		return
	}

	for conn := range storeHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(storeHub.clients, conn)
		}
	}
}
