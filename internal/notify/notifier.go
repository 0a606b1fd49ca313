package notify

import (
	"sync"
	"time"

	"mastoride/pkg/logger"
)

type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast is one ephemeral feedback message shown to a rider.
type Toast struct {
	Level     ToastLevel `json:"level"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
}

// maxRecent caps how many toasts are kept per user for the pull API;
// older ones fall off the front.
const maxRecent = 20

// Notifier queues toasts per user and pushes them to any connected
// websocket clients. It never blocks the caller: a toast to a user
// with no listeners is only retained in the recent buffer.
type Notifier struct {
	hub    *Hub
	logger *logger.Logger

	mu     sync.Mutex
	recent map[string][]Toast
}

func NewNotifier(hub *Hub, log *logger.Logger) *Notifier {
	return &Notifier{
		hub:    hub,
		logger: log,
		recent: make(map[string][]Toast),
	}
}

func (n *Notifier) Push(userID string, level ToastLevel, message string) {
	toast := Toast{
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	queue := append(n.recent[userID], toast)
	if len(queue) > maxRecent {
		queue = queue[len(queue)-maxRecent:]
	}
	n.recent[userID] = queue
	n.mu.Unlock()

	if n.hub != nil {
		n.hub.SendToUser(userID, Message{
			Type:      "toast",
			UserID:    userID,
			Timestamp: toast.CreatedAt.Unix(),
			Data: map[string]interface{}{
				"level":   string(level),
				"message": message,
			},
		})
	}

	if n.logger != nil {
		n.logger.WithUserID(userID).WithField("level", string(level)).Debug(message)
	}
}

func (n *Notifier) Success(userID, message string) { n.Push(userID, ToastSuccess, message) }
func (n *Notifier) Error(userID, message string)   { n.Push(userID, ToastError, message) }
func (n *Notifier) Info(userID, message string)    { n.Push(userID, ToastInfo, message) }

// Recent returns the retained toasts for a user, oldest first, and
// clears the buffer.
func (n *Notifier) Recent(userID string) []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	queue := n.recent[userID]
	delete(n.recent, userID)
	return queue
}
