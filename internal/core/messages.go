package core

import (
	"log"

	"github.com/pankaj1920/shop/internal/model"
)

// MessageQueue is the queue of notifications waiting to be shown.
type MessageQueue = Queue[model.UIComponent]

// AppendToMessageQueue queues c for display. Silent components are
// logged and dropped. tag prefixes the log line.
func AppendToMessageQueue(tag string, q MessageQueue, c model.UIComponent) MessageQueue {
	if c.IsSilent() {
		log.Printf("%s: appendToMessageQueue: %s", tag, c.Message)
		return q
	}
	return q.Add(c)
}

// RemoveHeadMessage drops the notification at the head of q. An empty
// queue is logged and returned unchanged.
func RemoveHeadMessage(tag string, q MessageQueue) MessageQueue {
	_, rest, err := q.Remove()
	if err != nil {
		log.Printf("%s: removeHeadMessage: nothing to remove from message queue", tag)
		return q
	}
	return rest
}
