// Package mq publishes indexing events over Redis pub/sub so that index
// rebuilds happen off the request path.
package mq

import (
	"context"
	"encoding/json"
	"log"

	"calyx/models"
	"calyx/rdx"
	"calyx/search"
)

const channel = "indexing-events"

// Emit publishes an indexing event. Fire and forget: a failed publish is
// logged and the write that triggered it stands.
func Emit(ctx context.Context, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("mq: failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("mq: failed to publish event: %v", err)
	}
}

// StartIndexingWorker consumes indexing events and rebuilds the affected
// in-memory index. Runs until the process exits.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("indexing worker listening for events")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("mq: failed to parse event: %v", err)
			continue
		}
		if err := search.Rebuild(ctx, event.EntityType); err != nil {
			log.Printf("mq: reindex %s failed: %v", event.EntityType, err)
		}
	}
}
