package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-assistant-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	indexer   IIndexerService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	indexer IIndexerService,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		indexer:   indexer,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Embedding %d chunks for source: %s", len(payload.Chunks), payload.Source)

	indexed, err := cs.indexer.IndexChunks(ctx, payload.Source, payload.Chunks)
	if err != nil {
		log.Printf("[ERROR] Failed to index %s: %v", payload.Source, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[SUCCESS] Indexed %d chunks for source: %s", indexed, payload.Source)
	msg.Ack()
}
