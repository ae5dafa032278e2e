package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-assistant-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishEmbedDocument(ctx context.Context, msg *dto.PublishEmbedDocumentMessage) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (ps *publisherService) PublishEmbedDocument(ctx context.Context, msg *dto.PublishEmbedDocumentMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal embed message: %w", err)
	}

	m := message.NewMessage(watermill.NewUUID(), payload)
	m.SetContext(ctx)

	if err := ps.pubSub.Publish(ps.topicName, m); err != nil {
		return fmt.Errorf("publish embed message: %w", err)
	}
	return nil
}
