// FILE: internal/service/publisher_service.go
package service

import (
	"context"
	"encoding/json"

	"ai-nutricoach-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishQuotaEvent(ctx context.Context, msg *dto.QuotaEventMessage) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) PublishQuotaEvent(ctx context.Context, msg *dto.QuotaEventMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload))
}
