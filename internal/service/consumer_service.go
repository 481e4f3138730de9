// FILE: internal/service/consumer_service.go
// Drains quota/billing events off the in-process bus and forwards them to
// NATS for analytics. Forwarding is best-effort: the bus keeps working when
// NATS is down.
package service

import (
	"context"
	"encoding/json"

	"ai-nutricoach-be/internal/dto"
	"ai-nutricoach-be/internal/pkg/logger"
	"ai-nutricoach-be/pkg/events"
	pktNats "ai-nutricoach-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	natsPub   *pktNats.Publisher
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	natsPub *pktNats.Publisher,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		natsPub:   natsPub,
		logger:    sysLogger,
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
	var payload dto.QuotaEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal quota event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("consumer", "Quota event", map[string]interface{}{
		"type":        payload.Type,
		"profile_id":  payload.ProfileId.String(),
		"feature_key": payload.FeatureKey,
		"amount":      payload.Amount,
		"tier":        payload.Tier,
	})

	if cs.natsPub != nil {
		evt := events.BaseEvent{
			Type: payload.Type,
			Data: map[string]interface{}{
				"profile_id":  payload.ProfileId,
				"feature_key": payload.FeatureKey,
				"amount":      payload.Amount,
				"tier":        payload.Tier,
				"occurred_at": payload.OccurredAt,
			},
			OccurredAt: payload.OccurredAt,
		}
		if err := cs.natsPub.Publish(ctx, evt); err != nil {
			cs.logger.Warn("consumer", "Failed to forward event to NATS", map[string]interface{}{
				"type":  payload.Type,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
