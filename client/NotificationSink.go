// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fedora-infra/bodhi-service/metrics"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

type NotificationSink interface {
	// Emit hands the event over without waiting for delivery
	Emit(event view.UpdateChangedEvent)
	Close() error
}

func NewKafkaNotificationSink(brokers []string, topic string) NotificationSink {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		WriteTimeout: 10 * time.Second,
		Completion:   reportDelivery,
	}
	log.Infof("[Notifications] publishing update events to kafka topic %s", topic)
	return &kafkaNotificationSinkImpl{writer: writer}
}

type kafkaNotificationSinkImpl struct {
	writer *kafka.Writer
}

func (k kafkaNotificationSinkImpl) Emit(event view.UpdateChangedEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("[Notifications] failed to serialize event %s: %v", event.EventId, err)
		metrics.NotificationsSent.WithLabelValues(string(event.Action), "error").Inc()
		return
	}
	err = k.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.Update.Alias),
		Value: data,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(event.Action)},
		},
	})
	if err != nil {
		log.Errorf("[Notifications] failed to emit event %s: %v", event.EventId, err)
		metrics.NotificationsSent.WithLabelValues(string(event.Action), "error").Inc()
	}
}

// reportDelivery is called by the async writer once a batch is acknowledged or rejected by the brokers
func reportDelivery(messages []kafka.Message, err error) {
	result := "sent"
	if err != nil {
		log.Errorf("[Notifications] failed to deliver %d update events: %v", len(messages), err)
		result = "error"
	}
	for _, message := range messages {
		metrics.NotificationsSent.WithLabelValues(messageAction(message), result).Inc()
	}
}

func messageAction(message kafka.Message) string {
	for _, header := range message.Headers {
		if header.Key == "action" {
			return string(header.Value)
		}
	}
	return "unknown"
}

func (k kafkaNotificationSinkImpl) Close() error {
	return k.writer.Close()
}

// NewLogNotificationSink is used when no message bus is configured
func NewLogNotificationSink() NotificationSink {
	return &logNotificationSinkImpl{}
}

type logNotificationSinkImpl struct {
}

func (l logNotificationSinkImpl) Emit(event view.UpdateChangedEvent) {
	log.Infof("[Notifications] %s %s (%s) by %s", event.Action, event.Update.Alias, event.Update.Title, event.Agent)
	metrics.NotificationsSent.WithLabelValues(string(event.Action), "logged").Inc()
}

func (l logNotificationSinkImpl) Close() error {
	return nil
}
