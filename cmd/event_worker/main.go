package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-supply-chain/config"
	"github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/broker"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/helpers"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env, cfg.LogLevel)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	var sender mailer.Sender
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			logger.Fatal("Mailgun not configured")
		}
		sender = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		logger.Info("MAIL_SEND_ENABLED=false; notifications are rendered and logged only")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, 16)
	if err != nil {
		logger.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			handle(cfg, logger, sender, msg)
		}
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQEventsQueue).Info("event worker listening")
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func handle(cfg *config.Config, logger *logrus.Logger, sender mailer.Sender, msg amqp.Delivery) {
	var m broker.CustodyMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		logger.WithError(err).Warn("bad message")
		_ = msg.Nack(false, false)
		return
	}
	fields := logrus.Fields{
		"event":      m.Event.EventType,
		"product_id": m.Event.ProductID,
		"from":       m.Event.FromUser,
		"to":         m.Event.ToUser,
	}
	logger.WithFields(fields).Info("custody event")

	job, ok := broker.NotificationFor(cfg, m)
	if !ok {
		_ = msg.Ack(false)
		return
	}
	subject, text, html, err := job.Render()
	if err != nil {
		helpers.LogError(logger, "render notification failed", err, fields)
		_ = msg.Nack(false, false)
		return
	}
	if sender == nil {
		logger.WithFields(fields).WithField("subject", subject).Debug("notification skipped")
		_ = msg.Ack(false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := sender.Send(ctx, job.To, subject, text, html); err != nil {
		helpers.LogError(logger, "send failed", err, fields)
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}
