package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mumanal/actualizacion-datos/config"
	"github.com/mumanal/actualizacion-datos/internal/infrastructure/queue"
	"github.com/mumanal/actualizacion-datos/pkg/helpers"
	"github.com/mumanal/actualizacion-datos/pkg/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no receipts will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	rabbit, err := queue.Dial(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer rabbit.Close()

	msgs, err := rabbit.Consume(16)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job mailer.EmailJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.WithError(err).Warn("dropping malformed job")
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := mailer.Process(c, mg, job)
			cancel()
			switch {
			case errors.Is(err, mailer.ErrBadJob):
				logger.WithError(err).WithField("template", job.Template).Warn("dropping undeliverable job")
				_ = msg.Nack(false, false)
			case err != nil:
				// one redelivery; a second failure is dropped
				logger.WithError(err).WithField("redelivered", msg.Redelivered).Error("send failed")
				_ = msg.Nack(false, !msg.Redelivered)
			default:
				logger.WithField("template", job.Template).Info("receipt sent")
				_ = msg.Ack(false)
			}
		}
		close(done)
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	logger.Info("shutting down...")
	rabbit.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
