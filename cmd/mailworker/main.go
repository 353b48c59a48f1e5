package main

import (
	"encoding/json"
	"log"

	"github.com/campushire/placement_service/config"
	"github.com/campushire/placement_service/infra/queue"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/mailer"
	"github.com/campushire/placement_service/internal/services"
)

type mailEventHandler struct {
	mailer *mailer.Mailer
}

func (h *mailEventHandler) HandleMessage(key, value string) error {
	if key != services.MailEventKey {
		log.Printf("skipping event with key=%s", key)
		return nil
	}

	var event dto.OutboundMailEvent
	if err := json.Unmarshal([]byte(value), &event); err != nil {
		log.Printf("invalid event payload: %s", value)
		return err
	}

	log.Printf("mail event received: email=%s subject=%q", event.Email, event.Subject)
	return h.mailer.Send(event.Email, event.Subject, event.Body)
}

func main() {
	// ---------- Load Config ----------
	cfg := config.LoadConfig()

	log.Println("Mail Worker starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	// ---------- Init Mailer ----------
	smtpMailer := mailer.New(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
	)

	// ---------- Init Kafka Consumer ----------
	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		&mailEventHandler{mailer: smtpMailer},
	)

	// ---------- Start Listening ----------
	log.Println("Mail Worker listening for events...")
	consumer.Listen()
}
