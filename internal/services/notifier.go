package services

import (
	"encoding/json"
	"log"

	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/interfaces"
	"github.com/campushire/placement_service/internal/repository"
)

// MailEventKey is the Kafka key the mail worker listens for.
const MailEventKey = "application.status_changed"

// Notifier is the dispatcher contract: both calls are fire-and-forget.
// Failures are logged and never surfaced to the mutation that triggered
// them.
type Notifier interface {
	Notify(recipientID uint, title, message, ntype, link string)
	SendMail(email, subject, body string)
}

type notifier struct {
	repo     repository.NotificationRepository
	producer interfaces.ProducerHandler
}

func NewNotifier(repo repository.NotificationRepository, producer interfaces.ProducerHandler) Notifier {
	return &notifier{repo: repo, producer: producer}
}

func (n *notifier) Notify(recipientID uint, title, message, ntype, link string) {
	err := n.repo.Create(&domain.Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Type:        ntype,
		Link:        link,
	})
	if err != nil {
		log.Printf("in-app notification could not be created: %v", err)
	}
}

func (n *notifier) SendMail(email, subject, body string) {
	if n.producer == nil {
		return
	}
	payload, err := json.Marshal(dto.OutboundMailEvent{
		Email:   email,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		log.Printf("mail event marshal error: %v", err)
		return
	}
	if err := n.producer.PublishMessage([]byte(MailEventKey), payload); err != nil {
		log.Printf("mail event publish error: %v", err)
	}
}
