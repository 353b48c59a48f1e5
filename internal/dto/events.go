package dto

// OutboundMailEvent is published to Kafka by the API service and consumed
// by the mail worker. Key: "application.status_changed".
type OutboundMailEvent struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
