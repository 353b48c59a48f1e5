package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	keys   []string
	values [][]byte
	err    error
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, string(key))
	f.values = append(f.values, value)
	return nil
}

func TestNotifyPersistsNotification(t *testing.T) {
	db := newTestDB(t)
	n := NewNotifier(repository.NewNotificationRepository(db), &fakeProducer{})

	user := seedUser(t, db, "Asha", domain.RoleStudent)
	n.Notify(user.ID, "Application Status Updated", "Shortlisted", "interview", "/student/applications")

	var stored domain.Notification
	require.NoError(t, db.Where("recipient_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, "interview", stored.Type)
	assert.False(t, stored.Read)
}

func TestSendMailPublishesEvent(t *testing.T) {
	db := newTestDB(t)
	producer := &fakeProducer{}
	n := NewNotifier(repository.NewNotificationRepository(db), producer)

	n.SendMail("asha@example.com", "Offer", "Congratulations")

	require.Len(t, producer.keys, 1)
	assert.Equal(t, MailEventKey, producer.keys[0])

	var event dto.OutboundMailEvent
	require.NoError(t, json.Unmarshal(producer.values[0], &event))
	assert.Equal(t, "asha@example.com", event.Email)
	assert.Equal(t, "Offer", event.Subject)
}

// A broken broker must not surface as an error to callers.
func TestSendMailSwallowsPublishError(t *testing.T) {
	db := newTestDB(t)
	n := NewNotifier(repository.NewNotificationRepository(db), &fakeProducer{err: errors.New("broker down")})

	assert.NotPanics(t, func() {
		n.SendMail("asha@example.com", "Offer", "Congratulations")
	})
}
