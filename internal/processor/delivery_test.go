package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalmanager/config"
	"rentalmanager/internal/models"
	"rentalmanager/internal/queue"
)

// MockSender is a mock implementation of Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, n models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func testConfig(retries int) *config.Config {
	cfg := &config.Config{}
	cfg.Notifications.WorkerCount = 2
	cfg.Notifications.MaxRetries = retries
	cfg.Notifications.RetryDelay = 0
	return cfg
}

func TestNewDeliveryProcessor(t *testing.T) {
	sender := &MockSender{}
	q := queue.NewNotificationQueue(10, logrus.New())
	cfg := testConfig(3)
	logger := logrus.New()

	processor := NewDeliveryProcessor(sender, q, cfg, logger)

	assert.NotNil(t, processor)
	assert.Equal(t, sender, processor.sender)
	assert.Equal(t, q, processor.queue)
	assert.Equal(t, cfg, processor.config)
	assert.Equal(t, logger, processor.logger)
}

func TestDeliveryProcessor_ProcessBatch(t *testing.T) {
	failing := models.Notification{Kind: models.NotifyError, Title: "Error", Message: "DB down"}
	ok := models.Notification{Kind: models.NotifySuccess, Title: "Success", Message: "Room created successfully"}

	tests := []struct {
		name      string
		batch     []models.Notification
		setupMock func(*MockSender)
		wantErr   bool
	}{
		{
			name:  "successful delivery",
			batch: []models.Notification{ok},
			setupMock: func(m *MockSender) {
				m.On("Send", ok).Return(nil).Once()
			},
		},
		{
			name:  "retry then success",
			batch: []models.Notification{failing},
			setupMock: func(m *MockSender) {
				m.On("Send", failing).Return(errors.New("temporary error")).Once()
				m.On("Send", failing).Return(nil).Once()
			},
		},
		{
			name:  "all retries fail",
			batch: []models.Notification{failing},
			setupMock: func(m *MockSender) {
				m.On("Send", failing).Return(errors.New("persistent error")).Times(3)
			},
			wantErr: true,
		},
		{
			name:  "one failure does not block the rest",
			batch: []models.Notification{failing, ok},
			setupMock: func(m *MockSender) {
				m.On("Send", failing).Return(errors.New("persistent error")).Times(3)
				m.On("Send", ok).Return(nil).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &MockSender{}
			tt.setupMock(sender)
			processor := NewDeliveryProcessor(sender, queue.NewNotificationQueue(10, nil), testConfig(2), logrus.New())

			err := processor.processBatch(tt.batch)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "after 2 attempts")
			} else {
				assert.NoError(t, err)
			}
			sender.AssertExpectations(t)
		})
	}
}

func TestDeliveryProcessor_StartStop(t *testing.T) {
	sender := &MockSender{}
	n := models.Notification{Kind: models.NotifyError, Title: "Error", Message: "DB down"}
	sender.On("Send", n).Return(nil)

	q := queue.NewNotificationQueue(10, logrus.New())
	processor := NewDeliveryProcessor(sender, q, testConfig(0), logrus.New())
	processor.Start()
	processor.Start()

	assert.NoError(t, q.Push([]models.Notification{n}))
	time.Sleep(100 * time.Millisecond)

	processor.Stop()
	assert.True(t, q.IsClosed())
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestDeliveryProcessor_StopCancelsRetries(t *testing.T) {
	sender := &MockSender{}
	sender.On("Send", mock.Anything).Return(errors.New("down"))

	cfg := testConfig(5)
	cfg.Notifications.RetryDelay = 60
	processor := NewDeliveryProcessor(sender, queue.NewNotificationQueue(10, nil), cfg, logrus.New())

	done := make(chan error, 1)
	go func() {
		done <- processor.deliver(models.Notification{Message: "x"})
	}()
	time.Sleep(50 * time.Millisecond)
	processor.cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("delivery did not stop after cancel")
	}
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestDeliveryProcessor_StopDeliversQueued(t *testing.T) {
	sender := &MockSender{}
	sender.On("Send", mock.Anything).Return(nil)

	q := queue.NewNotificationQueue(10, logrus.New())
	for i := 0; i < 5; i++ {
		assert.NoError(t, q.Push([]models.Notification{{Kind: models.NotifyWarning, Message: "queued"}}))
	}
	processor := NewDeliveryProcessor(sender, q, testConfig(0), logrus.New())
	processor.Start()
	processor.Stop()

	sender.AssertNumberOfCalls(t, "Send", 5)
}

func TestDeliveryProcessor_StopDrainTimeout(t *testing.T) {
	previous := drainTimeout
	drainTimeout = 50 * time.Millisecond
	defer func() { drainTimeout = previous }()

	sender := &MockSender{}
	sender.On("Send", mock.Anything).Return(errors.New("down"))

	cfg := testConfig(5)
	cfg.Notifications.RetryDelay = 60
	cfg.Notifications.WorkerCount = 1
	q := queue.NewNotificationQueue(10, logrus.New())
	assert.NoError(t, q.Push([]models.Notification{{Message: "x"}}))
	processor := NewDeliveryProcessor(sender, q, cfg, logrus.New())
	processor.Start()

	stopped := make(chan struct{})
	go func() {
		processor.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop did not cancel the retrying delivery")
	}
	sender.AssertNumberOfCalls(t, "Send", 1)
}
