// internal/workers/lead/notify-vendor/handler_test.go
package notifyvendor

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-dispatch-workers/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

type mockSES struct {
	err    error
	inputs []*ses.SendEmailInput
}

func (m *mockSES) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.inputs = append(m.inputs, input)
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	err    error
	inputs []*sns.PublishInput
}

func (m *mockSNS) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.inputs = append(m.inputs, input)
	return &sns.PublishOutput{}, nil
}

func testConfig() *Config {
	return &Config{
		EmailEnabled:         true,
		SMSEnabled:           true,
		SMSPriorityThreshold: "high",
		FromEmail:            "dispatch@example.com",
		Timeout:              30 * time.Second,
	}
}

func testInput() *Input {
	return &Input{
		DispatchID:      "dispatch-001",
		TenantID:        "tenant-1",
		VendorID:        "V1",
		VendorEmail:     "dispatch@rapidtow.example",
		VendorPhone:     "+13055550101",
		PrimaryCategory: "Boat Towing",
		Priority:        "high",
		LeadCity:        "Key Biscayne",
		LeadState:       "FL",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_BothChannels(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	h := NewHandlerWithClients(testConfig(), sesMock, snsMock, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, []string{ChannelEmail, ChannelSMS}, output.Channels)
	assert.NotEmpty(t, output.NotificationID)
	require.Len(t, sesMock.inputs, 1)
	require.Len(t, snsMock.inputs, 1)

	assert.Contains(t, *sesMock.inputs[0].Message.Subject.Data, "URGENT")
	assert.Contains(t, *sesMock.inputs[0].Message.Subject.Data, "Boat Towing")
	assert.Contains(t, *sesMock.inputs[0].Message.Body.Text.Data, "Key Biscayne, FL")
	assert.Contains(t, *snsMock.inputs[0].Message, "dispatch-001")
}

func TestHandler_Execute_NormalPriorityIsNotUrgent(t *testing.T) {
	sesMock := &mockSES{}
	h := NewHandlerWithClients(testConfig(), sesMock, &mockSNS{}, logger.NewTestLogger(t))

	input := testInput()
	input.Priority = "normal"

	_, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.NotContains(t, *sesMock.inputs[0].Message.Subject.Data, "URGENT")
}

func TestHandler_Execute_NormalPriorityGetsNoSMS(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	h := NewHandlerWithClients(testConfig(), sesMock, snsMock, logger.NewTestLogger(t))

	input := testInput()
	input.Priority = "normal"

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, []string{ChannelEmail}, output.Channels)
	require.Len(t, sesMock.inputs, 1)
	assert.Empty(t, snsMock.inputs)
}

func TestHandler_Execute_EmptyThresholdSendsSMSOnAnyPriority(t *testing.T) {
	cfg := testConfig()
	cfg.SMSPriorityThreshold = ""
	snsMock := &mockSNS{}
	h := NewHandlerWithClients(cfg, &mockSES{}, snsMock, logger.NewTestLogger(t))

	input := testInput()
	input.Priority = "normal"

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, []string{ChannelEmail, ChannelSMS}, output.Channels)
	require.Len(t, snsMock.inputs, 1)
}

func TestHandler_Execute_EmailOnlyWhenNoPhone(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	h := NewHandlerWithClients(testConfig(), sesMock, snsMock, logger.NewTestLogger(t))

	input := testInput()
	input.VendorPhone = ""

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, []string{ChannelEmail}, output.Channels)
	assert.Empty(t, snsMock.inputs)
}

func TestHandler_Execute_OneChannelFailingIsPartial(t *testing.T) {
	sesMock := &mockSES{err: assert.AnError}
	snsMock := &mockSNS{}
	h := NewHandlerWithClients(testConfig(), sesMock, snsMock, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, StatusPartial, output.Status)
	assert.Equal(t, []string{ChannelSMS}, output.Channels)
}

func TestHandler_Execute_AllChannelsFailingIsAnError(t *testing.T) {
	h := NewHandlerWithClients(testConfig(),
		&mockSES{err: assert.AnError},
		&mockSNS{err: assert.AnError},
		logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), testInput())
	require.Error(t, err)
}

func TestHandler_Execute_DisabledChannels(t *testing.T) {
	cfg := testConfig()
	cfg.EmailEnabled = false
	cfg.SMSEnabled = false

	h := NewHandlerWithClients(cfg, &mockSES{}, &mockSNS{}, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.Empty(t, output.Channels)
}
