package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"nutritrack/store"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	mu         sync.Mutex
	endpoints  int
	published  []*awssns.PublishInput
	publishErr error
}

func (f *fakeSNS) CreatePlatformEndpoint(_ context.Context, in *awssns.CreatePlatformEndpointInput, _ ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endpoints++
	arn := fmt.Sprintf("arn:aws:sns:endpoint/%s", aws.ToString(in.Token))
	return &awssns.CreatePlatformEndpointOutput{EndpointArn: aws.String(arn)}, nil
}

func (f *fakeSNS) Publish(_ context.Context, in *awssns.PublishInput, _ ...func(*awssns.Options)) (*awssns.PublishOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, in)
	return &awssns.PublishOutput{}, f.publishErr
}

func TestRegisterDevice(t *testing.T) {
	repo := store.NewMemoryStore()
	sns := &fakeSNS{}
	push := NewPushService(repo, sns, "arn:aws:sns:platform/app")
	ctx := context.Background()

	d, err := push.RegisterDevice(ctx, 1, "Android", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "android", d.Platform)
	assert.Equal(t, "arn:aws:sns:endpoint/tok-1", d.EndpointARN)
	assert.Equal(t, tokenHash("tok-1"), d.TokenHash)
	assert.True(t, d.Enabled)

	again, err := push.RegisterDevice(ctx, 1, "android", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, d.ID, again.ID, "same token updates the existing device")

	devices, err := repo.ListEnabledDevices(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, devices, 1)
}

func TestRegisterDevice_Rejects(t *testing.T) {
	repo := store.NewMemoryStore()
	ctx := context.Background()

	_, err := NewPushService(repo, &fakeSNS{}, "arn").RegisterDevice(ctx, 1, "windows", "tok")
	assert.ErrorIs(t, err, ErrInvalidPlatform)

	_, err = NewPushService(repo, nil, "").RegisterDevice(ctx, 1, "ios", "tok")
	assert.ErrorIs(t, err, ErrFeatureDisabled)
}

func TestPushToUser(t *testing.T) {
	repo := store.NewMemoryStore()
	sns := &fakeSNS{}
	push := NewPushService(repo, sns, "arn")
	ctx := context.Background()
	_, err := push.RegisterDevice(ctx, 1, "android", "a")
	require.NoError(t, err)
	_, err = push.RegisterDevice(ctx, 1, "ios", "b")
	require.NoError(t, err)

	push.PushToUser(ctx, 1, "New Alert", "over your goal", map[string]string{"type": "warning"})
	push.PushToUser(ctx, 2, "New Alert", "nobody home", nil)

	require.Len(t, sns.published, 2)
	in := sns.published[0]
	assert.Equal(t, "json", aws.ToString(in.MessageStructure))
	assert.Equal(t, "arn:aws:sns:endpoint/a", aws.ToString(in.TargetArn))

	var envelope map[string]string
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(in.Message)), &envelope))
	assert.Equal(t, "over your goal", envelope["default"])
	var gcm struct {
		Notification map[string]string `json:"notification"`
		Data         map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(envelope["GCM"]), &gcm))
	assert.Equal(t, "New Alert", gcm.Notification["title"])
	assert.Equal(t, "warning", gcm.Data["type"])
}

func TestPushToUser_DisabledDevicesAndErrors(t *testing.T) {
	repo := store.NewMemoryStore()
	sns := &fakeSNS{publishErr: errors.New("endpoint disabled")}
	push := NewPushService(repo, sns, "arn")
	ctx := context.Background()
	_, err := push.RegisterDevice(ctx, 1, "android", "a")
	require.NoError(t, err)

	// publish errors are logged, not returned
	push.PushToUser(ctx, 1, "t", "b", nil)
	assert.Len(t, sns.published, 1)

	require.NoError(t, push.SetEnabled(ctx, 1, false))
	push.PushToUser(ctx, 1, "t", "b", nil)
	assert.Len(t, sns.published, 1)
}

type recordingPusher struct {
	titles []string
	data   []map[string]string
}

func (p *recordingPusher) PushToUser(_ context.Context, _ uint, title, _ string, data map[string]string) {
	p.titles = append(p.titles, title)
	p.data = append(p.data, data)
}

func TestAlertBus_Emit(t *testing.T) {
	repo := store.NewMemoryStore()
	pusher := &recordingPusher{}
	bus := NewAlertBus(repo, NewRealtimeHub(), pusher)
	ctx := context.Background()

	bus.Emit(ctx, 1, "info", "first")
	bus.Emit(ctx, 1, "warning", "second")

	alerts, err := bus.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "second", alerts[0].Message)
	assert.Equal(t, "first", alerts[1].Message)

	require.Len(t, pusher.titles, 2)
	assert.Equal(t, "New Alert", pusher.titles[0])
	assert.Equal(t, fmt.Sprintf("%d", alerts[0].ID), pusher.data[1]["alertId"])
	assert.Equal(t, "warning", pusher.data[1]["type"])
}

func TestAlertBus_NilIsNoop(t *testing.T) {
	var bus *AlertBus
	assert.NotPanics(t, func() { bus.Emit(context.Background(), 1, "info", "x") })
}
