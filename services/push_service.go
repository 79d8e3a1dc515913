package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"nutritrack/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
)

var (
	ErrFeatureDisabled = errors.New("feature not configured")
	ErrInvalidPlatform = errors.New("platform must be android or ios")
)

// SNSAPI is the subset of the SNS client used for push delivery.
type SNSAPI interface {
	CreatePlatformEndpoint(ctx context.Context, in *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, in *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

type PushService struct {
	devices     DeviceRepository
	sns         SNSAPI
	platformArn string
}

func NewPushService(devices DeviceRepository, client SNSAPI, platformArn string) *PushService {
	return &PushService{devices: devices, sns: client, platformArn: platformArn}
}

// NewSNSPushService loads the default AWS config for region.
func NewSNSPushService(ctx context.Context, devices DeviceRepository, region, platformArn string) (*PushService, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewPushService(devices, awssns.NewFromConfig(cfg), platformArn), nil
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) RegisterDevice(ctx context.Context, userID uint, platform, token string) (*models.UserDevice, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
	default:
		return nil, ErrInvalidPlatform
	}
	if p.sns == nil || p.platformArn == "" {
		return nil, ErrFeatureDisabled
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev, err := p.devices.UpsertDevice(ctx, models.UserDevice{
		UserID:      userID,
		Platform:    strings.ToLower(platform),
		TokenHash:   tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
	})
	if err != nil {
		return nil, err
	}
	return &dev, nil
}

// SetEnabled toggles delivery for every device of the user; it follows the
// notifications flag in settings.
func (p *PushService) SetEnabled(ctx context.Context, userID uint, enabled bool) error {
	return p.devices.SetDevicesEnabled(ctx, userID, enabled)
}

func (p *PushService) PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string) {
	if p.sns == nil {
		return
	}
	endpoints, err := p.devices.ListEnabledDevices(ctx, userID)
	if err != nil {
		log.Printf("push list devices user=%d: %v", userID, err)
		return
	}
	if len(endpoints) == 0 {
		return
	}

	gcm, _ := json.Marshal(map[string]any{
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
		"data": data,
	})
	raw, _ := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(gcm),
	})
	for _, d := range endpoints {
		if _, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		}); err != nil {
			log.Printf("push publish user=%d device=%d: %v", userID, d.ID, err)
		}
	}
}
