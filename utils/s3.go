package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Uploader stores meal photos and returns their public (CloudFront) URL.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Uploader(ctx context.Context, region, bucket, publicBaseURL string) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config for s3: %w", err)
	}
	return &S3Uploader{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// DataImage is a decoded "data:<mime>;base64,<data>" payload.
type DataImage struct {
	ContentType string
	Ext         string
	Bytes       []byte
}

func DecodeDataImage(base64Data string) (*DataImage, error) {
	meta, data, ok := strings.Cut(base64Data, ",")
	if !ok || !strings.HasPrefix(meta, "data:") {
		return nil, fmt.Errorf("invalid base64 image")
	}

	// "data:image/jpeg;base64" -> "image/jpeg"
	contentType, _, _ := strings.Cut(strings.TrimPrefix(meta, "data:"), ";")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	var ext string
	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	default:
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else {
			ext = "." + strings.TrimPrefix(contentType, "image/")
		}
	}

	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &DataImage{ContentType: contentType, Ext: ext, Bytes: b}, nil
}

func (u *S3Uploader) UploadBase64Image(ctx context.Context, base64Data, keyPrefix string) (string, error) {
	img, err := DecodeDataImage(base64Data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s-%d%s", keyPrefix, time.Now().UnixNano(), img.Ext)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Bytes),
		ContentType: aws.String(img.ContentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}
