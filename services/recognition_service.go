package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nutritrack/models"
	"nutritrack/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

var ErrInvalidImage = errors.New("invalid image")

// LabelDetector is the subset of the Rekognition client used here.
type LabelDetector interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RecognitionService turns a food photo into catalog ingredient candidates.
type RecognitionService struct {
	client  LabelDetector
	catalog *CatalogService
}

func NewRecognitionService(client LabelDetector, catalog *CatalogService) *RecognitionService {
	return &RecognitionService{client: client, catalog: catalog}
}

func NewRekognitionService(ctx context.Context, region string, catalog *CatalogService) (*RecognitionService, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewRecognitionService(rekognition.NewFromConfig(cfg), catalog), nil
}

type RecognitionResult struct {
	Labels      []string            `json:"labels"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

// Recognize detects up to five labels in a base64 data-URI image and returns
// the catalog ingredients whose names match any label.
func (r *RecognitionService) Recognize(ctx context.Context, base64Img string) (*RecognitionResult, error) {
	if r.client == nil {
		return nil, ErrFeatureDisabled
	}
	img, err := utils.DecodeDataImage(base64Img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: img.Bytes},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	res := &RecognitionResult{Labels: []string{}, Ingredients: []models.Ingredient{}}
	seen := map[uint]bool{}
	for _, l := range out.Labels {
		name := aws.ToString(l.Name)
		if name == "" {
			continue
		}
		res.Labels = append(res.Labels, name)
		for _, ing := range r.catalog.SearchIngredients(strings.ToLower(name)) {
			if !seen[ing.ID] {
				seen[ing.ID] = true
				res.Ingredients = append(res.Ingredients, ing)
			}
		}
	}
	return res, nil
}
