package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	labels []string
	err    error
	got    *rekognition.DetectLabelsInput
}

func (f *fakeDetector) DetectLabels(_ context.Context, in *rekognition.DetectLabelsInput, _ ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	out := &rekognition.DetectLabelsOutput{}
	for _, l := range f.labels {
		out.Labels = append(out.Labels, types.Label{Name: aws.String(l)})
	}
	return out, nil
}

func jpegDataURI(b []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(b)
}

func TestRecognize(t *testing.T) {
	det := &fakeDetector{labels: []string{"Chicken", "Food", "Protein", ""}}
	svc := NewRecognitionService(det, newTestCatalog(t))

	res, err := svc.Recognize(context.Background(), jpegDataURI([]byte{0xff, 0xd8, 0xff}))
	require.NoError(t, err)

	assert.Equal(t, []string{"Chicken", "Food", "Protein"}, res.Labels)
	assert.Equal(t, []uint{1, 4, 6, 12}, ingredientIDs(res.Ingredients))
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, det.got.Image.Bytes)
	assert.Equal(t, int32(5), aws.ToInt32(det.got.MaxLabels))
}

func TestRecognize_Errors(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	_, err := NewRecognitionService(nil, catalog).Recognize(ctx, jpegDataURI([]byte("x")))
	assert.ErrorIs(t, err, ErrFeatureDisabled)

	svc := NewRecognitionService(&fakeDetector{}, catalog)
	_, err = svc.Recognize(ctx, "not a data uri")
	assert.ErrorIs(t, err, ErrInvalidImage)
	_, err = svc.Recognize(ctx, "data:text/plain;base64,aGk=")
	assert.ErrorIs(t, err, ErrInvalidImage)

	boom := errors.New("throttled")
	_, err = NewRecognitionService(&fakeDetector{err: boom}, catalog).Recognize(ctx, jpegDataURI([]byte("x")))
	assert.ErrorIs(t, err, boom)
}

func TestRecognize_NoMatches(t *testing.T) {
	svc := NewRecognitionService(&fakeDetector{labels: []string{"Plate"}}, newTestCatalog(t))

	res, err := svc.Recognize(context.Background(), jpegDataURI([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, []string{"Plate"}, res.Labels)
	assert.NotNil(t, res.Ingredients)
	assert.Empty(t, res.Ingredients)
}
