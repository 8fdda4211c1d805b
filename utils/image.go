package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// ProfilePicWidth is the maximum width of stored profile pictures.
const ProfilePicWidth = 400

// MaxImageSide bounds both dimensions of an uploaded image. Larger images are
// rejected from their header, before any pixel data is decoded.
const MaxImageSide = 4096

// ErrBadImage is returned when image data cannot be decoded or is too large.
var ErrBadImage = errors.New("image data could not be decoded")

// DecodeImageData decodes a data URL ("data:image/png;base64,...") or a bare base64 payload.
func DecodeImageData(data string) (image.Image, error) {
	payload := strings.TrimSpace(data)
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 || !strings.HasSuffix(payload[:comma], ";base64") {
			return nil, ErrBadImage
		}
		payload = payload[comma+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrBadImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || cfg.Width > MaxImageSide || cfg.Height > MaxImageSide {
		return nil, ErrBadImage
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrBadImage
	}
	return img, nil
}

// PrepareProfilePic decodes data, downscales it to ProfilePicWidth when wider and
// re-encodes it as JPEG.
func PrepareProfilePic(data string) ([]byte, error) {
	img, err := DecodeImageData(data)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dx() > ProfilePicWidth {
		img = resize.Resize(ProfilePicWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// PictureStore persists a JPEG picture and returns the URL it is served from.
type PictureStore interface {
	Save(ctx context.Context, owner string, jpegData []byte) (string, error)
}

// InlinePictureStore keeps pictures as data URLs on the document itself.
type InlinePictureStore struct{}

// Save returns jpegData as a data URL.
func (InlinePictureStore) Save(_ context.Context, _ string, jpegData []byte) (string, error) {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData), nil
}

// S3PictureStore uploads pictures to an S3 bucket as public objects.
type S3PictureStore struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewS3PictureStore loads the default AWS credential chain and returns a store writing to bucket.
func NewS3PictureStore(ctx context.Context, bucket, prefix string) (*S3PictureStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	return &S3PictureStore{
		uploader: manager.NewUploader(s3.NewFromConfig(cfg)),
		bucket:   bucket,
		prefix:   prefix,
	}, nil
}

// Save uploads jpegData under <prefix>/<owner>/<uuid>.jpg.
func (s *S3PictureStore) Save(ctx context.Context, owner string, jpegData []byte) (string, error) {
	key := path.Join(s.prefix, owner, uuid.New().String()+".jpg")
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(jpegData),
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return result.Location, nil
}
