package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImageSize bounds an uploaded recipe image.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ObjectPutter is the part of the S3 client the image service needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService handles recipe image storage
type ImageService struct {
	s3      ObjectPutter
	bucket  string
	baseURL string
	recipes IRecipeService
	log     *zap.Logger
}

// NewImageService creates a new ImageService instance
func NewImageService(client ObjectPutter, bucket string, recipes IRecipeService, log *zap.Logger) *ImageService {
	return &ImageService{
		s3:      client,
		bucket:  bucket,
		baseURL: fmt.Sprintf("https://%s.s3.amazonaws.com", bucket),
		recipes: recipes,
		log:     log,
	}
}

// WithBaseURL serves image URLs from base instead of the AWS bucket host.
func (s *ImageService) WithBaseURL(base string) *ImageService {
	if base = strings.TrimRight(base, "/"); base != "" {
		s.baseURL = base
	}
	return s
}

// UploadRecipeImage stores body as the image of a recipe owned by userID and
// records its public URL on the recipe.
func (s *ImageService) UploadRecipeImage(ctx context.Context, userID, recipeID uuid.UUID, contentType string, body io.Reader) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type %q", ErrInvalidInput, contentType)
	}

	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return "", err
	}
	if recipe.CreatedBy != userID {
		return "", ErrForbidden
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidInput, MaxImageSize)
	}

	key := fmt.Sprintf("recipe-images/%s/%s.%s", recipeID, uuid.New(), ext)
	_, err = s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.baseURL + "/" + key
	if err := s.recipes.SetImageURL(ctx, recipeID, url); err != nil {
		return "", err
	}
	s.log.Info("recipe image uploaded", zap.String("recipe_id", recipeID.String()), zap.String("key", key))
	return url, nil
}
