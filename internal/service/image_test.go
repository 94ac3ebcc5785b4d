package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutriapp/backend/internal/logger"
	"github.com/pageza/nutriapp/backend/internal/service"
	"github.com/pageza/nutriapp/backend/internal/testhelpers"
)

type mockPutter struct {
	mock.Mock
	body []byte
}

func (m *mockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if params.Body != nil {
		m.body, _ = io.ReadAll(params.Body)
	}
	args := m.Called(aws.ToString(params.Bucket), aws.ToString(params.Key), aws.ToString(params.ContentType))
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUploadRecipeImage(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	recipes := service.NewRecipeService(db, logger.Nop())
	ctx := context.Background()
	recipe := testhelpers.CreateRecipe(t, db, "Soup")

	putter := new(mockPutter)
	keyPrefix := "recipe-images/" + recipe.ID.String() + "/"
	putter.On("PutObject", "images-bucket",
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, keyPrefix) && strings.HasSuffix(key, ".png")
		}),
		"image/png",
	).Return(&s3.PutObjectOutput{}, nil).Once()

	svc := service.NewImageService(putter, "images-bucket", recipes, logger.Nop())
	url, err := svc.UploadRecipeImage(ctx, recipe.CreatedBy, recipe.ID, "image/png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://images-bucket.s3.amazonaws.com/"+keyPrefix))
	assert.Equal(t, []byte("png-bytes"), putter.body)
	putter.AssertExpectations(t)

	stored, err := recipes.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.ImageURL)
}

func TestUploadRecipeImageRejections(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	recipes := service.NewRecipeService(db, logger.Nop())
	ctx := context.Background()
	recipe := testhelpers.CreateRecipe(t, db, "Soup")
	putter := new(mockPutter)
	svc := service.NewImageService(putter, "images-bucket", recipes, logger.Nop())

	_, err := svc.UploadRecipeImage(ctx, recipe.CreatedBy, recipe.ID, "application/pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.UploadRecipeImage(ctx, uuid.New(), recipe.ID, "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.UploadRecipeImage(ctx, recipe.CreatedBy, uuid.New(), "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.UploadRecipeImage(ctx, recipe.CreatedBy, recipe.ID, "image/jpeg", strings.NewReader(""))
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	tooBig := bytes.NewReader(make([]byte, service.MaxImageSize+1))
	_, err = svc.UploadRecipeImage(ctx, recipe.CreatedBy, recipe.ID, "image/jpeg", tooBig)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	putter.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadRecipeImageStorageFailure(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	recipes := service.NewRecipeService(db, logger.Nop())
	recipe := testhelpers.CreateRecipe(t, db, "Soup")

	putter := new(mockPutter)
	putter.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))
	svc := service.NewImageService(putter, "images-bucket", recipes, logger.Nop())

	_, err := svc.UploadRecipeImage(context.Background(), recipe.CreatedBy, recipe.ID, "image/webp", strings.NewReader("x"))
	assert.Error(t, err)

	stored, err := recipes.GetRecipe(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ImageURL)
}

func TestUploadRecipeImageCustomBaseURL(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	recipes := service.NewRecipeService(db, logger.Nop())
	recipe := testhelpers.CreateRecipe(t, db, "Soup")

	putter := new(mockPutter)
	putter.On("PutObject", "images-bucket", mock.Anything, "image/gif").Return(&s3.PutObjectOutput{}, nil).Once()
	svc := service.NewImageService(putter, "images-bucket", recipes, logger.Nop()).
		WithBaseURL("http://localhost:9000/images-bucket/")

	url, err := svc.UploadRecipeImage(context.Background(), recipe.CreatedBy, recipe.ID, "image/gif", strings.NewReader("gif"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/images-bucket/recipe-images/"+recipe.ID.String()+"/"), url)
	putter.AssertExpectations(t)
}
