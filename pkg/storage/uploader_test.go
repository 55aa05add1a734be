package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"job-board-backend/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectAPI struct {
	mock.Mock
}

func (m *MockObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func (m *MockObjectAPI) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func pngResume(t *testing.T) domain.ResumeFile {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	return domain.ResumeFile{Filename: "cv.png", ContentType: "image/png", Data: buf.Bytes()}
}

func TestUploadPutsObjectUnderResumes(t *testing.T) {
	api := new(MockObjectAPI)
	api.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "resumes-bucket" &&
			strings.HasPrefix(aws.ToString(in.Key), "resumes/") &&
			strings.HasSuffix(aws.ToString(in.Key), ".png") &&
			aws.ToString(in.ContentType) == "image/png"
	})).Return(&s3.PutObjectOutput{}, nil)

	u := NewS3Uploader(api, S3ClientConfig{Provider: S3ProviderAWS, Bucket: "resumes-bucket", Region: "eu-west-1"}, "", 0)
	res, err := u.Upload(context.Background(), pngResume(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.PublicID, "resumes/"))
	assert.Equal(t, "https://resumes-bucket.s3.eu-west-1.amazonaws.com/"+res.PublicID, res.URL)
	api.AssertExpectations(t)
}

func TestUploadUsesPublicBaseURL(t *testing.T) {
	api := new(MockObjectAPI)
	api.On("PutObject", mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil)

	u := NewS3Uploader(api, S3ClientConfig{Provider: S3ProviderCustom, Bucket: "b", Endpoint: "minio.local:9000"}, "https://cdn.example.com/", 0)
	res, err := u.Upload(context.Background(), pngResume(t))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+res.PublicID, res.URL)
}

func TestUploadPropagatesFailure(t *testing.T) {
	api := new(MockObjectAPI)
	api.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	u := NewS3Uploader(api, S3ClientConfig{Bucket: "b"}, "", 0)
	_, err := u.Upload(context.Background(), pngResume(t))
	assert.ErrorContains(t, err, "access denied")
}

func TestDeleteRemovesKey(t *testing.T) {
	api := new(MockObjectAPI)
	api.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return aws.ToString(in.Key) == "resumes/abc.png"
	})).Return(&s3.DeleteObjectOutput{}, nil)

	u := NewS3Uploader(api, S3ClientConfig{Bucket: "b"}, "", 0)
	require.NoError(t, u.Delete(context.Background(), "resumes/abc.png"))
	api.AssertExpectations(t)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", S3ClientConfig{Provider: S3ProviderAWS}.endpointURL())
	assert.Equal(t, "https://s3.eu-central-1.wasabisys.com", S3ClientConfig{Provider: S3ProviderWasabi, Region: "eu-central-1"}.endpointURL())
	assert.Equal(t, "http://localhost:9000", S3ClientConfig{Provider: S3ProviderCustom, Endpoint: "http://localhost:9000/"}.endpointURL())
	assert.Equal(t, S3ProviderWasabi, ParseProvider("Wasabi"))
	assert.Equal(t, S3ProviderAWS, ParseProvider(""))
}

func TestUploadKeyUsesSniffedExtension(t *testing.T) {
	api := new(MockObjectAPI)
	api.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return strings.HasSuffix(aws.ToString(in.Key), ".jpg")
	})).Return(&s3.PutObjectOutput{}, nil)

	file := domain.ResumeFile{Filename: "cv.jpeg", ContentType: "image/jpeg", Extension: ".jpg", Data: []byte("jpeg bytes")}
	u := NewS3Uploader(api, S3ClientConfig{Bucket: "b"}, "", 0)
	res, err := u.Upload(context.Background(), file)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.PublicID, ".jpg"))
	api.AssertExpectations(t)
}
