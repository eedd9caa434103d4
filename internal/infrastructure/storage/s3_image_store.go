package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3API is the subset of *s3.Client the image store uses.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

// S3ImageStore keeps product images in a public-read bucket.
//
// URLs are <base>/<key>. The base is S3_PUBLIC_BASE_URL when set (a CDN or a
// local MinIO), otherwise the bucket's virtual-hosted endpoint.
type S3ImageStore struct {
	client  S3API
	bucket  string
	baseURL string
}

var _ interfaces.IImageStore = (*S3ImageStore)(nil)

func NewS3ImageStore(client S3API, bucket, region, publicBaseURL string) *S3ImageStore {
	base := strings.TrimRight(publicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3ImageStore{client: client, bucket: bucket, baseURL: base}
}

// NewS3Client builds an S3 client; a custom endpoint switches to path-style
// addressing for MinIO and LocalStack.
func NewS3Client(awsCfg aws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}

func (s *S3ImageStore) Upload(ctx context.Context, name string, contentType string, body []byte) (string, error) {
	key := strings.TrimLeft(name, "/")
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("[image][s3] upload failed")
		return "", err
	}
	log.Info().Str("key", key).Int("bytes", len(body)).Msg("[image][s3] uploaded")
	return s.baseURL + "/" + key, nil
}

// Delete removes an image previously returned by Upload. URLs pointing
// elsewhere are ignored.
func (s *S3ImageStore) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		log.Debug().Str("url", url).Msg("[image][s3] not a bucket url, skipped")
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete image %s: %w", key, err)
	}
	log.Info().Str("key", key).Msg("[image][s3] deleted")
	return nil
}
