package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Source struct {
	client *s3.Client
	bucket string
	key    string
	body   io.ReadCloser
	closed bool
}

// ParseS3URL splits s3://bucket/key into bucket and key.
func ParseS3URL(url string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(url, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 url: %s", url)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 url needs a bucket and a key: %s", url)
	}
	return bucket, key, nil
}

// OpenS3 binds to an S3 object using the default AWS configuration and
// requests the object body, so open failures surface here rather than on
// the first Read.
func OpenS3(ctx context.Context, url string) (Source, error) {
	bucket, key, err := ParseS3URL(url)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)

	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object s3://%s/%s: %w", bucket, key, err)
	}

	return &s3Source{
		client: client,
		bucket: bucket,
		key:    key,
		body:   resp.Body,
	}, nil
}

func (s *s3Source) Read(p []byte) (int, error) {
	if s.closed {
		return 0, io.EOF
	}
	return s.body.Read(p)
}

func (s *s3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

func (s *s3Source) Size(ctx context.Context) (int64, error) {
	resp, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return 0, fmt.Errorf("head object %s: %w", s.Name(), err)
	}
	if resp.ContentLength == nil {
		return 0, fmt.Errorf("head object %s: response has no content length", s.Name())
	}
	return *resp.ContentLength, nil
}

func (s *s3Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
