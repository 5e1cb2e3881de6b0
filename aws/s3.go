package aws

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vitalibo/pyxis"
)

// S3Client is the subset of the S3 API the reader uses.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Reader reads configuration files from Amazon S3. Paths must be of the
// form s3://bucket-name/key/to/config.json.
type S3Reader struct {
	client S3Client
}

// NewS3Reader creates an S3Reader using the default AWS credential chain.
func NewS3Reader() (*S3Reader, error) {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &S3Reader{client: s3.NewFromConfig(cfg)}, nil
}

// MatchS3 reports whether the path addresses an S3 object.
func MatchS3(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// Read downloads the object body as text.
func (r *S3Reader) Read(path string) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid S3 path %q: %w", path, err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	out, err := r.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get object s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read object body: %w", err)
	}
	return string(data), nil
}

var _ pyxis.Reader = (*S3Reader)(nil)
