package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 60 * time.Second

// S3Config locates the bucket renders are published to
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Optional; set for S3-compatible stores
	Prefix    string
	AccessKey string // Optional; the default credential chain is used when empty
	SecretKey string
}

// Enabled reports whether a bucket is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// S3Publisher uploads rendered images to S3
type S3Publisher struct {
	config S3Config
	client *s3.S3
}

// NewS3Publisher creates a session for config
func NewS3Publisher(config S3Config) (*S3Publisher, error) {
	if !config.Enabled() {
		return nil, errors.New("s3 bucket is not configured")
	}

	awsConfig := &aws.Config{Region: aws.String(config.Region)}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, errors.Wrap(err, "create s3 session")
	}

	return &S3Publisher{config: config, client: s3.New(sess)}, nil
}

// PublishFile uploads the file at path under key and returns the object URL
func (p *S3Publisher) PublishFile(ctx context.Context, path, key string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	_, err = p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(ContentType(path)),
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", key)
	}

	return fmt.Sprintf("s3://%s/%s", p.config.Bucket, key), nil
}

// Prefix returns the configured key prefix
func (p *S3Publisher) Prefix() string {
	return p.config.Prefix
}

// ObjectKey builds "<prefix>/<scene>-<UTC timestamp>.<ext>"
func ObjectKey(prefix, sceneName, ext string, at time.Time) string {
	name := fmt.Sprintf("%s-%s.%s", sceneName, at.UTC().Format("20060102T150405Z"), strings.TrimPrefix(ext, "."))
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// ContentType returns the MIME type for an output file
func ContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".ppm":
		return "image/x-portable-pixmap"
	default:
		return "application/octet-stream"
	}
}
