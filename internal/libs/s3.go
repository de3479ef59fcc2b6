package libs

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	config "github.com/publu/l2-lxp-liquidity-reward-sporker/configs"
	"github.com/rs/zerolog/log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// ObjectPutter is the part of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewS3Uploader(ctx context.Context, cfg config.S3Config) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     cfg.AccessKeyID,
				SecretAccessKey: cfg.SecretAccessKey,
			}, nil
		})))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Uploader(client, cfg.Bucket, cfg.Prefix), nil
}

func newS3Uploader(client ObjectPutter, bucket string, prefix string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix}
}

// ReportKey names reports by block so reruns for the same block overwrite each other.
func (u *S3Uploader) ReportKey(localPath string, blockNumber uint64) string {
	name := strconv.FormatUint(blockNumber, 10) + "_" + filepath.Base(localPath)
	return path.Join(u.prefix, name)
}

func (u *S3Uploader) UploadReport(ctx context.Context, localPath string, blockNumber uint64) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open report for upload: %w", err)
	}
	defer file.Close()

	key := u.ReportKey(localPath, blockNumber)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   file,
		Metadata: map[string]string{
			"block-number": strconv.FormatUint(blockNumber, 10),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to s3://%s/%s: %w", u.bucket, key, err)
	}

	log.Info().Str("bucket", u.bucket).Str("key", key).Msg("Uploaded report to S3")
	return key, nil
}
