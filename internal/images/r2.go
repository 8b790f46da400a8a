package images

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bilgisen/resourcehub/internal/logger"
	"github.com/bilgisen/resourcehub/internal/models"
)

// R2Scheme prefixes image references stored in the Cloudflare R2 bucket,
// e.g. "r2://covers/launch-guide.png".
const R2Scheme = "r2://"

// R2Config holds the credentials for the R2 bucket that stores gated previews
// and downloads.
type R2Config struct {
	Endpoint   string
	AccountID  string
	AccessKey  string
	SecretKey  string
	Bucket     string
	PresignTTL time.Duration
}

type presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// R2Resolver signs short-lived GET URLs for r2:// references.
type R2Resolver struct {
	presigner presigner
	bucket    string
	ttl       time.Duration
}

// NewR2Resolver builds an S3 presign client against the R2 endpoint.
// Signing is local, so no request is made here.
func NewR2Resolver(ctx context.Context, cfg R2Config) (*R2Resolver, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" && cfg.AccountID != "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}
	if endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("r2 endpoint and bucket are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &R2Resolver{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		ttl:       ttl,
	}, nil
}

func (r *R2Resolver) Resolve(ref models.ImageRef) string {
	key, ok := r2Key(ref)
	if !ok {
		return ""
	}
	req, err := r.presigner.PresignGetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(r.ttl))
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to presign R2 image")
		return ""
	}
	return req.URL
}

func r2Key(ref models.ImageRef) (string, bool) {
	for _, v := range []string{ref.Ref, ref.URL} {
		if key, ok := strings.CutPrefix(v, R2Scheme); ok && strings.Trim(key, "/") != "" {
			return strings.TrimLeft(key, "/"), true
		}
	}
	return "", false
}
