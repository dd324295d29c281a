package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path"

	"github.com/amilmether/fundEd-Web/app/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// UploadFileToS3 stores an uploaded file (QR image or proof-of-payment
// screenshot) in the configured bucket and returns its public URL. The key is
// prefixed by kind ("qrcodes" or "proofs") and randomized to avoid clashes.
func UploadFileToS3(file multipart.File, originalName, kind string) (string, error) {
	cfg := config.AppConfig.S3
	if cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return "", fmt.Errorf("blob storage is not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create AWS session: %v", err)
	}

	svc := s3.New(sess)

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file buffer: %v", err)
	}

	key := fmt.Sprintf("%s/%s%s", kind, uuid.New().String(), path.Ext(originalName))
	input := &s3.PutObjectInput{
		Bucket: aws.String(cfg.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(buf.Bytes()),
	}

	if _, err := svc.PutObject(input); err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cfg.Bucket, cfg.Region, key)
	return url, nil
}
