package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const bucketName = "cyco-media"

var ErrObjectNotFound = errors.New("object not found")

// Storage holds poster and photo uploads for catalog items.
type Storage struct {
	client         *minio.Client
	publicEndpoint string
}

// New connects to MinIO and makes sure the media bucket exists with a
// public-read policy, since poster URLs are served straight to clients.
func New(ctx context.Context, endpoint, accessKey, secretKey, publicEndpoint string) (*Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}

		policy := `{
			"Version": "2012-10-17",
			"Statement": [
				{
					"Effect": "Allow",
					"Principal": "*",
					"Action": "s3:GetObject",
					"Resource": "arn:aws:s3:::` + bucketName + `/*"
				}
			]
		}`
		if err := client.SetBucketPolicy(ctx, bucketName, policy); err != nil {
			return nil, fmt.Errorf("set bucket policy: %w", err)
		}
	}

	return &Storage{client: client, publicEndpoint: publicEndpoint}, nil
}

func (s *Storage) Upload(ctx context.Context, filename string, src io.Reader, size int64, mimeType string) error {
	_, err := s.client.PutObject(ctx, bucketName, filename, src, size,
		minio.PutObjectOptions{ContentType: mimeType})
	if err != nil {
		return fmt.Errorf("upload %s: %w", filename, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, filename string) error {
	_, err := s.client.StatObject(ctx, bucketName, filename, minio.StatObjectOptions{})
	if err != nil {
		var minioErr minio.ErrorResponse
		if errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey" {
			return ErrObjectNotFound
		}
		return fmt.Errorf("stat %s: %w", filename, err)
	}
	if err := s.client.RemoveObject(ctx, bucketName, filename, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", filename, err)
	}
	return nil
}

// URL returns the public URL for a stored object.
func (s *Storage) URL(filename string) string {
	return s.publicEndpoint + "/" + bucketName + "/" + filename
}
