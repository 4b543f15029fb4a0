package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
)

var ErrObjectNotFound = errors.New("object not found")

// FileStore keeps the uploaded product images. Save returns the serving path
// (/products/<object>) that gets recorded on the product.
type FileStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Open(ctx context.Context, object string) (io.ReadCloser, int64, string, error)
	Remove(ctx context.Context, object string) error
}

// MinioStore stores images as bucket objects named by upload time, the same
// scheme the uploads keep on disk in the original deployment.
type MinioStore struct {
	Client *minio.Client
	Bucket string
}

func NewMinioStore(client *minio.Client, bucket string) *MinioStore {
	return &MinioStore{Client: client, Bucket: bucket}
}

func (s *MinioStore) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	object := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	_, err = s.Client.PutObject(ctx, s.Bucket, object, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}
	return "/products/" + object, nil
}

func (s *MinioStore) Open(ctx context.Context, object string) (io.ReadCloser, int64, string, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, "", err
	}
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, "", ErrObjectNotFound
		}
		return nil, 0, "", err
	}
	return obj, stat.Size, stat.ContentType, nil
}

func (s *MinioStore) Remove(ctx context.Context, object string) error {
	return s.Client.RemoveObject(ctx, s.Bucket, object, minio.RemoveObjectOptions{})
}
