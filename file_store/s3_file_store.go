// Package file_store hands out time-limited presigned S3 upload URLs. The
// client uploads bytes directly to object storage; this API never proxies
// file contents.
package file_store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultFolder = "uploads"
	presignExpiry = time.Hour
)

type S3FileStore struct {
	bucket string
	svc    *s3.S3
}

// PresignedUpload is what the client needs to push a file to storage and
// reference it afterwards.
type PresignedUpload struct {
	UploadUrl string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	FileUrl   string `json:"fileUrl"`
}

func NewS3FileStore(bucket string) (*S3FileStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to create AWS session")
	}

	return &S3FileStore{
		bucket: bucket,
		svc:    s3.New(sess),
	}, nil
}

// GeneratePresignedUploadUrl builds a presigned PUT URL for the given content
// type. When no file name is supplied a random one is generated with the
// extension taken from the content type; files land under folder/ (default
// "uploads").
func (s *S3FileStore) GeneratePresignedUploadUrl(fileType string, fileName string, folder string) (*PresignedUpload, error) {
	if fileName == "" {
		fileName = uuid.New().String() + "." + extensionFromContentType(fileType)
	}
	if folder == "" {
		folder = defaultFolder
	}
	fileKey := folder + "/" + fileName

	req, _ := s.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fileKey),
		ContentType: aws.String(fileType),
	})
	uploadUrl, err := req.Presign(presignExpiry)
	if err != nil {
		return nil, errors.Wrap(err, "fail to presign upload url")
	}

	return &PresignedUpload{
		UploadUrl: uploadUrl,
		FileKey:   fileKey,
		FileUrl:   fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, fileKey),
	}, nil
}

func extensionFromContentType(fileType string) string {
	parts := strings.SplitN(fileType, "/", 2)
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}
	return "bin"
}
