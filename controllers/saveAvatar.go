package controllers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nfnt/resize"
)

const (
	maxFileSize       = 5 * 1024 * 1024
	compressThreshold = 100 * 1024
	avatarSize        = 300
)

var s3Client *minio.Client

// InitObjectStorage connects the S3 client used for customer avatars.
// Settings come from S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET
// and CDN_DOMAIN. Avatar uploads stay disabled when no endpoint is set.
func InitObjectStorage() error {
	endpoint := os.Getenv("S3_ENDPOINT")
	if endpoint == "" {
		return nil
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), ""),
		Secure: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %v", err)
	}
	s3Client = client
	return nil
}

// SaveAvatarToS3 compresses an uploaded photo, uploads a square thumbnail
// and returns the public CDN URL.
func SaveAvatarToS3(file *multipart.FileHeader, customerID string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	if file.Size > maxFileSize {
		return "", fmt.Errorf("file size exceeds the 5MB limit")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", fmt.Errorf("unsupported file format: %s", contentType)
	}

	srcFile, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer srcFile.Close()

	originalData, err := io.ReadAll(srcFile)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %v", err)
	}
	srcReader := bytes.NewReader(originalData)

	var img image.Image
	if contentType == "image/png" {
		img, err = png.Decode(srcReader)
	} else {
		img, err = jpeg.Decode(srcReader)
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}

	var buf bytes.Buffer
	if file.Size >= compressThreshold {
		thumb := resize.Thumbnail(avatarSize, avatarSize, img, resize.Lanczos3)
		if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
			return "", fmt.Errorf("failed to encode avatar: %v", err)
		}
	} else {
		buf.Write(originalData)
	}

	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	if fileExt == "" {
		fileExt = ".jpg"
	}
	objectName := fmt.Sprintf("avatars/%s_%d%s", customerID, time.Now().Unix(), fileExt)

	_, err = s3Client.PutObject(context.Background(), os.Getenv("S3_BUCKET"), objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar to S3: %v", err)
	}

	return fmt.Sprintf("https://%s/%s", os.Getenv("CDN_DOMAIN"), objectName), nil
}
