package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

var cld *cloudinary.Cloudinary

// InitCloudinary initializes the Cloudinary connection used for media uploads
func InitCloudinary() error {
	var err error

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return fmt.Errorf("the Cloudinary environment variables are not set")
	}

	cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return fmt.Errorf("error initializing Cloudinary: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err = cld.Admin.Ping(ctx); err != nil {
		return fmt.Errorf("error checking the Cloudinary connection: %v", err)
	}

	LogSuccess("Cloudinary initialized successfully")
	return nil
}

func hasValidExtension(filename string, validExtensions []string) bool {
	lowerFilename := strings.ToLower(filename)
	for _, ext := range validExtensions {
		if strings.HasSuffix(lowerFilename, ext) {
			return true
		}
	}
	return false
}

func isValidImageType(filename string) bool {
	return hasValidExtension(filename, []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"})
}

func isValidVideoType(filename string) bool {
	return hasValidExtension(filename, []string{".mp4", ".mov", ".webm", ".mkv", ".avi"})
}

func isValidAudioType(filename string) bool {
	return hasValidExtension(filename, []string{".mp3", ".wav", ".ogg", ".m4a", ".flac", ".aac"})
}

func upload(file *multipart.FileHeader, folder string, prefix string, resourceType string) (string, error) {
	if cld == nil {
		return "", fmt.Errorf("Cloudinary is not initialized")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening the file: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("%s_%s", prefix, uuid.New().String())
	result, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("error uploading to Cloudinary: %v", err)
	}

	return result.SecureURL, nil
}

// UploadImage uploads an image file (covers, thumbnails, avatars)
func UploadImage(file *multipart.FileHeader, folder string, prefix string) (string, error) {
	if !isValidImageType(file.Filename) {
		return "", fmt.Errorf("unsupported image type: %s", file.Filename)
	}
	return upload(file, folder, prefix, "image")
}

// UploadVideo uploads a video file
func UploadVideo(file *multipart.FileHeader, folder string, prefix string) (string, error) {
	if !isValidVideoType(file.Filename) {
		return "", fmt.Errorf("unsupported video type: %s", file.Filename)
	}
	return upload(file, folder, prefix, "video")
}

// UploadAudio uploads an audio file. Cloudinary stores audio under the video
// resource type.
func UploadAudio(file *multipart.FileHeader, folder string, prefix string) (string, error) {
	if !isValidAudioType(file.Filename) {
		return "", fmt.Errorf("unsupported audio type: %s", file.Filename)
	}
	return upload(file, folder, prefix, "video")
}
