package utils

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"civicvoice/config"

	"github.com/go-resty/resty/v2"
)

const uploadFolder = "civicvoice/issues"

// UploadImage pushes image bytes to Cloudinary and returns the permanent URL.
// Callers must treat an error as aborting the whole submission; no issue row
// may be written after a failed upload.
func UploadImage(fileBytes []byte, filename string) (string, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return "", fmt.Errorf("cloudinary is not configured")
	}

	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	dataURI := fmt.Sprintf("data:image/%s;base64,%s", ext, base64.StdEncoding.EncodeToString(fileBytes))

	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	// Cloudinary signs the sorted upload params with the API secret.
	toSign := fmt.Sprintf("folder=%s&timestamp=%s%s", uploadFolder, timestamp, cfg.CloudinaryAPISecret)
	digest := sha1.Sum([]byte(toSign))
	signature := hex.EncodeToString(digest[:])

	uploadURL := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cfg.CloudinaryCloudName)

	client := resty.New()
	resp, err := client.R().
		SetFormData(map[string]string{
			"file":      dataURI,
			"api_key":   cfg.CloudinaryAPIKey,
			"timestamp": timestamp,
			"folder":    uploadFolder,
			"signature": signature,
		}).
		Post(uploadURL)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.String())
	}

	var uploadResp struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(resp.Body(), &uploadResp); err != nil {
		return "", err
	}
	if uploadResp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no secure_url")
	}

	return uploadResp.SecureURL, nil
}
