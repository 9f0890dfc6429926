package upload

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultCloudinaryURL = "https://api.cloudinary.com/v1_1"

// CloudinaryClient talks to the Cloudinary upload and admin REST APIs.
type CloudinaryClient struct {
	baseURL   string
	cloudName string
	apiKey    string
	apiSecret string
	http      *http.Client
	now       func() time.Time
}

func NewCloudinaryClient(cloudName, apiKey, apiSecret string) *CloudinaryClient {
	return &CloudinaryClient{
		baseURL:   defaultCloudinaryURL,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		http:      &http.Client{Timeout: 30 * time.Second},
		now:       time.Now,
	}
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *CloudinaryClient) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.cloudName, path)
}

// DeletePrefix removes every uploaded image whose public id starts with
// prefix.
func (c *CloudinaryClient) DeletePrefix(ctx context.Context, prefix string) error {
	q := url.Values{"prefix": {prefix}}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.endpoint("resources/image/upload")+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary delete: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp, "delete")
}

// Upload stores data under folder and returns its https URL.
func (c *CloudinaryClient) Upload(ctx context.Context, folder, filename string, data []byte) (string, error) {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := [][2]string{
		{"api_key", c.apiKey},
		{"folder", folder},
		{"timestamp", timestamp},
		{"signature", c.sign(folder, timestamp)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return "", err
		}
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("image/upload"), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "upload"); err != nil {
		return "", err
	}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("cloudinary upload: decode response: %w", err)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload: empty secure_url")
	}
	return out.SecureURL, nil
}

// sign follows the Cloudinary scheme: sorted params joined with '&', then
// the api secret appended, then SHA-1.
func (c *CloudinaryClient) sign(folder, timestamp string) string {
	payload := "folder=" + folder + "&timestamp=" + timestamp + c.apiSecret
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func checkStatus(resp *http.Response, op string) error {
	if resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var e apiError
	if json.Unmarshal(raw, &e) == nil && e.Error.Message != "" {
		return fmt.Errorf("cloudinary %s: %s (status %d)", op, e.Error.Message, resp.StatusCode)
	}
	return fmt.Errorf("cloudinary %s: status %d", op, resp.StatusCode)
}
