package oss

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"time"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// BlobService is the single entry point for durable file storage. Keys are
// namespaced by purpose: documents/, signatures/, penalties/, support/.
type BlobService interface {
	UploadBytes(ctx context.Context, dir, filename string, data []byte, contentType string) (string, error)
	UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error)
	UploadSignaturePNG(ctx context.Context, dir, dataURL string) (string, error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
	DeleteManyByPublicURL(ctx context.Context, publicURLs []string) ([]string, map[string]error)
}

type OSSBlobService struct {
	bucket  *alioss.Bucket
	baseURL string
}

func NewBlobServiceFromEnv() (*OSSBlobService, error) {
	endpoint := getEnv("OSS_ENDPOINT")
	keyID := getEnv("OSS_ACCESS_KEY_ID")
	keySecret := getEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := getEnv("OSS_BUCKET")
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("oss: OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET must be set")
	}

	client, err := alioss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	baseURL := getEnv("OSS_PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.%s", bucketName, strings.TrimPrefix(endpoint, "https://"))
	}
	return &OSSBlobService{bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (b *OSSBlobService) publicURL(key string) string {
	return b.baseURL + "/" + key
}

func (b *OSSBlobService) keyFromPublicURL(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("oss: no object key in url %q", publicURL)
	}
	return key, nil
}

func objectKey(dir, filename string) string {
	base := strings.ReplaceAll(path.Base(filename), " ", "_")
	return fmt.Sprintf("%s/%d_%s_%s", strings.Trim(dir, "/"), time.Now().UnixMilli(), uuid.NewString()[:8], base)
}

func (b *OSSBlobService) UploadBytes(ctx context.Context, dir, filename string, data []byte, contentType string) (string, error) {
	key := objectKey(dir, filename)
	err := b.bucket.PutObject(key, bytes.NewReader(data),
		alioss.ContentType(contentType),
		alioss.ObjectACL(alioss.ACLPublicRead),
	)
	if err != nil {
		return "", fmt.Errorf("oss: put %s: %w", key, err)
	}
	return b.publicURL(key), nil
}

// UploadImage stores a multipart image upload, converting to WebP when the
// source format allows it. Non-image payloads are rejected upstream by the
// controller's field validation.
func (b *OSSBlobService) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	all, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	if converted, err := ConvertToWebP(all); err == nil {
		name := strings.TrimSuffix(fh.Filename, path.Ext(fh.Filename)) + ".webp"
		return b.UploadBytes(ctx, dir, name, converted, "image/webp")
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return b.UploadBytes(ctx, dir, fh.Filename, all, ct)
}

// UploadSignaturePNG decodes a "data:image/png;base64," data URL and stores
// the raw PNG. Signatures stay PNG so they render crisp on invoices.
func (b *OSSBlobService) UploadSignaturePNG(ctx context.Context, dir, dataURL string) (string, error) {
	if !strings.HasPrefix(dataURL, "data:image") {
		return "", fmt.Errorf("oss: invalid signature data url")
	}
	idx := strings.Index(dataURL, "base64,")
	if idx < 0 {
		return "", fmt.Errorf("oss: signature is not base64 encoded")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len("base64,"):])
	if err != nil {
		return "", fmt.Errorf("oss: decode signature: %w", err)
	}
	return b.UploadBytes(ctx, dir, "signature.png", raw, "image/png")
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := b.keyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	return b.bucket.DeleteObject(key)
}

// DeleteManyByPublicURL deletes best-effort; failures are collected, never
// abort the batch.
func (b *OSSBlobService) DeleteManyByPublicURL(ctx context.Context, publicURLs []string) ([]string, map[string]error) {
	deleted := make([]string, 0, len(publicURLs))
	failed := map[string]error{}
	for _, u := range publicURLs {
		if strings.TrimSpace(u) == "" {
			continue
		}
		if err := b.DeleteByPublicURL(ctx, u); err != nil {
			log.Printf("[OSS] delete %s failed: %v", u, err)
			failed[u] = err
			continue
		}
		deleted = append(deleted, u)
	}
	return deleted, failed
}

/* =======================================================================
   Noop implementation, used when OSS env is absent (local development)
======================================================================= */

type NoopBlobService struct{}

func (NoopBlobService) UploadBytes(ctx context.Context, dir, filename string, data []byte, contentType string) (string, error) {
	return "https://blob.invalid/" + objectKey(dir, filename), nil
}

func (NoopBlobService) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	return "https://blob.invalid/" + objectKey(dir, fh.Filename), nil
}

func (NoopBlobService) UploadSignaturePNG(ctx context.Context, dir, dataURL string) (string, error) {
	return "https://blob.invalid/" + objectKey(dir, "signature.png"), nil
}

func (NoopBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error { return nil }

func (NoopBlobService) DeleteManyByPublicURL(ctx context.Context, publicURLs []string) ([]string, map[string]error) {
	return publicURLs, nil
}

// NewFromEnvOrNoop picks the real OSS client when configured, otherwise a
// noop that fabricates URLs so the rest of the app keeps working locally.
func NewFromEnvOrNoop() BlobService {
	svc, err := NewBlobServiceFromEnv()
	if err != nil {
		log.Printf("[OSS] %v, falling back to noop blob store", err)
		return NoopBlobService{}
	}
	return svc
}
