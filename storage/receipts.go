package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
)

var unsafeExt = regexp.MustCompile(`[^a-z0-9]`)

// DiskReceiptStore saves receipts under dir and serves them from
// publicBaseURL + "/uploads".
type DiskReceiptStore struct {
	dir           string
	publicBaseURL string
	now           func() time.Time
}

func NewDiskReceiptStore(dir, publicBaseURL string) *DiskReceiptStore {
	return &DiskReceiptStore{
		dir:           dir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// UploadReceipt writes the file as receipts/<orderID>_<epoch millis>.<ext>
// and returns its public URL.
func (s *DiskReceiptStore) UploadReceipt(ctx context.Context, orderID string, upload checkout.Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%d%s", orderID, s.now().UnixMilli(), receiptExt(upload))
	rel := path.Join("receipts", name)

	dir := filepath.Join(s.dir, "receipts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipt folder: %w", err)
	}

	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create receipt file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, upload.Body); err != nil {
		return "", fmt.Errorf("write receipt file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return "", fmt.Errorf("sync receipt file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", s.publicBaseURL, rel), nil
}

func receiptExt(upload checkout.Upload) string {
	ext := unsafeExt.ReplaceAllString(strings.ToLower(strings.TrimPrefix(filepath.Ext(upload.Filename), ".")), "")
	if ext != "" {
		return "." + ext
	}
	if upload.ContentType != "" {
		if exts, err := mime.ExtensionsByType(upload.ContentType); err == nil && len(exts) > 0 {
			return exts[0]
		}
	}
	return ""
}
