// Package repo – law store bootstrap.
//
// The article database ships as a single SQLite file built offline. On hosts
// with ephemeral disks the file may be absent at startup; EnsureLawDB fetches
// it once from a configured URL before the service accepts requests. Serving
// with an empty store is not allowed: a missing store that cannot be
// provisioned fails startup.
package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// DefaultMinDBBytes is the plausibility threshold below which a store file is
// treated as absent (a truncated download or an empty placeholder).
const DefaultMinDBBytes int64 = 1 << 20

// fileOK reports whether path exists and is at least minBytes long.
func fileOK(path string, minBytes int64) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Size() >= minBytes
}

// EnsureLawDB guarantees a plausible store file at path before startup
// completes. When the file is missing or implausibly small it is downloaded
// from url (redirects followed); an empty url with no usable file is a fatal
// configuration error.
func EnsureLawDB(ctx context.Context, path, url string, minBytes int64) error {
	if minBytes <= 0 {
		minBytes = DefaultMinDBBytes
	}

	if fileOK(path, minBytes) {
		log.Info().Str("path", path).Msg("law db present")
		return nil
	}

	if url == "" {
		return errors.New("law db missing and LAW_DB_URL not set")
	}

	log.Info().Str("path", path).Str("url", url).Msg("downloading law db")
	if err := download(ctx, url, path); err != nil {
		return fmt.Errorf("law db download: %w", err)
	}

	if !fileOK(path, minBytes) {
		return fmt.Errorf("downloaded law db smaller than %d bytes", minBytes)
	}
	return nil
}

// download fetches url into path via a temp file + rename so a partial
// download never masquerades as a valid store.
func download(ctx context.Context, url, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".lawdb-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
