package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// startDailyBackupAtFixedTime copies the receipt uploads daily at a fixed
// hour and removes backups older than retention.
func startDailyBackupAtFixedTime(ctx context.Context, log *zap.Logger, srcDir, backupDir string, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := nextRun(now, hour, min)
		log.Info("next upload backup scheduled", zap.Time("at", next))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		destDir := filepath.Join(backupDir, time.Now().Format("2006-01-02_15-04-05"))
		if n, err := backupReceipts(srcDir, destDir); err != nil {
			log.Error("receipt backup failed", zap.Int("copied", n), zap.Error(err))
		} else {
			log.Info("receipts backed up", zap.String("dest", destDir), zap.Int("files", n))
		}

		cleanupOldBackups(log, backupDir, retention, time.Now())
	}
}

func nextRun(now time.Time, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// backupReceipts mirrors the regular files under srcDir into destDir,
// keeping their relative paths and modification times. A missing srcDir
// means nothing has been uploaded yet and is not an error.
func backupReceipts(srcDir, destDir string) (int, error) {
	if _, err := os.Stat(srcDir); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}

	copied := 0
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if err := copyReceipt(path, filepath.Join(destDir, rel)); err != nil {
			return fmt.Errorf("back up %s: %w", rel, err)
		}
		copied++
		return nil
	})
	return copied, err
}

func copyReceipt(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}

// cleanupOldBackups removes backup folders last modified before now-retention.
func cleanupOldBackups(log *zap.Logger, backupDir string, retention time.Duration, now time.Time) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		log.Warn("reading backup directory failed", zap.Error(err))
		return
	}

	cutoff := now.Add(-retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folderPath := filepath.Join(backupDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(folderPath); err != nil {
				log.Error("removing old backup failed", zap.String("path", folderPath), zap.Error(err))
			} else {
				log.Info("removed old backup", zap.String("path", folderPath))
			}
		}
	}
}
