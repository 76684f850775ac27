// Package backup produces consistent snapshots of a live database and
// ships them to local paths or S3 destinations.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/embercask/ember"
)

// Snapshot writes a consistent copy of the live database to destPath
// using VACUUM INTO, which runs inside its own implicit transaction and
// produces a compacted, openable database file.
func Snapshot(conn ember.SimpleConnection, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("backup: destination %q already exists", destPath)
	}
	return conn.BatchExecute("VACUUM INTO '" + strings.ReplaceAll(destPath, "'", "''") + "'")
}

// Write snapshots conn and copies the snapshot to dest, which is a local
// path, a file:// URL, or an s3://bucket/key URL. cfg may be nil for
// local destinations or ambient AWS credentials.
func Write(ctx context.Context, conn ember.SimpleConnection, dest string, cfg *S3Config) error {
	tmpDir, err := os.MkdirTemp("", "ember-backup-*")
	if err != nil {
		return fmt.Errorf("backup: creating staging dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	staged := filepath.Join(tmpDir, "snapshot.db")
	if err := Snapshot(conn, staged); err != nil {
		return err
	}

	src, err := os.Open(staged)
	if err != nil {
		return fmt.Errorf("backup: opening snapshot: %w", err)
	}
	defer src.Close()

	dst, err := openDestWriter(ctx, dest, cfg)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("backup: copying snapshot to %q: %w", dest, err)
	}
	return dst.Close()
}
