package scheduler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"residence/server/internal/filestore"
)

const backupPrefix = "data-"

// BackupJob copies the content file into dir and keeps the newest keep copies
func BackupJob(content *filestore.ContentFile, dir string, keep int, logger *logrus.Logger) Job {
	return Job{
		Name: "content-backup",
		Run: func() error {
			data, found, err := content.Load()
			if err != nil {
				return fmt.Errorf("failed to read content: %w", err)
			}
			if !found {
				return nil
			}

			name := backupPrefix + time.Now().UTC().Format("20060102T150405.000") + ".json"
			if err := filestore.NewDocument(filepath.Join(dir, name)).Save(data); err != nil {
				return err
			}
			logger.WithField("backup", name).Info("Content backup written")

			return prune(dir, keep)
		},
	}
}

// prune removes the oldest backups beyond keep. Names sort by time.
func prune(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), backupPrefix) && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for len(names) > keep {
		if err := os.Remove(filepath.Join(dir, names[0])); err != nil {
			return fmt.Errorf("failed to remove old backup: %w", err)
		}
		names = names[1:]
	}
	return nil
}
