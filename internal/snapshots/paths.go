package snapshots

import (
	"fmt"
	"path/filepath"
)

// GameSnapshotPath builds the on-disk path for one date's slate.
func GameSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, "games", fmt.Sprintf("%s.json", date))
}
