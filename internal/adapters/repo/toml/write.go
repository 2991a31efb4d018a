package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gamezonia/gzone/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

const (
	configName    = "config"
	configType    = "toml"
	configDirName = ".gamezonia"

	tableFileMode   = 0o600
	tableDirMode    = 0o700
	tempFilePattern = ".table-*.toml.tmp"
)

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func normalizeTablePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve table path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

// writeTOMLFile commits the whole table atomically: encode, write to a temp
// file in the same directory, rename over the target. A failed write leaves
// the previous table intact.
func writeTOMLFile(path string, file any) error {
	if err := os.MkdirAll(filepath.Dir(path), tableDirMode); err != nil {
		return unavailable("create table directory", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return unavailable("encode table file", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return unavailable("create temp table file", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return unavailable("write temp table file", err)
	}

	if err := tempFile.Chmod(tableFileMode); err != nil {
		_ = tempFile.Close()
		return unavailable("chmod temp table file", err)
	}

	if err := tempFile.Close(); err != nil {
		return unavailable("close temp table file", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return unavailable("replace table file", err)
	}

	cleanup = false

	if err := os.Chmod(path, tableFileMode); err != nil {
		return unavailable("chmod table file", err)
	}

	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrStoreUnavailable, err))
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.ParseInLocation(domain.TimeLayout, raw, time.Local)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(domain.TimeLayout)
}

// parseMoney coerces malformed amounts to zero, matching the tolerance of
// the pricing policy toward bad numeric input.
func parseMoney(raw string) decimal.Decimal {
	parsed, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}

	return parsed
}

func formatMoney(value decimal.Decimal) string {
	return value.StringFixed(2)
}
