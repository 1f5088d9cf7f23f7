package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	HistoryPathKey = "history.path"
	HistoryKeepKey = "history.keep"

	DefaultHistoryKeep = 50

	historyFileMode = 0o600
	historyDirMode  = 0o700
	historyStateDir = "eurenew"
	historyFileName = "runs.toml"
	tempFilePattern = ".runs-*.toml.tmp"
)

// Repository stores run reports in a single TOML file, newest first, keeping
// at most keep entries.
type Repository struct {
	path string
	keep int
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.RunHistoryRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	defaultPath, err := defaultHistoryPath()
	if err != nil {
		return nil, err
	}
	cfg.SetDefault(HistoryPathKey, defaultPath)
	cfg.SetDefault(HistoryKeepKey, DefaultHistoryKeep)

	path := cfg.GetString(HistoryPathKey)
	if path == "" {
		return nil, errors.New("history path is empty")
	}
	path, err = normalizePath(path)
	if err != nil {
		return nil, err
	}

	keep := cfg.GetInt(HistoryKeepKey)
	if keep <= 0 {
		keep = DefaultHistoryKeep
	}

	return &Repository{path: path, keep: keep, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Save(ctx context.Context, report domain.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(report)
	runs := make([]runSchema, 0, len(file.Runs)+1)
	runs = append(runs, encoded)
	for _, existing := range file.Runs {
		if existing.ID != encoded.ID {
			runs = append(runs, existing)
		}
	}
	sortNewestFirst(runs)
	if len(runs) > r.keep {
		runs = runs[:r.keep]
	}
	file.Runs = runs

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) List(ctx context.Context) ([]domain.RunReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(file.Runs)

	reports := make([]domain.RunReport, 0, len(file.Runs))
	for _, entry := range file.Runs {
		report, err := fromSchema(entry)
		if err != nil {
			return nil, fmt.Errorf("decode run %q: %w", entry.ID, err)
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read history file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), historyDirMode); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
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
		return fmt.Errorf("write temp history file: %w", err)
	}

	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	cleanup = false
	return nil
}

func sortNewestFirst(runs []runSchema) {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
}

func defaultHistoryPath() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, historyStateDir, historyFileName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "state", historyStateDir, historyFileName), nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve history path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

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
