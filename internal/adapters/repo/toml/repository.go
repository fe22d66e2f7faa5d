package toml

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/bnema/roombook-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName         = "config"
	configType         = "toml"
	sessionsPathKey    = "sessions.path"
	sessionsFileMode   = 0o600
	sessionsDirMode    = 0o700
	sessionsConfigDir  = ".roombook"
	sessionsConfigFile = "sessions.toml"
	tempFilePattern    = ".sessions-*.toml.tmp"
)

// Repository is the local ledger of booking sessions, keyed by partner order id.
type Repository struct {
	sessionsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, sessionsConfigDir, sessionsConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, sessionsConfigDir))
	cfg.SetDefault(sessionsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	sessionsPath := cfg.GetString(sessionsPathKey)
	if sessionsPath == "" {
		return nil, errors.New("sessions path is empty")
	}
	sessionsPath, err = normalizePath(sessionsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sessionsPath: sessionsPath, mu: lockForPath(sessionsPath)}, nil
}

func (r *Repository) Path() string {
	return r.sessionsPath
}

// Save upserts the snapshot. An entry stored under an id the snapshot has since
// retired is replaced rather than duplicated.
func (r *Repository) Save(ctx context.Context, snapshot domain.SessionSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot.OrderID == "" {
		return domain.ErrEmptyOrderID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toSchema(snapshot)
	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].OrderID == encoded.OrderID || slices.Contains(encoded.RetiredOrderIDs, file.Sessions[i].OrderID) {
			file.Sessions[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Sessions = append(file.Sessions, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

// GetByOrderID also finds sessions by an order id the supplier has since replaced.
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (domain.SessionSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionSnapshot{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.SessionSnapshot{}, err
	}

	for _, entry := range file.Sessions {
		if entry.OrderID == orderID || slices.Contains(entry.RetiredOrderIDs, orderID) {
			return fromSchema(entry), nil
		}
	}

	return domain.SessionSnapshot{}, domain.ErrSessionNotFound
}

// List returns the most recently updated sessions first.
func (r *Repository) List(ctx context.Context) ([]domain.SessionSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.SessionSnapshot, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		sessions = append(sessions, fromSchema(entry))
	}
	slices.SortStableFunc(sessions, func(a, b domain.SessionSnapshot) int {
		return cmp.Compare(b.UpdatedAt.Unix(), a.UpdatedAt.Unix())
	})

	return sessions, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.sessionsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read sessions file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode sessions file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve sessions path: %w", err)
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

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sessionsPath), sessionsDirMode); err != nil {
		return fmt.Errorf("create sessions directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode sessions file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp sessions file: %w", err)
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
		return fmt.Errorf("write temp sessions file: %w", err)
	}

	if err := tempFile.Chmod(sessionsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp sessions file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp sessions file: %w", err)
	}

	if err := os.Rename(tempName, r.sessionsPath); err != nil {
		return fmt.Errorf("replace sessions file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.sessionsPath, sessionsFileMode); err != nil {
		return fmt.Errorf("chmod sessions file: %w", err)
	}

	return nil
}

func toSchema(snapshot domain.SessionSnapshot) sessionSchema {
	encoded := sessionSchema{
		OrderID:         snapshot.OrderID,
		RetiredOrderIDs: snapshot.RetiredOrderIDs,
		BookHash:        snapshot.BookHash,
		ItemID:          snapshot.ItemID,
		Phase:           string(snapshot.Phase),
		CreatedAt:       formatTime(snapshot.CreatedAt),
		UpdatedAt:       formatTime(snapshot.UpdatedAt),
	}
	if snapshot.PaymentType != nil {
		encoded.Payment = &paymentSchema{
			Kind:                   snapshot.PaymentType.Kind,
			Amount:                 snapshot.PaymentType.Amount,
			CurrencyCode:           snapshot.PaymentType.CurrencyCode,
			FreeCancellationBefore: formatTime(snapshot.PaymentType.CancellationPolicy.FreeCancellationBefore),
		}
	}

	return encoded
}

func fromSchema(entry sessionSchema) domain.SessionSnapshot {
	snapshot := domain.SessionSnapshot{
		OrderID:         entry.OrderID,
		RetiredOrderIDs: entry.RetiredOrderIDs,
		BookHash:        entry.BookHash,
		ItemID:          entry.ItemID,
		Phase:           domain.Phase(entry.Phase),
		CreatedAt:       parseTime(entry.CreatedAt),
		UpdatedAt:       parseTime(entry.UpdatedAt),
	}
	if entry.Payment != nil {
		snapshot.PaymentType = &domain.PaymentType{
			Kind:         entry.Payment.Kind,
			Amount:       entry.Payment.Amount,
			CurrencyCode: entry.Payment.CurrencyCode,
			CancellationPolicy: domain.CancellationPolicy{
				FreeCancellationBefore: parseTime(entry.Payment.FreeCancellationBefore),
			},
		}
	}

	return snapshot
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
