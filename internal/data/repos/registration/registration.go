package registration

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/samjsmart/gig-int-garden-api/internal/domain"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/logger"
)

// ErrVersionConflict is returned when a conditional update finds the
// stored record at a different version than the caller read. The read
// is stale; the caller re-reads and retries or gives up.
var ErrVersionConflict = errors.New("registration version conflict")

type RegistrationRepo interface {
	Get(ctx context.Context, tx *gorm.DB, email string) (*domain.Registration, error)
	Create(ctx context.Context, tx *gorm.DB, reg *domain.Registration) error
	Update(ctx context.Context, tx *gorm.DB, email string, version int, values domain.SubmissionValues, entry domain.HistoryEntry) error
}

type registrationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRegistrationRepo(db *gorm.DB, baseLog *logger.Logger) RegistrationRepo {
	repoLog := baseLog.With("repo", "RegistrationRepo")
	return &registrationRepo{db: db, log: repoLog}
}

// Get returns (nil, nil) when no record exists for email.
func (rr *registrationRepo) Get(ctx context.Context, tx *gorm.DB, email string) (*domain.Registration, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var reg domain.Registration
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

func (rr *registrationRepo) Create(ctx context.Context, tx *gorm.DB, reg *domain.Registration) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).Create(reg).Error
}

// Update overwrites every tracked field and appends exactly one history
// entry in a single UPDATE statement, guarded by the version the caller
// read. Field overwrite and history append are one statement, so no
// intermediate state is observable. The caller supplies the appended
// entry; the history column is rewritten as prior entries + entry.
func (rr *registrationRepo) Update(ctx context.Context, tx *gorm.DB, email string, version int, values domain.SubmissionValues, entry domain.HistoryEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		var stored domain.Registration
		if err := inner.
			Where("email = ? AND version = ?", email, version).
			First(&stored).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVersionConflict
			}
			return err
		}

		entries, err := stored.HistoryEntries()
		if err != nil {
			return err
		}
		history, err := domain.EncodeHistory(append(entries, entry))
		if err != nil {
			return err
		}

		result := inner.
			Model(&domain.Registration{}).
			Where("email = ? AND version = ?", email, version).
			Updates(map[string]any{
				"name":          values.Name,
				"adults":        values.Adults,
				"children":      values.Children,
				"anything_else": values.AnythingElse,
				"bell_tent":     values.BellTent,
				"david_mascot":  values.DavidMascot,
				"history":       history,
				"version":       version + 1,
				"updated_at":    time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return nil
	})
}
