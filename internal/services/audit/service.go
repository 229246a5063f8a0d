package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// Service writes and reads the administrative audit trail.
type Service interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
	History(ctx context.Context, subjectID primitive.ObjectID, limit int) ([]domain.AuditEntry, error)
}

type service struct {
	repo domain.AuditRepository
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewService(repo domain.AuditRepository, log logrus.FieldLogger) Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{repo: repo, log: log, now: time.Now}
}

// Record appends one entry. Call it with the transaction context so the entry
// commits or rolls back with the state change it describes.
func (s *service) Record(ctx context.Context, entry domain.AuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	if err := s.repo.Append(ctx, &entry); err != nil {
		s.log.WithFields(logrus.Fields{
			"subject_id": entry.SubjectID.Hex(),
			"action":     entry.Action,
		}).WithError(err).Error("failed to record audit entry")
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

func (s *service) History(ctx context.Context, subjectID primitive.ObjectID, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	entries, err := s.repo.ListBySubject(ctx, subjectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit history: %w", err)
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return entries, nil
}
