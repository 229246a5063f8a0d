package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditEntry is an immutable record of one administrative transition.
type AuditEntry struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ActorID    primitive.ObjectID `json:"actorId" bson:"actorId"`
	SubjectID  primitive.ObjectID `json:"subjectId" bson:"subjectId"`
	Action     string             `json:"action" bson:"action"`
	Reason     string             `json:"reason" bson:"reason"`
	FromStatus string             `json:"fromStatus" bson:"fromStatus"`
	ToStatus   string             `json:"toStatus" bson:"toStatus"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
}

// AuditRepository is append-only: there is no update or delete.
type AuditRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error
	ListBySubject(ctx context.Context, subjectID primitive.ObjectID, limit int) ([]AuditEntry, error)
}
