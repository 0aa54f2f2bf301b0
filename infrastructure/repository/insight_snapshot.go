package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/finwise/finance-insights-api/infrastructure/database/postgres"
	"github.com/finwise/finance-insights-api/internal/domain"
)

const insightSnapshotsTable = "insight_snapshots s"

type InsightSnapshotRepository interface {
	SaveOrUpdate(snapshot *domain.InsightSnapshot) error
	GetLatestByUser(userID string) (*domain.InsightSnapshot, error)
}

type insightSnapshotRepository struct {
	conn *postgres.Connection
}

func NewInsightSnapshotRepository(conn *postgres.Connection) InsightSnapshotRepository {
	return &insightSnapshotRepository{
		conn: conn,
	}
}

// SaveOrUpdate grava o snapshot do usuário; um snapshot por usuário,
// substituído a cada execução do digest.
func (r *insightSnapshotRepository) SaveOrUpdate(snapshot *domain.InsightSnapshot) error {
	reportJSON, err := json.Marshal(snapshot.Report)
	if err != nil {
		return errors.Wrap(err, "serializing insight report")
	}

	upsertSQL, args, err := squirrel.
		Insert("insight_snapshots").
		Columns("id", "user_id", "generated_at", "report").
		Values(snapshot.ID, snapshot.UserID, snapshot.GeneratedAt, reportJSON).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET generated_at = EXCLUDED.generated_at, report = EXCLUDED.report").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(upsertSQL, args...); err != nil {
		return errors.Wrap(err, "upserting insight snapshot")
	}

	return nil
}

func (r *insightSnapshotRepository) GetLatestByUser(userID string) (*domain.InsightSnapshot, error) {
	selectSQL, args, err := squirrel.
		Select("s.id, s.user_id, s.generated_at, s.report").
		From(insightSnapshotsTable).
		Where(squirrel.Eq{"s.user_id": userID}).
		OrderBy("s.generated_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	snapshot := &domain.InsightSnapshot{}
	var reportJSON []byte

	if err := r.conn.QueryRow(selectSQL, args...).Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.GeneratedAt,
		&reportJSON,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "fetching insight snapshot")
	}

	if err := json.Unmarshal(reportJSON, &snapshot.Report); err != nil {
		return nil, errors.Wrap(err, "deserializing insight report")
	}

	return snapshot, nil
}
