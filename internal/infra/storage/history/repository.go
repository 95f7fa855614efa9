package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	"github.com/m04kA/SMC-VenueMonitor/pkg/psqlbuilder"
)

const tableName = "slot_notifications"

const schema = `CREATE TABLE IF NOT EXISTS slot_notifications (
	id            BIGSERIAL PRIMARY KEY,
	venue_id      TEXT NOT NULL,
	venue_name    TEXT NOT NULL,
	booking_date  TEXT NOT NULL,
	field_id      TEXT NOT NULL,
	field_name    TEXT NOT NULL,
	time_range    TEXT NOT NULL,
	start_minutes INTEGER NOT NULL,
	end_minutes   INTEGER NOT NULL,
	price         NUMERIC(12, 2) NOT NULL,
	status        TEXT NOT NULL,
	record_id     TEXT,
	raw_data      JSONB NOT NULL,
	notified_at   TIMESTAMPTZ NOT NULL
)`

// Repository журнал найденных и отправленных слотов.
// Только для аудита: монитор никогда не читает его для принятия решений.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// EnsureSchema создает таблицу журнала, если ее нет
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: EnsureSchema: %v", ErrExecQuery, err)
	}
	return nil
}

// SaveNotified записывает слоты, о которых было отправлено уведомление
func (r *Repository) SaveNotified(ctx context.Context, venue domain.Venue, date string, slots []domain.AvailableSlot, notifiedAt time.Time) error {
	if len(slots) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert(tableName).
		Columns(
			"venue_id",
			"venue_name",
			"booking_date",
			"field_id",
			"field_name",
			"time_range",
			"start_minutes",
			"end_minutes",
			"price",
			"status",
			"record_id",
			"raw_data",
			"notified_at",
		)

	for _, slot := range slots {
		raw, err := json.Marshal(slot.RawData)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncode, err)
		}

		builder = builder.Values(
			venue.ID,
			venue.DisplayName(),
			date,
			slot.FieldID,
			slot.FieldName,
			slot.Time,
			slot.StartMinutes,
			slot.EndMinutes,
			slot.Price,
			string(slot.Status),
			slot.RecordID,
			string(raw),
			notifiedAt,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveNotified - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveNotified - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListRecent возвращает последние записи журнала, новые первыми
func (r *Repository) ListRecent(ctx context.Context, limit uint64) ([]Record, error) {
	query, args, err := buildListRecentQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecent - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			rec      Record
			recordID sql.NullString
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.VenueID,
			&rec.VenueName,
			&rec.Date,
			&rec.FieldID,
			&rec.FieldName,
			&rec.TimeRange,
			&rec.StartMinutes,
			&rec.EndMinutes,
			&rec.Price,
			&rec.Status,
			&recordID,
			&rec.NotifiedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListRecent: %v", ErrScanRow, err)
		}
		if recordID.Valid {
			rec.RecordID = &recordID.String
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRecent - iterate rows: %v", ErrScanRow, err)
	}

	return records, nil
}

func buildListRecentQuery(limit uint64) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"venue_id",
		"venue_name",
		"booking_date",
		"field_id",
		"field_name",
		"time_range",
		"start_minutes",
		"end_minutes",
		"price",
		"status",
		"record_id",
		"notified_at",
	).
		From(tableName).
		OrderBy("notified_at DESC", "id DESC").
		Limit(limit).
		ToSql()
}
