package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"seventyFiveHardAPI/internal/types/day"
	"seventyFiveHardAPI/internal/types/notification"
	"seventyFiveHardAPI/internal/types/photo"
	"seventyFiveHardAPI/internal/types/user"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const userCols = `id, clerk_id, email, name, age, height, weight, fitness_goal,
	current_challenge_day, challenge_start_date, challenge_status,
	total_resets, completed_challenges, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Name,
		&u.Age,
		&u.Height,
		&u.Weight,
		&u.FitnessGoal,
		&u.CurrentChallengeDay,
		&u.ChallengeStartDate,
		&u.ChallengeStatus,
		&u.TotalResets,
		&u.CompletedChallenges,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *user.User) error {
	query := `
	INSERT INTO users (id, clerk_id, email, name, challenge_status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.Exec(ctx, query,
		u.ID, u.ClerkID, u.Email, u.Name, u.ChallengeStatus, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	query := `SELECT ` + userCols + ` FROM users WHERE clerk_id = $1`
	u, err := scanUser(s.db.QueryRow(ctx, query, clerkID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) UpdateUserProfile(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	query := `
	UPDATE users SET
		name = COALESCE($2, name),
		age = COALESCE($3, age),
		height = COALESCE($4, height),
		weight = COALESCE($5, weight),
		fitness_goal = COALESCE($6, fitness_goal),
		updated_at = NOW()
	WHERE clerk_id = $1
	RETURNING ` + userCols
	u, err := scanUser(s.db.QueryRow(ctx, query, clerkID,
		req.Name, req.Age, req.Height, req.Weight, req.FitnessGoal))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) DeleteUserByClerkID(ctx context.Context, clerkID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) StartChallenge(ctx context.Context, userID uuid.UUID, startedAt time.Time) (*user.User, error) {
	query := `
	UPDATE users SET
		challenge_status = 'active',
		current_challenge_day = 1,
		challenge_start_date = $2,
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + userCols
	u, err := scanUser(s.db.QueryRow(ctx, query, userID, startedAt))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to start challenge: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) ResetChallenge(ctx context.Context, userID uuid.UUID, startedAt time.Time) (*user.User, error) {
	query := `
	UPDATE users SET
		challenge_status = 'active',
		current_challenge_day = 1,
		challenge_start_date = $2,
		total_resets = total_resets + 1,
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + userCols
	u, err := scanUser(s.db.QueryRow(ctx, query, userID, startedAt))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to reset challenge: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) CompleteChallenge(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	query := `
	UPDATE users SET
		challenge_status = 'completed',
		completed_challenges = completed_challenges + 1,
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + userCols
	u, err := scanUser(s.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to complete challenge: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) AdvanceDay(ctx context.Context, userID uuid.UUID, fromDay int) error {
	query := `
	UPDATE users SET
		current_challenge_day = current_challenge_day + 1,
		updated_at = NOW()
	WHERE id = $1 AND current_challenge_day = $2
	`
	tag, err := s.db.Exec(ctx, query, userID, fromDay)
	if err != nil {
		return fmt.Errorf("failed to advance day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const dayCols = `id, user_id, day_number, date, tasks, all_tasks_completed,
	day_completed, completed_at, general_notes, created_at, updated_at`

func scanDay(row pgx.Row) (*day.Record, error) {
	rec := &day.Record{}
	var tasksJSON []byte
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.DayNumber,
		&rec.Date,
		&tasksJSON,
		&rec.AllTasksCompleted,
		&rec.DayCompleted,
		&rec.CompletedAt,
		&rec.GeneralNotes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(tasksJSON, &rec.Tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) GetDay(ctx context.Context, userID uuid.UUID, dayNumber int) (*day.Record, error) {
	query := `SELECT ` + dayCols + ` FROM challenge_days WHERE user_id = $1 AND day_number = $2`
	rec, err := scanDay(s.db.QueryRow(ctx, query, userID, dayNumber))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get day %d: %w", dayNumber, err)
	}
	return rec, nil
}

func (s *PostgresStore) InsertDay(ctx context.Context, rec *day.Record) error {
	tasksJSON, err := json.Marshal(rec.Tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	query := `
	INSERT INTO challenge_days
		(id, user_id, day_number, date, tasks, all_tasks_completed, day_completed, completed_at, general_notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.Exec(ctx, query,
		rec.ID, rec.UserID, rec.DayNumber, rec.Date, tasksJSON,
		rec.AllTasksCompleted, rec.DayCompleted, rec.CompletedAt,
		rec.GeneralNotes, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert day %d: %w", rec.DayNumber, err)
	}
	return nil
}

func (s *PostgresStore) ReplaceDay(ctx context.Context, rec *day.Record) error {
	tasksJSON, err := json.Marshal(rec.Tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	query := `
	UPDATE challenge_days SET
		date = $3,
		tasks = $4,
		all_tasks_completed = $5,
		day_completed = $6,
		completed_at = $7,
		general_notes = $8,
		updated_at = NOW()
	WHERE user_id = $1 AND day_number = $2
	`
	tag, err := s.db.Exec(ctx, query,
		rec.UserID, rec.DayNumber, rec.Date, tasksJSON,
		rec.AllTasksCompleted, rec.DayCompleted, rec.CompletedAt, rec.GeneralNotes)
	if err != nil {
		return fmt.Errorf("failed to replace day %d: %w", rec.DayNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) UpdateDayTasks(ctx context.Context, userID uuid.UUID, dayNumber int, tasks day.Tasks, allCompleted bool) (*day.Record, error) {
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	// day_completed = FALSE in the predicate keeps completed records
	// immutable even if a racing request slipped past the service check.
	query := `
	UPDATE challenge_days SET
		tasks = $3,
		all_tasks_completed = $4,
		updated_at = NOW()
	WHERE user_id = $1 AND day_number = $2 AND day_completed = FALSE
	RETURNING ` + dayCols
	rec, err := scanDay(s.db.QueryRow(ctx, query, userID, dayNumber, tasksJSON, allCompleted))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tasks for day %d: %w", dayNumber, err)
	}
	return rec, nil
}

func (s *PostgresStore) MarkDayCompleted(ctx context.Context, userID uuid.UUID, dayNumber int, completedAt time.Time) (*day.Record, error) {
	query := `
	UPDATE challenge_days SET
		day_completed = TRUE,
		completed_at = $3,
		updated_at = NOW()
	WHERE user_id = $1 AND day_number = $2 AND day_completed = FALSE
	RETURNING ` + dayCols
	rec, err := scanDay(s.db.QueryRow(ctx, query, userID, dayNumber, completedAt))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark day %d completed: %w", dayNumber, err)
	}
	return rec, nil
}

func (s *PostgresStore) ListDays(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*day.Record, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM challenge_days WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count days: %w", err)
	}

	query := `
	SELECT ` + dayCols + `
	FROM challenge_days
	WHERE user_id = $1
	ORDER BY day_number ASC
	LIMIT $2 OFFSET $3
	`
	rows, err := s.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list days: %w", err)
	}
	defer rows.Close()

	records := []*day.Record{}
	for rows.Next() {
		rec, err := scanDay(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan day: %w", err)
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

func (s *PostgresStore) ListAllDays(ctx context.Context, userID uuid.UUID) ([]*day.Record, error) {
	query := `
	SELECT ` + dayCols + `
	FROM challenge_days
	WHERE user_id = $1
	ORDER BY day_number ASC
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	defer rows.Close()

	records := []*day.Record{}
	for rows.Next() {
		rec, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

const photoCols = `id, user_id, day_number, image_url, storage_key, upload_date, notes, created_at, updated_at`

func scanPhoto(row pgx.Row) (*photo.Photo, error) {
	p := &photo.Photo{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.DayNumber,
		&p.ImageURL,
		&p.StorageKey,
		&p.UploadDate,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) GetPhoto(ctx context.Context, photoID, userID uuid.UUID) (*photo.Photo, error) {
	query := `SELECT ` + photoCols + ` FROM progress_photos WHERE id = $1 AND user_id = $2`
	p, err := scanPhoto(s.db.QueryRow(ctx, query, photoID, userID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) GetPhotoByDay(ctx context.Context, userID uuid.UUID, dayNumber int) (*photo.Photo, error) {
	query := `SELECT ` + photoCols + ` FROM progress_photos WHERE user_id = $1 AND day_number = $2`
	p, err := scanPhoto(s.db.QueryRow(ctx, query, userID, dayNumber))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get photo for day %d: %w", dayNumber, err)
	}
	return p, nil
}

func (s *PostgresStore) SavePhoto(ctx context.Context, p *photo.Photo) error {
	query := `
	INSERT INTO progress_photos
		(id, user_id, day_number, image_url, storage_key, upload_date, notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (user_id, day_number) DO UPDATE SET
		image_url = EXCLUDED.image_url,
		storage_key = EXCLUDED.storage_key,
		upload_date = EXCLUDED.upload_date,
		notes = EXCLUDED.notes,
		updated_at = NOW()
	`
	_, err := s.db.Exec(ctx, query,
		p.ID, p.UserID, p.DayNumber, p.ImageURL, p.StorageKey,
		p.UploadDate, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save photo: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeletePhoto(ctx context.Context, photoID, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM progress_photos WHERE id = $1 AND user_id = $2`, photoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListPhotos(ctx context.Context, userID uuid.UUID) ([]*photo.Photo, error) {
	query := `SELECT ` + photoCols + ` FROM progress_photos WHERE user_id = $1 ORDER BY day_number ASC`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	photos := []*photo.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (s *PostgresStore) RegisterDevice(ctx context.Context, t *notification.DeviceToken) error {
	query := `
	INSERT INTO device_tokens (id, user_id, token, platform, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (user_id, token) DO UPDATE SET platform = EXCLUDED.platform
	`
	_, err := s.db.Exec(ctx, query, t.ID, t.UserID, t.Token, t.Platform, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListDeviceTokens(ctx context.Context, userID uuid.UUID) ([]*notification.DeviceToken, error) {
	query := `SELECT id, user_id, token, platform, created_at FROM device_tokens WHERE user_id = $1`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	defer rows.Close()

	tokens := []*notification.DeviceToken{}
	for rows.Next() {
		t := &notification.DeviceToken{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.Platform, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
