//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123", shared by every fixture user
const fixturePasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, display_name, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, fixturePasswordHash, role, "Fixture "+role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestPosting(t *testing.T, db DBLike, ownerID uuid.UUID, title, status string) uuid.UUID {
	t.Helper()

	postingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO postings (id, owner_id, title, description, status, microtasks, lock_version) VALUES ($1, $2, $3, '', $4, '[]'::jsonb, 0)",
		postingID, ownerID, title, status)
	require.NoError(t, err)

	return postingID
}

func CreateTestApplication(t *testing.T, db DBLike, postingID, applicantID uuid.UUID, status string) uuid.UUID {
	t.Helper()

	applicationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO applications (id, posting_id, applicant_id, cover_letter, status) VALUES ($1, $2, $3, '', $4)",
		applicationID, postingID, applicantID, status)
	require.NoError(t, err)

	return applicationID
}

func CreateTestNotification(t *testing.T, db DBLike, recipientID uuid.UUID, notifType, title string, read bool) uuid.UUID {
	t.Helper()

	notificationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO notifications (id, recipient_id, type, title, message, read) VALUES ($1, $2, $3, $4, '', $5)",
		notificationID, recipientID, notifType, title, read)
	require.NoError(t, err)

	return notificationID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
