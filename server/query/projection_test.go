package query

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// toPositional rewrites gorm-style ? placeholders into the $1..$n form the
// postgres dialector sends over the wire.
func toPositional(sql string) string {
	var b strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestPostListSQLExecutes(t *testing.T) {
	db, mock := newMockDB(t)

	frags := []Fragment{{SQL: "p.location_id = ?", Args: []interface{}{int32(5)}}}
	sql, args := BuildPostListSQL(frags, Pagination{Limit: 20, Offset: 0})

	mock.ExpectQuery(regexp.QuoteMeta(toPositional(sql))).
		WithArgs(5, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "content", "media_url", "author_id", "location_id",
			"created_at", "updated_at", "author", "location", "tags", "official_response",
		}))

	var rows []PostRow
	require.NoError(t, db.Raw(sql, args...).Scan(&rows).Error)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationListSQLExecutes(t *testing.T) {
	db, mock := newMockDB(t)

	frags := []Fragment{{SQL: "l.status = ?", Args: []interface{}{"VERIFIED"}}}
	sql, args := BuildLocationListSQL(frags, Pagination{Limit: 50, Offset: 100})

	mock.ExpectQuery(regexp.QuoteMeta(toPositional(sql))).
		WithArgs("VERIFIED", 50, 100).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "address", "status", "claimed_by_owner_id",
			"created_at", "updated_at", "coordinates", "post_count", "recent_posts",
		}))

	var rows []LocationRow
	require.NoError(t, db.Raw(sql, args...).Scan(&rows).Error)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
