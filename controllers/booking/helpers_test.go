package booking

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

// staffQuery is the filter every staff lookup must carry: the id alone is
// never enough, the row must belong to the tenant and still be active.
var staffQuery = regexp.QuoteMeta(`SELECT * FROM "staff" WHERE id = $1 AND tenant_id = $2 AND active = $3`)

func TestLoadActiveStaffReturnsTenantMember(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "active"}).
		AddRow("staff-1", "tenant-1", "Ana", true)
	mock.ExpectQuery(staffQuery).WillReturnRows(rows)

	member, err := loadActiveStaff(db, "tenant-1", "staff-1")
	require.NoError(t, err)
	assert.Equal(t, "staff-1", member.ID)
	assert.Equal(t, "tenant-1", member.TenantID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadActiveStaffRejectsForeignOrInactiveStaff(t *testing.T) {
	db, mock := newMockDB(t)

	// A staff id from another tenant (or a deactivated member) matches no
	// row under the tenant+active filter.
	mock.ExpectQuery(staffQuery).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	member, err := loadActiveStaff(db, "tenant-1", "staff-of-other-tenant")
	assert.Nil(t, member)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
