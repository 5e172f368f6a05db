package repositories

import (
	"context"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"spareparts-app/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

type fakeBlobStore struct {
	deletes   []string
	deleteErr error
}

func (f *fakeBlobStore) Put(context.Context, string, io.Reader, int64, string) error { return nil }

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return f.deleteErr
}

func (f *fakeBlobStore) PublicPath(key string) string { return "/uploads/" + key }

func TestDeleteWithImage(t *testing.T) {
	db, mock := newMockDB(t)
	blobs := &fakeBlobStore{}
	repo := NewSparePartRepository(db, blobs)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `spare_parts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	part := &models.SparePart{ID: "p1", Image: "img.jpg"}
	require.NoError(t, repo.DeleteWithImage(context.Background(), part))

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []string{"img.jpg"}, blobs.deletes)
}

func TestDeleteWithImageSkipsBlobWhenNoImage(t *testing.T) {
	db, mock := newMockDB(t)
	blobs := &fakeBlobStore{}
	repo := NewSparePartRepository(db, blobs)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `spare_parts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	part := &models.SparePart{ID: "p1"}
	require.NoError(t, repo.DeleteWithImage(context.Background(), part))

	assert.Empty(t, blobs.deletes)
}

func TestDeleteWithImageBlobFailureIsNotFatal(t *testing.T) {
	db, mock := newMockDB(t)
	blobs := &fakeBlobStore{deleteErr: assert.AnError}
	repo := NewSparePartRepository(db, blobs)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `spare_parts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	part := &models.SparePart{ID: "p1", Image: "img.jpg"}
	assert.NoError(t, repo.DeleteWithImage(context.Background(), part))
}

func TestDeleteUserCascade(t *testing.T) {
	db, mock := newMockDB(t)
	blobs := &fakeBlobStore{}
	repo := NewSparePartRepository(db, blobs)

	mock.ExpectQuery("SELECT (.+) FROM `spare_parts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "image"}).
			AddRow("p1", "u1", "one.jpg").
			AddRow("p2", "u1", "").
			AddRow("p3", "u1", "three.jpg"))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `spare_parts`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteUserCascade(context.Background(), "u1"))

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []string{"one.jpg", "three.jpg"}, blobs.deletes)
}

func TestDeleteUserCascadeRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	blobs := &fakeBlobStore{}
	repo := NewSparePartRepository(db, blobs)

	mock.ExpectQuery("SELECT (.+) FROM `spare_parts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "image"}).
			AddRow("p1", "u1", "one.jpg"))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `spare_parts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `users`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.DeleteUserCascade(context.Background(), "u1")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
	// A failed cascade must not remove blobs
	assert.Empty(t, blobs.deletes)
}

func TestFindByOwnerOrdering(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSparePartRepository(db, &fakeBlobStore{})

	mock.ExpectQuery("SELECT (.+) FROM `spare_parts`(.+)ORDER BY created_at DESC").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).
			AddRow("p2", "u1").
			AddRow("p1", "u1"))

	parts, err := repo.FindByOwner("u1")
	require.NoError(t, err)
	assert.Len(t, parts, 2)
	assert.Equal(t, "p2", parts[0].ID)
}
