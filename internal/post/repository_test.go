package post

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postRows = []string{"id", "title", "content", "author_id", "created_at", "id", "username", "email"}

func TestRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)SELECT .+ FROM posts p JOIN users u ON u\.id = p\.author_id WHERE p\.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(postRows).
			AddRow(5, "Hi", "World", 1, created, 1, "alice", "alice@example.com"))

	repo := NewRepository(db)
	post, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, post)

	assert.Equal(t, int64(5), post.ID)
	assert.Equal(t, "Hi", post.Title)
	assert.Equal(t, int64(1), post.AuthorID)
	require.NotNil(t, post.Author)
	assert.Equal(t, "alice", post.Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByID_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT .+ WHERE p\.id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(postRows))

	repo := NewRepository(db)
	post, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestRepositoryUpdate_PassesPatchFields(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	title := "Hi2"
	mock.ExpectQuery(`UPDATE posts\s+SET title\s+= COALESCE\(\$2, title\)`).
		WithArgs(int64(5), "Hi2", nil).
		WillReturnRows(sqlmock.NewRows(postRows).
			AddRow(5, "Hi2", "World", 1, created, 1, "alice", "alice@example.com"))

	repo := NewRepository(db)
	post, err := repo.Update(context.Background(), 5, &UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, post)

	assert.Equal(t, "Hi2", post.Title)
	assert.Equal(t, "World", post.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDelete(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)

	deleted, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepositoryCountByAuthor(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM posts WHERE author_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewRepository(db)
	count, err := repo.CountByAuthor(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepositoryListByAuthor_OrdersNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`ORDER BY p\.created_at DESC, p\.id DESC\s+LIMIT \$2 OFFSET \$3`).
		WithArgs(int64(1), 10, 0).
		WillReturnRows(sqlmock.NewRows(postRows).
			AddRow(2, "Newer", "c", 1, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), 1, "alice", "alice@example.com").
			AddRow(1, "Older", "c", 1, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 1, "alice", "alice@example.com"))

	repo := NewRepository(db)
	posts, err := repo.ListByAuthor(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
