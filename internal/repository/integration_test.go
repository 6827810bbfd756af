//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/dmc103/backend-pawstagram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testDB connects to the database named by DATABASE_URL, migrates a clean
// schema and returns the handle. Tests are skipped when no database is
// available.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping repository integration tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(
		&models.Like{}, &models.Comment{}, &models.Post{}, &models.Follow{}, &models.User{}))
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Follow{}, &models.Post{}, &models.Comment{}, &models.Like{}))

	return db
}

func seedUser(t *testing.T, repo UserRepository, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepositoryUniqueness(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "milo")

	dup := &models.User{Username: "milo", Email: "other@example.com", Password: "hash"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeConflict, appErr.Code)

	// Absent lookups return nil, nil rather than an error.
	u, err := repo.GetByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestFollowRepositoryEdgeLifecycle(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	milo := seedUser(t, users, "milo")
	luna := seedUser(t, users, "luna")

	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: milo.ID, FolloweeID: luna.ID}))

	// The unique index rejects a duplicate edge.
	err := follows.Create(ctx, &models.Follow{FollowerID: milo.ID, FolloweeID: luna.ID})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeConflict, appErr.Code)

	exists, err := follows.Exists(ctx, milo.ID, luna.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Direction matters.
	exists, err = follows.Exists(ctx, luna.ID, milo.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	followers, err := follows.Followers(ctx, luna.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, milo.ID, followers[0].ID)

	ids, err := follows.FollowingIDs(ctx, milo.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{luna.ID}, ids)

	require.NoError(t, follows.Delete(ctx, milo.ID, luna.ID))

	// Deleting a missing edge surfaces the precondition failure.
	err = follows.Delete(ctx, milo.ID, luna.ID)
	require.Error(t, err)
}

func TestFollowCountsComputed(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	milo := seedUser(t, users, "milo")
	luna := seedUser(t, users, "luna")
	rex := seedUser(t, users, "rex")

	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: milo.ID, FolloweeID: luna.ID}))
	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: rex.ID, FolloweeID: luna.ID}))
	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: luna.ID, FolloweeID: milo.ID}))

	got, err := users.GetByID(ctx, luna.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.FollowersCount)
	assert.Equal(t, 1, got.FollowingCount)
}

func TestPostRepositoryLikesAndComments(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	milo := seedUser(t, users, "milo")
	luna := seedUser(t, users, "luna")

	post := &models.Post{UserID: milo.ID, Description: "hello"}
	require.NoError(t, posts.Create(ctx, post))

	// Likes are idempotent at the storage layer.
	require.NoError(t, posts.Like(ctx, luna.ID, post.ID))
	require.NoError(t, posts.Like(ctx, luna.ID, post.ID))

	got, err := posts.GetByID(ctx, post.ID, luna.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.True(t, got.Liked)

	// A different viewer sees the count but not the liked flag.
	got, err = posts.GetByID(ctx, post.ID, milo.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.False(t, got.Liked)

	require.NoError(t, comments.Create(ctx, &models.Comment{
		PostID: post.ID, UserID: luna.ID, AuthorName: "luna", Text: "first",
	}))
	require.NoError(t, comments.Create(ctx, &models.Comment{
		PostID: post.ID, UserID: milo.ID, AuthorName: "milo", Text: "second",
	}))

	list, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Text)

	got, err = posts.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)

	likers, err := posts.Likers(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, likers, 1)
	assert.Equal(t, luna.ID, likers[0].ID)
}

func TestUserDeleteCascades(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	milo := seedUser(t, users, "milo")
	luna := seedUser(t, users, "luna")

	post := &models.Post{UserID: milo.ID, Description: "doomed"}
	require.NoError(t, posts.Create(ctx, post))
	require.NoError(t, posts.Like(ctx, luna.ID, post.ID))
	require.NoError(t, comments.Create(ctx, &models.Comment{
		PostID: post.ID, UserID: luna.ID, AuthorName: "luna", Text: "bye",
	}))
	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: luna.ID, FolloweeID: milo.ID}))

	require.NoError(t, users.Delete(ctx, milo.ID))

	_, err := users.GetByID(ctx, milo.ID)
	require.Error(t, err)

	_, err = posts.GetByID(ctx, post.ID, 0)
	require.Error(t, err)

	// The comment and the follow edge are gone too.
	list, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	exists, err := follows.Exists(ctx, luna.ID, milo.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
