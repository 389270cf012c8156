package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thereayou/twitter-lite/internal/database"
	"github.com/thereayou/twitter-lite/internal/models"
	"github.com/thereayou/twitter-lite/internal/testutils"
)

func newUser(t *testing.T, db *database.Database, nickname string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        nickname + "@example.com",
		Nickname:     nickname,
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.SaveUser(user))
	return user
}

func newPost(t *testing.T, db *database.Database, user *models.User, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Content:   content,
		UserID:    user.ID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.SavePost(post))
	return post
}

func follow(t *testing.T, db *database.Database, follower, following *models.User) {
	t.Helper()
	require.NoError(t, db.CreateFollow(&models.Follow{
		FollowerID:  follower.ID,
		FollowingID: following.ID,
		CreatedAt:   time.Now(),
	}))
}

// Пост подписки виден, пост постороннего — нет
func TestFeedVisibility(t *testing.T) {
	db := testutils.SetupDB(t)

	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	carol := newUser(t, db, "carol")

	follow(t, db, alice, bob)

	newPost(t, db, bob, "post by bob", time.Now())
	newPost(t, db, carol, "post by carol", time.Now())

	posts, err := db.GetFeed(alice.ID, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "post by bob", posts[0].Content)
	require.Equal(t, bob.ID, posts[0].UserID)
}

// Свои посты видны всегда, даже без единой подписки
func TestFeedIncludesOwnPosts(t *testing.T) {
	db := testutils.SetupDB(t)

	alice := newUser(t, db, "alice")
	newPost(t, db, alice, "my own post", time.Now())

	posts, err := db.GetFeed(alice.ID, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "my own post", posts[0].Content)
}

func TestFeedEmptyForNewUser(t *testing.T) {
	db := testutils.SetupDB(t)

	alice := newUser(t, db, "alice")

	posts, err := db.GetFeed(alice.ID, "", 20, 0)
	require.NoError(t, err)
	require.Empty(t, posts)
}

// Фильтр по хэштегу — подстрока без учета регистра, не структурный парсер
func TestFeedHashtagCaseInsensitive(t *testing.T) {
	db := testutils.SetupDB(t)

	alice := newUser(t, db, "alice")
	newPost(t, db, alice, "Hello #Go today", time.Now())
	newPost(t, db, alice, "nothing to see", time.Now())

	for _, tag := range []string{"go", "GO", "#Go"} {
		posts, err := db.GetFeed(alice.ID, tag, 20, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1, "hashtag %q", tag)
		require.Equal(t, "Hello #Go today", posts[0].Content)
	}

	posts, err := db.GetFeed(alice.ID, "rust", 20, 0)
	require.NoError(t, err)
	require.Empty(t, posts)
}

// Метасимволы LIKE в хэштеге — буквальная подстрока, а не шаблон
func TestFeedHashtagMetacharactersLiteral(t *testing.T) {
	db := testutils.SetupDB(t)

	alice := newUser(t, db, "alice")
	newPost(t, db, alice, "Hello world", time.Now())
	newPost(t, db, alice, "h_llo there", time.Now())
	newPost(t, db, alice, "100% sure", time.Now())

	posts, err := db.GetFeed(alice.ID, "h_llo", 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "h_llo there", posts[0].Content)

	posts, err = db.GetFeed(alice.ID, "100%", 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "100% sure", posts[0].Content)

	posts, err = db.GetFeed(alice.ID, `100\`, 20, 0)
	require.NoError(t, err)
	require.Empty(t, posts)
}

// U1 подписан на U2; U2 постит A, затем B — лента отдает [B, A]
func TestFeedOrderingNewestFirst(t *testing.T) {
	db := testutils.SetupDB(t)

	u1 := newUser(t, db, "u1")
	u2 := newUser(t, db, "u2")
	follow(t, db, u1, u2)

	base := time.Now()
	newPost(t, db, u2, "content A", base)
	newPost(t, db, u2, "content B", base.Add(time.Minute))
	newPost(t, db, u1, "own post", base.Add(-time.Hour))

	posts, err := db.GetFeed(u1.ID, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, "content B", posts[0].Content)
	require.Equal(t, "content A", posts[1].Content)
	require.Equal(t, "own post", posts[2].Content)

	for i := 1; i < len(posts); i++ {
		require.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt),
			"feed must be non-increasing by created_at")
	}
}

// Лента подгружает автора поста и авторов комментариев
func TestFeedPreloadsUserAndComments(t *testing.T) {
	db := testutils.SetupDB(t)

	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	follow(t, db, alice, bob)

	post := newPost(t, db, bob, "discuss", time.Now())
	require.NoError(t, db.SaveComment(&models.Comment{
		PostID:    post.ID,
		UserID:    alice.ID,
		Content:   "nice one",
		CreatedAt: time.Now(),
	}))

	posts, err := db.GetFeed(alice.ID, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "bob", posts[0].User.Nickname)
	require.Len(t, posts[0].Comments, 1)
	require.Equal(t, "alice", posts[0].Comments[0].User.Nickname)
}

func TestFeedPagination(t *testing.T) {
	db := testutils.SetupDB(t)

	alice := newUser(t, db, "alice")
	base := time.Now()
	for i := 0; i < 5; i++ {
		newPost(t, db, alice, "post", base.Add(time.Duration(i)*time.Second))
	}

	page1, err := db.GetFeed(alice.ID, "", 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)

	page3, err := db.GetFeed(alice.ID, "", 2, 4)
	require.NoError(t, err)
	require.Len(t, page3, 1)
}
