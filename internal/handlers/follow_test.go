package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/twitter-lite/internal/database"
	"github.com/thereayou/twitter-lite/internal/handlers"
	"github.com/thereayou/twitter-lite/internal/models"
	"github.com/thereayou/twitter-lite/internal/testutils"
)

func setupFollowRouter(t *testing.T, db *database.Database, actor uuid.UUID) *gin.Engine {
	t.Helper()

	h := handlers.NewFollowHandler(db)
	r := gin.New()
	r.GET("/follows", h.ListFollows)
	r.POST("/follows", authAs(actor), h.CreateFollow)
	r.DELETE("/follows/:id", authAs(actor), h.DeleteFollow)
	return r
}

func TestCreateFollow(t *testing.T) {
	db := testutils.SetupDB(t)
	alice := createUser(t, db, "alice", "secret-pass")
	bob := createUser(t, db, "bob", "secret-pass")

	r := setupFollowRouter(t, db, alice.ID)
	w := doJSON(t, r, http.MethodPost, "/follows", gin.H{"following_id": bob.ID.String()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	require.Equal(t, alice.ID.String(), body["follower_id"])
	require.Equal(t, bob.ID.String(), body["following_id"])
}

// Создать ребро от имени чужого аккаунта нельзя
func TestCreateFollowOnBehalfOfAnotherRejected(t *testing.T) {
	db := testutils.SetupDB(t)
	alice := createUser(t, db, "alice", "secret-pass")
	bob := createUser(t, db, "bob", "secret-pass")
	carol := createUser(t, db, "carol", "secret-pass")

	r := setupFollowRouter(t, db, alice.ID)
	w := doJSON(t, r, http.MethodPost, "/follows", gin.H{
		"follower_id":  carol.ID.String(),
		"following_id": bob.ID.String(),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	errs := decodeBody(t, w)["errors"].(map[string]any)
	require.Contains(t, errs, "follower_id")

	exists, err := db.FollowExists(carol.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestSelfFollowRejected(t *testing.T) {
	db := testutils.SetupDB(t)
	alice := createUser(t, db, "alice", "secret-pass")

	r := setupFollowRouter(t, db, alice.ID)
	w := doJSON(t, r, http.MethodPost, "/follows", gin.H{"following_id": alice.ID.String()})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDuplicateFollowRejected(t *testing.T) {
	db := testutils.SetupDB(t)
	alice := createUser(t, db, "alice", "secret-pass")
	bob := createUser(t, db, "bob", "secret-pass")

	r := setupFollowRouter(t, db, alice.ID)

	w := doJSON(t, r, http.MethodPost, "/follows", gin.H{"following_id": bob.ID.String()})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/follows", gin.H{"following_id": bob.ID.String()})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// Удалить ребро может только его follower
func TestDeleteFollowOwnership(t *testing.T) {
	db := testutils.SetupDB(t)
	alice := createUser(t, db, "alice", "secret-pass")
	bob := createUser(t, db, "bob", "secret-pass")
	carol := createUser(t, db, "carol", "secret-pass")

	edge := &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID, CreatedAt: time.Now()}
	require.NoError(t, db.CreateFollow(edge))

	asCarol := setupFollowRouter(t, db, carol.ID)
	w := doJSON(t, asCarol, http.MethodDelete, "/follows/"+edge.ID.String(), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	asAlice := setupFollowRouter(t, db, alice.ID)
	w = doJSON(t, asAlice, http.MethodDelete, "/follows/"+edge.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	exists, err := db.FollowExists(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestDeleteMissingFollow(t *testing.T) {
	db := testutils.SetupDB(t)
	alice := createUser(t, db, "alice", "secret-pass")

	r := setupFollowRouter(t, db, alice.ID)
	w := doJSON(t, r, http.MethodDelete, "/follows/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// Чтение ребер публично и фильтруется по сторонам
func TestListFollowsPublic(t *testing.T) {
	db := testutils.SetupDB(t)
	alice := createUser(t, db, "alice", "secret-pass")
	bob := createUser(t, db, "bob", "secret-pass")
	carol := createUser(t, db, "carol", "secret-pass")

	require.NoError(t, db.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID, CreatedAt: time.Now()}))
	require.NoError(t, db.CreateFollow(&models.Follow{FollowerID: carol.ID, FollowingID: bob.ID, CreatedAt: time.Now()}))

	r := setupFollowRouter(t, db, alice.ID)

	w := doJSON(t, r, http.MethodGet, "/follows?following="+bob.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeBody(t, w)["follows"], 2)

	w = doJSON(t, r, http.MethodGet, "/follows?follower="+alice.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeBody(t, w)["follows"], 1)
}
