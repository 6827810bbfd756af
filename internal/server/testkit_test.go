package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/dmc103/backend-pawstagram/internal/config"
	"github.com/dmc103/backend-pawstagram/internal/models"
	"github.com/dmc103/backend-pawstagram/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// In-memory repository fakes backing the handler tests. They keep the same
// ordering and precondition behavior as the SQL implementations.

type memStore struct {
	users    map[uint]*models.User
	follows  map[[2]uint]time.Time
	posts    map[uint]*models.Post
	comments []*models.Comment
	likes    map[[2]uint]time.Time
	nextID   uint
	seq      int
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[uint]*models.User{},
		follows: map[[2]uint]time.Time{},
		posts:   map[uint]*models.Post{},
		likes:   map[[2]uint]time.Time{},
		nextID:  1,
	}
}

func (m *memStore) id() uint {
	id := m.nextID
	m.nextID++
	return id
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (m *memStore) tick() time.Time {
	m.seq++
	return time.Unix(0, int64(m.seq)*int64(time.Millisecond))
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return models.NewConflictError("Email or username is already registered")
		}
	}
	user.ID = r.s.id()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.s.users[user.ID]; !ok {
		return models.NewNotFoundError("User", user.ID)
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) SetOnline(ctx context.Context, id uint, online bool) error {
	u, ok := r.s.users[id]
	if !ok {
		return models.NewNotFoundError("User", id)
	}
	u.IsOnline = online
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uint) error {
	delete(r.s.users, id)
	for k := range r.s.follows {
		if k[0] == id || k[1] == id {
			delete(r.s.follows, k)
		}
	}
	for pid, p := range r.s.posts {
		if p.UserID == id {
			delete(r.s.posts, pid)
		}
	}
	return nil
}

func (r *memUserRepo) List(ctx context.Context, excludeID uint, limit, offset int) ([]models.User, error) {
	var out []models.User
	for _, u := range r.s.users {
		if u.ID != excludeID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memFollowRepo struct{ s *memStore }

func (r *memFollowRepo) Create(ctx context.Context, follow *models.Follow) error {
	key := [2]uint{follow.FollowerID, follow.FolloweeID}
	if _, ok := r.s.follows[key]; ok {
		return models.NewConflictError("You are already following this user")
	}
	r.s.follows[key] = r.s.tick()
	return nil
}

func (r *memFollowRepo) Delete(ctx context.Context, followerID, followeeID uint) error {
	key := [2]uint{followerID, followeeID}
	if _, ok := r.s.follows[key]; !ok {
		return models.NewConflictError("You are not following this user")
	}
	delete(r.s.follows, key)
	return nil
}

func (r *memFollowRepo) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	_, ok := r.s.follows[[2]uint{followerID, followeeID}]
	return ok, nil
}

func (r *memFollowRepo) followEdges(pick func(k [2]uint) (uint, bool)) []models.User {
	type edge struct {
		id uint
		at time.Time
	}
	var edges []edge
	for k, at := range r.s.follows {
		if id, ok := pick(k); ok {
			edges = append(edges, edge{id, at})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].at.Before(edges[j].at) })
	var out []models.User
	for _, e := range edges {
		if u, ok := r.s.users[e.id]; ok {
			out = append(out, *u)
		}
	}
	return out
}

func (r *memFollowRepo) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return r.followEdges(func(k [2]uint) (uint, bool) {
		if k[1] == userID {
			return k[0], true
		}
		return 0, false
	}), nil
}

func (r *memFollowRepo) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return r.followEdges(func(k [2]uint) (uint, bool) {
		if k[0] == userID {
			return k[1], true
		}
		return 0, false
	}), nil
}

func (r *memFollowRepo) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	users := r.followEdges(func(k [2]uint) (uint, bool) {
		if k[0] == userID {
			return k[1], true
		}
		return 0, false
	})
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

type memPostRepo struct{ s *memStore }

func (r *memPostRepo) decorate(p *models.Post, currentUserID uint) *models.Post {
	cp := *p
	for k := range r.s.likes {
		if k[1] == p.ID {
			cp.LikesCount++
			if k[0] == currentUserID {
				cp.Liked = true
			}
		}
	}
	for _, c := range r.s.comments {
		if c.PostID == p.ID {
			cp.CommentsCount++
		}
	}
	return &cp
}

func (r *memPostRepo) Create(ctx context.Context, post *models.Post) error {
	post.ID = r.s.id()
	post.CreatedAt = r.s.tick()
	cp := *post
	r.s.posts[post.ID] = &cp
	return nil
}

func (r *memPostRepo) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	p, ok := r.s.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("Post", id)
	}
	return r.decorate(p, currentUserID), nil
}

func (r *memPostRepo) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range r.s.posts {
		if p.UserID == userID {
			out = append(out, r.decorate(p, currentUserID))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPostRepo) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range r.s.posts {
		out = append(out, r.decorate(p, currentUserID))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPostRepo) Update(ctx context.Context, post *models.Post) error {
	if _, ok := r.s.posts[post.ID]; !ok {
		return models.NewNotFoundError("Post", post.ID)
	}
	cp := *post
	r.s.posts[post.ID] = &cp
	return nil
}

func (r *memPostRepo) Delete(ctx context.Context, id uint) error {
	delete(r.s.posts, id)
	return nil
}

func (r *memPostRepo) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	_, ok := r.s.likes[[2]uint{userID, postID}]
	return ok, nil
}

func (r *memPostRepo) Like(ctx context.Context, userID, postID uint) error {
	key := [2]uint{userID, postID}
	if _, ok := r.s.likes[key]; !ok {
		r.s.likes[key] = r.s.tick()
	}
	return nil
}

func (r *memPostRepo) Unlike(ctx context.Context, userID, postID uint) error {
	delete(r.s.likes, [2]uint{userID, postID})
	return nil
}

func (r *memPostRepo) Likers(ctx context.Context, postID uint) ([]models.UserSummary, error) {
	type edge struct {
		id uint
		at time.Time
	}
	var edges []edge
	for k, at := range r.s.likes {
		if k[1] == postID {
			edges = append(edges, edge{k[0], at})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].at.Before(edges[j].at) })
	var out []models.UserSummary
	for _, e := range edges {
		if u, ok := r.s.users[e.id]; ok {
			out = append(out, u.Summary())
		}
	}
	return out, nil
}

type memCommentRepo struct{ s *memStore }

func (r *memCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = r.s.id()
	comment.CreatedAt = r.s.tick()
	cp := *comment
	r.s.comments = append(r.s.comments, &cp)
	return nil
}

func (r *memCommentRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// newTestServer wires a Server over the in-memory fakes and returns it with a
// routed Fiber app.
func newTestServer(t *testing.T) (*Server, *fiber.App, *memStore) {
	t.Helper()

	store := newMemStore()
	userRepo := &memUserRepo{store}
	followRepo := &memFollowRepo{store}
	postRepo := &memPostRepo{store}
	commentRepo := &memCommentRepo{store}

	s := &Server{
		config:      &config.Config{JWTSecret: "test-secret-key", Port: "0"},
		userRepo:    userRepo,
		followRepo:  followRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		accounts:    service.NewAccountService(userRepo),
		follows:     service.NewFollowService(followRepo, userRepo),
		posts:       service.NewPostService(postRepo, commentRepo, userRepo),
		timeline:    service.NewTimelineService(postRepo, followRepo, userRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, store
}

// registerAndLogin creates a user through the API and returns its ID and token.
func registerAndLogin(t *testing.T, app *fiber.App, username, email string) (uint, string) {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/auth/register", "", map[string]any{
		"userName":  username,
		"email":     email,
		"firstName": "Test",
		"lastName":  "Pilot",
		"password":  "Password1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "Password1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["authToken"].(string)
	require.NotEmpty(t, token)
	id, _ := body["userId"].(float64)
	require.NotZero(t, id)
	return uint(id), token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
