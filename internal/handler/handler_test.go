package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubstack/backend/internal/handler"
	"github.com/clubstack/backend/internal/model"
	"github.com/clubstack/backend/internal/router"
	"github.com/clubstack/backend/internal/service"
	"github.com/clubstack/backend/internal/sse"
	"github.com/clubstack/backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type testEnv struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Project{}, &model.Role{}, &model.Application{},
		&model.Post{}, &model.Comment{}, &model.Like{}, &model.Message{},
	))

	hub := sse.NewHub(nil)
	authService := service.NewAuthService(db, testSecret, 1, 4)
	userService := service.NewUserService(db)
	projectService := service.NewProjectService(db)
	appService := service.NewApplicationService(db)
	postService := service.NewPostService(db)
	inboxService := service.NewInboxService(db, projectService)

	engine := gin.New()
	router.Setup(engine, router.Deps{
		DB:                 db,
		JWTSecret:          testSecret,
		AuthHandler:        handler.NewAuthHandler(authService),
		UserHandler:        handler.NewUserHandler(userService),
		ProjectHandler:     handler.NewProjectHandler(projectService),
		ApplicationHandler: handler.NewApplicationHandler(appService),
		PostHandler:        handler.NewPostHandler(postService),
		InboxHandler:       handler.NewInboxHandler(inboxService, hub),
		DashboardHandler:   handler.NewDashboardHandler(db),
	})
	return &testEnv{db: db, engine: engine}
}

func (e *testEnv) seedUser(t *testing.T, name string, regno int, admin, member bool) *model.User {
	t.Helper()
	u := &model.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@club.test", name),
		PasswordHash: "x",
		RegNo:        regno,
		IsAdmin:      admin,
		IsMember:     member,
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) token(t *testing.T, u *model.User) string {
	t.Helper()
	token, _, err := jwt.GenerateToken(testSecret, u.ID, u.IsAdmin, u.IsMember, 1)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestReconcileMembersEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	lead := env.seedUser(t, "lead", 1001, true, true)
	admin := env.seedUser(t, "root", 1002, true, true)
	u1 := env.seedUser(t, "u1", 1003, false, true)
	u2 := env.seedUser(t, "u2", 1004, false, true)

	project := &model.Project{Name: "rover", DurationDays: 30, LeadID: lead.ID}
	require.NoError(t, env.db.Create(project).Error)

	// An admin who is not the lead rewrites the member set.
	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/members", project.ID), env.token(t, admin), gin.H{
		"members": map[string]string{
			fmt.Sprint(u1.ID): "Developer",
			fmt.Sprint(u2.ID): "Researcher",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), env.token(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Members []struct {
			UserID uint   `json:"userId"`
			Role   string `json:"role"`
		} `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Members, 2)

	titles := map[uint]string{}
	for _, m := range detail.Members {
		titles[m.UserID] = m.Role
	}
	assert.Equal(t, map[uint]string{u1.ID: "Developer", u2.ID: "Researcher"}, titles)
}

func TestProjectVisibilityOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	lead := env.seedUser(t, "lead", 1001, false, true)
	member := env.seedUser(t, "alice", 1002, false, true)
	outsider := env.seedUser(t, "eve", 1003, false, true)

	project := &model.Project{Name: "secret", DurationDays: 30, LeadID: lead.ID}
	require.NoError(t, env.db.Create(project).Error)
	require.NoError(t, env.db.Create(&model.Role{ProjectID: project.ID, UserID: member.ID, Title: "Member"}).Error)

	path := fmt.Sprintf("/api/projects/%d", project.ID)

	assert.Equal(t, http.StatusOK, env.request(t, http.MethodGet, path, env.token(t, member), nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.request(t, http.MethodGet, path, env.token(t, outsider), nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.request(t, http.MethodGet, path, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.request(t, http.MethodGet, "/api/projects/9999", env.token(t, lead), nil).Code)
}

func TestReconcileRejectedForNonLead(t *testing.T) {
	env := newTestEnv(t)

	lead := env.seedUser(t, "lead", 1001, false, true)
	mallory := env.seedUser(t, "mallory", 1002, false, true)
	u1 := env.seedUser(t, "u1", 1003, false, true)

	project := &model.Project{Name: "rover", DurationDays: 30, LeadID: lead.ID}
	require.NoError(t, env.db.Create(project).Error)
	require.NoError(t, env.db.Create(&model.Role{ProjectID: project.ID, UserID: u1.ID, Title: "Developer"}).Error)

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/members", project.ID), env.token(t, mallory), gin.H{
		"members": map[string]string{},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	env.db.Model(&model.Role{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Equal(t, int64(1), count, "no role row may be touched on a rejected request")
}

func TestAdminGate(t *testing.T) {
	env := newTestEnv(t)

	admin := env.seedUser(t, "root", 1001, true, true)
	member := env.seedUser(t, "alice", 1002, false, true)

	assert.Equal(t, http.StatusOK, env.request(t, http.MethodGet, "/api/admin/users/list", env.token(t, admin), nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.request(t, http.MethodGet, "/api/admin/users/list", env.token(t, member), nil).Code)

	// Admin user actions.
	w := env.request(t, http.MethodPost, "/api/admin/users/accept", env.token(t, admin), gin.H{"id": member.ID})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.request(t, http.MethodPost, "/api/admin/users/promote", env.token(t, member), gin.H{"id": admin.ID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateProjectRejectsMalformedBudget(t *testing.T) {
	env := newTestEnv(t)
	member := env.seedUser(t, "alice", 1001, false, true)
	token := env.token(t, member)

	payload := gin.H{
		"name":     "rover",
		"duration": gin.H{"value": "30", "unit": "days"},
		"budget":   "not-a-number",
	}
	w := env.request(t, http.MethodPost, "/api/projects", token, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload["budget"] = "-50"
	w = env.request(t, http.MethodPost, "/api/projects", token, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// An omitted budget is still fine.
	delete(payload, "budget")
	w = env.request(t, http.MethodPost, "/api/projects", token, payload)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestSignupLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Alice", "email": "alice@club.test", "password": "Sup3rsecret", "regno": 22011234,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@club.test", "password": "Sup3rsecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	w = env.request(t, http.MethodGet, "/api/auth/isAdmin", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isAdmin": false}`, w.Body.String())
}

func TestBannedUserRejected(t *testing.T) {
	env := newTestEnv(t)

	banned := env.seedUser(t, "troll", 1001, false, true)
	token := env.token(t, banned)
	require.NoError(t, env.db.Model(banned).Update("is_banned", true).Error)

	w := env.request(t, http.MethodGet, "/api/posts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFeedAndStatsShapes(t *testing.T) {
	env := newTestEnv(t)
	member := env.seedUser(t, "alice", 1001, false, true)

	w := env.request(t, http.MethodPost, "/api/posts", env.token(t, member), gin.H{
		"title": "hello", "content": "world", "category": "general",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/posts", env.token(t, member), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feed struct {
		Posts []struct {
			Title    string `json:"title"`
			HasLiked bool   `json:"hasLiked"`
		} `json:"posts"`
		HasMore bool `json:"hasMore"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed.Posts, 1)
	assert.False(t, feed.HasMore)

	w = env.request(t, http.MethodPost, "/api/admin/stats", env.token(t, member), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(0), stats["totalUsers"], "non-admin never sees the user count")
	assert.Equal(t, int64(1), stats["posts"])
}
