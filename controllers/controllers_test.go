package controllers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"TaskNestGo/controllers"
	"TaskNestGo/middleware"
	"TaskNestGo/models"
	"TaskNestGo/routes"
	"TaskNestGo/services"
	"TaskNestGo/sessions"
	"TaskNestGo/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUserStore 进程内用户存储
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Username]; ok {
		return storage.ErrDuplicate
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.Username] = &cp
	return nil
}

func (f *fakeUserStore) FindByUsername(username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserStore) FindByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

// fakeTaskStore 进程内任务存储
type fakeTaskStore struct {
	mu     sync.Mutex
	nextID uint
	tasks  map[uint]*models.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uint]*models.Task)}
}

func (f *fakeTaskStore) Create(task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	task.ID = f.nextID
	task.CreatedAt = time.Now()
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskStore) ListByUser(userID uint) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Task, 0)
	for _, task := range f.tasks {
		if task.UserID == userID {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) FindByID(id uint) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *task
	return &cp, nil
}

func (f *fakeTaskStore) Update(id uint, updates map[string]interface{}) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	for field, value := range updates {
		switch field {
		case "title":
			task.Title = value.(string)
		case "completed":
			task.Completed = value.(bool)
		case "color":
			task.Color = value.(string)
		case "priority":
			task.Priority = value.(int)
		case "description":
			desc := value.(string)
			task.Description = &desc
		}
	}
	cp := *task
	return &cp, nil
}

func (f *fakeTaskStore) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

// newTestRouter 组装与main相同的路由，只是把存储换成进程内实现
func newTestRouter(t *testing.T) (*gin.Engine, *fakeTaskStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := services.NewAuthService(newFakeUserStore(), sessions.NewMemoryStore(time.Hour))
	logger := zap.NewNop().Sugar()
	authController := controllers.NewAuthController(auth, logger, 3600, false)
	tasks := newFakeTaskStore()
	taskController := controllers.NewTaskController(tasks, logger)

	r := gin.New()
	routes.RegisterRoutes(r, auth, authController, taskController)
	return r, tasks
}

func doJSON(t *testing.T, r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// sessionToken 从响应中取出会话Cookie
func sessionToken(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName && ck.Value != "" {
			return ck.Value
		}
	}
	t.Fatal("响应中未找到会话Cookie")
	return ""
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) models.Task {
	t.Helper()
	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func registerUser(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/register",
		`{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	return sessionToken(t, w)
}
