//go:build integration
// +build integration

package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	authadapter "tasktracker/internal/adapter/auth"
	cacheadapter "tasktracker/internal/adapter/cache"
	dbadapter "tasktracker/internal/adapter/db"
	httpadapter "tasktracker/internal/adapter/http"
	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/handlers"
	"tasktracker/internal/adapter/http/validation"
	appservice "tasktracker/internal/app/service"
	"tasktracker/pkg/translator"
)

const translationFolder = "../../../../pkg/translator/translation"

type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string

	router *gin.Engine
	cache  *cacheadapter.TaskCache
	mailer *capturingMailer
}

func (s *IntegrationSuiteBase) SetupSuite() {
	host := envOrDefault("MYSQL_HOST", "127.0.0.1")
	port := envOrDefault("MYSQL_PORT", "3306")
	rootUser := envOrDefault("MYSQL_ROOT_USER", "root")
	rootPassword := envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "tasktracker")+"_test")
	params := envOrDefault("MYSQL_PARAMS", "parseTime=true&multiStatements=true")

	adminDB, err := sqlx.Connect("mysql", mysqlDSN(rootUser, rootPassword, host, port, "", params))
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	s.Require().NoError(err)

	db, err := sqlx.Connect("mysql", mysqlDSN(rootUser, rootPassword, host, port, database, params))
	s.Require().NoError(err)
	s.DB = db
	s.testDBName = database

	gin.SetMode(gin.TestMode)
	s.Require().NoError(translator.InitTranslator(translator.Config{
		TranslationFolder:  translationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	}))
	validation.Register()
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}

	// Drop test database to keep local environment clean after integration runs.
	if s.adminDB != nil && s.testDBName != "" && strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
	}

	if s.adminDB != nil {
		s.Require().NoError(s.adminDB.Close())
	}
}

// SetupTest rebuilds the schema and the whole application stack, so every
// test starts with an empty database and a cold cache.
func (s *IntegrationSuiteBase) SetupTest() {
	resetDatabase(s.T(), s.DB)

	store, err := cacheadapter.NewBadgerStore("")
	s.Require().NoError(err)
	s.cache = cacheadapter.NewTaskCache(store, time.Minute)
	s.mailer = &capturingMailer{}

	sessions, err := authadapter.NewJWTIssuer("integration-secret", time.Hour)
	s.Require().NoError(err)

	taskRepository := dbadapter.NewTaskRepository(s.DB)
	workspaceRepository := dbadapter.NewWorkspaceRepository(s.DB)
	userRepository := dbadapter.NewUserRepository(s.DB)

	taskService := appservice.NewTaskService(taskRepository, workspaceRepository, s.cache)
	workspaceService := appservice.NewWorkspaceService(workspaceRepository, s.cache)
	authService := appservice.NewAuthService(
		userRepository,
		authadapter.NewBcryptHasher(bcrypt.MinCost),
		sessions,
		s.mailer,
		workspaceService,
	)

	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health:    handlers.NewHealthHandler(s.DB, handlers.PingerFunc(s.cache.Ping), "badger"),
		Auth:      handlers.NewAuthHandler(authService),
		Task:      handlers.NewTaskHandler(taskService),
		Workspace: handlers.NewWorkspaceHandler(workspaceService),
	}, sessions, nil)
	s.router = router
}

func (s *IntegrationSuiteBase) TearDownTest() {
	if s.cache != nil {
		s.Require().NoError(s.cache.Close())
		s.cache = nil
	}
}

// Do sends a JSON request, authenticated when token is not empty.
func (s *IntegrationSuiteBase) Do(method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch value := body.(type) {
	case nil:
	case string:
		payload = []byte(value)
	default:
		encoded, err := json.Marshal(value)
		s.Require().NoError(err)
		payload = encoded
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *IntegrationSuiteBase) Decode(rec *httptest.ResponseRecorder, target any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), target), rec.Body.String())
}

// SignUp registers and verifies an account and returns its session.
func (s *IntegrationSuiteBase) SignUp(name, email string) dto.SessionResponse {
	rec := s.Do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "Secret#123",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.Do(http.MethodPost, "/api/auth/verify-email", "", map[string]string{
		"email": email,
		"otp":   s.StoredOTP(email),
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var session dto.SessionResponse
	s.Decode(rec, &session)
	s.Require().NotEmpty(session.Token)
	return session
}

func (s *IntegrationSuiteBase) StoredOTP(email string) string {
	var otp string
	s.Require().NoError(s.DB.Get(&otp, `SELECT verification_otp FROM users WHERE email = ?`, email))
	return otp
}

func (s *IntegrationSuiteBase) ListTasks(token, query string) []dto.TaskItem {
	rec := s.Do(http.MethodGet, "/api/tasks"+query, token, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var tasks []dto.TaskItem
	s.Decode(rec, &tasks)
	return tasks
}

func (s *IntegrationSuiteBase) CreateWorkspace(token, name string) dto.WorkspaceItem {
	rec := s.Do(http.MethodPost, "/api/workspaces", token, map[string]string{"name": name})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var workspace dto.WorkspaceItem
	s.Decode(rec, &workspace)
	return workspace
}

func (s *IntegrationSuiteBase) CreateTask(token string, payload map[string]any) dto.TaskItem {
	rec := s.Do(http.MethodPost, "/api/tasks", token, payload)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var task dto.TaskItem
	s.Decode(rec, &task)
	return task
}

func resetDatabase(t *testing.T, db *sqlx.DB) {
	t.Helper()

	_, err := db.Exec(`
DROP TABLE IF EXISTS tasks;
DROP TABLE IF EXISTS workspace_members;
DROP TABLE IF EXISTS workspaces;
DROP TABLE IF EXISTS users;
`)
	require.NoError(t, err)
	require.NoError(t, dbadapter.Migrate(context.Background(), db))
}

type capturingMailer struct {
	mu     sync.Mutex
	resets map[string]string
}

func (m *capturingMailer) SendVerificationCode(context.Context, string, string) error {
	return nil
}

func (m *capturingMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resets == nil {
		m.resets = map[string]string{}
	}
	m.resets[to] = token
	return nil
}

func (m *capturingMailer) ResetToken(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets[email]
}

func mysqlDSN(user, password, host, port, database, params string) string {
	if database == "" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/?%s", user, password, host, port, params)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
