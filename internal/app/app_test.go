package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"quiz_backend/internal/config"
	"quiz_backend/internal/controller"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/service"
	"quiz_backend/internal/storage"
	"quiz_backend/internal/util"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AppTestSuite struct {
	suite.Suite
	dir    string
	server *gin.Engine
	app    *App
}

func TestApp(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func testConfig(staticDir string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode, StaticDir: staticDir},
		Store:  config.StoreConfig{Backend: config.BackendFile},
		Quiz:   config.QuizConfig{DefaultCount: 10, DefaultLang: "zh"},
	}
}

func (s *AppTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	docs, err := storage.NewLocalDocumentStore(filepath.Join(s.dir, "data"))
	s.Require().NoError(err)

	static := filepath.Join(s.dir, "public")
	s.Require().NoError(os.MkdirAll(static, 0o755))
	s.Require().NoError(os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>quiz</h1>"), 0o644))

	s.app = New(testConfig(static), Repositories{
		Question:   repository.NewFileQuestionRepository(docs, "questions.json"),
		QuizResult: repository.NewFileQuizResultRepository(docs, "quiz_results.json"),
		Health:     map[string]controller.Pinger{"storage": docs},
	})
	s.server = s.app.Router
}

func (s *AppTestSuite) TearDownTest() {
	s.app.Close(context.Background())
}

func (s *AppTestSuite) do(method, path string, body any, remoteAddr string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", util.JSONContentType)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	recorder := httptest.NewRecorder()
	s.server.ServeHTTP(recorder, req)
	return recorder
}

func decode[T any](s *AppTestSuite, recorder *httptest.ResponseRecorder) T {
	var v T
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &v), recorder.Body.String())
	return v
}

func (s *AppTestSuite) TestQuestionRoundTrip() {
	payload := map[string]any{
		"question":    map[string]string{"zh": "問題", "en": "Q"},
		"options":     map[string][]string{"zh": {"A", "B"}, "en": {"A", "B"}},
		"answerIndex": 0,
		"category":    "Math",
	}
	resp := s.do(http.MethodPost, "/api/questions", payload, "")
	s.Require().Equal(http.StatusCreated, resp.Code, resp.Body.String())
	created := decode[model.Question](s, resp)
	s.Equal(int64(1), created.ID)

	resp = s.do(http.MethodGet, "/api/questions/1", nil, "")
	s.Require().Equal(http.StatusOK, resp.Code)
	s.Equal(created, decode[model.Question](s, resp))

	resp = s.do(http.MethodGet, "/api/questions/random?count=1&lang=en", nil, "")
	s.Require().Equal(http.StatusOK, resp.Code)
	random := decode[[]service.LocalizedQuestion](s, resp)
	s.Equal([]service.LocalizedQuestion{{ID: 1, Question: "Q", Options: []string{"A", "B"}, AnswerIndex: 0, Category: "Math"}}, random)

	resp = s.do(http.MethodGet, "/api/questions/category/math?lang=fr", nil, "")
	s.Require().Equal(http.StatusOK, resp.Code)
	byCategory := decode[[]service.LocalizedQuestion](s, resp)
	s.Require().Len(byCategory, 1)
	s.Equal("問題", byCategory[0].Question)

	resp = s.do(http.MethodGet, "/api/questions/category/MATH/random?count=abc", nil, "")
	s.Require().Equal(http.StatusOK, resp.Code)
	s.Len(decode[[]service.LocalizedQuestion](s, resp), 1)

	resp = s.do(http.MethodPut, "/api/questions/1", map[string]any{"category": "science"}, "")
	s.Require().Equal(http.StatusOK, resp.Code, resp.Body.String())
	updated := decode[model.Question](s, resp)
	s.Equal("science", updated.Category)
	s.Equal(created.Question, updated.Question)

	resp = s.do(http.MethodGet, "/api/questions", nil, "")
	s.Require().Equal(http.StatusOK, resp.Code)
	s.Len(decode[[]model.Question](s, resp), 1)

	resp = s.do(http.MethodDelete, "/api/questions/1", nil, "")
	s.Equal(http.StatusNoContent, resp.Code)
	resp = s.do(http.MethodDelete, "/api/questions/1", nil, "")
	s.Equal(http.StatusNotFound, resp.Code)
}

func (s *AppTestSuite) TestQuestionErrors() {
	testCases := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
	}{
		{name: "bad id", method: http.MethodGet, path: "/api/questions/abc", wantCode: http.StatusBadRequest},
		{name: "unknown id", method: http.MethodGet, path: "/api/questions/42", wantCode: http.StatusNotFound},
		{name: "update unknown", method: http.MethodPut, path: "/api/questions/42", body: map[string]any{"category": "x"}, wantCode: http.StatusNotFound},
		{name: "create missing fields", method: http.MethodPost, path: "/api/questions", body: map[string]any{"category": "x"}, wantCode: http.StatusBadRequest},
		{name: "create without body", method: http.MethodPost, path: "/api/questions", wantCode: http.StatusBadRequest},
		{
			name:   "create with string answer index",
			method: http.MethodPost,
			path:   "/api/questions",
			body: map[string]any{
				"question":    map[string]string{"zh": "問題", "en": "Q"},
				"options":     map[string][]string{"zh": {"A"}, "en": {"A"}},
				"answerIndex": "0",
			},
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp := s.do(tc.method, tc.path, tc.body, "")
			s.Equal(tc.wantCode, resp.Code, resp.Body.String())
			s.NotEmpty(decode[util.ErrorResponse](s, resp).Error)
		})
	}
}

func (s *AppTestSuite) TestQuizResultFlow() {
	category := "math"
	result := service.QuizResultPayload{
		UserID:      "u1",
		UserName:    "Ann",
		Score:       4,
		Total:       4,
		CorrectRate: 100,
		Answers:     []int{0, 1, 2, 3},
		Lang:        "en",
		Category:    &category,
	}

	resp := s.do(http.MethodGet, "/api/quiz-results/status/ip?category=math", nil, "[::1]:40000")
	s.Require().Equal(http.StatusOK, resp.Code)
	s.Equal(service.CompletionStatus{CanTakeQuiz: true}, decode[service.CompletionStatus](s, resp))

	resp = s.do(http.MethodPost, "/api/quiz-results", result, "[::1]:40000")
	s.Require().Equal(http.StatusCreated, resp.Code, resp.Body.String())
	stored := decode[model.QuizResult](s, resp)
	s.Equal("127.0.0.1", stored.IP)
	s.False(stored.Timestamp.IsZero())

	resp = s.do(http.MethodGet, "/api/quiz-results/status/ip?category=math", nil, "127.0.0.1:5555")
	s.Require().Equal(http.StatusOK, resp.Code)
	status := decode[service.CompletionStatus](s, resp)
	s.False(status.CanTakeQuiz)
	s.Equal("en", status.Lang)
	s.Equal("Ann", *status.UserName)

	resp = s.do(http.MethodGet, "/api/quiz-results/status/ip?category=history", nil, "127.0.0.1:5555")
	s.True(decode[service.CompletionStatus](s, resp).CanTakeQuiz)

	resp = s.do(http.MethodGet, "/api/quiz-results/status/u1?category=math", nil, "")
	s.Require().Equal(http.StatusOK, resp.Code)
	s.False(decode[service.CompletionStatus](s, resp).CanTakeQuiz)

	resp = s.do(http.MethodGet, "/api/quiz-results/status/u1", nil, "")
	s.True(decode[service.CompletionStatus](s, resp).CanTakeQuiz)

	resp = s.do(http.MethodGet, "/api/quiz-results", nil, "")
	s.Require().Equal(http.StatusOK, resp.Code)
	s.Len(decode[[]model.QuizResult](s, resp), 1)

	resp = s.do(http.MethodDelete, "/api/quiz-results/not-a-time", nil, "")
	s.Equal(http.StatusBadRequest, resp.Code)

	resp = s.do(http.MethodDelete, "/api/quiz-results/2000-01-01T00:00:00Z", nil, "")
	s.Equal(http.StatusNotFound, resp.Code)

	resp = s.do(http.MethodDelete, "/api/quiz-results/"+stored.Timestamp.Format(time.RFC3339Nano), nil, "")
	s.Equal(http.StatusOK, resp.Code, resp.Body.String())
	s.NotEmpty(decode[util.MessageResponse](s, resp).Message)

	resp = s.do(http.MethodDelete, "/api/quiz-results/user/u1", nil, "")
	s.Equal(http.StatusNotFound, resp.Code)

	resp = s.do(http.MethodPost, "/api/quiz-results", result, "")
	s.Require().Equal(http.StatusCreated, resp.Code)
	resp = s.do(http.MethodDelete, "/api/quiz-results/user/u1", nil, "")
	s.Equal(http.StatusOK, resp.Code)

	resp = s.do(http.MethodDelete, "/api/quiz-results", nil, "")
	s.Equal(http.StatusOK, resp.Code)
}

func (s *AppTestSuite) TestRecordValidation() {
	resp := s.do(http.MethodPost, "/api/quiz-results", map[string]any{"score": 1, "total": 1}, "")
	s.Equal(http.StatusBadRequest, resp.Code)

	resp = s.do(http.MethodPost, "/api/quiz-results", map[string]any{"userId": "u", "score": 2, "total": 1}, "")
	s.Equal(http.StatusBadRequest, resp.Code)
}

func (s *AppTestSuite) TestAmbientRoutes() {
	resp := s.do(http.MethodGet, "/api/health", nil, "")
	s.Equal(http.StatusOK, resp.Code)
	s.Contains(resp.Body.String(), `"storage":"up"`)

	resp = s.do(http.MethodGet, "/metrics", nil, "")
	s.Equal(http.StatusOK, resp.Code)

	resp = s.do(http.MethodGet, "/", nil, "")
	s.Equal(http.StatusOK, resp.Code)
	s.Contains(resp.Body.String(), "quiz")

	resp = s.do(http.MethodGet, "/missing.js", nil, "")
	s.Equal(http.StatusNotFound, resp.Code)

	resp = s.do(http.MethodOptions, "/api/questions", nil, "")
	s.Equal(http.StatusNoContent, resp.Code)
	s.Equal("*", resp.Header().Get("Access-Control-Allow-Origin"))
}

func (s *AppTestSuite) TestConfigReload() {
	for _, cb := range s.app.configCallbacks {
		cb(&config.Config{Quiz: config.QuizConfig{DefaultCount: 2, DefaultLang: "en"}})
	}
	s.Equal(service.QuizSettings{DefaultCount: 2, DefaultLang: "en"}, s.app.services.question.Settings())
}

func TestHealthUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	docs, err := storage.NewLocalDocumentStore(t.TempDir())
	require.NoError(t, err)

	a := New(testConfig(""), Repositories{
		Question:   repository.NewFileQuestionRepository(docs, "questions.json"),
		QuizResult: repository.NewFileQuizResultRepository(docs, "quiz_results.json"),
		Health: map[string]controller.Pinger{
			"database": controller.PingFunc(func(ctx context.Context) error { return errors.New("refused") }),
		},
	})

	recorder := httptest.NewRecorder()
	a.Router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"database":"down"`)

	recorder = httptest.NewRecorder()
	a.Router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/anything", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCloseStopsBackground(t *testing.T) {
	gin.SetMode(gin.TestMode)
	docs, err := storage.NewLocalDocumentStore(t.TempDir())
	require.NoError(t, err)

	cfg := testConfig("")
	cfg.RateLimit = config.RateLimitConfig{MaxRequests: 100, WindowMinutes: 15}
	a := New(cfg, Repositories{
		Question:   repository.NewFileQuestionRepository(docs, "questions.json"),
		QuizResult: repository.NewFileQuizResultRepository(docs, "quiz_results.json"),
	})
	require.NoError(t, a.bg.Err())

	a.Close(context.Background())
	assert.ErrorIs(t, a.bg.Err(), context.Canceled)
	// 重复关闭无副作用
	a.Close(context.Background())
}
