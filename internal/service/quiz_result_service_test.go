package service

import (
	"context"
	"errors"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	repomocks "quiz_backend/internal/repository/mocks"
	"quiz_backend/internal/storage"
	"quiz_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

// QuizResultServiceSuite 在真实的文件存储上验证作答状态判定
type QuizResultServiceSuite struct {
	suite.Suite
	repo *repository.FileQuizResultRepository
	svc  *QuizResultService
}

func TestQuizResultService(t *testing.T) {
	suite.Run(t, new(QuizResultServiceSuite))
}

func (s *QuizResultServiceSuite) SetupTest() {
	store, err := storage.NewLocalDocumentStore(s.T().TempDir())
	require.NoError(s.T(), err)
	s.repo = repository.NewFileQuizResultRepository(store, "quiz_results.json")
	s.svc = NewQuizResultService(s.repo)
}

func (s *QuizResultServiceSuite) seed(rs ...model.QuizResult) {
	require.NoError(s.T(), s.repo.CreateBatch(context.Background(), rs))
}

func (s *QuizResultServiceSuite) TestStatusByIP_Category() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seed(
		model.QuizResult{UserID: "u1", CorrectRate: 100, Category: strPtr("math"), IP: "1.2.3.4", Lang: "en", UserName: "Ann", Timestamp: base},
		model.QuizResult{UserID: "u1", CorrectRate: 100, Category: strPtr("science"), IP: "1.2.3.4", Timestamp: base.Add(time.Minute)},
	)
	ctx := context.Background()

	status, err := s.svc.StatusByIP(ctx, "1.2.3.4", strPtr("math"))
	s.Require().NoError(err)
	s.False(status.CanTakeQuiz)
	s.Equal("en", status.Lang)
	s.Require().NotNil(status.UserName)
	s.Equal("Ann", *status.UserName)
	s.Equal(perfectByIPMessage, status.Message)

	status, err = s.svc.StatusByIP(ctx, "1.2.3.4", strPtr("history"))
	s.Require().NoError(err)
	s.Equal(CompletionStatus{CanTakeQuiz: true}, status)

	// 映射地址与存储的 IPv4 视为同一个调用方
	status, err = s.svc.StatusByIP(ctx, "::ffff:1.2.3.4", strPtr("science"))
	s.Require().NoError(err)
	s.False(status.CanTakeQuiz)
	s.Equal("zh", status.Lang)
	s.Equal("", *status.UserName)

	// 未带分类只匹配没有分类的记录
	status, err = s.svc.StatusByIP(ctx, "1.2.3.4", nil)
	s.Require().NoError(err)
	s.True(status.CanTakeQuiz)
}

func (s *QuizResultServiceSuite) TestStatusByIP_OldestMatchWins() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seed(
		model.QuizResult{UserID: "u2", UserName: "second", Lang: "en", CorrectRate: 100, IP: "127.0.0.1", Timestamp: base.Add(time.Hour)},
		model.QuizResult{UserID: "u1", UserName: "first", Lang: "ja", CorrectRate: 100, IP: "127.0.0.1", Timestamp: base},
		model.QuizResult{UserID: "u3", UserName: "imperfect", CorrectRate: 99, IP: "127.0.0.1", Timestamp: base.Add(-time.Hour)},
	)

	status, err := s.svc.StatusByIP(context.Background(), "::1", nil)
	s.Require().NoError(err)
	s.False(status.CanTakeQuiz)
	s.Equal("first", *status.UserName)
	s.Equal("ja", status.Lang)
}

func (s *QuizResultServiceSuite) TestStatusByUser() {
	s.seed(
		model.QuizResult{UserID: "u1", UserName: "Ann", CorrectRate: 100, Category: strPtr("math"), Timestamp: time.Now().UTC()},
		model.QuizResult{UserID: "u2", CorrectRate: 80, Category: strPtr("math"), Timestamp: time.Now().UTC()},
	)
	ctx := context.Background()

	status, err := s.svc.StatusByUser(ctx, "u1", strPtr("math"))
	s.Require().NoError(err)
	s.False(status.CanTakeQuiz)
	s.Equal(perfectByUserMessage, status.Message)
	s.Equal("Ann", *status.UserName)

	status, err = s.svc.StatusByUser(ctx, "u2", strPtr("math"))
	s.Require().NoError(err)
	s.True(status.CanTakeQuiz)

	_, err = s.svc.StatusByUser(ctx, "", nil)
	s.ErrorIs(err, util.ErrMissingUserID)
}

func (s *QuizResultServiceSuite) TestRecordAndDelete() {
	ctx := context.Background()
	res, err := s.svc.Record(ctx, QuizResultPayload{
		UserID:      "u1",
		UserName:    "Ann",
		Score:       5,
		Total:       5,
		CorrectRate: 100,
		Lang:        "en",
		Category:    strPtr("math"),
	}, "::ffff:10.0.0.5")
	s.Require().NoError(err)
	s.Equal("10.0.0.5", res.IP)
	s.Equal(time.UTC, res.Timestamp.Location())
	s.NotNil(res.Answers)

	rs, err := s.svc.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(rs, 1)
	s.True(rs[0].Timestamp.Equal(res.Timestamp))

	err = s.svc.DeleteByTimestamp(ctx, "not-a-time")
	s.ErrorIs(err, util.ErrInvalidQuizResult)

	err = s.svc.DeleteByTimestamp(ctx, res.Timestamp.Add(time.Millisecond).Format(time.RFC3339Nano))
	s.ErrorIs(err, util.ErrQuizResultNotFound)

	s.NoError(s.svc.DeleteByTimestamp(ctx, res.Timestamp.Format(time.RFC3339Nano)))
	rs, err = s.svc.List(ctx)
	s.Require().NoError(err)
	s.Empty(rs)

	s.ErrorIs(s.svc.DeleteByUser(ctx, "u1"), util.ErrQuizResultNotFound)
}

func (s *QuizResultServiceSuite) TestDeleteByUser() {
	now := time.Now().UTC()
	s.seed(
		model.QuizResult{UserID: "u1", Timestamp: now},
		model.QuizResult{UserID: "u1", Timestamp: now.Add(time.Second)},
		model.QuizResult{UserID: "u2", Timestamp: now},
	)
	ctx := context.Background()

	s.NoError(s.svc.DeleteByUser(ctx, "u1"))
	rs, err := s.svc.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(rs, 1)
	s.Equal("u2", rs[0].UserID)

	s.NoError(s.svc.DeleteAll(ctx))
	rs, err = s.svc.List(ctx)
	s.Require().NoError(err)
	s.Empty(rs)
	// 已经为空时清空仍然成功
	s.NoError(s.svc.DeleteAll(ctx))
}

func TestQuizResultService_RecordValidation(t *testing.T) {
	testCases := []struct {
		name    string
		payload QuizResultPayload
		wantErr error
	}{
		{name: "missing user", payload: QuizResultPayload{Score: 1, Total: 1}, wantErr: util.ErrMissingUserID},
		{name: "negative score", payload: QuizResultPayload{UserID: "u", Score: -1, Total: 1}, wantErr: util.ErrInvalidQuizResult},
		{name: "score above total", payload: QuizResultPayload{UserID: "u", Score: 3, Total: 2}, wantErr: util.ErrInvalidQuizResult},
		{name: "rate above 100", payload: QuizResultPayload{UserID: "u", Score: 1, Total: 1, CorrectRate: 100.5}, wantErr: util.ErrInvalidQuizResult},
		{name: "negative rate", payload: QuizResultPayload{UserID: "u", CorrectRate: -1}, wantErr: util.ErrInvalidQuizResult},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// 校验失败时不会触达存储
			svc := NewQuizResultService(repomocks.NewMockQuizResultRepository(ctrl))
			_, err := svc.Record(context.Background(), tc.payload, "1.1.1.1")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestQuizResultService_StorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("connection reset")
	repo := repomocks.NewMockQuizResultRepository(ctrl)
	repo.EXPECT().FindByIP(gomock.Any(), "127.0.0.1").Return(nil, boom)
	repo.EXPECT().DeleteByUser(gomock.Any(), "u1").Return(int64(0), boom)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(boom)

	svc := NewQuizResultService(repo)
	ctx := context.Background()

	_, err := svc.StatusByIP(ctx, "::1", nil)
	assert.ErrorIs(t, err, boom)

	err = svc.DeleteByUser(ctx, "u1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, util.ErrQuizResultNotFound)

	_, err = svc.Record(ctx, QuizResultPayload{UserID: "u1"}, "::1")
	assert.ErrorIs(t, err, boom)
}
