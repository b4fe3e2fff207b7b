package usecase_test

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
	"github.com/balajircs83/AI-Interview-Platform/internal/domain/mocks"
	"github.com/balajircs83/AI-Interview-Platform/internal/usecase"
)

func evalWithScore(score float64) *domain.Evaluation {
	return &domain.Evaluation{Overall: score, Feedback: "f", Strengths: []string{"s"}, Improvements: []string{"i"}}
}

func TestSessionStart_AnonymousUser(t *testing.T) {
	t.Parallel()
	users := &mocks.MockUserRepository{}
	users.On("CreateOrGetByEmail", mock.Anything, mock.MatchedBy(func(email string) bool {
		return strings.HasPrefix(email, "anonymous_") && strings.HasSuffix(email, "@temp.com")
	}), "Anonymous").Return(domain.User{ID: "user-1"}, nil)

	sessions := &mocks.MockSessionRepository{}
	sessions.On("Create", mock.Anything, mock.MatchedBy(func(s domain.InterviewSession) bool {
		return s.UserID == "user-1" && s.Status == domain.SessionInProgress &&
			s.SessionToken != "" && s.TotalQuestions == 5
	})).Return(domain.InterviewSession{ID: "sess-1", SessionToken: "tok-1"}, nil)

	svc := usecase.NewSessionService(users, sessions, &mocks.MockResponseRepository{}, 5)
	out, err := svc.Start(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", out.SessionID)
	assert.Equal(t, "tok-1", out.SessionToken)
	assert.Equal(t, "user-1", out.UserID)
	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestSessionStart_NamedUser(t *testing.T) {
	t.Parallel()
	users := &mocks.MockUserRepository{}
	users.On("CreateOrGetByEmail", mock.Anything, "jo@example.com", "Jo").
		Return(domain.User{ID: "user-2"}, nil)
	sessions := &mocks.MockSessionRepository{}
	sessions.On("Create", mock.Anything, mock.Anything).
		Return(domain.InterviewSession{ID: "sess-2"}, nil)

	svc := usecase.NewSessionService(users, sessions, &mocks.MockResponseRepository{}, 5)
	out, err := svc.Start(context.Background(), "jo@example.com", "Jo")
	require.NoError(t, err)
	assert.Equal(t, "user-2", out.UserID)
}

func TestSessionComplete_ScoresOverTotalQuestions(t *testing.T) {
	t.Parallel()
	sessions := &mocks.MockSessionRepository{}
	sessions.On("Get", mock.Anything, "sess-1").
		Return(domain.InterviewSession{ID: "sess-1", UserID: "user-1", TotalQuestions: 5}, nil)
	// Three answered out of five: (4 + 3 + 5 + 0 + 0) / 5 = 2.4.
	sessions.On("Complete", mock.Anything, "sess-1", 3, mock.MatchedBy(func(overall float64) bool {
		return math.Abs(overall-2.4) < 1e-9
	})).Return(domain.InterviewSession{ID: "sess-1", Status: domain.SessionCompleted, OverallScore: 2.4}, nil)

	responses := &mocks.MockResponseRepository{}
	responses.On("ListBySession", mock.Anything, "sess-1").Return([]domain.QuestionResponse{
		{QuestionIndex: 0, Evaluation: evalWithScore(4)},
		{QuestionIndex: 1, Evaluation: evalWithScore(3)},
		{QuestionIndex: 2, Evaluation: evalWithScore(5)},
	}, nil)

	users := &mocks.MockUserRepository{}
	users.On("Get", mock.Anything, "user-1").
		Return(domain.User{ID: "user-1", TotalInterviews: 1, AverageScore: 3.0}, nil)
	// Running average folds in the new score: (3.0*1 + 2.4) / 2 = 2.7.
	users.On("UpdateAggregates", mock.Anything, "user-1", 2, mock.MatchedBy(func(avg float64) bool {
		return math.Abs(avg-2.7) < 1e-9
	})).Return(nil)

	svc := usecase.NewSessionService(users, sessions, responses, 5)
	sess, err := svc.Complete(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, sess.Status)
	assert.InDelta(t, 2.4, sess.OverallScore, 1e-9)
	sessions.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestSessionComplete_UnevaluatedResponsesCountZero(t *testing.T) {
	t.Parallel()
	sessions := &mocks.MockSessionRepository{}
	sessions.On("Get", mock.Anything, "sess-1").
		Return(domain.InterviewSession{ID: "sess-1", UserID: "user-1", TotalQuestions: 2}, nil)
	sessions.On("Complete", mock.Anything, "sess-1", 2, mock.MatchedBy(func(overall float64) bool {
		return math.Abs(overall-2.0) < 1e-9 // only the evaluated 4.0 counts
	})).Return(domain.InterviewSession{ID: "sess-1", Status: domain.SessionCompleted}, nil)

	responses := &mocks.MockResponseRepository{}
	responses.On("ListBySession", mock.Anything, "sess-1").Return([]domain.QuestionResponse{
		{QuestionIndex: 0, Evaluation: evalWithScore(4)},
		{QuestionIndex: 1}, // stored draft without an evaluation
	}, nil)

	users := &mocks.MockUserRepository{}
	users.On("Get", mock.Anything, "user-1").Return(domain.User{ID: "user-1"}, nil)
	users.On("UpdateAggregates", mock.Anything, "user-1", 1, mock.Anything).Return(nil)

	svc := usecase.NewSessionService(users, sessions, responses, 2)
	_, err := svc.Complete(context.Background(), "sess-1")
	require.NoError(t, err)
	sessions.AssertExpectations(t)
}

func TestSessionComplete_UserAggregateFailureIsNonFatal(t *testing.T) {
	t.Parallel()
	sessions := &mocks.MockSessionRepository{}
	sessions.On("Get", mock.Anything, "sess-1").
		Return(domain.InterviewSession{ID: "sess-1", UserID: "user-1", TotalQuestions: 1}, nil)
	sessions.On("Complete", mock.Anything, "sess-1", 0, mock.Anything).
		Return(domain.InterviewSession{ID: "sess-1", Status: domain.SessionCompleted}, nil)

	responses := &mocks.MockResponseRepository{}
	responses.On("ListBySession", mock.Anything, "sess-1").Return(nil, nil)

	users := &mocks.MockUserRepository{}
	users.On("Get", mock.Anything, "user-1").Return(domain.User{}, domain.ErrNotFound)

	svc := usecase.NewSessionService(users, sessions, responses, 1)
	_, err := svc.Complete(context.Background(), "sess-1")
	require.NoError(t, err)
	users.AssertNotCalled(t, "UpdateAggregates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionComplete_MissingID(t *testing.T) {
	t.Parallel()
	svc := usecase.NewSessionService(&mocks.MockUserRepository{}, &mocks.MockSessionRepository{}, &mocks.MockResponseRepository{}, 5)
	_, err := svc.Complete(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSessionGet_ReturnsSessionWithResponses(t *testing.T) {
	t.Parallel()
	sessions := &mocks.MockSessionRepository{}
	sessions.On("Get", mock.Anything, "sess-1").
		Return(domain.InterviewSession{ID: "sess-1", StartedAt: time.Now()}, nil)
	responses := &mocks.MockResponseRepository{}
	responses.On("ListBySession", mock.Anything, "sess-1").Return([]domain.QuestionResponse{
		{QuestionIndex: 0}, {QuestionIndex: 1},
	}, nil)

	svc := usecase.NewSessionService(&mocks.MockUserRepository{}, sessions, responses, 5)
	sess, rs, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sess.ID)
	assert.Len(t, rs, 2)
}

func TestSessionAbandon(t *testing.T) {
	t.Parallel()
	sessions := &mocks.MockSessionRepository{}
	sessions.On("UpdateStatus", mock.Anything, "sess-1", domain.SessionAbandoned).Return(nil)

	svc := usecase.NewSessionService(&mocks.MockUserRepository{}, sessions, &mocks.MockResponseRepository{}, 5)
	require.NoError(t, svc.Abandon(context.Background(), "sess-1"))
	sessions.AssertExpectations(t)
}
