package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"inkwell/internal/cache"
	"inkwell/internal/errors"
	"inkwell/internal/model"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) ListRecent(ctx context.Context, limit int) ([]model.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestPostService(repo *MockPostRepository) PostService {
	return NewPostService(repo, (*cache.Client)(nil))
}

func TestPostService_Create(t *testing.T) {
	authorID := uuid.New()
	mockRepo := new(MockPostRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

	service := newTestPostService(mockRepo)
	post, err := service.Create(context.Background(), authorID, PostInput{
		Title: "First post",
		Body:  "Some body text",
		Tags:  []string{"go", "blog"},
	})

	assert.NoError(t, err)
	assert.NotNil(t, post)
	assert.Equal(t, authorID, post.AuthorID)
	assert.Equal(t, "First post", post.Title)
	assert.Equal(t, []string{"go", "blog"}, post.Tags)
	mockRepo.AssertExpectations(t)
}

func TestPostService_Update_Ownership(t *testing.T) {
	postID := uuid.New()
	ownerID := uuid.New()
	strangerID := uuid.New()

	tests := []struct {
		name          string
		actorID       uuid.UUID
		setupMock     func(*MockPostRepository)
		expectedError error
	}{
		{
			name:    "owner can update",
			actorID: ownerID,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, AuthorID: ownerID, Title: "old"}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:    "non-author is rejected",
			actorID: strangerID,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, AuthorID: ownerID, Title: "old"}, nil)
			},
			expectedError: errors.ErrNoAccess,
		},
		{
			name:    "missing post",
			actorID: ownerID,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			tt.setupMock(mockRepo)

			service := newTestPostService(mockRepo)
			post, err := service.Update(context.Background(), postID, tt.actorID, PostInput{
				Title: "new title",
				Body:  "new body",
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "new title", post.Title)
				assert.Equal(t, "new body", post.Body)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_Remove_Ownership(t *testing.T) {
	postID := uuid.New()
	ownerID := uuid.New()
	strangerID := uuid.New()

	t.Run("owner can remove", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, AuthorID: ownerID}, nil)
		mockRepo.On("Delete", mock.Anything, postID).Return(nil)

		service := newTestPostService(mockRepo)
		assert.NoError(t, service.Remove(context.Background(), postID, ownerID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-author is rejected and post untouched", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, AuthorID: ownerID}, nil)

		service := newTestPostService(mockRepo)
		err := service.Remove(context.Background(), postID, strangerID)

		assert.ErrorIs(t, err, errors.ErrNoAccess)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})
}

func TestPostService_GetOne(t *testing.T) {
	postID := uuid.New()

	t.Run("increments views exactly once per fetch", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("IncrementViews", mock.Anything, postID).Return(nil)
		mockRepo.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, Title: "hit"}, nil)

		service := newTestPostService(mockRepo)
		post, err := service.GetOne(context.Background(), postID)

		assert.NoError(t, err)
		assert.Equal(t, "hit", post.Title)
		mockRepo.AssertNumberOfCalls(t, "IncrementViews", 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing post", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("IncrementViews", mock.Anything, postID).Return(gorm.ErrRecordNotFound)

		service := newTestPostService(mockRepo)
		post, err := service.GetOne(context.Background(), postID)

		assert.ErrorIs(t, err, errors.ErrPostNotFound)
		assert.Nil(t, post)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestPostService_LastTags(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("ListRecent", mock.Anything, 5).Return([]model.Post{
		{Tags: []string{"go", "web", "go"}},
		{Tags: []string{"sql", "web"}},
		{Tags: []string{"jwt", "redis", "docker"}},
	}, nil)

	service := newTestPostService(mockRepo)
	tags, err := service.LastTags(context.Background())

	assert.NoError(t, err)
	// Distinct, ordered by recency, capped at five.
	assert.Equal(t, []string{"go", "web", "sql", "jwt", "redis"}, tags)
	mockRepo.AssertExpectations(t)
}
