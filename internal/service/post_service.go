package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inkwell/internal/cache"
	"inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const (
	lastTagsLimit = 5
	tagsCacheKey  = "posts:last_tags"
	tagsCacheTTL  = time.Minute
)

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title    string
	Body     string
	Tags     []string
	ImageURL string
}

// PostService handles post CRUD, view counting, and tag listing.
type PostService interface {
	Create(ctx context.Context, authorID uuid.UUID, in PostInput) (*model.Post, error)
	Update(ctx context.Context, id, authorID uuid.UUID, in PostInput) (*model.Post, error)
	Remove(ctx context.Context, id, authorID uuid.UUID) error
	GetOne(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	LastTags(ctx context.Context) ([]string, error)
}

type postService struct {
	posts repository.PostRepository
	cache *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, cache *cache.Client) PostService {
	return &postService{posts: posts, cache: cache}
}

// Create persists a post authored by the given user.
func (s *postService) Create(ctx context.Context, authorID uuid.UUID, in PostInput) (*model.Post, error) {
	post := &model.Post{
		ID:       uuid.New(),
		Title:    in.Title,
		Body:     in.Body,
		Tags:     in.Tags,
		ImageURL: in.ImageURL,
		AuthorID: authorID,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	_ = s.cache.Delete(ctx, tagsCacheKey)
	return post, nil
}

// Update applies field updates to a post owned by the given user.
func (s *postService) Update(ctx context.Context, id, authorID uuid.UUID, in PostInput) (*model.Post, error) {
	post, err := s.fetchOwned(ctx, id, authorID)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Body = in.Body
	post.Tags = in.Tags
	post.ImageURL = in.ImageURL

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	_ = s.cache.Delete(ctx, tagsCacheKey)
	return post, nil
}

// Remove deletes a post owned by the given user.
func (s *postService) Remove(ctx context.Context, id, authorID uuid.UUID) error {
	if _, err := s.fetchOwned(ctx, id, authorID); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}

	_ = s.cache.Delete(ctx, tagsCacheKey)
	return nil
}

// GetOne returns a post by id, incrementing its view counter as a side effect.
func (s *postService) GetOne(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if err := s.posts.IncrementViews(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, fmt.Errorf("increment views: %w", err)
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

// List returns all posts in recency order with authors resolved.
func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// LastTags returns the distinct tags of the most recent posts, capped at
// lastTagsLimit. Results are cached briefly; mutations invalidate the cache.
func (s *postService) LastTags(ctx context.Context) ([]string, error) {
	if data, _ := s.cache.Get(ctx, tagsCacheKey); data != nil {
		var cached []string
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := s.posts.ListRecent(ctx, lastTagsLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0, lastTagsLimit)
	for _, post := range posts {
		for _, tag := range post.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
			if len(tags) == lastTagsLimit {
				break
			}
		}
		if len(tags) == lastTagsLimit {
			break
		}
	}

	if payload, err := json.Marshal(tags); err == nil {
		_ = s.cache.Set(ctx, tagsCacheKey, payload, tagsCacheTTL)
	}
	return tags, nil
}

// fetchOwned loads a post and enforces that authorID owns it.
func (s *postService) fetchOwned(ctx context.Context, id, authorID uuid.UUID) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post.AuthorID != authorID {
		return nil, errors.ErrNoAccess
	}
	return post, nil
}
