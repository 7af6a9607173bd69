package mock

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"postlikes/app/models"
	"postlikes/app/repositories"

	"github.com/google/uuid"
)

// PostRepository keeps posts in memory. Roster mutations hold the write
// lock for the whole check-and-mutate, matching the atomicity of the real
// stores.
type PostRepository struct {
	posts map[uuid.UUID]*models.Post
	mutex sync.RWMutex

	// Calls counts every repository call, for asserting that invalid input
	// never reaches the store.
	Calls int
}

type UserRepository struct {
	users map[uuid.UUID]*models.User
	mutex sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[uuid.UUID]*models.Post),
	}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[uuid.UUID]*models.User),
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[uuid.UUID]*models.Post)
	m.Calls = 0
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.LikedBy = append([]uuid.UUID{}, p.LikedBy...)
	return &c
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Calls++

	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return err
	}
	m.posts[post.ID] = clonePost(post)
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Calls++

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return clonePost(post), nil
}

func (m *PostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Calls++

	var posts []*models.Post
	for _, post := range m.posts {
		posts = append(posts, clonePost(post))
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID.String() < posts[j].ID.String()
	})
	if offset >= len(posts) {
		return []*models.Post{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Calls++

	stored, exists := m.posts[post.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	stored.Title = post.Title
	stored.Content = post.Content
	stored.UpdatedAt = time.Now().UTC()
	*post = *clonePost(stored)
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Calls++

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *PostRepository) AddLike(ctx context.Context, postID, userID uuid.UUID) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Calls++

	post, exists := m.posts[postID]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	if err := post.AddLike(userID); err != nil {
		return nil, err
	}
	post.UpdatedAt = time.Now().UTC()
	return clonePost(post), nil
}

func (m *PostRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Calls++

	post, exists := m.posts[postID]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	if err := post.RemoveLike(userID); err != nil {
		return nil, err
	}
	post.UpdatedAt = time.Now().UTC()
	return clonePost(post), nil
}

// UserRepository implementation
func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return err
	}
	for _, existing := range m.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return models.ErrUsernameTaken
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	found := *user
	return &found, nil
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Username, username) {
			found := *user
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if user, exists := m.users[id]; exists {
			found := *user
			users = append(users, &found)
		}
	}
	return users, nil
}

func (m *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}
