package content

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkalinins/commportal/internal/portal"
)

var ErrRoomNotFound = errors.New("chat room not found")

// Store holds the portal's demo content. News, meetings, discussions and
// documents are fixed; chat messages can be appended.
type Store struct {
	news        []portal.NewsItem
	rooms       []portal.ChatRoom
	meetings    []portal.Meeting
	discussions []portal.Discussion
	documents   []portal.Document

	mu       sync.RWMutex
	messages map[string][]portal.Message // keyed by room ID
	now      func() time.Time
}

func NewStore() *Store {
	s := &Store{now: time.Now}
	s.seed()
	return s
}

func (s *Store) News(ctx context.Context) []portal.NewsItem {
	return s.news
}

func (s *Store) ChatRooms(ctx context.Context) []portal.ChatRoom {
	return s.rooms
}

func (s *Store) Messages(ctx context.Context, roomID string) ([]portal.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs, ok := s.messages[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	out := make([]portal.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *Store) PostMessage(ctx context.Context, roomID string, author portal.User, content string) (portal.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[roomID]; !ok {
		return portal.Message{}, ErrRoomNotFound
	}
	msg := portal.Message{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		UserName:  author.Name,
		Content:   content,
		Timestamp: s.now(),
	}
	s.messages[roomID] = append(s.messages[roomID], msg)
	return msg, nil
}

func (s *Store) Meetings(ctx context.Context) []portal.Meeting {
	return s.meetings
}

func (s *Store) Discussions(ctx context.Context) []portal.Discussion {
	return s.discussions
}

func (s *Store) Documents(ctx context.Context) []portal.Document {
	return s.documents
}
