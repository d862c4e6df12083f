// internal/database/memory.go
//
// In-memory store implementations mirroring the MongoDB update semantics,
// including the unconditional counter increments/decrements. Used by tests
// and by local development without a running store.
package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/courtsideapp/courtside/internal/models"
)

// NewMemoryStores returns a Stores bundle backed by process memory.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:    NewMemoryUserStore(),
		Courts:   NewMemoryCourtStore(),
		Friends:  NewMemoryFriendStore(),
		Messages: NewMemoryMessageStore(),
	}
}

// MemoryUserStore implements UserStore over a map.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *MemoryUserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrEmailExists
		}
	}
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return ErrUsernameExists
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) ListOthers(ctx context.Context, id primitive.ObjectID) ([]models.User, error) {
	return s.list(func(u *models.User) bool { return u.ID != id })
}

func (s *MemoryUserStore) ListPublicOthers(ctx context.Context, id primitive.ObjectID) ([]models.User, error) {
	return s.list(func(u *models.User) bool { return u.ID != id && u.IsPublic })
}

func (s *MemoryUserStore) list(keep func(*models.User) bool) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if keep(u) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	if upd.Username != nil && *upd.Username != "" {
		u.Username = *upd.Username
	}
	if upd.ProfilePic != nil && *upd.ProfilePic != "" {
		pic := *upd.ProfilePic
		u.ProfilePic = &pic
	}
	if upd.AvatarURL != nil && *upd.AvatarURL != "" {
		av := *upd.AvatarURL
		u.AvatarURL = &av
		u.ProfilePic = &av
	}
	return nil
}

func (s *MemoryUserStore) SetPublic(ctx context.Context, id primitive.ObjectID, public bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.IsPublic = public
	}
	return nil
}

func (s *MemoryUserStore) SetCurrentCourt(ctx context.Context, id primitive.ObjectID, courtID *primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	if courtID == nil {
		u.CurrentCourtID = nil
	} else {
		cid := *courtID
		u.CurrentCourtID = &cid
	}
	return nil
}

// MemoryCourtStore implements CourtStore over a map. AddOccupant and
// RemoveOccupant replicate the store-side update documents: set membership
// is idempotent but the counter moves unconditionally.
type MemoryCourtStore struct {
	mu     sync.Mutex
	courts map[primitive.ObjectID]*models.Court
	order  []primitive.ObjectID
}

func NewMemoryCourtStore() *MemoryCourtStore {
	return &MemoryCourtStore{courts: make(map[primitive.ObjectID]*models.Court)}
}

func (s *MemoryCourtStore) List(ctx context.Context) ([]models.Court, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Court, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.courts[id])
	}
	return out, nil
}

func (s *MemoryCourtStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Court, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	cp.PublicUsersAtCourt = append([]primitive.ObjectID(nil), c.PublicUsersAtCourt...)
	return &cp, nil
}

func (s *MemoryCourtStore) AddOccupant(ctx context.Context, courtID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courts[courtID]
	if !ok {
		return nil
	}
	if !c.HasOccupant(userID) {
		c.PublicUsersAtCourt = append(c.PublicUsersAtCourt, userID)
	}
	c.CurrentPlayers++
	return nil
}

func (s *MemoryCourtStore) RemoveOccupant(ctx context.Context, courtID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courts[courtID]
	if !ok {
		return nil
	}
	for i, id := range c.PublicUsersAtCourt {
		if id == userID {
			c.PublicUsersAtCourt = append(c.PublicUsersAtCourt[:i], c.PublicUsersAtCourt[i+1:]...)
			break
		}
	}
	c.CurrentPlayers--
	return nil
}

func (s *MemoryCourtStore) ClampFloor(ctx context.Context, courtID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.courts[courtID]; ok && c.CurrentPlayers < 0 {
		c.CurrentPlayers = 0
	}
	return nil
}

func (s *MemoryCourtStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.courts)), nil
}

func (s *MemoryCourtStore) InsertMany(ctx context.Context, courts []models.Court) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range courts {
		c := courts[i]
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		if c.PublicUsersAtCourt == nil {
			c.PublicUsersAtCourt = []primitive.ObjectID{}
		}
		s.courts[c.ID] = &c
		s.order = append(s.order, c.ID)
	}
	return nil
}

// Delete removes a court outright. Tests use it to simulate a venue
// disappearing between presence operations.
func (s *MemoryCourtStore) Delete(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.courts, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// MemoryFriendStore implements FriendStore over a slice.
type MemoryFriendStore struct {
	mu       sync.Mutex
	requests []*models.FriendRequest
}

func NewMemoryFriendStore() *MemoryFriendStore {
	return &MemoryFriendStore{}
}

func (s *MemoryFriendStore) FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fr := range s.requests {
		if (fr.FromUserID == a && fr.ToUserID == b) || (fr.FromUserID == b && fr.ToUserID == a) {
			cp := *fr
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryFriendStore) Create(ctx context.Context, fr *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fr.ID.IsZero() {
		fr.ID = primitive.NewObjectID()
	}
	if fr.CreatedAt.IsZero() {
		fr.CreatedAt = time.Now().UTC()
	}
	fr.Status = models.FriendPending
	cp := *fr
	s.requests = append(s.requests, &cp)
	return nil
}

func (s *MemoryFriendStore) Accept(ctx context.Context, requestID, recipient primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fr := range s.requests {
		if fr.ID == requestID && fr.ToUserID == recipient && fr.Status == models.FriendPending {
			now := time.Now().UTC()
			fr.Status = models.FriendAccepted
			fr.AcceptedAt = &now
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryFriendStore) ListAccepted(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.FriendRequest
	for _, fr := range s.requests {
		if fr.Status == models.FriendAccepted && (fr.FromUserID == userID || fr.ToUserID == userID) {
			out = append(out, *fr)
		}
	}
	return out, nil
}

func (s *MemoryFriendStore) IsConnected(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fr := range s.requests {
		if fr.Status != models.FriendAccepted {
			continue
		}
		if (fr.FromUserID == a && fr.ToUserID == b) || (fr.FromUserID == b && fr.ToUserID == a) {
			return true, nil
		}
	}
	return false, nil
}

// MemoryMessageStore implements MessageStore over a slice.
type MemoryMessageStore struct {
	mu       sync.Mutex
	messages []*models.Message
}

func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{}
}

func (s *MemoryMessageStore) Insert(ctx context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	cp := *m
	s.messages = append(s.messages, &cp)
	return nil
}

func (s *MemoryMessageStore) MarkRead(ctx context.Context, from, to primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.FromUserID == from && m.ToUserID == to {
			m.Read = true
		}
	}
	return nil
}

func (s *MemoryMessageStore) Thread(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if (m.FromUserID == a && m.ToUserID == b) || (m.FromUserID == b && m.ToUserID == a) {
			out = append(out, *m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *MemoryMessageStore) ListFor(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.FromUserID == userID || m.ToUserID == userID {
			out = append(out, *m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (s *MemoryMessageStore) CountUnread(ctx context.Context, from, to primitive.ObjectID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.messages {
		if m.FromUserID == from && m.ToUserID == to && !m.Read {
			n++
		}
	}
	return n, nil
}
