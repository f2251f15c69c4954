package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/notify"
	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory stand-in for the postgres repo.
type memStore struct {
	mu     sync.Mutex
	lockMu sync.Mutex
	nextID uint

	users    map[uint]*models.User
	roles    map[string]*models.Role
	otps     []*models.OtpVerification
	tokens   map[string]*models.RefreshToken
	hotels   map[uint]*models.Hotel
	rooms    map[uint]*models.Room
	bookings map[uint]*models.Booking
	reviews  map[uint]*models.Review
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uint]*models.User{},
		roles:    map[string]*models.Role{},
		tokens:   map[string]*models.RefreshToken{},
		hotels:   map[uint]*models.Hotel{},
		rooms:    map[uint]*models.Room{},
		bookings: map[uint]*models.Booking{},
		reviews:  map[uint]*models.Review{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) addHotel(name, city string) *models.Hotel {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := &models.Hotel{ID: m.id(), Name: name, City: city, Country: "Vietnam"}
	m.hotels[h.ID] = h
	return h
}

func (m *memStore) addRoom(hotel *models.Hotel, roomType string, price int64, capacity int) *models.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := &models.Room{
		ID:       m.id(),
		HotelID:  hotel.ID,
		Hotel:    *hotel,
		RoomType: roomType,
		Price:    decimal.NewFromInt(price),
		Capacity: capacity,
	}
	m.rooms[r.ID] = r
	return r
}

func (m *memStore) addUser(email string, verified bool) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &models.User{
		ID:         m.id(),
		FirstName:  "Test",
		LastName:   "Guest",
		Email:      email,
		IsVerified: verified,
		Role:       models.Role{ID: 1, Name: models.DefaultRoleName},
		CreatedAt:  time.Now(),
	}
	m.users[u.ID] = u
	return u
}

// users

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return models.ErrDuplicateKey
		}
	}
	user.ID = m.id()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (m *memStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (m *memStore) UpdateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return models.ErrRecordNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) GetOrCreateRole(_ context.Context, name string) (*models.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.roles[name]; ok {
		return r, nil
	}
	r := &models.Role{ID: m.id(), Name: name}
	m.roles[name] = r
	return r, nil
}

func (m *memStore) DeleteUnverifiedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, u := range m.users {
		if !u.IsVerified && u.CreatedAt.Before(cutoff) {
			delete(m.users, id)
			n++
		}
	}
	return n, nil
}

// otps

func (m *memStore) CreateOtp(_ context.Context, otp *models.OtpVerification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	otp.ID = m.id()
	cp := *otp
	m.otps = append(m.otps, &cp)
	return nil
}

func (m *memStore) FindUnusedOtp(_ context.Context, email, code string, purpose models.OtpPurpose) (*models.OtpVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.otps) - 1; i >= 0; i-- {
		o := m.otps[i]
		if strings.EqualFold(o.Email, email) && o.OtpCode == code && o.Purpose == purpose && !o.IsUsed {
			cp := *o
			return &cp, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (m *memStore) MarkOtpUsed(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.otps {
		if o.ID == id && !o.IsUsed {
			o.IsUsed = true
			return nil
		}
	}
	return models.ErrRecordNotFound
}

func (m *memStore) DeleteExpiredOtps(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.otps[:0]
	var n int64
	for _, o := range m.otps {
		if o.ExpiresAt.Before(now) {
			n++
			continue
		}
		kept = append(kept, o)
	}
	m.otps = kept
	return n, nil
}

func (m *memStore) latestOtp(email string, purpose models.OtpPurpose) *models.OtpVerification {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.otps) - 1; i >= 0; i-- {
		if m.otps[i].Email == email && m.otps[i].Purpose == purpose {
			return m.otps[i]
		}
	}
	return nil
}

// refresh tokens

func (m *memStore) SaveRefreshToken(_ context.Context, token *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token.ID = m.id()
	cp := *token
	m.tokens[token.Token] = &cp
	return nil
}

func (m *memStore) GetRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.tokens[token]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *rt
	return &cp, nil
}

// hotels and rooms

func (m *memStore) ListHotels(_ context.Context) ([]models.HotelResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.HotelResponse, 0, len(m.hotels))
	for _, h := range m.hotels {
		count := 0
		for _, r := range m.rooms {
			if r.HotelID == h.ID {
				count++
			}
		}
		out = append(out, h.Response(count))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HotelID < out[j].HotelID })
	return out, nil
}

func (m *memStore) GetHotelByID(_ context.Context, id uint) (*models.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *h
	return &cp, nil
}

func (m *memStore) GetRoomByID(_ context.Context, id uint) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) QueryRooms(_ context.Context, q models.RoomQuery) ([]models.Room, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Room
	for _, r := range m.rooms {
		if q.HotelID != nil && r.HotelID != *q.HotelID {
			continue
		}
		if q.City != "" && !strings.EqualFold(r.Hotel.City, q.City) {
			continue
		}
		if q.MinPrice != nil && r.Price.LessThan(*q.MinPrice) {
			continue
		}
		if q.MaxPrice != nil && r.Price.GreaterThan(*q.MaxPrice) {
			continue
		}
		matched = append(matched, *r)
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if q.SortDesc {
			a, b = b, a
		}
		if q.SortColumn == "price" && !a.Price.Equal(b.Price) {
			return a.Price.LessThan(b.Price)
		}
		return a.ID < b.ID
	})
	total := int64(len(matched))
	start := q.Page * q.Size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// bookings

func (m *memStore) WithRoomLock(ctx context.Context, roomID uint, fn func(tx models.BookingTx, room *models.Room) error) error {
	m.lockMu.Lock()
	defer m.lockMu.Unlock()
	room, err := m.GetRoomByID(ctx, roomID)
	if err != nil {
		return err
	}
	return fn(m, room)
}

func (m *memStore) GetBookingByID(_ context.Context, id uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *b
	if r, ok := m.rooms[b.RoomID]; ok {
		cp.Room = *r
	}
	return &cp, nil
}

func (m *memStore) HasConfirmedOverlap(_ context.Context, roomID uint, checkIn, checkOut models.Date, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.RoomID == roomID && b.ID != excludeID && b.Status == models.BookingConfirmed && overlaps(b, checkIn, checkOut) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateBooking(_ context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking.ID = m.id()
	booking.CreatedAt = time.Now()
	cp := *booking
	m.bookings[booking.ID] = &cp
	return nil
}

func (m *memStore) SetBookingStatus(_ context.Context, id uint, from, to models.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return models.ErrStatusChanged
	}
	b.Status = to
	return nil
}

// overlaps mirrors the three range clauses of the postgres overlap query.
func overlaps(b *models.Booking, in, out models.Date) bool {
	startsInside := !b.CheckIn.After(in) && b.CheckOut.After(in)
	endsInside := b.CheckIn.Before(out) && !b.CheckOut.Before(out)
	contained := !b.CheckIn.Before(in) && !b.CheckOut.After(out)
	return startsInside || endsInside || contained
}

func (m *memStore) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *memStore) filterBookings(keep func(*models.Booking) bool) []models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if keep(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *memStore) ListUserBookings(_ context.Context, userID uint) ([]models.Booking, error) {
	return m.filterBookings(func(b *models.Booking) bool { return b.UserID == userID }), nil
}

func (m *memStore) ListUpcomingBookings(_ context.Context, userID uint, today models.Date) ([]models.Booking, error) {
	return m.filterBookings(func(b *models.Booking) bool {
		return b.UserID == userID && !b.CheckIn.Before(today) && b.Status != models.BookingCancelled
	}), nil
}

func (m *memStore) ListPastBookings(_ context.Context, userID uint, today models.Date) ([]models.Booking, error) {
	return m.filterBookings(func(b *models.Booking) bool {
		return b.UserID == userID && (b.CheckOut.Before(today) || b.Status == models.BookingCancelled)
	}), nil
}

func (m *memStore) ListRoomsByBookingStatus(_ context.Context, status models.BookingStatus) ([]models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[uint]bool{}
	var out []models.Room
	for _, b := range m.bookings {
		if b.Status == status && !seen[b.RoomID] {
			seen[b.RoomID] = true
			out = append(out, *m.rooms[b.RoomID])
		}
	}
	return out, nil
}

// reviews

func (m *memStore) CreateReview(_ context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.UserID == review.UserID && r.HotelID == review.HotelID {
			return models.ErrDuplicateKey
		}
	}
	review.ID = m.id()
	review.CreatedAt = time.Now()
	cp := *review
	m.reviews[review.ID] = &cp
	return nil
}

func (m *memStore) UpdateReview(_ context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[review.ID]
	if !ok {
		return models.ErrRecordNotFound
	}
	r.Rating = review.Rating
	r.Comment = review.Comment
	return nil
}

func (m *memStore) GetReviewByID(_ context.Context, id uint) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *r
	if u, ok := m.users[r.UserID]; ok {
		cp.User = *u
	}
	if h, ok := m.hotels[r.HotelID]; ok {
		cp.Hotel = *h
	}
	return &cp, nil
}

func (m *memStore) GetUserHotelReview(ctx context.Context, userID, hotelID uint) (*models.Review, error) {
	m.mu.Lock()
	var found uint
	for _, r := range m.reviews {
		if r.UserID == userID && r.HotelID == hotelID {
			found = r.ID
		}
	}
	m.mu.Unlock()
	if found == 0 {
		return nil, models.ErrRecordNotFound
	}
	return m.GetReviewByID(ctx, found)
}

func (m *memStore) ListReviewsByHotel(ctx context.Context, hotelID uint) ([]models.Review, error) {
	m.mu.Lock()
	var ids []uint
	for _, r := range m.reviews {
		if r.HotelID == hotelID {
			ids = append(ids, r.ID)
		}
	}
	m.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]models.Review, 0, len(ids))
	for _, id := range ids {
		r, err := m.GetReviewByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

// recordingNotifier captures sent codes.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *recordingNotifier) SendOtp(_ context.Context, toEmail, code string, kind notify.Kind) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, toEmail+":"+code)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

// memThrottle grants each key once.
type memThrottle struct {
	mu   sync.Mutex
	keys map[string]bool
}

func (t *memThrottle) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.keys == nil {
		t.keys = map[string]bool{}
	}
	if t.keys[key] {
		return false, nil
	}
	t.keys[key] = true
	return true, nil
}
