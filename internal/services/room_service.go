package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/hotelbooking/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxPage         = 10000
	hotelsCacheKey  = "hotels:all"
	hotelsCacheTTL  = 5 * time.Minute
)

// JSONCache stores JSON-encodable values by key.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

var sortColumns = map[string]string{
	"price":      "price",
	"capacity":   "capacity",
	"createdat":  "created_at",
	"created_at": "created_at",
}

type RoomService struct {
	hotels models.HotelRepo
	cache  JSONCache
	logger *slog.Logger
}

func NewRoomService(hotels models.HotelRepo, cache JSONCache, logger *slog.Logger) *RoomService {
	return &RoomService{
		hotels: hotels,
		cache:  cache,
		logger: logger,
	}
}

// paging applies defaults and rejects pages whose offset would leave the
// range the store can address.
func paging(page, size *int) (int, int, error) {
	p, s := 0, defaultPageSize
	if page != nil && *page > 0 {
		p = *page
	}
	if size != nil && *size > 0 {
		s = *size
	}
	if p > maxPage {
		return 0, 0, fmt.Errorf("%w: page cannot exceed %d", ErrInvalidInput, maxPage)
	}
	if s > maxPageSize {
		return 0, 0, fmt.Errorf("%w: size cannot exceed %d", ErrInvalidInput, maxPageSize)
	}
	return p, s, nil
}

func (rs *RoomService) SearchRooms(ctx context.Context, req models.RoomSearchRequest) (*models.RoomPage, error) {
	page, size, err := paging(req.Page, req.Size)
	if err != nil {
		return nil, err
	}
	q := models.RoomQuery{
		Keyword:    req.Keyword,
		HotelID:    req.HotelID,
		City:       req.City,
		Country:    req.Country,
		SortColumn: "id",
		Page:       page,
		Size:       size,
	}
	return rs.query(ctx, q)
}

func (rs *RoomService) FilterRooms(ctx context.Context, req models.RoomFilterRequest) (*models.RoomPage, error) {
	column := "price"
	if req.SortBy != "" {
		c, ok := sortColumns[strings.ToLower(strings.TrimSpace(req.SortBy))]
		if !ok {
			return nil, fmt.Errorf("%w: sortBy must be one of price, capacity, createdAt", ErrInvalidInput)
		}
		column = c
	}

	desc := false
	switch strings.ToUpper(strings.TrimSpace(req.SortDirection)) {
	case "", "ASC":
	case "DESC":
		desc = true
	default:
		return nil, fmt.Errorf("%w: sortDirection must be ASC or DESC", ErrInvalidInput)
	}

	if req.MinPrice != nil && req.MaxPrice != nil && req.MinPrice.GreaterThan(*req.MaxPrice) {
		return nil, fmt.Errorf("%w: minPrice cannot exceed maxPrice", ErrInvalidInput)
	}
	if req.MinCapacity != nil && req.MaxCapacity != nil && *req.MinCapacity > *req.MaxCapacity {
		return nil, fmt.Errorf("%w: minCapacity cannot exceed maxCapacity", ErrInvalidInput)
	}

	page, size, err := paging(req.Page, req.Size)
	if err != nil {
		return nil, err
	}
	q := models.RoomQuery{
		HotelID:     req.HotelID,
		City:        req.City,
		Country:     req.Country,
		RoomType:    req.RoomType,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		MinCapacity: req.MinCapacity,
		MaxCapacity: req.MaxCapacity,
		SortColumn:  column,
		SortDesc:    desc,
		Page:        page,
		Size:        size,
	}
	return rs.query(ctx, q)
}

func (rs *RoomService) query(ctx context.Context, q models.RoomQuery) (*models.RoomPage, error) {
	rooms, total, err := rs.hotels.QueryRooms(ctx, q)
	if err != nil {
		return nil, err
	}
	page := models.NewRoomPage(rooms, q.Page, q.Size, total)
	return &page, nil
}

func (rs *RoomService) GetRoomDetail(ctx context.Context, roomID uint) (*models.RoomDetailResponse, error) {
	room, err := rs.hotels.GetRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	detail := room.Detail()
	return &detail, nil
}

// GetAllHotels serves the hotel list from cache when available.
func (rs *RoomService) GetAllHotels(ctx context.Context) ([]models.HotelResponse, error) {
	var hotels []models.HotelResponse
	if rs.cache != nil {
		found, err := rs.cache.GetJSON(ctx, hotelsCacheKey, &hotels)
		if err != nil {
			rs.logger.Warn("hotel cache read failed", "error", err)
		} else if found {
			return hotels, nil
		}
	}

	hotels, err := rs.hotels.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	if rs.cache != nil {
		if err := rs.cache.SetJSON(ctx, hotelsCacheKey, hotels, hotelsCacheTTL); err != nil {
			rs.logger.Warn("hotel cache write failed", "error", err)
		}
	}
	return hotels, nil
}
