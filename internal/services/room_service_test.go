package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/joshua-takyi/hotelbooking/internal/cache"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func seededRooms() (*memStore, *models.Hotel) {
	store := newMemStore()
	hanoi := store.addHotel("Riverside", "Hanoi")
	danang := store.addHotel("Seaview", "Da Nang")
	store.addRoom(hanoi, "Standard", 400000, 2)
	store.addRoom(hanoi, "Deluxe", 650000, 2)
	store.addRoom(hanoi, "Suite", 1200000, 4)
	store.addRoom(danang, "Standard", 500000, 2)
	return store, hanoi
}

func intPtr(v int) *int { return &v }

func TestSearchRoomsPaging(t *testing.T) {
	store, _ := seededRooms()
	svc := NewRoomService(store, nil, discardLogger())
	ctx := context.Background()

	page, err := svc.SearchRooms(ctx, models.RoomSearchRequest{Size: intPtr(3)})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalElements != 4 || page.TotalPages != 2 || len(page.Rooms) != 3 {
		t.Fatalf("unexpected first page: %+v", page)
	}
	if !page.IsFirst || page.IsLast {
		t.Fatalf("first page flags: first=%v last=%v", page.IsFirst, page.IsLast)
	}

	page, err = svc.SearchRooms(ctx, models.RoomSearchRequest{Page: intPtr(1), Size: intPtr(3)})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Rooms) != 1 || page.IsFirst || !page.IsLast {
		t.Fatalf("unexpected last page: %+v", page)
	}

	page, err = svc.SearchRooms(ctx, models.RoomSearchRequest{City: "hanoi"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.PageSize != defaultPageSize || page.TotalElements != 3 {
		t.Fatalf("city search: %+v", page)
	}
}

func TestPagingBounds(t *testing.T) {
	store, _ := seededRooms()
	svc := NewRoomService(store, nil, discardLogger())
	ctx := context.Background()

	huge := math.MaxInt / 2
	if _, err := svc.SearchRooms(ctx, models.RoomSearchRequest{Page: &huge, Size: intPtr(100)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("huge page err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.FilterRooms(ctx, models.RoomFilterRequest{Page: intPtr(maxPage + 1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("filter page err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.SearchRooms(ctx, models.RoomSearchRequest{Size: intPtr(maxPageSize + 1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("size err = %v, want ErrInvalidInput", err)
	}

	page, err := svc.SearchRooms(ctx, models.RoomSearchRequest{Page: intPtr(maxPage), Size: intPtr(maxPageSize)})
	if err != nil {
		t.Fatalf("last addressable page: %v", err)
	}
	if len(page.Rooms) != 0 || page.CurrentPage != maxPage {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestFilterRoomsValidation(t *testing.T) {
	store, _ := seededRooms()
	svc := NewRoomService(store, nil, discardLogger())
	ctx := context.Background()

	low, high := decimal.NewFromInt(900000), decimal.NewFromInt(100000)
	cases := []struct {
		name string
		req  models.RoomFilterRequest
	}{
		{"unknown sort", models.RoomFilterRequest{SortBy: "name"}},
		{"bad direction", models.RoomFilterRequest{SortDirection: "UP"}},
		{"price bounds", models.RoomFilterRequest{MinPrice: &low, MaxPrice: &high}},
		{"capacity bounds", models.RoomFilterRequest{MinCapacity: intPtr(5), MaxCapacity: intPtr(2)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.FilterRooms(ctx, tc.req); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestFilterRoomsSortsByPrice(t *testing.T) {
	store, hanoi := seededRooms()
	svc := NewRoomService(store, nil, discardLogger())

	hotelID := hanoi.ID
	page, err := svc.FilterRooms(context.Background(), models.RoomFilterRequest{
		HotelID:       &hotelID,
		SortBy:        "price",
		SortDirection: "desc",
	})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(page.Rooms) != 3 {
		t.Fatalf("rooms = %d, want 3", len(page.Rooms))
	}
	if page.Rooms[0].RoomType != "Suite" || page.Rooms[2].RoomType != "Standard" {
		t.Fatalf("unexpected order: %s, %s, %s", page.Rooms[0].RoomType, page.Rooms[1].RoomType, page.Rooms[2].RoomType)
	}
}

func TestGetRoomDetail(t *testing.T) {
	store, hanoi := seededRooms()
	svc := NewRoomService(store, nil, discardLogger())
	room := store.addRoom(hanoi, "Family", 900000, 5)

	detail, err := svc.GetRoomDetail(context.Background(), room.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Hotel.Name != "Riverside" || detail.Capacity != 5 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if _, err := svc.GetRoomDetail(context.Background(), 9999); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("missing room err = %v", err)
	}
}

func TestGetAllHotelsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store, _ := seededRooms()
	svc := NewRoomService(store, cache.NewStore(rdb), discardLogger())
	ctx := context.Background()

	hotels, err := svc.GetAllHotels(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(hotels) != 2 || hotels[0].RoomCount != 3 {
		t.Fatalf("unexpected hotels: %+v", hotels)
	}

	// served from cache until the entry expires
	store.addHotel("Mountain Lodge", "Sapa")
	hotels, err = svc.GetAllHotels(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(hotels) != 2 {
		t.Fatalf("cache miss: got %d hotels", len(hotels))
	}

	mr.FastForward(hotelsCacheTTL + time.Second)
	hotels, err = svc.GetAllHotels(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(hotels) != 3 {
		t.Fatalf("stale cache: got %d hotels", len(hotels))
	}
}
