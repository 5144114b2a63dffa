package room_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hotel-pms/internal"
	roomDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/room"
	"github.com/frahmantamala/hotel-pms/internal/room"
)

func TestRoom(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Room Suite")
}

// MockRepository implements room.Repository for testing
type MockRepository struct {
	rooms      map[string]*roomDatamodel.Room
	failError  error
	raceOnce   bool
	batchCalls int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{rooms: make(map[string]*roomDatamodel.Room)}
}

func (m *MockRepository) ListByHotel(_ context.Context, hotelID string) ([]*roomDatamodel.Room, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	var out []*roomDatamodel.Room
	for _, r := range m.rooms {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (m *MockRepository) GetByID(_ context.Context, id string) (*roomDatamodel.Room, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	return m.rooms[id], nil
}

func (m *MockRepository) ExistingNumbers(_ context.Context, hotelID string, numbers []string) ([]string, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	wanted := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		wanted[n] = true
	}
	var existing []string
	for _, r := range m.rooms {
		if r.HotelID == hotelID && wanted[r.RoomNumber] {
			existing = append(existing, r.RoomNumber)
		}
	}
	sort.Strings(existing)
	return existing, nil
}

func (m *MockRepository) CreateBatch(_ context.Context, rooms []*roomDatamodel.Room) error {
	m.batchCalls++
	if m.failError != nil {
		return m.failError
	}
	if m.raceOnce {
		m.raceOnce = false
		// a concurrent request inserted the first number between check and insert
		m.addRoom(rooms[0].HotelID, rooms[0].RoomNumber)
		return errors.Join(room.ErrRoomNumberTaken, errors.New("duplicate key"))
	}
	for _, r := range rooms {
		m.rooms[r.ID] = r
	}
	return nil
}

func (m *MockRepository) UpdateStatus(_ context.Context, hotelID, id, status string) error {
	if m.failError != nil {
		return m.failError
	}
	r, ok := m.rooms[id]
	if !ok || r.HotelID != hotelID {
		return errors.New("record not found")
	}
	r.Status = status
	return nil
}

func (m *MockRepository) addRoom(hotelID, number string) *roomDatamodel.Room {
	r := &roomDatamodel.Room{
		ID:           uuid.NewString(),
		HotelID:      hotelID,
		RoomNumber:   number,
		Type:         "STANDARD",
		RatePerNight: 50000,
		Status:       "AVAILABLE",
	}
	m.rooms[r.ID] = r
	return r
}

type countingObserver struct{ added int }

func (o *countingObserver) ObserveRoomsAdded(n int) { o.added += n }

func strPtr(s string) *string { return &s }

var _ = Describe("Room Service", func() {
	var (
		repo     *MockRepository
		observer *countingObserver
		service  *room.Service
		ctx      context.Context
		hotelID  string
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		observer = &countingObserver{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = room.NewService(repo, observer, logger)
		ctx = context.Background()
		hotelID = uuid.NewString()
	})

	Describe("AddRooms", func() {
		It("adds every room with the shared type, rate and default status", func() {
			resp, err := service.AddRooms(ctx, hotelID, room.AddRoomsDTO{
				RoomNumbers: []string{"101", " 102 "},
				Type:        "standard",
				Price:       50000,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Success).To(BeTrue())
			Expect(resp.Count).To(Equal(2))
			Expect(resp.Message).To(Equal("2 room(s) added successfully"))
			Expect(observer.added).To(Equal(2))

			rooms, err := service.ListRooms(ctx, hotelID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rooms).To(HaveLen(2))
			Expect(rooms[0].RoomNumber).To(Equal("101"))
			Expect(rooms[1].RoomNumber).To(Equal("102"))
			for _, r := range rooms {
				Expect(r.Type).To(Equal(room.TypeStandard))
				Expect(r.RatePerNight).To(Equal(int64(50000)))
				Expect(r.Status).To(Equal(room.StatusAvailable))
			}
		})

		It("honours an explicit initial status", func() {
			_, err := service.AddRooms(ctx, hotelID, room.AddRoomsDTO{
				RoomNumbers: []string{"201"},
				Type:        "SUITE",
				Price:       90000,
				Status:      strPtr("maintenance"),
			})
			Expect(err).NotTo(HaveOccurred())

			rooms, err := service.ListRooms(ctx, hotelID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rooms[0].Status).To(Equal(room.StatusMaintenance))
		})

		It("reports every existing number and inserts nothing", func() {
			repo.addRoom(hotelID, "101")
			repo.addRoom(hotelID, "103")

			_, err := service.AddRooms(ctx, hotelID, room.AddRoomsDTO{
				RoomNumbers: []string{"101", "102", "103"},
				Type:        "DOUBLE",
				Price:       60000,
			})
			Expect(errors.Is(err, internal.NewConflictError("", internal.ErrCodeDuplicateRooms))).To(BeTrue())

			appErr, _ := internal.IsAppError(err)
			Expect(appErr.StatusCode).To(Equal(409))
			Expect(appErr.Message).To(Equal("Room numbers already exist: 101, 103"))
			Expect(appErr.Details).To(Equal(room.DuplicateRoomsDetails{RoomNumbers: []string{"101", "103"}}))
			Expect(repo.batchCalls).To(BeZero())
			Expect(repo.rooms).To(HaveLen(2))
		})

		It("allows the same number in another hotel", func() {
			repo.addRoom(uuid.NewString(), "101")

			_, err := service.AddRooms(ctx, hotelID, room.AddRoomsDTO{
				RoomNumbers: []string{"101"},
				Type:        "SINGLE",
				Price:       40000,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports the conflict when a concurrent insert wins the race", func() {
			repo.raceOnce = true

			_, err := service.AddRooms(ctx, hotelID, room.AddRoomsDTO{
				RoomNumbers: []string{"301", "302"},
				Type:        "DELUXE",
				Price:       120000,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateRooms))
			Expect(appErr.Details).To(Equal(room.DuplicateRoomsDetails{RoomNumbers: []string{"301"}}))
		})

		It("rejects invalid input field by field", func() {
			_, err := service.AddRooms(ctx, hotelID, room.AddRoomsDTO{
				RoomNumbers: []string{"101", "101", "12345678901"},
				Type:        "PENTHOUSE",
				Price:       0,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))

			details := appErr.Details.(internal.ValidationErrors)
			fields := make([]string, 0, len(details.Errors))
			for _, e := range details.Errors {
				fields = append(fields, e.Field)
			}
			Expect(fields).To(ConsistOf("roomNumbers[2]", "type", "price"))
		})

		It("rejects numbers repeated within the request", func() {
			_, err := service.AddRooms(ctx, hotelID, room.AddRoomsDTO{
				RoomNumbers: []string{"101", "101"},
				Type:        "SINGLE",
				Price:       40000,
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("101"))
			Expect(repo.batchCalls).To(BeZero())
		})

		It("rejects an empty list", func() {
			_, err := service.AddRooms(ctx, hotelID, room.AddRoomsDTO{Type: "SINGLE", Price: 40000})
			Expect(err).To(HaveOccurred())
		})

		It("wraps store failures", func() {
			repo.failError = errors.New("connection refused")
			_, err := service.AddRooms(ctx, hotelID, room.AddRoomsDTO{
				RoomNumbers: []string{"101"},
				Type:        "SINGLE",
				Price:       40000,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("GetRoom", func() {
		It("returns a room of the caller's hotel", func() {
			r := repo.addRoom(hotelID, "101")
			got, err := service.GetRoom(ctx, hotelID, r.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(r.ID))
		})

		It("hides rooms of other hotels", func() {
			r := repo.addRoom(uuid.NewString(), "101")
			_, err := service.GetRoom(ctx, hotelID, r.ID)
			Expect(err).To(Equal(internal.ErrRoomNotFound))
		})

		It("treats malformed ids as missing", func() {
			_, err := service.GetRoom(ctx, hotelID, "not-a-uuid")
			Expect(err).To(Equal(internal.ErrRoomNotFound))
		})
	})

	Describe("UpdateStatus", func() {
		It("changes the status of an owned room", func() {
			r := repo.addRoom(hotelID, "101")
			got, err := service.UpdateStatus(ctx, hotelID, r.ID, room.UpdateStatusDTO{Status: "cleaning"})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(room.StatusCleaning))
			Expect(repo.rooms[r.ID].Status).To(Equal("CLEANING"))
		})

		It("does not touch rooms of other hotels", func() {
			r := repo.addRoom(uuid.NewString(), "101")
			_, err := service.UpdateStatus(ctx, hotelID, r.ID, room.UpdateStatusDTO{Status: "OCCUPIED"})
			Expect(err).To(Equal(internal.ErrRoomNotFound))
			Expect(repo.rooms[r.ID].Status).To(Equal("AVAILABLE"))
		})

		It("rejects unknown statuses", func() {
			r := repo.addRoom(hotelID, "101")
			_, err := service.UpdateStatus(ctx, hotelID, r.ID, room.UpdateStatusDTO{Status: "BROKEN"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})
})
