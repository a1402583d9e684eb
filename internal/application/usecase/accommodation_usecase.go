package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/application/audit"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/occupancy"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
	"github.com/jhoicas/Alojamientos-api/pkg/logger"
)

// AccommodationUseCase CRUD de alojamientos y habitaciones.
// Reducir la capacidad por debajo de la ocupación se permite: la respuesta lo marca con
// OverCapacity y las nuevas asignaciones quedan bloqueadas hasta que se libere espacio.
type AccommodationUseCase struct {
	txRunner accommodation.TxRunner
	accRepo  repository.AccommodationRepository
	roomRepo repository.RoomRepository
	audit    audit.Recorder
	log      *logger.Logger
}

// NewAccommodationUseCase construye el caso de uso. Edición y desactivación corren en
// txRunner con la fila bloqueada, igual que las asignaciones. log puede ser nil.
func NewAccommodationUseCase(
	txRunner accommodation.TxRunner,
	accRepo repository.AccommodationRepository,
	roomRepo repository.RoomRepository,
	rec audit.Recorder,
	log *logger.Logger,
) *AccommodationUseCase {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &AccommodationUseCase{txRunner: txRunner, accRepo: accRepo, roomRepo: roomRepo, audit: rec, log: log}
}

// Create crea un alojamiento en la unidad del operador.
func (uc *AccommodationUseCase) Create(ctx context.Context, unitID, actorID string, in dto.CreateAccommodationRequest) (*dto.AccommodationResponse, error) {
	if in.Capacity < 1 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	acc := &entity.Accommodation{
		ID:        uuid.New().String(),
		UnitID:    unitID,
		Name:      in.Name,
		Address:   in.Address,
		Capacity:  in.Capacity,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.accRepo.Create(ctx, acc); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "accommodations", acc.ID, entity.AuditCreate, actorID, nil, acc)
	return toAccommodationResponse(acc, nil), nil
}

// GetByID obtiene un alojamiento de la unidad con su ocupación actual.
func (uc *AccommodationUseCase) GetByID(ctx context.Context, unitID, id string) (*dto.AccommodationResponse, error) {
	acc, err := uc.owned(ctx, unitID, id)
	if err != nil {
		return nil, err
	}
	n, err := uc.accRepo.CountOccupants(ctx, acc.ID, "")
	if err != nil {
		return nil, err
	}
	return toAccommodationResponse(acc, &n), nil
}

// List lista alojamientos de la unidad.
func (uc *AccommodationUseCase) List(ctx context.Context, unitID string, onlyActive bool, limit, offset int) (*dto.AccommodationListResponse, error) {
	list, err := uc.accRepo.ListByUnit(ctx, unitID, onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccommodationResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAccommodationResponse(a, nil))
	}
	return &dto.AccommodationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza nombre, dirección y capacidad. La ocupación se cuenta con la fila
// bloqueada, de modo que la marca OverCapacity refleja el estado confirmado.
func (uc *AccommodationUseCase) Update(ctx context.Context, unitID, actorID, id string, in dto.UpdateAccommodationRequest) (*dto.AccommodationResponse, error) {
	if in.Capacity != nil && *in.Capacity < 1 {
		return nil, domain.ErrInvalidInput
	}
	var (
		before, after entity.Accommodation
		n             int
	)
	err := uc.txRunner.RunAssignment(ctx, func(
		accRepo repository.AccommodationRepository,
		_ repository.RoomRepository,
		_ repository.EmployeeRepository,
	) error {
		acc, err := lockOwned(ctx, accRepo, unitID, id)
		if err != nil {
			return err
		}
		before = *acc
		if in.Name != nil {
			acc.Name = *in.Name
		}
		if in.Address != nil {
			acc.Address = *in.Address
		}
		if in.Capacity != nil {
			acc.Capacity = *in.Capacity
		}
		acc.UpdatedAt = time.Now()
		if err := accRepo.Update(ctx, acc); err != nil {
			return err
		}
		if n, err = accRepo.CountOccupants(ctx, acc.ID, ""); err != nil {
			return err
		}
		after = *acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	if occupancy.OverCapacity(n, after.Capacity) && uc.log != nil {
		uc.log.Warn().
			Str("accommodation_id", after.ID).
			Int("capacity", after.Capacity).
			Int("occupied", n).
			Msg("capacidad reducida por debajo de la ocupación")
	}
	uc.audit.Record(ctx, "accommodations", after.ID, entity.AuditUpdate, actorID, before, after)
	return toAccommodationResponse(&after, &n), nil
}

// Deactivate desactiva un alojamiento vacío. Con ocupantes devuelve domain.ErrConflict.
// Conteo y escritura ocurren bajo el bloqueo del alojamiento que toman las asignaciones.
func (uc *AccommodationUseCase) Deactivate(ctx context.Context, unitID, actorID, id string) error {
	var (
		before, after entity.Accommodation
		changed       bool
	)
	err := uc.txRunner.RunAssignment(ctx, func(
		accRepo repository.AccommodationRepository,
		_ repository.RoomRepository,
		_ repository.EmployeeRepository,
	) error {
		acc, err := lockOwned(ctx, accRepo, unitID, id)
		if err != nil {
			return err
		}
		if !acc.Active {
			return nil
		}
		n, err := accRepo.CountOccupants(ctx, acc.ID, "")
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrConflict
		}
		before = *acc
		acc.Active = false
		acc.UpdatedAt = time.Now()
		if err := accRepo.Update(ctx, acc); err != nil {
			return err
		}
		after, changed = *acc, true
		return nil
	})
	if err != nil || !changed {
		return err
	}
	uc.audit.Record(ctx, "accommodations", after.ID, entity.AuditDelete, actorID, before, after)
	return nil
}

// CreateRoom agrega una habitación al alojamiento.
func (uc *AccommodationUseCase) CreateRoom(ctx context.Context, unitID, actorID, accommodationID string, in dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if in.BedCount < 1 {
		return nil, domain.ErrInvalidInput
	}
	var room *entity.Room
	err := uc.txRunner.RunAssignment(ctx, func(
		accRepo repository.AccommodationRepository,
		roomRepo repository.RoomRepository,
		_ repository.EmployeeRepository,
	) error {
		acc, err := lockOwned(ctx, accRepo, unitID, accommodationID)
		if err != nil {
			return err
		}
		if !acc.Active {
			return domain.ErrResourceInactive
		}
		now := time.Now()
		room = &entity.Room{
			ID:              uuid.New().String(),
			AccommodationID: acc.ID,
			Name:            in.Name,
			BedCount:        in.BedCount,
			Active:          true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return roomRepo.Create(ctx, room)
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "rooms", room.ID, entity.AuditCreate, actorID, nil, room)
	return toRoomResponse(room, nil), nil
}

// ListRooms lista las habitaciones de un alojamiento.
func (uc *AccommodationUseCase) ListRooms(ctx context.Context, unitID, accommodationID string) ([]dto.RoomResponse, error) {
	if _, err := uc.owned(ctx, unitID, accommodationID); err != nil {
		return nil, err
	}
	rooms, err := uc.roomRepo.ListByAccommodation(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, *toRoomResponse(r, nil))
	}
	return out, nil
}

// UpdateRoom actualiza nombre y número de camas; igual que en el alojamiento, reducir
// camas por debajo de la ocupación se marca y no se rechaza.
func (uc *AccommodationUseCase) UpdateRoom(ctx context.Context, unitID, actorID, roomID string, in dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	if in.BedCount != nil && *in.BedCount < 1 {
		return nil, domain.ErrInvalidInput
	}
	var (
		before, after entity.Room
		n             int
	)
	err := uc.txRunner.RunAssignment(ctx, func(
		accRepo repository.AccommodationRepository,
		roomRepo repository.RoomRepository,
		_ repository.EmployeeRepository,
	) error {
		room, err := lockOwnedRoom(ctx, accRepo, roomRepo, unitID, roomID)
		if err != nil {
			return err
		}
		before = *room
		if in.Name != nil {
			room.Name = *in.Name
		}
		if in.BedCount != nil {
			room.BedCount = *in.BedCount
		}
		room.UpdatedAt = time.Now()
		if err := roomRepo.Update(ctx, room); err != nil {
			return err
		}
		if n, err = roomRepo.CountOccupants(ctx, room.ID, ""); err != nil {
			return err
		}
		after = *room
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "rooms", after.ID, entity.AuditUpdate, actorID, before, after)
	return toRoomResponse(&after, &n), nil
}

// DeactivateRoom desactiva una habitación vacía.
func (uc *AccommodationUseCase) DeactivateRoom(ctx context.Context, unitID, actorID, roomID string) error {
	var (
		before, after entity.Room
		changed       bool
	)
	err := uc.txRunner.RunAssignment(ctx, func(
		accRepo repository.AccommodationRepository,
		roomRepo repository.RoomRepository,
		_ repository.EmployeeRepository,
	) error {
		room, err := lockOwnedRoom(ctx, accRepo, roomRepo, unitID, roomID)
		if err != nil {
			return err
		}
		if !room.Active {
			return nil
		}
		n, err := roomRepo.CountOccupants(ctx, room.ID, "")
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrConflict
		}
		before = *room
		room.Active = false
		room.UpdatedAt = time.Now()
		if err := roomRepo.Update(ctx, room); err != nil {
			return err
		}
		after, changed = *room, true
		return nil
	})
	if err != nil || !changed {
		return err
	}
	uc.audit.Record(ctx, "rooms", after.ID, entity.AuditDelete, actorID, before, after)
	return nil
}

// lockOwned bloquea el alojamiento y verifica que pertenezca a la unidad.
func lockOwned(ctx context.Context, accRepo repository.AccommodationRepository, unitID, id string) (*entity.Accommodation, error) {
	acc, err := accRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	return acc, nil
}

// lockOwnedRoom bloquea alojamiento y habitación en el mismo orden que AssignRoom.
func lockOwnedRoom(ctx context.Context, accRepo repository.AccommodationRepository, roomRepo repository.RoomRepository, unitID, roomID string) (*entity.Room, error) {
	located, err := roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if _, err := lockOwned(ctx, accRepo, unitID, located.AccommodationID); err != nil {
		return nil, err
	}
	return roomRepo.GetForUpdate(ctx, roomID)
}

func (uc *AccommodationUseCase) owned(ctx context.Context, unitID, id string) (*entity.Accommodation, error) {
	acc, err := uc.accRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	return acc, nil
}

func toAccommodationResponse(a *entity.Accommodation, occupied *int) *dto.AccommodationResponse {
	resp := &dto.AccommodationResponse{
		ID:        a.ID,
		UnitID:    a.UnitID,
		Name:      a.Name,
		Address:   a.Address,
		Capacity:  a.Capacity,
		Active:    a.Active,
		Occupied:  occupied,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if occupied != nil {
		resp.OverCapacity = occupancy.OverCapacity(*occupied, a.Capacity)
	}
	return resp
}

func toRoomResponse(r *entity.Room, occupied *int) *dto.RoomResponse {
	resp := &dto.RoomResponse{
		ID:              r.ID,
		AccommodationID: r.AccommodationID,
		Name:            r.Name,
		BedCount:        r.BedCount,
		Active:          r.Active,
		Occupied:        occupied,
		CreatedAt:       r.CreatedAt,
	}
	if occupied != nil {
		resp.OverCapacity = occupancy.OverCapacity(*occupied, r.BedCount)
	}
	return resp
}
