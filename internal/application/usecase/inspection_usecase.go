package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alojamientos-api/internal/application/audit"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

// InspectionUseCase registro de inspecciones de alojamientos con galería de fotos.
// Las fotos se guardan como URL: el binario vive en un almacenamiento externo.
type InspectionUseCase struct {
	repo    repository.InspectionRepository
	accRepo repository.AccommodationRepository
	audit   audit.Recorder
}

// NewInspectionUseCase construye el caso de uso.
func NewInspectionUseCase(repo repository.InspectionRepository, accRepo repository.AccommodationRepository, rec audit.Recorder) *InspectionUseCase {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &InspectionUseCase{repo: repo, accRepo: accRepo, audit: rec}
}

// Create registra una inspección con sus fotos iniciales.
func (uc *InspectionUseCase) Create(ctx context.Context, unitID, actorID string, in dto.CreateInspectionRequest) (*dto.InspectionResponse, error) {
	if _, err := uc.ownedAccommodation(ctx, unitID, in.AccommodationID); err != nil {
		return nil, err
	}
	switch in.Result {
	case entity.InspectionApproved, entity.InspectionObserved, entity.InspectionRejected:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	at := now
	if in.InspectedAt != nil {
		at = *in.InspectedAt
	}
	insp := &entity.Inspection{
		ID:              uuid.New().String(),
		AccommodationID: in.AccommodationID,
		InspectorID:     actorID,
		InspectedAt:     at,
		Result:          in.Result,
		Notes:           in.Notes,
		CreatedAt:       now,
	}
	for _, p := range in.Photos {
		insp.Photos = append(insp.Photos, entity.InspectionPhoto{
			ID:           uuid.New().String(),
			InspectionID: insp.ID,
			URL:          p.URL,
			Caption:      p.Caption,
			CreatedAt:    now,
		})
	}
	if err := uc.repo.Create(ctx, insp); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "inspections", insp.ID, entity.AuditCreate, actorID, nil, insp)
	return toInspectionResponse(insp), nil
}

// AddPhoto agrega una foto a una inspección existente.
func (uc *InspectionUseCase) AddPhoto(ctx context.Context, unitID, actorID, inspectionID string, in dto.PhotoRequest) (*dto.PhotoResponse, error) {
	insp, err := uc.GetByID(ctx, unitID, inspectionID)
	if err != nil {
		return nil, err
	}
	photo := &entity.InspectionPhoto{
		ID:           uuid.New().String(),
		InspectionID: insp.ID,
		URL:          in.URL,
		Caption:      in.Caption,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.AddPhoto(ctx, photo); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "inspection_photos", photo.ID, entity.AuditCreate, actorID, nil, photo)
	return toPhotoResponse(photo), nil
}

// GetByID obtiene una inspección con su galería.
func (uc *InspectionUseCase) GetByID(ctx context.Context, unitID, id string) (*dto.InspectionResponse, error) {
	insp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedAccommodation(ctx, unitID, insp.AccommodationID); err != nil {
		return nil, err
	}
	return toInspectionResponse(insp), nil
}

// ListByAccommodation lista inspecciones de un alojamiento, más recientes primero.
func (uc *InspectionUseCase) ListByAccommodation(ctx context.Context, unitID, accommodationID string, limit, offset int) ([]dto.InspectionResponse, error) {
	if _, err := uc.ownedAccommodation(ctx, unitID, accommodationID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByAccommodation(ctx, accommodationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InspectionResponse, 0, len(list))
	for _, i := range list {
		out = append(out, *toInspectionResponse(i))
	}
	return out, nil
}

func (uc *InspectionUseCase) ownedAccommodation(ctx context.Context, unitID, id string) (*entity.Accommodation, error) {
	acc, err := uc.accRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	return acc, nil
}

func toInspectionResponse(i *entity.Inspection) *dto.InspectionResponse {
	photos := make([]dto.PhotoResponse, 0, len(i.Photos))
	for idx := range i.Photos {
		photos = append(photos, *toPhotoResponse(&i.Photos[idx]))
	}
	return &dto.InspectionResponse{
		ID:              i.ID,
		AccommodationID: i.AccommodationID,
		InspectorID:     i.InspectorID,
		InspectedAt:     i.InspectedAt,
		Result:          i.Result,
		Notes:           i.Notes,
		Photos:          photos,
		CreatedAt:       i.CreatedAt,
	}
}

func toPhotoResponse(p *entity.InspectionPhoto) *dto.PhotoResponse {
	return &dto.PhotoResponse{ID: p.ID, URL: p.URL, Caption: p.Caption, CreatedAt: p.CreatedAt}
}
