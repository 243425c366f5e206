package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"armentum/internal/cache"
	apperrors "armentum/internal/errors"
	"armentum/internal/model"
	"armentum/internal/repository"
)

const (
	publicEventsCacheKey = "events:public"
	publicEventsCacheTTL = time.Minute
)

// CreateEventInput carries the fields for scheduling a public event.
type CreateEventInput struct {
	Nombre      string
	Descripcion string
	Fecha       time.Time
	Hora        string
	Lugar       string
	Tipo        string
	Estado      model.EventStatus
	ImagenURL   string
	CreatedBy   uuid.UUID
}

// UpdateEventInput carries the optional fields of an event update.
type UpdateEventInput struct {
	Nombre      *string
	Descripcion *string
	Fecha       *time.Time
	Hora        *string
	Lugar       *string
	Tipo        *string
	Estado      *model.EventStatus
	ImagenURL   *string
}

// EventService manages public concert and presentation listings.
type EventService interface {
	Create(ctx context.Context, input CreateEventInput) (*model.PublicEvent, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*model.PublicEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.PublicEvent, error)
	List(ctx context.Context, limit, offset int) ([]model.PublicEvent, int64, error)
	ListUpcoming(ctx context.Context, limit, offset int) ([]model.PublicEvent, error)
}

type eventService struct {
	events repository.EventRepository
	cache  *cache.Client
}

// NewEventService creates a new event service.
func NewEventService(events repository.EventRepository, cacheClient *cache.Client) EventService {
	return &eventService{events: events, cache: cacheClient}
}

func (s *eventService) Create(ctx context.Context, input CreateEventInput) (*model.PublicEvent, error) {
	estado := input.Estado
	if estado == "" {
		estado = model.EventStatusPlanned
	}
	event := &model.PublicEvent{
		Nombre:      input.Nombre,
		Descripcion: input.Descripcion,
		Fecha:       input.Fecha,
		Hora:        input.Hora,
		Lugar:       input.Lugar,
		Tipo:        input.Tipo,
		Estado:      estado,
		ImagenURL:   input.ImagenURL,
		CreatedBy:   input.CreatedBy,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.cache.Delete(ctx, publicEventsCacheKey)
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*model.PublicEvent, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nombre != nil {
		event.Nombre = *input.Nombre
	}
	if input.Descripcion != nil {
		event.Descripcion = *input.Descripcion
	}
	if input.Fecha != nil {
		event.Fecha = *input.Fecha
	}
	if input.Hora != nil {
		event.Hora = *input.Hora
	}
	if input.Lugar != nil {
		event.Lugar = *input.Lugar
	}
	if input.Tipo != nil {
		event.Tipo = *input.Tipo
	}
	if input.Estado != nil {
		event.Estado = *input.Estado
	}
	if input.ImagenURL != nil {
		event.ImagenURL = *input.ImagenURL
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.cache.Delete(ctx, publicEventsCacheKey)
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.cache.Delete(ctx, publicEventsCacheKey)
	return nil
}

func (s *eventService) Get(ctx context.Context, id uuid.UUID) (*model.PublicEvent, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, limit, offset int) ([]model.PublicEvent, int64, error) {
	return s.events.List(ctx, limit, offset)
}

// ListUpcoming returns planned and in-progress events for the public site.
// The first page is cached briefly since it backs the landing page.
func (s *eventService) ListUpcoming(ctx context.Context, limit, offset int) ([]model.PublicEvent, error) {
	cacheable := offset == 0
	if cacheable {
		if cached, _ := s.cache.Get(ctx, publicEventsCacheKey); cached != nil {
			var events []model.PublicEvent
			if err := json.Unmarshal(cached, &events); err == nil && len(events) <= limit {
				return events, nil
			}
		}
	}

	events, err := s.events.ListByStatus(ctx, []model.EventStatus{
		model.EventStatusPlanned,
		model.EventStatusOngoing,
	}, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	if cacheable {
		if payload, err := json.Marshal(events); err == nil {
			s.cache.Set(ctx, publicEventsCacheKey, payload, publicEventsCacheTTL)
		}
	}
	return events, nil
}
