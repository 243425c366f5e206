package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "armentum/internal/errors"
	"armentum/internal/model"
	"armentum/internal/repository"
	"armentum/internal/storage"
)

const signedURLTTL = time.Hour

// CreateAnnouncementInput carries one announcement. DirigidoA defaults to
// "todos", which also publishes it on the public news feed.
type CreateAnnouncementInput struct {
	Titulo         string
	Contenido      string
	DirigidoA      string
	GrupoDestino   string
	MiembroDestino *uuid.UUID
	EnviadoPor     uuid.UUID
}

// UploadFileInput carries one file upload destined for a storage bucket.
type UploadFileInput struct {
	Nombre      string
	Tipo        string
	Voz         string
	EventoID    *uuid.UUID
	EnsayoID    *uuid.UUID
	Bucket      string
	Content     []byte
	ContentType string
	SubidoPor   uuid.UUID
}

// ContentService manages announcements, public news and stored files.
type ContentService interface {
	CreateAnnouncement(ctx context.Context, input CreateAnnouncementInput) (*model.Announcement, error)
	PublicNews(ctx context.Context, limit, offset int) ([]model.Announcement, error)
	UploadFile(ctx context.Context, input UploadFileInput) (*model.StoredFile, error)
	DeleteFile(ctx context.Context, id uuid.UUID) error
	ListFiles(ctx context.Context, tipo string, limit, offset int) ([]model.StoredFile, int64, error)
	FileDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
}

type contentService struct {
	announcements repository.AnnouncementRepository
	files         repository.FileRepository
	store         storage.Store
}

// NewContentService creates a new content service.
func NewContentService(
	announcements repository.AnnouncementRepository,
	files repository.FileRepository,
	store storage.Store,
) ContentService {
	return &contentService{announcements: announcements, files: files, store: store}
}

func (s *contentService) CreateAnnouncement(ctx context.Context, input CreateAnnouncementInput) (*model.Announcement, error) {
	dirigidoA := input.DirigidoA
	if dirigidoA == "" {
		dirigidoA = model.AudienceAll
	}
	now := time.Now().UTC()
	announcement := &model.Announcement{
		Titulo:         input.Titulo,
		Contenido:      input.Contenido,
		DirigidoA:      dirigidoA,
		GrupoDestino:   input.GrupoDestino,
		MiembroDestino: input.MiembroDestino,
		EnviadoPor:     input.EnviadoPor,
		EnviadoEn:      &now,
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return announcement, nil
}

// PublicNews returns announcements addressed to everyone, newest first.
func (s *contentService) PublicNews(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	return s.announcements.ListPublic(ctx, limit, offset)
}

// UploadFile pushes the content to object storage and records it. The
// bucket policy decides whether the stored URL is public or a path to sign
// on demand.
func (s *contentService) UploadFile(ctx context.Context, input UploadFileInput) (*model.StoredFile, error) {
	objectPath := buildObjectPath(input.Nombre)
	if err := s.store.Upload(ctx, input.Bucket, objectPath, input.Content, input.ContentType); err != nil {
		return nil, fmt.Errorf("upload to %s: %w", input.Bucket, err)
	}

	cfg, _ := storage.GetBucketConfig(input.Bucket)
	file := &model.StoredFile{
		Nombre:    input.Nombre,
		Tipo:      input.Tipo,
		Voz:       input.Voz,
		EventoID:  input.EventoID,
		EnsayoID:  input.EnsayoID,
		Privado:   !cfg.Public,
		SubidoPor: input.SubidoPor,
	}
	if cfg.Public {
		file.URL = s.store.PublicURL(input.Bucket, objectPath)
	} else {
		file.URL = input.Bucket + "/" + objectPath
	}

	if err := s.files.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("record file: %w", err)
	}
	return file, nil
}

func (s *contentService) DeleteFile(ctx context.Context, id uuid.UUID) error {
	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrFileNotFound
		}
		return fmt.Errorf("find file: %w", err)
	}

	if file.Privado {
		bucket, objectPath, ok := splitObjectURL(file.URL)
		if ok {
			if err := s.store.Delete(ctx, bucket, objectPath); err != nil {
				return fmt.Errorf("delete from storage: %w", err)
			}
		}
	}
	if err := s.files.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	return nil
}

func (s *contentService) ListFiles(ctx context.Context, tipo string, limit, offset int) ([]model.StoredFile, int64, error) {
	return s.files.List(ctx, tipo, limit, offset)
}

// FileDownloadURL returns the public URL of a public file or a short-lived
// signed URL for a private one.
func (s *contentService) FileDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperrors.ErrFileNotFound
		}
		return "", fmt.Errorf("find file: %w", err)
	}
	if !file.Privado {
		return file.URL, nil
	}

	bucket, objectPath, ok := splitObjectURL(file.URL)
	if !ok {
		return "", apperrors.ErrFileNotFound
	}
	url, err := s.store.SignedURL(ctx, bucket, objectPath, signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("sign url: %w", err)
	}
	return url, nil
}

// buildObjectPath prefixes a sanitized filename with a UUID so repeated
// uploads of the same name never collide.
func buildObjectPath(nombre string) string {
	base := path.Base(strings.ReplaceAll(nombre, " ", "_"))
	return uuid.NewString() + "_" + base
}

// splitObjectURL splits a stored "bucket/path" reference for private files.
func splitObjectURL(url string) (bucket, objectPath string, ok bool) {
	parts := strings.SplitN(url, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
