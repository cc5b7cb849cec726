package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/waiver-api/internal/domain/entity"
	"github.com/yourusername/waiver-api/internal/domain/repository"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
	"github.com/yourusername/waiver-api/internal/service/document"
	"github.com/yourusername/waiver-api/pkg/pdf"
)

// RenderOptions — параметры одного рендера документа
type RenderOptions struct {
	// Locale/ContentVersion переопределяют значения из записи аудита.
	// Пустые значения означают "взять из аудита, иначе дефолт".
	Locale         string
	ContentVersion string

	// SkipCache обходит кеш: используется конвейером отправки,
	// когда документ рендерится впервые
	SkipCache bool
}

// RenderedDocument — результат рендера
type RenderedDocument struct {
	PDF            []byte
	HTML           string
	Locale         string
	ContentVersion string
}

// DocumentMetadata — ответ административного эндпоинта метаданных
type DocumentMetadata struct {
	WaiverID         string
	ParticipantID    string
	SignatureURL     string
	DocumentPDFURL   string
	DocumentSHA256   string
	Locale           string
	ContentVersion   string
	CreatedAt        time.Time
	IdentitySnapshot entity.JSONMap
}

// PDFGenerator растеризует HTML в PDF
type PDFGenerator interface {
	Generate(ctx context.Context, html string, opts *pdf.Options) ([]byte, error)
}

// DocumentConfig — параметры сервиса документов
type DocumentConfig struct {
	TemplatePath   string
	Title          string
	Organization   document.Organization
	DefaultLocale  string
	DefaultVersion string
	SignedURLTTL   time.Duration
	CacheTTL       time.Duration
}

// cachedDocument — envelope для кеша отрендеренных PDF
type cachedDocument struct {
	PDFBase64      string `json:"pdf_base64"`
	Locale         string `json:"locale"`
	ContentVersion string `json:"content_version"`
}

// DocumentService — путь чтения: выборка денормализованной строки,
// маппинг в payload, гидрация шаблона и растеризация в PDF.
// Готовые PDF кешируются в Redis: запуск headless-браузера —
// самая дорогая операция конвейера.
type DocumentService struct {
	docRepo    repository.WaiverDocumentRepository
	waiverRepo repository.WaiverRepository
	auditRepo  repository.AuditTrailRepository
	storage    repository.ObjectStorage
	cache      repository.CacheRepository
	generator  PDFGenerator
	cfg        DocumentConfig
}

// NewDocumentService создает новый сервис документов
func NewDocumentService(
	docRepo repository.WaiverDocumentRepository,
	waiverRepo repository.WaiverRepository,
	auditRepo repository.AuditTrailRepository,
	storage repository.ObjectStorage,
	cache repository.CacheRepository,
	generator PDFGenerator,
	cfg DocumentConfig,
) *DocumentService {
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}
	if cfg.DefaultVersion == "" {
		cfg.DefaultVersion = "waiver.v1"
	}
	if cfg.SignedURLTTL <= 0 {
		cfg.SignedURLTTL = 5 * time.Minute
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	return &DocumentService{
		docRepo:    docRepo,
		waiverRepo: waiverRepo,
		auditRepo:  auditRepo,
		storage:    storage,
		cache:      cache,
		generator:  generator,
		cfg:        cfg,
	}
}

// Render возвращает PDF документа для вейвера.
// ErrNotFound и ErrFetchFailed из репозитория пробрасываются без изменения —
// вызывающие стороны различают их (404 против 502).
func (s *DocumentService) Render(ctx context.Context, waiverID string, opts *RenderOptions) (*RenderedDocument, error) {
	if opts == nil {
		opts = &RenderOptions{}
	}

	cacheKey := "waiver_pdf:" + waiverID
	if !opts.SkipCache && s.cache != nil {
		var cached cachedDocument
		if err := s.cache.GetJSON(cacheKey, &cached); err == nil {
			pdfBytes, decErr := base64.StdEncoding.DecodeString(cached.PDFBase64)
			if decErr == nil {
				return &RenderedDocument{
					PDF:            pdfBytes,
					Locale:         cached.Locale,
					ContentVersion: cached.ContentVersion,
				}, nil
			}
			log.Printf("[DocumentService] Поврежденная запись кеша для %s: %v", waiverID, decErr)
		}
	}

	row, err := s.docRepo.FetchByWaiverID(waiverID)
	if err != nil {
		return nil, err
	}

	locale := opts.Locale
	if locale == "" && row.AuditLocale != nil {
		locale = *row.AuditLocale
	}
	if locale == "" {
		locale = s.cfg.DefaultLocale
	}

	version := opts.ContentVersion
	if version == "" && row.AuditContentVersion != nil {
		version = *row.AuditContentVersion
	}
	if version == "" {
		version = s.cfg.DefaultVersion
	}

	payload := document.MapPayload(row, document.MapOptions{
		LegalCopy:    document.GetLegalCopy(locale),
		Organization: s.cfg.Organization,
		Title:        s.cfg.Title,
		Version:      version,
		Locale:       locale,
	})

	// Изображение подписи инъектируется после маппинга: маппер — чистая
	// функция, недоступность хранилища не должна ронять документ
	payload.Signature.ImageDataURL = s.signatureDataURL(ctx, row.SignatureImageURL)

	tpl, err := document.LoadTemplate(s.cfg.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRenderFailed, err)
	}

	html, err := document.RenderHTML(tpl, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRenderFailed, err)
	}

	pdfBytes, err := s.generator.Generate(ctx, html, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRenderFailed, err)
	}

	if s.cache != nil {
		cached := cachedDocument{
			PDFBase64:      base64.StdEncoding.EncodeToString(pdfBytes),
			Locale:         locale,
			ContentVersion: version,
		}
		if err := s.cache.SetJSON(cacheKey, cached, s.cfg.CacheTTL); err != nil {
			log.Printf("[DocumentService] Не удалось закешировать PDF для %s: %v", waiverID, err)
		}
	}

	return &RenderedDocument{
		PDF:            pdfBytes,
		HTML:           html,
		Locale:         locale,
		ContentVersion: version,
	}, nil
}

// Metadata возвращает метаданные документа с подписанными ссылками (5 минут)
// на изображение подписи и PDF — узкий путь чтения для админ-панели,
// не отдающий сам документ.
func (s *DocumentService) Metadata(ctx context.Context, waiverID string) (*DocumentMetadata, error) {
	waiver, err := s.waiverRepo.GetByID(waiverID)
	if err != nil {
		return nil, err
	}

	trail, err := s.auditRepo.GetLatestByWaiverID(waiverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAuditNotFound
		}
		return nil, err
	}

	signatureURL, err := s.signObjectPath(ctx, stringValue(waiver.SignatureImageURL))
	if err != nil {
		return nil, err
	}
	documentURL, err := s.signObjectPath(ctx, trail.DocumentPDFURL)
	if err != nil {
		return nil, err
	}

	return &DocumentMetadata{
		WaiverID:         waiverID,
		ParticipantID:    waiver.ParticipantID,
		SignatureURL:     signatureURL,
		DocumentPDFURL:   documentURL,
		DocumentSHA256:   trail.DocumentSHA256,
		Locale:           trail.Locale,
		ContentVersion:   trail.ContentVersion,
		CreatedAt:        trail.CreatedAt,
		IdentitySnapshot: trail.IdentitySnapshot,
	}, nil
}

// signatureDataURL скачивает изображение подписи и кодирует его в data-URL.
// Любая ошибка деградирует до пустого значения с предупреждением в логе.
func (s *DocumentService) signatureDataURL(ctx context.Context, storagePath *string) string {
	if storagePath == nil {
		return ""
	}
	bucket, key, ok := splitObjectPath(*storagePath)
	if !ok {
		return ""
	}
	data, err := s.storage.Download(ctx, bucket, key)
	if err != nil {
		log.Printf("[DocumentService] Не удалось скачать подпись %s: %v", *storagePath, err)
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// signObjectPath выписывает подписанную ссылку для пути "bucket/key"
func (s *DocumentService) signObjectPath(ctx context.Context, path string) (string, error) {
	bucket, key, ok := splitObjectPath(path)
	if !ok {
		return "", fmt.Errorf("%w: malformed object path %q", ErrSignedURLFailed, path)
	}
	url, err := s.storage.SignedURL(ctx, bucket, key, s.cfg.SignedURLTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSignedURLFailed, err)
	}
	return url, nil
}

// splitObjectPath разбирает путь объекта "bucket/key..." на бакет и ключ
func splitObjectPath(path string) (bucket, key string, ok bool) {
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// stringValue возвращает значение указателя или пустую строку
func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
