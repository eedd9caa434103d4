package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxImageBytes = 10 << 20

var (
	ErrProductNotFound         = errors.New("product not found")
	ErrInvalidProductID        = errors.New("invalid product id")
	ErrInvalidProduct          = errors.New("invalid product")
	ErrInvalidImage            = errors.New("invalid image")
	ErrImageStoreNotConfigured = errors.New("image store not configured")
	ErrImageSourceNotReachable = errors.New("image source not reachable")
)

// ImageUpload is a file received from the admin panel.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// IProductUseCase exposes catalog operations.
//
// Public listings only show in-stock products; the admin panel lists all of
// them with IncludeOutOfStock.
type IProductUseCase interface {
	List(ctx context.Context, filter interfaces.ProductFilter) ([]entities.Product, error)
	Get(ctx context.Context, id string) (entities.Product, error)
	Create(ctx context.Context, p entities.Product) (entities.Product, error)
	Update(ctx context.Context, id string, p entities.Product) (entities.Product, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, img ImageUpload) (string, error)
	ImportImage(ctx context.Context, sourceURL string) (string, error)
}

type ProductUseCase struct {
	repo       interfaces.IProductRepository
	images     interfaces.IImageStore
	httpClient *http.Client
}

var _ IProductUseCase = (*ProductUseCase)(nil)

func NewProductUseCase(repo interfaces.IProductRepository, images interfaces.IImageStore) *ProductUseCase {
	return &ProductUseCase{
		repo:       repo,
		images:     images,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (u *ProductUseCase) List(ctx context.Context, filter interfaces.ProductFilter) ([]entities.Product, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, filter.Category)
	}
	return u.repo.List(ctx, filter)
}

func (u *ProductUseCase) Get(ctx context.Context, id string) (entities.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Product{}, ErrInvalidProductID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Product{}, err
	}
	if p.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (u *ProductUseCase) Create(ctx context.Context, p entities.Product) (entities.Product, error) {
	p = normalizeProduct(p)
	if err := validateProduct(p); err != nil {
		log.Warn().Err(err).Msg("[product][usecase] create rejected")
		return entities.Product{}, err
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("product_id", p.ID).Msg("[product][usecase] repository create failed")
		return entities.Product{}, err
	}
	log.Info().Str("product_id", created.ID).Str("category", string(created.Category)).Msg("[product][usecase] created")
	return created, nil
}

// Update replaces the product. Images dropped from the list are removed from
// the image host on a best effort basis.
func (u *ProductUseCase) Update(ctx context.Context, id string, p entities.Product) (entities.Product, error) {
	current, err := u.Get(ctx, id)
	if err != nil {
		return entities.Product{}, err
	}

	p = normalizeProduct(p)
	if err := validateProduct(p); err != nil {
		log.Warn().Err(err).Str("product_id", current.ID).Msg("[product][usecase] update rejected")
		return entities.Product{}, err
	}
	p.ID = current.ID
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("product_id", p.ID).Msg("[product][usecase] repository update failed")
		return entities.Product{}, err
	}
	if updated.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}

	u.deleteImages(ctx, updated.ID, removedImages(current.Images, updated.Images))
	log.Info().Str("product_id", updated.ID).Msg("[product][usecase] updated")
	return updated, nil
}

func (u *ProductUseCase) Delete(ctx context.Context, id string) error {
	current, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := u.repo.Delete(ctx, current.ID)
	if err != nil {
		log.Error().Err(err).Str("product_id", current.ID).Msg("[product][usecase] repository delete failed")
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}
	u.deleteImages(ctx, current.ID, current.Images)
	log.Info().Str("product_id", current.ID).Msg("[product][usecase] deleted")
	return nil
}

func (u *ProductUseCase) UploadImage(ctx context.Context, img ImageUpload) (string, error) {
	if u.images == nil {
		return "", ErrImageStoreNotConfigured
	}
	if len(img.Data) == 0 || len(img.Data) > maxImageBytes {
		return "", fmt.Errorf("%w: size %d", ErrInvalidImage, len(img.Data))
	}
	contentType := img.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(img.Data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: content type %q", ErrInvalidImage, contentType)
	}

	name := "products/" + uuid.NewString() + imageExtension(img.Filename, contentType)
	url, err := u.images.Upload(ctx, name, contentType, img.Data)
	if err != nil {
		log.Error().Err(err).Str("object", name).Msg("[product][usecase] image upload failed")
		return "", err
	}
	log.Info().Str("url", url).Int("bytes", len(img.Data)).Msg("[product][usecase] image uploaded")
	return url, nil
}

// ImportImage downloads an image from a public URL and re-hosts it.
func (u *ProductUseCase) ImportImage(ctx context.Context, sourceURL string) (string, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if !strings.HasPrefix(sourceURL, "http://") && !strings.HasPrefix(sourceURL, "https://") {
		return "", fmt.Errorf("%w: url must be http(s)", ErrInvalidImage)
	}
	if u.images == nil {
		return "", ErrImageStoreNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	resp, err := u.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("source", sourceURL).Msg("[product][usecase] image fetch failed")
		return "", fmt.Errorf("%w: %v", ErrImageSourceNotReachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrImageSourceNotReachable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageSourceNotReachable, err)
	}
	return u.UploadImage(ctx, ImageUpload{
		Filename:    path.Base(req.URL.Path),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	})
}

func (u *ProductUseCase) deleteImages(ctx context.Context, productID string, urls []string) {
	if u.images == nil {
		return
	}
	for _, url := range urls {
		if err := u.images.Delete(ctx, url); err != nil {
			log.Warn().Err(err).Str("product_id", productID).Str("url", url).Msg("[product][usecase] image cleanup failed")
		}
	}
}

func normalizeProduct(p entities.Product) entities.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = entities.Category(strings.ToLower(strings.TrimSpace(string(p.Category))))
	if p.Options.SizeUnit == "" {
		p.Options.SizeUnit = entities.SizeUnitInch
	}
	p.Options.Colors = compactStrings(p.Options.Colors)
	p.Options.Sizes = compactStrings(p.Options.Sizes)
	p.Options.Materials = compactStrings(p.Options.Materials)
	p.Images = compactStrings(p.Images)
	return p
}

func validateProduct(p entities.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case !p.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, p.Category)
	case !p.BasePrice.IsPositive():
		return fmt.Errorf("%w: base price must be positive", ErrInvalidProduct)
	case len(p.Images) > entities.MaxProductImages:
		return fmt.Errorf("%w: at most %d images", ErrInvalidProduct, entities.MaxProductImages)
	case !p.Options.SizeUnit.Valid():
		return fmt.Errorf("%w: unknown size unit %q", ErrInvalidProduct, p.Options.SizeUnit)
	}
	return nil
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func removedImages(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, s := range after {
		keep[s] = struct{}{}
	}
	var removed []string
	for _, s := range before {
		if _, ok := keep[s]; !ok {
			removed = append(removed, s)
		}
	}
	return removed
}

func imageExtension(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
