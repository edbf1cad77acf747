package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// ProductUseCase реализует административное управление товарами каталога.
type ProductUseCase struct {
	productRepo ProductRepository
	transactor  Transactor
	imagesInfra ImagesInfra
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	transactor Transactor,
	imagesInfra ImagesInfra,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		transactor:  transactor,
		imagesInfra: imagesInfra,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// CreateProduct добавляет товар. Если переданы изображения, они загружаются в MinIO,
// а первое становится обложкой товара.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (product *domain.Product, err error) {
	const op = "ProductUseCase.CreateProduct"

	if err = p.validateCreate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var imagesRes *UploadImagesRes
	// Если произошла ошибка, загруженные изображения удаляются
	defer func() {
		if err != nil && imagesRes != nil {
			p.logger.Warnf(
				"Cleaning up orphaned images after product creation failure. product_name: %s, error: %v",
				req.Name,
				err,
			)

			p.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
		}
	}()

	image := strings.TrimSpace(req.ImageURL)
	if len(req.Images) > 0 {
		imagesRes, err = p.imagesInfra.UploadImages(ctx, NewUploadImagesReq(req.Name, req.Images))
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if len(imagesRes.ImagesKeys) > 0 {
			image = p.imagesInfra.PublicURL(imagesRes.ImagesKeys[0])
		}
	}

	err = p.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		product, txErr = p.productRepo.Create(ctx, domain.NewProduct(
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.Description),
			req.Price,
			image,
			req.Category,
			req.Stock,
			req.Featured,
		))
		return txErr
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, op, product.ID)

	return product, nil
}

// UpdateProduct применяет частичное обновление товара.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	if req.ID == "" {
		return nil, e.Wrap(op, e.ErrProductIDRequired)
	}

	var updated *domain.Product
	err := p.transactor.WithinTx(ctx, func(ctx context.Context) error {
		current, err := p.productRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		applyUpdate(current, req)
		if err := validateProduct(current.Name, current.Price, current.Stock, current.Category); err != nil {
			return err
		}

		updated, err = p.productRepo.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, op, updated.ID)

	return updated, nil
}

func (p *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "ProductUseCase.DeleteProduct"

	if id == "" {
		return e.Wrap(op, e.ErrProductIDRequired)
	}

	if err := p.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidate(ctx, op, id)

	return nil
}

// invalidate удаляет из кэша устаревший каталог и сам товар.
func (p *ProductUseCase) invalidate(ctx context.Context, op string, id string) {
	if err := p.cacheRepo.DeleteCatalog(ctx); err != nil {
		p.logger.Warnf("Failed to delete catalog from cache: %v", e.Wrap(op, err))
	}
	if err := p.cacheRepo.DeleteProducts(ctx, []string{id}); err != nil {
		p.logger.Warnf("Failed to delete products: %v", e.Wrap(op, err))
	}
}

func applyUpdate(product *domain.Product, req *UpdateProductReq) {
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.ImageURL != nil {
		product.Image = strings.TrimSpace(*req.ImageURL)
	}
}

func (p *ProductUseCase) validateCreate(req *CreateProductReq) error {
	return validateProduct(req.Name, req.Price, req.Stock, req.Category)
}

// validateProduct проверяет поля товара перед записью.
func validateProduct(name string, price decimal.Decimal, stock int, category domain.Category) error {
	if strings.TrimSpace(name) == "" {
		return e.ErrProductNameRequired
	}

	if price.IsNegative() {
		return e.ErrNegativePrice
	}

	if !price.Equal(price.Round(2)) {
		return e.ErrPricePrecision
	}

	if stock < 0 {
		return e.ErrNegativeStock
	}

	if !category.Valid() {
		return e.ErrInvalidCategory
	}

	return nil
}
