package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"campusmart/config"
	deliverycontext "campusmart/internal/delivery/context"
	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/repository"
	"campusmart/internal/domain/service"
	"campusmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	// featuredLimit caps the featured storefront projection.
	featuredLimit = 8

	// defaultFeaturedTTL bounds featured-cache staleness when none is configured.
	defaultFeaturedTTL = 60 * time.Second
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo   repository.ProductRepository
	shopRepo      repository.ShopRepository
	orderRepo     repository.OrderRepository
	featuredCache service.FeaturedCache
	featuredTTL   time.Duration
	logger        *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo   repository.ProductRepository
	ShopRepo      repository.ShopRepository
	OrderRepo     repository.OrderRepository
	FeaturedCache service.FeaturedCache `optional:"true"`
	Config        *config.Config
	Logger        *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	ttl := defaultFeaturedTTL
	if params.Config != nil && params.Config.Redis != nil && params.Config.Redis.TTL > 0 {
		ttl = params.Config.Redis.TTL
	}

	return &catalogService{
		productRepo:   params.ProductRepo,
		shopRepo:      params.ShopRepo,
		orderRepo:     params.OrderRepo,
		featuredCache: params.FeaturedCache,
		featuredTTL:   ttl,
		logger:        params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProduct returns a product by ID.
func (srv *catalogService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// ListProducts answers a filtered catalog query. Category and shop narrow
// the storage query; free-text search and the featured projection are
// applied on top of the listing.
func (srv *catalogService) ListProducts(ctx context.Context, query *usecase.ProductQuery) ([]*entity.Product, error) {
	if query == nil {
		query = &usecase.ProductQuery{}
	}

	if query.Featured {
		return srv.listFeatured(ctx)
	}

	filter := repository.ProductFilter{ShopID: query.ShopID}
	if query.Category != "" {
		category := entity.Category(query.Category)
		if !category.IsValid() {
			return nil, domainerrors.ErrValidation.WrapMessage("unknown category")
		}
		filter.Category = category
	}

	products, err := srv.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	if query.Search != "" {
		products = filterBySearch(products, query.Search)
	}

	return products, nil
}

// listFeatured serves the rating-weighted top-8 projection, through the
// short-TTL cache when one is wired.
func (srv *catalogService) listFeatured(ctx context.Context) ([]*entity.Product, error) {
	if srv.featuredCache != nil {
		if cached, ok := srv.featuredCache.Get(ctx); ok {
			return cached, nil
		}
	}

	products, err := srv.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products for featured projection")
	}

	featured := projectFeatured(products)

	if srv.featuredCache != nil {
		srv.featuredCache.Set(ctx, featured, srv.featuredTTL)
	}

	return featured, nil
}

// CreateProduct lists a product under the caller's shop.
func (srv *catalogService) CreateProduct(ctx context.Context, id *authz.Identity, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := authz.RequireRole(id, entity.RoleShopOwner, entity.RoleAdmin); err != nil {
		return nil, err
	}

	shop, err := srv.shopRepo.FindByOwner(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("caller owns no shop")
		}

		return nil, errors.Wrap(err, "failed to find shop by owner")
	}

	category := entity.Category(input.Category)
	if !category.IsValid() {
		return nil, domainerrors.ErrValidation.WrapMessage("unknown category")
	}
	if input.Price < 0 || input.Stock < 0 {
		return nil, domainerrors.ErrValidation.WrapMessage("price and stock must be non-negative")
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.NewString(),
		ShopID:      shop.ID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    category,
		Tags:        input.Tags,
		Images:      input.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product listed",
		slog.String("productID", product.ID),
		slog.String("shopID", shop.ID))

	return product, nil
}

// UpdateProduct patches a product owned by the caller's shop. The rating
// summary is owned by the review loop and cannot be patched here.
func (srv *catalogService) UpdateProduct(ctx context.Context, id *authz.Identity, productID string, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.requireProductOwnership(ctx, id, productID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domainerrors.ErrValidation.WrapMessage("price must be non-negative")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domainerrors.ErrValidation.WrapMessage("stock must be non-negative")
		}
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		category := entity.Category(*input.Category)
		if !category.IsValid() {
			return nil, domainerrors.ErrValidation.WrapMessage("unknown category")
		}
		product.Category = category
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
	product.UpdatedAt = time.Now()

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a product owned by the caller's shop. Deletion is
// refused while any non-terminal order still references the product, so a
// shop cannot strand an in-flight fulfillment.
func (srv *catalogService) DeleteProduct(ctx context.Context, id *authz.Identity, productID string) error {
	product, err := srv.requireProductOwnership(ctx, id, productID)
	if err != nil {
		return err
	}

	orders, err := srv.orderRepo.List(ctx, repository.OrderFilter{ShopID: product.ShopID})
	if err != nil {
		return errors.Wrap(err, "failed to list orders for delete check")
	}
	for _, order := range orders {
		if order.Status.IsTerminal() {
			continue
		}
		for _, item := range order.Items {
			if item.ProductID == productID {
				return domainerrors.ErrConflict.WrapMessage("product is referenced by an open order")
			}
		}
	}

	if err := srv.productRepo.Delete(ctx, productID); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product removed", slog.String("productID", productID))

	return nil
}

// requireProductOwnership loads a product and checks the caller's shop owns
// it. Admins bypass ownership.
func (srv *catalogService) requireProductOwnership(ctx context.Context, id *authz.Identity, productID string) (*entity.Product, error) {
	if err := authz.RequireRole(id, entity.RoleShopOwner, entity.RoleAdmin); err != nil {
		return nil, err
	}

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	if id.Role != entity.RoleAdmin {
		shop, err := srv.shopRepo.FindByID(ctx, product.ShopID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find owning shop")
		}
		if shop.OwnerID != id.UserID {
			return nil, domainerrors.ErrForbiddenScope
		}
	}

	return product, nil
}

// filterBySearch keeps products whose title, description, or tags contain
// the needle, case-insensitively.
func filterBySearch(products []*entity.Product, search string) []*entity.Product {
	needle := strings.ToLower(search)
	matched := make([]*entity.Product, 0, len(products))

	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)

			continue
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				matched = append(matched, p)

				break
			}
		}
	}

	return matched
}

// projectFeatured picks the top reviewed products: rating average first,
// then review count, then recency. Products without reviews never feature.
func projectFeatured(products []*entity.Product) []*entity.Product {
	reviewed := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.ReviewCount >= 1 {
			reviewed = append(reviewed, p)
		}
	}

	sort.SliceStable(reviewed, func(i, j int) bool {
		if reviewed[i].RatingAvg != reviewed[j].RatingAvg {
			return reviewed[i].RatingAvg > reviewed[j].RatingAvg
		}
		if reviewed[i].ReviewCount != reviewed[j].ReviewCount {
			return reviewed[i].ReviewCount > reviewed[j].ReviewCount
		}

		return reviewed[i].CreatedAt.After(reviewed[j].CreatedAt)
	})

	if len(reviewed) > featuredLimit {
		reviewed = reviewed[:featuredLimit]
	}

	return reviewed
}
