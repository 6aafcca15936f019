package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "campusmart/internal/delivery/context"
	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/repository"
	"campusmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface. It owns the
// product rating summary: every review write recomputes the summary in the
// same transaction, so the summary never drifts from the review rows.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	txManager   repository.TransactionManager
	logger      *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	ReviewRepo  repository.ReviewRepository
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	TxManager   repository.TransactionManager
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		reviewRepo:  params.ReviewRepo,
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		txManager:   params.TxManager,
		logger:      params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListForProduct returns all reviews of a product, newest first.
func (srv *reviewService) ListForProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

// Create posts a review. The caller must have received the product: the
// referenced order must be theirs, Delivered, and contain the product.
func (srv *reviewService) Create(ctx context.Context, id *authz.Identity, input *usecase.CreateReviewInput) (*entity.Review, error) {
	if id == nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domainerrors.ErrValidation.WrapMessage("rating must be between 1 and 5")
	}

	order, err := srv.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to find order for review")
	}

	if err := authz.RequireOwner(id, order.UserID); err != nil {
		return nil, err
	}
	if order.Status != entity.StatusDelivered {
		return nil, domainerrors.ErrForbiddenScope.WrapMessage("order is not delivered yet")
	}

	var contains bool
	for _, item := range order.Items {
		if item.ProductID == input.ProductID {
			contains = true

			break
		}
	}
	if !contains {
		return nil, domainerrors.ErrForbiddenScope.WrapMessage("product is not part of the order")
	}

	now := time.Now()
	review := &entity.Review{
		ID:        uuid.NewString(),
		ProductID: input.ProductID,
		UserID:    id.UserID,
		OrderID:   input.OrderID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = srv.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		reviewRepo := txRepoFactory.NewReviewRepository()
		if err := reviewRepo.Create(ctx, review); err != nil {
			if errors.Is(err, repository.ErrDuplicateReview) {
				return domainerrors.ErrConflict.WrapMessage("review already exists for this order item")
			}

			return errors.Wrap(err, "failed to create review")
		}

		return recomputeRating(ctx, txRepoFactory, input.ProductID)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Review posted",
		slog.String("productID", review.ProductID),
		slog.Int("rating", review.Rating))

	return review, nil
}

// Delete removes a review (admin only) and recomputes the summary.
func (srv *reviewService) Delete(ctx context.Context, id *authz.Identity, reviewID string) error {
	if err := authz.RequireRole(id, entity.RoleAdmin); err != nil {
		return err
	}

	review, err := srv.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("review not found")
		}

		return errors.Wrap(err, "failed to find review")
	}

	err = srv.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		if err := txRepoFactory.NewReviewRepository().Delete(ctx, reviewID); err != nil {
			return errors.Wrap(err, "failed to delete review")
		}

		return recomputeRating(ctx, txRepoFactory, review.ProductID)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Review removed",
		slog.String("reviewID", reviewID),
		slog.String("productID", review.ProductID))

	return nil
}

// recomputeRating rewrites the product's rating summary from the surviving
// review rows, inside the caller's transaction.
func recomputeRating(ctx context.Context, txRepoFactory repository.RepositoryFactory, productID string) error {
	reviews, err := txRepoFactory.NewReviewRepository().ListByProduct(ctx, productID)
	if err != nil {
		return errors.Wrap(err, "failed to list reviews for recompute")
	}

	var avg float64
	count := int64(len(reviews))
	if count > 0 {
		var sum int64
		for _, r := range reviews {
			sum += int64(r.Rating)
		}
		avg = float64(sum) / float64(count)
	}

	if err := txRepoFactory.NewProductRepository().UpdateRating(ctx, productID, avg, count); err != nil {
		return errors.Wrap(err, "failed to update rating summary")
	}

	return nil
}
