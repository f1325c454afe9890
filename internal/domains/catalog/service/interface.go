package service

import (
	"context"
	"mime/multipart"

	"bookhaven-backend/internal/domains/catalog/model"
)

// ServiceInterface - catalog business operations
type ServiceInterface interface {
	ListProducts(ctx context.Context, req model.ListProductsRequest) (*model.ListProductsResponse, error)
	GetProduct(ctx context.Context, id int) (*model.ProductDetailView, error)
	SearchProducts(ctx context.Context, req model.SearchProductsRequest) ([]model.Product, error)

	CreateProduct(ctx context.Context, form model.ProductForm, image *multipart.FileHeader) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int, form model.ProductForm, image *multipart.FileHeader) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	ImportProducts(ctx context.Context, file *multipart.FileHeader) (*model.BulkImportResult, error)
}
