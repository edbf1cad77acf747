package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/catalog"
	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type stubCatalog struct {
	products []domain.Product
}

func (s *stubCatalog) ListProducts(_ context.Context, req *usecase.ListProductsReq) (*usecase.ListProductsRes, error) {
	q := catalog.NewQueryState(req.PageSize)
	q.SetSearchTerm(req.SearchTerm)
	q.SetCategory(req.Category)
	q.SetPage(req.Page)

	res := catalog.Run(s.products, q)
	return usecase.NewListProductsRes(res.Items, res.Page, res.PageSize, res.TotalPages, res.TotalResults), nil
}

func (s *stubCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (s *stubCatalog) FeaturedProducts(context.Context) ([]domain.Product, error) {
	return catalog.Featured(s.products), nil
}

func dial(t *testing.T) (*grpc.ClientConn, *usecase.CartUseCase) {
	t.Helper()

	log := logger.NewNop()
	catalogUC := &stubCatalog{products: []domain.Product{
		{ID: "1", Name: "Cuarzo Rosa", Price: decimal.RequireFromString("35"), Category: domain.CategoryCrystals, Stock: 2},
		{ID: "2", Name: "Incienso Copal", Price: decimal.RequireFromString("12.75"), Category: domain.CategoryIncense, Stock: 2},
	}}
	cartUC := usecase.NewCartUC(cart.NewMemoryStorage(), catalogUC, "cart", log)

	srv := NewGRPCServer(&cfg.GRPCConfig{}, log)
	srv.RegisterServices(catalogUC, cartUC)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn, cartUC
}

func TestListProductsOverGRPC(t *testing.T) {
	conn, _ := dial(t)

	req, err := structpb.NewStruct(map[string]interface{}{"category": "cristales"})
	require.NoError(t, err)

	res := new(structpb.Struct)
	require.NoError(t, conn.Invoke(context.Background(), CatalogService_ListProducts_FullMethodName, req, res))

	assert.Equal(t, float64(1), res.Fields["total_results"].GetNumberValue())
	products := res.Fields["products"].GetListValue().GetValues()
	require.Len(t, products, 1)
	assert.Equal(t, "35.00", products[0].GetStructValue().Fields["price"].GetStringValue())

	bad, err := structpb.NewStruct(map[string]interface{}{"page_size": 500})
	require.NoError(t, err)
	err = conn.Invoke(context.Background(), CatalogService_ListProducts_FullMethodName, bad, new(structpb.Struct))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetCartOverGRPC(t *testing.T) {
	conn, cartUC := dial(t)

	_, err := cartUC.AddItem(context.Background(), "s1", "2")
	require.NoError(t, err)

	req, err := structpb.NewStruct(map[string]interface{}{"session_id": "s1"})
	require.NoError(t, err)

	res := new(structpb.Struct)
	require.NoError(t, conn.Invoke(context.Background(), CatalogService_GetCart_FullMethodName, req, res))
	assert.Equal(t, "12.75", res.Fields["total_price"].GetStringValue())
	assert.Len(t, res.Fields["items"].GetListValue().GetValues(), 1)

	err = conn.Invoke(context.Background(), CatalogService_GetCart_FullMethodName, &structpb.Struct{}, new(structpb.Struct))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
