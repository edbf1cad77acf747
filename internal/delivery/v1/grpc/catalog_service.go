package grpc

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/catalog"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const maxPageSize = 100

// CatalogServiceServer — каталог и корзина для внутренних клиентов.
// Сообщения передаются как google.protobuf.Struct.
type CatalogServiceServer interface {
	ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type CatalogService struct {
	catalogUC usecase.CatalogUC
	cartUC    usecase.CartUC
	logger    logger.Logger
}

func NewCatalogService(catalogUC usecase.CatalogUC, cartUC usecase.CartUC, logger logger.Logger) *CatalogService {
	return &CatalogService{catalogUC: catalogUC, cartUC: cartUC, logger: logger}
}

// ListProducts принимает поля search, category, page, page_size, featured_first.
func (g *CatalogService) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.ListProducts"

	fields := req.GetFields()

	page := int(fields["page"].GetNumberValue())
	if page == 0 {
		page = 1
	}
	pageSize := int(fields["page_size"].GetNumberValue())
	if pageSize == 0 {
		pageSize = catalog.DefaultPageSize
	}
	if page < 1 {
		return nil, GRPCErrorResponse(e.ErrInvalidPage)
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, GRPCErrorResponse(e.ErrInvalidPageSize)
	}

	res, err := g.catalogUC.ListProducts(ctx, &usecase.ListProductsReq{
		SearchTerm:    fields["search"].GetStringValue(),
		Category:      domain.Category(fields["category"].GetStringValue()),
		Page:          page,
		PageSize:      pageSize,
		FeaturedFirst: fields["featured_first"].GetBoolValue(),
	})
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	products := make([]interface{}, len(res.Products))
	for i, p := range res.Products {
		products[i] = productToMap(p)
	}

	return toStruct(op, map[string]interface{}{
		"products":      products,
		"page":          res.Page,
		"page_size":     res.PageSize,
		"total_pages":   res.TotalPages,
		"total_results": res.TotalResults,
	})
}

// GetCart принимает поле session_id.
func (g *CatalogService) GetCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.GetCart"

	view, err := g.cartUC.GetCart(ctx, req.GetFields()["session_id"].GetStringValue())
	if err != nil {
		g.logger.Warnf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	items := make([]interface{}, len(view.Lines))
	for i, l := range view.Lines {
		items[i] = map[string]interface{}{
			"product_id": l.ProductID,
			"name":       l.Name,
			"price":      l.Price.StringFixed(2),
			"quantity":   l.Quantity,
			"subtotal":   l.Subtotal().StringFixed(2),
		}
	}

	return toStruct(op, map[string]interface{}{
		"session_id":  view.SessionID,
		"items":       items,
		"total_items": view.TotalItems,
		"total_price": view.TotalPrice.StringFixed(2),
	})
}

func productToMap(p domain.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.StringFixed(2),
		"image":       p.Image,
		"category":    p.Category.String(),
		"in_stock":    p.InStock(),
		"featured":    p.Featured,
	}
}

func toStruct(op string, m map[string]interface{}) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return s, nil
}

func _CatalogService_ListProducts_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CatalogService_ListProducts_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServiceServer).ListProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _CatalogService_GetCart_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CatalogService_GetCart_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServiceServer).GetCart(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

const (
	CatalogService_ListProducts_FullMethodName = "/storefront.v1.CatalogService/ListProducts"
	CatalogService_GetCart_FullMethodName      = "/storefront.v1.CatalogService/GetCart"
)

var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "storefront.v1.CatalogService",
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListProducts", Handler: _CatalogService_ListProducts_Handler},
		{MethodName: "GetCart", Handler: _CatalogService_GetCart_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/catalog.proto",
}
