package grpc

import (
	"errors"

	"github.com/DRSN-tech/storefront/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var statusErrors = []struct {
	code codes.Code
	errs []error
}{
	{codes.InvalidArgument, []error{
		e.ErrStatusBadRequest,
		e.ErrInvalidPage,
		e.ErrInvalidPageSize,
		e.ErrSessionRequired,
		e.ErrProductIDRequired,
		e.ErrInvalidQuantity,
	}},
	{codes.NotFound, []error{e.ErrProductNotFound}},
	{codes.FailedPrecondition, []error{e.ErrProductOutOfStock, e.ErrEmptyCart}},
	{codes.Unauthenticated, []error{e.ErrUnauthorized}},
}

func GRPCErrorResponse(err error) error {
	for _, group := range statusErrors {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return status.Error(group.code, target.Error())
			}
		}
	}

	return status.Error(codes.Internal, e.ErrInternalServerError.Error())
}
