package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCErrorResponse переводит доменную ошибку в gRPC-статус. Уже готовые статусы не меняются.
func GRPCErrorResponse(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, e.ErrInsufficientStock):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, e.ErrProductNotFound),
		errors.Is(err, e.ErrStockNotFound),
		errors.Is(err, e.ErrOrderNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, e.ErrProductNumbersRequired),
		errors.Is(err, e.ErrInvalidOrderStatus),
		errors.Is(err, e.ErrInvalidDateRange):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

// unaryInterceptor логирует вызовы и приводит ошибки обработчиков к gRPC-статусам.
func unaryInterceptor(logger logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)
		if err != nil {
			err = GRPCErrorResponse(err)
			logger.Warnf("grpc %s failed in %s: %v", info.FullMethod, time.Since(start), err)
			return nil, err
		}

		logger.Debugf("grpc %s ok in %s", info.FullMethod, time.Since(start))
		return resp, nil
	}
}
