package interceptors

import (
	"context"
	"strings"

	"github.com/louisbranch/pebbles/internal/platform/errors/i18n"
	"github.com/louisbranch/pebbles/internal/platform/requestctx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// LocaleInterceptor resolves the accept-language metadata to a supported
// locale and stores it in the request context.
func LocaleInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var accept string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			accept = strings.Join(md.Get("accept-language"), ",")
		}
		return handler(requestctx.WithLocale(ctx, i18n.MatchLocale(accept)), req)
	}
}
