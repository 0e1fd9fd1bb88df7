package util

import (
	"context"

	"github.com/RoyceAzure/lab/ecommerce/internal/constants"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/token"
)

// GetTokenPayloadFromContext 從請求上下文中取得token payload
// 不存在時回傳nil，由呼叫端決定要不要當作未登入處理
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	var tokenPayload *token.Payload

	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		tokenPayload = v.(*token.Payload)
	}

	return tokenPayload
}

// GetRequestIDFromContext 從請求上下文中取得request id
func GetRequestIDFromContext(ctx context.Context) string {
	requestID := "unknown"
	if v := ctx.Value(constants.RequestIDKey); v != nil {
		requestID = v.(string)
	}
	return requestID
}
