package healthcheck

import (
	"github.com/nftmarket/goapi/base/ctx"
)

// HealthCheckRepo represent the healthcheck repository contract
type HealthCheckRepo interface {
	PingDB(ctx ctx.Ctx) error
}

// HealthCheckUsecase represent the healthcheck usecase contract
type HealthCheckUsecase interface {
	Check(ctx ctx.Ctx) error
}
