package pricefomatter

import (
	"math/big"

	"github.com/shopspring/decimal"
	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
)

// PriceFormatter renders base-unit amounts of a registered payment token
// as display prices.
type PriceFormatter interface {
	GetDisplayPrice(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address, value *big.Int) (decimal.Decimal, error)
	GetDisplayPriceFromString(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address, value string) (decimal.Decimal, error)
}
