package pricefomatter

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/shopspring/decimal"
	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/base/log"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/paytoken"
)

type PriceFormatterCfg struct {
	Paytoken paytoken.Repo
}

type impl struct {
	paytoken paytoken.Repo

	// mutex protected members
	mutex         sync.Mutex
	payTokenCache map[string]*paytoken.PayToken
}

func NewPriceFormatter(cfg *PriceFormatterCfg) PriceFormatter {
	return &impl{
		paytoken:      cfg.Paytoken,
		payTokenCache: make(map[string]*paytoken.PayToken),
	}
}

func (f *impl) getPayToken(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address) (*paytoken.PayToken, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	key := fmt.Sprintf("%d%s", chainId, token.ToLower())
	p, ok := f.payTokenCache[key]
	if ok {
		return p, nil
	}
	p, err := f.paytoken.FindOne(ctx, chainId, token)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId": chainId,
			"token":   token,
			"err":     err,
		}).Error("paytoken.FindOne failed")
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	f.payTokenCache[key] = p
	return p, nil
}

func (f *impl) GetDisplayPrice(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address, value *big.Int) (decimal.Decimal, error) {
	p, err := f.getPayToken(ctx, chainId, token)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId": chainId,
			"token":   token,
			"err":     err,
		}).Error("getPayToken failed")
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(value, -p.Decimals), nil
}

func (f *impl) GetDisplayPriceFromString(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address, value string) (decimal.Decimal, error) {
	v, err := domain.ToPrice(value)
	if err != nil {
		ctx.WithField("value", value).Error("invalid base unit value")
		return decimal.Zero, err
	}
	return f.GetDisplayPrice(ctx, chainId, token, v)
}
