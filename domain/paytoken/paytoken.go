package paytoken

import (
	"math/big"

	"github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
)

type Id struct {
	ChainId domain.ChainId `bson:"chainId"`
	Address domain.Address `bson:"address"`
}

// PayToken is a registered erc20 payment token.
type PayToken struct {
	Name     string         `json:"name" bson:"name"`
	Symbol   string         `json:"symbol" bson:"symbol"`
	Decimals int32          `json:"decimals" bson:"decimals"`
	ChainId  domain.ChainId `json:"chainId" bson:"chainId"`
	Address  domain.Address `json:"address" bson:"address"`
}

func (t *PayToken) ToId() *Id {
	return &Id{
		ChainId: t.ChainId,
		Address: t.Address,
	}
}

type Repo interface {
	FindOne(ctx.Ctx, domain.ChainId, domain.Address) (*PayToken, error)
	Create(ctx.Ctx, *PayToken) error
	Upsert(ctx.Ctx, *PayToken) error
}

// Contract is the erc20 collaborator consumed by the marketplace.
// TransferFrom spends an allowance granted to the registry; Transfer
// spends the registry's own balance.
type Contract interface {
	Allowance(ctx ctx.Ctx, chainId domain.ChainId, token domain.Address, owner, spender domain.Address) (*big.Int, error)
	BalanceOf(ctx ctx.Ctx, chainId domain.ChainId, token domain.Address, owner domain.Address) (*big.Int, error)
	TransferFrom(ctx ctx.Ctx, chainId domain.ChainId, token domain.Address, from, to domain.Address, amount *big.Int) (domain.TxHash, error)
	Transfer(ctx ctx.Ctx, chainId domain.ChainId, token domain.Address, to domain.Address, amount *big.Int) (domain.TxHash, error)
}
