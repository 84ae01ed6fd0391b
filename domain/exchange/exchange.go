package exchange

import (
	"math/big"

	"github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
)

// Fulfillment is the input of one settlement: move the asset from seller
// to buyer and exactly Price payment units from buyer to seller.
type Fulfillment struct {
	ChainId      domain.ChainId
	Collection   domain.Address
	TokenId      *big.Int
	Seller       domain.Address
	Buyer        domain.Address
	PaymentToken domain.Address
	Price        *big.Int
}

// Receipt reports the transfers performed for a fulfillment.
type Receipt struct {
	AssetTx   domain.TxHash
	PaymentTx domain.TxHash
}

// Executor performs the two-sided exchange. Both transfers succeed or the
// whole settlement fails with domain.ErrTransferFailed; no partial
// settlement is observable.
type Executor interface {
	Execute(ctx ctx.Ctx, fulfillment *Fulfillment) (*Receipt, error)
}
