package listing

import (
	"time"

	"github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
)

type ActivityType string

const (
	ActivityTypeListed   ActivityType = "listed"
	ActivityTypeDelisted ActivityType = "delisted"
	ActivityTypeSold     ActivityType = "sold"
)

// Activity is one entry of the append-only listing history. Entries are
// written in the same transaction as the state change they describe and
// are never deleted.
type Activity struct {
	ChainId      domain.ChainId   `json:"chainId" bson:"chainId"`
	ListingId    domain.ListingId `json:"listingId" bson:"listingId"`
	Collection   domain.Address   `json:"collection" bson:"collection"`
	TokenId      domain.TokenId   `json:"tokenId" bson:"tokenID"`
	Type         ActivityType     `json:"type" bson:"type"`
	Seller       domain.Address   `json:"seller" bson:"seller"`
	Buyer        domain.Address   `json:"buyer,omitempty" bson:"buyer,omitempty"`
	Price        string           `json:"price" bson:"price"`
	DisplayPrice string           `json:"displayPrice,omitempty" bson:"displayPrice,omitempty"`
	PaymentToken domain.Address   `json:"paymentToken" bson:"paymentToken"`
	Time         time.Time        `json:"time" bson:"time"`
}

type ActivityFindAllOptions struct {
	ChainId    *domain.ChainId   `bson:"chainId"`
	Collection *domain.Address   `bson:"collection"`
	TokenId    *domain.TokenId   `bson:"tokenID"`
	ListingId  *domain.ListingId `bson:"listingId"`
	Type       *ActivityType     `bson:"type"`
	Offset     *int32            `bson:"-"`
	Limit      *int32            `bson:"-"`
}

type ActivityFindAllOptionsFunc func(*ActivityFindAllOptions) error

func GetActivityFindAllOptions(opts ...ActivityFindAllOptionsFunc) (ActivityFindAllOptions, error) {
	res := ActivityFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func ActivityWithChainId(chainId domain.ChainId) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func ActivityWithCollection(collection domain.Address) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.Collection = collection.ToLowerPtr()
		return nil
	}
}

func ActivityWithTokenId(tokenId domain.TokenId) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func ActivityWithListingId(listingId domain.ListingId) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.ListingId = &listingId
		return nil
	}
}

func ActivityWithType(t ActivityType) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func ActivityWithPagination(offset int32, limit int32) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type ActivityRepo interface {
	Insert(ctx ctx.Ctx, activity *Activity) error
	FindAll(ctx ctx.Ctx, opts ...ActivityFindAllOptionsFunc) ([]*Activity, error)
}
