package listing

import (
	"time"

	"github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
)

// AssetId identifies a listable asset by (collection, tokenId) on a chain.
// Immutable once a listing exists.
type AssetId struct {
	ChainId    domain.ChainId `json:"chainId" bson:"chainId"`
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenID"`
}

func (id AssetId) ToLower() AssetId {
	id.Collection = id.Collection.ToLower()
	return id
}

// Id is the primary key of a listing record.
type Id struct {
	ChainId   domain.ChainId   `json:"chainId" bson:"chainId"`
	ListingId domain.ListingId `json:"listingId" bson:"listingId"`
}

// Listing is a fixed-price offer of one asset. It transitions
// active=true to active=false exactly once, via Delist or Buy, and the
// record is kept afterwards for history.
type Listing struct {
	ChainId      domain.ChainId   `json:"chainId" bson:"chainId"`
	ListingId    domain.ListingId `json:"listingId" bson:"listingId"`
	Collection   domain.Address   `json:"collection" bson:"collection"`
	TokenId      domain.TokenId   `json:"tokenId" bson:"tokenID"`
	Seller       domain.Address   `json:"seller" bson:"seller"`
	// Price is denominated in the payment token's base units
	Price        string         `json:"price" bson:"price"`
	PaymentToken domain.Address `json:"paymentToken" bson:"paymentToken"`
	Active       bool           `json:"active" bson:"active"`
	CreatedAt    time.Time      `json:"createdAt" bson:"createdAt"`

	Buyer      *domain.Address `json:"buyer,omitempty" bson:"buyer,omitempty"`
	SoldAt     *time.Time      `json:"soldAt,omitempty" bson:"soldAt,omitempty"`
	DelistedAt *time.Time      `json:"delistedAt,omitempty" bson:"delistedAt,omitempty"`
}

func (l *Listing) ToId() Id {
	return Id{
		ChainId:   l.ChainId,
		ListingId: l.ListingId,
	}
}

func (l *Listing) ToAssetId() AssetId {
	return AssetId{
		ChainId:    l.ChainId,
		Collection: l.Collection,
		TokenId:    l.TokenId,
	}
}

func (l *Listing) LowerCase() {
	l.Collection = l.Collection.ToLower()
	l.Seller = l.Seller.ToLower()
	l.PaymentToken = l.PaymentToken.ToLower()
}

// Patchable carries the mutable subset of a listing. Identity fields
// (asset, seller, price, listingId) are never patched.
type Patchable struct {
	Active     *bool           `json:"active" bson:"active,omitempty"`
	Buyer      *domain.Address `json:"buyer" bson:"buyer,omitempty"`
	SoldAt     *time.Time      `json:"soldAt" bson:"soldAt,omitempty"`
	DelistedAt *time.Time      `json:"delistedAt" bson:"delistedAt,omitempty"`
}

type FindAllOptions struct {
	ChainId    *domain.ChainId   `bson:"chainId"`
	Collection *domain.Address   `bson:"collection"`
	TokenId    *domain.TokenId   `bson:"tokenID"`
	ListingId  *domain.ListingId `bson:"listingId"`
	Seller     *domain.Address   `bson:"seller"`
	Active     *bool             `bson:"active"`
	Offset     *int32            `bson:"-"`
	Limit      *int32            `bson:"-"`
	Sort       *string           `bson:"-"`
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithCollection(collection domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Collection = collection.ToLowerPtr()
		return nil
	}
}

func WithTokenId(tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func WithListingId(listingId domain.ListingId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ListingId = &listingId
		return nil
	}
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithActive(active bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Active = &active
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

// Repo persists listing records. Records are never removed, only patched
// to their terminal state.
type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	FindOne(ctx ctx.Ctx, id Id) (*Listing, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Insert(ctx ctx.Ctx, listing *Listing) error
	Patch(ctx ctx.Ctx, id Id, patchable Patchable) error

	// NextId allocates a fresh listing id, strictly greater than any id
	// previously issued on the chain.
	NextId(ctx ctx.Ctx, chainId domain.ChainId) (domain.ListingId, error)
}

// Settlement describes a completed purchase.
type Settlement struct {
	ListingId    domain.ListingId `json:"listingId"`
	Collection   domain.Address   `json:"collection"`
	TokenId      domain.TokenId   `json:"tokenId"`
	Seller       domain.Address   `json:"seller"`
	Buyer        domain.Address   `json:"buyer"`
	Price        string           `json:"price"`
	PaymentToken domain.Address   `json:"paymentToken"`
	AssetTx      domain.TxHash    `json:"assetTx,omitempty"`
	PaymentTx    domain.TxHash    `json:"paymentTx,omitempty"`
}

type UseCase interface {
	// List creates an active listing for the asset after the seller's
	// authorization is verified. Fails with domain.ErrAlreadyListed when the
	// asset already has an active listing.
	List(ctx ctx.Ctx, asset AssetId, seller domain.Address, price string) (domain.ListingId, error)

	// Delist cancels an active listing. Only the recorded seller may cancel.
	Delist(ctx ctx.Ctx, asset AssetId, listingId domain.ListingId, caller domain.Address) error

	// Buy fulfils an active listing, atomically swapping the asset for
	// exactly the stored price.
	Buy(ctx ctx.Ctx, chainId domain.ChainId, listingId domain.ListingId, asset AssetId, buyer domain.Address) (*Settlement, error)

	IsListed(ctx ctx.Ctx, chainId domain.ChainId, listingId domain.ListingId) (bool, error)
	GetPrice(ctx ctx.Ctx, chainId domain.ChainId, listingId domain.ListingId) (string, error)
	GetListing(ctx ctx.Ctx, chainId domain.ChainId, listingId domain.ListingId) (*Listing, error)
	ResolveListingId(ctx ctx.Ctx, asset AssetId) (domain.ListingId, error)
	FindActivities(ctx ctx.Ctx, opts ...ActivityFindAllOptionsFunc) ([]*Activity, error)
}
