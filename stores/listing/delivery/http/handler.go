package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/base/delivery"
	pricefomatter "github.com/nftmarket/goapi/base/price_fomatter"
	"github.com/nftmarket/goapi/base/validator"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/listing"
	"github.com/nftmarket/goapi/middleware"
)

type handler struct {
	listing        listing.UseCase
	priceFormatter pricefomatter.PriceFormatter
}

// New will initialize the listings endpoints
func New(e *echo.Echo, uc listing.UseCase, priceFormatter pricefomatter.PriceFormatter) {
	h := &handler{listing: uc, priceFormatter: priceFormatter}

	g := e.Group("/listings")
	g.POST("", h.list)
	g.DELETE("/:listingId", h.delist)
	g.POST("/:listingId/buy", h.buy)
	g.GET("/:listingId", h.get)
	g.GET("/:listingId/listed", h.isListed)
	g.GET("/:listingId/price", h.getPrice)

	e.GET("/collections/:collection/tokens/:tokenId/listing", h.resolve, middleware.IsValidAddress("collection"))
	e.GET("/activities", h.findActivities)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		ChainId    domain.ChainId `json:"chainId" validate:"required"`
		Collection domain.Address `json:"collection" validate:"required"`
		TokenId    domain.TokenId `json:"tokenId" validate:"required"`
		Seller     domain.Address `json:"seller" validate:"required"`
		Price      string         `json:"price" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if !validator.IsValidAddress(string(p.Collection)) || !validator.IsValidAddress(string(p.Seller)) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	asset := listing.AssetId{ChainId: p.ChainId, Collection: p.Collection, TokenId: p.TokenId}
	if id, err := h.listing.List(ctx, asset, p.Seller, p.Price); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, map[string]interface{}{"listingId": id})
	}
}

func (h *handler) delist(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		ListingId  domain.ListingId `param:"listingId"`
		ChainId    domain.ChainId   `json:"chainId" validate:"required"`
		Collection domain.Address   `json:"collection" validate:"required"`
		TokenId    domain.TokenId   `json:"tokenId" validate:"required"`
		Caller     domain.Address   `json:"caller" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if !validator.IsValidAddress(string(p.Caller)) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	asset := listing.AssetId{ChainId: p.ChainId, Collection: p.Collection, TokenId: p.TokenId}
	if err := h.listing.Delist(ctx, asset, p.ListingId, p.Caller); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		ListingId  domain.ListingId `param:"listingId"`
		ChainId    domain.ChainId   `json:"chainId" validate:"required"`
		Collection domain.Address   `json:"collection" validate:"required"`
		TokenId    domain.TokenId   `json:"tokenId" validate:"required"`
		Buyer      domain.Address   `json:"buyer" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if !validator.IsValidAddress(string(p.Buyer)) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	asset := listing.AssetId{ChainId: p.ChainId, Collection: p.Collection, TokenId: p.TokenId}
	if res, err := h.listing.Buy(ctx, p.ChainId, p.ListingId, asset, p.Buyer); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ListingId domain.ListingId `param:"listingId"`
		ChainId   domain.ChainId   `query:"chainId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.listing.GetListing(ctx, p.ChainId, p.ListingId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) isListed(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ListingId domain.ListingId `param:"listingId"`
		ChainId   domain.ChainId   `query:"chainId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.listing.IsListed(ctx, p.ChainId, p.ListingId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, map[string]bool{"listed": res})
	}
}

func (h *handler) getPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ListingId domain.ListingId `param:"listingId"`
		ChainId   domain.ChainId   `query:"chainId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	price, err := h.listing.GetPrice(ctx, p.ChainId, p.ListingId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := map[string]string{"price": price}
	if l, err := h.listing.GetListing(ctx, p.ChainId, p.ListingId); err == nil && h.priceFormatter != nil {
		if dp, err := h.priceFormatter.GetDisplayPriceFromString(ctx, l.ChainId, l.PaymentToken, price); err == nil {
			res["displayPrice"] = dp.String()
		}
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) resolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Collection domain.Address `param:"collection"`
		TokenId    domain.TokenId `param:"tokenId"`
		ChainId    domain.ChainId `query:"chainId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	asset := listing.AssetId{ChainId: p.ChainId, Collection: p.Collection, TokenId: p.TokenId}
	if id, err := h.listing.ResolveListingId(ctx, asset); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{"listingId": id})
	}
}

func (h *handler) findActivities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ChainId    *domain.ChainId       `query:"chainId"`
		Collection *domain.Address       `query:"collection"`
		TokenId    *domain.TokenId       `query:"tokenId"`
		ListingId  *domain.ListingId     `query:"listingId"`
		Type       *listing.ActivityType `query:"type"`
		Offset     int32                 `query:"offset"`
		Limit      int32                 `query:"limit"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []listing.ActivityFindAllOptionsFunc{}
	if p.ChainId != nil {
		opts = append(opts, listing.ActivityWithChainId(*p.ChainId))
	}
	if p.Collection != nil {
		opts = append(opts, listing.ActivityWithCollection(*p.Collection))
	}
	if p.TokenId != nil {
		opts = append(opts, listing.ActivityWithTokenId(*p.TokenId))
	}
	if p.ListingId != nil {
		opts = append(opts, listing.ActivityWithListingId(*p.ListingId))
	}
	if p.Type != nil {
		opts = append(opts, listing.ActivityWithType(*p.Type))
	}
	if p.Limit > 0 {
		opts = append(opts, listing.ActivityWithPagination(p.Offset, p.Limit))
	}

	if res, err := h.listing.FindActivities(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
