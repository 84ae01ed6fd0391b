package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/base/database/mongoclient"
	"github.com/nftmarket/goapi/base/database/redisclient"
	"github.com/nftmarket/goapi/base/log"
	"github.com/nftmarket/goapi/base/metrics"
	pricefomatter "github.com/nftmarket/goapi/base/price_fomatter"
	bValidator "github.com/nftmarket/goapi/base/validator"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/paytoken"
	mmiddleware "github.com/nftmarket/goapi/middleware"
	"github.com/nftmarket/goapi/service/chain"
	"github.com/nftmarket/goapi/service/chain/contract"
	"github.com/nftmarket/goapi/service/query"
	"github.com/nftmarket/goapi/service/redis"
	exchange_usecase "github.com/nftmarket/goapi/stores/exchange/usecase"
	hc_delivery "github.com/nftmarket/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/nftmarket/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/nftmarket/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/nftmarket/goapi/stores/listing/delivery/http"
	listing_repository "github.com/nftmarket/goapi/stores/listing/repository"
	listing_usecase "github.com/nftmarket/goapi/stores/listing/usecase"
	nft_usecase "github.com/nftmarket/goapi/stores/nft/usecase"
	paytoken_repository "github.com/nftmarket/goapi/stores/paytoken/repository"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)
	if err := listing_repository.EnsureIndexes(context, mongoClient); err != nil {
		log.Log().WithField("err", err).Panic("fail to create mongo indexes")
	}

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	paymentTokens := make(map[domain.ChainId]domain.Address)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		rpcs[chainId] = rpcUrl
		payToken := networks.GetString(fmt.Sprintf("%s.paymentToken", k))
		paymentTokens[domain.ChainId(chainId)] = domain.Address(payToken).ToLower()
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:     rpcs,
		OperatorKey: viper.GetString("marketplace.operatorKey"),
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	erc721Service := contract.NewErc721(chainService)
	erc20Service := contract.NewErc20(chainService)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	listingRepo := listing_repository.NewListingRepo(q, redisCache)
	activityRepo := listing_repository.NewActivityRepo(q)
	paytokenRepo := paytoken_repository.NewPayTokenRepo(q)

	// register the configured payment tokens so display prices resolve
	for chainId, token := range paymentTokens {
		symbol, err := erc20Service.Symbol(context, chainId, token)
		if err != nil {
			context.WithFields(log.Fields{"chainId": chainId, "token": token, "err": err}).Warn("failed to read payment token symbol")
			continue
		}
		decimals, err := erc20Service.Decimals(context, chainId, token)
		if err != nil {
			context.WithFields(log.Fields{"chainId": chainId, "token": token, "err": err}).Warn("failed to read payment token decimals")
			continue
		}
		if err := paytokenRepo.Upsert(context, &paytoken.PayToken{
			Name:     symbol,
			Symbol:   symbol,
			Decimals: decimals,
			ChainId:  chainId,
			Address:  token,
		}); err != nil {
			context.WithFields(log.Fields{"chainId": chainId, "token": token, "err": err}).Warn("failed to upsert payment token")
		}
	}

	priceFormatter := pricefomatter.NewPriceFormatter(&pricefomatter.PriceFormatterCfg{
		Paytoken: paytokenRepo,
	})
	hc := hc_usecase.New(hcRepo)
	authorizer := nft_usecase.New(&nft_usecase.AuthorizerCfg{
		Erc721: erc721Service,
	})
	operator := domain.Address(chainService.Operator().Hex())
	executor := exchange_usecase.New(&exchange_usecase.ExecutorCfg{
		Erc721:   erc721Service,
		Erc20:    erc20Service,
		Operator: operator,
	})
	listingUC := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo:    listingRepo,
		ActivityRepo:   activityRepo,
		Authorizer:     authorizer,
		Executor:       executor,
		Query:          q,
		PaymentTokens:  paymentTokens,
		PriceFormatter: priceFormatter,
	})

	hc_delivery.New(e, hc)
	listing_delivery.New(e, listingUC, priceFormatter)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
