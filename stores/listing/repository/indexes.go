package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/base/database/mongoclient"
	"github.com/nftmarket/goapi/domain"
)

// EnsureIndexes creates the indexes the listing tables rely on. The
// unique partial index over the active asset is what turns a concurrent
// double list into a duplicate-key error instead of a second active
// listing.
func EnsureIndexes(ctx bCtx.Ctx, db *mongoclient.Client) error {
	listings := db.Database(db.DbName).Collection(string(domain.TableListings))
	if _, err := listings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "chainId", Value: 1}, {Key: "listingId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// at most one active listing per asset
			Keys: bson.D{{Key: "chainId", Value: 1}, {Key: "collection", Value: 1}, {Key: "tokenID", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		},
	}); err != nil {
		return err
	}

	counters := db.Database(db.DbName).Collection(string(domain.TableCounters))
	if _, err := counters.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "chainId", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	activities := db.Database(db.DbName).Collection(string(domain.TableListingActivities))
	if _, err := activities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "chainId", Value: 1}, {Key: "time", Value: -1}},
	}); err != nil {
		return err
	}
	return nil
}
