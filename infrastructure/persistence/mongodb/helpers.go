package mongodb

import (
	"context"
	"errors"

	"github.com/clubhub/clubhub/application/port/outbound"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// wrapError maps driver errors onto the repository port errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return outbound.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return outbound.ErrDuplicate
	}
	return err
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D) (*T, error) {
	var result T
	if err := col.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]*T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	var results []*T
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*T{}
	}
	return results, nil
}

// findPage runs the filtered query with skip/limit plus a matching count.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter bson.D, sort bson.D, offset, limit int) ([]*T, int, error) {
	total, err := countDocs(ctx, col, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(sort)
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	items, err := findMany[T](ctx, col, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func insertOne(ctx context.Context, col *mongo.Collection, doc interface{}) error {
	_, err := col.InsertOne(ctx, doc)
	return wrapError(err)
}

// replaceByID overwrites the whole document; entities are saved as a unit.
func replaceByID(ctx context.Context, col *mongo.Collection, id string, doc interface{}) error {
	res, err := col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc)
	if err != nil {
		return wrapError(err)
	}
	if res.MatchedCount == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string) error {
	res, err := col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return wrapError(err)
	}
	if res.DeletedCount == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

func countDocs(ctx context.Context, col *mongo.Collection, filter bson.D) (int, error) {
	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapError(err)
	}
	return int(n), nil
}

// groupCount counts documents grouped by the given field expression, e.g.
// "$categorie".
func groupCount(ctx context.Context, col *mongo.Collection, match bson.D, groupBy string) (map[string]int, error) {
	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: groupBy},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}})

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func existsByFilter(ctx context.Context, col *mongo.Collection, filter bson.D) (bool, error) {
	n, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, wrapError(err)
	}
	return n > 0, nil
}
