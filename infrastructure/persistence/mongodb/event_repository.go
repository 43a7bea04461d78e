package mongodb

import (
	"context"
	"time"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) outbound.EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	return findOne[entity.Event](ctx, r.store.col(ColEvents), bson.D{{Key: "_id", Value: id}})
}

func (r *EventRepository) FindAll(ctx context.Context, filters outbound.EventFilters, offset, limit int) ([]*entity.Event, int, error) {
	sort := bson.D{{Key: "dateDebut", Value: -1}}
	return findPage[entity.Event](ctx, r.store.col(ColEvents), eventFilter(filters), sort, offset, limit)
}

func (r *EventRepository) FindRecent(ctx context.Context, statut string, limit int) ([]*entity.Event, error) {
	filter := bson.D{}
	if statut != "" {
		filter = append(filter, bson.E{Key: "statut", Value: statut})
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	return findMany[entity.Event](ctx, r.store.col(ColEvents), filter, opts)
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	return insertOne(ctx, r.store.col(ColEvents), event)
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	return replaceByID(ctx, r.store.col(ColEvents), event.ID, event)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.store.col(ColEvents), id)
}

func (r *EventRepository) DeleteByClub(ctx context.Context, clubID string) (int64, error) {
	res, err := r.store.col(ColEvents).DeleteMany(ctx, bson.D{{Key: "clubId", Value: clubID}})
	if err != nil {
		return 0, wrapError(err)
	}
	return res.DeletedCount, nil
}

func (r *EventRepository) Count(ctx context.Context, filters outbound.EventFilters) (int, error) {
	return countDocs(ctx, r.store.col(ColEvents), eventFilter(filters))
}

func (r *EventRepository) CountByType(ctx context.Context, statut string) (map[string]int, error) {
	match := bson.D{}
	if statut != "" {
		match = append(match, bson.E{Key: "statut", Value: statut})
	}
	return groupCount(ctx, r.store.col(ColEvents), match, "$typeEvent")
}

func (r *EventRepository) CreatedPerDay(ctx context.Context, since time.Time) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: since}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$createdAt"},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.store.col(ColEvents).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var row struct {
			Day   string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Day] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func eventFilter(filters outbound.EventFilters) bson.D {
	filter := bson.D{}
	if filters.ClubID != "" {
		filter = append(filter, bson.E{Key: "clubId", Value: filters.ClubID})
	}
	if filters.Statut != "" {
		filter = append(filter, bson.E{Key: "statut", Value: filters.Statut})
	}
	if filters.TypeEvent != "" {
		filter = append(filter, bson.E{Key: "typeEvent", Value: filters.TypeEvent})
	}
	if filters.OnlyVisible {
		filter = append(filter, bson.E{Key: "visible", Value: true})
	}
	dateRange := bson.D{}
	if !filters.From.IsZero() {
		dateRange = append(dateRange, bson.E{Key: "$gte", Value: filters.From})
	}
	if !filters.To.IsZero() {
		dateRange = append(dateRange, bson.E{Key: "$lte", Value: filters.To})
	}
	if len(dateRange) > 0 {
		filter = append(filter, bson.E{Key: "createdAt", Value: dateRange})
	}
	if filters.Search != "" {
		filter = append(filter, bson.E{Key: "$text", Value: bson.D{{Key: "$search", Value: filters.Search}}})
	}
	return filter
}
