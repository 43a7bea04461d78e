package mongodb

import (
	"context"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type LogRepository struct {
	store *Store
}

func NewLogRepository(store *Store) outbound.LogRepository {
	return &LogRepository{store: store}
}

func (r *LogRepository) Insert(ctx context.Context, entry *entity.LogEntry) error {
	return insertOne(ctx, r.store.col(ColLogs), entry)
}

func (r *LogRepository) FindAll(ctx context.Context, filters outbound.LogFilters, offset, limit int) ([]*entity.LogEntry, int, error) {
	sort := bson.D{{Key: "createdAt", Value: -1}}
	return findPage[entity.LogEntry](ctx, r.store.col(ColLogs), logFilter(filters), sort, offset, limit)
}

func (r *LogRepository) FindRecent(ctx context.Context, limit int) ([]*entity.LogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	return findMany[entity.LogEntry](ctx, r.store.col(ColLogs), bson.D{}, opts)
}

func (r *LogRepository) Stats(ctx context.Context) (*outbound.LogStats, error) {
	total, err := countDocs(ctx, r.store.col(ColLogs), bson.D{})
	if err != nil {
		return nil, err
	}
	byAction, err := groupCount(ctx, r.store.col(ColLogs), bson.D{}, "$action")
	if err != nil {
		return nil, err
	}
	byUserType, err := groupCount(ctx, r.store.col(ColLogs), bson.D{}, "$userType")
	if err != nil {
		return nil, err
	}
	return &outbound.LogStats{
		Total:      total,
		ByAction:   byAction,
		ByUserType: byUserType,
	}, nil
}

func (r *LogRepository) ListActorRefs(ctx context.Context) ([]outbound.LogActorRef, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "_id", Value: 1},
		{Key: "userId", Value: 1},
		{Key: "userType", Value: 1},
	})
	filter := bson.D{{Key: "userId", Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}}}

	refs, err := findMany[outbound.LogActorRef](ctx, r.store.col(ColLogs), filter, opts)
	if err != nil {
		return nil, err
	}
	out := make([]outbound.LogActorRef, 0, len(refs))
	for _, ref := range refs {
		out = append(out, *ref)
	}
	return out, nil
}

func (r *LogRepository) DeleteByDetailsNote(ctx context.Context, note string) (int64, error) {
	res, err := r.store.col(ColLogs).DeleteMany(ctx, bson.D{{Key: "details.note", Value: note}})
	if err != nil {
		return 0, wrapError(err)
	}
	return res.DeletedCount, nil
}

func (r *LogRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.store.col(ColLogs).DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return 0, wrapError(err)
	}
	return res.DeletedCount, nil
}

func logFilter(filters outbound.LogFilters) bson.D {
	filter := bson.D{}
	if filters.Action != "" {
		filter = append(filter, bson.E{Key: "action", Value: filters.Action})
	}
	if filters.UserID != "" {
		filter = append(filter, bson.E{Key: "userId", Value: filters.UserID})
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
	return filter
}
