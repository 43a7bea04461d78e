package mongodb

import (
	"context"
	"time"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ClubRepository struct {
	store *Store
}

func NewClubRepository(store *Store) outbound.ClubRepository {
	return &ClubRepository{store: store}
}

func (r *ClubRepository) FindByID(ctx context.Context, id string) (*entity.Club, error) {
	return findOne[entity.Club](ctx, r.store.col(ColClubs), bson.D{{Key: "_id", Value: id}})
}

func (r *ClubRepository) FindByEmail(ctx context.Context, email string) (*entity.Club, error) {
	return findOne[entity.Club](ctx, r.store.col(ColClubs), bson.D{{Key: "email", Value: email}})
}

func (r *ClubRepository) FindByResetToken(ctx context.Context, tokenHash string) (*entity.Club, error) {
	return findOne[entity.Club](ctx, r.store.col(ColClubs), bson.D{{Key: "resetPasswordToken", Value: tokenHash}})
}

func (r *ClubRepository) FindAll(ctx context.Context, filters outbound.ClubFilters, offset, limit int) ([]*entity.Club, int, error) {
	sort := bson.D{{Key: "createdAt", Value: -1}}
	return findPage[entity.Club](ctx, r.store.col(ColClubs), clubFilter(filters), sort, offset, limit)
}

func (r *ClubRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Club, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	return findMany[entity.Club](ctx, r.store.col(ColClubs), bson.D{}, opts)
}

func (r *ClubRepository) Create(ctx context.Context, club *entity.Club) error {
	return insertOne(ctx, r.store.col(ColClubs), club)
}

func (r *ClubRepository) Update(ctx context.Context, club *entity.Club) error {
	return replaceByID(ctx, r.store.col(ColClubs), club.ID, club)
}

func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.store.col(ColClubs), id)
}

func (r *ClubRepository) Exists(ctx context.Context, id string) (bool, error) {
	return existsByFilter(ctx, r.store.col(ColClubs), bson.D{{Key: "_id", Value: id}})
}

func (r *ClubRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return existsByFilter(ctx, r.store.col(ColClubs), bson.D{{Key: "email", Value: email}})
}

func (r *ClubRepository) Count(ctx context.Context, filters outbound.ClubFilters) (int, error) {
	return countDocs(ctx, r.store.col(ColClubs), clubFilter(filters))
}

func (r *ClubRepository) CountByCategorie(ctx context.Context) (map[string]int, error) {
	return groupCount(ctx, r.store.col(ColClubs), bson.D{}, "$categorie")
}

func (r *ClubRepository) IncrementEventCounters(ctx context.Context, id string, events, validated int) error {
	inc := bson.D{}
	if events != 0 {
		inc = append(inc, bson.E{Key: "stats.nombreEvents", Value: events})
	}
	if validated != 0 {
		inc = append(inc, bson.E{Key: "stats.nombreEventsValides", Value: validated})
	}
	if len(inc) == 0 {
		return nil
	}
	res, err := r.store.col(ColClubs).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{
			{Key: "$inc", Value: inc},
			{Key: "$set", Value: bson.D{{Key: "stats.derniereActivite", Value: time.Now()}}},
		})
	if err != nil {
		return wrapError(err)
	}
	if res.MatchedCount == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

func clubFilter(filters outbound.ClubFilters) bson.D {
	filter := bson.D{}
	if filters.Statut != "" {
		filter = append(filter, bson.E{Key: "statut", Value: filters.Statut})
	}
	if filters.Categorie != "" {
		filter = append(filter, bson.E{Key: "categorie", Value: filters.Categorie})
	}
	if filters.OnlyValidated {
		filter = append(filter, bson.E{Key: "valide", Value: true})
	}
	if filters.ProfileComplet != nil {
		filter = append(filter, bson.E{Key: "profileComplet", Value: *filters.ProfileComplet})
	}
	if filters.Search != "" {
		pattern := bson.D{{Key: "$regex", Value: filters.Search}, {Key: "$options", Value: "i"}}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "nom", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
		}})
	}
	return filter
}
