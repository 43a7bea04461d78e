package mongodb

import (
	"context"
	"time"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) outbound.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.store.col(ColUsers), bson.D{{Key: "_id", Value: id}})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.store.col(ColUsers), bson.D{{Key: "email", Value: email}})
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.store.col(ColUsers), bson.D{{Key: "resetPasswordToken", Value: tokenHash}})
}

func (r *UserRepository) FindAll(ctx context.Context, filters outbound.UserFilters, offset, limit int) ([]*entity.User, int, error) {
	sort := bson.D{{Key: "createdAt", Value: -1}}
	return findPage[entity.User](ctx, r.store.col(ColUsers), userFilter(filters), sort, offset, limit)
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return insertOne(ctx, r.store.col(ColUsers), user)
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	return replaceByID(ctx, r.store.col(ColUsers), user.ID, user)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.store.col(ColUsers), id)
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	return existsByFilter(ctx, r.store.col(ColUsers), bson.D{{Key: "_id", Value: id}})
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return existsByFilter(ctx, r.store.col(ColUsers), bson.D{{Key: "email", Value: email}})
}

func (r *UserRepository) Count(ctx context.Context, filters outbound.UserFilters) (int, error) {
	return countDocs(ctx, r.store.col(ColUsers), userFilter(filters))
}

func (r *UserRepository) UnassignClub(ctx context.Context, clubID string) (int64, error) {
	res, err := r.store.col(ColUsers).UpdateMany(ctx,
		bson.D{{Key: "clubAssigne", Value: clubID}},
		bson.D{
			{Key: "$unset", Value: bson.D{{Key: "clubAssigne", Value: ""}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
		})
	if err != nil {
		return 0, wrapError(err)
	}
	return res.ModifiedCount, nil
}

func userFilter(filters outbound.UserFilters) bson.D {
	filter := bson.D{}
	if filters.Role != "" {
		filter = append(filter, bson.E{Key: "role", Value: filters.Role})
	}
	if filters.Statut != "" {
		filter = append(filter, bson.E{Key: "statut", Value: filters.Statut})
	}
	if filters.Search != "" {
		pattern := bson.D{{Key: "$regex", Value: filters.Search}, {Key: "$options", Value: "i"}}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "nom", Value: pattern}},
			bson.D{{Key: "prenom", Value: pattern}},
			bson.D{{Key: "email", Value: pattern}},
		}})
	}
	return filter
}
