package mongodb

import (
	"context"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type AdminRepository struct {
	store *Store
}

func NewAdminRepository(store *Store) outbound.AdminRepository {
	return &AdminRepository{store: store}
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	return findOne[entity.Admin](ctx, r.store.col(ColAdmins), bson.D{{Key: "_id", Value: id}})
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	return findOne[entity.Admin](ctx, r.store.col(ColAdmins), bson.D{{Key: "email", Value: email}})
}

func (r *AdminRepository) FindByResetToken(ctx context.Context, tokenHash string) (*entity.Admin, error) {
	return findOne[entity.Admin](ctx, r.store.col(ColAdmins), bson.D{{Key: "resetPasswordToken", Value: tokenHash}})
}

func (r *AdminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	return insertOne(ctx, r.store.col(ColAdmins), admin)
}

func (r *AdminRepository) Update(ctx context.Context, admin *entity.Admin) error {
	return replaceByID(ctx, r.store.col(ColAdmins), admin.ID, admin)
}

func (r *AdminRepository) Exists(ctx context.Context, id string) (bool, error) {
	return existsByFilter(ctx, r.store.col(ColAdmins), bson.D{{Key: "_id", Value: id}})
}
