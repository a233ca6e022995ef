package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
)

// RoleRepositoryInterface stores the roles that group permissions. Accounts
// reference roles by the hex form of their ID, so deletes are soft.
type RoleRepositoryInterface interface {
	Create(ctx context.Context, role *model.Role) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Role, error)
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter bson.M, limit, skip int64) ([]*model.Role, error)
}

// RoleRepository implements RoleRepositoryInterface on the roles collection.
type RoleRepository struct {
	collection *mongo.Collection
}

// NewRoleRepository creates a role repository.
func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{
		collection: db.Collection("roles"),
	}
}

// findOne decodes a single role, mapping "no documents" to a nil role.
func (r *RoleRepository) findOne(ctx context.Context, filter bson.M) (*model.Role, error) {
	var role model.Role
	err := r.collection.FindOne(ctx, filter).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Create inserts a new role.
func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	now := time.Now()
	role.CreatedAt = now
	role.UpdatedAt = now
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, role)
	return err
}

// FindByID returns the role with the given ID.
func (r *RoleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByName returns the role with the given name. Registration looks up the
// default "user" role this way.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

// FindByIDs resolves the hex role IDs stored on an account. IDs that are not
// valid ObjectID hex are skipped rather than failing the whole lookup.
func (r *RoleRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Role, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDsFromHex(ids)}})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var roles []*model.Role
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Update rewrites a role document.
func (r *RoleRepository) Update(ctx context.Context, role *model.Role) error {
	role.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": role.ID},
		bson.M{"$set": role},
	)
	return err
}

// Delete deactivates a role. The document stays so accounts that still
// reference it resolve to an inactive role instead of a dangling ID.
func (r *RoleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	return err
}

// List retrieves roles with pagination.
func (r *RoleRepository) List(ctx context.Context, filter bson.M, limit, skip int64) ([]*model.Role, error) {
	opts := options.Find().SetLimit(limit).SetSkip(skip)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var roles []*model.Role
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// objectIDsFromHex converts stored hex IDs to ObjectIDs, dropping any that
// fail to parse.
func objectIDsFromHex(ids []string) []primitive.ObjectID {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, idStr := range ids {
		if id, err := primitive.ObjectIDFromHex(idStr); err == nil {
			objectIDs = append(objectIDs, id)
		}
	}
	return objectIDs
}
