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

// PermissionRepositoryInterface stores the resource/action grants checked by
// the authorization middleware. Resources are the API nouns: plans, foods,
// targets, users, roles.
type PermissionRepositoryInterface interface {
	Create(ctx context.Context, permission *model.Permission) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Permission, error)
	FindByResourceAndAction(ctx context.Context, resource, action string) (*model.Permission, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Permission, error)
	Update(ctx context.Context, permission *model.Permission) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter bson.M, limit, skip int64) ([]*model.Permission, error)
}

// PermissionRepository implements PermissionRepositoryInterface on the
// permissions collection.
type PermissionRepository struct {
	collection *mongo.Collection
}

// NewPermissionRepository creates a permission repository.
func NewPermissionRepository(db *mongo.Database) *PermissionRepository {
	return &PermissionRepository{
		collection: db.Collection("permissions"),
	}
}

// findOne decodes a single permission, mapping "no documents" to nil.
func (r *PermissionRepository) findOne(ctx context.Context, filter bson.M) (*model.Permission, error) {
	var permission model.Permission
	err := r.collection.FindOne(ctx, filter).Decode(&permission)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// Create inserts a new permission.
func (r *PermissionRepository) Create(ctx context.Context, permission *model.Permission) error {
	now := time.Now()
	permission.CreatedAt = now
	permission.UpdatedAt = now
	if permission.ID.IsZero() {
		permission.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, permission)
	return err
}

// FindByID returns the permission with the given ID.
func (r *PermissionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Permission, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByResourceAndAction returns the grant for one resource/action pair,
// which is how the middleware checks a route's requirement.
func (r *PermissionRepository) FindByResourceAndAction(ctx context.Context, resource, action string) (*model.Permission, error) {
	return r.findOne(ctx, bson.M{"resource": resource, "action": action})
}

// FindByIDs resolves the hex permission IDs stored on a role, skipping any
// that are not valid ObjectID hex.
func (r *PermissionRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Permission, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDsFromHex(ids)}})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var permissions []*model.Permission
	if err := cursor.All(ctx, &permissions); err != nil {
		return nil, err
	}
	return permissions, nil
}

// Update rewrites a permission document.
func (r *PermissionRepository) Update(ctx context.Context, permission *model.Permission) error {
	permission.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": permission.ID},
		bson.M{"$set": permission},
	)
	return err
}

// Delete deactivates a permission without removing it, keeping role
// references valid.
func (r *PermissionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	return err
}

// List retrieves permissions with pagination.
func (r *PermissionRepository) List(ctx context.Context, filter bson.M, limit, skip int64) ([]*model.Permission, error) {
	opts := options.Find().SetLimit(limit).SetSkip(skip)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var permissions []*model.Permission
	if err := cursor.All(ctx, &permissions); err != nil {
		return nil, err
	}
	return permissions, nil
}
