package store

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolops/student-sync/roster"
)

// Mongo is the MongoDB users collection.
type Mongo struct {
	client *mongo.Client
	users  *mongo.Collection
}

// Connect opens the users collection and checks that the server is reachable.
func Connect(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "unable to connect to database")
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, pkgerrors.Wrap(err, "unable to reach database")
	}

	return &Mongo{
		client: client,
		users:  client.Database(database).Collection(collection),
	}, nil
}

// NewMongo wraps an already opened users collection.
func NewMongo(users *mongo.Collection) *Mongo {
	return &Mongo{
		users: users,
	}
}

func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}

	return m.client.Disconnect(ctx)
}

func (m *Mongo) Exists(ctx context.Context, email string) (bool, error) {
	var doc bson.M

	err := m.users.FindOne(ctx, bson.M{"email": email}, options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, nil
}

func (m *Mongo) Insert(ctx context.Context, user roster.NewUser) error {
	_, err := m.users.InsertOne(ctx, user)

	return err
}

// Update overwrites the profile fields of the user with the email. Fields that are not part of
// the profile (password, issuedId, anything added by other applications) are left as they are.
func (m *Mongo) Update(ctx context.Context, email string, profile roster.Profile) error {
	_, err := m.users.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": profile})

	return err
}

// Purge deletes all the students in a year.
func (m *Mongo) Purge(ctx context.Context, year int) (int64, error) {
	result, err := m.users.DeleteMany(ctx, bson.M{"year": year, "type": roster.TypeStudent})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
