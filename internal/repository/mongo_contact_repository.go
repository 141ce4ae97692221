package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/contactbook/backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ContactsCollection is the collection name used by MongoContactRepository.
const ContactsCollection = "contacts"

// contactDocument is the stored shape of a contact.
type contactDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Nama  string             `bson:"nama"`
	Email string             `bson:"email"`
	NoHP  string             `bson:"nohp"`
}

func (d *contactDocument) toModel() *model.Contact {
	return &model.Contact{
		ID:    d.ID.Hex(),
		Nama:  d.Nama,
		Email: d.Email,
		NoHP:  d.NoHP,
	}
}

// MongoContactRepository is the MongoDB implementation of ContactRepository.
type MongoContactRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ ContactRepository = (*MongoContactRepository)(nil)

// NewMongoClient connects to uri and verifies the connection with a ping.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// NewMongoContactRepository creates a repository over database's contacts collection.
func NewMongoContactRepository(client *mongo.Client, database string) *MongoContactRepository {
	return &MongoContactRepository{
		client: client,
		coll:   client.Database(database).Collection(ContactsCollection),
	}
}

func (r *MongoContactRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// List returns every contact in natural (insertion) order.
func (r *MongoContactRepository) List(ctx context.Context) ([]*model.Contact, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	var docs []contactDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}

	contacts := make([]*model.Contact, 0, len(docs))
	for i := range docs {
		contacts = append(contacts, docs[i].toModel())
	}
	return contacts, nil
}

func (r *MongoContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return decodeOne(r.coll.FindOne(ctx, bson.M{"_id": oid}))
}

// InsertMany inserts the contacts in one ordered batch and copies the
// generated ObjectIDs back onto them.
func (r *MongoContactRepository) InsertMany(ctx context.Context, contacts []*model.Contact) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(contacts))
	for _, c := range contacts {
		docs = append(docs, contactDocument{
			ID:    primitive.NewObjectID(),
			Nama:  c.Nama,
			Email: c.Email,
			NoHP:  c.NoHP,
		})
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert contacts: %w", err)
	}
	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(contacts) {
			contacts[i].ID = oid.Hex()
		}
	}
	return len(res.InsertedIDs), nil
}

func (r *MongoContactRepository) UpdateByID(ctx context.Context, id string, c *model.Contact) (*model.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"nama":  c.Nama,
		"email": c.Email,
		"nohp":  c.NoHP,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne(r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts))
}

func (r *MongoContactRepository) DeleteByID(ctx context.Context, id string) (*model.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return decodeOne(r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}))
}

func decodeOne(res *mongo.SingleResult) (*model.Contact, error) {
	var doc contactDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}
