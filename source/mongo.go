package source

import (
	"context"
	"fmt"
	"time"

	admin "github.com/paulvitic/members-admin"
	"github.com/paulvitic/members-admin/table"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Mongo reads the records from every document of a collection, in natural order.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *admin.Logger
}

type memberDocument struct {
	ObjectID any    `bson:"_id"`
	ID       any    `bson:"id,omitempty"`
	Name     string `bson:"name"`
	Email    string `bson:"email"`
	Role     string `bson:"role"`
}

func NewMongo(ctx context.Context, uri, database, collection string, logger *admin.Logger) (*Mongo, error) {
	logger = logger.Named("MongoSource")

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("while connecting to %s: %w", uri, err)
	}
	if err = client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("while testing connection: %w", err)
	}
	logger.Info("connected to MongoDB, reading %s.%s", database, collection)

	return &Mongo{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger,
	}, nil
}

func (s *Mongo) Fetch(ctx context.Context) ([]table.Record, error) {
	cur, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("while querying members: %w", err)
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	records := make([]table.Record, 0)
	for cur.Next(ctx) {
		var doc memberDocument
		if err = cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("while decoding member: %w", err)
		}
		record, err := doc.record()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err = cur.Err(); err != nil {
		return nil, fmt.Errorf("while iterating members: %w", err)
	}
	s.logger.Debug("found %d members", len(records))
	return records, nil
}

func (s *Mongo) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (d memberDocument) record() (table.Record, error) {
	raw := d.ID
	if raw == nil {
		raw = d.ObjectID
	}
	id, err := toID(raw)
	if err != nil {
		return table.Record{}, err
	}
	return table.Record{ID: id, Name: d.Name, Email: d.Email, Role: table.Role(d.Role)}, nil
}

func toID(raw any) (admin.ID, error) {
	switch v := raw.(type) {
	case string:
		return admin.NewID(v), nil
	case int32:
		return admin.NewID(int64(v)), nil
	case int64:
		return admin.NewID(v), nil
	case float64:
		return admin.NewID(v), nil
	case primitive.ObjectID:
		return admin.NewID(v.Hex()), nil
	case nil:
		return nil, fmt.Errorf("member document has no id")
	}
	return nil, fmt.Errorf("member id of type %T is not supported", raw)
}
