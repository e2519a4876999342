package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/lineagemap/pkg/errors"
	"github.com/matzehuels/lineagemap/pkg/family"
)

// CollectionFamilies holds one record per family, keyed by name.
const CollectionFamilies = "families"

// MongoStore keeps families in MongoDB.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type familyRecord struct {
	Name      string           `bson:"_id"`
	Doc       *family.Document `bson:"doc"`
	Public    bool             `bson:"public"`
	Slug      string           `bson:"slug,omitempty"`
	UpdatedAt time.Time        `bson:"updated_at"`
}

// NewMongoStore connects to uri and uses database db. It pings the server
// and ensures the slug index exists.
func NewMongoStore(ctx context.Context, uri, db string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping mongo")
	}
	s := &MongoStore{client: client, coll: client.Database(db).Collection(CollectionFamilies)}

	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetSparse(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "create slug index")
	}
	return s, nil
}

func (s *MongoStore) Name() string { return "mongo" }

func (s *MongoStore) Get(ctx context.Context, name string) (*family.Document, error) {
	name, err := storageName(name)
	if err != nil {
		return nil, err
	}
	rec, err := s.findOne(ctx, bson.M{"_id": name})
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(name, "")
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "get family %q", name)
	}
	return rec.Doc, nil
}

func (s *MongoStore) Put(ctx context.Context, name string, doc *family.Document) error {
	name, err := storageName(name)
	if err != nil {
		return err
	}
	_, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$set": bson.M{"doc": doc, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "put family %q", name)
	}
	return nil
}

func (s *MongoStore) SetVisibility(ctx context.Context, name string, public bool) (Visibility, error) {
	name, err := storageName(name)
	if err != nil {
		return Visibility{}, err
	}
	rec, err := s.findOne(ctx, bson.M{"_id": name})
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return Visibility{}, notFound(name, "")
		}
		return Visibility{}, errors.Wrap(errors.ErrCodeInternal, err, "get family %q", name)
	}

	v := Visibility{Public: public, Slug: rec.Slug}
	if public && v.Slug == "" {
		v.Slug = newSlug()
	}
	_, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$set": bson.M{"public": v.Public, "slug": v.Slug, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return Visibility{}, errors.Wrap(errors.ErrCodeInternal, err, "set visibility of %q", name)
	}
	return v, nil
}

func (s *MongoStore) GetPublic(ctx context.Context, slug string) (*family.Document, error) {
	if slug == "" {
		return nil, errors.New(errors.ErrCodeNotFound, "no public family at %q", slug)
	}
	rec, err := s.findOne(ctx, bson.M{"slug": slug, "public": true})
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New(errors.ErrCodeNotFound, "no public family at %q", slug)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "get public family")
	}
	return rec.Doc, nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list families")
	}
	var recs []familyRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list families")
	}
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Name)
	}
	return names, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (familyRecord, error) {
	var rec familyRecord
	err := s.coll.FindOne(ctx, filter).Decode(&rec)
	return rec, err
}

var _ Store = (*MongoStore)(nil)
