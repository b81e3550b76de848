package topology

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProvider reads route-sequence documents from a collection.
type MongoProvider struct {
	URI     string
	DB      string
	Coll    string
	Timeout time.Duration

	client *mongo.Client
}

func (p *MongoProvider) lazyClient(ctx context.Context) (*mongo.Client, error) {
	if p.client != nil {
		return p.client, nil
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(p.URI))
	if err != nil {
		return nil, errors.Wrap(err, "Can't connect to mongo")
	}
	p.client = client
	return client, nil
}

// Load implements Provider.
func (p *MongoProvider) Load(ctx context.Context, includeBuses bool) (*Dataset, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := p.lazyClient(ctx)
	if err != nil {
		return nil, err
	}
	filter := bson.M{}
	if !includeBuses {
		filter["mode"] = bson.M{"$nin": bson.A{"bus", "coach"}}
	}
	cur, err := client.Database(p.DB).Collection(p.Coll).Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't query %s.%s", p.DB, p.Coll)
	}
	defer cur.Close(ctx)

	var seqs []RouteSequence
	for cur.Next(ctx) {
		var seq RouteSequence
		if err := cur.Decode(&seq); err != nil {
			return nil, errors.Wrap(err, "Can't decode route sequence")
		}
		seqs = append(seqs, seq)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(err, "Cursor error")
	}
	return FromSequences(seqs, includeBuses), nil
}

// Close disconnects the client if one was opened.
func (p *MongoProvider) Close(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	err := p.client.Disconnect(ctx)
	p.client = nil
	return err
}
