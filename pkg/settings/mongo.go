package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/stickypack/pkg/pack"
)

// MongoCollection is the collection MongoStore uses by default.
const MongoCollection = "settings"

// MongoStore keeps one document per board, keyed by board id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	board  string
}

type settingsDocument struct {
	Board     string    `bson:"_id"`
	Config    string    `bson:"config"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to uri and uses database db.
func NewMongoStore(ctx context.Context, uri, db, board string) (*MongoStore, error) {
	if board == "" {
		return nil, fmt.Errorf("board id cannot be empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(MongoCollection),
		board:  board,
	}, nil
}

func (m *MongoStore) Load(ctx context.Context) (pack.Overrides, bool, error) {
	var doc settingsDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": m.board}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return pack.Overrides{}, false, nil
	}
	if err != nil {
		return pack.Overrides{}, false, err
	}
	var o pack.Overrides
	if err := json.Unmarshal([]byte(doc.Config), &o); err != nil {
		return pack.Overrides{}, false, fmt.Errorf("decode settings for %s: %w", m.board, err)
	}
	return o, true, nil
}

func (m *MongoStore) Save(ctx context.Context, cfg pack.Config) error {
	data, err := json.Marshal(stored(cfg))
	if err != nil {
		return err
	}
	doc := settingsDocument{Board: m.board, Config: string(data), UpdatedAt: time.Now().UTC()}
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": m.board}, doc, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
