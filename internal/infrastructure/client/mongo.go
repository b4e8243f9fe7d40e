package client

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/St1cky1/todo-backend/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultDatabaseName = "todos"

type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
	urlSet bool
}

// NewMongoClient подключается к MongoDB. Пустой или некорректный DATABASE_URL
// не валит процесс: сервис продолжает отвечать, а состояние базы видно в /test
func NewMongoClient(databaseURL string) *MongoClient {
	c := &MongoClient{urlSet: databaseURL != ""}

	if databaseURL == "" {
		log.Println("⚠️  DATABASE_URL не задан, запускаемся без базы данных")
		return c
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(databaseURL))
	if err != nil {
		log.Printf("❌ Ошибка подключения к MongoDB: %v", err)
		return c
	}

	c.client = mongoClient
	c.db = mongoClient.Database(databaseNameFromURL(databaseURL))

	return c
}

// databaseNameFromURL достает имя базы из connection string
func databaseNameFromURL(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return defaultDatabaseName
	}

	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return defaultDatabaseName
	}
	return name
}

func (c *MongoClient) Connected() bool {
	return c.client != nil
}

func (c *MongoClient) URLConfigured() bool {
	return c.urlSet
}

func (c *MongoClient) DatabaseName() string {
	if c.db == nil {
		return ""
	}
	return c.db.Name()
}

// Collection возвращает коллекцию или nil, если база недоступна
func (c *MongoClient) Collection(name string) *mongo.Collection {
	if c.db == nil {
		return nil
	}
	return c.db.Collection(name)
}

// CollectionNames возвращает имена коллекций базы
func (c *MongoClient) CollectionNames(ctx context.Context) ([]string, error) {
	if c.db == nil {
		return nil, entity.ErrDatabaseNotConnected
	}
	return c.db.ListCollectionNames(ctx, bson.D{})
}

// HealthCheck проверяет соединение с базой
func (c *MongoClient) HealthCheck(ctx context.Context) error {
	if c.client == nil {
		return entity.ErrDatabaseNotConnected
	}
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *MongoClient) Close() error {
	if c.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return c.client.Disconnect(ctx)
}
