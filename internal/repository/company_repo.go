package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

const countersCollection = "counters"

// MongoCompanyRepository guarda companies no Mongo com _id inteiro sequencial.
type MongoCompanyRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewMongoCompanyRepository(db *mongo.Database) *MongoCompanyRepository {
	return &MongoCompanyRepository{
		coll:     db.Collection("companies"),
		counters: db.Collection(countersCollection),
	}
}

func (r *MongoCompanyRepository) EnsureIndexes(ctx context.Context) error {
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "company_name", Value: 1}}, Options: options.Index().SetName("idx_company_name")},
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("idx_status")},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, idx)
	if err == nil {
		return nil
	}
	// Se já existir com outra opção, tenta dropar e recriar
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 85 { // IndexOptionsConflict
		for _, m := range idx {
			if _, dropErr := r.coll.Indexes().DropOne(ctx, *m.Options.Name); dropErr != nil {
				return fmt.Errorf("drop index %s: %w", *m.Options.Name, dropErr)
			}
		}
		_, err = r.coll.Indexes().CreateMany(ctx, idx)
	}
	return err
}

func (r *MongoCompanyRepository) nextID(ctx context.Context) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "companies"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next company id: %w", err)
	}
	return doc.Seq, nil
}

func (r *MongoCompanyRepository) Create(ctx context.Context, c *models.Company) error {
	ApplyDefaults(c)
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	c.ID = id
	// Mongo guarda milissegundos
	c.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	c.UpdatedAt = c.CreatedAt
	_, err = r.coll.InsertOne(ctx, c)
	return err
}

func (r *MongoCompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	var c models.Company
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoCompanyRepository) List(ctx context.Context, q ListQuery) ([]models.Company, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Industry != "" {
		filter["industry"] = q.Industry
	}
	if q.Priority != 0 {
		filter["priority"] = q.Priority
	}

	dir := 1
	if q.Desc() {
		dir = -1
	}
	sort := bson.D{{Key: mongoField(q.SortBy), Value: dir}}
	if q.SortBy != "id" {
		sort = append(sort, bson.E{Key: "_id", Value: dir})
	}

	opts := options.Find().SetLimit(int64(q.Limit)).SetSkip(int64(q.Skip)).SetSort(sort)
	return r.find(ctx, filter, opts)
}

func (r *MongoCompanyRepository) Search(ctx context.Context, keyword string) ([]models.Company, error) {
	filter := bson.M{"company_name": bson.M{"$regex": regexp.QuoteMeta(keyword)}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *MongoCompanyRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Company, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Company{}
	for cur.Next(ctx) {
		var c models.Company
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, cur.Err()
}

func (r *MongoCompanyRepository) Update(ctx context.Context, id int64, ch Changes) (*models.Company, error) {
	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	unset := bson.M{}
	for col, v := range ch {
		if v == nil {
			unset[col] = ""
			continue
		}
		set[col] = v
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var c models.Company
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoCompanyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCompanyRepository) Statistics(ctx context.Context) (models.Statistics, error) {
	st := NewStatistics()
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return st, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			N      int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return st, err
		}
		st.Total += row.N
		if _, ok := st.ByStatus[row.Status]; ok {
			st.ByStatus[row.Status] = row.N
		}
	}
	return st, cur.Err()
}

func (r *MongoCompanyRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func mongoField(col string) string {
	if col == "id" {
		return "_id"
	}
	return col
}
