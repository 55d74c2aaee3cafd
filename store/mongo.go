package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ruman-Islam/doctors-portal-server/models"
)

// Mongo owns the client connection and hands out collection-backed stores.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB, verifies the connection with a ping and returns a
// handle that must be closed by the caller.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

// Close releases the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the API relies on. The unique booking
// index is what makes duplicate bookings impossible under concurrent inserts.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection("booking").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "treatment", Value: 1},
			{Key: "date", Value: 1},
			{Key: "patient", Value: 1},
			{Key: "slot", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create booking index: %w", err)
	}
	_, err = m.db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	return nil
}

// Stores returns collection-backed implementations of every store interface.
func (m *Mongo) Stores() Stores {
	return Stores{
		Treatments: &mongoTreatments{m.db.Collection("appointments")},
		Bookings:   &mongoBookings{m.db.Collection("booking")},
		Users:      &mongoUsers{m.db.Collection("users")},
		Doctors:    &mongoDoctors{m.db.Collection("doctors")},
		Payments:   &mongoPayments{m.db.Collection("payments")},
		Contacts:   &mongoContacts{m.db.Collection("contacts")},
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	return oid, nil
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", res.InsertedID)
}

func upsertResult(res *mongo.UpdateResult) *UpsertResult {
	out := &UpsertResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = oid.Hex()
	}
	return out
}

type mongoTreatments struct {
	coll *mongo.Collection
}

func (s *mongoTreatments) List(ctx context.Context, filter TreatmentFilter) ([]models.Treatment, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = filter.Name
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	cursor, err := s.coll.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	var treatments []models.Treatment
	if err := cursor.All(ctx, &treatments); err != nil {
		return nil, err
	}
	return treatments, nil
}

func (s *mongoTreatments) ByDate(ctx context.Context, date string) ([]models.Treatment, error) {
	return s.List(ctx, TreatmentFilter{Date: date})
}

func (s *mongoTreatments) DistinctNames(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "name", bson.M{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

type mongoBookings struct {
	coll *mongo.Collection
}

// mapInsertError translates a duplicate-key violation of the unique booking
// index into ErrDuplicateBooking; everything else passes through.
func mapInsertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateBooking
	}
	return err
}

func (s *mongoBookings) Insert(ctx context.Context, b *models.Booking) (string, error) {
	res, err := s.coll.InsertOne(ctx, b)
	if err != nil {
		return "", mapInsertError(err)
	}
	return insertedID(res), nil
}

func (s *mongoBookings) Find(ctx context.Context, treatment, date, patient, slot string) (*models.Booking, error) {
	query := bson.M{
		"treatment": treatment,
		"date":      date,
		"patient":   patient,
		"slot":      slot,
	}
	var b models.Booking
	if err := s.coll.FindOne(ctx, query).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *mongoBookings) ByID(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *mongoBookings) ByDate(ctx context.Context, date string) ([]models.Booking, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *mongoBookings) ByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"patientEmail": email})
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *mongoBookings) MarkPaid(ctx context.Context, id, transactionID string) (*UpsertResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return upsertResult(res), nil
}

type mongoUsers struct {
	coll *mongo.Collection
}

func (s *mongoUsers) Upsert(ctx context.Context, email string, user models.User) (*UpsertResult, error) {
	update := bson.M{"$set": bson.M{"email": email, "name": user.Name}}
	opts := options.Update().SetUpsert(true)
	res, err := s.coll.UpdateOne(ctx, bson.M{"email": email}, update, opts)
	if err != nil {
		return nil, err
	}
	return upsertResult(res), nil
}

func (s *mongoUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *mongoUsers) All(ctx context.Context) ([]models.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUsers) SetRole(ctx context.Context, email, role string) (*UpsertResult, error) {
	var update bson.M
	if role == "" {
		update = bson.M{"$unset": bson.M{"role": ""}}
	} else {
		update = bson.M{"$set": bson.M{"role": role}}
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return upsertResult(res), nil
}

type mongoDoctors struct {
	coll *mongo.Collection
}

func (s *mongoDoctors) All(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (s *mongoDoctors) Insert(ctx context.Context, d *models.Doctor) (string, error) {
	res, err := s.coll.InsertOne(ctx, d)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (s *mongoDoctors) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type mongoPayments struct {
	coll *mongo.Collection
}

func (s *mongoPayments) Insert(ctx context.Context, p *models.Payment) (string, error) {
	res, err := s.coll.InsertOne(ctx, p)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

type mongoContacts struct {
	coll *mongo.Collection
}

func (s *mongoContacts) Insert(ctx context.Context, m *models.Contact) (string, error) {
	res, err := s.coll.InsertOne(ctx, m)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}
