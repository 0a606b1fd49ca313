package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mastoride/internal/models"
	"mastoride/internal/utils"
	"mastoride/pkg/database"
	"mastoride/pkg/logger"
)

// ErrUserNotFound is returned by user lookups and deletes by id.
var ErrUserNotFound = errors.New(utils.ErrUserNotFound)

// ErrBookingNotFound is returned by booking updates against an unknown id.
var ErrBookingNotFound = errors.New(utils.ErrBookingNotFound)

// rideTypeColors is the fixed palette the admin charts render with,
// in vehicle-type label order.
var rideTypeColors = []string{"#3B82F6", "#F59E0B", "#10B981"}

// ChartData is the label/value pairing behind the admin charts.
type ChartData struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// RideTypeData adds the chart palette to the distribution counts.
type RideTypeData struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
	Colors []string `json:"colors"`
}

type AdminService interface {
	ListUsers(ctx context.Context, query string) ([]*models.PublicUser, error)
	DeleteUser(ctx context.Context, id string) error
	MonthlyRides(ctx context.Context) (*ChartData, error)
	RideTypes(ctx context.Context) (*RideTypeData, error)
	CreateBooking(ctx context.Context, req *models.BookingCreateRequest) (*models.BookingRecord, error)
	UpdateBooking(ctx context.Context, id string, req *models.BookingUpdateRequest) error
}

type adminService struct {
	db     *database.MongoDB
	logger *logger.Logger
}

func NewAdminService(db *database.MongoDB, log *logger.Logger) AdminService {
	return &adminService{db: db, logger: log}
}

func (s *adminService) users() *mongo.Collection {
	return s.db.Collection("users")
}

func (s *adminService) bookings() *mongo.Collection {
	return s.db.Collection("bookings")
}

func (s *adminService) ListUsers(ctx context.Context, query string) ([]*models.PublicUser, error) {
	filter := bson.M{"deleted_at": nil}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
		}
	}

	cursor, err := s.users().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.PublicUser
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, user.Public())
	}
	return users, cursor.Err()
}

// DeleteUser soft-deletes so the email stays visible in audit trails
// while disappearing from listings and logins.
func (s *adminService) DeleteUser(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrUserNotFound
	}

	result, err := s.users().UpdateOne(ctx,
		bson.M{"_id": objectID, "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	s.logger.LogUserAction(id, "user_deleted", nil)
	return nil
}

// MonthlyRides buckets bookings by creation month over the trailing
// six months, oldest first, padding empty months with zero.
func (s *adminService) MonthlyRides(ctx context.Context) (*ChartData, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": start}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$created_at"},
				"month": bson.M{"$month": "$created_at"},
			},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := s.bookings().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				Year  int `bson:"year"`
				Month int `bson:"month"`
			} `bson:"_id"`
			Count int `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		key := time.Date(row.ID.Year, time.Month(row.ID.Month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		counts[key] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	data := &ChartData{}
	for i := 0; i < 6; i++ {
		month := start.AddDate(0, i, 0)
		key := month.Format("Jan 2006")
		data.Labels = append(data.Labels, month.Format("Jan"))
		data.Counts = append(data.Counts, counts[key])
	}
	return data, nil
}

// RideTypes returns the booking distribution per vehicle class.
// Labels always cover every class, in a stable order, so the chart
// palette lines up.
func (s *adminService) RideTypes(ctx context.Context) (*RideTypeData, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$vehicle_type",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := s.bookings().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	data := &RideTypeData{Colors: rideTypeColors}
	for _, vt := range []models.VehicleType{models.VehicleTypeEconomy, models.VehicleTypePremium, models.VehicleTypeXL} {
		data.Labels = append(data.Labels, string(vt))
		data.Data = append(data.Data, counts[string(vt)])
	}
	return data, nil
}

func (s *adminService) CreateBooking(ctx context.Context, req *models.BookingCreateRequest) (*models.BookingRecord, error) {
	now := time.Now()
	record := models.BookingRecord{
		ID:                 primitive.NewObjectID(),
		StudentID:          req.StudentID,
		StudentEmail:       req.StudentEmail,
		StudentName:        req.StudentName,
		Pickup:             req.Pickup,
		Dropoff:            req.Dropoff,
		RideDate:           req.RideDate,
		RideTime:           req.RideTime,
		Passengers:         req.Passengers,
		VehicleType:        req.VehicleType,
		EstimatedFare:      req.EstimatedFare,
		PaymentMethod:      req.PaymentMethod,
		PickupNotes:        req.PickupNotes,
		AccessibilityNeeds: req.AccessibilityNeeds,
		Status:             models.BookingStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := s.bookings().InsertOne(ctx, record); err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(record.ID.Hex(), "created", map[string]interface{}{
		"student_id": record.StudentID,
	})
	return &record, nil
}

func (s *adminService) UpdateBooking(ctx context.Context, id string, req *models.BookingUpdateRequest) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrBookingNotFound
	}

	update := bson.M{"updated_at": time.Now()}
	if req.Status != "" {
		update["status"] = req.Status
	}
	if req.ActualFare != "" {
		update["actual_fare"] = req.ActualFare
	}
	if req.PaymentStatus != "" {
		update["payment_status"] = req.PaymentStatus
	}

	result, err := s.bookings().UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrBookingNotFound
	}

	s.logger.LogBookingEvent(id, "updated", map[string]interface{}{
		"status": string(req.Status),
	})
	return nil
}
