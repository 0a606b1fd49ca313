package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a confirmed ride as it appears in the rider's local
// history. Entries are created exactly once per settled payment and
// never mutated afterwards.
type Booking struct {
	ID          string        `json:"id"`
	Pickup      string        `json:"pickup"`
	Dropoff     string        `json:"dropoff"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Passengers  int           `json:"passengers"`
	VehicleType VehicleType   `json:"vehicleType"`
	Fare        string        `json:"fare"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// BookingRecord is the server-side copy kept in MongoDB by the
// booking-create endpoint.
type BookingRecord struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	StudentID          string             `json:"studentId" bson:"student_id"`
	StudentEmail       string             `json:"studentEmail" bson:"student_email"`
	StudentName        string             `json:"studentName" bson:"student_name"`
	Pickup             string             `json:"pickup" bson:"pickup"`
	Dropoff            string             `json:"dropoff" bson:"dropoff"`
	RideDate           string             `json:"rideDate" bson:"ride_date"`
	RideTime           string             `json:"rideTime" bson:"ride_time"`
	Passengers         int                `json:"passengers" bson:"passengers"`
	VehicleType        VehicleType        `json:"vehicleType" bson:"vehicle_type"`
	EstimatedFare      string             `json:"estimatedFare" bson:"estimated_fare"`
	ActualFare         string             `json:"actualFare,omitempty" bson:"actual_fare"`
	PaymentMethod      string             `json:"paymentMethod" bson:"payment_method"`
	PaymentStatus      string             `json:"paymentStatus,omitempty" bson:"payment_status"`
	PickupNotes        string             `json:"pickupNotes" bson:"pickup_notes"`
	AccessibilityNeeds string             `json:"accessibilityNeeds" bson:"accessibility_needs"`
	Status             BookingStatus      `json:"status" bson:"status" default:"pending"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// BookingCreateRequest is the payload the synchronizer posts to the
// upstream backend once a payment settles.
type BookingCreateRequest struct {
	StudentID          string      `json:"studentId"`
	StudentEmail       string      `json:"studentEmail" validate:"omitempty,email"`
	StudentName        string      `json:"studentName"`
	Pickup             string      `json:"pickup" validate:"required"`
	Dropoff            string      `json:"dropoff" validate:"required"`
	RideDate           string      `json:"rideDate" validate:"required"`
	RideTime           string      `json:"rideTime" validate:"required"`
	Passengers         int         `json:"passengers"`
	VehicleType        VehicleType `json:"vehicleType" validate:"omitempty,vehicle_type"`
	EstimatedFare      string      `json:"estimatedFare"`
	PaymentMethod      string      `json:"paymentMethod"`
	PickupNotes        string      `json:"pickupNotes"`
	AccessibilityNeeds string      `json:"accessibilityNeeds"`
}

// BookingUpdateRequest marks a remote booking completed after the
// confirmed fare is known.
type BookingUpdateRequest struct {
	Status        BookingStatus `json:"status"`
	ActualFare    string        `json:"actualFare"`
	PaymentStatus string        `json:"paymentStatus"`
}
