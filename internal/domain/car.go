package domain

type CarAvailabilityStatus string

const (
	CarStatusAvailable   CarAvailabilityStatus = "Available"
	CarStatusBooked      CarAvailabilityStatus = "Booked"
	CarStatusInService   CarAvailabilityStatus = "In Service"
	CarStatusUnavailable CarAvailabilityStatus = "Unavailable"
)

type CarFuelType string

const (
	CarFuelPetrol   CarFuelType = "Petrol"
	CarFuelDiesel   CarFuelType = "Diesel"
	CarFuelHybrid   CarFuelType = "Hybrid"
	CarFuelElectric CarFuelType = "Electric"
)

type CarTransmission string

const (
	CarTransmissionAutomatic CarTransmission = "Automatic"
	CarTransmissionManual    CarTransmission = "Manual"
	CarTransmissionCVT       CarTransmission = "CVT"
)

type Car struct {
	ID                 int32                 `json:"id"`
	Brand              string                `json:"brand"`
	Model              string                `json:"model"`
	Year               int32                 `json:"year"`
	RegistrationNumber string                `json:"registration_number"`
	FuelType           CarFuelType           `json:"fuel_type"`
	Transmission       CarTransmission       `json:"transmission"`
	Seats              int32                 `json:"seats"`
	// Price per day in whole Kenyan shillings.
	PricePerDay        int64                 `json:"price_per_day"`
	AvailabilityStatus CarAvailabilityStatus `json:"availability_status"`
	PickupLocation     string                `json:"pickup_location"`
	ImageURL           string                `json:"image_url,omitempty"`
	CreatedOn          string                `json:"created_on"`
	UpdatedOn          string                `json:"updated_on"`
}
