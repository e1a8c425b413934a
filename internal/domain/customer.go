package domain

import "time"

// Customer is the person requesting inspections
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VehicleType is the category of a vehicle used for pricing
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleVan        VehicleType = "van"
	VehicleTruck      VehicleType = "truck"
	VehicleTrailer    VehicleType = "trailer"
)

// DefaultVehicleType is used for pricing when the type is unknown
const DefaultVehicleType = VehicleCar

var inspectionPrices = map[VehicleType]float64{
	VehicleCar:        1290,
	VehicleMotorcycle: 790,
	VehicleVan:        1590,
	VehicleTruck:      2790,
	VehicleTrailer:    690,
}

// InspectionPrice returns the fixed price for a vehicle type.
// Unknown types are priced as DefaultVehicleType and known is false.
func InspectionPrice(vehicleType VehicleType) (price float64, known bool) {
	if p, ok := inspectionPrices[vehicleType]; ok {
		return p, true
	}
	return inspectionPrices[DefaultVehicleType], false
}

// Vehicle is identified by its registration number
type Vehicle struct {
	ID           int64
	CustomerID   int64
	Registration string
	Type         VehicleType
	Brand        *string
	Model        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
