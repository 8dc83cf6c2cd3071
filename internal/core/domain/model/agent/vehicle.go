package agent

import (
	"errors"
	"fmt"

	"couriertrack/internal/pkg/errs"
	"couriertrack/internal/pkg/guard"
)

// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

// VehicleType represents the kind of vehicle an agent delivers with.
type VehicleType int

const (
	// VehicleTypeUnknown represents an invalid vehicle type (zero value).
	VehicleTypeUnknown VehicleType = iota
	// Bike is a bicycle.
	Bike
	// Motorcycle is a motorcycle or scooter.
	Motorcycle
	// Car is a passenger car.
	Car
	// Van is a delivery van.
	Van
)

// getValidVehicleTypeStrings returns only the valid vehicle types.
func getValidVehicleTypeStrings() map[VehicleType]string {
	//nolint:exhaustive // VehicleTypeUnknown is intentionally excluded as it's invalid
	return map[VehicleType]string{
		Bike:       "bike",
		Motorcycle: "motorcycle",
		Car:        "car",
		Van:        "van",
	}
}

// VehicleTypeFromString parses a vehicle type from its string representation.
func VehicleTypeFromString(s string) (VehicleType, error) {
	for vehicleType, str := range getValidVehicleTypeStrings() {
		if str == s {
			return vehicleType, nil
		}
	}
	return VehicleTypeUnknown, errs.NewValueIsInvalidErrorWithCause("vehicle type",
		fmt.Errorf("%q is not a valid vehicle type", s))
}

// Validate checks that the vehicle type is one of the defined kinds.
func (t VehicleType) Validate() error {
	if _, ok := getValidVehicleTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type",
			fmt.Errorf("%d is not a valid vehicle type", t))
	}
	return nil
}

// String returns the string representation of the vehicle type.
func (t VehicleType) String() string {
	if str, ok := getValidVehicleTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Vehicle is a value object describing what an agent delivers with,
// e.g. a motorcycle "Honda CB350".
type Vehicle struct {
	vehicleType VehicleType
	model       string
	guard       guard.ConstructorGuard
}

// NewVehicle creates a Vehicle of the given type and model.
// The model is free-form and must be non-empty.
func NewVehicle(vehicleType VehicleType, model string) (Vehicle, error) {
	if err := vehicleType.Validate(); err != nil {
		return Vehicle{}, err
	}
	if model == "" {
		return Vehicle{}, errs.NewValueIsRequiredError("vehicle model")
	}

	return Vehicle{
		vehicleType: vehicleType,
		model:       model,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Type returns the kind of vehicle.
func (v Vehicle) Type() VehicleType {
	return v.vehicleType
}

// Model returns the free-form model description.
func (v Vehicle) Model() string {
	return v.model
}

// IsEqual compares two vehicles by type and model.
func (v Vehicle) IsEqual(other Vehicle) bool {
	return v.vehicleType == other.vehicleType && v.model == other.model
}

// Validate ensures the vehicle was created through the constructor.
func (v Vehicle) Validate() error {
	if err := v.guard.Validate(ErrVehicleIsNotConstructed); err != nil {
		return err
	}
	return v.vehicleType.Validate()
}
