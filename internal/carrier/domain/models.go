package domain

import "time"

// CarrierRecord is the canonical, organization-agnostic registry record for a
// carrier, keyed by USDOT number. Attributes are shared across every
// organization that references the carrier; each registry lookup overwrites
// them in full, regardless of which organization triggered it.
type CarrierRecord struct {
	USDOT string `gorm:"column:usdot;primaryKey" json:"usdot"`

	EntityType      *string `gorm:"column:entity_type" json:"entity_type,omitempty"`
	USDOTStatus     *string `gorm:"column:usdot_status" json:"usdot_status,omitempty"`
	LegalName       *string `gorm:"column:legal_name" json:"legal_name,omitempty"`
	DBAName         *string `gorm:"column:dba_name" json:"dba_name,omitempty"`
	PhysicalAddress *string `gorm:"column:physical_address" json:"physical_address,omitempty"`
	MailingAddress  *string `gorm:"column:mailing_address" json:"mailing_address,omitempty"`
	Phone           *string `gorm:"column:phone" json:"phone,omitempty"`
	StateCarrierID  *string `gorm:"column:state_carrier_id" json:"state_carrier_id,omitempty"`
	MCMXFFNumbers   *string `gorm:"column:mc_mx_ff_numbers" json:"mc_mx_ff_numbers,omitempty"`
	DUNSNumber      *string `gorm:"column:duns_number" json:"duns_number,omitempty"`

	PowerUnits *int `gorm:"column:power_units" json:"power_units,omitempty"`
	Drivers    *int `gorm:"column:drivers" json:"drivers,omitempty"`

	MCS150FormDate           *string `gorm:"column:mcs_150_form_date" json:"mcs_150_form_date,omitempty"`
	MCS150MileageYearMileage *int    `gorm:"column:mcs_150_mileage_year_mileage" json:"mcs_150_mileage_year_mileage,omitempty"`
	MCS150MileageYearYear    *int    `gorm:"column:mcs_150_mileage_year_year" json:"mcs_150_mileage_year_year,omitempty"`

	OutOfServiceDate         *string `gorm:"column:out_of_service_date" json:"out_of_service_date,omitempty"`
	OperatingAuthorityStatus *string `gorm:"column:operating_authority_status" json:"operating_authority_status,omitempty"`
	OperationClassification  *string `gorm:"column:operation_classification" json:"operation_classification,omitempty"`
	CarrierOperation         *string `gorm:"column:carrier_operation" json:"carrier_operation,omitempty"`
	HMShipperOperation       *string `gorm:"column:hm_shipper_operation" json:"hm_shipper_operation,omitempty"`
	CargoCarried             *string `gorm:"column:cargo_carried" json:"cargo_carried,omitempty"`

	USAVehicleInspections          *int    `gorm:"column:usa_vehicle_inspections" json:"usa_vehicle_inspections,omitempty"`
	USAVehicleOutOfService         *int    `gorm:"column:usa_vehicle_out_of_service" json:"usa_vehicle_out_of_service,omitempty"`
	USAVehicleOutOfServicePercent  *string `gorm:"column:usa_vehicle_out_of_service_percent" json:"usa_vehicle_out_of_service_percent,omitempty"`
	USAVehicleNationalAverage      *string `gorm:"column:usa_vehicle_national_average" json:"usa_vehicle_national_average,omitempty"`
	USADriverInspections           *int    `gorm:"column:usa_driver_inspections" json:"usa_driver_inspections,omitempty"`
	USADriverOutOfService          *int    `gorm:"column:usa_driver_out_of_service" json:"usa_driver_out_of_service,omitempty"`
	USADriverOutOfServicePercent   *string `gorm:"column:usa_driver_out_of_service_percent" json:"usa_driver_out_of_service_percent,omitempty"`
	USADriverNationalAverage       *string `gorm:"column:usa_driver_national_average" json:"usa_driver_national_average,omitempty"`
	USAHazmatInspections           *int    `gorm:"column:usa_hazmat_inspections" json:"usa_hazmat_inspections,omitempty"`
	USAHazmatOutOfService          *int    `gorm:"column:usa_hazmat_out_of_service" json:"usa_hazmat_out_of_service,omitempty"`
	USAHazmatOutOfServicePercent   *string `gorm:"column:usa_hazmat_out_of_service_percent" json:"usa_hazmat_out_of_service_percent,omitempty"`
	USAHazmatNationalAverage       *string `gorm:"column:usa_hazmat_national_average" json:"usa_hazmat_national_average,omitempty"`
	USAIEPInspections              *int    `gorm:"column:usa_iep_inspections" json:"usa_iep_inspections,omitempty"`
	USAIEPOutOfService             *int    `gorm:"column:usa_iep_out_of_service" json:"usa_iep_out_of_service,omitempty"`
	USAIEPOutOfServicePercent      *string `gorm:"column:usa_iep_out_of_service_percent" json:"usa_iep_out_of_service_percent,omitempty"`
	USAIEPNationalAverage          *string `gorm:"column:usa_iep_national_average" json:"usa_iep_national_average,omitempty"`
	USACrashesTow                  *int    `gorm:"column:usa_crashes_tow" json:"usa_crashes_tow,omitempty"`
	USACrashesFatal                *int    `gorm:"column:usa_crashes_fatal" json:"usa_crashes_fatal,omitempty"`
	USACrashesInjury               *int    `gorm:"column:usa_crashes_injury" json:"usa_crashes_injury,omitempty"`
	USACrashesTotal                *int    `gorm:"column:usa_crashes_total" json:"usa_crashes_total,omitempty"`
	CanadaDriverInspections        *int    `gorm:"column:canada_driver_inspections" json:"canada_driver_inspections,omitempty"`
	CanadaDriverOutOfService       *int    `gorm:"column:canada_driver_out_of_service" json:"canada_driver_out_of_service,omitempty"`
	CanadaDriverOutOfServicePct    *string `gorm:"column:canada_driver_out_of_service_percent" json:"canada_driver_out_of_service_percent,omitempty"`
	CanadaVehicleInspections       *int    `gorm:"column:canada_vehicle_inspections" json:"canada_vehicle_inspections,omitempty"`
	CanadaVehicleOutOfService      *int    `gorm:"column:canada_vehicle_out_of_service" json:"canada_vehicle_out_of_service,omitempty"`
	CanadaVehicleOutOfServicePct   *string `gorm:"column:canada_vehicle_out_of_service_percent" json:"canada_vehicle_out_of_service_percent,omitempty"`
	CanadaCrashesTow               *int    `gorm:"column:canada_crashes_tow" json:"canada_crashes_tow,omitempty"`
	CanadaCrashesFatal             *int    `gorm:"column:canada_crashes_fatal" json:"canada_crashes_fatal,omitempty"`
	CanadaCrashesInjury            *int    `gorm:"column:canada_crashes_injury" json:"canada_crashes_injury,omitempty"`
	CanadaCrashesTotal             *int    `gorm:"column:canada_crashes_total" json:"canada_crashes_total,omitempty"`

	SafetyRatingDate *string `gorm:"column:safety_rating_date" json:"safety_rating_date,omitempty"`
	SafetyReviewDate *string `gorm:"column:safety_review_date" json:"safety_review_date,omitempty"`
	SafetyRating     *string `gorm:"column:safety_rating" json:"safety_rating,omitempty"`
	SafetyType       *string `gorm:"column:safety_type" json:"safety_type,omitempty"`
	LatestUpdate     *string `gorm:"column:latest_update" json:"latest_update,omitempty"`
	URL              *string `gorm:"column:url" json:"url,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CarrierRecord) TableName() string {
	return "carrier_records"
}

// Lookup is one registry lookup result entering the bulk upsert path. Success
// is false when the registry could not resolve the USDOT; such entries are
// skipped entirely so that every persisted carrier always has a sync-status
// placeholder for the discovering org.
type Lookup struct {
	Record  CarrierRecord
	Success bool
}
