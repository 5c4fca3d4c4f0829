package domain

// Catalogue lists every carrier attribute that can be mapped, with display
// labels for the settings UI.
func Catalogue() []CatalogueEntry {
	return []CatalogueEntry{
		{Field: "usdot", Label: "USDOT Number", Type: "text"},
		{Field: "entity_type", Label: "Entity Type", Type: "text"},
		{Field: "usdot_status", Label: "USDOT Status", Type: "text"},
		{Field: "legal_name", Label: "Legal Name", Type: "text"},
		{Field: "dba_name", Label: "DBA Name", Type: "text"},
		{Field: "physical_address", Label: "Physical Address", Type: "text"},
		{Field: "mailing_address", Label: "Mailing Address", Type: "text"},
		{Field: "phone", Label: "Phone Number", Type: "text"},
		{Field: "state_carrier_id", Label: "State Carrier ID", Type: "text"},
		{Field: "mc_mx_ff_numbers", Label: "MC/MX/FF Numbers", Type: "text"},
		{Field: "duns_number", Label: "DUNS Number", Type: "text"},
		{Field: "power_units", Label: "Power Units", Type: "number"},
		{Field: "drivers", Label: "Number of Drivers", Type: "number"},
		{Field: "mcs_150_form_date", Label: "MCS-150 Form Date", Type: "date"},
		{Field: "mcs_150_mileage_year_mileage", Label: "MCS-150 Mileage", Type: "number"},
		{Field: "mcs_150_mileage_year_year", Label: "MCS-150 Mileage Year", Type: "number"},
		{Field: "out_of_service_date", Label: "Out of Service Date", Type: "date"},
		{Field: "operating_authority_status", Label: "Operating Authority Status", Type: "text"},
		{Field: "operation_classification", Label: "Operation Classification", Type: "text"},
		{Field: "carrier_operation", Label: "Carrier Operation", Type: "text"},
		{Field: "hm_shipper_operation", Label: "HM Shipper Operation", Type: "text"},
		{Field: "cargo_carried", Label: "Cargo Carried", Type: "text"},
		{Field: "usa_vehicle_inspections", Label: "USA Vehicle Inspections", Type: "number"},
		{Field: "usa_vehicle_out_of_service", Label: "USA Vehicle Out of Service", Type: "number"},
		{Field: "usa_vehicle_out_of_service_percent", Label: "USA Vehicle Out of Service %", Type: "text"},
		{Field: "usa_vehicle_national_average", Label: "USA Vehicle National Average", Type: "text"},
		{Field: "usa_driver_inspections", Label: "USA Driver Inspections", Type: "number"},
		{Field: "usa_driver_out_of_service", Label: "USA Driver Out of Service", Type: "number"},
		{Field: "usa_driver_out_of_service_percent", Label: "USA Driver Out of Service %", Type: "text"},
		{Field: "usa_driver_national_average", Label: "USA Driver National Average", Type: "text"},
		{Field: "usa_hazmat_inspections", Label: "USA Hazmat Inspections", Type: "number"},
		{Field: "usa_hazmat_out_of_service", Label: "USA Hazmat Out of Service", Type: "number"},
		{Field: "usa_hazmat_out_of_service_percent", Label: "USA Hazmat Out of Service %", Type: "text"},
		{Field: "usa_hazmat_national_average", Label: "USA Hazmat National Average", Type: "text"},
		{Field: "usa_iep_inspections", Label: "USA IEP Inspections", Type: "number"},
		{Field: "usa_iep_out_of_service", Label: "USA IEP Out of Service", Type: "number"},
		{Field: "usa_iep_out_of_service_percent", Label: "USA IEP Out of Service %", Type: "text"},
		{Field: "usa_iep_national_average", Label: "USA IEP National Average", Type: "text"},
		{Field: "usa_crashes_tow", Label: "USA Crashes (Tow)", Type: "number"},
		{Field: "usa_crashes_fatal", Label: "USA Crashes (Fatal)", Type: "number"},
		{Field: "usa_crashes_injury", Label: "USA Crashes (Injury)", Type: "number"},
		{Field: "usa_crashes_total", Label: "USA Crashes (Total)", Type: "number"},
		{Field: "canada_driver_inspections", Label: "Canada Driver Inspections", Type: "number"},
		{Field: "canada_driver_out_of_service", Label: "Canada Driver Out of Service", Type: "number"},
		{Field: "canada_driver_out_of_service_percent", Label: "Canada Driver Out of Service %", Type: "text"},
		{Field: "canada_vehicle_inspections", Label: "Canada Vehicle Inspections", Type: "number"},
		{Field: "canada_vehicle_out_of_service", Label: "Canada Vehicle Out of Service", Type: "number"},
		{Field: "canada_vehicle_out_of_service_percent", Label: "Canada Vehicle Out of Service %", Type: "text"},
		{Field: "canada_crashes_tow", Label: "Canada Crashes (Tow)", Type: "number"},
		{Field: "canada_crashes_fatal", Label: "Canada Crashes (Fatal)", Type: "number"},
		{Field: "canada_crashes_injury", Label: "Canada Crashes (Injury)", Type: "number"},
		{Field: "canada_crashes_total", Label: "Canada Crashes (Total)", Type: "number"},
		{Field: "safety_rating_date", Label: "Safety Rating Date", Type: "date"},
		{Field: "safety_review_date", Label: "Safety Review Date", Type: "date"},
		{Field: "safety_rating", Label: "Safety Rating", Type: "text"},
		{Field: "safety_type", Label: "Safety Type", Type: "text"},
		{Field: "latest_update", Label: "Latest Update", Type: "date"},
		{Field: "url", Label: "URL", Type: "text"},
	}
}

// StandardExternalFields lists commonly used CRM account fields.
func StandardExternalFields() []StandardExternalField {
	return []StandardExternalField{
		{APIName: "Name", Label: "Account Name"},
		{APIName: "Phone", Label: "Phone Number"},
		{APIName: "Website", Label: "Website"},
		{APIName: "BillingStreet", Label: "Billing Street"},
		{APIName: "BillingCity", Label: "Billing City"},
		{APIName: "BillingState", Label: "Billing State/Province"},
		{APIName: "BillingPostalCode", Label: "Billing Zip/Postal Code"},
		{APIName: "BillingCountry", Label: "Billing Country"},
		{APIName: "ShippingStreet", Label: "Shipping Street"},
		{APIName: "ShippingCity", Label: "Shipping City"},
		{APIName: "ShippingState", Label: "Shipping State/Province"},
		{APIName: "ShippingPostalCode", Label: "Shipping Zip/Postal Code"},
		{APIName: "ShippingCountry", Label: "Shipping Country"},
		{APIName: "AccountNumber", Label: "Account Number"},
		{APIName: "Type", Label: "Account Type"},
		{APIName: "Industry", Label: "Industry"},
		{APIName: "Description", Label: "Description"},
		{APIName: "NumberOfEmployees", Label: "Employees"},
		{APIName: "AnnualRevenue", Label: "Annual Revenue"},
	}
}

// KnownCarrierField reports whether field is part of the catalogue.
func KnownCarrierField(field string) bool {
	for _, entry := range Catalogue() {
		if entry.Field == field {
			return true
		}
	}
	return false
}
