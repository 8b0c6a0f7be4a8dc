package models

// VehicleRecord is one flattened structured-data block scraped from a model
// page: field name -> string value. Every record carries base_model,
// trim_name and source_url, possibly empty.
type VehicleRecord map[string]string

// Columns pinned to the front of the catalog CSV; everything else is sorted
// alphabetically after them.
var PriorityColumns = []string{"base_model", "trim_name", "source_url"}
