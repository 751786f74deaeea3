package models

// Property types.
const (
	PropertyVilla      = "villa"
	PropertyApartment  = "apartment"
	PropertyHouse      = "house"
	PropertyCondo      = "condo"
	PropertyTownhouse  = "townhouse"
	PropertyCommercial = "commercial"
	PropertyLand       = "land"
)

// Property listing states.
const (
	PropertyAvailable = "available"
	PropertyPending   = "pending"
	PropertySold      = "sold"
	PropertyRented    = "rented"
)

// PropertyTypes enumerates the accepted type values.
var PropertyTypes = []string{
	PropertyVilla, PropertyApartment, PropertyHouse, PropertyCondo,
	PropertyTownhouse, PropertyCommercial, PropertyLand,
}

// PropertyStatuses enumerates the accepted status values.
var PropertyStatuses = []string{
	PropertyAvailable, PropertyPending, PropertySold, PropertyRented,
}

type Property struct {
	Base
	// OwnerID is nulled when the owning user is purged, never cascaded.
	OwnerID     *string `json:"owner_id" gorm:"type:uuid;index"`
	Title       string  `json:"title" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null;check:price > 0"`
	Location    string  `json:"location" gorm:"not null"`
	Type        string  `json:"type" gorm:"index;not null"`
	Status      string  `json:"status" gorm:"index;default:available"`

	// Geometry holds an optional WKB point for the listing coordinates.
	// Controllers accept and emit GeoJSON.
	Geometry []byte `json:"-"`

	ARModelURL    string `json:"ar_model_url"`
	ARSceneConfig string `json:"ar_scene_config,omitempty" gorm:"type:text"`

	Contracts []Contract `json:"contracts,omitempty" gorm:"foreignKey:PropertyID"`
}
