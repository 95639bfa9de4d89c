package listing

// OperationType indicates whether a property is offered for sale or rent.
type OperationType string

const (
	OperationSale OperationType = "sale"
	OperationRent OperationType = "rent"
)

// PropertyType classifies the kind of real estate on offer.
type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeOffice     PropertyType = "office"
	TypeCommercial PropertyType = "commercial"
	TypeLot        PropertyType = "lot"
	TypeFarm       PropertyType = "farm"
)

// PropertyCondition describes the physical state of the property.
type PropertyCondition string

const (
	ConditionNew               PropertyCondition = "new"
	ConditionUsed              PropertyCondition = "used"
	ConditionRemodeled         PropertyCondition = "remodeled"
	ConditionUnderConstruction PropertyCondition = "under_construction"
)

// FurnishedState describes whether the property comes furnished.
type FurnishedState string

const (
	Furnished     FurnishedState = "furnished"
	Unfurnished   FurnishedState = "unfurnished"
	SemiFurnished FurnishedState = "semi_furnished"
)

// KitchenType describes the kitchen fit-out, if any.
type KitchenType string

const (
	KitchenNone     KitchenType = "none"
	KitchenBasic    KitchenType = "basic"
	KitchenIntegral KitchenType = "integral"
)

// SurveillanceType describes the security coverage of the sector.
type SurveillanceType string

const (
	SurveillanceNone           SurveillanceType = "none"
	SurveillancePoliceQuadrant SurveillanceType = "police_quadrant"
	SurveillancePrivate        SurveillanceType = "private"
	SurveillancePolicePatrol   SurveillanceType = "police_patrol"
	SurveillanceWatchedSector  SurveillanceType = "watched_sector"
)

// PublicationStatus controls whether a record is visible to the public.
type PublicationStatus string

const (
	StatusPublished PublicationStatus = "published"
	StatusDraft     PublicationStatus = "draft"
	StatusPaused    PublicationStatus = "paused"
)

// OperationTypes lists all valid operation types.
func OperationTypes() []OperationType {
	return []OperationType{OperationSale, OperationRent}
}

// PropertyTypes lists all valid property types.
func PropertyTypes() []PropertyType {
	return []PropertyType{TypeApartment, TypeHouse, TypeOffice, TypeCommercial, TypeLot, TypeFarm}
}

// PropertyConditions lists all valid property conditions.
func PropertyConditions() []PropertyCondition {
	return []PropertyCondition{ConditionNew, ConditionUsed, ConditionRemodeled, ConditionUnderConstruction}
}

// FurnishedStates lists all valid furnished states.
func FurnishedStates() []FurnishedState {
	return []FurnishedState{Furnished, Unfurnished, SemiFurnished}
}

// PublicationStatuses lists all valid publication statuses.
func PublicationStatuses() []PublicationStatus {
	return []PublicationStatus{StatusPublished, StatusDraft, StatusPaused}
}
