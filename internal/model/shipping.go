package model

// ShippingType is a selectable delivery option at checkout. Two values are
// the same option when every field is equal.
type ShippingType struct {
	ID         int     `json:"id" mapstructure:"id" yaml:"id"`
	Title      string  `json:"title" mapstructure:"title" yaml:"title"`
	Price      float64 `json:"price" mapstructure:"price" yaml:"price"`
	ArrivalDay int     `json:"arrival_day" mapstructure:"arrival_day" yaml:"arrival_day"`
}

// IsZero reports whether no shipping option has been chosen.
func (s ShippingType) IsZero() bool {
	return s == ShippingType{}
}

// DefaultShippingTypes returns the built-in delivery options. Each call
// returns a fresh slice.
func DefaultShippingTypes() []ShippingType {
	return []ShippingType{
		{ID: 1, Title: "Economy", Price: 25, ArrivalDay: 7},
		{ID: 2, Title: "Regular", Price: 35, ArrivalDay: 5},
		{ID: 3, Title: "Cargo", Price: 45, ArrivalDay: 3},
		{ID: 4, Title: "Express", Price: 55, ArrivalDay: 1},
	}
}

// FindShipping returns the option with the given ID.
func FindShipping(list []ShippingType, id int) (ShippingType, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return ShippingType{}, false
}
