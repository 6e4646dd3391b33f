package customer

import "time"

type Customer struct {
	ID             int64   `gorm:"primaryKey" json:"id"`
	RestaurantName string  `gorm:"column:restaurant_name;not null" json:"restaurant_name"`
	ProprietorName string  `gorm:"column:proprietor_name;not null" json:"proprietor_name"`
	Address        string  `gorm:"column:address;not null" json:"address"`
	Pincode        string  `gorm:"column:pincode;not null" json:"pincode"`
	GSTNumber      *string `gorm:"column:gst_number" json:"gst_number,omitempty"`
	PhoneNumber    string  `gorm:"column:phone_number;not null" json:"phone_number"`

	CreatedAt time.Time `gorm:"column:created_at;default:now()" json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}
