package subscription

import "time"

// Subscription rows are write-once: a checkout creates exactly one and
// nothing in this service mutates it afterwards.
type Subscription struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	CustomerID  int64     `gorm:"column:customer_id;not null;index" json:"customer_id"`
	ProductType string    `gorm:"column:product_type;not null" json:"product_type"`
	Tenure      string    `gorm:"column:tenure;not null" json:"tenure"`
	Amount      int64     `gorm:"column:amount;not null" json:"amount"`
	StartDate   time.Time `gorm:"column:start_date;not null" json:"start_date"`
	EndDate     time.Time `gorm:"column:end_date;not null" json:"end_date"`
	NextDueDate time.Time `gorm:"column:next_due_date;not null" json:"next_due_date"`

	CreatedAt time.Time `gorm:"column:created_at;default:now()" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
