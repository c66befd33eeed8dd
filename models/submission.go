package models

import "time"

// Submission statuses. A submission starts pending and moves exactly once to
// approved or rejected; terminal rows are never edited again.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Item operation types.
const (
	OperationBreakage = "breakage"
	OperationExchange = "exchange"
)

type Submission struct {
	SubmissionID int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	UserID       int        `gorm:"column:user_id" json:"user_id"`
	Number       string     `gorm:"column:number;unique" json:"number"`
	Title        string     `gorm:"column:title" json:"title"`
	Status       string     `gorm:"column:status" json:"status"`
	Comment      *string    `gorm:"column:comment" json:"comment,omitempty"`
	DecidedBy    *int       `gorm:"column:decided_by" json:"decided_by,omitempty"`
	DecidedAt    *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User    User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Decider *User  `gorm:"foreignKey:DecidedBy" json:"decider,omitempty"`
	Items   []Item `gorm:"foreignKey:SubmissionID" json:"items,omitempty"`
}

// IsPending reports whether the submission may still be edited or decided.
func (s *Submission) IsPending() bool {
	return s.Status == StatusPending
}

type Item struct {
	ItemID       int        `gorm:"primaryKey;column:item_id" json:"item_id"`
	SubmissionID int        `gorm:"column:submission_id" json:"submission_id"`
	ProductID    int        `gorm:"column:product_id" json:"product_id"`
	Quantity     int        `gorm:"column:quantity" json:"quantity"`
	Reason       string     `gorm:"column:reason" json:"reason"`
	Operation    string     `gorm:"column:operation" json:"operation"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Photos  []Photo `gorm:"foreignKey:ItemID" json:"photos,omitempty"`
}

// Photo is one stored image attached to an item. Position preserves the
// upload order within the item.
type Photo struct {
	PhotoID      int       `gorm:"primaryKey;column:photo_id" json:"photo_id"`
	ItemID       int       `gorm:"column:item_id" json:"item_id"`
	Position     int       `gorm:"column:position" json:"position"`
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	StoredPath   string    `gorm:"column:stored_path" json:"-"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	FileSize     int64     `gorm:"column:file_size" json:"file_size"`
	CreateAt     time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

func (Item) TableName() string {
	return "items"
}

func (Photo) TableName() string {
	return "photos"
}
