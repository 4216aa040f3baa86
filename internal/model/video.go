package model

// swagger:model Video
type Video struct {
	BaseModel
	ModuleID    uint   `gorm:"index;not null" json:"moduleId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	VideoURL    string `gorm:"size:512;not null" json:"videoUrl"`
	VideoType   string `gorm:"size:50" json:"videoType"` // youtube / rutube / ...
}

func (Video) TableName() string {
	return "videos"
}
