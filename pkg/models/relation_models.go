package models

import "time"

// 유저 A -> 유저 B 방향의 플래그. (sender, receiver) 쌍마다 최대 1개.
type Flag struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   int       `gorm:"uniqueIndex:idx_flag_pair;index" json:"sender_id"`
	ReceiverID int       `gorm:"uniqueIndex:idx_flag_pair;index" json:"receiver_id"`
	Kind       int       `gorm:"index" json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

type Report struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   int       `gorm:"index" json:"sender_id"`
	ReceiverID int       `gorm:"index" json:"receiver_id"`
	Reason     int       `json:"reason"`
	Details    string    `gorm:"size:500" json:"details"`
	Resolved   bool      `json:"resolved"`
	CreatedAt  time.Time `json:"created_at"`
}

// AutoMigrate 대상 테이블 목록
func All() []interface{} {
	return []interface{}{
		&User{}, &Profile{}, &Group{}, &Subscription{}, &Flag{}, &Report{},
	}
}
