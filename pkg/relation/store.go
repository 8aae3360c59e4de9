// Package relation은 유저 간 방향성 플래그(like/nope/block/report)와
// 그로부터 파생되는 매치 관계를 관리한다.
package relation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"redddate/pkg/models"
	"redddate/pkg/types/commontype"

	"gorm.io/gorm"
)

var (
	ErrInvalidKind = errors.New("invalid flag kind")
	ErrSelfFlag    = errors.New("cannot flag yourself")
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func ValidKind(kind int) bool {
	_, ok := commontype.FlagNames[kind]
	return ok
}

// "like" -> FlagLike
func KindFromName(name string) (int, bool) {
	for kind, n := range commontype.FlagNames {
		if n == name {
			return kind, true
		}
	}
	return commontype.FlagNone, false
}

// 플래그 설정. 기존 플래그는 같은 트랜잭션 안에서 지우고 새로 만든다.
func (s *Store) SetFlag(ctx context.Context, senderID, receiverID, kind int) (*models.Flag, error) {
	if !ValidKind(kind) {
		return nil, ErrInvalidKind
	}
	if senderID == receiverID {
		return nil, ErrSelfFlag
	}

	flag := models.Flag{SenderID: senderID, ReceiverID: receiverID, Kind: kind}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceFlag(tx, &flag)
	})
	if err != nil {
		log.Printf("❌ Failed to set flag %d -> %d (kind %d): %v", senderID, receiverID, kind, err)
		return nil, fmt.Errorf("set flag: %w", err)
	}
	return &flag, nil
}

// report 플래그와 Report 레코드를 함께 만든다. 하나라도 실패하면 둘 다 남지 않는다.
func (s *Store) SetReportFlag(ctx context.Context, report *models.Report) (*models.Flag, error) {
	if report.SenderID == report.ReceiverID {
		return nil, ErrSelfFlag
	}

	flag := models.Flag{SenderID: report.SenderID, ReceiverID: report.ReceiverID, Kind: commontype.FlagReport}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceFlag(tx, &flag); err != nil {
			return err
		}
		return tx.Create(report).Error
	})
	if err != nil {
		log.Printf("❌ Failed to report %d -> %d: %v", report.SenderID, report.ReceiverID, err)
		return nil, fmt.Errorf("set report flag: %w", err)
	}
	return &flag, nil
}

func replaceFlag(tx *gorm.DB, flag *models.Flag) error {
	if err := tx.Where("sender_id = ? AND receiver_id = ?", flag.SenderID, flag.ReceiverID).
		Delete(&models.Flag{}).Error; err != nil {
		return err
	}
	return tx.Create(flag).Error
}

// 플래그 삭제. 없으면 아무 일도 하지 않는다.
func (s *Store) DeleteFlag(ctx context.Context, senderID, receiverID int) error {
	err := s.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Delete(&models.Flag{}).Error
	if err != nil {
		log.Printf("❌ Failed to delete flag %d -> %d: %v", senderID, receiverID, err)
		return fmt.Errorf("delete flag: %w", err)
	}
	return nil
}

// 플래그 조회. 없으면 nil
func (s *Store) GetFlag(ctx context.Context, senderID, receiverID int) (*models.Flag, error) {
	var flags []models.Flag
	err := s.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Limit(1).
		Find(&flags).Error
	if err != nil {
		return nil, fmt.Errorf("get flag: %w", err)
	}
	if len(flags) == 0 {
		return nil, nil
	}
	return &flags[0], nil
}

func (s *Store) hasKind(ctx context.Context, senderID, receiverID, kind int) (bool, error) {
	flag, err := s.GetFlag(ctx, senderID, receiverID)
	if err != nil {
		return false, err
	}
	return flag != nil && flag.Kind == kind, nil
}

func (s *Store) DoesLike(ctx context.Context, senderID, receiverID int) (bool, error) {
	return s.hasKind(ctx, senderID, receiverID, commontype.FlagLike)
}

func (s *Store) DoesNope(ctx context.Context, senderID, receiverID int) (bool, error) {
	return s.hasKind(ctx, senderID, receiverID, commontype.FlagNope)
}

// 서로 like 한 경우에만 매치
func (s *Store) IsMatch(ctx context.Context, a, b int) (bool, error) {
	if a == b {
		return false, nil
	}

	var n int64
	err := s.db.WithContext(ctx).Model(&models.Flag{}).
		Where("kind = ?", commontype.FlagLike).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("is match: %w", err)
	}
	return n == 2, nil
}

func (s *Store) mutualLikes(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("flags AS f1").
		Joins("INNER JOIN flags AS f2 ON f1.receiver_id = f2.sender_id AND f1.sender_id = f2.receiver_id").
		Where("f1.kind = ? AND f2.kind = ?", commontype.FlagLike, commontype.FlagLike)
}

// 유저의 매치 상대 수
func (s *Store) CountMatches(ctx context.Context, userID int) (int64, error) {
	var n int64
	err := s.mutualLikes(ctx).
		Where("f1.sender_id = ?", userID).
		Select("COUNT(DISTINCT f1.receiver_id)").
		Scan(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return n, nil
}

// 전체 매치 쌍 수
func (s *Store) CountAllMatches(ctx context.Context) (int64, error) {
	var n int64
	err := s.mutualLikes(ctx).
		Where("f1.sender_id < f1.receiver_id").
		Select("COUNT(*)").
		Scan(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count all matches: %w", err)
	}
	return n, nil
}

// 유저가 보낸 like 중 상대도 like 한 것들 (최신순)
func (s *Store) ListMatches(ctx context.Context, userID int) ([]models.Flag, error) {
	var flags []models.Flag
	err := s.mutualLikes(ctx).
		Select("f1.*").
		Where("f1.sender_id = ?", userID).
		Order("f1.created_at DESC").
		Find(&flags).Error
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return flags, nil
}

func (s *Store) ListSent(ctx context.Context, userID, kind int) ([]models.Flag, error) {
	if !ValidKind(kind) {
		return nil, ErrInvalidKind
	}
	var flags []models.Flag
	err := s.db.WithContext(ctx).
		Where("sender_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC").
		Find(&flags).Error
	if err != nil {
		return nil, fmt.Errorf("list sent: %w", err)
	}
	return flags, nil
}

func (s *Store) ListReceived(ctx context.Context, userID, kind int) ([]models.Flag, error) {
	if !ValidKind(kind) {
		return nil, ErrInvalidKind
	}
	var flags []models.Flag
	err := s.db.WithContext(ctx).
		Where("receiver_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC").
		Find(&flags).Error
	if err != nil {
		return nil, fmt.Errorf("list received: %w", err)
	}
	return flags, nil
}

// 보낸 플래그 일괄 삭제. kinds가 비어 있으면 모든 종류
func (s *Store) DeleteAllSent(ctx context.Context, userID int, kinds ...int) (int64, error) {
	for _, k := range kinds {
		if !ValidKind(k) {
			return 0, ErrInvalidKind
		}
	}

	q := s.db.WithContext(ctx).Where("sender_id = ?", userID)
	if len(kinds) > 0 {
		q = q.Where("kind IN ?", kinds)
	}
	res := q.Delete(&models.Flag{})
	if res.Error != nil {
		log.Printf("❌ Failed to delete flags sent by user %d: %v", userID, res.Error)
		return 0, fmt.Errorf("delete all sent: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// 유저가 보내거나 받은 모든 플래그 삭제 (탈퇴)
func (s *Store) DeleteAllFor(ctx context.Context, userID int) error {
	err := s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Delete(&models.Flag{}).Error
	if err != nil {
		log.Printf("❌ Failed to delete flags of user %d: %v", userID, err)
		return fmt.Errorf("delete all for: %w", err)
	}
	return nil
}

func (s *Store) CountByKind(ctx context.Context, kind int) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Flag{}).Where("kind = ?", kind).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count by kind: %w", err)
	}
	return n, nil
}

func (s *Store) receiverIDs(ctx context.Context, userID int, kinds []int) ([]int, error) {
	q := s.db.WithContext(ctx).Model(&models.Flag{}).Where("sender_id = ?", userID)
	if len(kinds) > 0 {
		q = q.Where("kind IN ?", kinds)
	}
	var ids []int
	if err := q.Order("receiver_id").Pluck("receiver_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("receiver ids: %w", err)
	}
	return ids, nil
}

// 유저가 block 한 상대 ID 목록
func (s *Store) BlockedBy(ctx context.Context, userID int) ([]int, error) {
	return s.receiverIDs(ctx, userID, []int{commontype.FlagBlock})
}

// 유저가 어떤 플래그든 단 상대 ID 목록
func (s *Store) FlaggedBy(ctx context.Context, userID int) ([]int, error) {
	return s.receiverIDs(ctx, userID, nil)
}
