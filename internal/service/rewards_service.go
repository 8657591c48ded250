package service

import (
	"time"

	"levelup_backend/internal/model"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/util"
	"levelup_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// 每级需要的增量积分为 500*level，即升到 L 级累计需要 500*(1+2+...+(L-1))
const levelStep = 500

// tokenTable 每个等级可领取的代币数
var tokenTable = map[int]int{
	1:  10,
	2:  50,
	3:  70,
	4:  100,
	5:  150,
	6:  200,
	7:  250,
	8:  300,
	9:  350,
	10: 400,
}

const defaultTokenReward = 10

// RewardsService 积分、等级、金币与等级代币。
// 积分写入与进度写入必须在同一事务内，所以带事务版本的方法接收 *gorm.DB。
type RewardsService struct {
	DB             *gorm.DB
	UserRepo       *repository.UserRepository
	TokenClaimRepo *repository.TokenClaimRepository
}

func NewRewardsService(db *gorm.DB, userRepo *repository.UserRepository, tokenClaimRepo *repository.TokenClaimRepository) *RewardsService {
	return &RewardsService{
		DB:             db,
		UserRepo:       userRepo,
		TokenClaimRepo: tokenClaimRepo,
	}
}

// PointsForLevel 升到 level 级所需的累计积分
func PointsForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return levelStep * n * (n + 1) / 2
}

// LevelForPoints 由累计积分推算等级
func LevelForPoints(totalPoints int) int {
	level := 1
	for totalPoints >= PointsForLevel(level+1) {
		level++
	}
	return level
}

// TokensForLevel 该等级可领取的代币数量
func TokensForLevel(level int) int {
	if tokens, ok := tokenTable[level]; ok {
		return tokens
	}
	return defaultTokenReward
}

// AddPointsIn 在给定事务内给用户加积分并重算等级。
// 返回更新后的用户，调用方据此判断是否触发升级通知。
func (s *RewardsService) AddPointsIn(tx *gorm.DB, userID uint, points int) (*model.User, error) {
	var user model.User
	if err := tx.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	user.TotalPoints += points
	user.CurrentLevel = LevelForPoints(user.TotalPoints)

	if err := tx.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"total_points":  user.TotalPoints,
			"current_level": user.CurrentLevel,
		}).Error; err != nil {
		return nil, err
	}

	monitoring.PointsAwarded.Add(float64(points))
	return &user, nil
}

func (s *RewardsService) AddPoints(userID uint, points int) (*model.User, error) {
	return s.AddPointsIn(s.DB, userID, points)
}

// AddCoinsIn 在给定事务内给用户加金币
func (s *RewardsService) AddCoinsIn(tx *gorm.DB, userID uint, coins int) error {
	return tx.Model(&model.User{}).Where("id = ?", userID).
		Update("coins", gorm.Expr("coins + ?", coins)).Error
}

func (s *RewardsService) AddCoins(userID uint, coins int) error {
	return s.AddCoinsIn(s.DB, userID, coins)
}

// SpendCoins 扣金币，余额不足返回 ErrInsufficientCoins
func (s *RewardsService) SpendCoins(userID uint, coins int) error {
	result := s.DB.Model(&model.User{}).
		Where("id = ? AND coins >= ?", userID, coins).
		Update("coins", gorm.Expr("coins - ?", coins))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		user, err := s.UserRepo.FindByID(userID)
		if err != nil {
			return err
		}
		if user.Coins < coins {
			return util.ErrInsufficientCoins
		}
	}
	return nil
}

// CanClaim 判断指定等级的代币当前是否可领
func (s *RewardsService) CanClaim(userID uint, level int) (bool, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return false, err
	}
	if user.CurrentLevel < level {
		return false, nil
	}
	claim, err := s.TokenClaimRepo.Find(userID, level)
	if err != nil {
		return false, err
	}
	return claim == nil, nil
}

// ClaimTokens 领取指定等级的代币。重复领取返回已存在的记录和 ErrAlreadyClaimed。
func (s *RewardsService) ClaimTokens(userID uint, level int) (*model.TokenClaim, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.CurrentLevel < level {
		return nil, util.ErrLevelNotReached
	}

	existing, err := s.TokenClaimRepo.Find(userID, level)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, util.ErrAlreadyClaimed
	}

	now := time.Now()
	claim := &model.TokenClaim{
		UserID:        userID,
		Level:         level,
		TokensClaimed: TokensForLevel(level),
		ClaimedAt:     &now,
		Status:        model.TokenClaimPending,
	}
	if err := s.DB.Create(claim).Error; err != nil {
		// 唯一索引兜底并发领取
		prior, findErr := s.TokenClaimRepo.Find(userID, level)
		if findErr == nil && prior != nil {
			return prior, util.ErrAlreadyClaimed
		}
		return nil, err
	}

	monitoring.TokenClaims.Inc()
	return claim, nil
}

func (s *RewardsService) ListClaims(userID uint) ([]model.TokenClaim, error) {
	return s.TokenClaimRepo.FindByUser(userID)
}

// LevelSnapshot 当前等级、到下一级的积分区间和级内进度
func (s *RewardsService) LevelSnapshot(user *model.User) (pointsProgress, pointsNeeded int, percentage float64) {
	currentFloor := PointsForLevel(user.CurrentLevel)
	nextFloor := PointsForLevel(user.CurrentLevel + 1)
	pointsProgress = user.TotalPoints - currentFloor
	pointsNeeded = nextFloor - currentFloor
	if pointsNeeded > 0 {
		percentage = float64(pointsProgress) / float64(pointsNeeded) * 100
	}
	return pointsProgress, pointsNeeded, percentage
}
